package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"dailyfocus/local-app/src/pkg/log"
	"dailyfocus/local-app/src/pkg/model"
)

// NewStore opens the backend named by config.DatabaseType.
func NewStore(config *model.Config, logger *log.Logger) (Store, error) {
	driver, err := validateDBDriver(config.DatabaseType)
	if err != nil {
		return nil, err
	}

	dataSourceName := filepath.Join(config.DatabaseDir, config.DatabaseFile)

	if driver == JSONFile {
		path := strings.TrimSuffix(dataSourceName, filepath.Ext(dataSourceName)) + ".json"
		store, err := NewFileStore(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file store '%s': %w", path, err)
		}
		return store, nil
	}

	db, err := NewDatabase(driver, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database instance: %w", err)
	}
	if err := db.Open(dataSourceName); err != nil {
		return nil, fmt.Errorf("failed to open database connection '%s': %w", dataSourceName, err)
	}
	if err := db.InitSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return newSQLStore(db), nil
}

// Open creates the configured store and wraps it in a Gateway.
func Open(config *model.Config, logger *log.Logger) (*Gateway, error) {
	store, err := NewStore(config, logger)
	if err != nil {
		return nil, err
	}
	return NewGateway(store, logger), nil
}
