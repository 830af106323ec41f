package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"dailyfocus/local-app/src/pkg/log"

	_ "modernc.org/sqlite"
)

// PureSQLiteDatabase implements the Database interface over the cgo-free
// SQLite driver. It stores the same schema as SQLiteDatabase, so a data
// directory can be opened by either.
type PureSQLiteDatabase struct {
	BaseDatabase
}

var purePragmas = []string{
	"PRAGMA foreign_keys = ON",
	"PRAGMA journal_mode = WAL",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA busy_timeout = 30000",
}

// Open opens a connection to the SQLite database file
func (s *PureSQLiteDatabase) Open(dataSourceName string) error {
	s.logger.Info(context.Background(), "Opening pure SQLite database", log.Fields{"dbPath": filepath.Base(dataSourceName)})

	if err := os.MkdirAll(filepath.Dir(dataSourceName), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		s.logger.Error(context.Background(), "Failed to open pure SQLite database", log.Fields{"error": err})
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// Pragmas are per connection.
	db.SetMaxOpenConns(1)

	for _, p := range purePragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	s.db = db
	return nil
}

// Close closes the connection to the SQLite database
func (s *PureSQLiteDatabase) Close() error {
	return s.closeDB(string(PureSQLite))
}
