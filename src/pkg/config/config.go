// Package config provides functionality for loading, saving, and managing
// application configuration settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"

	"dailyfocus/local-app/src/pkg/model"
)

// DefaultPath is where the configuration lives unless told otherwise.
const DefaultPath = "./data/config.json"

// envPrefix prefixes every environment override.
const envPrefix = "DAILYFOCUS_"

var (
	mu            sync.RWMutex
	currentConfig *model.Config
	configPath    = DefaultPath
)

// DefaultConfig returns the configuration written on first start.
func DefaultConfig() *model.Config {
	return &model.Config{
		DatabaseType:         "sqlite",
		DatabaseDir:          "./data",
		DatabaseFile:         "dailyfocus.db",
		LogFolder:            "./logs",
		CommandLog:           "commands.log",
		ErrorLog:             "errors.log",
		InfoLog:              "info.log",
		LogLevel:             "info",
		HistoryFile:          "./data/.history",
		MetricsFile:          "./data/metrics.prom",
		BackupDir:            "./backups",
		ExportDir:            "./exports",
		DailyCheckInterval:   "1m",
		WeeklyCheckInterval:  "1h",
		NotificationsEnabled: true,
	}
}

// ConfigLoad loads the configuration from the JSON file at path, creating it
// with defaults when missing. An empty path means DefaultPath. Values from a
// .env file and DAILYFOCUS_* environment variables override the file.
func ConfigLoad(path string) error {
	if path == "" {
		path = DefaultPath
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// A missing .env is normal.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := DefaultConfig()
	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := writeConfig(path, cfg); err != nil {
			return fmt.Errorf("failed to create default config: %w", err)
		}
	case err != nil:
		return fmt.Errorf("error reading config file: %w", err)
	default:
		if err := json.Unmarshal(file, cfg); err != nil {
			return fmt.Errorf("error parsing config file: %w", err)
		}
	}

	applyEnv(cfg)

	mu.Lock()
	currentConfig = cfg
	configPath = path
	mu.Unlock()
	return nil
}

// ConfigSave saves the provided configuration to the loaded config path.
func ConfigSave(cfg *model.Config) error {
	mu.RLock()
	path := configPath
	mu.RUnlock()
	return writeConfig(path, cfg)
}

// ConfigGet returns the current configuration, or the defaults when nothing
// has been loaded.
func ConfigGet() *model.Config {
	mu.RLock()
	defer mu.RUnlock()
	if currentConfig == nil {
		return DefaultConfig()
	}
	return currentConfig
}

// CheckIntervals parses the polling cadences of the daily and weekly rollover.
func CheckIntervals(cfg *model.Config) (daily, weekly time.Duration, err error) {
	daily, err = time.ParseDuration(cfg.DailyCheckInterval)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid daily_check_interval %q: %w", cfg.DailyCheckInterval, err)
	}
	weekly, err = time.ParseDuration(cfg.WeeklyCheckInterval)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid weekly_check_interval %q: %w", cfg.WeeklyCheckInterval, err)
	}
	if daily <= 0 || weekly <= 0 {
		return 0, 0, fmt.Errorf("check intervals must be positive")
	}
	return daily, weekly, nil
}

func writeConfig(path string, cfg *model.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *model.Config) {
	overrides := map[string]*string{
		"DATABASE_TYPE": &cfg.DatabaseType,
		"DATABASE_DIR":  &cfg.DatabaseDir,
		"LOG_FOLDER":    &cfg.LogFolder,
		"LOG_LEVEL":     &cfg.LogLevel,
		"METRICS_FILE":  &cfg.MetricsFile,
		"BACKUP_DIR":    &cfg.BackupDir,
		"EXPORT_DIR":    &cfg.ExportDir,
	}
	for name, field := range overrides {
		if v, ok := os.LookupEnv(envPrefix + name); ok && v != "" {
			*field = v
		}
	}
	if v, ok := os.LookupEnv(envPrefix + "NOTIFICATIONS_ENABLED"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.NotificationsEnabled = b
		}
	}
}
