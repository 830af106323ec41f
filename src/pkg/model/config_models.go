// Package model defines the data structures used throughout the DailyFocus application.
package model

// Config holds the settings read from the application configuration file.
type Config struct {
	DatabaseType         string `json:"database_type"`
	DatabaseDir          string `json:"database_dir"`
	DatabaseFile         string `json:"database_file"`
	LogFolder            string `json:"log_folder"`
	CommandLog           string `json:"command_log"`
	ErrorLog             string `json:"error_log"`
	InfoLog              string `json:"info_log"`
	LogLevel             string `json:"log_level"`
	HistoryFile          string `json:"history_file"`
	MetricsFile          string `json:"metrics_file"`
	BackupDir            string `json:"backup_dir"`
	ExportDir            string `json:"export_dir"`
	DailyCheckInterval   string `json:"daily_check_interval"`
	WeeklyCheckInterval  string `json:"weekly_check_interval"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
}
