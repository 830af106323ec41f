package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"dailyfocus/local-app/src/pkg/log"
)

const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
	colorWhite   = "\033[37m"
)

// LogEntry is one decoded JSON record.
type LogEntry map[string]interface{}

// commandLogSuffix identifies the file holding user commands. Its records
// are shown as COMMAND even though slog writes them at INFO.
const commandLogSuffix = "commands.log"

// headlineFields are printed on the first line, in this order, when present.
var headlineFields = []string{"scope", "operation", "list", "sessionID"}

func formatTimestamp(timestamp string) string {
	t, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return timestamp
	}
	return t.Format("06-01-02 15:04:05.000")
}

func padRight(str string, length int) string {
	if len(str) >= length {
		return str
	}
	return str + strings.Repeat(" ", length-len(str))
}

// entryLevel maps a record to the application log level.
func entryLevel(entry LogEntry, file string) log.LogLevel {
	if strings.HasSuffix(filepath.Base(file), commandLogSuffix) {
		return log.LevelCommand
	}
	level, _ := entry["level"].(string)
	switch strings.ToUpper(level) {
	case "ERROR":
		return log.LevelError
	case "WARN":
		return log.LevelWarn
	case "DEBUG":
		return log.LevelDebug
	default:
		return log.LevelInfo
	}
}

func levelColor(level log.LogLevel) string {
	switch level {
	case log.LevelCommand:
		return colorCyan
	case log.LevelDebug:
		return colorBlue
	case log.LevelInfo:
		return colorGreen
	case log.LevelWarn:
		return colorYellow
	case log.LevelError:
		return colorRed
	default:
		return colorWhite
	}
}

// formatLogEntry renders a record as a headline followed by its remaining
// fields in key order.
func formatLogEntry(entry LogEntry, level log.LogLevel, color bool) string {
	paint := func(c, s string) string {
		if !color {
			return s
		}
		return c + s + colorReset
	}

	timestamp, _ := entry["time"].(string)
	msg, _ := entry["msg"].(string)

	var b strings.Builder
	b.WriteString(paint(colorMagenta, formatTimestamp(timestamp)))
	b.WriteString(" ")
	b.WriteString(paint(levelColor(level), padRight(level.String(), 7)))
	b.WriteString(" ")
	b.WriteString(msg)

	shown := map[string]bool{"time": true, "level": true, "msg": true}
	for _, key := range headlineFields {
		if v, ok := entry[key]; ok {
			b.WriteString(fmt.Sprintf(" %s=%v", key, v))
			shown[key] = true
		}
	}

	keys := make([]string, 0, len(entry))
	for key := range entry {
		if !shown[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		b.WriteString(fmt.Sprintf("\n    %s %v", paint(colorCyan, key+":"), entry[key]))
	}
	return b.String()
}

// visible reports whether a record passes the level threshold and the typed
// filter. Commands and errors always pass the threshold.
func visible(formatted string, level, threshold log.LogLevel, filter string) bool {
	if level > log.LevelError && level > threshold {
		return false
	}
	return filter == "" || strings.Contains(strings.ToLower(formatted), strings.ToLower(filter))
}
