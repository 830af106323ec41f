package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dailyfocus/local-app/src/pkg/calendar"
)

// Filename is the default name of an export written on now's date.
func Filename(now time.Time) string {
	return fmt.Sprintf("todo-history-%s.md", calendar.DateKey(now))
}

// WriteFile writes content into dir under Filename(now) and returns its path.
func WriteFile(dir, content string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, Filename(now))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}
