package model

import (
	"fmt"
	"strconv"
)

// ExportStatus selects which tasks a markdown export contains.
type ExportStatus string

const (
	ExportAll        ExportStatus = "all"
	ExportCompleted  ExportStatus = "completed"
	ExportIncomplete ExportStatus = "incomplete"
)

// ExportOptions controls the markdown export. DateRange is a day count, 0 meaning all dates.
type ExportOptions struct {
	Status          ExportStatus
	DateRange       int
	IncludeSubtasks bool
}

// DefaultExportOptions mirrors the export dialog defaults.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{Status: ExportAll, DateRange: 7, IncludeSubtasks: true}
}

// ParseExportStatus accepts all, completed or incomplete.
func ParseExportStatus(s string) (ExportStatus, error) {
	switch ExportStatus(s) {
	case ExportAll, ExportCompleted, ExportIncomplete:
		return ExportStatus(s), nil
	default:
		return "", fmt.Errorf("invalid export status: %s", s)
	}
}

// ParseDateRange accepts 5, 7, 14, 30 or all.
func ParseDateRange(s string) (int, error) {
	if s == "all" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid date range %q: %w", s, err)
	}
	switch n {
	case 5, 7, 14, 30:
		return n, nil
	default:
		return 0, fmt.Errorf("invalid date range: %d (expected 5, 7, 14, 30 or all)", n)
	}
}
