package task

import (
	"time"

	"dailyfocus/local-app/src/pkg/model"
)

// LegacyCreatedAt is assigned to tasks stored before creation times were recorded.
var LegacyCreatedAt = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// NeedsMigration reports whether any task lacks a creation time.
func NeedsMigration(forest []model.Task) bool {
	for _, t := range forest {
		if t.CreatedAt.IsZero() || t.Subtasks == nil {
			return true
		}
		if NeedsMigration(t.Subtasks) {
			return true
		}
	}
	return false
}

// Migrate fills missing creation times with LegacyCreatedAt. Finish times are
// never invented for old tasks.
func Migrate(forest []model.Task) []model.Task {
	out := make([]model.Task, len(forest))
	for i, t := range forest {
		if t.CreatedAt.IsZero() {
			t.CreatedAt = LegacyCreatedAt
		}
		t.Subtasks = Migrate(t.Subtasks)
		out[i] = t
	}
	return out
}

// MigrateHistory applies Migrate to every archived day.
func MigrateHistory(history model.TaskHistory) model.TaskHistory {
	out := make(model.TaskHistory, len(history))
	for date, entry := range history {
		entry.Tasks = Migrate(entry.Tasks)
		out[date] = entry
	}
	return out
}
