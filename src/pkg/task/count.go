package task

import (
	"time"

	"dailyfocus/local-app/src/pkg/model"
)

// Counts is a completed/total pair.
type Counts struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Rate returns completed/total as a rounded percentage, 0 when total is 0.
func (c Counts) Rate() int {
	if c.Total == 0 {
		return 0
	}
	return int(float64(c.Completed)/float64(c.Total)*100 + 0.5)
}

// CountAll counts every task at every depth.
func CountAll(forest []model.Task) Counts {
	var c Counts
	for _, t := range forest {
		c.Total++
		if t.Completed {
			c.Completed++
		}
		sub := CountAll(t.Subtasks)
		c.Total += sub.Total
		c.Completed += sub.Completed
	}
	return c
}

// CountRoot counts root tasks only.
func CountRoot(forest []model.Task) Counts {
	c := Counts{Total: len(forest)}
	for _, t := range forest {
		if t.Completed {
			c.Completed++
		}
	}
	return c
}

// CountDirectChildren counts the immediate subtasks of t, for the "(x/y)" badge.
func CountDirectChildren(t model.Task) Counts {
	return CountRoot(t.Subtasks)
}

// IsFullyCompleted reports whether t and all of its descendants are completed.
func IsFullyCompleted(t model.Task) bool {
	if !t.Completed {
		return false
	}
	for _, s := range t.Subtasks {
		if !IsFullyCompleted(s) {
			return false
		}
	}
	return true
}

// Duration returns the time from creation to finish, false while unfinished.
func Duration(t model.Task) (time.Duration, bool) {
	if t.CreatedAt.IsZero() || t.FinishedAt == nil {
		return 0, false
	}
	return t.FinishedAt.Sub(t.CreatedAt), true
}
