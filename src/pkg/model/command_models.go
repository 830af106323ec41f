package model

import (
	"math/rand"
	"time"
)

// Command is a parsed REPL line: scope, operation and the remaining arguments.
type Command struct {
	Scope     string
	Operation string
	Args      []string
}

// Session is the state kept for one interactive client.
type Session struct {
	ID           string
	LastActivity time.Time
}

// NewID derives a task, topic or link id from the creation time plus a random
// fraction, so two ids created in the same millisecond still differ.
func NewID(now time.Time) float64 {
	return float64(now.UnixMilli()) + rand.Float64()
}
