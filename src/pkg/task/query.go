package task

import (
	"fmt"
	"strconv"
	"strings"

	"dailyfocus/local-app/src/pkg/model"
)

// Find returns the task with id anywhere in the forest.
func Find(forest []model.Task, id float64) (model.Task, bool) {
	for _, t := range forest {
		if t.ID == id {
			return t, true
		}
		if found, ok := Find(t.Subtasks, id); ok {
			return found, true
		}
	}
	return model.Task{}, false
}

// ResolvePath finds a task by its 1-based position path, such as "2.1".
func ResolvePath(forest []model.Task, path string) (model.Task, error) {
	parts := strings.Split(strings.TrimSpace(path), ".")
	level := forest
	var current model.Task
	for depth, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return model.Task{}, fmt.Errorf("invalid task path %q: %w", path, err)
		}
		if n < 1 || n > len(level) {
			return model.Task{}, fmt.Errorf("invalid task path %q: no task at position %d of level %d", path, n, depth+1)
		}
		current = level[n-1]
		level = current.Subtasks
	}
	return current, nil
}

// Flatten lists every task depth-first, parents before their subtasks.
func Flatten(forest []model.Task) []model.Task {
	var out []model.Task
	for _, t := range forest {
		out = append(out, t)
		out = append(out, Flatten(t.Subtasks)...)
	}
	return out
}
