// Package task implements the task tree engine. Every operation takes a forest
// and returns a new one; input slices are never written to. Unknown ids and
// blank text leave the forest unchanged.
package task

import (
	"strings"
	"time"

	"dailyfocus/local-app/src/pkg/model"
)

// Create returns a new leaf task, or false when text is blank.
func Create(text string, now time.Time) (model.Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, false
	}
	return model.Task{
		ID:        model.NewID(now),
		Text:      text,
		Completed: false,
		Subtasks:  []model.Task{},
		Expanded:  false,
		CreatedAt: now.UTC(),
	}, true
}

// Append creates a task from text and adds it at the end of the forest.
func Append(forest []model.Task, text string, now time.Time) []model.Task {
	t, ok := Create(text, now)
	if !ok {
		return forest
	}
	out := make([]model.Task, 0, len(forest)+1)
	out = append(out, forest...)
	return append(out, t)
}

// ToggleCompletion flips the completed flag of the task with id.
func ToggleCompletion(forest []model.Task, id float64, now time.Time) []model.Task {
	out, _ := toggle(forest, id, nil, now)
	return out
}

// SetCompletion forces the completed flag of the task with id to status.
func SetCompletion(forest []model.Task, id float64, status bool, now time.Time) []model.Task {
	out, _ := toggle(forest, id, &status, now)
	return out
}

func toggle(tasks []model.Task, id float64, explicit *bool, now time.Time) ([]model.Task, bool) {
	for i, t := range tasks {
		if t.ID == id {
			return replaceAt(tasks, i, toggleNode(t, explicit, now)), true
		}
		if t.HasSubtasks() {
			subs, found := toggle(t.Subtasks, id, explicit, now)
			if found {
				t.Subtasks = subs
				return replaceAt(tasks, i, settleAncestor(t, now)), true
			}
		}
	}
	return tasks, false
}

// toggleNode applies the new status to t and pushes it one level down.
func toggleNode(t model.Task, explicit *bool, now time.Time) model.Task {
	completed := !t.Completed
	if explicit != nil {
		completed = *explicit
	}

	if t.HasSubtasks() {
		subs := make([]model.Task, len(t.Subtasks))
		for i, s := range t.Subtasks {
			if completed {
				s.Completed = true
				if s.FinishedAt == nil {
					s.FinishedAt = stamp(now)
				}
			} else {
				s.FinishedAt = nil
			}
			subs[i] = s
		}
		t.Subtasks = subs
	}

	t.Completed = completed
	if completed && allCompleted(t.Subtasks) {
		if t.FinishedAt == nil {
			t.FinishedAt = stamp(now)
		}
	} else {
		t.FinishedAt = nil
	}
	return t
}

// settleAncestor recomputes a parent after one of its descendants changed.
func settleAncestor(t model.Task, now time.Time) model.Task {
	allDone := t.HasSubtasks() && allCompleted(t.Subtasks)
	t.Completed = allDone || t.Completed
	if t.Completed && allDone {
		if t.FinishedAt == nil {
			t.FinishedAt = stamp(now)
		}
	} else {
		t.FinishedAt = nil
	}
	return t
}

// AddSubtask appends a new leaf under parentID and expands the parent.
func AddSubtask(forest []model.Task, parentID float64, text string, now time.Time) []model.Task {
	child, ok := Create(text, now)
	if !ok {
		return forest
	}
	out, _ := update(forest, parentID, func(t model.Task) model.Task {
		subs := make([]model.Task, 0, len(t.Subtasks)+1)
		subs = append(subs, t.Subtasks...)
		t.Subtasks = append(subs, child)
		t.Expanded = true
		return t
	})
	return out
}

// Delete removes the task with id together with its subtree.
func Delete(forest []model.Task, id float64) []model.Task {
	out, _ := remove(forest, id)
	return out
}

func remove(tasks []model.Task, id float64) ([]model.Task, bool) {
	for i, t := range tasks {
		if t.ID == id {
			out := make([]model.Task, 0, len(tasks)-1)
			out = append(out, tasks[:i]...)
			return append(out, tasks[i+1:]...), true
		}
		if t.HasSubtasks() {
			subs, found := remove(t.Subtasks, id)
			if found {
				t.Subtasks = subs
				return replaceAt(tasks, i, t), true
			}
		}
	}
	return tasks, false
}

// ToggleExpansion flips expanded on the matched task only.
func ToggleExpansion(forest []model.Task, id float64) []model.Task {
	out, _ := update(forest, id, func(t model.Task) model.Task {
		t.Expanded = !t.Expanded
		return t
	})
	return out
}

// ExpandAll expands every task that has subtasks and collapses leaves.
func ExpandAll(forest []model.Task) []model.Task {
	return mapAll(forest, func(t model.Task) model.Task {
		t.Expanded = t.HasSubtasks()
		return t
	})
}

// CollapseAll collapses every task.
func CollapseAll(forest []model.Task) []model.Task {
	return mapAll(forest, func(t model.Task) model.Task {
		t.Expanded = false
		return t
	})
}

// AreAllExpanded reports whether every task with subtasks is expanded.
// A forest without any subtasks is never considered expanded.
func AreAllExpanded(forest []model.Task) bool {
	found := false
	var walk func([]model.Task) bool
	walk = func(tasks []model.Task) bool {
		for _, t := range tasks {
			if !t.HasSubtasks() {
				continue
			}
			found = true
			if !t.Expanded || !walk(t.Subtasks) {
				return false
			}
		}
		return true
	}
	return walk(forest) && found
}

// UpdateText replaces the text of the task with id.
func UpdateText(forest []model.Task, id float64, text string) []model.Task {
	text = strings.TrimSpace(text)
	if text == "" {
		return forest
	}
	out, _ := update(forest, id, func(t model.Task) model.Task {
		t.Text = text
		return t
	})
	return out
}

// FilterIncomplete keeps only incomplete tasks, at every depth.
func FilterIncomplete(forest []model.Task) []model.Task {
	out := make([]model.Task, 0, len(forest))
	for _, t := range forest {
		if t.Completed {
			continue
		}
		t.Subtasks = FilterIncomplete(t.Subtasks)
		out = append(out, t)
	}
	return out
}

// Clone returns a deep copy of the forest that shares no slices with it.
func Clone(forest []model.Task) []model.Task {
	if forest == nil {
		return nil
	}
	out := make([]model.Task, len(forest))
	for i, t := range forest {
		if t.FinishedAt != nil {
			f := *t.FinishedAt
			t.FinishedAt = &f
		}
		t.Subtasks = Clone(t.Subtasks)
		out[i] = t
	}
	return out
}

// update applies fn to the task with id.
func update(tasks []model.Task, id float64, fn func(model.Task) model.Task) ([]model.Task, bool) {
	for i, t := range tasks {
		if t.ID == id {
			return replaceAt(tasks, i, fn(t)), true
		}
		if t.HasSubtasks() {
			subs, found := update(t.Subtasks, id, fn)
			if found {
				t.Subtasks = subs
				return replaceAt(tasks, i, t), true
			}
		}
	}
	return tasks, false
}

func mapAll(tasks []model.Task, fn func(model.Task) model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		if t.HasSubtasks() {
			t.Subtasks = mapAll(t.Subtasks, fn)
		}
		out[i] = fn(t)
	}
	return out
}

func replaceAt(tasks []model.Task, i int, t model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	out[i] = t
	return out
}

func allCompleted(tasks []model.Task) bool {
	for _, t := range tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}

func stamp(now time.Time) *time.Time {
	t := now.UTC()
	return &t
}
