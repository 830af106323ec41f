package data

import (
	"context"
	"fmt"
	"strings"

	"dailyfocus/local-app/src/pkg/event"
	"dailyfocus/local-app/src/pkg/log"
	"dailyfocus/local-app/src/pkg/model"
	"dailyfocus/local-app/src/pkg/task"
)

// TaskManager handles the Today and Must-Do task lists
type TaskManager struct {
	managerBase
}

func (tm *TaskManager) load(list model.TaskList) ([]model.Task, error) {
	switch list {
	case model.TodayList:
		return tm.gateway.TodayTasks(), nil
	case model.MustDoList:
		return tm.gateway.MustDoTasks(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownList, list)
	}
}

func (tm *TaskManager) store(list model.TaskList, tasks []model.Task) {
	if list == model.MustDoList {
		tm.gateway.SetMustDoTasks(tasks)
	} else {
		tm.gateway.SetTodayTasks(tasks)
	}
}

// mutate runs fn over the stored list under the manager lock. When id is
// non-nil the task must exist first.
func (tm *TaskManager) mutate(op string, list model.TaskList, id *float64, fn func([]model.Task) []model.Task) error {
	ctx := context.Background()

	tm.mu.Lock()
	tasks, err := tm.load(list)
	if err != nil {
		tm.mu.Unlock()
		return err
	}
	if id != nil {
		if _, ok := task.Find(tasks, *id); !ok {
			tm.mu.Unlock()
			tm.logger.Warn(ctx, "Task not found", log.Fields{"operation": op, "list": list, "id": *id})
			return ErrTaskNotFound
		}
	}
	tasks = fn(tasks)
	tm.store(list, tasks)
	tm.mu.Unlock()

	tm.logger.Debug(ctx, "Task list updated", log.Fields{"operation": op, "list": list, "count": len(tasks)})
	tm.events.Publish(event.Event{Type: event.TasksChanged, Data: event.TasksChangedData{List: list, Tasks: task.Clone(tasks)}})
	return nil
}

// Tasks returns the current forest of list.
func (tm *TaskManager) Tasks(list model.TaskList) ([]model.Task, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.load(list)
}

// Resolve finds a task of list by its position path.
func (tm *TaskManager) Resolve(list model.TaskList, path string) (model.Task, error) {
	tasks, err := tm.Tasks(list)
	if err != nil {
		return model.Task{}, err
	}
	t, err := task.ResolvePath(tasks, path)
	if err != nil {
		return model.Task{}, fmt.Errorf("%w: %v", ErrTaskNotFound, err)
	}
	return t, nil
}

// Add appends a root task.
func (tm *TaskManager) Add(list model.TaskList, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrBlankText
	}
	now := tm.clock.Now()
	return tm.mutate("add", list, nil, func(ts []model.Task) []model.Task {
		return task.Append(ts, text, now)
	})
}

// AddSubtask appends a subtask under parentID.
func (tm *TaskManager) AddSubtask(list model.TaskList, parentID float64, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrBlankText
	}
	now := tm.clock.Now()
	return tm.mutate("add_subtask", list, &parentID, func(ts []model.Task) []model.Task {
		return task.AddSubtask(ts, parentID, text, now)
	})
}

// Toggle flips the completion of id and cascades.
func (tm *TaskManager) Toggle(list model.TaskList, id float64) error {
	now := tm.clock.Now()
	return tm.mutate("toggle", list, &id, func(ts []model.Task) []model.Task {
		return task.ToggleCompletion(ts, id, now)
	})
}

// SetCompleted sets the completion of id and cascades.
func (tm *TaskManager) SetCompleted(list model.TaskList, id float64, completed bool) error {
	now := tm.clock.Now()
	return tm.mutate("set_completed", list, &id, func(ts []model.Task) []model.Task {
		return task.SetCompletion(ts, id, completed, now)
	})
}

// UpdateText renames id.
func (tm *TaskManager) UpdateText(list model.TaskList, id float64, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrBlankText
	}
	return tm.mutate("update", list, &id, func(ts []model.Task) []model.Task {
		return task.UpdateText(ts, id, text)
	})
}

// Delete removes id and its subtree.
func (tm *TaskManager) Delete(list model.TaskList, id float64) error {
	return tm.mutate("delete", list, &id, func(ts []model.Task) []model.Task {
		return task.Delete(ts, id)
	})
}

func (tm *TaskManager) ToggleExpansion(list model.TaskList, id float64) error {
	return tm.mutate("toggle_expansion", list, &id, func(ts []model.Task) []model.Task {
		return task.ToggleExpansion(ts, id)
	})
}

// ExpandAll expands every task that has subtasks.
func (tm *TaskManager) ExpandAll(list model.TaskList) error {
	return tm.mutate("expand_all", list, nil, task.ExpandAll)
}

func (tm *TaskManager) CollapseAll(list model.TaskList) error {
	return tm.mutate("collapse_all", list, nil, task.CollapseAll)
}

// AllExpanded reports whether every expandable task of list is expanded.
func (tm *TaskManager) AllExpanded(list model.TaskList) (bool, error) {
	tasks, err := tm.Tasks(list)
	if err != nil {
		return false, err
	}
	return task.AreAllExpanded(tasks), nil
}

// Clear empties list.
func (tm *TaskManager) Clear(list model.TaskList) error {
	return tm.mutate("clear", list, nil, func([]model.Task) []model.Task {
		return []model.Task{}
	})
}

// Counts returns the root and all-level counts of list.
func (tm *TaskManager) Counts(list model.TaskList) (root, all task.Counts, err error) {
	tasks, err := tm.Tasks(list)
	if err != nil {
		return task.Counts{}, task.Counts{}, err
	}
	return task.CountRoot(tasks), task.CountAll(tasks), nil
}

// ParseList maps a scope name to its task list.
func ParseList(s string) (model.TaskList, error) {
	switch model.TaskList(strings.ToLower(s)) {
	case model.TodayList:
		return model.TodayList, nil
	case model.MustDoList, "must-do", "must":
		return model.MustDoList, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownList, s)
	}
}
