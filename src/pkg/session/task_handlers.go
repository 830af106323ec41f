package session

import (
	"context"
	"fmt"
	"strings"

	"dailyfocus/local-app/src/pkg/data"
	"dailyfocus/local-app/src/pkg/log"
	"dailyfocus/local-app/src/pkg/model"
)

// taskTarget resolves the list named by the scope and the task at path.
func taskTarget(s *Session, cmd model.Command, path string) (model.TaskList, model.Task, error) {
	list, err := data.ParseList(cmd.Scope)
	if err != nil {
		return "", model.Task{}, err
	}
	t, err := s.DataManager.TaskManager.Resolve(list, path)
	if err != nil {
		return "", model.Task{}, err
	}
	return list, t, nil
}

func handleTaskAdd(s *Session, cmd model.Command) (interface{}, error) {
	list, err := data.ParseList(cmd.Scope)
	if err != nil {
		return nil, err
	}
	text := strings.Join(cmd.Args, " ")
	if err := s.DataManager.TaskManager.Add(list, text); err != nil {
		return nil, fmt.Errorf("failed to add task: %w", err)
	}
	s.logger.Info(context.Background(), "Task added", log.Fields{"list": list})
	return Message("Task added"), nil
}

func handleTaskSub(s *Session, cmd model.Command) (interface{}, error) {
	list, parent, err := taskTarget(s, cmd, cmd.Args[0])
	if err != nil {
		return nil, err
	}
	text := strings.Join(cmd.Args[1:], " ")
	if err := s.DataManager.TaskManager.AddSubtask(list, parent.ID, text); err != nil {
		return nil, fmt.Errorf("failed to add subtask: %w", err)
	}
	return Message(fmt.Sprintf("Subtask added under %s", cmd.Args[0])), nil
}

func handleTaskToggle(s *Session, cmd model.Command) (interface{}, error) {
	list, t, err := taskTarget(s, cmd, cmd.Args[0])
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.TaskManager.Toggle(list, t.ID); err != nil {
		return nil, err
	}
	return completionMessage(!t.Completed, cmd.Args[0]), nil
}

func handleTaskDone(s *Session, cmd model.Command) (interface{}, error) {
	return setCompletion(s, cmd, true)
}

func handleTaskUndo(s *Session, cmd model.Command) (interface{}, error) {
	return setCompletion(s, cmd, false)
}

func setCompletion(s *Session, cmd model.Command, completed bool) (interface{}, error) {
	list, t, err := taskTarget(s, cmd, cmd.Args[0])
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.TaskManager.SetCompleted(list, t.ID, completed); err != nil {
		return nil, err
	}
	return completionMessage(completed, cmd.Args[0]), nil
}

func completionMessage(completed bool, path string) Message {
	if completed {
		return Message(fmt.Sprintf("Task %s completed", path))
	}
	return Message(fmt.Sprintf("Task %s reopened", path))
}

func handleTaskDelete(s *Session, cmd model.Command) (interface{}, error) {
	list, t, err := taskTarget(s, cmd, cmd.Args[0])
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.TaskManager.Delete(list, t.ID); err != nil {
		return nil, err
	}
	return Message(fmt.Sprintf("Deleted %q", t.Text)), nil
}

func handleTaskEdit(s *Session, cmd model.Command) (interface{}, error) {
	list, t, err := taskTarget(s, cmd, cmd.Args[0])
	if err != nil {
		return nil, err
	}
	text := strings.Join(cmd.Args[1:], " ")
	if err := s.DataManager.TaskManager.UpdateText(list, t.ID, text); err != nil {
		return nil, err
	}
	return Message("Task updated"), nil
}

func handleTaskExpand(s *Session, cmd model.Command) (interface{}, error) {
	list, t, err := taskTarget(s, cmd, cmd.Args[0])
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.TaskManager.ToggleExpansion(list, t.ID); err != nil {
		return nil, err
	}
	return handleTaskList(s, model.Command{Scope: cmd.Scope, Operation: "list"})
}

func handleTaskExpandAll(s *Session, cmd model.Command) (interface{}, error) {
	list, err := data.ParseList(cmd.Scope)
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.TaskManager.ExpandAll(list); err != nil {
		return nil, err
	}
	return handleTaskList(s, cmd)
}

func handleTaskCollapseAll(s *Session, cmd model.Command) (interface{}, error) {
	list, err := data.ParseList(cmd.Scope)
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.TaskManager.CollapseAll(list); err != nil {
		return nil, err
	}
	return handleTaskList(s, cmd)
}

func handleTaskList(s *Session, cmd model.Command) (interface{}, error) {
	list, err := data.ParseList(cmd.Scope)
	if err != nil {
		return nil, err
	}
	tasks, err := s.DataManager.TaskManager.Tasks(list)
	if err != nil {
		return nil, err
	}
	root, all, err := s.DataManager.TaskManager.Counts(list)
	if err != nil {
		return nil, err
	}
	return TaskListResult{List: list, Tasks: tasks, Root: root, All: all}, nil
}

func handleTaskClear(s *Session, cmd model.Command) (interface{}, error) {
	list, err := data.ParseList(cmd.Scope)
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.TaskManager.Clear(list); err != nil {
		return nil, err
	}
	return Message(fmt.Sprintf("Cleared %s", list)), nil
}
