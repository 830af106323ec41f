package session

import (
	"dailyfocus/local-app/src/pkg/model"
	"dailyfocus/local-app/src/pkg/task"
)

// Message is a plain confirmation returned by mutating commands.
type Message string

// TaskListResult is returned by today list and mustdo list.
type TaskListResult struct {
	List  model.TaskList
	Tasks []model.Task
	Root  task.Counts
	All   task.Counts
}

// TopicListResult is returned by topic list.
type TopicListResult struct {
	WeekID string
	Topics []model.LearningTopic
}

// HistoryResult is returned by history list.
type HistoryResult struct {
	Entries []model.HistoryEntry
}

// WeeksResult is returned by history weeks.
type WeeksResult struct {
	Weeks []model.WeeklyLearningEntry
}

// RolloverResult is returned by system rollover.
type RolloverResult struct {
	DayDue, DayArchived   bool
	WeekDue, WeekArchived bool
}

// SettingsResult is returned by settings show.
type SettingsResult struct {
	Settings         model.Settings
	LearningSettings model.LearningSettings
}
