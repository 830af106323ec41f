// Package rollover archives the live lists into history when a day or an ISO
// week has passed.
package rollover

import (
	"time"

	"dailyfocus/local-app/src/pkg/calendar"
	"dailyfocus/local-app/src/pkg/model"
	"dailyfocus/local-app/src/pkg/stats"
	"dailyfocus/local-app/src/pkg/task"
	"dailyfocus/local-app/src/pkg/topic"
)

// TaskState is the persisted task-side state the daily rollover reads and writes.
type TaskState interface {
	LastDate() string
	SetLastDate(date string)
	TodayTasks() []model.Task
	SetTodayTasks(tasks []model.Task)
	TaskHistory() model.TaskHistory
	SetTaskHistory(history model.TaskHistory)
	Settings() model.Settings
}

// LearningState is the persisted learning-side state the weekly rollover reads and writes.
type LearningState interface {
	LastWeekID() string
	SetLastWeekID(id string)
	CurrentWeekTopics() []model.LearningTopic
	LearningHistory() model.LearningHistory
	SetLearningHistory(history model.LearningHistory)
	LearningSettings() model.LearningSettings
	SetLearningStatistics(st model.LearningStatistics)
}

// Result describes one rollover check. From and To are date keys for the
// daily rollover and week ids for the weekly one.
type Result struct {
	Due      bool
	From     string
	To       string
	Archived bool
}

// Daily runs the day transition if the date of now differs from the stored
// last date. The Must-Do list is never touched. Calling it again on the same
// day does nothing.
//
// With no stored last date the current day is simply recorded.
func Daily(s TaskState, now time.Time) Result {
	today := calendar.DateKey(now)
	last := s.LastDate()
	if last == today {
		return Result{From: last, To: today}
	}
	res := Result{Due: true, From: last, To: today}
	if last == "" {
		s.SetLastDate(today)
		return res
	}

	// Read the stored list rather than any cached copy.
	tasks := s.TodayTasks()
	if len(tasks) > 0 {
		history := s.TaskHistory()
		counts := task.CountRoot(tasks)
		history[last] = model.HistoryEntry{
			Date:      last,
			Tasks:     task.Clone(tasks),
			Completed: counts.Completed,
			Total:     counts.Total,
		}
		s.SetTaskHistory(history)
		res.Archived = true
	}

	if s.Settings().AutoCarryOver {
		s.SetTodayTasks(task.FilterIncomplete(tasks))
	} else {
		s.SetTodayTasks([]model.Task{})
	}

	s.SetLastDate(today)
	return res
}

// Weekly runs the week transition if the ISO week of now differs from the
// stored last week id. The live topic list is archived but not cleared.
// Learning statistics are recomputed on every transition.
func Weekly(s LearningState, now time.Time) Result {
	current := calendar.WeekID(now)
	last := s.LastWeekID()
	if last == current {
		return Result{From: last, To: current}
	}
	res := Result{Due: true, From: last, To: current}

	topics := s.CurrentWeekTopics()
	history := s.LearningHistory()
	if last != "" && len(topics) > 0 && s.LearningSettings().AutoCreateNewWeek {
		if start, end, err := calendar.WeekBounds(last); err == nil {
			history[last] = model.WeeklyLearningEntry{
				WeekID:    last,
				WeekStart: start,
				WeekEnd:   end,
				Topics:    topic.Clone(topics),
				Total:     topic.CountAll(topics),
			}
			s.SetLearningHistory(history)
			res.Archived = true
		}
	}

	s.SetLastWeekID(current)
	s.SetLearningStatistics(stats.Learning(history, topics, current))
	return res
}
