package model

import "time"

// Task is a node of a task tree. Subtasks keep insertion order.
type Task struct {
	ID         float64    `json:"id" yaml:"id"`
	Text       string     `json:"text" yaml:"text"`
	Completed  bool       `json:"completed" yaml:"completed"`
	Subtasks   []Task     `json:"subtasks" yaml:"subtasks"`
	Expanded   bool       `json:"expanded" yaml:"expanded"`
	CreatedAt  time.Time  `json:"created_at" yaml:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
}

// HasSubtasks reports whether the task is not a leaf.
func (t Task) HasSubtasks() bool {
	return len(t.Subtasks) > 0
}

// HistoryEntry is the frozen snapshot of one finished day.
// Completed and Total count root tasks only.
type HistoryEntry struct {
	Date      string `json:"date" yaml:"date"`
	Tasks     []Task `json:"tasks" yaml:"tasks"`
	Completed int    `json:"completed" yaml:"completed"`
	Total     int    `json:"total" yaml:"total"`
}

// TaskHistory maps a date key to the entry archived for that day.
type TaskHistory map[string]HistoryEntry

// Settings are the user preferences of the task lists.
type Settings struct {
	AutoCarryOver  bool `json:"autoCarryOver" yaml:"autoCarryOver"`
	NotifyInterval int  `json:"notifyInterval" yaml:"notifyInterval" validate:"min=1,max=24"`
	DarkMode       bool `json:"darkMode" yaml:"darkMode"`
	AutoStart      bool `json:"autoStart" yaml:"autoStart"`
}

// DefaultSettings returns the settings used when nothing is stored yet.
func DefaultSettings() Settings {
	return Settings{
		AutoCarryOver:  true,
		NotifyInterval: 3,
		DarkMode:       false,
		AutoStart:      false,
	}
}

// TaskList names one of the two live task lists.
type TaskList string

const (
	TodayList  TaskList = "today"
	MustDoList TaskList = "mustdo"
)

// AppData is the complete task-side state, as imported or exported in one piece.
type AppData struct {
	TodayTasks  []Task      `json:"todayTasks" yaml:"todayTasks"`
	MustDoTasks []Task      `json:"mustDoTasks" yaml:"mustDoTasks"`
	TaskHistory TaskHistory `json:"taskHistory" yaml:"taskHistory"`
	LastDate    string      `json:"lastDate" yaml:"lastDate"`
	Settings    Settings    `json:"settings" yaml:"settings"`
}
