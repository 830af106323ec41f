// Package data provides data management functionality for the DailyFocus application.
// It coordinates the task, topic, history and settings managers over one storage gateway.
package data

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"dailyfocus/local-app/src/pkg/clock"
	"dailyfocus/local-app/src/pkg/event"
	"dailyfocus/local-app/src/pkg/export"
	"dailyfocus/local-app/src/pkg/log"
	"dailyfocus/local-app/src/pkg/model"
	"dailyfocus/local-app/src/pkg/rollover"
	"dailyfocus/local-app/src/pkg/storage"
	"dailyfocus/local-app/src/pkg/task"
	"dailyfocus/local-app/src/pkg/validate"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrTopicNotFound = errors.New("topic not found")
	ErrLinkNotFound  = errors.New("reference link not found")
	ErrWeekNotFound  = errors.New("week not found")
	ErrBlankText     = errors.New("text must not be blank")
	ErrUnknownList   = errors.New("unknown task list")
	ErrNothingToLoad = errors.New("file contains neither task nor learning data")
)

// DataManager is the main struct that coordinates all data operations
type DataManager struct {
	TaskManager     *TaskManager
	TopicManager    *TopicManager
	HistoryManager  *HistoryManager
	SettingsManager *SettingsManager
	EventManager    *event.EventManager
	Config          *model.Config
	Logger          *log.Logger

	gateway *storage.Gateway
	clock   clock.Clock
	// mu serialises every read-modify-write against the gateway, including rollovers.
	mu sync.Mutex
}

// NewDataManager wires the managers to gw and migrates legacy task data.
func NewDataManager(gw *storage.Gateway, clk clock.Clock, cfg *model.Config, logger *log.Logger) (*DataManager, error) {
	if gw == nil {
		return nil, fmt.Errorf("gateway not initialized")
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	ctx := context.Background()
	logger.Info(ctx, "Creating new DataManager", nil)

	m := &DataManager{
		EventManager: event.NewEventManager(logger),
		Config:       cfg,
		Logger:       logger,
		gateway:      gw,
		clock:        clk,
	}
	base := managerBase{gateway: gw, clock: clk, events: m.EventManager, logger: logger, mu: &m.mu}
	m.TaskManager = &TaskManager{managerBase: base}
	m.TopicManager = &TopicManager{managerBase: base}
	m.HistoryManager = &HistoryManager{managerBase: base}
	m.SettingsManager = &SettingsManager{managerBase: base}

	m.migrate()

	logger.Info(ctx, "DataManager created successfully", nil)
	return m, nil
}

// managerBase is what every manager shares.
type managerBase struct {
	gateway *storage.Gateway
	clock   clock.Clock
	events  *event.EventManager
	logger  *log.Logger
	mu      *sync.Mutex
}

// migrate fills missing created_at fields left by older versions.
func (m *DataManager) migrate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx := context.Background()
	if today := m.gateway.TodayTasks(); task.NeedsMigration(today) {
		m.gateway.SetTodayTasks(task.Migrate(today))
		m.Logger.Info(ctx, "Migrated Today tasks", nil)
	}
	if mustDo := m.gateway.MustDoTasks(); task.NeedsMigration(mustDo) {
		m.gateway.SetMustDoTasks(task.Migrate(mustDo))
		m.Logger.Info(ctx, "Migrated Must-Do tasks", nil)
	}
	history := m.gateway.TaskHistory()
	for _, e := range history {
		if task.NeedsMigration(e.Tasks) {
			m.gateway.SetTaskHistory(task.MigrateHistory(history))
			m.Logger.Info(ctx, "Migrated task history", nil)
			break
		}
	}
}

// Now returns the manager's current time.
func (m *DataManager) Now() time.Time {
	return m.clock.Now()
}

// CheckDay runs the daily rollover check.
func (m *DataManager) CheckDay(now time.Time) rollover.Result {
	m.mu.Lock()
	res := rollover.Daily(m.gateway, now)
	var today []model.Task
	if res.Due {
		today = m.gateway.TodayTasks()
	}
	m.mu.Unlock()

	if res.Due {
		m.Logger.Info(context.Background(), "Day rolled over", log.Fields{"from": res.From, "to": res.To, "archived": res.Archived})
		m.EventManager.Publish(event.Event{Type: event.DayRolledOver, Data: event.RolloverData{From: res.From, To: res.To, Archived: res.Archived}})
		m.EventManager.Publish(event.Event{Type: event.TasksChanged, Data: event.TasksChangedData{List: model.TodayList, Tasks: today}})
	}
	return res
}

// CheckWeek runs the weekly rollover check.
func (m *DataManager) CheckWeek(now time.Time) rollover.Result {
	m.mu.Lock()
	res := rollover.Weekly(m.gateway, now)
	m.mu.Unlock()

	if res.Due {
		m.Logger.Info(context.Background(), "Week rolled over", log.Fields{"from": res.From, "to": res.To, "archived": res.Archived})
		m.EventManager.Publish(event.Event{Type: event.WeekRolledOver, Data: event.RolloverData{From: res.From, To: res.To, Archived: res.Archived}})
	}
	return res
}

// ExportMarkdown renders the history report.
func (m *DataManager) ExportMarkdown(opts model.ExportOptions) string {
	m.mu.Lock()
	history := m.gateway.TaskHistory()
	today := m.gateway.TodayTasks()
	m.mu.Unlock()
	return export.Markdown(history, today, opts, m.clock.Now())
}

// ExportMarkdownFile renders the history report into dir and returns the file path.
func (m *DataManager) ExportMarkdownFile(dir string, opts model.ExportOptions) (string, error) {
	now := m.clock.Now()
	path, err := export.WriteFile(dir, m.ExportMarkdown(opts), now)
	if err != nil {
		m.Logger.Error(context.Background(), "Failed to write markdown export", log.Fields{"error": err})
		return "", err
	}
	return path, nil
}

// DataExport writes the complete stored state to filename.
func (m *DataManager) DataExport(filename, format string) error {
	m.mu.Lock()
	dump := storage.Dump{AppData: m.gateway.AppData(), LearningData: m.gateway.LearningData()}
	m.mu.Unlock()
	if err := storage.FileExport(dump, filename, format); err != nil {
		return fmt.Errorf("failed to export data: %w", err)
	}
	return nil
}

// DataValidate checks a dump file and returns its JSON form with the
// violations found.
func (m *DataManager) DataValidate(filename, format string) ([]byte, validate.Violations, error) {
	raw, err := storage.FileImport(filename, format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to import data: %w", err)
	}
	hasApp, hasLearning := validate.HasAppData(raw), validate.HasLearningData(raw)
	if !hasApp && !hasLearning {
		return nil, nil, ErrNothingToLoad
	}
	var vs validate.Violations
	if hasApp {
		vs = append(vs, validate.AppData(raw)...)
	}
	if hasLearning {
		vs = append(vs, validate.LearningData(raw)...)
	}
	return raw, vs, nil
}

// DataImport validates a dump file and, only when it is valid, replaces the
// stored state with it. Task data is migrated on the way in.
func (m *DataManager) DataImport(filename, format string) error {
	ctx := context.Background()
	raw, vs, err := m.DataValidate(filename, format)
	if err != nil {
		return err
	}
	if len(vs) > 0 {
		m.Logger.Warn(ctx, "Rejected invalid import", log.Fields{"file": filename, "violations": len(vs)})
		return vs
	}

	dump, err := storage.DecodeDump(raw)
	if err != nil {
		return err
	}
	if rules := validate.Settings(dump.Settings); validate.HasAppData(raw) && len(rules) > 0 {
		return rules
	}
	if rules := validate.LearningSettings(dump.LearningSettings); validate.HasLearningData(raw) && len(rules) > 0 {
		return rules
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if validate.HasAppData(raw) {
		data := dump.AppData
		data.TodayTasks = task.Migrate(data.TodayTasks)
		data.MustDoTasks = task.Migrate(data.MustDoTasks)
		data.TaskHistory = task.MigrateHistory(data.TaskHistory)
		if err := m.gateway.SetAll(data); err != nil {
			return fmt.Errorf("failed to import task data: %w", err)
		}
	}
	if validate.HasLearningData(raw) {
		if err := m.gateway.SetAllLearningData(dump.LearningData); err != nil {
			return fmt.Errorf("failed to import learning data: %w", err)
		}
	}

	m.Logger.Info(ctx, "Imported data", log.Fields{"file": filename})
	m.EventManager.Publish(event.Event{Type: event.DataImported, Data: filename})
	return nil
}

// Close waits for event handlers and closes the gateway.
func (m *DataManager) Close() error {
	m.EventManager.Wait()
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gateway.Close()
}
