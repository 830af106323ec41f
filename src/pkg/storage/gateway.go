package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"dailyfocus/local-app/src/pkg/log"
	"dailyfocus/local-app/src/pkg/model"
)

// Gateway is the typed access point to the persisted state. Single-key reads
// fall back to a default and single-key writes only log on failure; the
// batch writers report errors to their caller.
type Gateway struct {
	mu     sync.Mutex
	store  Store
	logger *log.Logger
}

// NewGateway wraps store. The caller keeps no other reference to it.
func NewGateway(store Store, logger *log.Logger) *Gateway {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Gateway{store: store, logger: logger}
}

// Close flushes and closes the underlying store.
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.store.Flush(); err != nil {
		g.logger.Error(context.Background(), "Failed to flush store on close", log.Fields{"error": err})
	}
	return g.store.Close()
}

// read decodes key into a value seeded by def and reports whether a stored
// value was used. Absent, null and undecodable values all yield def().
func read[T any](g *Gateway, key Key, def func() T) (T, bool) {
	g.mu.Lock()
	raw, err := g.store.Read(key)
	g.mu.Unlock()
	if errors.Is(err, ErrNotFound) {
		return def(), false
	}
	if err != nil {
		g.logger.Error(context.Background(), "Failed to read key", log.Fields{"key": string(key), "error": err})
		return def(), false
	}
	if string(raw) == "null" {
		return def(), false
	}
	v := def()
	if err := json.Unmarshal(raw, &v); err != nil {
		g.logger.Error(context.Background(), "Failed to decode key", log.Fields{"key": string(key), "error": err})
		return def(), false
	}
	return v, true
}

func emptyTasks() []model.Task { return []model.Task{} }

// set writes and flushes one key. Failures are logged and the write is lost.
func (g *Gateway) set(key Key, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		g.logger.Error(context.Background(), "Failed to encode key", log.Fields{"key": string(key), "error": err})
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.store.Write(key, raw); err != nil {
		g.logger.Error(context.Background(), "Failed to write key", log.Fields{"key": string(key), "error": err})
		return
	}
	if err := g.store.Flush(); err != nil {
		g.logger.Error(context.Background(), "Failed to flush store", log.Fields{"key": string(key), "error": err})
	}
}

// setAll encodes every value first, then writes them in one unit and flushes once.
func (g *Gateway) setAll(values map[Key]interface{}) error {
	encoded := make(map[Key][]byte, len(values))
	for key, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		encoded[key] = raw
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.store.WriteAll(encoded); err != nil {
		g.logger.Error(context.Background(), "Failed to write batch", log.Fields{"error": err})
		return fmt.Errorf("failed to write data: %w", err)
	}
	if err := g.store.Flush(); err != nil {
		g.logger.Error(context.Background(), "Failed to flush batch", log.Fields{"error": err})
		return fmt.Errorf("failed to flush data: %w", err)
	}
	return nil
}

// TodayTasks returns the Today list, falling back to the legacy key.
func (g *Gateway) TodayTasks() []model.Task {
	tasks, ok := read(g, KeyTodayTasks, emptyTasks)
	if !ok {
		tasks, _ = read(g, keyLegacyTodayTasks, emptyTasks)
	}
	return nonNilTasks(tasks)
}

func (g *Gateway) SetTodayTasks(tasks []model.Task) {
	g.set(KeyTodayTasks, nonNilTasks(tasks))
}

func (g *Gateway) MustDoTasks() []model.Task {
	tasks, _ := read(g, KeyMustDoTasks, emptyTasks)
	return nonNilTasks(tasks)
}

func (g *Gateway) SetMustDoTasks(tasks []model.Task) {
	g.set(KeyMustDoTasks, nonNilTasks(tasks))
}

func (g *Gateway) TaskHistory() model.TaskHistory {
	history, _ := read(g, KeyTaskHistory, func() model.TaskHistory { return model.TaskHistory{} })
	if history == nil {
		history = model.TaskHistory{}
	}
	return history
}

func (g *Gateway) SetTaskHistory(history model.TaskHistory) {
	g.set(KeyTaskHistory, history)
}

// LastDate returns the date key of the last daily rollover, or "" when none ran.
func (g *Gateway) LastDate() string {
	date, _ := read(g, KeyLastDate, func() string { return "" })
	return date
}

func (g *Gateway) SetLastDate(date string) {
	g.set(KeyLastDate, date)
}

func (g *Gateway) Settings() model.Settings {
	settings, _ := read(g, KeySettings, model.DefaultSettings)
	return settings
}

func (g *Gateway) SetSettings(settings model.Settings) {
	g.set(KeySettings, settings)
}

func (g *Gateway) CurrentWeekTopics() []model.LearningTopic {
	topics, _ := read(g, KeyCurrentWeekTopics, func() []model.LearningTopic { return []model.LearningTopic{} })
	if topics == nil {
		topics = []model.LearningTopic{}
	}
	return topics
}

func (g *Gateway) SetCurrentWeekTopics(topics []model.LearningTopic) {
	if topics == nil {
		topics = []model.LearningTopic{}
	}
	g.set(KeyCurrentWeekTopics, topics)
}

func (g *Gateway) LearningHistory() model.LearningHistory {
	history, _ := read(g, KeyLearningHistory, func() model.LearningHistory { return model.LearningHistory{} })
	if history == nil {
		history = model.LearningHistory{}
	}
	return history
}

func (g *Gateway) SetLearningHistory(history model.LearningHistory) {
	g.set(KeyLearningHistory, history)
}

func (g *Gateway) LastWeekID() string {
	id, _ := read(g, KeyLastWeekID, func() string { return "" })
	return id
}

func (g *Gateway) SetLastWeekID(id string) {
	g.set(KeyLastWeekID, id)
}

func (g *Gateway) LearningSettings() model.LearningSettings {
	settings, _ := read(g, KeyLearningSettings, model.DefaultLearningSettings)
	return settings
}

func (g *Gateway) SetLearningSettings(settings model.LearningSettings) {
	g.set(KeyLearningSettings, settings)
}

func (g *Gateway) LearningStatistics() model.LearningStatistics {
	st, _ := read(g, KeyLearningStatistics, model.DefaultLearningStatistics)
	if st.TopicsByMonth == nil {
		st.TopicsByMonth = map[string]model.MonthTopicCount{}
	}
	if st.TopicsByWeek == nil {
		st.TopicsByWeek = map[string]model.WeekTopicCount{}
	}
	return st
}

func (g *Gateway) SetLearningStatistics(st model.LearningStatistics) {
	g.set(KeyLearningStatistics, st)
}

// AppData reads the complete task-side state.
func (g *Gateway) AppData() model.AppData {
	return model.AppData{
		TodayTasks:  g.TodayTasks(),
		MustDoTasks: g.MustDoTasks(),
		TaskHistory: g.TaskHistory(),
		LastDate:    g.LastDate(),
		Settings:    g.Settings(),
	}
}

// SetAll replaces the complete task-side state and flushes once.
func (g *Gateway) SetAll(data model.AppData) error {
	history := data.TaskHistory
	if history == nil {
		history = model.TaskHistory{}
	}
	return g.setAll(map[Key]interface{}{
		KeyTodayTasks:  nonNilTasks(data.TodayTasks),
		KeyMustDoTasks: nonNilTasks(data.MustDoTasks),
		KeyTaskHistory: history,
		KeyLastDate:    data.LastDate,
		KeySettings:    data.Settings,
	})
}

// LearningData reads the complete learning-side state.
func (g *Gateway) LearningData() model.LearningData {
	return model.LearningData{
		CurrentWeekTopics:  g.CurrentWeekTopics(),
		LearningHistory:    g.LearningHistory(),
		LastWeekID:         g.LastWeekID(),
		LearningSettings:   g.LearningSettings(),
		LearningStatistics: g.LearningStatistics(),
	}
}

// SetAllLearningData replaces the complete learning-side state and flushes once.
func (g *Gateway) SetAllLearningData(data model.LearningData) error {
	topics := data.CurrentWeekTopics
	if topics == nil {
		topics = []model.LearningTopic{}
	}
	history := data.LearningHistory
	if history == nil {
		history = model.LearningHistory{}
	}
	st := data.LearningStatistics
	if st.TopicsByMonth == nil {
		st.TopicsByMonth = map[string]model.MonthTopicCount{}
	}
	if st.TopicsByWeek == nil {
		st.TopicsByWeek = map[string]model.WeekTopicCount{}
	}
	return g.setAll(map[Key]interface{}{
		KeyCurrentWeekTopics:  topics,
		KeyLearningHistory:    history,
		KeyLastWeekID:         data.LastWeekID,
		KeyLearningSettings:   data.LearningSettings,
		KeyLearningStatistics: st,
	})
}

func nonNilTasks(tasks []model.Task) []model.Task {
	if tasks == nil {
		return []model.Task{}
	}
	return tasks
}
