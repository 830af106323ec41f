// Package metrics keeps prometheus counters and gauges of the task lists and
// writes them to a node-exporter textfile.
package metrics

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"dailyfocus/local-app/src/pkg/event"
	"dailyfocus/local-app/src/pkg/log"
	"dailyfocus/local-app/src/pkg/model"
	"dailyfocus/local-app/src/pkg/task"
	"dailyfocus/local-app/src/pkg/topic"
)

// Recorder owns a private registry so several recorders can coexist.
type Recorder struct {
	registry *prometheus.Registry
	logger   *log.Logger

	Tasks           *prometheus.GaugeVec
	TaskChanges     *prometheus.CounterVec
	Topics          prometheus.Gauge
	BlogPosts       prometheus.Gauge
	Rollovers       *prometheus.CounterVec
	RemindersSent   prometheus.Counter
	Imports         prometheus.Counter
	SettingsChanges prometheus.Counter
}

func NewRecorder(logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		logger:   logger,
		Tasks: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dailyfocus_tasks",
				Help: "Root tasks of a live list by state",
			},
			[]string{"list", "state"}, // today/mustdo, completed/open
		),
		TaskChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dailyfocus_task_changes_total",
				Help: "Total number of task list mutations",
			},
			[]string{"list"},
		),
		Topics: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "dailyfocus_topics",
				Help: "Learning topics of the current week at every depth",
			},
		),
		BlogPosts: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "dailyfocus_blog_posts",
				Help: "Topics of the current week with a written blog post",
			},
		),
		Rollovers: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dailyfocus_rollovers_total",
				Help: "Total number of day and week transitions",
			},
			[]string{"period", "archived"},
		),
		RemindersSent: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "dailyfocus_reminders_sent_total",
				Help: "Total number of Must-Do reminders delivered",
			},
		),
		Imports: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "dailyfocus_imports_total",
				Help: "Total number of data imports",
			},
		),
		SettingsChanges: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "dailyfocus_settings_changes_total",
				Help: "Total number of settings updates",
			},
		),
	}
}

// Registry exposes the recorder's registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Subscribe feeds the recorder from the application events.
func (r *Recorder) Subscribe(em *event.EventManager) {
	em.Subscribe(event.TasksChanged, func(e event.Event) {
		d, ok := e.Data.(event.TasksChangedData)
		if !ok {
			return
		}
		r.ObserveTasks(d.List, d.Tasks)
		r.TaskChanges.WithLabelValues(string(d.List)).Inc()
	})
	em.Subscribe(event.TopicsChanged, func(e event.Event) {
		if topics, ok := e.Data.([]model.LearningTopic); ok {
			r.ObserveTopics(topics)
		}
	})
	em.Subscribe(event.DayRolledOver, func(e event.Event) {
		if d, ok := e.Data.(event.RolloverData); ok {
			r.Rollovers.WithLabelValues("day", strconv.FormatBool(d.Archived)).Inc()
		}
	})
	em.Subscribe(event.WeekRolledOver, func(e event.Event) {
		if d, ok := e.Data.(event.RolloverData); ok {
			r.Rollovers.WithLabelValues("week", strconv.FormatBool(d.Archived)).Inc()
		}
	})
	em.Subscribe(event.ReminderSent, func(event.Event) { r.RemindersSent.Inc() })
	em.Subscribe(event.DataImported, func(event.Event) { r.Imports.Inc() })
	em.Subscribe(event.SettingsChanged, func(event.Event) { r.SettingsChanges.Inc() })
}

// ObserveTasks sets the task gauges of list.
func (r *Recorder) ObserveTasks(list model.TaskList, tasks []model.Task) {
	c := task.CountRoot(tasks)
	r.Tasks.WithLabelValues(string(list), "completed").Set(float64(c.Completed))
	r.Tasks.WithLabelValues(string(list), "open").Set(float64(c.Total - c.Completed))
}

func (r *Recorder) ObserveTopics(topics []model.LearningTopic) {
	r.Topics.Set(float64(topic.CountAll(topics)))
	r.BlogPosts.Set(float64(topic.CountBlogPosts(topics)))
}

// WriteFile writes the registry in the text exposition format.
func (r *Recorder) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		r.logger.Error(context.Background(), "Failed to write metrics", log.Fields{"path": path, "error": err})
		return err
	}
	return nil
}
