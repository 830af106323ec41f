// Package event handles triggering of operations without direct dependency
package event

import (
	"context"
	"sync"

	"dailyfocus/local-app/src/pkg/log"
	"dailyfocus/local-app/src/pkg/model"
)

// EventType represents the type of event
type EventType int

const (
	TasksChanged EventType = iota
	TopicsChanged
	SettingsChanged
	DayRolledOver
	WeekRolledOver
	ReminderSent
	DataImported
)

func (t EventType) String() string {
	switch t {
	case TasksChanged:
		return "tasks_changed"
	case TopicsChanged:
		return "topics_changed"
	case SettingsChanged:
		return "settings_changed"
	case DayRolledOver:
		return "day_rolled_over"
	case WeekRolledOver:
		return "week_rolled_over"
	case ReminderSent:
		return "reminder_sent"
	case DataImported:
		return "data_imported"
	default:
		return "unknown"
	}
}

// Event represents an event with its type and associated data
type Event struct {
	Type EventType
	Data interface{}
}

// TasksChangedData is carried by TasksChanged.
type TasksChangedData struct {
	List  model.TaskList
	Tasks []model.Task
}

// RolloverData is carried by DayRolledOver and WeekRolledOver. From and To
// are date keys or week ids.
type RolloverData struct {
	From     string
	To       string
	Archived bool
}

// ReminderData is carried by ReminderSent.
type ReminderData struct {
	Count int
}

// EventHandler is a function type for event handlers
type EventHandler func(Event)

// EventManager manages event subscriptions and publications
type EventManager struct {
	subscribers map[EventType][]EventHandler
	mu          sync.RWMutex
	inflight    sync.WaitGroup
	logger      *log.Logger
}

// NewEventManager creates a new EventManager instance
func NewEventManager(logger *log.Logger) *EventManager {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &EventManager{
		subscribers: make(map[EventType][]EventHandler),
		logger:      logger,
	}
}

// Subscribe adds a new event handler for a specific event type
func (em *EventManager) Subscribe(eventType EventType, handler EventHandler) {
	em.mu.Lock()
	defer em.mu.Unlock()
	em.subscribers[eventType] = append(em.subscribers[eventType], handler)
}

// Publish runs every handler subscribed to the event's type on its own goroutine.
func (em *EventManager) Publish(event Event) {
	em.mu.RLock()
	defer em.mu.RUnlock()
	for _, handler := range em.subscribers[event.Type] {
		em.inflight.Add(1)
		go func(h EventHandler) {
			defer em.inflight.Done()
			defer func() {
				if r := recover(); r != nil {
					em.logger.Error(context.Background(), "Panic in event handler", log.Fields{
						"event": event.Type.String(),
						"panic": r,
					})
				}
			}()
			h(event)
		}(handler)
	}
}

// Wait blocks until every handler started by Publish has returned.
func (em *EventManager) Wait() {
	em.inflight.Wait()
}
