package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dailyfocus/local-app/src/pkg/event"
	"dailyfocus/local-app/src/pkg/log"
	"dailyfocus/local-app/src/pkg/model"
)

// ReminderTitle is the title of every Must-Do reminder.
const ReminderTitle = "Must-Do Tasks Reminder"

// ReminderBody returns the reminder text for the incomplete root tasks of
// the Must-Do list, or false when there is nothing to remind about.
func ReminderBody(mustDo []model.Task) (string, bool) {
	n := 0
	for _, t := range mustDo {
		if !t.Completed {
			n++
		}
	}
	if n == 0 {
		return "", false
	}
	suffix := ""
	if n > 1 {
		suffix = "s"
	}
	return fmt.Sprintf("You have %d incomplete Must-Do task%s!", n, suffix), true
}

// Reminder periodically reminds about incomplete Must-Do tasks.
type Reminder struct {
	notifier Notifier
	source   func() []model.Task
	events   *event.EventManager
	logger   *log.Logger

	mu       sync.Mutex
	enabled  bool
	interval time.Duration
	reset    chan time.Duration
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewReminder returns a stopped reminder firing every hours hours. source
// returns the current Must-Do list. events may be nil.
func NewReminder(n Notifier, source func() []model.Task, hours int, enabled bool, events *event.EventManager, logger *log.Logger) *Reminder {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Reminder{
		notifier: n,
		source:   source,
		events:   events,
		logger:   logger,
		enabled:  enabled,
		interval: HoursToDuration(hours),
		reset:    make(chan time.Duration, 1),
	}
}

// HoursToDuration clamps hours into 1..24 and converts it.
func HoursToDuration(hours int) time.Duration {
	if hours < 1 {
		hours = 1
	}
	if hours > 24 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// Check sends one reminder if permitted and needed, and reports whether it did.
func (r *Reminder) Check() bool {
	r.mu.Lock()
	enabled := r.enabled
	r.mu.Unlock()
	if !enabled {
		return false
	}

	tasks := r.source()
	body, ok := ReminderBody(tasks)
	if !ok {
		return false
	}
	if err := r.notifier.Notify(ReminderTitle, body); err != nil {
		r.logger.Error(context.Background(), "Failed to deliver reminder", log.Fields{"error": err})
		return false
	}
	if r.events != nil {
		count := 0
		for _, t := range tasks {
			if !t.Completed {
				count++
			}
		}
		r.events.Publish(event.Event{Type: event.ReminderSent, Data: event.ReminderData{Count: count}})
	}
	return true
}

// SetEnabled grants or revokes permission to notify.
func (r *Reminder) SetEnabled(enabled bool) {
	r.mu.Lock()
	r.enabled = enabled
	r.mu.Unlock()
}

// SetInterval reschedules the reminder to every hours hours.
func (r *Reminder) SetInterval(hours int) {
	d := HoursToDuration(hours)
	r.mu.Lock()
	r.interval = d
	r.mu.Unlock()
	// Keep only the latest pending interval.
	select {
	case <-r.reset:
	default:
	}
	select {
	case r.reset <- d:
	default:
	}
}

// Interval returns the current reminder period.
func (r *Reminder) Interval() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interval
}

// Start begins the periodic reminders.
func (r *Reminder) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}
	ctx, r.cancel = context.WithCancel(ctx)
	interval := r.interval

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.Check()
			case d := <-r.reset:
				ticker.Reset(d)
				r.logger.Info(ctx, "Reminder rescheduled", log.Fields{"interval": d.String()})
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop ends the periodic reminders.
func (r *Reminder) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()
	if cancel != nil {
		cancel()
		r.wg.Wait()
	}
}
