package event

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublish_ReachesSubscribersOfType(t *testing.T) {
	em := NewEventManager(nil)
	var tasks, topics int32

	em.Subscribe(TasksChanged, func(e Event) { atomic.AddInt32(&tasks, 1) })
	em.Subscribe(TasksChanged, func(e Event) { atomic.AddInt32(&tasks, 1) })
	em.Subscribe(TopicsChanged, func(e Event) { atomic.AddInt32(&topics, 1) })

	em.Publish(Event{Type: TasksChanged, Data: TasksChangedData{}})
	em.Wait()

	assert.Equal(t, int32(2), atomic.LoadInt32(&tasks))
	assert.Equal(t, int32(0), atomic.LoadInt32(&topics))
}

func TestPublish_RecoversFromPanic(t *testing.T) {
	em := NewEventManager(nil)
	var called int32
	em.Subscribe(ReminderSent, func(e Event) { panic("boom") })
	em.Subscribe(ReminderSent, func(e Event) { atomic.StoreInt32(&called, 1) })

	assert.NotPanics(t, func() {
		em.Publish(Event{Type: ReminderSent, Data: ReminderData{Count: 2}})
		em.Wait()
	})
	assert.Equal(t, int32(1), atomic.LoadInt32(&called))
}

func TestEventType_String(t *testing.T) {
	assert.Equal(t, "day_rolled_over", DayRolledOver.String())
	assert.Equal(t, "unknown", EventType(99).String())
}
