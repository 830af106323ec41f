// Package notify delivers user notifications and schedules the Must-Do reminder.
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"dailyfocus/local-app/src/pkg/log"
)

// Notifier delivers one notification. Delivery is fire-and-forget.
type Notifier interface {
	Notify(title, body string) error
}

// WriterNotifier prints notifications to a terminal or any other writer.
type WriterNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

func NewWriterNotifier(out io.Writer) *WriterNotifier {
	return &WriterNotifier{out: out}
}

func (n *WriterNotifier) Notify(title, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := fmt.Fprintf(n.out, "\a\n[%s] %s\n", title, body)
	return err
}

// LogNotifier records notifications in the info log.
type LogNotifier struct {
	logger *log.Logger
}

func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(title, body string) error {
	n.logger.Info(context.Background(), "Notification", log.Fields{"title": title, "body": body})
	return nil
}

// Multi sends to every notifier and returns the first error.
type Multi []Notifier

func (m Multi) Notify(title, body string) error {
	var first error
	for _, n := range m {
		if err := n.Notify(title, body); err != nil && first == nil {
			first = err
		}
	}
	return first
}
