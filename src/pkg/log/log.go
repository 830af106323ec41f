// Package log provides structured JSON logging of commands, errors and
// informational messages to separate files.
package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"dailyfocus/local-app/src/pkg/model"
)

// Fields carries the structured attributes of one log record.
type Fields map[string]interface{}

// logMessage is a record queued for the writer goroutine.
type logMessage struct {
	level  LogLevel
	msg    string
	fields Fields
	ctx    context.Context
}

// Logger writes commands, errors and info records to their own files.
// Records are queued on a channel and written by a single goroutine.
type Logger struct {
	commandLogger *slog.Logger
	errorLogger   *slog.Logger
	infoLogger    *slog.Logger
	files         []*os.File
	logChan       chan logMessage
	done          chan struct{}
	wg            sync.WaitGroup
	closeOnce     sync.Once
	mu            sync.RWMutex
	level         LogLevel
	nop           bool
}

// NewLogger opens the log files named in cfg and starts the writer goroutine.
func NewLogger(cfg *model.Config) (*Logger, error) {
	if err := os.MkdirAll(cfg.LogFolder, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	var files []*os.File
	open := func(name string) (*os.File, error) {
		f, err := os.OpenFile(filepath.Join(cfg.LogFolder, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			for _, opened := range files {
				opened.Close()
			}
			return nil, fmt.Errorf("failed to open log file %s: %w", name, err)
		}
		files = append(files, f)
		return f, nil
	}

	commandFile, err := open(cfg.CommandLog)
	if err != nil {
		return nil, err
	}
	errorFile, err := open(cfg.ErrorLog)
	if err != nil {
		return nil, err
	}
	infoFile, err := open(cfg.InfoLog)
	if err != nil {
		return nil, err
	}

	logger := &Logger{
		commandLogger: slog.New(slog.NewJSONHandler(commandFile, &slog.HandlerOptions{Level: slog.LevelInfo})),
		errorLogger:   slog.New(slog.NewJSONHandler(errorFile, &slog.HandlerOptions{Level: slog.LevelError})),
		infoLogger:    slog.New(slog.NewJSONHandler(infoFile, &slog.HandlerOptions{Level: slog.LevelDebug})),
		files:         files,
		logChan:       make(chan logMessage, 100),
		done:          make(chan struct{}),
		level:         ParseLevel(cfg.LogLevel),
	}

	logger.wg.Add(1)
	go logger.processLogs()

	return logger, nil
}

// NewNopLogger returns a Logger that discards every record.
func NewNopLogger() *Logger {
	return &Logger{nop: true}
}

func (l *Logger) processLogs() {
	defer l.wg.Done()
	for {
		select {
		case msg := <-l.logChan:
			l.write(msg)
		case <-l.done:
			// Drain whatever was queued before Close.
			for {
				select {
				case msg := <-l.logChan:
					l.write(msg)
				default:
					return
				}
			}
		}
	}
}

func (l *Logger) write(m logMessage) {
	attrs := make([]any, 0, len(m.fields)*2)
	for k, v := range m.fields {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		attrs = append(attrs, k, v)
	}
	switch m.level {
	case LevelCommand:
		l.commandLogger.InfoContext(m.ctx, m.msg, attrs...)
	case LevelError:
		l.errorLogger.ErrorContext(m.ctx, m.msg, attrs...)
	default:
		l.infoLogger.Log(m.ctx, m.level.toSlogLevel(), m.msg, attrs...)
	}
}

func (l *Logger) enqueue(ctx context.Context, level LogLevel, msg string, fields Fields) {
	if l == nil || l.nop {
		return
	}
	if level > LevelError && level > l.Level() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case l.logChan <- logMessage{level: level, msg: msg, fields: fields, ctx: ctx}:
	case <-l.done:
	}
}

// Command records a command entered by the user.
func (l *Logger) Command(ctx context.Context, msg string, fields Fields) {
	l.enqueue(ctx, LevelCommand, msg, fields)
}

// Error records a failure. Errors are always written.
func (l *Logger) Error(ctx context.Context, msg string, fields Fields) {
	l.enqueue(ctx, LevelError, msg, fields)
}

func (l *Logger) Warn(ctx context.Context, msg string, fields Fields) {
	l.enqueue(ctx, LevelWarn, msg, fields)
}

func (l *Logger) Info(ctx context.Context, msg string, fields Fields) {
	l.enqueue(ctx, LevelInfo, msg, fields)
}

func (l *Logger) Debug(ctx context.Context, msg string, fields Fields) {
	l.enqueue(ctx, LevelDebug, msg, fields)
}

// Level returns the most verbose level written to the info log.
func (l *Logger) Level() LogLevel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// SetLevel changes the most verbose level written to the info log.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// Close flushes queued records, stops the writer and closes all log files.
func (l *Logger) Close() error {
	if l == nil || l.nop {
		return nil
	}
	var firstErr error
	l.closeOnce.Do(func() {
		close(l.done)
		l.wg.Wait()
		for _, f := range l.files {
			if err := f.Close(); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("failed to close log file %s: %w", f.Name(), err)
			}
		}
	})
	return firstErr
}
