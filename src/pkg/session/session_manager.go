package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"dailyfocus/local-app/src/pkg/data"
	"dailyfocus/local-app/src/pkg/log"
	"dailyfocus/local-app/src/pkg/model"
)

const (
	defaultCleanupInterval = 5 * time.Minute
	defaultSessionTimeout  = 30 * time.Minute
)

var ErrSessionNotFound = errors.New("session not found")

// SessionManager manages sessions and runs their commands one at a time
type SessionManager struct {
	sessions      map[string]*Session
	mu            sync.RWMutex
	dataManager   *data.DataManager
	cleanupTicker *time.Ticker
	done          chan struct{}
	stopOnce      sync.Once
	commandQueue  chan commandExecution
	logger        *log.Logger
}

// commandExecution represents a command to be executed in a session, its result and error
type commandExecution struct {
	session *Session
	command model.Command
	reply   chan commandReply
}

type commandReply struct {
	result interface{}
	err    error
}

// NewSessionManager starts the command execution and cleanup goroutines
func NewSessionManager(dataManager *data.DataManager, logger *log.Logger) *SessionManager {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	ctx := context.Background()
	logger.Info(ctx, "Creating new SessionManager", nil)

	sm := &SessionManager{
		sessions:     make(map[string]*Session),
		dataManager:  dataManager,
		done:         make(chan struct{}),
		commandQueue: make(chan commandExecution),
		logger:       logger,
	}
	sm.startCleanupRoutine()
	go sm.commandExecutor()

	logger.Info(ctx, "SessionManager created successfully", nil)
	return sm
}

// SessionAdd creates a new session and returns its ID
func (sm *SessionManager) SessionAdd() string {
	id := uuid.NewString()

	sm.mu.Lock()
	sm.sessions[id] = NewSession(id, sm.dataManager, sm.logger)
	sm.mu.Unlock()

	sm.logger.Info(context.Background(), "New session added", log.Fields{"sessionID": id})
	return id
}

// SessionGet retrieves a session by its ID
func (sm *SessionManager) SessionGet(sessionID string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	session, exists := sm.sessions[sessionID]
	if !exists {
		sm.logger.Warn(context.Background(), "Session not found", log.Fields{"sessionID": sessionID})
	}
	return session, exists
}

// SessionDelete removes a session
func (sm *SessionManager) SessionDelete(sessionID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if _, exists := sm.sessions[sessionID]; !exists {
		sm.logger.Warn(context.Background(), "Attempted to delete non-existent session", log.Fields{"sessionID": sessionID})
		return
	}
	delete(sm.sessions, sessionID)
	sm.logger.Info(context.Background(), "Session deleted", log.Fields{"sessionID": sessionID})
}

// SessionRun executes a command for a specific session
func (sm *SessionManager) SessionRun(sessionID string, cmd model.Command) (interface{}, error) {
	ctx := context.Background()

	session, exists := sm.SessionGet(sessionID)
	if !exists {
		return nil, ErrSessionNotFound
	}

	sm.logger.Command(ctx, "Command received", log.Fields{
		"sessionID": sessionID,
		"scope":     cmd.Scope,
		"operation": cmd.Operation,
		"args":      cmd.Args,
	})

	reply := make(chan commandReply, 1)
	select {
	case sm.commandQueue <- commandExecution{session: session, command: cmd, reply: reply}:
	case <-sm.done:
		return nil, errors.New("session manager stopped")
	}
	r := <-reply
	return r.result, r.err
}

// commandExecutor processes commands from the queue
func (sm *SessionManager) commandExecutor() {
	ctx := context.Background()
	sm.logger.Info(ctx, "Starting command executor", nil)

	for {
		select {
		case exec := <-sm.commandQueue:
			sm.logger.Debug(ctx, "Processing command", log.Fields{"sessionID": exec.session.ID, "command": exec.command})
			result, err := exec.session.CommandRun(exec.command)
			exec.reply <- commandReply{result: result, err: err}
		case <-sm.done:
			return
		}
	}
}

// startCleanupRoutine starts a goroutine that periodically cleans up inactive sessions
func (sm *SessionManager) startCleanupRoutine() {
	sm.cleanupTicker = time.NewTicker(defaultCleanupInterval)
	go func() {
		for {
			select {
			case <-sm.cleanupTicker.C:
				sm.cleanupInactiveSessions(time.Now())
			case <-sm.done:
				sm.cleanupTicker.Stop()
				return
			}
		}
	}()
}

// Stop ends the executor and cleanup goroutines
func (sm *SessionManager) Stop() {
	sm.stopOnce.Do(func() {
		sm.logger.Info(context.Background(), "Stopping SessionManager", nil)
		close(sm.done)
	})
}

// cleanupInactiveSessions removes sessions idle for longer than the timeout
func (sm *SessionManager) cleanupInactiveSessions(now time.Time) {
	sm.mu.RLock()
	var stale []string
	for id, session := range sm.sessions {
		if session.idle(now) > defaultSessionTimeout {
			stale = append(stale, id)
		}
	}
	sm.mu.RUnlock()

	for _, id := range stale {
		sm.logger.Info(context.Background(), "Removing inactive session", log.Fields{"sessionID": id})
		sm.SessionDelete(id)
	}
}
