package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"dailyfocus/local-app/src/pkg/data"
	"dailyfocus/local-app/src/pkg/log"
	"dailyfocus/local-app/src/pkg/model"
)

var (
	ErrUnknownScope     = errors.New("unknown command scope")
	ErrUnknownOperation = errors.New("unknown command operation")
	// ErrExitRequested is returned by system exit and quit.
	ErrExitRequested = errors.New("exit requested")
)

// CommandHandler is a function type for command handlers
type CommandHandler func(*Session, model.Command) (interface{}, error)

// Session represents an individual client session
type Session struct {
	ID              string
	DataManager     *data.DataManager
	LastActivity    time.Time
	commandHandlers map[string]map[string]CommandHandler
	logger          *log.Logger
	mu              sync.Mutex
}

// NewSession creates a new Session instance
func NewSession(id string, dataManager *data.DataManager, logger *log.Logger) *Session {
	ctx := context.Background()
	logger.Info(ctx, "Creating new Session", log.Fields{"sessionID": id})

	s := &Session{
		ID:           id,
		DataManager:  dataManager,
		LastActivity: time.Now(),
		logger:       logger,
	}
	s.initCommandHandlers()

	logger.Info(ctx, "New Session created successfully", log.Fields{"sessionID": id})
	return s
}

// initCommandHandlers initializes the command handlers map
func (s *Session) initCommandHandlers() {
	ctx := context.Background()
	s.logger.Debug(ctx, "Initializing command handlers", nil)

	s.commandHandlers = map[string]map[string]CommandHandler{
		"today":    initTaskCommandHandlers(),
		"mustdo":   initTaskCommandHandlers(),
		"topic":    initTopicCommandHandlers(),
		"history":  initHistoryCommandHandlers(),
		"stats":    initStatsCommandHandlers(),
		"export":   initExportCommandHandlers(),
		"import":   initImportCommandHandlers(),
		"settings": initSettingsCommandHandlers(),
		"system":   initSystemCommandHandlers(),
	}

	s.logger.Debug(ctx, "Command handlers initialized", nil)
}

// CommandRun validates a command and executes it within the session context
func (s *Session) CommandRun(cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Running command", log.Fields{"command": cmd})

	s.mu.Lock()
	s.LastActivity = time.Now()
	s.mu.Unlock()

	sc := NewSessionCommand(cmd, s.logger)
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	scopeHandlers, ok := s.commandHandlers[cmd.Scope]
	if !ok {
		s.logger.Error(ctx, "Invalid command scope", log.Fields{"scope": cmd.Scope})
		return nil, fmt.Errorf("%w: %s", ErrUnknownScope, cmd.Scope)
	}

	handler, ok := scopeHandlers[cmd.Operation]
	if !ok {
		s.logger.Error(ctx, "Invalid command operation", log.Fields{"operation": cmd.Operation})
		return nil, fmt.Errorf("%w: %s %s", ErrUnknownOperation, cmd.Scope, cmd.Operation)
	}

	result, err := handler(s, cmd)
	if err != nil && !errors.Is(err, ErrExitRequested) {
		s.logger.Error(ctx, "Command execution failed", log.Fields{"error": err})
	} else {
		s.logger.Info(ctx, "Command executed successfully", nil)
	}

	return result, err
}

// idle reports how long the session has been inactive at now.
func (s *Session) idle(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.LastActivity)
}

func initTaskCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"add":         handleTaskAdd,
		"sub":         handleTaskSub,
		"toggle":      handleTaskToggle,
		"done":        handleTaskDone,
		"undo":        handleTaskUndo,
		"delete":      handleTaskDelete,
		"edit":        handleTaskEdit,
		"expand":      handleTaskExpand,
		"expandall":   handleTaskExpandAll,
		"collapseall": handleTaskCollapseAll,
		"list":        handleTaskList,
		"clear":       handleTaskClear,
	}
}

func initTopicCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"add":         handleTopicAdd,
		"sub":         handleTopicSub,
		"title":       handleTopicTitle,
		"notes":       handleTopicNotes,
		"delete":      handleTopicDelete,
		"expand":      handleTopicExpand,
		"expandall":   handleTopicExpandAll,
		"collapseall": handleTopicCollapseAll,
		"link":        handleTopicLink,
		"unlink":      handleTopicUnlink,
		"relink":      handleTopicRelink,
		"blog":        handleTopicBlog,
		"blogurl":     handleTopicBlogURL,
		"list":        handleTopicList,
	}
}

func initHistoryCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"list":  handleHistoryList,
		"show":  handleHistoryShow,
		"weeks": handleHistoryWeeks,
		"week":  handleHistoryWeek,
	}
}

func initStatsCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"tasks":    handleStatsTasks,
		"learning": handleStatsLearning,
	}
}

func initExportCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"markdown": handleExportMarkdown,
		"data":     handleExportData,
	}
}

func initImportCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"data": handleImportData,
	}
}

func initSettingsCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"show": handleSettingsShow,
		"set":  handleSettingsSet,
	}
}

func initSystemCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"rollover": handleSystemRollover,
		"exit":     handleSystemExit,
		"quit":     handleSystemExit,
	}
}
