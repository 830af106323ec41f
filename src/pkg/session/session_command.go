package session

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"dailyfocus/local-app/src/pkg/log"
	"dailyfocus/local-app/src/pkg/model"
)

// unlimited marks an operation whose trailing arguments are joined as free text.
const unlimited = -1

// argRule is the accepted argument count of one operation.
type argRule struct {
	min, max int
	usage    string
}

var taskRules = map[string]argRule{
	"add":         {1, unlimited, "add <text>"},
	"sub":         {2, unlimited, "sub <path> <text>"},
	"toggle":      {1, 1, "toggle <path>"},
	"done":        {1, 1, "done <path>"},
	"undo":        {1, 1, "undo <path>"},
	"delete":      {1, 1, "delete <path>"},
	"edit":        {2, unlimited, "edit <path> <text>"},
	"expand":      {1, 1, "expand <path>"},
	"expandall":   {0, 0, "expandall"},
	"collapseall": {0, 0, "collapseall"},
	"list":        {0, 0, "list"},
	"clear":       {0, 0, "clear"},
}

var commandRules = map[string]map[string]argRule{
	"today":  taskRules,
	"mustdo": taskRules,
	"topic": {
		"add":         {1, unlimited, "add <title>"},
		"sub":         {2, unlimited, "sub <path> <title>"},
		"title":       {2, unlimited, "title <path> <title>"},
		"notes":       {1, unlimited, "notes <path> [notes]"},
		"delete":      {1, 1, "delete <path>"},
		"expand":      {1, 1, "expand <path>"},
		"expandall":   {0, 0, "expandall"},
		"collapseall": {0, 0, "collapseall"},
		"link":        {2, 2, "link <path> <url>"},
		"unlink":      {2, 2, "unlink <path> <link_number>"},
		"relink":      {3, 3, "relink <path> <link_number> <url>"},
		"blog":        {1, 1, "blog <path>"},
		"blogurl":     {1, 2, "blogurl <path> [url]"},
		"list":        {0, 0, "list"},
	},
	"history": {
		"list":  {0, 1, "list [limit]"},
		"show":  {1, 1, "show <YYYY-MM-DD>"},
		"weeks": {0, 1, "weeks [limit]"},
		"week":  {1, 1, "week <YYYY-Www>"},
	},
	"stats": {
		"tasks":    {0, 1, "tasks [5|7|14|30|all]"},
		"learning": {0, 0, "learning"},
	},
	"export": {
		"markdown": {0, 3, "markdown [all|completed|incomplete] [5|7|14|30|all] [subtasks|nosubtasks]"},
		"data":     {1, 2, "data <filename> [json|yaml]"},
	},
	"import": {
		"data": {1, 2, "data <filename> [json|yaml]"},
	},
	"settings": {
		"show": {0, 0, "show"},
		"set":  {2, 2, "set <name> <value>"},
	},
	"system": {
		"rollover": {0, 0, "rollover"},
		"exit":     {0, 0, "exit"},
		"quit":     {0, 0, "quit"},
	},
}

// SessionCommand wraps the model.Command and adds validation
type SessionCommand struct {
	model.Command
	logger *log.Logger
}

// NewSessionCommand creates a new SessionCommand from a model.Command
func NewSessionCommand(cmd model.Command, logger *log.Logger) SessionCommand {
	return SessionCommand{Command: cmd, logger: logger}
}

// Validate checks the scope, the operation and the argument count
func (c *SessionCommand) Validate() error {
	ctx := context.Background()
	c.logger.Debug(ctx, "Validating command", log.Fields{"scope": c.Scope, "operation": c.Operation})

	if c.Scope == "" {
		return errors.New("command scope is required")
	}
	ops, ok := commandRules[c.Scope]
	if !ok {
		c.logger.Error(ctx, "Invalid command scope", log.Fields{"scope": c.Scope})
		return fmt.Errorf("%w: %s", ErrUnknownScope, c.Scope)
	}
	if c.Operation == "" {
		return fmt.Errorf("%s command requires an operation", c.Scope)
	}
	rule, ok := ops[c.Operation]
	if !ok {
		c.logger.Error(ctx, "Invalid command operation", log.Fields{"scope": c.Scope, "operation": c.Operation})
		return fmt.Errorf("%w: %s %s", ErrUnknownOperation, c.Scope, c.Operation)
	}

	n := len(c.Args)
	if n < rule.min || (rule.max != unlimited && n > rule.max) {
		c.logger.Error(ctx, "Invalid number of arguments", log.Fields{"scope": c.Scope, "operation": c.Operation, "argCount": n})
		return fmt.Errorf("invalid arguments, usage: %s %s", c.Scope, rule.usage)
	}
	return nil
}

// Operations lists the operations of scope, for completion and help.
func Operations(scope string) []string {
	ops := make([]string, 0, len(commandRules[scope]))
	for op := range commandRules[scope] {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

// Scopes lists every command scope.
func Scopes() []string {
	scopes := make([]string, 0, len(commandRules))
	for scope := range commandRules {
		scopes = append(scopes, scope)
	}
	sort.Strings(scopes)
	return scopes
}
