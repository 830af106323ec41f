package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"dailyfocus/local-app/src/pkg/log"
	"dailyfocus/local-app/src/pkg/model"
	"dailyfocus/local-app/src/pkg/session"
)

// CLI represents the command-line interface
type CLI struct {
	sessions  *session.SessionManager
	sessionID string
	rl        *readline.Instance
	writer    io.Writer
	renderer  *Renderer
	logger    *log.Logger
}

// NewCLI creates an interactive CLI reading from the terminal with line
// editing, history and completion of scopes and operations.
func NewCLI(sm *session.SessionManager, historyFile string, logger *log.Logger) (*CLI, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile,
		AutoComplete:    completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize readline: %w", err)
	}

	c := NewWriterCLI(sm, rl.Stdout(), logger)
	c.rl = rl
	c.renderer = NewRenderer(c.writer, true)
	return c, nil
}

// NewWriterCLI creates a CLI without a terminal. Commands are fed through
// Execute or ExecuteScript and output goes to w without colors.
func NewWriterCLI(sm *session.SessionManager, w io.Writer, logger *log.Logger) *CLI {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &CLI{
		sessions:  sm,
		sessionID: sm.SessionAdd(),
		writer:    w,
		renderer:  NewRenderer(w, false),
		logger:    logger,
	}
}

func completer() *readline.PrefixCompleter {
	scopes := session.Scopes()
	items := make([]readline.PrefixCompleterInterface, 0, len(scopes)+1)
	for _, scope := range scopes {
		ops := session.Operations(scope)
		children := make([]readline.PrefixCompleterInterface, 0, len(ops))
		for _, op := range ops {
			children = append(children, readline.PcItem(op))
		}
		items = append(items, readline.PcItem(scope, children...))
	}
	items = append(items, readline.PcItem("help"), readline.PcItem("exit"), readline.PcItem("quit"))
	return readline.NewPrefixCompleter(items...)
}

// Run reads and executes commands until exit, EOF or an interrupt.
func (c *CLI) Run() error {
	if c.rl == nil {
		return errors.New("cli has no terminal")
	}
	fmt.Fprintln(c.writer, "Welcome to DailyFocus!")
	fmt.Fprintln(c.writer, "Type 'help' for a list of commands or 'exit' to quit.")

	for {
		line, err := c.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if err := c.Execute(line); err != nil {
			if session.IsExit(err) {
				fmt.Fprintln(c.writer, "Exiting...")
				return nil
			}
			fmt.Fprintf(c.writer, "Error: %v\n", err)
		}
	}
}

// Execute runs one command line. It returns an error wrapping
// session.ErrExitRequested when the line asks to quit.
func (c *CLI) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	args := ParseArgs(line)
	if len(args) == 0 {
		return nil
	}
	scope := strings.ToLower(args[0])

	switch scope {
	case "help":
		printHelp(c.writer, args[1:])
		return nil
	case "exit", "quit":
		return session.ErrExitRequested
	}

	cmd := model.Command{Scope: scope, Args: []string{}}
	if len(args) > 1 {
		cmd.Operation = strings.ToLower(args[1])
		cmd.Args = args[2:]
	}

	result, err := c.run(cmd)
	if err != nil {
		return err
	}
	c.renderer.Render(result)
	return nil
}

// run executes cmd in the CLI session, opening a new one if the old
// session was reaped while idle.
func (c *CLI) run(cmd model.Command) (interface{}, error) {
	result, err := c.sessions.SessionRun(c.sessionID, cmd)
	if errors.Is(err, session.ErrSessionNotFound) {
		c.logger.Info(context.Background(), "Session expired, opening a new one", log.Fields{"sessionID": c.sessionID})
		c.sessionID = c.sessions.SessionAdd()
		result, err = c.sessions.SessionRun(c.sessionID, cmd)
	}
	return result, err
}

// ExecuteScript runs every line of the file at path. Blank lines and lines
// starting with # are skipped. Execution stops at the first failing line or
// at an exit command.
func (c *CLI) ExecuteScript(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	n := 0
	for scanner.Scan() {
		n++
		if err := c.Execute(scanner.Text()); err != nil {
			if session.IsExit(err) {
				return nil
			}
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return scanner.Err()
}

// Close ends the session and releases the terminal.
func (c *CLI) Close() error {
	c.sessions.SessionDelete(c.sessionID)
	if c.rl != nil {
		return c.rl.Close()
	}
	return nil
}

// ParseArgs splits input on spaces, keeping double-quoted text together.
func ParseArgs(input string) []string {
	var args []string
	var currentArg strings.Builder
	inQuotes := false
	quoted := false

	for _, char := range input {
		switch char {
		case '"':
			inQuotes = !inQuotes
			quoted = true
		case ' ', '\t':
			if !inQuotes {
				if currentArg.Len() > 0 || quoted {
					args = append(args, currentArg.String())
					currentArg.Reset()
				}
				quoted = false
			} else {
				currentArg.WriteRune(char)
			}
		default:
			currentArg.WriteRune(char)
		}
	}

	if currentArg.Len() > 0 || quoted {
		args = append(args, currentArg.String())
	}

	return args
}
