package cli

import (
	"fmt"
	"io"
	"strings"
)

// CommandHelp represents the structure of help information for a specific command.
type CommandHelp struct {
	Scope     string
	Operation string
	ShortDesc string
	LongDesc  string
	Syntax    string
	Arguments []string
	Options   []string
	Examples  []string
}

// taskHelps is shared by the today and mustdo scopes. The scope placeholder
// "<list>" is replaced when the table is built.
var taskHelps = []CommandHelp{
	{
		Operation: "add",
		ShortDesc: "Add a task",
		LongDesc:  "Appends a new root task to the list. Blank text is rejected.",
		Syntax:    "<list> add <text>",
		Arguments: []string{"text: The task text, the rest of the line"},
		Examples:  []string{"<list> add write release notes"},
	},
	{
		Operation: "sub",
		ShortDesc: "Add a subtask",
		LongDesc:  "Adds a subtask under the task at path and expands the parent. A completed parent becomes incomplete again.",
		Syntax:    "<list> sub <path> <text>",
		Arguments: []string{"path: The task position, e.g. 2 or 2.1", "text: The subtask text"},
		Examples:  []string{"<list> sub 1 draft outline"},
	},
	{
		Operation: "toggle",
		ShortDesc: "Toggle completion",
		LongDesc:  "Flips the completion of a task. The state cascades to all subtasks and parents complete once all their subtasks are done.",
		Syntax:    "<list> toggle <path>",
		Arguments: []string{"path: The task position"},
		Examples:  []string{"<list> toggle 1.2"},
	},
	{
		Operation: "done",
		ShortDesc: "Mark a task completed",
		LongDesc:  "Marks a task and all of its subtasks completed.",
		Syntax:    "<list> done <path>",
		Arguments: []string{"path: The task position"},
		Examples:  []string{"<list> done 3"},
	},
	{
		Operation: "undo",
		ShortDesc: "Mark a task incomplete",
		LongDesc:  "Marks a task and all of its subtasks incomplete.",
		Syntax:    "<list> undo <path>",
		Arguments: []string{"path: The task position"},
		Examples:  []string{"<list> undo 3"},
	},
	{
		Operation: "delete",
		ShortDesc: "Delete a task",
		LongDesc:  "Removes a task and its whole subtree.",
		Syntax:    "<list> delete <path>",
		Arguments: []string{"path: The task position"},
		Examples:  []string{"<list> delete 2"},
	},
	{
		Operation: "edit",
		ShortDesc: "Change task text",
		LongDesc:  "Replaces the text of a task. Blank text is rejected.",
		Syntax:    "<list> edit <path> <text>",
		Arguments: []string{"path: The task position", "text: The new text"},
		Examples:  []string{"<list> edit 1 write release notes for v2"},
	},
	{
		Operation: "expand",
		ShortDesc: "Toggle expansion",
		LongDesc:  "Shows or hides the subtasks of a task.",
		Syntax:    "<list> expand <path>",
		Arguments: []string{"path: The task position"},
		Examples:  []string{"<list> expand 1"},
	},
	{
		Operation: "expandall",
		ShortDesc: "Expand every task",
		LongDesc:  "Expands every task in the list at every depth.",
		Syntax:    "<list> expandall",
		Examples:  []string{"<list> expandall"},
	},
	{
		Operation: "collapseall",
		ShortDesc: "Collapse every task",
		LongDesc:  "Collapses every task in the list at every depth.",
		Syntax:    "<list> collapseall",
		Examples:  []string{"<list> collapseall"},
	},
	{
		Operation: "list",
		ShortDesc: "Show the list",
		LongDesc:  "Displays the task tree with completion counts. Collapsed tasks are marked with [+].",
		Syntax:    "<list> list",
		Examples:  []string{"<list> list"},
	},
	{
		Operation: "clear",
		ShortDesc: "Remove every task",
		LongDesc:  "Empties the list without archiving it.",
		Syntax:    "<list> clear",
		Examples:  []string{"<list> clear"},
	},
}

// commandHelps is a slice of CommandHelp structs containing help information for all commands.
var commandHelps = buildCommandHelps()

func buildCommandHelps() []CommandHelp {
	var helps []CommandHelp
	for _, scope := range []string{"today", "mustdo"} {
		for _, h := range taskHelps {
			h.Scope = scope
			h.Syntax = strings.ReplaceAll(h.Syntax, "<list>", scope)
			examples := make([]string, len(h.Examples))
			for i, ex := range h.Examples {
				examples[i] = strings.ReplaceAll(ex, "<list>", scope)
			}
			h.Examples = examples
			helps = append(helps, h)
		}
	}
	return append(helps, otherHelps...)
}

var otherHelps = []CommandHelp{
	{
		Scope:     "topic",
		Operation: "add",
		ShortDesc: "Add a learning topic",
		LongDesc:  "Adds a topic to the current week. Blank titles are rejected.",
		Syntax:    "topic add <title>",
		Arguments: []string{"title: The topic title, the rest of the line"},
		Examples:  []string{"topic add Go generics"},
	},
	{
		Scope:     "topic",
		Operation: "sub",
		ShortDesc: "Add a subtopic",
		LongDesc:  "Adds a subtopic under the topic at path and expands the parent.",
		Syntax:    "topic sub <path> <title>",
		Arguments: []string{"path: The topic position, e.g. 1 or 1.2", "title: The subtopic title"},
		Examples:  []string{"topic sub 1 type sets"},
	},
	{
		Scope:     "topic",
		Operation: "title",
		ShortDesc: "Rename a topic",
		LongDesc:  "Replaces the title of a topic. Blank titles are rejected.",
		Syntax:    "topic title <path> <title>",
		Arguments: []string{"path: The topic position", "title: The new title"},
		Examples:  []string{"topic title 1 Go generics in depth"},
	},
	{
		Scope:     "topic",
		Operation: "notes",
		ShortDesc: "Set topic notes",
		LongDesc:  "Replaces the notes of a topic. Without text the notes are cleared.",
		Syntax:    "topic notes <path> [notes]",
		Arguments: []string{"path: The topic position", "notes: (Optional) The new notes"},
		Examples:  []string{"topic notes 1 read the proposal first", "topic notes 1"},
	},
	{
		Scope:     "topic",
		Operation: "delete",
		ShortDesc: "Delete a topic",
		LongDesc:  "Removes a topic and all of its subtopics.",
		Syntax:    "topic delete <path>",
		Arguments: []string{"path: The topic position"},
		Examples:  []string{"topic delete 2"},
	},
	{
		Scope:     "topic",
		Operation: "expand",
		ShortDesc: "Toggle expansion",
		LongDesc:  "Shows or hides the subtopics of a topic.",
		Syntax:    "topic expand <path>",
		Arguments: []string{"path: The topic position"},
		Examples:  []string{"topic expand 1"},
	},
	{
		Scope:     "topic",
		Operation: "expandall",
		ShortDesc: "Expand every topic",
		LongDesc:  "Expands every topic of the current week.",
		Syntax:    "topic expandall",
		Examples:  []string{"topic expandall"},
	},
	{
		Scope:     "topic",
		Operation: "collapseall",
		ShortDesc: "Collapse every topic",
		LongDesc:  "Collapses every topic of the current week.",
		Syntax:    "topic collapseall",
		Examples:  []string{"topic collapseall"},
	},
	{
		Scope:     "topic",
		Operation: "link",
		ShortDesc: "Add a reference link",
		LongDesc:  "Attaches a reference link to a topic. Blank urls are rejected.",
		Syntax:    "topic link <path> <url>",
		Arguments: []string{"path: The topic position", "url: The link target"},
		Examples:  []string{"topic link 1 https://go.dev/blog/intro-generics"},
	},
	{
		Scope:     "topic",
		Operation: "unlink",
		ShortDesc: "Remove a reference link",
		LongDesc:  "Removes a reference link by its number as shown in topic list.",
		Syntax:    "topic unlink <path> <link_number>",
		Arguments: []string{"path: The topic position", "link_number: The link number, starting at 1"},
		Examples:  []string{"topic unlink 1 2"},
	},
	{
		Scope:     "topic",
		Operation: "relink",
		ShortDesc: "Change a reference link",
		LongDesc:  "Replaces the url of a reference link.",
		Syntax:    "topic relink <path> <link_number> <url>",
		Arguments: []string{"path: The topic position", "link_number: The link number, starting at 1", "url: The new link target"},
		Examples:  []string{"topic relink 1 1 https://go.dev/doc/tutorial/generics"},
	},
	{
		Scope:     "topic",
		Operation: "blog",
		ShortDesc: "Toggle the blog post flag",
		LongDesc:  "Marks a blog post about the topic as written, or not written.",
		Syntax:    "topic blog <path>",
		Arguments: []string{"path: The topic position"},
		Examples:  []string{"topic blog 1"},
	},
	{
		Scope:     "topic",
		Operation: "blogurl",
		ShortDesc: "Set the blog post url",
		LongDesc:  "Records where the blog post was published and marks it written. Without a url the link is cleared.",
		Syntax:    "topic blogurl <path> [url]",
		Arguments: []string{"path: The topic position", "url: (Optional) The published post"},
		Examples:  []string{"topic blogurl 1 https://example.com/generics"},
	},
	{
		Scope:     "topic",
		Operation: "list",
		ShortDesc: "Show this week's topics",
		LongDesc:  "Displays the topics of the current week with notes, links and blog post markers.",
		Syntax:    "topic list",
		Examples:  []string{"topic list"},
	},
	{
		Scope:     "history",
		Operation: "list",
		ShortDesc: "List archived days",
		LongDesc:  "Lists archived days, newest first, with their completion counts.",
		Syntax:    "history list [limit]",
		Arguments: []string{"limit: (Optional) The number of days to show"},
		Examples:  []string{"history list", "history list 5"},
	},
	{
		Scope:     "history",
		Operation: "show",
		ShortDesc: "Show an archived day",
		LongDesc:  "Displays the task snapshot archived for a date.",
		Syntax:    "history show <YYYY-MM-DD>",
		Arguments: []string{"date: The archived date"},
		Examples:  []string{"history show 2025-10-13"},
	},
	{
		Scope:     "history",
		Operation: "weeks",
		ShortDesc: "List archived weeks",
		LongDesc:  "Lists archived learning weeks, newest first. Defaults to the last 10 weeks.",
		Syntax:    "history weeks [limit]",
		Arguments: []string{"limit: (Optional) The number of weeks to show"},
		Examples:  []string{"history weeks", "history weeks 20"},
	},
	{
		Scope:     "history",
		Operation: "week",
		ShortDesc: "Show an archived week",
		LongDesc:  "Displays the topics archived for a week.",
		Syntax:    "history week <YYYY-Www>",
		Arguments: []string{"week: The week identifier"},
		Examples:  []string{"history week 2025-W41"},
	},
	{
		Scope:     "stats",
		Operation: "tasks",
		ShortDesc: "Task statistics",
		LongDesc:  "Shows completion totals, streaks and a daily chart over the chosen window. Defaults to 7 days.",
		Syntax:    "stats tasks [5|7|14|30|all]",
		Arguments: []string{"days: (Optional) The window in days"},
		Examples:  []string{"stats tasks", "stats tasks 30", "stats tasks all"},
	},
	{
		Scope:     "stats",
		Operation: "learning",
		ShortDesc: "Learning statistics",
		LongDesc:  "Shows topic and blog post totals, week streaks and a per-month breakdown.",
		Syntax:    "stats learning",
		Examples:  []string{"stats learning"},
	},
	{
		Scope:     "export",
		Operation: "markdown",
		ShortDesc: "Export history as markdown",
		LongDesc:  "Writes the task history, today included, to a markdown file in the export directory.",
		Syntax:    "export markdown [all|completed|incomplete] [5|7|14|30|all] [subtasks|nosubtasks]",
		Options:   []string{"status: Which tasks to include. Defaults to all", "range: How many days back. Defaults to 7", "subtasks|nosubtasks: Whether to include subtasks. Defaults to subtasks"},
		Examples:  []string{"export markdown", "export markdown completed 30", "export markdown all all nosubtasks"},
	},
	{
		Scope:     "export",
		Operation: "data",
		ShortDesc: "Export all data",
		LongDesc:  "Writes tasks, history, topics and settings to a file in JSON or YAML format.",
		Syntax:    "export data <filename> [json|yaml]",
		Arguments: []string{"filename: The file to write", "format: (Optional) Defaults to the file extension, then json"},
		Examples:  []string{"export data backup.json", "export data backup.yaml yaml"},
	},
	{
		Scope:     "import",
		Operation: "data",
		ShortDesc: "Import all data",
		LongDesc:  "Validates a data file and replaces the stored data with it. Nothing is written when validation fails.",
		Syntax:    "import data <filename> [json|yaml]",
		Arguments: []string{"filename: The file to read", "format: (Optional) Defaults to the file extension, then json"},
		Examples:  []string{"import data backup.json"},
	},
	{
		Scope:     "settings",
		Operation: "show",
		ShortDesc: "Show settings",
		LongDesc:  "Displays the task and learning settings.",
		Syntax:    "settings show",
		Examples:  []string{"settings show"},
	},
	{
		Scope:     "settings",
		Operation: "set",
		ShortDesc: "Change a setting",
		LongDesc:  "Changes one setting. The notify interval is clamped to 1 to 24 hours.",
		Syntax:    "settings set <name> <value>",
		Arguments: []string{"name: autoCarryOver, autoCreateNewWeek, darkMode, autoStart or notifyInterval", "value: true, false or a number of hours"},
		Examples:  []string{"settings set autoCarryOver false", "settings set notifyInterval 2"},
	},
	{
		Scope:     "system",
		Operation: "rollover",
		ShortDesc: "Run the rollover checks",
		LongDesc:  "Checks for a new day and a new week now instead of waiting for the scheduler.",
		Syntax:    "system rollover",
		Examples:  []string{"system rollover"},
	},
	{
		Scope:     "system",
		Operation: "exit",
		ShortDesc: "Exit the program",
		LongDesc:  "Exits the program, saving all changes.",
		Syntax:    "system exit",
		Examples:  []string{"system exit"},
	},
	{
		Scope:     "system",
		Operation: "quit",
		ShortDesc: "Quit the program",
		LongDesc:  "Quits the program, saving all changes. Equivalent to 'system exit'.",
		Syntax:    "system quit",
		Examples:  []string{"system quit"},
	},
}

// printHelp prints the help message based on the provided arguments
func printHelp(w io.Writer, args []string) {
	switch len(args) {
	case 0:
		showGeneralHelp(w)
	case 1:
		showScopeHelp(w, args[0])
	case 2:
		showOperationHelp(w, args[0], args[1])
	default:
		fmt.Fprintln(w, "Invalid help command. Use 'help [scope] [operation]'")
	}
}

// showGeneralHelp displays an overview of all available commands grouped by scope
func showGeneralHelp(w io.Writer) {
	fmt.Fprintln(w, "Command syntax: <scope> <operation> [arguments]")
	fmt.Fprintln(w, "\nAvailable commands:")
	currentScope := ""
	for _, cmd := range commandHelps {
		if cmd.Scope != currentScope {
			fmt.Fprintf(w, "\n%s:\n", cmd.Scope)
			currentScope = cmd.Scope
		}
		fmt.Fprintf(w, "  %-15s %s\n", cmd.Operation, cmd.ShortDesc)
	}
}

func showScopeHelp(w io.Writer, scope string) {
	found := false
	for _, cmd := range commandHelps {
		if cmd.Scope == scope {
			if !found {
				fmt.Fprintf(w, "Commands for %s:\n\n", scope)
				found = true
			}
			fmt.Fprintf(w, "%-15s %s\n", cmd.Operation, cmd.ShortDesc)
		}
	}
	if !found {
		fmt.Fprintf(w, "No help found for %s\n", scope)
	}
}

// showOperationHelp displays detailed help information for a specific operation within a scope
func showOperationHelp(w io.Writer, scope, operation string) {
	for _, cmd := range commandHelps {
		if cmd.Scope == scope && cmd.Operation == operation {
			fmt.Fprintf(w, "Command: %s %s\n", scope, operation)
			fmt.Fprintf(w, "Description: %s\n", cmd.LongDesc)
			fmt.Fprintf(w, "Syntax: %s\n", cmd.Syntax)
			if len(cmd.Arguments) > 0 {
				fmt.Fprintln(w, "Arguments:")
				for _, arg := range cmd.Arguments {
					fmt.Fprintf(w, "  %s\n", arg)
				}
			}
			if len(cmd.Options) > 0 {
				fmt.Fprintln(w, "Options:")
				for _, opt := range cmd.Options {
					fmt.Fprintf(w, "  %s\n", opt)
				}
			}
			if len(cmd.Examples) > 0 {
				fmt.Fprintln(w, "Examples:")
				for _, ex := range cmd.Examples {
					fmt.Fprintf(w, "  %s\n", ex)
				}
			}
			return
		}
	}
	fmt.Fprintf(w, "No help found for %s %s\n", scope, operation)
}
