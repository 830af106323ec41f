package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyfocus/local-app/src/pkg/clock"
	"dailyfocus/local-app/src/pkg/data"
	"dailyfocus/local-app/src/pkg/log"
	"dailyfocus/local-app/src/pkg/model"
	"dailyfocus/local-app/src/pkg/session"
	"dailyfocus/local-app/src/pkg/stats"
	"dailyfocus/local-app/src/pkg/storage"
)

func newTestCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()
	fs, err := storage.NewFileStore(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2025, 10, 14, 9, 0, 0, 0, time.UTC))
	cfg := &model.Config{ExportDir: t.TempDir()}
	dm, err := data.NewDataManager(storage.NewGateway(fs, log.NewNopLogger()), clk, cfg, log.NewNopLogger())
	require.NoError(t, err)
	sm := session.NewSessionManager(dm, log.NewNopLogger())

	var out bytes.Buffer
	c := NewWriterCLI(sm, &out, log.NewNopLogger())
	t.Cleanup(func() {
		c.Close()
		sm.Stop()
		dm.Close()
	})
	return c, &out
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain", "today add buy milk", []string{"today", "add", "buy", "milk"}},
		{"quoted", `topic link 1 "https://example.com/a b"`, []string{"topic", "link", "1", "https://example.com/a b"}},
		{"extra spaces", "  today   list ", []string{"today", "list"}},
		{"empty quotes", `topic notes 1 ""`, []string{"topic", "notes", "1", ""}},
		{"tabs", "stats\ttasks", []string{"stats", "tasks"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseArgs(tt.input))
		})
	}
}

func TestExecute_TaskTree(t *testing.T) {
	c, out := newTestCLI(t)

	require.NoError(t, c.Execute("today add write report"))
	require.NoError(t, c.Execute("today sub 1 outline"))
	require.NoError(t, c.Execute("today sub 1 draft"))
	require.NoError(t, c.Execute("today done 1.1"))
	out.Reset()

	require.NoError(t, c.Execute("today list"))
	text := out.String()
	assert.Contains(t, text, "Today  0/1 done (0%)")
	assert.Contains(t, text, "1 [ ] write report 1/2")
	assert.Contains(t, text, "├── 1.1 [x] outline")
	assert.Contains(t, text, "└── 1.2 [ ] draft")

	require.NoError(t, c.Execute("today expand 1"))
	out.Reset()
	require.NoError(t, c.Execute("today list"))
	assert.Contains(t, out.String(), "write report 1/2 [+]")
	assert.NotContains(t, out.String(), "outline")
}

func TestExecute_MustDoEmpty(t *testing.T) {
	c, out := newTestCLI(t)

	require.NoError(t, c.Execute("MUSTDO LIST"))
	assert.Contains(t, out.String(), "Must-Do  0/0 done (0%)")
	assert.Contains(t, out.String(), "No tasks")
}

func TestExecute_Topics(t *testing.T) {
	c, out := newTestCLI(t)

	require.NoError(t, c.Execute("topic add Go generics"))
	require.NoError(t, c.Execute("topic link 1 https://go.dev/blog/intro-generics"))
	require.NoError(t, c.Execute("topic notes 1 read the proposal"))
	require.NoError(t, c.Execute("topic blogurl 1 https://example.com/generics"))
	out.Reset()

	require.NoError(t, c.Execute("topic list"))
	text := out.String()
	assert.Contains(t, text, "Week 42, 2025")
	assert.Contains(t, text, "1 topics, 1 blog posts")
	assert.Contains(t, text, "1 Go generics [blog: https://example.com/generics]")
	assert.Contains(t, text, "notes: read the proposal")
	assert.Contains(t, text, "link 1: https://go.dev/blog/intro-generics")
}

func TestExecute_Errors(t *testing.T) {
	c, _ := newTestCLI(t)

	assert.ErrorIs(t, c.Execute("weekly add x"), session.ErrUnknownScope)
	assert.ErrorIs(t, c.Execute("today fly"), session.ErrUnknownOperation)
	assert.ErrorIs(t, c.Execute("today toggle 9"), data.ErrTaskNotFound)
	assert.Error(t, c.Execute("today toggle"))
}

func TestExecute_SkipsBlankAndComments(t *testing.T) {
	c, out := newTestCLI(t)

	assert.NoError(t, c.Execute(""))
	assert.NoError(t, c.Execute("   "))
	assert.NoError(t, c.Execute("# today add nothing"))
	assert.Empty(t, out.String())
}

func TestExecute_Exit(t *testing.T) {
	c, _ := newTestCLI(t)

	assert.True(t, session.IsExit(c.Execute("exit")))
	assert.True(t, session.IsExit(c.Execute("quit")))
	assert.True(t, session.IsExit(c.Execute("system exit")))
}

func TestExecute_SessionExpired(t *testing.T) {
	c, out := newTestCLI(t)

	c.sessions.SessionDelete(c.sessionID)
	require.NoError(t, c.Execute("today add still works"))
	assert.Contains(t, out.String(), "Task added")
}

func TestExecute_Help(t *testing.T) {
	c, out := newTestCLI(t)

	require.NoError(t, c.Execute("help"))
	assert.Contains(t, out.String(), "Available commands:")
	assert.Contains(t, out.String(), "mustdo:")

	out.Reset()
	require.NoError(t, c.Execute("help topic"))
	assert.Contains(t, out.String(), "Commands for topic:")
	assert.Contains(t, out.String(), "blogurl")

	out.Reset()
	require.NoError(t, c.Execute("help mustdo sub"))
	assert.Contains(t, out.String(), "Syntax: mustdo sub <path> <text>")
	assert.Contains(t, out.String(), "mustdo sub 1 draft outline")

	out.Reset()
	require.NoError(t, c.Execute("help nothing"))
	assert.Contains(t, out.String(), "No help found for nothing")
}

func TestHelpCoversEveryOperation(t *testing.T) {
	for _, scope := range session.Scopes() {
		for _, op := range session.Operations(scope) {
			found := false
			for _, h := range commandHelps {
				if h.Scope == scope && h.Operation == op {
					found = true
					break
				}
			}
			assert.True(t, found, "missing help for %s %s", scope, op)
		}
	}
}

func TestExecuteScript(t *testing.T) {
	c, out := newTestCLI(t)

	script := filepath.Join(t.TempDir(), "setup.txt")
	content := "# morning\ntoday add stretch\n\nmustdo add pay rent\nexit\ntoday add never runs\n"
	require.NoError(t, os.WriteFile(script, []byte(content), 0644))

	require.NoError(t, c.ExecuteScript(script))
	out.Reset()
	require.NoError(t, c.Execute("today list"))
	assert.Contains(t, out.String(), "stretch")
	assert.NotContains(t, out.String(), "never runs")

	bad := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("today add ok\ntoday toggle 7\n"), 0644))
	err := c.ExecuteScript(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestRenderer_Summary(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, false)

	r.Render(stats.Summary{
		Days:      7,
		Completed: 3,
		Total:     4,
		Rate:      75,
		Series:    []stats.DayPoint{{Date: "2025-10-13", Completed: 3, Incomplete: 1}},
		Streaks:   stats.Streaks{Current: 2, Longest: 5},
	})
	text := out.String()
	assert.Contains(t, text, "(last 7 days)")
	assert.Contains(t, text, "Completed: 3/4 (75%)")
	assert.Contains(t, text, "Longest streak: 5 days")
	assert.Contains(t, text, "2025-10-13 ███░ 3/4")
}

func TestRenderer_Rollover(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, false)

	r.Render(session.RolloverResult{DayDue: true, DayArchived: true})
	assert.Contains(t, out.String(), "Day rolled over, yesterday archived")
	assert.Contains(t, out.String(), "Week unchanged")
}

func TestRenderer_Color(t *testing.T) {
	var out bytes.Buffer
	NewRenderer(&out, true).Render(session.Message("ok"))
	assert.Equal(t, "ok\n", out.String())

	out.Reset()
	NewRenderer(&out, true).Render(session.TaskListResult{List: model.TodayList})
	assert.Contains(t, out.String(), colorYellow+"Today"+colorDefault)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "<1m", formatDuration(20*time.Second))
	assert.Equal(t, "5m", formatDuration(5*time.Minute+10*time.Second))
	assert.Equal(t, "1h30m", formatDuration(90*time.Minute))
	assert.Equal(t, "2h0m", formatDuration(2*time.Hour))
}
