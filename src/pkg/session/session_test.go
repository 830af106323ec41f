package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyfocus/local-app/src/pkg/clock"
	"dailyfocus/local-app/src/pkg/data"
	"dailyfocus/local-app/src/pkg/log"
	"dailyfocus/local-app/src/pkg/model"
	"dailyfocus/local-app/src/pkg/stats"
	"dailyfocus/local-app/src/pkg/storage"
)

func newTestSession(t *testing.T) (*SessionManager, string, *clock.FakeClock) {
	t.Helper()
	fs, err := storage.NewFileStore(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2025, 10, 14, 9, 0, 0, 0, time.UTC))
	cfg := &model.Config{ExportDir: t.TempDir()}
	dm, err := data.NewDataManager(storage.NewGateway(fs, log.NewNopLogger()), clk, cfg, log.NewNopLogger())
	require.NoError(t, err)

	sm := NewSessionManager(dm, log.NewNopLogger())
	t.Cleanup(func() {
		sm.Stop()
		dm.Close()
	})
	return sm, sm.SessionAdd(), clk
}

func run(t *testing.T, sm *SessionManager, id string, scope, op string, args ...string) interface{} {
	t.Helper()
	res, err := sm.SessionRun(id, model.Command{Scope: scope, Operation: op, Args: args})
	require.NoError(t, err)
	return res
}

func TestSession_TaskCommands(t *testing.T) {
	sm, id, _ := newTestSession(t)

	run(t, sm, id, "today", "add", "write", "tests")
	run(t, sm, id, "today", "sub", "1", "table", "cases")
	run(t, sm, id, "today", "done", "1.1")

	res := run(t, sm, id, "today", "list")
	list, ok := res.(TaskListResult)
	require.True(t, ok)
	require.Len(t, list.Tasks, 1)
	assert.Equal(t, "write tests", list.Tasks[0].Text)
	assert.True(t, list.Tasks[0].Completed)
	assert.Equal(t, "table cases", list.Tasks[0].Subtasks[0].Text)
	assert.Equal(t, 2, list.All.Completed)

	run(t, sm, id, "today", "edit", "1", "write more tests")
	run(t, sm, id, "today", "undo", "1")
	list = run(t, sm, id, "today", "list").(TaskListResult)
	assert.Equal(t, "write more tests", list.Tasks[0].Text)
	assert.False(t, list.Tasks[0].Completed)

	run(t, sm, id, "today", "delete", "1")
	list = run(t, sm, id, "today", "list").(TaskListResult)
	assert.Empty(t, list.Tasks)
}

func TestSession_MustDoIsSeparate(t *testing.T) {
	sm, id, _ := newTestSession(t)

	run(t, sm, id, "mustdo", "add", "renew", "passport")
	assert.Empty(t, run(t, sm, id, "today", "list").(TaskListResult).Tasks)
	assert.Len(t, run(t, sm, id, "mustdo", "list").(TaskListResult).Tasks, 1)
}

func TestSession_TopicCommands(t *testing.T) {
	sm, id, _ := newTestSession(t)

	run(t, sm, id, "topic", "add", "error", "wrapping")
	run(t, sm, id, "topic", "link", "1", "https://go.dev/blog/go1.13-errors")
	run(t, sm, id, "topic", "notes", "1", "use", "%w")
	run(t, sm, id, "topic", "blogurl", "1", "https://example.com/errors")

	res := run(t, sm, id, "topic", "list").(TopicListResult)
	assert.Equal(t, "2025-W42", res.WeekID)
	require.Len(t, res.Topics, 1)
	topic := res.Topics[0]
	assert.Equal(t, "error wrapping", topic.Title)
	assert.Equal(t, "use %w", topic.Notes)
	assert.True(t, topic.BlogPost.Written)
	require.Len(t, topic.ReferenceLinks, 1)

	run(t, sm, id, "topic", "unlink", "1", "1")
	res = run(t, sm, id, "topic", "list").(TopicListResult)
	assert.Empty(t, res.Topics[0].ReferenceLinks)
}

func TestSession_RolloverAndHistory(t *testing.T) {
	sm, id, clk := newTestSession(t)

	run(t, sm, id, "system", "rollover")
	run(t, sm, id, "today", "add", "finish")
	run(t, sm, id, "today", "done", "1")

	clk.Advance(24 * time.Hour)
	res := run(t, sm, id, "system", "rollover").(RolloverResult)
	assert.True(t, res.DayDue)
	assert.True(t, res.DayArchived)

	history := run(t, sm, id, "history", "list").(HistoryResult)
	require.Len(t, history.Entries, 1)
	assert.Equal(t, "2025-10-14", history.Entries[0].Date)

	entry := run(t, sm, id, "history", "show", "2025-10-14").(model.HistoryEntry)
	assert.Equal(t, 1, entry.Completed)

	summary := run(t, sm, id, "stats", "tasks", "all").(stats.Summary)
	assert.Equal(t, 100, summary.Rate)
	assert.Equal(t, 1, summary.Streaks.Current)
}

func TestSession_ExportAndSettings(t *testing.T) {
	sm, id, _ := newTestSession(t)

	run(t, sm, id, "today", "add", "export", "me")
	msg := run(t, sm, id, "export", "markdown", "incomplete", "all").(Message)
	assert.Contains(t, string(msg), "todo-history-2025-10-14.md")

	run(t, sm, id, "settings", "set", "notifyInterval", "48")
	settings := run(t, sm, id, "settings", "show").(SettingsResult)
	assert.Equal(t, 24, settings.Settings.NotifyInterval)

	dump := filepath.Join(t.TempDir(), "dump.json")
	run(t, sm, id, "export", "data", dump)
	run(t, sm, id, "today", "clear")
	run(t, sm, id, "import", "data", dump)
	assert.Len(t, run(t, sm, id, "today", "list").(TaskListResult).Tasks, 1)
}

func TestSession_Errors(t *testing.T) {
	sm, id, _ := newTestSession(t)

	_, err := sm.SessionRun(id, model.Command{Scope: "calendar", Operation: "list"})
	assert.ErrorIs(t, err, ErrUnknownScope)

	_, err = sm.SessionRun(id, model.Command{Scope: "today", Operation: "archive"})
	assert.ErrorIs(t, err, ErrUnknownOperation)

	_, err = sm.SessionRun(id, model.Command{Scope: "today", Operation: "toggle"})
	assert.Error(t, err)

	_, err = sm.SessionRun(id, model.Command{Scope: "today", Operation: "toggle", Args: []string{"4"}})
	assert.ErrorIs(t, err, data.ErrTaskNotFound)

	_, err = sm.SessionRun(id, model.Command{Scope: "system", Operation: "exit"})
	assert.True(t, IsExit(err))

	_, err = sm.SessionRun("missing", model.Command{Scope: "today", Operation: "list"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestParseExportOptions(t *testing.T) {
	opts, err := parseExportOptions([]string{"completed", "14", "nosubtasks"})
	require.NoError(t, err)
	assert.Equal(t, model.ExportOptions{Status: model.ExportCompleted, DateRange: 14, IncludeSubtasks: false}, opts)

	opts, err = parseExportOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultExportOptions(), opts)

	_, err = parseExportOptions([]string{"weekly"})
	assert.Error(t, err)
}

func TestCleanupInactiveSessions(t *testing.T) {
	sm, id, _ := newTestSession(t)
	sm.cleanupInactiveSessions(time.Now().Add(time.Hour))
	_, ok := sm.SessionGet(id)
	assert.False(t, ok)
}
