package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyfocus/local-app/src/pkg/log"
	"dailyfocus/local-app/src/pkg/model"
)

var created = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func sampleTasks() []model.Task {
	finished := created.Add(time.Hour)
	return []model.Task{
		{ID: 1.5, Text: "done", Completed: true, Subtasks: []model.Task{}, CreatedAt: created, FinishedAt: &finished},
		{ID: 2.25, Text: "open", Subtasks: []model.Task{}, CreatedAt: created},
	}
}

func gateways(t *testing.T) map[string]*Gateway {
	t.Helper()
	out := map[string]*Gateway{}

	fs, err := NewFileStore(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	out["json"] = NewGateway(fs, log.NewNopLogger())

	cfg := &model.Config{DatabaseType: string(PureSQLite), DatabaseDir: t.TempDir(), DatabaseFile: "test.db"}
	g, err := Open(cfg, log.NewNopLogger())
	require.NoError(t, err)
	out["sqlite-pure"] = g

	t.Cleanup(func() {
		for _, g := range out {
			g.Close()
		}
	})
	return out
}

func TestGateway_Defaults(t *testing.T) {
	for name, g := range gateways(t) {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, g.TodayTasks())
			assert.NotNil(t, g.TodayTasks())
			assert.Empty(t, g.TaskHistory())
			assert.Equal(t, "", g.LastDate())
			assert.Equal(t, model.DefaultSettings(), g.Settings())
			assert.Equal(t, model.DefaultLearningSettings(), g.LearningSettings())
			assert.NotNil(t, g.LearningStatistics().TopicsByWeek)
		})
	}
}

func TestGateway_RoundTrip(t *testing.T) {
	for name, g := range gateways(t) {
		t.Run(name, func(t *testing.T) {
			tasks := sampleTasks()
			g.SetTodayTasks(tasks)
			g.SetLastDate("2024-01-01")
			g.SetSettings(model.Settings{AutoCarryOver: false, NotifyInterval: 5})

			assert.Equal(t, tasks, g.TodayTasks())
			assert.Equal(t, "2024-01-01", g.LastDate())
			assert.Equal(t, 5, g.Settings().NotifyInterval)
			assert.False(t, g.Settings().AutoCarryOver)
		})
	}
}

func TestGateway_SetAll(t *testing.T) {
	for name, g := range gateways(t) {
		t.Run(name, func(t *testing.T) {
			data := model.AppData{
				TodayTasks:  sampleTasks(),
				MustDoTasks: nil,
				TaskHistory: model.TaskHistory{"2024-01-01": {Date: "2024-01-01", Tasks: sampleTasks(), Completed: 1, Total: 2}},
				LastDate:    "2024-01-02",
				Settings:    model.DefaultSettings(),
			}
			require.NoError(t, g.SetAll(data))

			got := g.AppData()
			assert.Equal(t, data.TodayTasks, got.TodayTasks)
			assert.Empty(t, got.MustDoTasks)
			assert.Equal(t, 2, got.TaskHistory["2024-01-01"].Total)
			assert.Equal(t, "2024-01-02", got.LastDate)

			ld := model.LearningData{LastWeekID: "2025-W42", LearningSettings: model.DefaultLearningSettings()}
			require.NoError(t, g.SetAllLearningData(ld))
			assert.Equal(t, "2025-W42", g.LastWeekID())
			assert.Empty(t, g.CurrentWeekTopics())
		})
	}
}

func TestGateway_LegacyTodayKey(t *testing.T) {
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	require.NoError(t, fs.Write(keyLegacyTodayTasks, []byte(`[{"id":1,"text":"old","completed":false,"subtasks":[],"expanded":false,"created_at":"2024-01-01T10:00:00Z"}]`)))

	g := NewGateway(fs, nil)
	tasks := g.TodayTasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "old", tasks[0].Text)
}

func TestGateway_CorruptValueFallsBack(t *testing.T) {
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	require.NoError(t, fs.Write(KeySettings, []byte(`{"notifyInterval":"often"}`)))
	require.NoError(t, fs.Write(KeyLastDate, []byte(`null`)))

	g := NewGateway(fs, nil)
	assert.Equal(t, model.DefaultSettings(), g.Settings())
	assert.Equal(t, "", g.LastDate())
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	fs, err := NewFileStore(path)
	require.NoError(t, err)
	g := NewGateway(fs, nil)
	g.SetLastWeekID("2025-W01")
	require.NoError(t, g.Close())

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, "2025-W01", NewGateway(reopened, nil).LastWeekID())

	assert.Error(t, fs.Write(KeyLastDate, []byte("not json")))
}

func TestNewStore_UnsupportedDriver(t *testing.T) {
	_, err := NewStore(&model.Config{DatabaseType: "postgres"}, log.NewNopLogger())
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestFinishedAtOmittedWhenAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	fs, err := NewFileStore(path)
	require.NoError(t, err)
	NewGateway(fs, nil).SetTodayTasks(sampleTasks()[1:])

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "finished_at")
	assert.NotContains(t, string(b), "null")
}
