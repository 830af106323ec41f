package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyfocus/local-app/src/pkg/model"
)

func sampleDump() Dump {
	return Dump{
		AppData: model.AppData{
			TodayTasks:  sampleTasks(),
			MustDoTasks: []model.Task{},
			TaskHistory: model.TaskHistory{},
			LastDate:    "2024-01-01",
			Settings:    model.DefaultSettings(),
		},
		LearningData: model.LearningData{
			CurrentWeekTopics:  []model.LearningTopic{},
			LearningHistory:    model.LearningHistory{},
			LastWeekID:         "2024-W01",
			LearningSettings:   model.DefaultLearningSettings(),
			LearningStatistics: model.DefaultLearningStatistics(),
		},
	}
}

func TestFileExportImport(t *testing.T) {
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "dump."+format)
			require.NoError(t, FileExport(sampleDump(), path, format))

			raw, err := FileImport(path, format)
			require.NoError(t, err)
			assert.Contains(t, string(raw), `"todayTasks"`)
			assert.Contains(t, string(raw), `"lastWeekId"`)

			dump, err := DecodeDump(raw)
			require.NoError(t, err)
			assert.Equal(t, sampleDump().TodayTasks, dump.TodayTasks)
			assert.Equal(t, "2024-W01", dump.LastWeekID)
		})
	}
}

func TestFileExport_UnsupportedFormat(t *testing.T) {
	assert.Error(t, FileExport(sampleDump(), filepath.Join(t.TempDir(), "x.xml"), "xml"))
	assert.Equal(t, "yaml", FormatFromPath("a/b.YML"))
	assert.Equal(t, "json", FormatFromPath("a/b.json"))
}
