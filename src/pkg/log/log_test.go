package log

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyfocus/local-app/src/pkg/model"
)

func testConfig(t *testing.T, level string) *model.Config {
	t.Helper()
	return &model.Config{
		LogFolder:  t.TempDir(),
		CommandLog: "command.log",
		ErrorLog:   "error.log",
		InfoLog:    "info.log",
		LogLevel:   level,
	}
}

func readLog(t *testing.T, cfg *model.Config, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(cfg.LogFolder, name))
	require.NoError(t, err)
	return string(b)
}

func TestLogger_RoutesByLevel(t *testing.T) {
	cfg := testConfig(t, "info")
	logger, err := NewLogger(cfg)
	require.NoError(t, err)

	ctx := context.Background()
	logger.Command(ctx, "today add milk", nil)
	logger.Error(ctx, "write failed", Fields{"key": "todayTasks"})
	logger.Info(ctx, "day rolled over", Fields{"archived": true})
	logger.Debug(ctx, "hidden detail", nil)
	require.NoError(t, logger.Close())

	assert.Contains(t, readLog(t, cfg, "command.log"), "today add milk")
	errs := readLog(t, cfg, "error.log")
	assert.Contains(t, errs, "write failed")
	assert.Contains(t, errs, `"key":"todayTasks"`)
	info := readLog(t, cfg, "info.log")
	assert.Contains(t, info, "day rolled over")
	assert.NotContains(t, info, "hidden detail")
}

func TestLogger_DebugLevelAndClose(t *testing.T) {
	cfg := testConfig(t, "debug")
	logger, err := NewLogger(cfg)
	require.NoError(t, err)

	logger.Debug(context.Background(), "visible detail", nil)
	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())

	assert.Contains(t, readLog(t, cfg, "info.log"), "visible detail")
	logger.Info(context.Background(), "after close", nil)
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Error(context.Background(), "ignored", nil)
	assert.NoError(t, logger.Close())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warn"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel(""))
	assert.Equal(t, "WARN", LevelWarn.String())
}
