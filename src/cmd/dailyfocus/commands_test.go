package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyfocus/local-app/src/pkg/config"
)

// writeTestConfig points every path of the configuration into a temp dir and
// uses the JSON file store.
func writeTestConfig(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.DatabaseType = "json"
	cfg.DatabaseDir = filepath.Join(root, "data")
	cfg.LogFolder = filepath.Join(root, "logs")
	cfg.HistoryFile = filepath.Join(root, "data", ".history")
	cfg.MetricsFile = filepath.Join(root, "data", "metrics.prom")
	cfg.BackupDir = filepath.Join(root, "backups")
	cfg.ExportDir = filepath.Join(root, "exports")

	raw, err := json.Marshal(cfg)
	require.NoError(t, err)
	path := filepath.Join(root, "config.json")
	require.NoError(t, os.WriteFile(path, raw, 0644))
	return path, root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRolloverCommand(t *testing.T) {
	cfgPath, root := writeTestConfig(t)

	out, err := execute(t, "rollover", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Day rolled over")
	assert.Contains(t, out, "Week rolled over")

	out, err = execute(t, "rollover", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Day unchanged")
	assert.Contains(t, out, "Week unchanged")

	assert.FileExists(t, filepath.Join(root, "data", "metrics.prom"))
}

func TestExportValidateImport(t *testing.T) {
	cfgPath, root := writeTestConfig(t)
	dump := filepath.Join(root, "dump.yaml")

	out, err := execute(t, "export", "data", dump, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported to")
	assert.FileExists(t, dump)

	out, err = execute(t, "validate", dump, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	out, err = execute(t, "import", dump, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported")

	bad := filepath.Join(root, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"todayTasks": "nope"}`), 0644))
	_, err = execute(t, "validate", bad, "--config", cfgPath)
	assert.Error(t, err)
}

func TestExportMarkdownCommand(t *testing.T) {
	cfgPath, root := writeTestConfig(t)

	out, err := execute(t, "export", "markdown", "--status", "completed", "--range", "all", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(root, "exports"))

	_, err = execute(t, "export", "markdown", "--status", "done", "--config", cfgPath)
	assert.Error(t, err)
}

func TestStatsCommand(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)

	out, err := execute(t, "stats", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Task statistics (last 7 days)")

	out, err = execute(t, "stats", "learning", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Learning statistics")

	_, err = execute(t, "stats", "tasks", "--days", "zero", "--config", cfgPath)
	assert.Error(t, err)
	_, err = execute(t, "stats", "moods", "--config", cfgPath)
	assert.Error(t, err)
}

func TestBackupRestoreCommands(t *testing.T) {
	cfgPath, root := writeTestConfig(t)

	_, err := execute(t, "rollover", "--config", cfgPath)
	require.NoError(t, err)

	out, err := execute(t, "backup", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Backed up")

	archives, err := filepath.Glob(filepath.Join(root, "backups", "*.tar.gz"))
	require.NoError(t, err)
	require.Len(t, archives, 1)

	out, err = execute(t, "restore", archives[0], "--verify", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "is intact")

	require.NoError(t, os.RemoveAll(filepath.Join(root, "data", "dailyfocus.json")))
	out, err = execute(t, "restore", archives[0], "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Restored")
	assert.FileExists(t, filepath.Join(root, "data", "dailyfocus.json"))
}
