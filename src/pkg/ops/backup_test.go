package ops

import (
	"archive/tar"
	"compress/gzip"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"
)

var backupTime = time.Date(2025, 10, 14, 9, 30, 0, 0, time.UTC)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	got := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		got[filepath.ToSlash(rel)] = string(b)
		return nil
	})
	require.NoError(t, err)
	return got
}

// writeArchive builds an archive by hand with the given entries and manifest.
func writeArchive(t *testing.T, path string, entries map[string]string, manifest *Manifest) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	add := func(name string, body []byte) {
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Typeflag: tar.TypeReg, Mode: 0o644, Size: int64(len(body))}))
		_, err := tw.Write(body)
		require.NoError(t, err)
	}
	for name, body := range entries {
		add(name, []byte(body))
	}
	if manifest != nil {
		raw, err := json.Marshal(manifest)
		require.NoError(t, err)
		add(ManifestName, raw)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
}

func digest(s string) string {
	sum := blake2b.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestBackupRestoreDataDir_RoundTrip(t *testing.T) {
	src := filepath.Join(t.TempDir(), "data")
	files := map[string]string{
		"dailyfocus.json": `{"todayTasks":[],"lastDate":"2025-10-14"}`,
		"config.json":     `{"database_type":"json"}`,
		"nested/.history": "today list\n",
	}
	writeTree(t, src, files)

	archive := filepath.Join(t.TempDir(), "backups", BackupFilename(backupTime))
	manifest, err := BackupDataDir(src, archive, backupTime)
	require.NoError(t, err)
	assert.Len(t, manifest.Files, 3)
	assert.Equal(t, digest(files["config.json"]), manifest.Files["config.json"])

	verified, err := VerifyBackup(archive)
	require.NoError(t, err)
	assert.Equal(t, manifest.Files, verified.Files)
	assert.True(t, verified.CreatedAt.Equal(backupTime))

	out := filepath.Join(t.TempDir(), "restore")
	require.NoError(t, RestoreDataDir(archive, out))
	assert.Equal(t, files, readTree(t, out))
}

func TestBackupFilename(t *testing.T) {
	assert.Equal(t, "dailyfocus-backup-20251014-093000.tar.gz", BackupFilename(backupTime))
}

func TestVerifyBackup_DetectsTampering(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "tampered.tar.gz")
	writeArchive(t, archive, map[string]string{"a.json": "changed"}, &Manifest{
		Files: map[string]string{"a.json": digest("original")},
	})

	_, err := VerifyBackup(archive)
	assert.ErrorIs(t, err, ErrDigestMismatch)
	assert.ErrorIs(t, RestoreDataDir(archive, t.TempDir()), ErrDigestMismatch)
}

func TestVerifyBackup_RequiresManifest(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "bare.tar.gz")
	writeArchive(t, archive, map[string]string{"a.json": "{}"}, nil)

	_, err := VerifyBackup(archive)
	assert.ErrorIs(t, err, ErrDigestMismatch)
}

func TestVerifyBackup_RejectsUnlistedFile(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "extra.tar.gz")
	writeArchive(t, archive, map[string]string{"a.json": "{}", "b.json": "{}"}, &Manifest{
		Files: map[string]string{"a.json": digest("{}")},
	})

	_, err := VerifyBackup(archive)
	assert.ErrorIs(t, err, ErrDigestMismatch)
}

func TestRestoreDataDir_RejectsPathTraversal(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "bad.tar.gz")
	writeArchive(t, archive, map[string]string{"../escape.txt": "bad"}, &Manifest{
		Files: map[string]string{"../escape.txt": digest("bad")},
	})

	err := RestoreDataDir(archive, filepath.Join(t.TempDir(), "out"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDigestMismatch)
}

func TestBackupDataDir_RequiresDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := BackupDataDir(file, filepath.Join(t.TempDir(), "out.tar.gz"), backupTime)
	assert.Error(t, err)
}
