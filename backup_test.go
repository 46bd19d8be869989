package tes3conv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/evergreen-ci/pail"
	"github.com/julianedwards/tes3conv/internal"
	"github.com/julianedwards/tes3conv/options"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketSessionImplementation(t *testing.T) {
	assert.Implements(t, (*internal.BucketSession)(nil), &localBucketSession{})
}

func TestBackupPath(t *testing.T) {
	for path, expected := range map[string]string{
		"data.json":          "data.003.json",
		"dir/Morrowind.esm":  "dir/Morrowind.003.esm",
		"archive.tar.json":   "archive.tar.003.json",
		"dir.d/no_extension": "dir.d/no_extension.003",
	} {
		assert.Equal(t, expected, BackupPath(path, 3))
	}
	assert.Equal(t, "data.999.json", BackupPath("data.json", 999))
}

func writeFile(t *testing.T, path, content string) {
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestBackupPicksLowestFreeSlot(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	writeFile(t, path, "current")
	writeFile(t, filepath.Join(dir, "data.000.json"), "zero")
	writeFile(t, filepath.Join(dir, "data.001.json"), "one")

	backup, err := NewBackupManager(options.Backup{}, nil, nil).Backup(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data.002.json"), backup)
	assert.Equal(t, "current", readFile(t, backup))
	assert.Equal(t, "zero", readFile(t, filepath.Join(dir, "data.000.json")))
	assert.Equal(t, "current", readFile(t, path))
}

func TestBackupFillsGaps(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	writeFile(t, path, "current")
	writeFile(t, filepath.Join(dir, "data.001.json"), "one")

	backup, err := NewBackupManager(options.Backup{}, nil, nil).Backup(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data.000.json"), backup)
}

func TestBackupExhausted(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	writeFile(t, path, "current")
	for n := 0; n < 3; n++ {
		writeFile(t, filepath.Join(dir, BackupPath("data.json", n)), "old")
	}

	_, err := NewBackupManager(options.Backup{Limit: 3}, nil, nil).Backup(ctx, path)
	assert.True(t, errors.Is(err, ErrBackupExhausted))
	assert.Equal(t, "current", readFile(t, path))
}

func TestBackupDirectory(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	backups := filepath.Join(dir, "backups")
	path := filepath.Join(dir, "plugin.esp")
	writeFile(t, path, "TES3")

	manager := NewBackupManager(options.Backup{Dir: backups}, nil, nil)
	first, err := manager.Backup(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(backups, "plugin.000.esp"), first)

	second, err := manager.Backup(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(backups, "plugin.001.esp"), second)
	assert.Equal(t, "TES3", readFile(t, second))

	_, err = os.Stat(filepath.Join(dir, "plugin.000.esp"))
	assert.True(t, os.IsNotExist(err))
}

type failingSession struct{}

func (failingSession) Create(context.Context, string) (pail.Bucket, error) {
	return nil, errors.New("bucket unavailable")
}

func TestBackupSessionError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	writeFile(t, path, "current")

	manager := NewBackupManager(options.Backup{}, &BucketSession{BucketSession: failingSession{}}, nil)
	_, err := manager.Backup(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket unavailable")
}

func ExampleBackupPath() {
	fmt.Println(BackupPath("plugin.json", 7))
	// Output: plugin.007.json
}
