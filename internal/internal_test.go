package internal

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBucket(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src := filepath.Join(dir, "plugin.esp")
	require.NoError(t, os.WriteFile(src, []byte("TES3"), 0644))

	bucket, err := CreateBucket(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, bucket.Upload(ctx, "plugin.000.esp", src))

	data, err := os.ReadFile(filepath.Join(dir, "plugin.000.esp"))
	require.NoError(t, err)
	assert.Equal(t, "TES3", string(data))

	_, err = CreateBucket(ctx, "")
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("New", func(t *testing.T) {
		path := filepath.Join(dir, "new.json")
		require.NoError(t, WriteFile(path, []byte("[]")))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultFileMode, info.Mode().Perm())
	})
	t.Run("KeepsMode", func(t *testing.T) {
		path := filepath.Join(dir, "existing.json")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0600))
		require.NoError(t, os.Chmod(path, 0600))

		require.NoError(t, WriteFile(path, []byte("new")))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})
	t.Run("FollowsSymlink", func(t *testing.T) {
		target := filepath.Join(dir, "real.json")
		link := filepath.Join(dir, "link.json")
		require.NoError(t, os.WriteFile(target, []byte("previous"), 0600))
		require.NoError(t, os.Symlink(target, link))

		require.NoError(t, WriteFile(link, []byte("[]")))

		info, err := os.Lstat(link)
		require.NoError(t, err)
		assert.NotZero(t, info.Mode()&os.ModeSymlink)

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))

		info, err = os.Stat(target)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})
	t.Run("LeavesNoTemporaryFiles", func(t *testing.T) {
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, entry := range entries {
			assert.NotContains(t, entry.Name(), ".json.")
		}
	})
	t.Run("MissingDirectory", func(t *testing.T) {
		assert.Error(t, WriteFile(filepath.Join(dir, "nope", "out.json"), []byte("[]")))
	})
}
