package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRejectSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), OwnerReadWrite))
	link := filepath.Join(dir, "link.txt")
	require.NoError(t, os.Symlink(target, link))

	assert.NoError(t, RejectSymlink(filepath.Join(dir, "missing.txt")))
	assert.NoError(t, RejectSymlink(target))
	assert.ErrorContains(t, RejectSymlink(link), "refusing to write to symlink")
}

func TestWriteOwnerOnly(t *testing.T) {
	dir := t.TempDir()

	t.Run("new file", func(t *testing.T) {
		path := filepath.Join(dir, "report.json")
		require.NoError(t, WriteOwnerOnly(path, []byte(`{}`)))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, OwnerReadWrite, info.Mode().Perm())
	})

	t.Run("symlink left untouched", func(t *testing.T) {
		target := filepath.Join(dir, "keep.txt")
		require.NoError(t, os.WriteFile(target, []byte("original"), OwnerReadWrite))
		link := filepath.Join(dir, "out.txt")
		require.NoError(t, os.Symlink(target, link))

		assert.Error(t, WriteOwnerOnly(link, []byte("replaced")))
		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "original", string(data))
	})

	t.Run("missing directory", func(t *testing.T) {
		err := WriteOwnerOnly(filepath.Join(dir, "nope", "out.txt"), nil)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
