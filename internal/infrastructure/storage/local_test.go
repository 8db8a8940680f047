package storage

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalImageStore_SaveOpenRemove(t *testing.T) {
	store, err := NewLocalImageStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("abc123.png", strings.NewReader("png-bytes")))

	rc, err := store.Open("abc123.png")
	require.NoError(t, err)
	raw, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "png-bytes", string(raw))

	require.NoError(t, store.Remove("abc123.png"))
	_, err = store.Open("abc123.png")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLocalImageStore_OpenMissing(t *testing.T) {
	store, err := NewLocalImageStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open("nothing-here.png")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLocalImageStore_RemoveMissingIsNoop(t *testing.T) {
	store, err := NewLocalImageStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Remove("already-gone.png"))
}

func TestLocalImageStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	_, err := NewLocalImageStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLocalImageStore_StripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalImageStore(dir)
	require.NoError(t, err)

	// A crafted name must not write outside the upload directory.
	require.NoError(t, store.Save("../escape.png", strings.NewReader("x")))

	_, err = os.Stat(filepath.Join(dir, "escape.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(filepath.Dir(dir), "escape.png"))
	assert.True(t, os.IsNotExist(err))
}
