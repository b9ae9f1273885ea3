package storage

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_SaveAndRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStore(dir, "uploads")
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())

	publicPath, err := store.Save("profile", ".PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(publicPath, "/uploads/profile-"))
	assert.True(t, strings.HasSuffix(publicPath, ".png"))

	onDisk := filepath.Join(dir, path.Base(publicPath))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Remove(publicPath))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))

	// second remove is a no-op
	assert.NoError(t, store.Remove(publicPath))
}

func TestLocalStore_RemoveIgnoresForeignPaths(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/uploads")
	require.NoError(t, err)

	outside := filepath.Join(dir, "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	assert.NoError(t, store.Remove("/static/keep.txt"))
	_, err = os.Stat(outside)
	assert.NoError(t, err)
}

func TestLocalStore_SaveNamesAreUnique(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	a, err := store.Save("profile", ".jpg", strings.NewReader("a"))
	require.NoError(t, err)
	b, err := store.Save("profile", ".jpg", strings.NewReader("b"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
