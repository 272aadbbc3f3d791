package storage_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheMichaelB/quihex/internal/storage"
)

var _ storage.Store = (*storage.MockStore)(nil)
var _ storage.Store = (*storage.LocalStore)(nil)

func TestMockStore(t *testing.T) {
	store := storage.NewMockStore()
	path := filepath.Join("/blog", "source", "_posts", "a.md")

	_, err := store.Read(path)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, store.Write(path, []byte("hello")))
	assert.True(t, store.FileExists(path))
	assert.True(t, store.DirExists(filepath.Dir(path)))

	data, err := store.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	// Returned data is a copy.
	data[0] = 'j'
	again, err := store.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(again))

	assert.Equal(t, 1, store.Writes())
	assert.Equal(t, 3, store.Reads())
}

func TestMockStoreFailures(t *testing.T) {
	store := storage.NewMockStore()
	boom := errors.New("boom")

	store.Put("/a.md", []byte("a"))
	store.FailRead("/a.md", boom)
	store.FailWrite("/b.md", boom)
	store.FailCopy("/res", boom)

	_, err := store.Read("/a.md")
	assert.ErrorIs(t, err, boom)

	assert.ErrorIs(t, store.Write("/b.md", nil), boom)
	assert.False(t, store.FileExists("/b.md"))

	_, err = store.CopyDir("/res", "/dst")
	assert.ErrorIs(t, err, boom)
}

func TestMockStoreCopyDir(t *testing.T) {
	store := storage.NewMockStore()
	store.Put("/res/a.png", []byte("a"))
	store.Put("/res/sub/b.png", []byte("b"))
	store.Put("/resources-other/c.png", []byte("c"))

	n, err := store.CopyDir("/res", "/post")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, store.FileExists("/post/a.png"))
	assert.True(t, store.FileExists("/post/sub/b.png"))
	assert.False(t, store.FileExists("/post/c.png"))

	exists, err := store.Exists("/post")
	require.NoError(t, err)
	assert.True(t, exists)
}
