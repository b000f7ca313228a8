package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocal_SaveOpenRemove(t *testing.T) {
	store := NewLocal(t.TempDir())

	path, err := store.Save("My Notes (v2).pdf", strings.NewReader("content"))
	assert.NoError(t, err)
	assert.NotEmpty(t, path)
	assert.True(t, strings.HasSuffix(path, ".pdf"))

	blob, err := store.Open(path)
	assert.NoError(t, err)
	data, _ := io.ReadAll(blob)
	blob.Close()
	assert.Equal(t, "content", string(data))

	assert.NoError(t, store.Remove(path))
	_, err = store.Open(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocal_UniqueNames(t *testing.T) {
	store := NewLocal(t.TempDir())

	a, err := store.Save("notes.pdf", strings.NewReader("a"))
	assert.NoError(t, err)
	b, err := store.Save("notes.pdf", strings.NewReader("b"))
	assert.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestLocal_SanitizesHostilePaths(t *testing.T) {
	dir := t.TempDir()
	store := NewLocal(dir)

	path, err := store.Save("../../etc/passwd", strings.NewReader("x"))
	assert.NoError(t, err)

	// blob must land inside the base directory
	abs := filepath.Join(dir, filepath.FromSlash(path))
	rel, err := filepath.Rel(dir, abs)
	assert.NoError(t, err)
	assert.False(t, strings.HasPrefix(rel, ".."))

	_, err = os.Stat(abs)
	assert.NoError(t, err)
}
