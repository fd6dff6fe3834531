package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveWritesUnderDirAndMapsPublicPath(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "uploads"), "/uploads")
	require.NoError(t, err)

	path, err := store.Save(context.Background(), "agenda.pdf", strings.NewReader("content"))
	require.NoError(t, err)

	// Public path and backing directory must agree: stripping the public
	// prefix from the returned path locates the file inside Dir().
	require.True(t, strings.HasPrefix(path, "/uploads/"))
	assert.True(t, strings.HasSuffix(path, ".pdf"))

	onDisk := filepath.Join(store.Dir(), strings.TrimPrefix(path, "/uploads/"))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestRemoveDeletesBlob(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "uploads"), "/uploads")
	require.NoError(t, err)

	path, err := store.Save(context.Background(), "plan.docx", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(context.Background(), path))

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Removing an already-gone path is not an error
	assert.NoError(t, store.Remove(context.Background(), path))
}
