package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocal(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(LocalConfig{BasePath: t.TempDir()})
	require.NoError(t, err)
	return s
}

func TestLocalStorageRoundTrip(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	content := "avatar bytes"
	require.NoError(t, s.Write(ctx, "avatars/u1/a.png", strings.NewReader(content), int64(len(content)), "image/png"))

	exists, err := s.Exists(ctx, "avatars/u1/a.png")
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := s.Read(ctx, "avatars/u1/a.png")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, content, string(got))

	url, err := s.GetURL(ctx, "avatars/u1/a.png", 0)
	require.NoError(t, err)
	assert.Equal(t, "/media/avatars/u1/a.png", url)

	require.NoError(t, s.Delete(ctx, "avatars/u1/a.png"))
	exists, err = s.Exists(ctx, "avatars/u1/a.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorageMissingKey(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	_, err := s.Read(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetURL(ctx, "missing", 0)
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting a missing key is not an error
	assert.NoError(t, s.Delete(ctx, "missing"))
}

func TestLocalStoragePathTraversal(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	// the key collapses to the base path, so nothing lands outside it
	err := s.Write(ctx, "../escape.txt", strings.NewReader("x"), 1, "text/plain")
	assert.Error(t, err)

	_, err = os.Stat(filepath.Join(filepath.Dir(s.BasePath()), "escape.txt"))
	assert.True(t, os.IsNotExist(err))
}
