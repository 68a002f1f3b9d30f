package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutGetDelete(t *testing.T) {
	s := New(t.TempDir())

	_, ok := s.Get("missing")
	assert.False(t, ok)

	require.NoError(t, s.Put("key", []byte(`{"a":1}`)))
	got, ok := s.Get("key")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"a":1}`), got)

	require.NoError(t, s.Put("key", []byte(`{"a":2}`)))
	got, _ = s.Get("key")
	assert.Equal(t, []byte(`{"a":2}`), got)

	s.Delete("key")
	_, ok = s.Get("key")
	assert.False(t, ok)

	// deleting again is fine
	s.Delete("key")
}

func TestStore_ValuesSurviveReopen(t *testing.T) {
	dir := t.TempDir()

	s := New(dir)
	require.NoError(t, s.Put("key", []byte("value")))

	reopened := New(dir)
	got, ok := reopened.Get("key")
	require.True(t, ok)
	assert.Equal(t, []byte("value"), got)
}

func TestStore_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()

	s := New(dir)
	require.NoError(t, s.Put("key", []byte("value")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "key.json", entries[0].Name())
}

func TestStore_DegradesToMemoryWhenDirUnusable(t *testing.T) {
	// A regular file where the directory should be makes MkdirAll fail.
	base := t.TempDir()
	blocked := filepath.Join(base, "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0644))

	s := New(blocked)
	assert.True(t, s.MemoryOnly())

	require.NoError(t, s.Put("key", []byte("value")))
	got, ok := s.Get("key")
	require.True(t, ok)
	assert.Equal(t, []byte("value"), got)

	s.Delete("key")
	_, ok = s.Get("key")
	assert.False(t, ok)
}
