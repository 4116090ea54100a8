package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingFileReadsEmpty", func(t *testing.T) {
		s := NewFileStore(filepath.Join(t.TempDir(), "store.json"))
		var out []string
		found, err := s.Get(ctx, "users", &out)
		assert.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, out)
	})

	t.Run("SetGetDelete", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "store.json")
		s := NewFileStore(path)

		require.NoError(t, s.Set(ctx, "a", map[string]int{"x": 1}))
		require.NoError(t, s.Set(ctx, "b", "second"))

		var a map[string]int
		found, err := s.Get(ctx, "a", &a)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 1, a["x"])

		require.NoError(t, s.Delete(ctx, "a"))
		found, err = s.Get(ctx, "a", &a)
		require.NoError(t, err)
		assert.False(t, found)

		var b string
		found, err = s.Get(ctx, "b", &b)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "second", b)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("DeleteMissingKey", func(t *testing.T) {
		s := NewFileStore(filepath.Join(t.TempDir(), "store.json"))
		assert.NoError(t, s.Delete(ctx, "nothing"))
	})

	t.Run("CorruptDocument", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		s := NewFileStore(path)
		var out string
		_, err := s.Get(ctx, "users", &out)
		assert.ErrorContains(t, err, "failed to parse store document")
	})

	t.Run("PersistsAcrossInstances", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store.json")
		require.NoError(t, NewFileStore(path).Set(ctx, "k", 42))

		var v int
		found, err := NewFileStore(path).Get(ctx, "k", &v)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 42, v)
	})
}
