package prefs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/lemonade/internal/lifecycle"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "snapshot.json")
	s := NewFileStore(path)

	_, ok, err := s.Load(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	rec := lifecycle.Record{Stage: "drink", LemonSize: 2, SqueezeCount: 4}
	require.NoError(t, s.Save(ctx, rec))

	got, ok, err := s.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, rec, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(filepath.Join(t.TempDir(), "snapshot.json"))

	require.NoError(t, s.Save(ctx, lifecycle.Record{Stage: "squeeze", LemonSize: -1, SqueezeCount: -1}))
	require.NoError(t, s.Save(ctx, lifecycle.Record{Stage: "restart", LemonSize: -1, SqueezeCount: -1}))

	got, _, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "restart", got.Stage)
}

func TestFileStoreClear(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(filepath.Join(t.TempDir(), "snapshot.json"))

	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Save(ctx, lifecycle.Record{Stage: "select", LemonSize: -1, SqueezeCount: -1}))
	require.NoError(t, s.Clear(ctx))

	_, ok, err := s.Load(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFileStoreCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, _, err := NewFileStore(path).Load(ctx)
	require.Error(t, err)
}
