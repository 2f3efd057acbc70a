package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexrttr/qt-table-increment/storage"
	"github.com/stretchr/testify/require"
)

func TestGateway_SaveLoadRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		values []int64
	}{
		{"empty", []int64{}},
		{"single", []int64{42}},
		{"several", []int64{0, 5, -3, 1000000}},
	}

	for _, v := range tests {
		t.Run(v.name, func(t *testing.T) {
			ctx := context.Background()
			g := NewGateway(filepath.Join(t.TempDir(), "counters.json"))

			require.NoError(t, g.SaveAll(ctx, v.values))

			got, err := g.Load(ctx)
			require.NoError(t, err)
			require.Equal(t, v.values, got)
		})
	}
}

func TestGateway_LoadMissingFileIsEmpty(t *testing.T) {
	g := NewGateway(filepath.Join(t.TempDir(), "never-saved.json"))

	got, err := g.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestGateway_SaveReplacesPreviousContents(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(filepath.Join(t.TempDir(), "counters.json"))

	require.NoError(t, g.SaveAll(ctx, []int64{1, 2, 3}))
	require.NoError(t, g.SaveAll(ctx, []int64{9}))

	got, err := g.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{9}, got)
}

func TestGateway_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	g := NewGateway(filepath.Join(dir, "counters.json"))

	require.NoError(t, g.SaveAll(context.Background(), []int64{7, 8}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "counters.json", entries[0].Name())
}

func TestGateway_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counters.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	_, err := NewGateway(path).Load(context.Background())
	require.Error(t, err)
}

func TestGateway_LoadUnreadableIsUnavailable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are ignored for root")
	}

	path := filepath.Join(t.TempDir(), "counters.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0000))

	_, err := NewGateway(path).Load(context.Background())
	require.True(t, errors.Is(err, storage.ErrUnavailable), "got: %v", err)
}

func TestGateway_NilSavesAsEmpty(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(filepath.Join(t.TempDir(), "counters.json"))

	require.NoError(t, g.SaveAll(ctx, nil))

	got, err := g.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}
