package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// Round-trip tests against a real database; set TEST_DATABASE_DSN to run.
func testGateway(t *testing.T) *Gateway {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	g, err := NewGateway(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(g.Close)
	return g
}

func TestGateway_SaveLoadRoundTrip(t *testing.T) {
	g := testGateway(t)
	ctx := context.Background()

	values := []int64{3, 1, 4, 1, 5}
	require.NoError(t, g.SaveAll(ctx, values))

	got, err := g.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, values, got)
}

func TestGateway_SaveAllReplaces(t *testing.T) {
	g := testGateway(t)
	ctx := context.Background()

	require.NoError(t, g.SaveAll(ctx, []int64{1, 2, 3}))
	require.NoError(t, g.SaveAll(ctx, []int64{}))

	got, err := g.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestGateway_Ping(t *testing.T) {
	g := testGateway(t)
	require.NoError(t, g.Ping(context.Background()))
}
