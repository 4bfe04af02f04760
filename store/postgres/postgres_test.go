package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/skiroute/store"
	"github.com/katalvlaran/skiroute/store/postgres"
	"github.com/katalvlaran/skiroute/store/storetest"
)

// TestPGStore runs against the database named by SKIROUTE_TEST_DATABASE_URL.
// The ski_runs table is dropped before each subtest.
func TestPGStore(t *testing.T) {
	dsn := os.Getenv("SKIROUTE_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("SKIROUTE_TEST_DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	storetest.Run(t, func(t *testing.T) store.Store {
		s := postgres.New(pool)
		require.NoError(t, s.DropSchema(context.Background()))
		return s
	})
}
