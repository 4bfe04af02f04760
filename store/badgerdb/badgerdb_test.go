package badgerdb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/skiroute/store"
	"github.com/katalvlaran/skiroute/store/badgerdb"
	"github.com/katalvlaran/skiroute/store/storetest"
)

func newStore(t *testing.T) store.Store {
	db, err := badgerdb.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return badgerdb.New(db)
}

func TestKVStore(t *testing.T) {
	storetest.Run(t, newStore)
}

func TestKVStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	want := storetest.Report(1, "disk")

	db, err := badgerdb.Open(dir)
	require.NoError(t, err)
	require.NoError(t, badgerdb.New(db).SaveRun(ctx, want))
	require.NoError(t, db.Close())

	db, err = badgerdb.Open(dir)
	require.NoError(t, err)
	defer db.Close()

	got, err := badgerdb.New(db).FindByDigest(ctx, "disk")
	require.NoError(t, err)
	storetest.Equal(t, want, got)
	assert.Equal(t, want.Elapsed, got.Elapsed)
}
