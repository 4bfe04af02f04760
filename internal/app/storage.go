package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/katalvlaran/skiroute/internal/config"
	"github.com/katalvlaran/skiroute/store"
	"github.com/katalvlaran/skiroute/store/badgerdb"
	"github.com/katalvlaran/skiroute/store/postgres"
)

// openStore connects the configured backend and prepares its schema. The
// returned close function releases the backend.
func openStore(ctx context.Context, cfg config.Storage) (store.Store, func(), error) {
	var (
		st      store.Store
		closeFn = func() {}
	)

	switch cfg.Driver {
	case config.DriverMemory, "":
		st = store.NewMemory()
	case config.DriverBadger:
		db, err := badgerdb.Open(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		st = badgerdb.New(db)
		closeFn = func() { _ = db.Close() }
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("app: connect postgres: %w", err)
		}
		st = postgres.New(pool)
		closeFn = pool.Close
	default:
		return nil, nil, fmt.Errorf("app: unknown storage driver %q", cfg.Driver)
	}

	if err := st.CreateSchema(ctx); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("app: create schema: %w", err)
	}

	return st, closeFn, nil
}
