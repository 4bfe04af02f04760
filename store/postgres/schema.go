package postgres

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS ski_runs (
    id           TEXT PRIMARY KEY,
    digest       TEXT NOT NULL,
    width        INTEGER NOT NULL,
    height       INTEGER NOT NULL,
    roots        INTEGER NOT NULL,
    max_distance INTEGER NOT NULL,
    routes       JSONB NOT NULL DEFAULT '[]',
    elapsed_ns   BIGINT NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_ski_runs_digest     ON ski_runs(digest, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_ski_runs_created_at ON ski_runs(created_at DESC);
`

// CreateSchema creates the ski_runs table if it doesn't exist.
func (s *PGStore) CreateSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schemaSQL)
	return err
}

// DropSchema drops the ski_runs table.
func (s *PGStore) DropSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS ski_runs CASCADE;`)
	return err
}
