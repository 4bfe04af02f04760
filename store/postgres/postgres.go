// Package postgres implements store.Store on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/katalvlaran/skiroute/skiing"
	"github.com/katalvlaran/skiroute/steepest"
	"github.com/katalvlaran/skiroute/store"
)

const runColumns = `id, digest, width, height, roots, max_distance, routes, elapsed_ns, created_at`

// PGStore implements store.Store using PostgreSQL.
type PGStore struct {
	db *pgxpool.Pool
}

var _ store.Store = (*PGStore)(nil)

// New creates a new PGStore backed by the given pgx connection pool.
func New(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// SaveRun upserts rep. Routes are stored as JSONB.
func (s *PGStore) SaveRun(ctx context.Context, rep *skiing.Report) error {
	routes := rep.Routes
	if routes == nil {
		routes = []steepest.Route{}
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO ski_runs (`+runColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			digest = EXCLUDED.digest,
			width = EXCLUDED.width,
			height = EXCLUDED.height,
			roots = EXCLUDED.roots,
			max_distance = EXCLUDED.max_distance,
			routes = EXCLUDED.routes,
			elapsed_ns = EXCLUDED.elapsed_ns,
			created_at = EXCLUDED.created_at`,
		rep.ID, rep.Digest, rep.Width, rep.Height, rep.Roots, rep.MaxDistance,
		routes, rep.Elapsed.Nanoseconds(), rep.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: save run %s: %w", rep.ID, err)
	}

	return nil
}

func (s *PGStore) GetRun(ctx context.Context, id string) (*skiing.Report, error) {
	row := s.db.QueryRow(ctx, `SELECT `+runColumns+` FROM ski_runs WHERE id = $1`, id)
	rep, err := scanRun(row)
	if err != nil {
		return nil, fmt.Errorf("postgres: get run %s: %w", id, err)
	}

	return rep, nil
}

func (s *PGStore) FindByDigest(ctx context.Context, digest string) (*skiing.Report, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+runColumns+` FROM ski_runs WHERE digest = $1 ORDER BY created_at DESC, id LIMIT 1`, digest)
	rep, err := scanRun(row)
	if err != nil {
		return nil, fmt.Errorf("postgres: find digest %s: %w", digest, err)
	}

	return rep, nil
}

func (s *PGStore) ListRuns(ctx context.Context, limit int) ([]skiing.Report, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+runColumns+` FROM ski_runs ORDER BY created_at DESC, id LIMIT $1`, store.NormalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("postgres: query runs: %w", err)
	}
	defer rows.Close()

	var runs []skiing.Report
	for rows.Next() {
		rep, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan run: %w", err)
		}
		runs = append(runs, *rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: rows runs: %w", err)
	}

	return runs, nil
}

func (s *PGStore) DeleteRun(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM ski_runs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: delete run %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrRunNotFound
	}

	return nil
}

func scanRun(row pgx.Row) (*skiing.Report, error) {
	var (
		rep       skiing.Report
		elapsedNS int64
	)
	err := row.Scan(&rep.ID, &rep.Digest, &rep.Width, &rep.Height, &rep.Roots,
		&rep.MaxDistance, &rep.Routes, &elapsedNS, &rep.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	rep.Elapsed = time.Duration(elapsedNS)

	return &rep, nil
}
