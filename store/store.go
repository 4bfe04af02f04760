// Package store persists finished solve reports.
//
// Only final routes are kept; descent graphs and intermediate distances are
// never written. A report's Digest identifies the input grid, so a stored
// digest lets callers skip re-solving an identical map.
package store

import (
	"context"
	"errors"
	"slices"

	"github.com/katalvlaran/skiroute/skiing"
	"github.com/katalvlaran/skiroute/steepest"
)

// DefaultListLimit caps ListRuns when the caller passes a non-positive limit.
const DefaultListLimit = 50

// ErrRunNotFound is returned when no run matches an id or digest.
var ErrRunNotFound = errors.New("store: run not found")

// Store defines the contract for persisting and retrieving solve reports.
type Store interface {
	// CreateSchema prepares the backend. It is idempotent.
	CreateSchema(ctx context.Context) error

	// SaveRun inserts rep, replacing any run with the same ID.
	SaveRun(ctx context.Context, rep *skiing.Report) error
	// GetRun returns the run with the given ID or ErrRunNotFound.
	GetRun(ctx context.Context, id string) (*skiing.Report, error)
	// FindByDigest returns the newest run for a grid digest or ErrRunNotFound.
	FindByDigest(ctx context.Context, digest string) (*skiing.Report, error)
	// ListRuns returns up to limit runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]skiing.Report, error)
	// DeleteRun removes a run or returns ErrRunNotFound.
	DeleteRun(ctx context.Context, id string) error
}

// Clone returns a deep copy of rep.
func Clone(rep *skiing.Report) *skiing.Report {
	if rep == nil {
		return nil
	}
	out := *rep
	if rep.Routes != nil {
		out.Routes = make([]steepest.Route, len(rep.Routes))
		for i, r := range rep.Routes {
			r.PathIndices = slices.Clone(r.PathIndices)
			r.PathValues = slices.Clone(r.PathValues)
			out.Routes[i] = r
		}
	}

	return &out
}

// NormalizeLimit maps non-positive limits to DefaultListLimit.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

// SortNewestFirst orders runs by CreatedAt descending, then by ID.
func SortNewestFirst(runs []skiing.Report) {
	slices.SortFunc(runs, func(a, b skiing.Report) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
}
