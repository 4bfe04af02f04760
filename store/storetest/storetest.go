// Package storetest provides a behavioural test suite shared by every
// store.Store implementation.
package storetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/skiroute/skiing"
	"github.com/katalvlaran/skiroute/steepest"
	"github.com/katalvlaran/skiroute/store"
)

var epoch = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

// Report returns a run with deterministic content. Runs with a larger n are
// newer.
func Report(n int, digest string) *skiing.Report {
	return &skiing.Report{
		ID:          fmt.Sprintf("run-%03d", n),
		Digest:      digest,
		Width:       4,
		Height:      4,
		Roots:       5,
		MaxDistance: 4,
		Routes: []steepest.Route{{
			Drop:        8,
			MaxDistance: 4,
			PathLength:  5,
			PathIndices: []int{6, 5, 9, 10, 14},
			PathValues:  []int{9, 5, 3, 2, 1},
		}},
		Elapsed:   time.Duration(n) * time.Millisecond,
		CreatedAt: epoch.Add(time.Duration(n) * time.Minute),
	}
}

// normalize strips location and sub-microsecond precision so reports that
// went through a database compare equal.
func normalize(rep skiing.Report) skiing.Report {
	rep.CreatedAt = rep.CreatedAt.UTC().Truncate(time.Microsecond)
	return rep
}

// Equal asserts that two reports carry the same content.
func Equal(t testing.TB, want, got *skiing.Report) {
	t.Helper()
	require.NotNil(t, got)
	assert.Equal(t, normalize(*want), normalize(*got))
}

// Run exercises s. newStore must return an empty store for every call.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("SaveAndGet", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.CreateSchema(ctx))
		require.NoError(t, s.CreateSchema(ctx), "schema creation is idempotent")

		want := Report(1, "d1")
		require.NoError(t, s.SaveRun(ctx, want))
		got, err := s.GetRun(ctx, want.ID)
		require.NoError(t, err)
		Equal(t, want, got)

		got.Routes[0].PathValues[0] = -1
		again, err := s.GetRun(ctx, want.ID)
		require.NoError(t, err)
		assert.Equal(t, 9, again.Routes[0].PathValues[0], "returned reports are copies")
	})

	t.Run("NotFound", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.CreateSchema(ctx))

		_, err := s.GetRun(ctx, "missing")
		assert.ErrorIs(t, err, store.ErrRunNotFound)
		_, err = s.FindByDigest(ctx, "missing")
		assert.ErrorIs(t, err, store.ErrRunNotFound)
		assert.ErrorIs(t, s.DeleteRun(ctx, "missing"), store.ErrRunNotFound)
	})

	t.Run("FindByDigestNewest", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.CreateSchema(ctx))

		older, newer, other := Report(1, "same"), Report(2, "same"), Report(3, "other")
		require.NoError(t, s.SaveRun(ctx, newer))
		require.NoError(t, s.SaveRun(ctx, older))
		require.NoError(t, s.SaveRun(ctx, other))

		got, err := s.FindByDigest(ctx, "same")
		require.NoError(t, err)
		Equal(t, newer, got)

		require.NoError(t, s.DeleteRun(ctx, newer.ID))
		got, err = s.FindByDigest(ctx, "same")
		require.NoError(t, err)
		Equal(t, older, got)

		require.NoError(t, s.DeleteRun(ctx, older.ID))
		_, err = s.FindByDigest(ctx, "same")
		assert.ErrorIs(t, err, store.ErrRunNotFound)
	})

	t.Run("SaveReplaces", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.CreateSchema(ctx))

		rep := Report(1, "before")
		require.NoError(t, s.SaveRun(ctx, rep))
		rep.Digest = "after"
		rep.MaxDistance = 7
		require.NoError(t, s.SaveRun(ctx, rep))

		got, err := s.GetRun(ctx, rep.ID)
		require.NoError(t, err)
		Equal(t, rep, got)
		_, err = s.FindByDigest(ctx, "before")
		assert.ErrorIs(t, err, store.ErrRunNotFound)
		_, err = s.FindByDigest(ctx, "after")
		assert.NoError(t, err)
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.CreateSchema(ctx))

		for _, n := range []int{3, 1, 4, 2} {
			require.NoError(t, s.SaveRun(ctx, Report(n, fmt.Sprintf("d%d", n))))
		}

		runs, err := s.ListRuns(ctx, 0)
		require.NoError(t, err)
		ids := make([]string, len(runs))
		for i, r := range runs {
			ids[i] = r.ID
		}
		assert.Equal(t, []string{"run-004", "run-003", "run-002", "run-001"}, ids)

		runs, err = s.ListRuns(ctx, 2)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		Equal(t, Report(4, "d4"), &runs[0])
	})
}
