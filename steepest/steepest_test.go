package steepest_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/skiroute/gridgraph"
	"github.com/katalvlaran/skiroute/longest"
	"github.com/katalvlaran/skiroute/steepest"
)

func sampleGrid(t *testing.T) *gridgraph.Grid {
	t.Helper()
	g, err := gridgraph.NewGrid(4, 4, []int{4, 8, 7, 3, 2, 5, 9, 3, 6, 3, 2, 5, 4, 4, 1, 6})
	require.NoError(t, err)

	return g
}

// TestSteepest_RejectsLowerDrop: two paths tie on length, only the one
// starting at the 9 survives with drop 8.
func TestSteepest_RejectsLowerDrop(t *testing.T) {
	cands := []steepest.Candidate{
		{Root: 1, MaxDistance: 4, Path: []int{1, 5, 9, 10, 14}},
		{Root: 6, MaxDistance: 4, Path: []int{6, 5, 9, 10, 14}},
	}
	routes, err := steepest.Steepest(sampleGrid(t), cands)
	require.NoError(t, err)

	assert.Equal(t, []steepest.Route{{
		Drop:        8,
		MaxDistance: 4,
		PathLength:  5,
		PathIndices: []int{6, 5, 9, 10, 14},
		PathValues:  []int{9, 5, 3, 2, 1},
	}}, routes)
}

// TestSteepest_KeepsTies: equal drops are all reported.
func TestSteepest_KeepsTies(t *testing.T) {
	g, err := gridgraph.NewGrid(3, 1, []int{1, 5, 1})
	require.NoError(t, err)
	routes, err := steepest.Steepest(g, []steepest.Candidate{
		{Root: 1, MaxDistance: 1, Path: []int{1, 0}},
		{Root: 1, MaxDistance: 1, Path: []int{1, 2}},
	})
	require.NoError(t, err)
	assert.Len(t, routes, 2)
	for _, r := range routes {
		assert.Equal(t, 4, r.Drop)
	}
}

// TestSteepest_SingleCell: a one-cell path has drop 0.
func TestSteepest_SingleCell(t *testing.T) {
	g, err := gridgraph.NewGrid(1, 1, []int{9})
	require.NoError(t, err)
	routes, err := steepest.Steepest(g, []steepest.Candidate{{Root: 0, Path: []int{0}}})
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Zero(t, routes[0].Drop)
	assert.Equal(t, 1, routes[0].PathLength)
}

func TestSteepest_Errors(t *testing.T) {
	g := sampleGrid(t)
	_, err := steepest.Steepest(g, []steepest.Candidate{{Root: 1}})
	assert.ErrorIs(t, err, steepest.ErrEmptyPath)
	_, err = steepest.Steepest(g, []steepest.Candidate{{Root: 1, Path: []int{1, 99}}})
	assert.ErrorIs(t, err, steepest.ErrPathOutOfRange)
	assert.ErrorIs(t, err, gridgraph.ErrIndexOutOfRange)
}

func TestSteepest_NilGrid(t *testing.T) {
	_, err := steepest.Steepest(nil, []steepest.Candidate{{Root: 0, Path: []int{0}}})
	assert.ErrorIs(t, err, steepest.ErrNilGrid)
	_, err = steepest.Select(nil, nil)
	assert.ErrorIs(t, err, steepest.ErrNilGrid)
}

func TestSteepest_Empty(t *testing.T) {
	routes, err := steepest.Steepest(sampleGrid(t), nil)
	require.NoError(t, err)
	assert.Empty(t, routes)
}

// TestLongest_GlobalMax keeps candidates from several roots at the max.
func TestLongest_GlobalMax(t *testing.T) {
	cands := []steepest.Candidate{
		{Root: 8, MaxDistance: 3, Path: []int{8, 9, 10, 14}},
		{Root: 1, MaxDistance: 4, Path: []int{1, 5, 9, 10, 14}},
		{Root: 15, MaxDistance: 3, Path: []int{15, 11, 10, 14}},
		{Root: 6, MaxDistance: 4, Path: []int{6, 5, 9, 10, 14}},
	}
	got := steepest.Longest(cands)
	assert.Equal(t, []steepest.Candidate{cands[1], cands[3]}, got)
}

// TestSelect_Sample chains both filters over the sample candidates.
func TestSelect_Sample(t *testing.T) {
	routes, err := steepest.Select(sampleGrid(t), []steepest.Candidate{
		{Root: 13, MaxDistance: 3, Path: []int{13, 9, 10, 14}},
		{Root: 1, MaxDistance: 4, Path: []int{1, 5, 9, 10, 14}},
		{Root: 6, MaxDistance: 4, Path: []int{6, 5, 9, 10, 14}},
	})
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, []int{6, 5, 9, 10, 14}, routes[0].PathIndices)
}

// TestAccumulator_OrderIndependent: any arrival order yields the same set.
func TestAccumulator_OrderIndependent(t *testing.T) {
	base := []steepest.Candidate{
		{Root: 1, MaxDistance: 4, Path: []int{1, 5, 9, 10, 14}},
		{Root: 6, MaxDistance: 4, Path: []int{6, 5, 9, 10, 14}},
		{Root: 8, MaxDistance: 3, Path: []int{8, 9, 10, 14}},
		{Root: 13, MaxDistance: 3, Path: []int{13, 9, 10, 14}},
		{Root: 15, MaxDistance: 3, Path: []int{15, 11, 10, 14}},
	}
	want := steepest.Longest(base)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		perm := make([]steepest.Candidate, len(base))
		for j, k := range rng.Perm(len(base)) {
			perm[j] = base[k]
		}
		var acc steepest.Accumulator
		for _, c := range perm {
			acc.Add(c)
		}
		assert.ElementsMatch(t, want, acc.Candidates())
		d, ok := acc.MaxDistance()
		assert.True(t, ok)
		assert.Equal(t, 4, d)
	}
}

func TestAccumulator_AddResult(t *testing.T) {
	var acc steepest.Accumulator
	_, ok := acc.MaxDistance()
	assert.False(t, ok)

	acc.AddResult(nil)
	acc.AddResult(&longest.Result{Root: 1, MaxDistance: 4, Paths: [][]int{{1, 5, 9, 10, 14}}})
	acc.AddResult(&longest.Result{Root: 6, MaxDistance: 4, Paths: [][]int{{6, 5, 9, 10, 14}}})
	acc.AddResult(&longest.Result{Root: 8, MaxDistance: 3, Paths: [][]int{{8, 9, 10, 14}}})
	assert.Equal(t, 3, acc.Results())

	routes, err := acc.Routes(sampleGrid(t))
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, 8, routes[0].Drop)
}

// TestAccumulator_RoutesOrdered: tied routes come out by root, not by arrival.
func TestAccumulator_RoutesOrdered(t *testing.T) {
	g, err := gridgraph.NewGrid(3, 1, []int{2, 1, 2})
	require.NoError(t, err)

	var acc steepest.Accumulator
	acc.Add(steepest.Candidate{Root: 2, MaxDistance: 1, Path: []int{2, 1}})
	acc.Add(steepest.Candidate{Root: 0, MaxDistance: 1, Path: []int{0, 1}})

	routes, err := acc.Routes(g)
	require.NoError(t, err)
	require.Len(t, routes, 2)
	assert.Equal(t, []int{0, 1}, routes[0].PathIndices)
	assert.Equal(t, []int{2, 1}, routes[1].PathIndices)
}
