// Package steepest selects the final ski routes from per-root longest paths.
//
// Selection is two filters applied globally across all roots:
//
//  1. Longest: keep the candidates whose distance equals the global maximum.
//  2. Steepest: among those, keep the ones whose drop (first elevation minus
//     last elevation) equals the maximum drop.
//
// Both steps are max-then-filter reductions, so candidates may arrive in any
// order and from any number of workers; Accumulator applies the first filter
// incrementally.
package steepest

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/skiroute/gridgraph"
	"github.com/katalvlaran/skiroute/longest"
)

var (
	// ErrNilGrid indicates a nil grid was passed to Steepest or Select.
	ErrNilGrid = errors.New("steepest: grid is nil")

	// ErrEmptyPath indicates a candidate without any cell.
	ErrEmptyPath = errors.New("steepest: empty path")

	// ErrPathOutOfRange indicates a candidate path that leaves the grid.
	ErrPathOutOfRange = errors.New("steepest: path index out of range")
)

// Candidate is one longest path of one root.
type Candidate struct {
	Root        int   `json:"root" yaml:"root"`
	MaxDistance int   `json:"maxDistance" yaml:"maxDistance"`
	Path        []int `json:"path" yaml:"path"`
}

// Route is a selected steepest-longest path.
// PathLength counts cells; MaxDistance counts edges (or weighted distance).
type Route struct {
	Drop        int   `json:"drop" yaml:"drop"`
	MaxDistance int   `json:"maxDistance" yaml:"maxDistance"`
	PathLength  int   `json:"pathLength" yaml:"pathLength"`
	PathIndices []int `json:"pathIndices" yaml:"pathIndices"`
	PathValues  []int `json:"pathValues" yaml:"pathValues"`
}

// FromResult expands a root's result into one candidate per tied path.
func FromResult(r *longest.Result) []Candidate {
	if r == nil {
		return nil
	}
	out := make([]Candidate, 0, len(r.Paths))
	for _, p := range r.Paths {
		out = append(out, Candidate{Root: r.Root, MaxDistance: r.MaxDistance, Path: p})
	}

	return out
}

// Longest keeps the candidates with the greatest MaxDistance.
func Longest(cands []Candidate) []Candidate {
	var acc Accumulator
	for _, c := range cands {
		acc.Add(c)
	}

	return acc.Candidates()
}

// Steepest annotates each candidate with its drop and returns the ones with
// the greatest drop. Every candidate is validated against g, so a malformed
// path fails the call even if it would have been filtered out.
func Steepest(g *gridgraph.Grid, cands []Candidate) ([]Route, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	routes := make([]Route, 0, len(cands))
	maxDrop := 0
	for i, c := range cands {
		if len(c.Path) == 0 {
			return nil, fmt.Errorf("%w: candidate %d of root %d", ErrEmptyPath, i, c.Root)
		}
		vals, err := g.Values(c.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: candidate %d: %w", ErrPathOutOfRange, i, err)
		}
		drop := vals[0] - vals[len(vals)-1]
		if i == 0 || drop > maxDrop {
			maxDrop = drop
		}
		routes = append(routes, Route{
			Drop:        drop,
			MaxDistance: c.MaxDistance,
			PathLength:  len(c.Path),
			PathIndices: c.Path,
			PathValues:  vals,
		})
	}

	out := routes[:0]
	for _, r := range routes {
		if r.Drop == maxDrop {
			out = append(out, r)
		}
	}

	return out, nil
}

// Select applies Longest and then Steepest.
func Select(g *gridgraph.Grid, cands []Candidate) ([]Route, error) {
	return Steepest(g, Longest(cands))
}

// Accumulator is a streaming Longest filter. The zero value is ready to use.
// It is not safe for concurrent use; feed it from a single collector.
type Accumulator struct {
	maxDistance int
	cands       []Candidate
	seen        bool
	results     int
}

// Add offers one candidate.
func (a *Accumulator) Add(c Candidate) {
	switch {
	case !a.seen || c.MaxDistance > a.maxDistance:
		a.seen = true
		a.maxDistance = c.MaxDistance
		a.cands = append(a.cands[:0], c)
	case c.MaxDistance == a.maxDistance:
		a.cands = append(a.cands, c)
	}
}

// AddResult offers every path of a root's result.
func (a *Accumulator) AddResult(r *longest.Result) {
	if r == nil {
		return
	}
	a.results++
	for _, c := range FromResult(r) {
		a.Add(c)
	}
}

// Results returns how many root results were offered through AddResult.
func (a *Accumulator) Results() int {
	return a.results
}

// MaxDistance returns the best distance seen and whether anything was added.
func (a *Accumulator) MaxDistance() (int, bool) {
	return a.maxDistance, a.seen
}

// Candidates returns the candidates tied for the best distance.
func (a *Accumulator) Candidates() []Candidate {
	out := make([]Candidate, len(a.cands))
	copy(out, a.cands)

	return out
}

// Routes applies Steepest to the retained candidates, ordered by root and
// then path so the result does not depend on arrival order.
func (a *Accumulator) Routes(g *gridgraph.Grid) ([]Route, error) {
	cands := a.Candidates()
	slices.SortFunc(cands, func(x, y Candidate) int {
		if c := cmp.Compare(x.Root, y.Root); c != 0 {
			return c
		}
		return slices.Compare(x.Path, y.Path)
	})

	return Steepest(g, cands)
}
