package descent

import (
	"github.com/katalvlaran/skiroute/gridgraph"
)

// IsRoot reports whether idx has no strictly higher neighbour, i.e. every
// neighbour's elevation is less than or equal to its own. A root can only be
// the start of a descent, never a destination.
// Returns false for an index outside the grid.
func IsRoot(g *gridgraph.Grid, idx int) bool {
	if g == nil || !g.Contains(idx) {
		return false
	}
	var buf [4]gridgraph.Neighbor
	h := g.Elevation(idx)
	for _, n := range g.AppendNeighbors(buf[:0], idx) {
		if n.Elevation > h {
			return false
		}
	}

	return true
}

// Roots returns every root of g in ascending index order.
// Complexity: O(W×H).
func Roots(g *gridgraph.Grid) []int {
	if g == nil {
		return nil
	}
	var roots []int
	for idx := 0; idx < g.Len(); idx++ {
		if IsRoot(g, idx) {
			roots = append(roots, idx)
		}
	}

	return roots
}
