package descent

import (
	"errors"
)

var (
	// ErrNilGrid is returned when a nil *gridgraph.Grid is supplied.
	ErrNilGrid = errors.New("descent: grid is nil")

	// ErrRootOutOfRange indicates a root index outside the grid.
	ErrRootOutOfRange = errors.New("descent: root index out of range")
)

// Edge is a directed descent edge between two cell indices.
type Edge struct {
	From, To int
}

// DAG is the descent graph reachable from a single root.
// Node IDs are dense local indices; ID 0 is the root.
type DAG struct {
	// Root is the grid index of the starting cell.
	Root int

	cells []int   // local ID -> grid index
	succ  [][]int // local ID -> successor local IDs
	edges int
}

// Len returns the number of nodes in the DAG.
func (d *DAG) Len() int {
	return len(d.cells)
}

// Cell returns the grid index of local node id.
func (d *DAG) Cell(id int) int {
	return d.cells[id]
}

// Cells returns the grid indices of all nodes in discovery order.
// The returned slice must not be modified.
func (d *DAG) Cells() []int {
	return d.cells
}

// Successors returns the local IDs one descent edge away from id.
// The returned slice must not be modified.
func (d *DAG) Successors(id int) []int {
	return d.succ[id]
}

// EdgeCount returns the number of descent edges in the DAG.
func (d *DAG) EdgeCount() int {
	return d.edges
}

// Edges lists every edge as a pair of grid indices.
func (d *DAG) Edges() []Edge {
	out := make([]Edge, 0, d.edges)
	for u, vs := range d.succ {
		for _, v := range vs {
			out = append(out, Edge{From: d.cells[u], To: d.cells[v]})
		}
	}

	return out
}

// Adjacency returns a grid-indexed view of the DAG: every node maps to the
// grid indices of its successors (an empty, non-nil slice for sinks).
// Intended for inspection and tests; the solver works on local IDs.
func (d *DAG) Adjacency() map[int][]int {
	out := make(map[int][]int, len(d.cells))
	for u, vs := range d.succ {
		targets := make([]int, len(vs))
		for i, v := range vs {
			targets[i] = d.cells[v]
		}
		out[d.cells[u]] = targets
	}

	return out
}
