package descent

import (
	"fmt"

	"github.com/katalvlaran/skiroute/gridgraph"
)

// Builder expands per-root descent DAGs over one grid.
// It owns a W×H slot table mapping grid indices to local IDs of the DAG
// under construction, so repeated builds do not allocate grid-sized state.
type Builder struct {
	grid  *gridgraph.Grid
	slot  []int // grid index -> local ID, -1 when absent
	stack []int
	nbuf  []gridgraph.Neighbor
}

// NewBuilder returns a Builder for g.
// Complexity: O(W×H) for the slot table.
func NewBuilder(g *gridgraph.Grid) (*Builder, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if g.Len() == 0 {
		return nil, fmt.Errorf("descent: %w", gridgraph.ErrEmptyGrid)
	}
	slot := make([]int, g.Len())
	for i := range slot {
		slot[i] = -1
	}

	return &Builder{
		grid: g,
		slot: slot,
		nbuf: make([]gridgraph.Neighbor, 0, 4),
	}, nil
}

// Build returns the descent DAG reachable from root.
//
// Steps:
//  1. Seed the worklist with root as local ID 0.
//  2. Pop a node, add one edge per strictly lower neighbour.
//  3. Neighbours seen for the first time get a new ID and are pushed;
//     already-present nodes only gain the incoming edge.
//  4. Reset the slot table for the touched cells.
//
// Any cell may be passed as root; a non-root start simply yields the DAG
// of descents from that cell.
func (b *Builder) Build(root int) (*DAG, error) {
	if !b.grid.Contains(root) {
		return nil, fmt.Errorf("%w: %d", ErrRootOutOfRange, root)
	}

	d := &DAG{Root: root}
	add := func(cell int) int {
		id := len(d.cells)
		b.slot[cell] = id
		d.cells = append(d.cells, cell)
		d.succ = append(d.succ, nil)
		return id
	}
	defer func() {
		for _, c := range d.cells {
			b.slot[c] = -1
		}
		b.stack = b.stack[:0]
	}()

	b.stack = append(b.stack[:0], add(root))
	for len(b.stack) > 0 {
		u := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]

		cell := d.cells[u]
		h := b.grid.Elevation(cell)
		b.nbuf = b.grid.AppendNeighbors(b.nbuf[:0], cell)
		for _, n := range b.nbuf {
			if n.Elevation >= h {
				continue
			}
			v := b.slot[n.Index]
			if v < 0 {
				v = add(n.Index)
				b.stack = append(b.stack, v)
			}
			d.succ[u] = append(d.succ[u], v)
			d.edges++
		}
	}

	return d, nil
}
