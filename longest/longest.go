package longest

import (
	"fmt"
	"sort"
)

// Solve computes longest distances from root over g, processing nodes in
// order (a topological order of the nodes reachable from root), then
// rebuilds the path to every node tied for the maximum distance.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrGraphNil).
//  2. root must be in [0, g.Len()) (ErrRootOutOfRange).
//  3. order must start at root and hold only known IDs (ErrOrderMismatch).
func Solve(g Graph, root int, order []int, opts ...Option) (*Result, error) {
	// 1) Validate input
	if g == nil {
		return nil, ErrGraphNil
	}
	n := g.Len()
	if root < 0 || root >= n {
		return nil, fmt.Errorf("%w: %d of %d", ErrRootOutOfRange, root, n)
	}
	if len(order) == 0 || order[0] != root {
		return nil, fmt.Errorf("%w: order must start at root %d", ErrOrderMismatch, root)
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Initialise tables: 0 at root, Unreachable elsewhere
	dist := make([]int, n)
	pred := make([]int, n)
	for i := range dist {
		dist[i] = Unreachable
		pred[i] = -1
	}
	dist[root] = 0

	// 3) Relax edges in topological order, strict improvement only
	for _, u := range order {
		if u < 0 || u >= n {
			return nil, fmt.Errorf("%w: node %d", ErrOrderMismatch, u)
		}
		if dist[u] == Unreachable {
			continue
		}
		from := g.Cell(u)
		for _, v := range g.Successors(u) {
			next := dist[u] + cfg.Weight(from, g.Cell(v))
			if dist[v] < next {
				dist[v] = next
				pred[v] = u
			}
		}
	}

	res := &Result{
		Root:        g.Cell(root),
		MaxDistance: Unreachable,
		Distances:   dist,
		Pred:        pred,
		graph:       g,
		root:        root,
	}

	// 4) Find the maximum and every node that reaches it
	for id, d := range dist {
		switch {
		case d == Unreachable:
		case d > res.MaxDistance:
			res.MaxDistance = d
			res.Targets = append(res.Targets[:0], id)
		case d == res.MaxDistance:
			res.Targets = append(res.Targets, id)
		}
	}
	sort.Slice(res.Targets, func(i, j int) bool {
		return g.Cell(res.Targets[i]) < g.Cell(res.Targets[j])
	})

	// 5) Rebuild the full path of each target
	res.Paths = make([][]int, 0, len(res.Targets))
	for _, id := range res.Targets {
		p, err := res.PathTo(id)
		if err != nil {
			return nil, err
		}
		res.Paths = append(res.Paths, p)
	}

	return res, nil
}

// PathTo returns the path from the root to node id as grid indices.
// The walk is capped at the node count; overrunning it returns
// ErrPredecessorCycle instead of looping forever.
func (r *Result) PathTo(id int) ([]int, error) {
	if id < 0 || id >= len(r.Distances) || r.Distances[id] == Unreachable {
		return nil, fmt.Errorf("%w: node %d", ErrUnreachable, id)
	}

	ids := []int{id}
	for cur, steps := id, 0; cur != r.root; steps++ {
		if steps >= len(r.Pred) {
			return nil, fmt.Errorf("%w: from node %d", ErrPredecessorCycle, id)
		}
		cur = r.Pred[cur]
		if cur < 0 {
			return nil, fmt.Errorf("%w: broken chain at node %d", ErrPredecessorCycle, ids[len(ids)-1])
		}
		ids = append(ids, cur)
	}

	path := make([]int, len(ids))
	for i, v := range ids {
		path[len(ids)-1-i] = r.graph.Cell(v)
	}

	return path, nil
}
