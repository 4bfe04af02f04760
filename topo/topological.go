package topo

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrGraphNil is returned when a nil Graph is passed to Sort.
	ErrGraphNil = errors.New("topo: graph is nil")

	// ErrRootOutOfRange indicates the root ID is not a node of the graph.
	ErrRootOutOfRange = errors.New("topo: root out of range")

	// ErrCycleDetected indicates a reachable node kept a positive in-degree.
	ErrCycleDetected = errors.New("topo: cycle detected")
)

// Graph is a directed graph over dense node IDs [0, Len()).
type Graph interface {
	Len() int
	Successors(id int) []int
}

// Option configures optional behavior for Sort.
type Option func(*options)

// options holds settings for Sort, currently only cancellation.
type options struct {
	ctx context.Context // allows cancellation; defaults to Background
}

// defaultOptions returns the default options (Background context).
func defaultOptions() options {
	return options{ctx: context.Background()}
}

// WithCancelContext returns an Option that sets the cancellation context.
// Passing a nil context has no effect.
func WithCancelContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// cancelCheckEvery bounds how many pops happen between context checks.
const cancelCheckEvery = 1024

// Sort returns the nodes reachable from root in topological order.
// The root is always first; unreachable nodes are absent.
// If g is nil, returns ErrGraphNil. If root is not in [0, g.Len()), returns
// ErrRootOutOfRange. If the reachable subgraph has a cycle, returns
// ErrCycleDetected.
func Sort(g Graph, root int, opts ...Option) ([]int, error) {
	// 1. Validate input
	if g == nil {
		return nil, ErrGraphNil
	}
	n := g.Len()
	if root < 0 || root >= n {
		return nil, fmt.Errorf("%w: %d of %d", ErrRootOutOfRange, root, n)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	// 2. Count in-degrees over the subgraph reachable from root
	indeg := make([]int32, n)
	seen := make([]bool, n)
	seen[root] = true
	reach := []int{root}
	for i := 0; i < len(reach); i++ {
		for _, v := range g.Successors(reach[i]) {
			indeg[v]++
			if !seen[v] {
				seen[v] = true
				reach = append(reach, v)
			}
		}
	}
	if indeg[root] != 0 {
		return nil, ErrCycleDetected
	}

	// 3. Kahn: pop, emit, release successors whose in-degree drops to zero
	order := make([]int, 0, len(reach))
	stack := []int{root}
	for len(stack) > 0 {
		if len(order)%cancelCheckEvery == 0 {
			select {
			case <-o.ctx.Done():
				return nil, o.ctx.Err()
			default:
			}
		}
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, u)
		for _, v := range g.Successors(u) {
			indeg[v]--
			if indeg[v] == 0 {
				stack = append(stack, v)
			}
		}
	}

	// 4. Anything left with a positive in-degree sits on a cycle
	if len(order) != len(reach) {
		return nil, fmt.Errorf("%w: ordered %d of %d reachable nodes", ErrCycleDetected, len(order), len(reach))
	}

	return order, nil
}
