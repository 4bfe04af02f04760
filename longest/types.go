// Package longest computes longest paths from a single root of a DAG by
// dynamic programming over a topological order.
//
// Every node starts at Unreachable except the root (distance 0). Nodes are
// processed strictly in the supplied topological order; each outgoing edge
// u→v is relaxed with dist[u] + weight(u,v) and v adopts u as predecessor on
// strict improvement only, so the first predecessor to reach a distance keeps
// it. The default weight is 1 per edge, i.e. distance counts skiable segments.
//
// Complexity:
//
//	– Time:  O(V + E) for the relaxation, plus O(k·L) to rebuild k paths of
//	         length L.
//	– Space: O(V) for the distance and predecessor tables.
//
// Options:
//
//	– WithWeight: alternate edge weighting over grid cell indices.
//
// Errors (sentinel):
//
//	– ErrGraphNil         if the graph is nil.
//	– ErrRootOutOfRange   if the root is not a node of the graph.
//	– ErrOrderMismatch    if the order does not start at root or names unknown nodes.
//	– ErrUnreachable      if a path is requested to a node the root never reached.
//	– ErrPredecessorCycle if a predecessor walk exceeds the node count.
//
// Example usage:
//
//	order, _ := topo.Sort(dag, 0)
//	res, err := longest.Solve(dag, 0, order)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.MaxDistance, res.Paths)
package longest

import (
	"errors"
	"math"
)

// Sentinel errors returned by Solve and Result.PathTo.
var (
	// ErrGraphNil indicates that a nil Graph was passed to Solve.
	ErrGraphNil = errors.New("longest: graph is nil")

	// ErrRootOutOfRange indicates the root ID is not a node of the graph.
	ErrRootOutOfRange = errors.New("longest: root out of range")

	// ErrOrderMismatch indicates the topological order is empty, does not
	// start at the root, or references an unknown node.
	ErrOrderMismatch = errors.New("longest: order does not match graph")

	// ErrUnreachable indicates a path was requested to a node with no
	// recorded distance from the root.
	ErrUnreachable = errors.New("longest: node unreachable from root")

	// ErrPredecessorCycle indicates the predecessor chain did not reach the
	// root within the node count. Impossible for a well-formed DAG.
	ErrPredecessorCycle = errors.New("longest: predecessor chain exceeds node count")
)

// Unreachable marks a node the root has not reached (negative infinity).
const Unreachable = math.MinInt

// Graph is a DAG over dense node IDs [0, Len()) whose nodes map to grid cells.
type Graph interface {
	Len() int
	Successors(id int) []int
	Cell(id int) int
}

// WeightFunc returns the weight of the edge between two grid cells.
type WeightFunc func(fromCell, toCell int) int

// UnitWeight counts every edge as one segment.
func UnitWeight(int, int) int { return 1 }

// Options configures the behavior of Solve.
//
// Weight – edge weight over grid cells. Default is UnitWeight.
type Options struct {
	Weight WeightFunc
}

// Option represents a functional option for configuring Solve.
type Option func(*Options)

// WithWeight sets an alternate edge weighting. A nil fn keeps the default.
func WithWeight(fn WeightFunc) Option {
	return func(o *Options) {
		if fn != nil {
			o.Weight = fn
		}
	}
}

// DefaultOptions returns Options with UnitWeight.
func DefaultOptions() Options {
	return Options{Weight: UnitWeight}
}

// Result is the distance/predecessor table of one root.
type Result struct {
	// Root is the grid index of the root cell.
	Root int

	// MaxDistance is the greatest distance reached from the root.
	MaxDistance int

	// Distances holds the best distance per node ID, Unreachable if none.
	Distances []int

	// Pred holds the predecessor node ID per node, -1 for the root and
	// unreached nodes.
	Pred []int

	// Targets lists the node IDs whose distance equals MaxDistance,
	// ordered by grid index.
	Targets []int

	// Paths holds, for each target, its path as grid indices from the root.
	Paths [][]int

	graph Graph
	root  int
}
