// Package topo orders the nodes of a rooted DAG so that every edge u→v has u
// before v, using Kahn's algorithm.
//
// What:
//
//   - Sort(g, root) visits only nodes reachable from root. In-degrees are
//     counted over that reachable subgraph, a LIFO worklist is seeded with
//     root, and a successor is released once its last incoming edge has been
//     removed.
//   - Nodes are dense integer IDs in [0, g.Len()).
//
// Why:
//
//   - Longest-path dynamic programs must finish a node's predecessors first.
//   - Counting in-degrees instead of rescanning adjacency lists keeps the
//     sort at O(V + E).
//
// Complexity:
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Errors:
//
//   - ErrGraphNil        graph is nil
//   - ErrRootOutOfRange  root is not a node of g
//   - ErrCycleDetected   a reachable node was never released
//   - context.Canceled   sort canceled via WithCancelContext
package topo
