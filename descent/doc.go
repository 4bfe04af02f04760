// Package descent derives descent graphs from an elevation grid.
//
// What:
//
//   - A descent edge joins two orthogonally adjacent cells where the target is
//     strictly lower than the source. Equal elevations are not skiable.
//   - A root is a cell with no strictly higher neighbour: nothing can ski
//     into it, so every maximal descent starts at some root.
//   - Builder.Build expands the DAG reachable from one root with an explicit
//     worklist, so grid size never turns into call-stack depth.
//
// Representation:
//
//	The DAG is an arena of dense local IDs. ID 0 is always the root; Cell(id)
//	maps an ID back to its row-major grid index and Successors(id) lists the
//	IDs reachable by one descent edge, in north, west, east, south order.
//	A shared descendant reached from several parents keeps a single ID and
//	one incoming edge per parent.
//
// Complexity:
//
//   - Roots: O(W×H).
//   - Build: O(V + E) for the V cells reachable from the root; the builder's
//     W×H slot table is allocated once and reset in O(V) after each build.
//
// Concurrency:
//
//	A Builder is not safe for concurrent use. Give each worker its own
//	Builder; the Grid itself is read-only and may be shared freely.
//
// Errors:
//
//   - ErrNilGrid:        Builder created from a nil grid.
//   - ErrRootOutOfRange: Build called with an index outside the grid.
package descent
