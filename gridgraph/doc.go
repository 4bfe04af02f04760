// Package gridgraph treats a rectangular elevation field as an implicit,
// 4-connected graph over row-major cell indices.
//
// What:
//
//   - Grid wraps a flat []int of elevations (index = y*Width + x).
//   - Neighbors returns the orthogonal neighbours of a cell together with
//     their elevations, clipped at the borders (2 at a corner, 3 on an edge,
//     4 inside).
//   - Coordinate / Index convert between row-major indices and (x,y).
//   - Digest produces a stable content hash usable as a cache key.
//
// Why:
//
//   - Terrain analysis: descent paths, drainage, ski routes.
//   - Any grid algorithm that wants integer vertex IDs instead of string keys.
//
// Complexity:
//
//   - NewGrid / From2D: O(W×H) time and memory (input is copied).
//   - Neighbors:        O(1).
//   - Digest:           O(W×H).
//
// Errors:
//
//   - ErrEmptyGrid:       width or height is not positive, or no rows given.
//   - ErrSizeMismatch:    elevation count differs from width×height.
//   - ErrNonRectangular:  rows have differing lengths.
//   - ErrIndexOutOfRange: a cell index outside [0, W×H).
package gridgraph
