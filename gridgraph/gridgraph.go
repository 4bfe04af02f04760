package gridgraph

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
)

// NewGrid constructs a Grid from its dimensions and a row-major elevation slice.
// The slice is copied, so later changes by the caller are not observed.
// Returns ErrEmptyGrid if width or height is not positive and ErrSizeMismatch
// if len(elevations) != width*height.
// Complexity: O(W×H) time and memory.
func NewGrid(width, height int, elevations []int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyGrid
	}
	if width > math.MaxInt/height || len(elevations) != width*height {
		return nil, fmt.Errorf("%w: got %d values for %dx%d", ErrSizeMismatch, len(elevations), width, height)
	}
	cells := make([]int, len(elevations))
	copy(cells, elevations)

	return &Grid{width: width, height: height, elevations: cells}, nil
}

// From2D builds a Grid from rows of elevations (values[y][x]).
// Returns ErrEmptyGrid if there are no rows or no columns,
// ErrNonRectangular if any row length differs.
func From2D(values [][]int) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(values), len(values[0])
	flat := make([]int, 0, w*h)
	for _, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
		flat = append(flat, row...)
	}

	return &Grid{width: w, height: h, elevations: flat}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Len returns the number of cells, Width×Height.
func (g *Grid) Len() int {
	return len(g.elevations)
}

// Elevation returns the elevation of cell idx. It panics if idx is out of range,
// like a slice access; use Contains to check first.
func (g *Grid) Elevation(idx int) int {
	return g.elevations[idx]
}

// Contains reports whether idx is a valid cell index.
func (g *Grid) Contains(idx int) bool {
	return idx >= 0 && idx < len(g.elevations)
}

// InBounds reports whether (x,y) lies within the grid boundaries.
// Complexity: O(1).
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Index maps (x,y) to a row-major index: y*Width + x.
// Complexity: O(1).
func (g *Grid) Index(x, y int) int {
	return y*g.width + x
}

// Coordinate converts a row-major index back to (x,y).
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) (x, y int) {
	return idx % g.width, idx / g.width
}

// Neighbors returns the orthogonal neighbours of idx in north, west, east,
// south order. Cells outside the grid are skipped, so a corner has two
// neighbours, an edge cell three and an interior cell four.
// Returns nil for an index outside the grid.
func (g *Grid) Neighbors(idx int) []Neighbor {
	return g.AppendNeighbors(make([]Neighbor, 0, len(neighborOffsets)), idx)
}

// AppendNeighbors appends the neighbours of idx to dst and returns the
// extended slice. Hot loops reuse dst to avoid an allocation per cell.
func (g *Grid) AppendNeighbors(dst []Neighbor, idx int) []Neighbor {
	if !g.Contains(idx) {
		return dst
	}
	x, y := g.Coordinate(idx)
	for _, d := range neighborOffsets {
		nx, ny := x+d[0], y+d[1]
		if !g.InBounds(nx, ny) {
			continue
		}
		ni := g.Index(nx, ny)
		dst = append(dst, Neighbor{Index: ni, Elevation: g.elevations[ni]})
	}

	return dst
}

// Values maps a sequence of cell indices to their elevations.
// Returns ErrIndexOutOfRange if any index is outside the grid.
func (g *Grid) Values(path []int) ([]int, error) {
	out := make([]int, len(path))
	for i, idx := range path {
		if !g.Contains(idx) {
			return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, idx)
		}
		out[i] = g.elevations[idx]
	}

	return out, nil
}

// Elevations returns a copy of the row-major elevation slice.
func (g *Grid) Elevations() []int {
	out := make([]int, len(g.elevations))
	copy(out, g.elevations)

	return out
}

// Digest returns a hex SHA-256 over the dimensions and elevations.
// Two grids share a digest iff they have the same shape and contents.
// Complexity: O(W×H).
func (g *Grid) Digest() string {
	h := sha256.New()
	var buf [8]byte
	put := func(v int) {
		binary.BigEndian.PutUint64(buf[:], uint64(int64(v)))
		_, _ = h.Write(buf[:])
	}
	put(g.width)
	put(g.height)
	for _, v := range g.elevations {
		put(v)
	}

	return hex.EncodeToString(h.Sum(nil))
}
