package gridgraph

import (
	"errors"
)

// Sentinel errors for gridgraph operations.
var (
	// ErrEmptyGrid indicates the grid has no rows, no columns or non-positive dimensions.
	ErrEmptyGrid = errors.New("gridgraph: grid must have at least one row and one column")
	// ErrSizeMismatch indicates the elevation count differs from width×height.
	ErrSizeMismatch = errors.New("gridgraph: elevation count must equal width×height")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
	// ErrIndexOutOfRange indicates a cell index outside the grid.
	ErrIndexOutOfRange = errors.New("gridgraph: cell index out of range")
)

// neighborOffsets lists the orthogonal moves in the order neighbours are
// reported: north, west, east, south.
var neighborOffsets = [4][2]int{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}

// Neighbor is an adjacent cell and its elevation.
type Neighbor struct {
	Index     int // row-major cell index
	Elevation int // elevation stored at Index
}

// Grid is an immutable rectangular elevation field.
// Dimensions are fixed at construction; elevations are stored row-major.
// The zero value is an empty grid; build grids with NewGrid or From2D.
type Grid struct {
	width, height int
	elevations    []int
}
