// Package mapfile reads elevation maps in the plain text format used by the
// ski-route tooling: whitespace-separated integers, the first two being the
// width and height, followed by width×height elevations in row-major order.
//
//	4 4
//	4 8 7 3
//	2 5 9 3
//	6 3 2 5
//	4 4 1 6
//
// Line breaks carry no meaning; any whitespace separates tokens.
package mapfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/katalvlaran/skiroute/gridgraph"
)

var (
	// ErrMissingHeader indicates the input ended before width and height.
	ErrMissingHeader = errors.New("mapfile: missing width/height header")

	// ErrBadToken indicates a token that is not a base-10 integer.
	ErrBadToken = errors.New("mapfile: invalid integer token")
)

// Parse reads a map from r. Exactly width×height elevations must follow the
// header; fewer or more fail with gridgraph.ErrSizeMismatch, and
// non-positive dimensions with gridgraph.ErrEmptyGrid.
func Parse(r io.Reader) (*gridgraph.Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	next := func(n int) (int, bool, error) {
		if !sc.Scan() {
			return 0, false, sc.Err()
		}
		v, err := strconv.Atoi(sc.Text())
		if err != nil {
			return 0, false, fmt.Errorf("%w: token %d %q", ErrBadToken, n, sc.Text())
		}
		return v, true, nil
	}

	var dims [2]int
	for i := range dims {
		v, ok, err := next(i + 1)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrMissingHeader
		}
		dims[i] = v
	}
	w, h := dims[0], dims[1]
	if w <= 0 || h <= 0 {
		return nil, gridgraph.ErrEmptyGrid
	}

	// Cap the preallocation; a lying header must not reserve gigabytes.
	capHint := 1 << 20
	if w <= capHint/h {
		capHint = w * h
	}
	vals := make([]int, 0, capHint)
	for tok := 3; ; tok++ {
		v, ok, err := next(tok)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		vals = append(vals, v)
	}

	return gridgraph.NewGrid(w, h, vals)
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string) (*gridgraph.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mapfile: open %s: %w", path, err)
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("mapfile: %s: %w", path, err)
	}

	return g, nil
}

// Write encodes g in the same format, one row per line.
func Write(w io.Writer, g *gridgraph.Grid) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", g.Width(), g.Height())
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if x > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.Itoa(g.Elevation(g.Index(x, y))))
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}
