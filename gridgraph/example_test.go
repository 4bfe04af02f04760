// File: gridgraph/example_test.go
package gridgraph_test

import (
	"fmt"

	"github.com/katalvlaran/skiroute/gridgraph"
)

// ExampleGrid_Neighbors lists the orthogonal neighbours of a few cells of a
// 3×3 height map. Corners see two cells, edges three and the centre four.
//
//	5 6 7
//	4 9 8
//	3 2 1
func ExampleGrid_Neighbors() {
	g, _ := gridgraph.From2D([][]int{
		{5, 6, 7},
		{4, 9, 8},
		{3, 2, 1},
	})

	for _, idx := range []int{0, 1, 4} {
		x, y := g.Coordinate(idx)
		fmt.Printf("(%d,%d)=%d:", x, y, g.Elevation(idx))
		for _, n := range g.Neighbors(idx) {
			fmt.Printf(" %d", n.Elevation)
		}
		fmt.Println()
	}

	// Output:
	// (0,0)=5: 6 4
	// (1,0)=6: 5 7 9
	// (1,1)=9: 6 4 8 2
}
