package rank_test

import (
	"fmt"

	"github.com/lvlath/rscp/graph"
	"github.com/lvlath/rscp/rank"
)

// ExampleDecorate assigns rank and well-foundedness to every vertex of a
// two-edge chain: 2 is a well-founded sink (rank 0), 1 reaches it (rank 1),
// and 0 reaches 1 (rank 2).
func ExampleDecorate() {
	g := graph.New(3)
	_ = g.AddEdge(0, 1)
	_ = g.AddEdge(1, 2)

	rank.Decorate(g)

	for _, label := range []int{0, 1, 2} {
		v := g.Vertex(label)
		fmt.Println(label, v.Rank(), v.WF())
	}

	// Output:
	// 0 2 true
	// 1 1 true
	// 2 0 true
}
