package rankedsplit_test

import (
	"fmt"

	"github.com/lvlath/rscp/graph"
	"github.com/lvlath/rscp/rank"
	"github.com/lvlath/rscp/rankedsplit"
)

// ExampleRun separates the rank-1 predecessors of witness block {2} (0 and
// 1) from the rank-1 vertex that isn't one (3, which points only to sink 4).
func ExampleRun() {
	g := graph.New(5)
	_ = g.AddEdge(0, 2)
	_ = g.AddEdge(1, 2)
	_ = g.AddEdge(3, 4)
	rank.Decorate(g)

	p := rankedsplit.NewPartition()
	witness := graph.NewQBlock([]*graph.Vertex{g.Vertex(2)}, nil)
	upper := graph.NewQBlock([]*graph.Vertex{g.Vertex(0), g.Vertex(1), g.Vertex(3)}, nil)
	p.Add(graph.Rank(0), witness)
	p.Add(graph.Rank(1), upper)

	rankedsplit.Run(p, witness)

	fmt.Println(len(p.LiveLayer(graph.Rank(1))))

	// Output:
	// 2
}
