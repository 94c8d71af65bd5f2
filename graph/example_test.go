package graph_test

import (
	"fmt"

	"github.com/lvlath/rscp/graph"
)

// ExampleNew builds a three-vertex graph and adds two edges into a shared
// sink, then reads the resulting image/counterimage back off the vertices.
func ExampleNew() {
	g := graph.New(3)
	_ = g.AddEdge(0, 2)
	_ = g.AddEdge(1, 2)

	sink := g.Vertex(2)
	fmt.Println(len(sink.Image), len(sink.Counterimage))

	// Output:
	// 0 2
}
