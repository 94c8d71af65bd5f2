package fba_test

import (
	"fmt"
	"sort"

	"github.com/lvlath/rscp/fba"
	"github.com/lvlath/rscp/graph"
)

// ExampleRSCP computes the relational stable coarsest partition of a small
// graph with two sources sharing one sink:
//
//	0 -> 2
//	1 -> 2
//
// 0 and 1 both point only to 2, so they're bisimilar and collapse together;
// 2 has no outgoing edges and survives on its own.
func ExampleRSCP() {
	g := graph.New(3)
	_ = g.AddEdge(0, 2)
	_ = g.AddEdge(1, 2)

	blocks := fba.RSCP(g)
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Survivor < blocks[j].Survivor })
	for _, b := range blocks {
		sort.Ints(b.Absorbed)
		fmt.Println(b.Survivor, b.Absorbed)
	}

	// Output:
	// 0 [1]
	// 2 []
}
