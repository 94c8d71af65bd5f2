package saha_test

import (
	"fmt"
	"sort"

	"github.com/lvlath/rscp/fba"
	"github.com/lvlath/rscp/graph"
	"github.com/lvlath/rscp/saha"
)

// ExampleUpdate incrementally folds a new edge into an already-computed
// RSCP instead of recomputing it from scratch. Starting from the chain
// 0 -> 1 -> 2 -> 3 (four singleton blocks, since every vertex has a
// different rank), adding the edge 0 -> 3 leaves every vertex at a
// different rank (0 still reaches 1, which 2 does not), so the partition
// stays four singletons.
func ExampleUpdate() {
	g := graph.New(4)
	_ = g.AddEdge(0, 1)
	_ = g.AddEdge(1, 2)
	_ = g.AddEdge(2, 3)

	partition := fba.Run(g)

	updated, err := saha.Update(g, partition, 0, 3)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	blocks := fba.Emit(updated)
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Survivor < blocks[j].Survivor })
	for _, b := range blocks {
		sort.Ints(b.Absorbed)
		fmt.Println(b.Survivor, b.Absorbed)
	}

	// Output:
	// 0 []
	// 1 []
	// 2 []
	// 3 []
}
