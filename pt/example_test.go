package pt_test

import (
	"fmt"
	"sort"

	"github.com/lvlath/rscp/graph"
	"github.com/lvlath/rscp/pt"
)

// ExampleRun splits {0,1,2} against splitter {3}: only 0 and 1 have an edge
// into 3, so the stable refinement separates {0,1} from {2}.
func ExampleRun() {
	g := graph.New(4)
	_ = g.AddEdge(0, 3)
	_ = g.AddEdge(1, 3)

	qa := graph.NewQBlock([]*graph.Vertex{g.Vertex(0), g.Vertex(1), g.Vertex(2)}, nil)
	qb := graph.NewQBlock([]*graph.Vertex{g.Vertex(3)}, nil)

	out := pt.Run([]*graph.QBlock{qa, qb})

	var sets [][]int
	for _, q := range out {
		var labels []int
		q.ForEach(func(v *graph.Vertex) { labels = append(labels, v.OriginalLabel) })
		sort.Ints(labels)
		sets = append(sets, labels)
	}
	sort.Slice(sets, func(i, j int) bool {
		if len(sets[i]) != len(sets[j]) {
			return len(sets[i]) < len(sets[j])
		}
		return sets[i][0] < sets[j][0]
	})
	for _, s := range sets {
		fmt.Println(s)
	}

	// Output:
	// [2]
	// [3]
	// [0 1]
}
