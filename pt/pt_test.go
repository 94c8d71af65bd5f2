package pt_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvlath/rscp/graph"
	"github.com/lvlath/rscp/pt"
)

func labelSets(blocks []*graph.QBlock) [][]int {
	var out [][]int
	for _, qb := range blocks {
		var labels []int
		qb.ForEach(func(v *graph.Vertex) { labels = append(labels, v.OriginalLabel) })
		sort.Ints(labels)
		out = append(out, labels)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) < len(out[j])
		}
		for k := range out[i] {
			if out[i][k] != out[j][k] {
				return out[i][k] < out[j][k]
			}
		}
		return false
	})
	return out
}

func TestRun_SplitsByEdgeIntoSplitter(t *testing.T) {
	// 0 -> 3, 1 -> 3, 2 has no edge to 3. {0,1,2} and {3} start as two
	// QBlocks of one XBlock; only 0 and 1 have an edge into {3}, so the
	// stable refinement separates {0,1} from {2}.
	g := graph.New(4)
	require.NoError(t, g.AddEdge(0, 3))
	require.NoError(t, g.AddEdge(1, 3))

	qa := graph.NewQBlock([]*graph.Vertex{g.Vertex(0), g.Vertex(1), g.Vertex(2)}, nil)
	qb := graph.NewQBlock([]*graph.Vertex{g.Vertex(3)}, nil)

	out := pt.Run([]*graph.QBlock{qa, qb})

	assert.Equal(t, [][]int{{2}, {3}, {0, 1}}, labelSets(out))
}

func TestRun_TrivialPartitionIsAlreadyStable(t *testing.T) {
	g := graph.New(2)
	qa := graph.NewQBlock(g.Vertices(), nil)

	out := pt.Run([]*graph.QBlock{qa})

	require.Len(t, out, 1)
	assert.Equal(t, [][]int{{0, 1}}, labelSets(out))
}

func TestRun_SecondSplitterSeparatesEntirelyRedirectedVertices(t *testing.T) {
	// 0 and 1 both point only into splitter {3}; 2 points into {3} and
	// also into {4} (kept outside the splitter round), so after the first
	// split {0,1,2} moves together into one helper block, but the count
	// update separates {0,1} (count-to-rest reaches zero) from {2}.
	g := graph.New(5)
	require.NoError(t, g.AddEdge(0, 3))
	require.NoError(t, g.AddEdge(1, 3))
	require.NoError(t, g.AddEdge(2, 3))
	require.NoError(t, g.AddEdge(2, 4))

	qa := graph.NewQBlock([]*graph.Vertex{g.Vertex(0), g.Vertex(1), g.Vertex(2)}, nil)
	qb := graph.NewQBlock([]*graph.Vertex{g.Vertex(3)}, nil)
	qc := graph.NewQBlock([]*graph.Vertex{g.Vertex(4)}, nil)

	out := pt.Run([]*graph.QBlock{qa, qb, qc})

	assert.Equal(t, [][]int{{2}, {3}, {4}, {0, 1}}, labelSets(out))
}
