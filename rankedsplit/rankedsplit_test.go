package rankedsplit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvlath/rscp/graph"
	"github.com/lvlath/rscp/rank"
	"github.com/lvlath/rscp/rankedsplit"
)

// Two rank-1 vertices, 0 and 1, both point into the witness block {2} at
// rank 0; vertex 3 at rank 1 (through its edge to sink 4) does not. After
// Ranked-Split with witness {2}, {0,1} and {3} must be separated.
func TestRun_SeparatesPredecessorsFromNonPredecessors(t *testing.T) {
	g := graph.New(5)
	require.NoError(t, g.AddEdge(0, 2))
	require.NoError(t, g.AddEdge(1, 2))
	require.NoError(t, g.AddEdge(3, 4))
	rank.Decorate(g)

	require.Equal(t, graph.Rank(0), g.Vertex(2).Rank())
	require.Equal(t, graph.Rank(1), g.Vertex(0).Rank())
	require.Equal(t, graph.Rank(1), g.Vertex(3).Rank())

	p := rankedsplit.NewPartition()
	witness := graph.NewQBlock([]*graph.Vertex{g.Vertex(2)}, nil)
	upper := graph.NewQBlock([]*graph.Vertex{g.Vertex(0), g.Vertex(1), g.Vertex(3)}, nil)
	p.Add(graph.Rank(0), witness)
	p.Add(graph.Rank(1), upper)

	rankedsplit.Run(p, witness)

	live := p.LiveLayer(graph.Rank(1))
	require.Len(t, live, 2)

	var sizes []int
	for _, qb := range live {
		sizes = append(sizes, qb.Size())
	}
	assert.ElementsMatch(t, []int{2, 1}, sizes)

	assert.False(t, g.Vertex(0).Visited)
	assert.False(t, g.Vertex(1).Visited)
	assert.False(t, g.Vertex(3).Visited)
}

func TestRun_NoPredecessorsIsNoop(t *testing.T) {
	g := graph.New(2)
	rank.Decorate(g)

	p := rankedsplit.NewPartition()
	witness := graph.NewQBlock([]*graph.Vertex{g.Vertex(0)}, nil)
	other := graph.NewQBlock([]*graph.Vertex{g.Vertex(1)}, nil)
	p.Add(graph.Rank(0), witness)
	p.Add(graph.Rank(0), other)

	rankedsplit.Run(p, witness)

	assert.Len(t, p.LiveLayer(graph.Rank(0)), 2)
}
