package rank_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvlath/rscp/graph"
	"github.com/lvlath/rscp/rank"
)

func TestDecorate_SingleEdgeChain(t *testing.T) {
	// 0 -> 1, 1 is a sink with no self-loop: rank(1) = 0, rank(0) = 1.
	g := graph.New(2)
	require.NoError(t, g.AddEdge(0, 1))

	rank.Decorate(g)

	require.NotNil(t, g.Vertex(1).SCC)
	assert.True(t, g.Vertex(1).WF())
	assert.Equal(t, graph.Rank(0), g.Vertex(1).Rank())

	assert.True(t, g.Vertex(0).WF())
	assert.Equal(t, graph.Rank(1), g.Vertex(0).Rank())
}

func TestDecorate_SelfLoopIsNonWellFounded(t *testing.T) {
	g := graph.New(1)
	require.NoError(t, g.AddEdge(0, 0))

	rank.Decorate(g)

	assert.False(t, g.Vertex(0).WF())
	assert.Equal(t, graph.RankNegInf, g.Vertex(0).Rank())
}

func TestDecorate_ThreeCycleIsSingleNonWellFoundedSCC(t *testing.T) {
	g := graph.New(3)
	require.NoError(t, g.AddEdge(0, 1))
	require.NoError(t, g.AddEdge(1, 2))
	require.NoError(t, g.AddEdge(2, 0))

	sccs := rank.Decorate(g)

	require.Len(t, sccs, 1)
	assert.Len(t, sccs[0].Vertices(), 3)
	assert.False(t, sccs[0].WF())
	assert.Equal(t, graph.RankNegInf, sccs[0].Rank())
	for _, v := range g.Vertices() {
		assert.False(t, v.WF())
		assert.Equal(t, graph.RankNegInf, v.Rank())
	}
}

func TestDecorate_NonWellFoundedPredecessorKeepsRankOfSuccessor(t *testing.T) {
	// 0 -> 1 -> 1 (self-loop): rank(1) = -inf, and since 1 is not
	// well-founded, 0 is not either and rank(0) = rank(1) (no +1 applied
	// across a nwf edge).
	g := graph.New(2)
	require.NoError(t, g.AddEdge(0, 1))
	require.NoError(t, g.AddEdge(1, 1))

	rank.Decorate(g)

	assert.False(t, g.Vertex(1).WF())
	assert.Equal(t, graph.RankNegInf, g.Vertex(1).Rank())
	assert.False(t, g.Vertex(0).WF())
	assert.Equal(t, graph.RankNegInf, g.Vertex(0).Rank())
}

func TestDecorate_DiamondTakesMaxOfSuccessors(t *testing.T) {
	// 0 -> 1 -> 3, 0 -> 2 -> 3, all well-founded singletons, 3 is the sink.
	g := graph.New(4)
	require.NoError(t, g.AddEdge(0, 1))
	require.NoError(t, g.AddEdge(0, 2))
	require.NoError(t, g.AddEdge(1, 3))
	require.NoError(t, g.AddEdge(2, 3))

	rank.Decorate(g)

	assert.Equal(t, graph.Rank(0), g.Vertex(3).Rank())
	assert.Equal(t, graph.Rank(1), g.Vertex(1).Rank())
	assert.Equal(t, graph.Rank(1), g.Vertex(2).Rank())
	assert.Equal(t, graph.Rank(2), g.Vertex(0).Rank())
	for _, v := range g.Vertices() {
		assert.True(t, v.WF())
	}
}
