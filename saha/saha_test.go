package saha_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvlath/rscp/fba"
	"github.com/lvlath/rscp/graph"
	"github.com/lvlath/rscp/saha"
)

func blockSets(blocks []fba.Block) [][]int {
	var out [][]int
	for _, b := range blocks {
		set := append([]int{b.Survivor}, b.Absorbed...)
		sort.Ints(set)
		out = append(out, set)
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

// TestUpdate_E6_NewSCCCollapsesSplit mirrors spec §8 scenario E6: starting
// from E2's RSCP ({0,1},{2}), adding the edge (2,0) closes a 3-cycle and the
// whole graph collapses into one block.
func TestUpdate_E6_NewSCCCollapsesSplit(t *testing.T) {
	g := graph.New(3)
	require.NoError(t, g.AddEdge(0, 2))
	require.NoError(t, g.AddEdge(1, 2))

	partition := fba.Run(g)
	require.Equal(t, [][]int{{2}, {0, 1}}, blockSets(fba.Emit(partition)))

	next, err := saha.Update(g, partition, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1, 2}}, blockSets(fba.Emit(next)))
}

// TestUpdate_NoOpWhenAlreadyWitnessed covers spec §4.F step 3 / §7 "no-op
// signal": adding an edge whose effect the old partition already witnesses
// ([u] already reaches [v]) must return the partition unchanged.
// Here 0 and 1 are already bisimilar (both feed the bisimilar sink pair
// 2, 3), and 0 already reaches [3] = {2,3} through its own edge to 2, so
// adding (0, 3) adds nothing the old partition didn't already witness.
func TestUpdate_NoOpWhenAlreadyWitnessed(t *testing.T) {
	g := graph.New(4)
	require.NoError(t, g.AddEdge(0, 2))
	require.NoError(t, g.AddEdge(1, 3))

	partition := fba.Run(g)
	before := blockSets(fba.Emit(partition))

	next, err := saha.Update(g, partition, 0, 3)
	require.NoError(t, err)
	assert.Same(t, partition, next)
	assert.Equal(t, before, blockSets(fba.Emit(next)))
}

// TestUpdate_AgreesWithFreshFBA exercises spec property 5 (PT=FBA=SAHA
// agreement): incrementally updating FBA(G)'s partition with a new edge
// must yield the same set-of-sets as recomputing FBA from scratch on
// G ∪ {e}.
func TestUpdate_AgreesWithFreshFBA(t *testing.T) {
	build := func() *graph.Graph {
		g := graph.New(4)
		require.NoError(t, g.AddEdge(0, 1))
		require.NoError(t, g.AddEdge(1, 2))
		require.NoError(t, g.AddEdge(2, 3))
		return g
	}

	live := build()
	partition := fba.Run(live)
	next, err := saha.Update(live, partition, 0, 3)
	require.NoError(t, err)

	fresh := build()
	require.NoError(t, fresh.AddEdge(0, 3))

	assert.Equal(t, blockSets(fba.RSCP(fresh)), blockSets(fba.Emit(next)))
}

func TestUpdate_RejectsOutOfRangeEndpoint(t *testing.T) {
	g := graph.New(2)
	require.NoError(t, g.AddEdge(0, 1))
	partition := fba.Run(g)

	_, err := saha.Update(g, partition, 0, 5)
	assert.ErrorIs(t, err, saha.ErrVertexOutOfRange)
}
