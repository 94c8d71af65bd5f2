// Package saha implements Saha's incremental RSCP update algorithm
// (spec §4.F "SAHA Incremental Update"): given the RSCP already computed for
// a graph (by fba) and a single new edge, it restores stability without
// recomputing the partition from scratch. When the new edge closes a cycle
// (spec §4.F step "check_new_scc"), ranks and SCCs are recomputed for the
// whole graph (rank.Redecorate) while the partition is still repaired
// incrementally by the merge-split phase.
package saha

import (
	"errors"
	"sort"

	"github.com/lvlath/rscp/fba"
	"github.com/lvlath/rscp/graph"
	"github.com/lvlath/rscp/rank"
)

// ErrVertexOutOfRange indicates Update was given a label outside the
// graph's vertex range.
var ErrVertexOutOfRange = errors.New("saha: vertex label out of range")

// Update incorporates the new edge (u, v) into g and returns the updated
// RSCP, starting from partition (the result of a prior fba.Run or saha.Update
// on the same g). g must not already contain this edge. When [u] already has
// an edge into [v], partition is returned unchanged and the edge is not added
// to g.
func Update(g *graph.Graph, partition *fba.Partition, u, v int) (*fba.Partition, error) {
	uVertex := g.Vertex(u)
	vVertex := g.Vertex(v)
	if uVertex == nil || vVertex == nil {
		return nil, ErrVertexOutOfRange
	}

	flat := filterDeteached(partition.Blocks)

	maxRank := graph.RankNegInf
	for _, block := range flat {
		if block.Rank() > maxRank {
			maxRank = block.Rank()
		}
	}

	wellFoundedTopological := buildWellFoundedTopologicalList(flat, uVertex, maxRank)

	sccs := currentSCCs(g)
	for _, s := range sccs {
		s.ComputeImage()
	}
	sccFinishingTime := rank.SCCFinishingTimeOrder(sccs)

	// Immediate wf downgrade (spec §4.F): an edge into a non-well-founded
	// vertex makes the source non-well-founded too, before any other check.
	if !vVertex.WF() {
		uVertex.SetWF(false)
	}

	if checkOldBlocksRelation(uVertex, vVertex) {
		return partition, nil
	}

	graph.AddEdgeVertices(uVertex, vVertex)
	qpartition := rankedSplitFlat(flat, vVertex.QBlock)

	switch {
	case !uVertex.WF() && vVertex.WF():
		if vVertex.Rank().Successor() >= uVertex.Rank() {
			uVertex.SetRank(vVertex.Rank().Successor())
			// u was already non-well-founded; this only recomputes its
			// (and its predecessors') rank after the bump.
			propagateNWF(uVertex.SCC, sccFinishingTime)
		}
		mergePhase(uVertex.QBlock, vVertex.QBlock)
		return &fba.Partition{Blocks: filterDeteached(qpartition), Collapse: partition.Collapse}, nil

	case uVertex.Rank() > vVertex.Rank():
		// u already outranks v; the new edge can't change u's rank (a wf
		// downgrade, if any, was already applied above).
		mergePhase(uVertex.QBlock, vVertex.QBlock)
		return &fba.Partition{Blocks: filterDeteached(qpartition), Collapse: partition.Collapse}, nil

	default:
		found, finishingTimeList := checkNewSCC(uVertex, vVertex)
		if found {
			// u is now part of the SCC the new edge closed into a cycle
			// with v, so it's non-well-founded.
			uVertex.SetWF(false)
			rank.Redecorate(g)
			return &fba.Partition{Blocks: mergeSplitPhase(qpartition, finishingTimeList), Collapse: partition.Collapse}, nil
		}

		if uVertex.WF() {
			if vVertex.WF() {
				// u.rank <= v.rank is already known from the case above.
				uVertex.SetRank(vVertex.Rank().Successor())
				propagateWF(uVertex, wellFoundedTopological, sccFinishingTime)
			} else {
				// u becomes non-well-founded: an edge to a non-well-founded
				// vertex disqualifies u regardless of the rank comparison.
				uVertex.SetWF(false)
				if uVertex.Rank() < vVertex.Rank() {
					uVertex.SetRank(vVertex.Rank())
					propagateNWF(uVertex.SCC, sccFinishingTime)
				}
			}
		} else if uVertex.Rank() < vVertex.Rank() {
			uVertex.SetRank(vVertex.Rank())
			propagateNWF(uVertex.SCC, sccFinishingTime)
		}

		mergePhase(uVertex.QBlock, vVertex.QBlock)
		return &fba.Partition{Blocks: filterDeteached(qpartition), Collapse: partition.Collapse}, nil
	}
}

// checkOldBlocksRelation reports whether [u] already has an edge into [v] in
// the pre-update RSCP, in which case adding (u, v) changes nothing (spec
// §4.F "check_old_blocks_relation"). It inspects at most one other member of
// u's block: since the old partition was stable, either every other member
// agrees with u about having (or not having) an edge into [v], or u's block
// holds only u.
func checkOldBlocksRelation(u, v *graph.Vertex) bool {
	for _, e := range u.Image {
		if e.Destination.QBlock == v.QBlock {
			return true
		}
	}
	for _, vertex := range u.QBlock.Vertices() {
		if vertex == u {
			continue
		}
		for _, e := range vertex.Image {
			if e.Destination.QBlock == v.QBlock {
				return true
			}
		}
		return false
	}
	return false
}

// currentSCCs returns the distinct SCCs of every vertex of g.
func currentSCCs(g *graph.Graph) []*graph.SCC {
	seen := make(map[int]*graph.SCC)
	for _, vx := range g.Vertices() {
		seen[vx.SCC.ID] = vx.SCC
	}
	out := make([]*graph.SCC, 0, len(seen))
	for _, s := range seen {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
