// Package fba implements the Dovier-Piazza-Policriti fast bisimulation
// algorithm (spec §4.D "FBA Driver"): it computes the relational stable
// coarsest partition of a graph by refining rank layers bottom-up, since two
// vertices of different rank are never bisimilar.
package fba

import (
	"github.com/lvlath/rscp/graph"
	"github.com/lvlath/rscp/pt"
	"github.com/lvlath/rscp/rank"
	"github.com/lvlath/rscp/rankedsplit"
)

// Block is one block of a computed RSCP (spec §4.D step 6): Survivor is the
// original label of the block's representative vertex, Absorbed the
// original labels of every vertex collapsed into it.
type Block struct {
	Survivor int
	Absorbed []int
}

// Partition is the live result of a Run: the surviving QBlocks (each holding
// one or more member vertices — one after a fresh FBA run, possibly more
// once SAHA has merged blocks incrementally) plus the collapse ledger
// mapping every surviving vertex's original label to the original labels
// collapsed into it. SAHA's Update takes and returns a *Partition so an
// incremental edge addition can continue refining the same live structure
// RSCP already built, rather than starting over.
type Partition struct {
	Blocks   []*graph.QBlock
	Collapse map[int][]int
}

// layerKey groups vertices that may end up sharing a QBlock: same rank, same
// initial-partition id (spec §3 "Initial-partition id" — a permanent
// cross-cutting invariant the rank-−∞ collapse is not exempt from, which is
// why rank layering here is keyed by (rank, id) rather than by rank alone).
type layerKey struct {
	rank graph.Rank
	id   int
}

// RSCP computes the relational stable coarsest partition of g and flattens
// it to the external Block representation. It is a thin wrapper around Run
// for callers who only need the final answer, not a live Partition to feed
// into saha.Update.
func RSCP(g *graph.Graph) []Block {
	return Emit(Run(g))
}

// Run computes the relational stable coarsest partition of g and returns it
// as a live Partition. g must already have its edges added
// (graph.Graph.AddEdge); Run decorates it with rank and well-foundedness as
// its first step (spec §4.B) before refining.
func Run(g *graph.Graph) *Partition {
	rank.Decorate(g)

	partition := rankedsplit.NewPartition()
	blocksByKey := make(map[layerKey]*graph.QBlock)
	for _, v := range g.Vertices() {
		k := layerKey{rank: v.Rank(), id: v.InitialPartitionID}
		qb, ok := blocksByKey[k]
		if !ok {
			qb = graph.NewQBlock(nil, nil)
			blocksByKey[k] = qb
			partition.Add(v.Rank(), qb)
		}
		qb.AppendVertex(v)
	}

	collapseMap := make(map[int][]int)

	// Steps 3-4: collapse every rank -inf block (one per initial-partition
	// id sharing that rank) and propagate upward. Within one id, every
	// rank -inf vertex is bisimilar to every other, so no PT pass is
	// needed here — only a graft-and-remove collapse.
	for _, qb := range partition.LiveLayer(graph.RankNegInf) {
		survivor, collapsed := collapse(qb)
		recordCollapse(collapseMap, survivor, collapsed)
		if survivor != nil {
			rankedsplit.Run(partition, qb)
		}
	}

	maxRank := graph.RankNegInf
	for _, v := range g.Vertices() {
		if v.Rank() != graph.RankNegInf && v.Rank() > maxRank {
			maxRank = v.Rank()
		}
	}

	// Step 5: per rank layer, bottom up.
	for r := graph.Rank(0); maxRank != graph.RankNegInf && r <= maxRank; r++ {
		layer := partition.LiveLayer(r)
		if len(layer) == 0 {
			continue
		}

		for _, qb := range layer {
			qb.ForEach(func(v *graph.Vertex) { v.RestrictToSubgraph() })
		}
		scaled := make([]*graph.Vertex, 0)
		for _, qb := range layer {
			qb.ForEach(func(v *graph.Vertex) {
				v.ScaleLabel(len(scaled))
				scaled = append(scaled, v)
			})
		}

		refined := pt.Run(layer)

		for _, v := range scaled {
			v.BackToOriginalLabel()
			v.BackToOriginalGraph()
		}

		partition.ClearLayer(r)
		for _, qb := range refined {
			survivor, collapsed := collapse(qb)
			recordCollapse(collapseMap, survivor, collapsed)
			if survivor == nil {
				continue
			}
			partition.Add(r, qb)
			rankedsplit.Run(partition, qb)
		}
	}

	return &Partition{Blocks: partition.All(), Collapse: collapseMap}
}

// collapse reduces qb to its first vertex, grafting the counter-image of
// every other member onto that survivor and removing them from qb (spec
// §4.D step 3 / original's collapse). The survivor's own image is left
// untouched, and each collapsed-away vertex keeps its own Image. Removal uses SoftRemoveVertex rather than RemoveVertex: a collapsed
// vertex's QBlock pointer must keep resolving to qb afterwards (it is no
// longer a live list member, but it is still that equivalence class), since
// SAHA can later walk into it through the counterimage it grafted onto the
// survivor, or through a finishing-time traversal that is agnostic to
// collapse state.
func collapse(qb *graph.QBlock) (survivor *graph.Vertex, collapsed []*graph.Vertex) {
	vertices := qb.Vertices()
	if len(vertices) == 0 {
		return nil, nil
	}
	survivor = vertices[0]
	for _, v := range vertices[1:] {
		collapsed = append(collapsed, v)
		survivor.Counterimage = append(survivor.Counterimage, v.Counterimage...)
		qb.SoftRemoveVertex(v)
	}
	return survivor, collapsed
}

func recordCollapse(collapseMap map[int][]int, survivor *graph.Vertex, collapsed []*graph.Vertex) {
	if survivor == nil {
		return
	}
	labels := make([]int, len(collapsed))
	for i, v := range collapsed {
		labels[i] = v.OriginalLabel
	}
	collapseMap[survivor.OriginalLabel] = labels
}

// Emit builds the final RSCP (spec §4.D step 6) from p's surviving blocks.
// A block may hold more than one live member vertex after SAHA has
// physically merged two blocks (graph.QBlock.Merge, unlike collapse, leaves
// every member live); Emit folds each member's own original label and its
// prior collapse entry into the first member's Absorbed list, so a chain of
// FBA collapses followed by a SAHA merge still flattens to one block.
func Emit(p *Partition) []Block {
	var out []Block
	for _, qb := range p.Blocks {
		members := qb.Vertices()
		if len(members) == 0 {
			continue
		}
		survivor := members[0]
		absorbed := append([]int(nil), p.Collapse[survivor.OriginalLabel]...)
		for _, v := range members[1:] {
			absorbed = append(absorbed, v.OriginalLabel)
			absorbed = append(absorbed, p.Collapse[v.OriginalLabel]...)
		}
		out = append(out, Block{Survivor: survivor.OriginalLabel, Absorbed: absorbed})
	}
	return out
}
