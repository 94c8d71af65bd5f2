// Package rankedsplit implements the Ranked-Split operation (spec §4.E),
// used by both the FBA driver (propagating a freshly collapsed or
// freshly-stabilised block upward through higher ranks) and SAHA (restoring
// local stability after a new edge changes a block's counter-image).
package rankedsplit

import (
	"sort"

	"github.com/lvlath/rscp/graph"
)

// Partition indexes the QBlocks of an in-progress computation by rank
// (spec §4.D step 2). It is a map keyed by graph.Rank, with RankNegInf as an
// ordinary key, rather than FBA's rank_to_partition_idx list where index 0
// holds rank -inf and index i+1 holds rank i. A block that has been merged away or
// emptied by a split is left in place with Deteached set; callers reading a
// layer must skip such blocks.
type Partition struct {
	layers map[graph.Rank][]*graph.QBlock
}

// NewPartition returns an empty rank-indexed partition.
func NewPartition() *Partition {
	return &Partition{layers: make(map[graph.Rank][]*graph.QBlock)}
}

// Add registers qb under rank. Callers must not register the same QBlock
// twice.
func (p *Partition) Add(rank graph.Rank, qb *graph.QBlock) {
	p.layers[rank] = append(p.layers[rank], qb)
}

// Layer returns every QBlock registered at rank, including Deteached ones.
func (p *Partition) Layer(rank graph.Rank) []*graph.QBlock { return p.layers[rank] }

// LiveLayer returns every non-Deteached, non-empty QBlock registered at
// rank.
func (p *Partition) LiveLayer(rank graph.Rank) []*graph.QBlock {
	all := p.layers[rank]
	out := make([]*graph.QBlock, 0, len(all))
	for _, qb := range all {
		if !qb.Deteached && qb.Size() > 0 {
			out = append(out, qb)
		}
	}
	return out
}

// ClearLayer discards every block registration at rank without touching the
// blocks themselves; used by FBA after a PT pass produces the authoritative
// replacement set for that layer (spec §4.D step 5c).
func (p *Partition) ClearLayer(rank graph.Rank) {
	delete(p.layers, rank)
}

// Ranks returns every rank that has at least one registered block, sorted
// ascending (rank -inf first).
func (p *Partition) Ranks() []graph.Rank {
	out := make([]graph.Rank, 0, len(p.layers))
	for r := range p.layers {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// All returns every live QBlock across every rank.
func (p *Partition) All() []*graph.QBlock {
	var out []*graph.QBlock
	for _, r := range p.Ranks() {
		out = append(out, p.LiveLayer(r)...)
	}
	return out
}

// Run performs Ranked-Split using witness as the witness block (spec §4.E):
// every vertex in witness's counter-image whose rank is strictly greater
// than witness's rank is detached from its current block into that block's
// split-helper, and every populated split-helper is registered in p as a
// new block at its members' rank. Every touched block's split-helper and
// every touched vertex's Visited flag are cleared before Run returns.
func Run(p *Partition, witness *graph.QBlock) {
	witnessRank := witness.Rank()

	var predecessors []*graph.Vertex
	seenVertex := make(map[*graph.Vertex]bool)
	witness.ForEach(func(y *graph.Vertex) {
		for _, e := range y.Counterimage {
			x := e.Source
			if seenVertex[x] {
				continue
			}
			seenVertex[x] = true
			predecessors = append(predecessors, x)
		}
	})

	var touchedVertices []*graph.Vertex
	seenBlock := make(map[*graph.QBlock]bool)
	var order []*graph.QBlock

	for _, x := range predecessors {
		if x.Rank() <= witnessRank {
			continue
		}
		x.Visited = true
		touchedVertices = append(touchedVertices, x)

		q := x.QBlock
		if !seenBlock[q] {
			seenBlock[q] = true
			order = append(order, q)
		}
		helper := q.InitializeSplitHelper()
		q.RemoveVertex(x)
		helper.AppendVertex(x)
	}

	for _, q := range order {
		helper := q.SplitHelper
		q.ResetSplitHelper()
		if q.Size() == 0 {
			if xb := q.XBlock(); xb != nil {
				xb.RemoveQBlock(q)
			}
			q.Deteached = true
		}
		if helper.Size() > 0 {
			p.Add(helper.Rank(), helper)
		}
	}

	for _, x := range touchedVertices {
		x.Visited = false
	}
}
