package saha

import "github.com/lvlath/rscp/graph"

// mergeCondition reports whether block1 and block2 can be merged into one
// block of the new RSCP (spec §4.F "merge_condition"): same initial
// partition, same rank, neither already merged away, and no causal splitter
// distinguishes them.
func mergeCondition(block1, block2 *graph.QBlock, checkVisited bool) bool {
	id1, _ := block1.InitialPartitionID()
	id2, _ := block2.InitialPartitionID()
	switch {
	case id1 != id2:
		return false
	case block1 == block2:
		return false
	case block1.Rank() != block2.Rank():
		return false
	case block1.Deteached || block2.Deteached:
		return false
	case existsCausalSplitter(block1, block2, checkVisited):
		return false
	default:
		return true
	}
}

// plausibleCausalSplitters collects, for block, the set of blocks its
// members have an edge into that are already known to survive in the new
// RSCP — either because they rank lower than block (so they can't depend on
// block for their own stability) or because they are other. When
// checkVisited is set, a block already marked Visited by the merge-step
// first pass is excluded: during that pass no block has been marked into X
// yet, so this filter is moot there and every candidate is considered (spec
// §4.F "plausible_causal_splitters").
func plausibleCausalSplitters(block, other *graph.QBlock, checkVisited bool) map[*graph.QBlock]bool {
	s := make(map[*graph.QBlock]bool)
	for _, v := range block.Vertices() {
		for _, e := range v.Image {
			current := e.Destination.QBlock
			if checkVisited && current.Visited {
				continue
			}
			if current.Rank() < block.Rank() || current == other {
				s[current] = true
			}
		}
	}
	return s
}

// existsCausalSplitter reports whether block1 and block2 disagree about
// which blocks plausibly distinguish them, meaning they can't be merged
// (spec §4.F "exists_causal_splitter").
func existsCausalSplitter(block1, block2 *graph.QBlock, checkVisited bool) bool {
	s1 := plausibleCausalSplitters(block1, block2, checkVisited)
	s2 := plausibleCausalSplitters(block2, block1, checkVisited)
	if len(s1) != len(s2) {
		return true
	}
	for k := range s1 {
		if !s2[k] {
			return true
		}
	}
	return false
}

// blockPair is an unordered key into the verified-couples set recursiveMerge
// uses to avoid re-checking the same candidate pair twice.
type blockPair struct{ a, b *graph.QBlock }

// recursiveMerge merges block2 into block1, then looks for every pair of
// predecessor blocks this merge might now make mergeable and merges those
// too, transitively (spec §4.F "recursive_merge"). It is a breadth-first
// rewrite of the original's depth-first recursion, required to bound stack
// depth (spec §9); the two orders can settle on different but equally valid
// merge sequences when more than one is possible, since merge_condition is a
// heuristic greedy check, not a uniquely determined one.
//
// The original's dedup check has an operator-precedence bug
// (`not (b1, b2) in seen or (b2, b1) in seen`) that makes it true almost
// unconditionally, so it barely dedups at all; this rewrite uses the
// evidently-intended check (skip if either ordering was already verified).
func recursiveMerge(block1, block2 *graph.QBlock) {
	verified := make(map[blockPair]bool)
	type edgePair struct{ e1, e2 *graph.Edge }
	var queue []edgePair

	merge := func(b1, b2 *graph.QBlock) {
		vertices1 := b1.Vertices()
		vertices2 := b2.Vertices()
		b1.Merge(b2)
		for _, vx1 := range vertices1 {
			for _, vx2 := range vertices2 {
				for _, e1 := range vx1.Counterimage {
					for _, e2 := range vx2.Counterimage {
						queue = append(queue, edgePair{e1, e2})
					}
				}
			}
		}
	}

	merge(block1, block2)
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		c1, c2 := p.e1.Source.QBlock, p.e2.Source.QBlock
		if verified[blockPair{c1, c2}] || verified[blockPair{c2, c1}] {
			continue
		}
		verified[blockPair{c1, c2}] = true
		if mergeCondition(c1, c2, false) {
			merge(c1, c2)
		}
	}
}

// mergePhase looks for every predecessor block of vblock that can be merged
// with ublock, and merges it in (spec §4.F "merge_phase"): if [u1] => [v]
// and merge_condition(u, u1) holds, then [u1] joins [u].
func mergePhase(ublock, vblock *graph.QBlock) {
	for _, vertex := range vblock.Vertices() {
		for _, e := range vertex.Counterimage {
			u1block := e.Source.QBlock
			if mergeCondition(ublock, u1block, false) {
				recursiveMerge(ublock, u1block)
			}
		}
	}
}
