package saha

import (
	"github.com/lvlath/rscp/graph"
	"github.com/lvlath/rscp/pt"
	"github.com/lvlath/rscp/rankedsplit"
)

// checkNewSCC walks the counter-image of u (spec §4.F "check_new_scc"),
// looking for v: if v can already reach u through existing edges, the new
// edge u->v closes a cycle and u, v (and everything on the path between
// them) now form one SCC. It returns whether v was found, plus every
// visited vertex in post-order — the order merge_split_phase's merge_step
// walks.
//
// This is an iterative rewrite of the original's recursion (spec §9), using
// an explicit stack of (vertex, edge-index) frames to get the same
// post-order append without unbounded stack depth. Each call uses its own
// fresh visited-vertex bookkeeping and clears it before returning, per the
// transient-flag contract (spec §5).
func checkNewSCC(u, v *graph.Vertex) (found bool, finishingTimeList []*graph.Vertex) {
	type frame struct {
		vertex *graph.Vertex
		edges  []*graph.Edge
		idx    int
	}

	var visited []*graph.Vertex
	u.Visited = true
	visited = append(visited, u)

	stack := []*frame{{vertex: u, edges: u.Counterimage}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.idx < len(top.edges) {
			e := top.edges[top.idx]
			top.idx++
			if e.Source == v {
				found = true
			}
			if !e.Source.Visited {
				e.Source.Visited = true
				visited = append(visited, e.Source)
				stack = append(stack, &frame{vertex: e.Source, edges: e.Source.Counterimage})
			}
		} else {
			finishingTimeList = append(finishingTimeList, top.vertex)
			stack = stack[:len(stack)-1]
		}
	}

	for _, x := range visited {
		x.Visited = false
	}
	return found, finishingTimeList
}

// mergeStep performs a forward DFS from root over the graph's current
// image, trying to merge every newly-reached block with one already in
// cantMergeDict (keyed by initial-partition id), and appending it to x when
// no merge is possible (spec §4.F "merge_step"). visited accumulates every
// vertex touched, across however many root calls merge_split_phase makes,
// so the caller can clear the Visited flag once at the end.
//
// This is an iterative rewrite of the original's recursion (spec §9) using
// an explicit vertex stack.
func mergeStep(root *graph.Vertex, x *[]*graph.QBlock, visited *[]*graph.Vertex, cantMergeDict map[int][]*graph.QBlock) {
	stack := []*graph.Vertex{root}
	for len(stack) > 0 {
		vertex := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if vertex.Visited {
			continue
		}
		vertex.Visited = true
		*visited = append(*visited, vertex)

		if !vertex.QBlock.TriedMerge {
			id, _ := vertex.QBlock.InitialPartitionID()
			candidates, ok := cantMergeDict[id]
			merged := false
			if ok {
				for _, qblock := range candidates {
					if mergeCondition(vertex.QBlock, qblock, true) {
						// deteach vertex.QBlock rather than qblock, to
						// avoid accumulating garbage in the dict's entry.
						recursiveMerge(qblock, vertex.QBlock)
						merged = true
						break
					}
				}
			}
			if !merged {
				cantMergeDict[id] = append(cantMergeDict[id], vertex.QBlock)
				*x = append(*x, vertex.QBlock)
			}
			vertex.QBlock.TriedMerge = true
		}

		for _, e := range vertex.Image {
			if !e.Destination.Visited {
				stack = append(stack, e.Destination)
			}
		}
	}
}

// preprocessInitialPartition splits every block in *qblocks that mixes
// leaves (no outgoing edges) with non-leaves into two blocks, appending the
// new one to *qblocks (spec §4.F "preprocess_initial_partition" — mitosis
// split, restored per spec §4.D's supplemented-features note: a leaf and a
// non-leaf can never be bisimilar, so the restricted PT pass below must not
// be handed a block mixing them).
func preprocessInitialPartition(qblocks *[]*graph.QBlock) {
	snapshot := append([]*graph.QBlock(nil), (*qblocks)...)
	for _, block := range snapshot {
		var leaves []*graph.Vertex
		nonLeaves := 0
		for _, v := range block.Vertices() {
			if len(v.Image) == 0 {
				leaves = append(leaves, v)
			} else {
				nonLeaves++
			}
		}
		if len(leaves) > 0 && nonLeaves > 0 {
			*qblocks = append(*qblocks, block.FastMitosis(leaves))
		}
	}
}

// filterDeteached returns blocks with every Deteached entry removed.
func filterDeteached(blocks []*graph.QBlock) []*graph.QBlock {
	out := make([]*graph.QBlock, 0, len(blocks))
	for _, b := range blocks {
		if !b.Deteached {
			out = append(out, b)
		}
	}
	return out
}

// rankedSplitFlat runs Ranked-Split over a flat block list (spec §4.F calls
// this directly, unlike fba's rank-layered driver): it rebuilds a
// rank-indexed rankedsplit.Partition from flat, runs Run with witness, and
// flattens the result back out, dropping anything the split left empty or
// Deteached.
func rankedSplitFlat(flat []*graph.QBlock, witness *graph.QBlock) []*graph.QBlock {
	p := rankedsplit.NewPartition()
	for _, qb := range flat {
		p.Add(qb.Rank(), qb)
	}
	rankedsplit.Run(p, witness)
	return p.All()
}

// mergeSplitPhase rebuilds the portion of the RSCP that a newly-formed SCC
// invalidates (spec §4.F "merge_split_phase"): a first DFS greedily merges
// whatever it can (mergeStep), then a restricted PT pass decides the rest
// for the blocks that couldn't be greedily merged, and any block the pass
// actually splits gets propagated upward via Ranked-Split.
func mergeSplitPhase(flat []*graph.QBlock, finishingTimeList []*graph.Vertex) []*graph.QBlock {
	maxRank := graph.RankNegInf
	for _, block := range flat {
		if block.Rank() > maxRank {
			maxRank = block.Rank()
		}
	}
	_ = maxRank // kept for parity with the original's signature; rankedSplitFlat needs no bound.

	cantMergeDict := make(map[int][]*graph.QBlock)
	var visitedVertices []*graph.Vertex
	var x []*graph.QBlock

	for _, vertex := range finishingTimeList {
		if !vertex.Visited {
			mergeStep(vertex, &x, &visitedVertices, cantMergeDict)
		}
	}

	x = filterDeteached(x)

	for _, vx := range visitedVertices {
		vx.Visited = false
	}
	for _, block := range flat {
		block.Visited = false
		block.TriedMerge = false
	}

	var scaled []*graph.Vertex
	for _, block := range x {
		block.Visited = true
		block.ForEach(func(vx *graph.Vertex) {
			vx.AllowVisit = true
			vx.OldQBlock = vx.QBlock
			vx.ScaleLabel(len(scaled))
			scaled = append(scaled, vx)
		})
	}

	var newQPartition []*graph.QBlock
	for _, block := range flat {
		if !block.Visited && !block.Deteached {
			newQPartition = append(newQPartition, block)
		} else {
			block.Visited = false
		}
	}

	for _, block := range x {
		block.ForEach(func(vx *graph.Vertex) { vx.RestrictToAllowedSubgraph() })
	}

	preprocessInitialPartition(&x)
	x2 := pt.Run(x)
	newQPartition = append(newQPartition, x2...)

	for _, block := range x2 {
		block.ForEach(func(vx *graph.Vertex) {
			vx.BackToOriginalGraph()
			vx.AllowVisit = false
			vx.BackToOriginalLabel()
		})
	}

	var splitBlocks []*graph.QBlock
	for _, block := range x2 {
		for _, vx := range block.Vertices() {
			if !vx.QBlock.Visited && vx.OldQBlock != vx.QBlock {
				newQPartition = rankedSplitFlat(newQPartition, vx.QBlock)
				splitBlocks = append(splitBlocks, vx.QBlock)
				vx.QBlock.Visited = true
			}
		}
	}

	for _, block := range newQPartition {
		block.ForEach(func(vx *graph.Vertex) { vx.OldQBlock = nil })
	}
	for _, block := range splitBlocks {
		block.Visited = false
	}

	return newQPartition
}
