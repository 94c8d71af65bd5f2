// Package pt implements the Paige-Tarjan partition-refinement kernel
// (spec §4.C "PT Kernel"): given a set of QBlocks considered members of one
// implicit XBlock, it refines them to the stable partition in which every
// remaining block distinguishes vertices by "has an edge into block X" for
// every block X touched during the run.
package pt

import "github.com/lvlath/rscp/graph"

// Run refines blocks to the stable partition and returns every surviving
// QBlock. Every edge among the vertices of blocks must already carry
// Count-consistent Count aliasing (spec §3 "Count invariant") before Run is
// called; FBA and SAHA arrange this via graph.Vertex.RestrictToSubgraph /
// RestrictToAllowedSubgraph before handing blocks to the kernel.
func Run(blocks []*graph.QBlock) []*graph.QBlock {
	if len(blocks) == 0 {
		return nil
	}

	root := graph.NewXBlock()
	for _, qb := range blocks {
		if old := qb.XBlock(); old != nil {
			old.RemoveQBlock(qb)
		}
		root.AppendQBlock(qb)
	}
	xblocks := []*graph.XBlock{root}
	live := append([]*graph.QBlock(nil), blocks...)

	for {
		compound := findCompound(xblocks)
		if compound == nil {
			break
		}

		splitter := pickSplitter(compound)
		splitterXB := graph.NewXBlock()
		compound.RemoveQBlock(splitter)
		splitterXB.AppendQBlock(splitter)
		xblocks = append(xblocks, splitterXB)

		touched := firstSplit(splitter, &live)
		secondSplitter := updateCounts(splitter, touched)
		secondSplit(secondSplitter, &live)
	}

	out := make([]*graph.QBlock, 0, len(live))
	for _, qb := range live {
		if !qb.Deteached && qb.Size() > 0 {
			out = append(out, qb)
		}
	}
	return out
}

// findCompound returns the first XBlock holding two or more QBlocks, or nil
// if the partition is already stable (spec §4.C step 6).
func findCompound(xblocks []*graph.XBlock) *graph.XBlock {
	for _, xb := range xblocks {
		if xb.Size() >= 2 {
			return xb
		}
	}
	return nil
}

// pickSplitter chooses the smaller of xb's first two QBlocks, preferring
// the first on a tie (spec §4.C step 1 and its tie-break note).
func pickSplitter(xb *graph.XBlock) *graph.QBlock {
	first, second := xb.First(), xb.Second()
	if second == nil || first.Size() <= second.Size() {
		return first
	}
	return second
}

// firstSplit moves, out of its current QBlock into that block's
// split-helper, every vertex with at least one edge into splitter (spec
// §4.C step 3). It returns the moved vertices, in the order first touched.
func firstSplit(splitter *graph.QBlock, live *[]*graph.QBlock) []*graph.Vertex {
	var marked, touched []*graph.Vertex
	seen := make(map[*graph.QBlock]bool)
	var order []*graph.QBlock

	for _, y := range splitter.Vertices() {
		for _, e := range y.Counterimage {
			x := e.Source
			if x.Visited {
				continue
			}
			x.Visited = true
			marked = append(marked, x)

			if x.QBlock == splitter {
				// x already lives in the splitter itself; nothing to move.
				continue
			}
			touched = append(touched, x)

			q := x.QBlock
			if !seen[q] {
				seen[q] = true
				order = append(order, q)
			}
			helper := q.InitializeSplitHelper()
			q.RemoveVertex(x)
			helper.AppendVertex(x)
		}
	}

	for _, x := range marked {
		x.Visited = false
	}

	finishSplit(order, live)
	return touched
}

// secondSplit moves every vertex marked InSecondSplitter out of its current
// QBlock into that block's split-helper (spec §4.C step 5), then clears the
// flag.
func secondSplit(vertices []*graph.Vertex, live *[]*graph.QBlock) {
	seen := make(map[*graph.QBlock]bool)
	var order []*graph.QBlock

	for _, x := range vertices {
		q := x.QBlock
		if !seen[q] {
			seen[q] = true
			order = append(order, q)
		}
		helper := q.InitializeSplitHelper()
		q.RemoveVertex(x)
		helper.AppendVertex(x)
		x.InSecondSplitter = false
	}

	finishSplit(order, live)
}

// finishSplit re-inserts every touched block's split-helper into the
// partition, registering it as a new live block; a block fully emptied by
// the split (every member moved into its helper) is dropped instead, since
// its helper already stands in for it.
func finishSplit(order []*graph.QBlock, live *[]*graph.QBlock) {
	for _, q := range order {
		helper := q.SplitHelper
		q.ResetSplitHelper()
		if q.Size() == 0 {
			if xb := q.XBlock(); xb != nil {
				xb.RemoveQBlock(q)
			}
			q.Deteached = true
		}
		*live = append(*live, helper)
	}
}

// updateCounts performs spec §4.C step 4: for every vertex x moved by
// firstSplit, it reassigns the Count aliased by x's edges into splitter
// from the shared "count into the old XBlock" object to a fresh
// "count into splitter" object, decrementing the old one per edge moved.
// A vertex whose old count reaches zero (no remaining edges outside
// splitter) while its new count is positive belongs to the second
// splitter.
func updateCounts(splitter *graph.QBlock, touched []*graph.Vertex) []*graph.Vertex {
	var secondSplitter []*graph.Vertex
	for _, x := range touched {
		var edgesToSplitter []*graph.Edge
		for _, e := range x.Image {
			if e.Destination.QBlock == splitter {
				edgesToSplitter = append(edgesToSplitter, e)
			}
		}
		if len(edgesToSplitter) == 0 {
			continue
		}

		oldCount := edgesToSplitter[0].Count
		newCount := &graph.Count{}
		for _, e := range edgesToSplitter {
			oldCount.Value--
			e.Count = newCount
			newCount.Value++
		}

		if oldCount.Value == 0 && newCount.Value > 0 {
			x.InSecondSplitter = true
			secondSplitter = append(secondSplitter, x)
		}
	}
	return secondSplitter
}
