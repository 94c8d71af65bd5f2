package saha

import (
	"sort"

	"github.com/lvlath/rscp/graph"
)

// propagateNWF recomputes rank and well-foundedness for scc and every SCC
// that transitively reaches it, in that order (spec §4.F "propagate_nwf").
// It is the Go generalisation of the original's vertex/SCC-mixed argument
// (spec §9 open question 2): every call site here passes the *graph.SCC
// directly, since every vertex already carries one.
//
// A sink SCC reached during this walk is always stamped non-well-founded
// (graph.SCC.MarkSCCLeaf): the original's "mark_leaf if the SCC has no
// members" branch is unreachable (an SCC always has at least one member),
// so in practice every sink this routine visits is marked rank -∞.
//
// This is an iterative rewrite of the original's recursion (spec §9) using
// an explicit SCC stack; touched SCCs are tracked and their Visited flag
// cleared before returning, per the transient-flag contract (spec §5).
func propagateNWF(scc *graph.SCC, sccFinishingTime []*graph.SCC) {
	var touched []*graph.SCC
	stack := []*graph.SCC{scc}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.Visited {
			continue
		}
		s.Visited = true
		touched = append(touched, s)

		s.ComputeImage()
		s.ComputeCounterimage()

		successors := s.Image()
		if len(successors) == 0 {
			s.MarkSCCLeaf()
		} else {
			wf := true
			mx := graph.RankNegInf
			for _, succ := range successors {
				if !succ.WF() {
					wf = false
				}
				r := succ.Rank()
				if succ.WF() {
					r = r.Successor()
				}
				if r > mx {
					mx = r
				}
			}
			if !wf {
				s.SetWF(false)
			}
			s.SetRank(mx)
		}

		for _, sf := range sccFinishingTime {
			if !sf.Visited && s.HasCounterimage(sf.ID) {
				stack = append(stack, sf)
			}
		}
	}

	for _, s := range touched {
		s.Visited = false
	}
}

// propagateWF updates the rank of every well-founded vertex in topo (spec
// §4.F "propagate_wf"), visiting them in increasing rank order — the only
// order that yields correct results, since a vertex's rank depends on its
// well-founded successors' already-settled ranks. vertex is accepted for
// parity with the call site (spec §4.F dispatches "u.rank <- v.rank+1"
// before calling this) but, as in the original, the body needs only topo
// and sccFinishingTime.
func propagateWF(vertex *graph.Vertex, topo []*graph.Vertex, sccFinishingTime []*graph.SCC) {
	_ = vertex

	for _, vx := range topo {
		mx := vx.Rank()
		for _, e := range vx.Image {
			if e.Destination.WF() {
				if r := e.Destination.Rank().Successor(); r > mx {
					mx = r
				}
			}
		}
		vx.SetRank(mx)
	}

	for _, vx := range topo {
		for _, e := range vx.Counterimage {
			if !e.Source.WF() {
				propagateNWF(e.Source.SCC, sccFinishingTime)
			}
		}
	}
}

// buildWellFoundedTopologicalList collects every well-founded vertex of
// blocks whose rank is at or above source's, in increasing rank order
// (spec §4.F "build_well_founded_topological_list") — the order
// propagateWF must walk for its rank updates to be correct. maxRank is
// accepted for parity with the call site; grouping by a map keyed on
// graph.Rank makes the original's rank-to-bucket-index arithmetic
// unnecessary here.
func buildWellFoundedTopologicalList(blocks []*graph.QBlock, source *graph.Vertex, maxRank graph.Rank) []*graph.Vertex {
	_ = maxRank

	byRank := make(map[graph.Rank][]*graph.Vertex)
	for _, block := range blocks {
		if block.Rank() == graph.RankNegInf || block.Rank() < source.Rank() {
			continue
		}
		for _, vx := range block.Vertices() {
			if vx.WF() {
				byRank[block.Rank()] = append(byRank[block.Rank()], vx)
			}
		}
	}

	ranks := make([]graph.Rank, 0, len(byRank))
	for r := range byRank {
		ranks = append(ranks, r)
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] < ranks[j] })

	var out []*graph.Vertex
	for _, r := range ranks {
		out = append(out, byRank[r]...)
	}
	return out
}
