// Package rank decorates a graph.Graph with strongly connected components,
// well-foundedness and rank (spec §4.B "Rank & SCC Engine"). It is pure: the
// engine never fails on well-formed input (every label in range, edges
// already validated by graph.Graph.AddEdge).
package rank

import "github.com/lvlath/rscp/graph"

// kosaraju computes the strongly connected components of g via two
// depth-first passes (spec §4.B), and returns them in the order the second
// pass discovers them: by decreasing finishing time of the first (forward)
// pass, i.e. a topological order of the SCC DAG (an SCC comes before the
// SCCs it has edges into). Decorate does not rely on this order; it
// re-sorts with SCCFinishingTimeOrder.
func kosaraju(g *graph.Graph) []*graph.SCC {
	n := g.N()
	visited := make([]bool, n)
	finishOrder := make([]*graph.Vertex, 0, n)

	var visit func(v *graph.Vertex)
	visit = func(v *graph.Vertex) {
		visited[v.OriginalLabel] = true
		for _, e := range v.Image {
			if !visited[e.Destination.OriginalLabel] {
				visit(e.Destination)
			}
		}
		finishOrder = append(finishOrder, v)
	}
	for _, v := range g.Vertices() {
		if !visited[v.OriginalLabel] {
			visit(v)
		}
	}

	// Second pass: walk the counterimage (transpose) graph in decreasing
	// order of finishing time, one SCC per root.
	assigned := make([]bool, n)
	var sccs []*graph.SCC

	var assign func(v *graph.Vertex, scc *graph.SCC)
	assign = func(v *graph.Vertex, scc *graph.SCC) {
		assigned[v.OriginalLabel] = true
		scc.AddVertex(v)
		for _, e := range v.Counterimage {
			if !assigned[e.Source.OriginalLabel] {
				assign(e.Source, scc)
			}
		}
	}
	for i := len(finishOrder) - 1; i >= 0; i-- {
		v := finishOrder[i]
		if !assigned[v.OriginalLabel] {
			scc := g.NewSCC()
			assign(v, scc)
			sccs = append(sccs, scc)
		}
	}
	return sccs
}

// FinishingTimeOrder returns every vertex of g in increasing order of
// finishing time of a forward DFS (spec §4.F "finishing-time-ordered
// vertices", used by SAHA's merge-split phase). It shares the first pass of
// kosaraju but is exposed independently since SAHA needs the vertex-level
// order, not just the SCC-level one.
func FinishingTimeOrder(g *graph.Graph) []*graph.Vertex {
	n := g.N()
	visited := make([]bool, n)
	order := make([]*graph.Vertex, 0, n)

	var visit func(v *graph.Vertex)
	visit = func(v *graph.Vertex) {
		visited[v.OriginalLabel] = true
		for _, e := range v.Image {
			if !visited[e.Destination.OriginalLabel] {
				visit(e.Destination)
			}
		}
		order = append(order, v)
	}
	for _, v := range g.Vertices() {
		if !visited[v.OriginalLabel] {
			visit(v)
		}
	}
	return order
}

// SCCFinishingTimeOrder returns sccs reordered so that every SCC appears
// after the SCCs it has edges into — the reverse-topological order Decorate
// and SAHA's propagate_nwf both walk (spec §4.F "scc_finishing_time_list").
// It is computed directly from the SCC image relation via a DFS over the
// (much smaller) SCC DAG, rather than recomputed from kosaraju's vertex
// order, so it needs only each SCC's current Image set.
func SCCFinishingTimeOrder(sccs []*graph.SCC) []*graph.SCC {
	visited := make(map[int]bool, len(sccs))
	order := make([]*graph.SCC, 0, len(sccs))

	var visit func(s *graph.SCC)
	visit = func(s *graph.SCC) {
		visited[s.ID] = true
		for _, succ := range s.Image() {
			if !visited[succ.ID] {
				visit(succ)
			}
		}
		order = append(order, s)
	}
	for _, s := range sccs {
		if !visited[s.ID] {
			visit(s)
		}
	}
	return order
}
