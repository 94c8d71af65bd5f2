package graph

// AddEdge creates a directed edge from u to v and links it into both
// vertices' image/counterimage lists.
//
// Count aliasing (spec §3 "Edge", restored from the original's add_edge):
// if u already has at least one outgoing edge, the new edge reuses
// u.Image[0].Count — the shared counter for "edges out of u into the
// current XBlock" — incrementing it by one; otherwise a fresh Count of
// value 1 is allocated. This is only correct immediately after
// construction, while every edge out of u still targets the same (single)
// initial XBlock; once PT begins splitting, count maintenance is the
// kernel's job (see pt package), not AddEdge's.
func (g *Graph) AddEdge(u, v int) error {
	source := g.Vertex(u)
	dest := g.Vertex(v)
	if source == nil || dest == nil {
		return ErrEdgeEndpointMissing
	}
	AddEdgeVertices(source, dest)
	return nil
}

// AddEdgeVertices is like AddEdge but takes already-resolved Vertex
// pointers (used by SAHA, which always already holds them).
func AddEdgeVertices(source, dest *Vertex) *Edge {
	e := &Edge{Source: source, Destination: dest}
	if len(source.Image) > 0 {
		e.Count = source.Image[0].Count
	} else {
		e.Count = &Count{}
	}
	e.Count.Value++
	source.Image = append(source.Image, e)
	dest.Counterimage = append(dest.Counterimage, e)
	return e
}

// ScaleLabel temporarily renumbers v to a dense label so the PT kernel,
// which indexes by label, can operate on a sub-partition.
func (v *Vertex) ScaleLabel(scaled int) { v.Label = scaled }

// BackToOriginalLabel restores v's original label after a scaled pass.
func (v *Vertex) BackToOriginalLabel() { v.Label = v.OriginalLabel }

// RestrictToSubgraph temporarily replaces v's image/counterimage with the
// subset whose endpoint has the same rank as v (spec §4.A), so FBA can hand
// a single rank-slice to the PT kernel without it seeing cross-rank edges.
// Must be reversed by BackToOriginalGraph before v is used outside the
// restricted context.
func (v *Vertex) RestrictToSubgraph() {
	if v.restricted {
		panic("graph: RestrictToSubgraph: vertex is already restricted")
	}
	v.restoreImage = v.Image
	v.restoreCounterimage = v.Counterimage
	v.restricted = true

	v.Image = nil
	count := &Count{}
	for _, e := range v.restoreImage {
		if e.Destination.Rank() == v.Rank() {
			v.Image = append(v.Image, e)
			e.Count = count
			count.Value++
		}
	}

	v.Counterimage = nil
	for _, e := range v.restoreCounterimage {
		if e.Source.Rank() == v.Rank() {
			v.Counterimage = append(v.Counterimage, e)
		}
	}
}

// RestrictToAllowedSubgraph temporarily replaces v's image/counterimage
// with the subset whose endpoint has AllowVisit set (spec §4.A), used by
// SAHA's merge-split phase to confine the restricted PT pass to the block
// set X. Must be reversed by BackToOriginalGraph.
func (v *Vertex) RestrictToAllowedSubgraph() {
	if v.restricted {
		panic("graph: RestrictToAllowedSubgraph: vertex is already restricted")
	}
	v.restoreImage = v.Image
	v.restoreCounterimage = v.Counterimage
	v.restricted = true

	v.Image = nil
	var firstOriginalCount *Count
	count := &Count{}
	for _, e := range v.restoreImage {
		if e.Destination.AllowVisit {
			v.Image = append(v.Image, e)
			if firstOriginalCount == nil {
				firstOriginalCount = e.Count
			}
			e.Count = count
			count.Value++
		}
	}
	v.restoreCount = firstOriginalCount

	v.Counterimage = nil
	for _, e := range v.restoreCounterimage {
		if e.Source.AllowVisit {
			v.Counterimage = append(v.Counterimage, e)
		}
	}
}

// BackToOriginalGraph undoes RestrictToSubgraph/RestrictToAllowedSubgraph,
// restoring v's original image/counterimage and, for the allowed-subgraph
// variant, the Count each restricted edge aliased before restriction.
func (v *Vertex) BackToOriginalGraph() {
	if !v.restricted {
		panic("graph: BackToOriginalGraph: vertex is not restricted")
	}
	if v.restoreCount != nil {
		for _, e := range v.Image {
			e.Count = v.restoreCount
		}
	}
	v.Image = v.restoreImage
	v.Counterimage = v.restoreCounterimage
	v.restoreImage = nil
	v.restoreCounterimage = nil
	v.restoreCount = nil
	v.restricted = false
}
