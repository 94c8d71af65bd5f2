package graph

import "golang.org/x/tools/container/intsets"

// SCC is a strongly connected component (spec §3 "SCC"). Its image and
// counterimage — sets of *other* SCCs reachable in one hop — are kept as
// intsets.Sparse bitsets of SCC ids rather than map[int]struct{}, so
// membership tests during rank propagation stay O(1) amortised without a
// hand-rolled set type; resolving an id back to its *SCC goes through the
// owning Graph's scc table.
type SCC struct {
	ID       int
	vertices []*Vertex
	graph    *Graph

	rank      Rank
	rankValid bool

	wf      bool
	wfValid bool

	imageIDs        intsets.Sparse
	counterimageIDs intsets.Sparse

	// Visited is transient, used by propagate_nwf to avoid revisiting an
	// SCC within one propagation pass.
	Visited bool
}

// NewSCC allocates an empty SCC registered with g.
func NewSCC(g *Graph) *SCC {
	scc := &SCC{ID: g.nextSCCID, graph: g}
	g.nextSCCID++
	g.sccByID[scc.ID] = scc
	return scc
}

// AddVertex assigns vertex to scc.
func (s *SCC) AddVertex(v *Vertex) {
	s.vertices = append(s.vertices, v)
	v.SCC = s
}

// Vertices returns the member vertices.
func (s *SCC) Vertices() []*Vertex { return s.vertices }

// Rank returns the SCC's rank; callers must have run the rank engine (or
// SetRank) first.
func (s *SCC) Rank() Rank { return s.rank }

// SetRank sets the SCC's rank and marks it valid.
func (s *SCC) SetRank(r Rank) {
	s.rank = r
	s.rankValid = true
}

// RankValid reports whether SetRank/MarkLeaf/MarkSCCLeaf has run on s. Nothing
// resets it; rank.Redecorate replaces the SCCs with fresh ones instead.
func (s *SCC) RankValid() bool { return s.rankValid }

// MarkLeaf marks s as a well-founded sink (rank 0).
func (s *SCC) MarkLeaf() { s.SetRank(0) }

// MarkSCCLeaf marks s as a non-well-founded leaf (rank -∞).
func (s *SCC) MarkSCCLeaf() { s.SetRank(RankNegInf) }

// WF returns the cached well-foundedness flag; callers must have run the
// rank engine (or SetWF) first.
func (s *SCC) WF() bool { return s.wf }

// SetWF sets the well-foundedness flag and marks it valid.
func (s *SCC) SetWF(wf bool) {
	s.wf = wf
	s.wfValid = true
}

// WFValid reports whether SetWF has run since the last invalidation.
func (s *SCC) WFValid() bool { return s.wfValid }

// AddImage records that s has an edge into the SCC identified by id.
func (s *SCC) AddImage(id int) { s.imageIDs.Insert(id) }

// AddCounterimage records that the SCC identified by id has an edge into s.
func (s *SCC) AddCounterimage(id int) { s.counterimageIDs.Insert(id) }

// HasImage reports whether s has a recorded edge into the SCC identified by id.
func (s *SCC) HasImage(id int) bool { return s.imageIDs.Has(id) }

// HasCounterimage reports whether the SCC identified by id has a recorded
// edge into s.
func (s *SCC) HasCounterimage(id int) bool { return s.counterimageIDs.Has(id) }

// Image returns the distinct successor SCCs of s.
func (s *SCC) Image() []*SCC { return s.graph.resolveSCCs(&s.imageIDs) }

// Counterimage returns the distinct predecessor SCCs of s.
func (s *SCC) Counterimage() []*SCC { return s.graph.resolveSCCs(&s.counterimageIDs) }

// ComputeImage rebuilds s's image set from the current edges of its member
// vertices (spec §4.B / original _SCC.compute_image). An edge whose
// destination lies inside s itself is not recorded (self-loops don't
// contribute to the SCC DAG), but it does mark s non-well-founded.
func (s *SCC) ComputeImage() {
	s.imageIDs = intsets.Sparse{}
	for _, v := range s.vertices {
		for _, e := range v.Image {
			if e.Destination.SCC == s {
				s.SetWF(false)
				continue
			}
			s.AddImage(e.Destination.SCC.ID)
		}
	}
}

// ComputeCounterimage rebuilds s's counterimage set from the current edges
// of its member vertices.
func (s *SCC) ComputeCounterimage() {
	s.counterimageIDs = intsets.Sparse{}
	for _, v := range s.vertices {
		for _, e := range v.Counterimage {
			if e.Source.SCC == s {
				continue
			}
			s.AddCounterimage(e.Source.SCC.ID)
		}
	}
}

// resolveSCCs maps a set of SCC ids back to their *SCC pointers via g's
// table.
func (g *Graph) resolveSCCs(ids *intsets.Sparse) []*SCC {
	members := ids.AppendTo(nil)
	out := make([]*SCC, 0, len(members))
	for _, id := range members {
		out = append(out, g.sccByID[id])
	}
	return out
}
