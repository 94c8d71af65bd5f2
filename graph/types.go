// Package graph implements the in-memory representation shared by the PT,
// FBA and SAHA cores: vertices, edges, the QBlock/XBlock partition
// structures used by Paige-Tarjan style refinement, and the SCC type the
// rank engine decorates.
//
// Vertices and edges are created once, during graph construction, and live
// for the whole computation (see spec §3 "Lifetimes"). QBlocks and XBlocks
// are created and destroyed by refinement; a merged-away QBlock is marked
// Deteached rather than freed, since callers may still hold a reference to
// it mid-pass.
//
// The package is not safe for concurrent use: per spec §5 the core runs
// single-threaded, and every transient flag (Visited, AllowVisit,
// InSecondSplitter, TriedMerge) is owned by exactly one in-flight pass at a
// time.
package graph

import (
	"errors"
	"strconv"
)

// Sentinel errors for graph construction and mutation.
var (
	// ErrNonContiguousLabels indicates the vertex set is not the contiguous
	// range [0, n).
	ErrNonContiguousLabels = errors.New("graph: vertex labels must be a contiguous range [0, n)")

	// ErrEdgeEndpointMissing indicates AddEdge or NewWithPartition was
	// given a label outside the vertex range.
	ErrEdgeEndpointMissing = errors.New("graph: edge endpoint outside vertex range")

	// ErrInitialPartitionOverlap indicates the supplied initial partition
	// is not a partition of [0, n) (a label appears twice, or not at all).
	ErrInitialPartitionOverlap = errors.New("graph: initial partition must cover [0, n) exactly once")
)

// Rank is an element of ℤ ∪ {-∞} (spec §3 "Rank"). RankNegInf represents -∞.
// Use Successor instead of adding 1 directly: a well-founded vertex always
// has a finite rank (propagate_wf never calls Successor on -∞), but callers
// computing the rank of a non-well-founded successor must route through
// Successor to avoid silently incrementing the sentinel.
type Rank int64

// RankNegInf is the rank assigned to a non-well-founded leaf SCC.
const RankNegInf Rank = -1 << 62

// Successor returns r+1, or RankNegInf if r is already RankNegInf.
func (r Rank) Successor() Rank {
	if r == RankNegInf {
		return RankNegInf
	}
	return r + 1
}

// Count holds the value of count(vertex, S) = |E({vertex}) ∩ S| for some
// XBlock S (spec §3 "Edge"). Every outgoing edge of a vertex that targets
// the same XBlock aliases the same *Count, so moving a single edge between
// blocks updates every observer in O(1) by mutating Value through that one
// alias.
type Count struct {
	Value int
}

// Vertex is a node of the graph (spec §3 "Vertex").
type Vertex struct {
	// Label is the vertex's current integer label. It is mutated by
	// ScaleLabel/BackToOriginalLabel while a sub-partition is handed to the
	// PT kernel, and restored afterwards.
	Label int

	// OriginalLabel is the immutable label assigned at construction.
	OriginalLabel int

	// QBlock is the block currently containing this vertex. A vertex
	// collapsed away by FBA (QBlock.SoftRemoveVertex) keeps pointing at the
	// block it was collapsed into.
	QBlock *QBlock

	// SCC is the strongly connected component containing this vertex.
	SCC *SCC

	// Image is the ordered list of outgoing edges.
	Image []*Edge

	// Counterimage is the ordered list of incoming edges.
	Counterimage []*Edge

	// InitialPartitionID tags this vertex's membership in the caller's
	// initial partition; two vertices with different ids may never share a
	// block (spec §3 "Initial-partition id").
	InitialPartitionID int

	// Visited, InSecondSplitter, AllowVisit are transient flags: every
	// routine that sets one must clear it before returning control (spec
	// §5 "Shared-resource policy").
	Visited          bool
	InSecondSplitter bool
	AllowVisit       bool

	// OldQBlock remembers, during SAHA's merge-split phase, which QBlock a
	// vertex belonged to before the restricted PT pass, so the driver can
	// tell whether the pass actually moved it.
	OldQBlock *QBlock

	// prev/next form the intrusive doubly-linked list of QBlock.vertices;
	// see qblock.go.
	prev, next *Vertex

	// restoreImage/restoreCounterimage/restoreCount hold the pre-restriction
	// image/counterimage/count while RestrictToSubgraph or
	// RestrictToAllowedSubgraph is in effect; BackToOriginalGraph swaps
	// them back.
	restoreImage        []*Edge
	restoreCounterimage []*Edge
	restoreCount        *Count
	restricted          bool
}

// Rank returns the rank of the SCC containing v.
func (v *Vertex) Rank() Rank { return v.SCC.Rank() }

// WF reports whether v's SCC is well-founded.
func (v *Vertex) WF() bool { return v.SCC.WF() }

// SetRank sets the rank of v's SCC (propagation routines update the whole
// SCC in one place, since rank is an SCC-level property shared by every
// member vertex).
func (v *Vertex) SetRank(r Rank) { v.SCC.SetRank(r) }

// SetWF sets the well-foundedness of v's SCC.
func (v *Vertex) SetWF(wf bool) { v.SCC.SetWF(wf) }

func (v *Vertex) String() string { return "V" + strconv.Itoa(v.Label) }

// Edge is a directed (source, destination) pair sharing a Count with every
// sibling edge out of the same source into the same current XBlock (spec §3
// "Edge").
type Edge struct {
	Source      *Vertex
	Destination *Vertex
	Count       *Count
}

func (e *Edge) String() string { return "<" + e.Source.String() + "," + e.Destination.String() + ">" }
