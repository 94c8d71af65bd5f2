package graph

// QBlock is a block of the current partition (spec §3 "QBlock"): an
// intrusive doubly-linked list of member vertices with O(1)
// splice/append/remove, per the re-architecture hint in spec §9 ("do not
// use naive array-of-pointers with linear removal").
type QBlock struct {
	head, tail *Vertex
	size       int

	// SplitHelper is the auxiliary block created on first use during a
	// split; cleared once the split finishes re-inserting its members.
	SplitHelper *QBlock

	// xblock is the enclosing XBlock, or nil if the block is not in one
	// (XBlock.RemoveQBlock clears it).
	xblock *XBlock

	// xbPrev/xbNext link this QBlock into its XBlock's intrusive list.
	xbPrev, xbNext *QBlock

	// Deteached marks a block absorbed by Merge; skipped by every
	// iteration from then on.
	Deteached bool

	// TriedMerge is SAHA's per-pass marker that a merge was already
	// attempted for this block.
	TriedMerge bool

	// Visited is a transient flag used by SAHA's merge-split phase to mark
	// blocks it has already scanned.
	Visited bool
}

// NewQBlock builds a QBlock containing vertices, appending it to xb (unless
// xb is nil).
func NewQBlock(vertices []*Vertex, xb *XBlock) *QBlock {
	qb := &QBlock{}
	for _, v := range vertices {
		qb.AppendVertex(v)
	}
	if xb != nil {
		xb.AppendQBlock(qb)
	}
	return qb
}

// Size returns the number of member vertices.
func (qb *QBlock) Size() int { return qb.size }

// XBlock returns the enclosing XBlock, or nil.
func (qb *QBlock) XBlock() *XBlock { return qb.xblock }

// Rank returns the rank shared by every member vertex, or RankNegInf if the
// block is empty (callers must not rely on the empty case; by construction
// every live QBlock has at least one member).
func (qb *QBlock) Rank() Rank {
	if qb.head == nil {
		return RankNegInf
	}
	return qb.head.Rank()
}

// InitialPartitionID returns the initial-partition id shared by every
// member vertex, and false if the block is empty.
func (qb *QBlock) InitialPartitionID() (int, bool) {
	if qb.head == nil {
		return 0, false
	}
	return qb.head.InitialPartitionID, true
}

// Vertices returns the member vertices in list order. The returned slice is
// a fresh copy; callers needing to iterate while mutating membership should
// use ForEach instead.
func (qb *QBlock) Vertices() []*Vertex {
	out := make([]*Vertex, 0, qb.size)
	for v := qb.head; v != nil; v = v.next {
		out = append(out, v)
	}
	return out
}

// ForEach calls fn for every member vertex, in list order. fn must not
// remove vertices from qb during iteration (take a snapshot via Vertices
// first if it needs to).
func (qb *QBlock) ForEach(fn func(*Vertex)) {
	for v := qb.head; v != nil; v = v.next {
		fn(v)
	}
}

// AppendVertex adds v as the new tail member of qb. O(1).
func (qb *QBlock) AppendVertex(v *Vertex) {
	v.prev = qb.tail
	v.next = nil
	if qb.tail != nil {
		qb.tail.next = v
	} else {
		qb.head = v
	}
	qb.tail = v
	qb.size++
	v.QBlock = qb
}

// RemoveVertex splices v out of qb. O(1). Panics if v is not a member of qb
// (an invariant violation, per spec §7 kind 2).
func (qb *QBlock) RemoveVertex(v *Vertex) {
	if v.QBlock != qb {
		panic("graph: RemoveVertex: vertex is not a member of this QBlock")
	}
	if v.prev != nil {
		v.prev.next = v.next
	} else {
		qb.head = v.next
	}
	if v.next != nil {
		v.next.prev = v.prev
	} else {
		qb.tail = v.prev
	}
	v.prev, v.next = nil, nil
	v.QBlock = nil
	qb.size--
}

// SoftRemoveVertex splices v out of qb's list, like RemoveVertex, but leaves
// v.QBlock pointing at qb instead of clearing it. Used by FBA's collapse,
// which folds v's equivalence class into qb's surviving representative: v no
// longer iterates as a member of qb, but v.QBlock must keep resolving to qb,
// since anything reached through v later (a counterimage edge, a SAHA
// lookup) needs to see v's current block, not a dangling nil (original's
// collapse never resets a removed vertex's qblock pointer either).
func (qb *QBlock) SoftRemoveVertex(v *Vertex) {
	if v.QBlock != qb {
		panic("graph: SoftRemoveVertex: vertex is not a member of this QBlock")
	}
	if v.prev != nil {
		v.prev.next = v.next
	} else {
		qb.head = v.next
	}
	if v.next != nil {
		v.next.prev = v.prev
	} else {
		qb.tail = v.prev
	}
	v.prev, v.next = nil, nil
	qb.size--
}

// InitializeSplitHelper creates an empty sibling block to receive vertices
// pulled out of qb during a split, if one doesn't already exist.
func (qb *QBlock) InitializeSplitHelper() *QBlock {
	if qb.SplitHelper == nil {
		qb.SplitHelper = NewQBlock(nil, qb.xblock)
	}
	return qb.SplitHelper
}

// ResetSplitHelper clears the split-helper slot without touching its
// contents (the caller has already re-inserted them into the partition).
func (qb *QBlock) ResetSplitHelper() { qb.SplitHelper = nil }

// Merge absorbs other's members into qb and marks other Deteached. O(size
// of other).
func (qb *QBlock) Merge(other *QBlock) {
	for v := other.head; v != nil; {
		next := v.next
		other.RemoveVertex(v)
		qb.AppendVertex(v)
		v = next
	}
	other.Deteached = true
}

// FastMitosis extracts the given vertices (which must all be members of qb)
// into a freshly created sibling QBlock in the same XBlock, preserving O(1)
// amortised cost per extracted vertex.
func (qb *QBlock) FastMitosis(extract []*Vertex) *QBlock {
	newBlock := NewQBlock(nil, qb.xblock)
	for _, v := range extract {
		qb.RemoveVertex(v)
		newBlock.AppendVertex(v)
	}
	return newBlock
}
