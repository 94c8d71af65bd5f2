package graph

// XBlock is a coarser block used by the PT kernel (spec §3 "XBlock"): an
// intrusive doubly-linked list of QBlocks whose union equals the XBlock.
// PT refines the partition until every XBlock holds a single QBlock.
type XBlock struct {
	head, tail *QBlock
	size       int
}

// NewXBlock returns an empty XBlock.
func NewXBlock() *XBlock { return &XBlock{} }

// Size returns the number of member QBlocks.
func (xb *XBlock) Size() int { return xb.size }

// QBlocks returns the member QBlocks in list order.
func (xb *XBlock) QBlocks() []*QBlock {
	out := make([]*QBlock, 0, xb.size)
	for qb := xb.head; qb != nil; qb = qb.xbNext {
		out = append(out, qb)
	}
	return out
}

// First and Second return the first two member QBlocks (nil if absent),
// used by the PT kernel to pick a splitter (spec §4.C step 1).
func (xb *XBlock) First() *QBlock { return xb.head }

// Second returns the QBlock following First, or nil.
func (xb *XBlock) Second() *QBlock {
	if xb.head == nil {
		return nil
	}
	return xb.head.xbNext
}

// AppendQBlock adds qb as the new tail member of xb. O(1).
func (xb *XBlock) AppendQBlock(qb *QBlock) {
	qb.xbPrev = xb.tail
	qb.xbNext = nil
	if xb.tail != nil {
		xb.tail.xbNext = qb
	} else {
		xb.head = qb
	}
	xb.tail = qb
	xb.size++
	qb.xblock = xb
}

// RemoveQBlock splices qb out of xb. O(1).
func (xb *XBlock) RemoveQBlock(qb *QBlock) {
	if qb.xblock != xb {
		panic("graph: RemoveQBlock: block is not a member of this XBlock")
	}
	if qb.xbPrev != nil {
		qb.xbPrev.xbNext = qb.xbNext
	} else {
		xb.head = qb.xbNext
	}
	if qb.xbNext != nil {
		qb.xbNext.xbPrev = qb.xbPrev
	} else {
		xb.tail = qb.xbPrev
	}
	qb.xbPrev, qb.xbNext = nil, nil
	qb.xblock = nil
	xb.size--
}
