package graph

// Graph is the in-memory representation consumed by the rank engine, the PT
// kernel, FBA and SAHA (spec §4.A "Graph Model"). Its vertex set is always
// the contiguous range [0, n) (spec §6 "External interfaces").
type Graph struct {
	vertices []*Vertex

	sccByID   map[int]*SCC
	nextSCCID int
}

// New builds a Graph with n vertices and no edges, all sharing a single
// initial-partition id (the caller supplied no initial partition).
func New(n int) *Graph {
	g := &Graph{sccByID: make(map[int]*SCC)}
	g.vertices = make([]*Vertex, n)
	for i := 0; i < n; i++ {
		g.vertices[i] = &Vertex{Label: i, OriginalLabel: i}
	}
	return g
}

// NewWithPartition builds a Graph with n vertices and no edges, tagging each
// vertex with the index of the block of initialPartition it belongs to.
// initialPartition must be a partition of [0, n): every label in [0, n)
// must appear in exactly one block.
func NewWithPartition(n int, initialPartition [][]int) (*Graph, error) {
	g := New(n)
	seen := make([]bool, n)
	for blockID, block := range initialPartition {
		for _, label := range block {
			if label < 0 || label >= n {
				return nil, ErrEdgeEndpointMissing
			}
			if seen[label] {
				return nil, ErrInitialPartitionOverlap
			}
			seen[label] = true
			g.vertices[label].InitialPartitionID = blockID
		}
	}
	for _, ok := range seen {
		if !ok {
			return nil, ErrInitialPartitionOverlap
		}
	}
	return g, nil
}

// N returns the number of vertices.
func (g *Graph) N() int { return len(g.vertices) }

// Vertex returns the vertex with the given original label.
func (g *Graph) Vertex(label int) *Vertex {
	if label < 0 || label >= len(g.vertices) {
		return nil
	}
	return g.vertices[label]
}

// Vertices returns every vertex, indexed by original label.
func (g *Graph) Vertices() []*Vertex { return g.vertices }

// NewSCC allocates and registers a fresh SCC on g (exported so the rank
// engine, which lives in a separate package, can build SCCs during
// Kosaraju's algorithm).
func (g *Graph) NewSCC() *SCC { return NewSCC(g) }

// SCCByID looks up a previously allocated SCC by id.
func (g *Graph) SCCByID(id int) *SCC { return g.sccByID[id] }

// SCCs returns every registered SCC, in allocation order, excluding ones
// with no member vertices.
func (g *Graph) SCCs() []*SCC {
	out := make([]*SCC, 0, len(g.sccByID))
	for id := 0; id < g.nextSCCID; id++ {
		if scc, ok := g.sccByID[id]; ok && len(scc.vertices) > 0 {
			out = append(out, scc)
		}
	}
	return out
}

// ResetSCCs discards every registered SCC and clears each vertex's SCC
// pointer, so the rank engine can rebuild the decomposition from scratch
// (spec §4.F: a new edge can merge two SCCs into one, which Kosaraju's
// algorithm must rediscover rather than patch in place).
func (g *Graph) ResetSCCs() {
	g.sccByID = make(map[int]*SCC)
	g.nextSCCID = 0
	for _, v := range g.vertices {
		v.SCC = nil
	}
}
