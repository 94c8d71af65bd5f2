package rscp

import (
	"github.com/lvlath/rscp/fba"
	"github.com/lvlath/rscp/graph"
	"github.com/lvlath/rscp/saha"
)

// Compute runs FBA (spec §4.D) over g and returns its RSCP flattened to the
// external Block representation. g must already have its edges added via
// graph.Graph.AddEdge.
func Compute(g *graph.Graph) []fba.Block {
	return fba.RSCP(g)
}

// ComputeLive runs FBA over g and returns the live Partition, for callers
// who intend to feed the result into Update as new edges arrive. Use
// Compute instead if only the final set-of-sets is needed.
func ComputeLive(g *graph.Graph) *fba.Partition {
	return fba.Run(g)
}

// Update incrementally repairs partition after a single new edge (u, v) is
// added to g (spec §4.F "SAHA Driver"), without recomputing FBA from
// scratch. g must contain both endpoints; the edge itself is added by
// Update, not by the caller beforehand. When the old partition already
// witnesses the edge, partition is returned unchanged and g is left as it
// was.
func Update(g *graph.Graph, partition *fba.Partition, u, v int) (*fba.Partition, error) {
	return saha.Update(g, partition, u, v)
}

// UpdateAndEmit is Update followed by a flatten to the external Block
// representation, for callers who don't need the live Partition back.
func UpdateAndEmit(g *graph.Graph, partition *fba.Partition, u, v int) ([]fba.Block, error) {
	next, err := saha.Update(g, partition, u, v)
	if err != nil {
		return nil, err
	}
	return fba.Emit(next), nil
}
