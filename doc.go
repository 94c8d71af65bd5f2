// Package rscp computes the Relational Stable Coarsest Partition (RSCP) of a
// finite directed graph: the coarsest partition of its vertex set that is a
// bisimulation.
//
// Three algorithmic cores are provided, each in its own subpackage:
//
//	pt/          — Paige-Tarjan partition refinement, one pass over a single
//	               implicit XBlock.
//	fba/         — the Dovier-Piazza-Policriti fast bisimulation algorithm,
//	               which drives PT one rank-slice at a time.
//	saha/        — incremental RSCP update after a single new edge, without
//	               recomputing from scratch.
//
// These share one in-memory graph representation (graph/) and a rank/SCC
// decorator (rank/) built on Kosaraju's algorithm.
//
// Quick start:
//
//	g := graph.New(4)
//	g.AddEdge(0, 2)
//	g.AddEdge(1, 2)
//	classes := fba.RSCP(g)
//
// The top-level Compute and Update functions are thin wrappers around fba
// and saha respectively; use the subpackages directly for finer control
// (custom initial partitions, pre-decorated graphs, ...).
package rscp
