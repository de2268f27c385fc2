// Package blackbox implements the pool-based V-cycle multilevel solver
// of spec.md §4.6-4.7: a pool of candidate solutions is locally
// searched, then repeatedly coarsened (by the solutions' own mutual
// agreement, not by hyperedge structure alone), recursed into, and
// uncoarsened back, before a final batch-evaluated selection.
package blackbox

import "github.com/go-minipart/minipart/objective"

// Params configures a top-level optimization run.
type Params struct {
	Tag objective.Tag

	Seed int64

	// NSolutions is the pool size maintained at every level.
	NSolutions int
	// NCycles is the number of top-level V-cycles to run.
	NCycles int

	// ImbalanceFactor is passed to hypergraph.SetupBlocks at every
	// level (the original and every coarsened hypergraph alike).
	ImbalanceFactor float64

	// MovesPerElement scales the local search budget; see
	// localsearch.New.
	MovesPerElement float64

	// MinCoarseningFactor and MaxCoarseningFactor bound the
	// acceptable reduction factor n_nodes/n_coarse_nodes a V-cycle
	// level will recurse into.
	MinCoarseningFactor float64
	MaxCoarseningFactor float64

	// MinCoarseningNodes: a level stops recursing once
	// n_nodes < MinCoarseningNodes * n_blocks.
	MinCoarseningNodes int32
}

// DefaultParams returns reasonable defaults matching the CLI's
// documented flag defaults (spec.md §6).
func DefaultParams(tag objective.Tag) Params {
	return Params{
		Tag:                 tag,
		Seed:                1,
		NSolutions:          8,
		NCycles:             3,
		ImbalanceFactor:     0.02,
		MovesPerElement:     8.0,
		MinCoarseningFactor: 1.5,
		MaxCoarseningFactor: 3.0,
		MinCoarseningNodes:  50,
	}
}
