// Package localsearch implements the budget-weighted move dispatcher
// of spec.md §4.5: a fixed move budget is split across the move
// library and spent by weighted-random dispatch until exhausted, a
// single-threaded cooperative scheduling discipline (spec.md §5) with
// no move ever preempted mid-application.
package localsearch

import (
	"math/rand"

	"github.com/go-minipart/minipart/hypergraph"
	"github.com/go-minipart/minipart/move"
	"github.com/go-minipart/minipart/objective"
	"github.com/go-minipart/minipart/solution"
)

// category pairs a move with its remaining budget share.
type category struct {
	mv     move.Move
	budget int64
}

// Optimizer runs weighted-random move dispatch until every category's
// budget is exhausted.
type Optimizer struct {
	categories []*category
}

// MovesPerElement is the default budget scale factor: target_count =
// moves_per_element * n_nodes * (n_blocks - 1).
const MovesPerElement = 8.0

// New builds an Optimizer with the target move budget split
// 0.1/0.1/0.1/0.7 across MoveRandomBlock, Swap, EdgeMove, and
// AbsorptionPass, per spec.md §4.5.
func New(hg *hypergraph.Hypergraph, movesPerElement float64) *Optimizer {
	target := int64(movesPerElement * float64(hg.NNodes()) * float64(hg.NBlocks()-1))
	if target < 0 {
		target = 0
	}
	return &Optimizer{
		categories: []*category{
			{mv: move.MoveRandomBlock{}, budget: int64(0.1 * float64(target))},
			{mv: move.Swap{}, budget: int64(0.1 * float64(target))},
			{mv: move.EdgeMove{}, budget: int64(0.1 * float64(target))},
			{mv: &move.AbsorptionPass{}, budget: int64(0.7 * float64(target))},
		},
	}
}

// Run dispatches moves, weighted by each category's remaining budget,
// until every category's budget has been spent, and returns the total
// cost spent across every dispatched move (the sum of each Move.Run's
// return value) so a caller can track how many moves were applied.
func (o *Optimizer) Run(rng *rand.Rand, hg *hypergraph.Hypergraph, inc objective.IncrementalObjective, sol *solution.Solution) int64 {
	var totalSpent int64
	for {
		total := int64(0)
		for _, c := range o.categories {
			if c.budget > 0 {
				total += c.budget
			}
		}
		if total <= 0 {
			return totalSpent
		}
		pick := int64(rng.Int63n(total))
		var chosen *category
		for _, c := range o.categories {
			if c.budget <= 0 {
				continue
			}
			if pick < c.budget {
				chosen = c
				break
			}
			pick -= c.budget
		}
		if chosen == nil {
			return totalSpent
		}
		spent := chosen.mv.Run(rng, hg, inc, sol)
		chosen.budget -= spent
		totalSpent += spent
	}
}
