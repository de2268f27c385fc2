// Package move implements the local search move library of spec.md
// §4.4: single-node moves, swaps, hyperedge-directed moves, and a
// stack-based absorption pass, each operating through an
// objective.IncrementalObjective so their cost is bounded by the pins
// touched rather than a full recompute. Every move takes its
// *rand.Rand explicitly, never reading global RNG state, matching
// lvlath/builder/config.go's builderConfig.rng convention.
package move

import (
	"math/rand"

	"github.com/go-minipart/minipart/hypergraph"
	"github.com/go-minipart/minipart/objective"
	"github.com/go-minipart/minipart/solution"
)

const (
	edgeDegreeCutoff = 10
	nodeDegreeCutoff = 10
)

// Move is a single unit of local search: applying it mutates inc (and
// the solution.Solution it owns) and returns the budget it consumed.
type Move interface {
	Run(rng *rand.Rand, hg *hypergraph.Hypergraph, inc objective.IncrementalObjective, sol *solution.Solution) int64
}

// MoveRandomBlock reassigns a single random node to a single random
// block. Cost 1.
type MoveRandomBlock struct{}

func (MoveRandomBlock) Run(rng *rand.Rand, hg *hypergraph.Hypergraph, inc objective.IncrementalObjective, sol *solution.Solution) int64 {
	node := solution.Index(rng.Intn(int(hg.NNodes())))
	to := solution.Index(rng.Intn(int(hg.NBlocks())))
	tryMove(inc, sol, node, to)
	return 1
}

// tryMove applies node -> to and rolls back to the node's prior block
// unless the move strictly improved inc's objective vector. This is
// the "try the move, rollback on no-improvement" contract spec.md
// §4.4 gives every single-shot move.
func tryMove(inc objective.IncrementalObjective, sol *solution.Solution, node, to solution.Index) bool {
	from := sol.Get(node)
	if from == to {
		return false
	}
	before := inc.Objectives().Clone()
	inc.Move(node, to)
	if inc.Objectives().Less(before) {
		return true
	}
	inc.Move(node, from)
	return false
}

// MoveBestBlock evaluates every block for a single random node and
// commits the one yielding the best objective vector. Cost K-1 (every
// non-current block is a trial).
type MoveBestBlock struct{}

func (MoveBestBlock) Run(rng *rand.Rand, hg *hypergraph.Hypergraph, inc objective.IncrementalObjective, sol *solution.Solution) int64 {
	node := solution.Index(rng.Intn(int(hg.NNodes())))
	bestBlockTrial(rng, hg, inc, sol, node)
	return int64(hg.NBlocks() - 1)
}

// bestBlockTrial tries every block for node and leaves it in whichever
// gave the best (lexicographically smallest) objective vector,
// including staying put.
func bestBlockTrial(rng *rand.Rand, hg *hypergraph.Hypergraph, inc objective.IncrementalObjective, sol *solution.Solution, node solution.Index) {
	origin := sol.Get(node)
	best := inc.Objectives().Clone()
	bestBlock := origin

	for b := solution.Index(0); b < hg.NBlocks(); b++ {
		if b == origin {
			continue
		}
		inc.Move(node, b)
		if v := inc.Objectives(); v.Less(best) {
			best = v.Clone()
			bestBlock = b
		}
		inc.Move(node, origin)
	}
	if bestBlock != origin {
		inc.Move(node, bestBlock)
	}
}

// PassRandom applies MoveRandomBlock once per node, in a random order.
// Cost n_nodes.
type PassRandom struct{}

func (PassRandom) Run(rng *rand.Rand, hg *hypergraph.Hypergraph, inc objective.IncrementalObjective, sol *solution.Solution) int64 {
	order := rng.Perm(int(hg.NNodes()))
	for _, v := range order {
		to := solution.Index(rng.Intn(int(hg.NBlocks())))
		tryMove(inc, sol, solution.Index(v), to)
	}
	return int64(hg.NNodes())
}

// PassBest applies MoveBestBlock once per node, in a random order.
// Cost n_nodes * (K-1).
type PassBest struct{}

func (PassBest) Run(rng *rand.Rand, hg *hypergraph.Hypergraph, inc objective.IncrementalObjective, sol *solution.Solution) int64 {
	order := rng.Perm(int(hg.NNodes()))
	for _, v := range order {
		bestBlockTrial(rng, hg, inc, sol, solution.Index(v))
	}
	return int64(hg.NNodes()) * int64(hg.NBlocks()-1)
}

// Swap exchanges the blocks of two distinct random nodes. This is the
// corrected form of the move (see DESIGN.md's Open Question entry): a
// buggy implementation reads the same node's block twice, making the
// move a no-op. Cost 1.
type Swap struct{}

func (Swap) Run(rng *rand.Rand, hg *hypergraph.Hypergraph, inc objective.IncrementalObjective, sol *solution.Solution) int64 {
	if hg.NNodes() < 2 {
		return 1
	}
	n1 := solution.Index(rng.Intn(int(hg.NNodes())))
	n2 := solution.Index(rng.Intn(int(hg.NNodes()) - 1))
	if n2 >= n1 {
		n2++
	}
	b1, b2 := sol.Get(n1), sol.Get(n2)
	if b1 == b2 {
		return 1
	}
	before := inc.Objectives().Clone()
	inc.Move(n1, b2)
	inc.Move(n2, b1)
	if !inc.Objectives().Less(before) {
		inc.Move(n1, b1)
		inc.Move(n2, b2)
	}
	return 1
}

// EdgeMove picks a random hyperedge and folds its pins toward a single
// block, trying to make it uncut. If the hyperedge's pin count exceeds
// edgeDegreeCutoff the move is skipped outright (cost 1); otherwise
// every non-conforming pin is moved (cost = pin count of the
// hyperedge).
type EdgeMove struct{}

func (EdgeMove) Run(rng *rand.Rand, hg *hypergraph.Hypergraph, inc objective.IncrementalObjective, sol *solution.Solution) int64 {
	if hg.NHedges() == 0 {
		return 1
	}
	e := solution.Index(rng.Intn(int(hg.NHedges())))
	pins := hg.HedgeNodes(e)
	if len(pins) == 0 || hg.HedgeDegree(e) > edgeDegreeCutoff {
		return 1
	}
	to := sol.Get(pins[rng.Intn(len(pins))])

	before := inc.Objectives().Clone()
	moved := make([]solution.Index, 0, len(pins))
	from := make([]solution.Index, 0, len(pins))
	for _, v := range pins {
		if f := sol.Get(v); f != to {
			from = append(from, f)
			moved = append(moved, v)
			inc.Move(v, to)
		}
	}
	if !inc.Objectives().Less(before) {
		for i, v := range moved {
			inc.Move(v, from[i])
		}
	}
	return int64(len(pins))
}

// AbsorptionPass performs a stack-based flood fill toward a single
// destination block: it samples dst once, seeds a stack with one
// random node, then repeatedly pops a node and tries moving it to
// dst. On improvement, expansion from that node is skipped outright if
// it has more than nodeDegreeCutoff incident hyperedges; otherwise
// every incident hyperedge with at most edgeDegreeCutoff pins pushes
// its other pins for their own trial (a hyperedge with more pins than
// that is skipped, not truncated). On no improvement the move is
// rolled back. Cost is 1 per pop that improved the objective, and 1
// for a call in which no pop improved it.
type AbsorptionPass struct {
	stack []solution.Index // reused across Run calls to avoid per-call allocation
}

func (a *AbsorptionPass) Run(rng *rand.Rand, hg *hypergraph.Hypergraph, inc objective.IncrementalObjective, sol *solution.Solution) int64 {
	if hg.NNodes() == 0 {
		return 1
	}
	dst := solution.Index(rng.Intn(int(hg.NBlocks())))
	a.stack = a.stack[:0]
	a.stack = append(a.stack, solution.Index(rng.Intn(int(hg.NNodes()))))

	var cost int64
	for len(a.stack) > 0 {
		node := a.stack[len(a.stack)-1]
		a.stack = a.stack[:len(a.stack)-1]

		if !tryMove(inc, sol, node, dst) {
			continue
		}
		cost++

		hedges := hg.NodeHedges(node)
		if len(hedges) > nodeDegreeCutoff {
			continue
		}
		for _, e := range hedges {
			pins := hg.HedgeNodes(e)
			if len(pins) > edgeDegreeCutoff {
				continue
			}
			for _, v := range pins {
				if v != node {
					a.stack = append(a.stack, v)
				}
			}
		}
	}
	if cost == 0 {
		cost = 1
	}
	return cost
}
