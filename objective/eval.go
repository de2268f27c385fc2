package objective

import (
	"github.com/go-minipart/minipart/hypergraph"
	"github.com/go-minipart/minipart/solution"
)

// Eval computes the objective vector for tag from scratch, using only
// hg's batch metrics -- independent of any incremental bookkeeping.
// This is the oracle spec.md §8 invariants 1 and 2 check the
// incremental evaluators against, and it is also how
// blackbox.Optimizer performs its final batch evaluate of the pool.
func Eval(tag Tag, hg *hypergraph.Hypergraph, sol *solution.Solution) Vector {
	switch tag {
	case Cut:
		return Vector{hg.SumOverflow(sol), hg.Cut(sol), hg.Soed(sol)}
	case Soed:
		return Vector{hg.SumOverflow(sol), hg.Soed(sol)}
	case MaxDegree:
		return Vector{hg.SumOverflow(sol), hg.MaxDegree(sol), hg.Soed(sol)}
	case DaisyChainDistance:
		return Vector{hg.SumOverflow(sol), hg.DaisyChainDistance(sol), hg.Soed(sol)}
	case DaisyChainMaxDegree:
		return Vector{hg.SumOverflow(sol), hg.DaisyChainMaxDegree(sol), hg.DaisyChainDistance(sol)}
	case RatioCut:
		return Vector{hg.EmptyPartitions(sol), hg.RatioCut(sol), hg.Cut(sol), hg.Soed(sol)}
	case RatioSoed:
		return Vector{hg.EmptyPartitions(sol), hg.RatioSoed(sol), hg.Soed(sol)}
	case RatioMaxDegree:
		return Vector{hg.EmptyPartitions(sol), hg.RatioMaxDegree(sol), hg.Soed(sol)}
	default:
		panic("objective: unhandled tag in Eval")
	}
}

// Len returns the number of components Eval and every IncrementalObjective
// for tag produce, so callers can size buffers without constructing a
// vector first.
func (t Tag) Len() int {
	switch t {
	case Cut:
		return 3
	case Soed:
		return 2
	case MaxDegree:
		return 3
	case DaisyChainDistance:
		return 3
	case DaisyChainMaxDegree:
		return 3
	case RatioCut:
		return 4
	case RatioSoed:
		return 3
	case RatioMaxDegree:
		return 3
	default:
		return 0
	}
}
