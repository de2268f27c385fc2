package hypergraph

import (
	"gonum.org/v1/gonum/stat"

	"github.com/go-minipart/minipart/solution"
)

// This file implements the batch metrics of spec.md §4.1: full
// recomputations from a Hypergraph and a Solution, used as the
// independent oracle that objective.Eval and the incremental
// objectives' debug consistency checks are verified against.

// PartitionUsage returns, for each block, the sum of node weights
// assigned to it (the "demand").
func (h *Hypergraph) PartitionUsage(sol *solution.Solution) []int64 {
	usage := make([]int64, h.nBlocks)
	for v := Index(0); v < h.nNodes; v++ {
		usage[sol.Get(v)] += h.nodeWeight[v]
	}
	return usage
}

// hedgeBlockSpan returns, for hyperedge e, the number of distinct
// blocks its pins occupy (its degree lambda(e)), along with the
// minimum and maximum block index touched.
func (h *Hypergraph) hedgeBlockSpan(sol *solution.Solution, e Index) (degree int32, lo, hi Index) {
	pins := h.HedgeNodes(e)
	seen := make(map[Index]bool, len(pins))
	first := true
	for _, v := range pins {
		b := sol.Get(v)
		if !seen[b] {
			seen[b] = true
			degree++
			if first || b < lo {
				lo = b
			}
			if first || b > hi {
				hi = b
			}
			first = false
		}
	}
	return degree, lo, hi
}

// Cut returns the sum of hyperedge weights for every hyperedge whose
// pins span more than one block.
func (h *Hypergraph) Cut(sol *solution.Solution) int64 {
	var total int64
	for e := Index(0); e < h.nHedges; e++ {
		degree, _, _ := h.hedgeBlockSpan(sol, e)
		if degree > 1 {
			total += h.hedgeWeight[e]
		}
	}
	return total
}

// Soed returns the sum-of-external-degrees metric: for every
// hyperedge, its weight times the number of blocks it spans (an uncut
// hyperedge spans exactly one block and so still contributes its
// weight once).
func (h *Hypergraph) Soed(sol *solution.Solution) int64 {
	var total int64
	for e := Index(0); e < h.nHedges; e++ {
		degree, _, _ := h.hedgeBlockSpan(sol, e)
		total += h.hedgeWeight[e] * int64(degree)
	}
	return total
}

// TotalHedgeWeight returns the sum of every hyperedge's weight.
func (h *Hypergraph) TotalHedgeWeight() int64 {
	var total int64
	for _, w := range h.hedgeWeight {
		total += w
	}
	return total
}

// Connectivity returns the lambda-1 metric (glossary: "Connectivity:
// Sum_e w(e)*(lambda(e)-1) = SOED - total hedge weight"), distinct from
// the "soed" objective that the CLI's "connectivity" flag value aliases
// (spec.md §6 aliases the objective tag, not this reporting metric).
func (h *Hypergraph) Connectivity(sol *solution.Solution) int64 {
	return h.Soed(sol) - h.TotalHedgeWeight()
}

// PartitionDegree returns, for each block, the sum of hyperedge weights
// over hyperedges that are cut (span more than one block) and touch
// that block (glossary: "Max-degree: max over blocks of Sum of w(e)
// for cut hyperedges touching that block").
func (h *Hypergraph) PartitionDegree(sol *solution.Solution) []int64 {
	deg := make([]int64, h.nBlocks)
	touched := make(map[Index]bool, 8)
	for e := Index(0); e < h.nHedges; e++ {
		degree, _, _ := h.hedgeBlockSpan(sol, e)
		if degree <= 1 {
			continue
		}
		for k := range touched {
			delete(touched, k)
		}
		for _, v := range h.HedgeNodes(e) {
			b := sol.Get(v)
			if !touched[b] {
				touched[b] = true
				deg[b] += h.hedgeWeight[e]
			}
		}
	}
	return deg
}

// MaxDegree returns the maximum, over blocks, of PartitionDegree.
func (h *Hypergraph) MaxDegree(sol *solution.Solution) int64 {
	deg := h.PartitionDegree(sol)
	var max int64
	for _, d := range deg {
		if d > max {
			max = d
		}
	}
	return max
}

// DaisyChainDistance returns, summed over cut hyperedges, the
// (highest block index - lowest block index) weighted by hyperedge
// weight -- the cost of routing a daisy-chain topology's signal
// through every intermediate block.
func (h *Hypergraph) DaisyChainDistance(sol *solution.Solution) int64 {
	var total int64
	for e := Index(0); e < h.nHedges; e++ {
		degree, lo, hi := h.hedgeBlockSpan(sol, e)
		if degree > 1 {
			total += h.hedgeWeight[e] * int64(hi-lo)
		}
	}
	return total
}

// PartitionDaisyChainDegree returns, for each block, the daisy-chain
// degree contribution: a cut hyperedge increments its two endpoint
// blocks (lowest and highest block index it touches) by its weight,
// and every intermediate block it passes through -- whether or not it
// has a pin there -- by twice its weight, reflecting that the chain
// both enters and leaves that block.
func (h *Hypergraph) PartitionDaisyChainDegree(sol *solution.Solution) []int64 {
	deg := make([]int64, h.nBlocks)
	for e := Index(0); e < h.nHedges; e++ {
		degree, lo, hi := h.hedgeBlockSpan(sol, e)
		if degree <= 1 {
			continue
		}
		w := h.hedgeWeight[e]
		for b := lo; b <= hi; b++ {
			if b == lo || b == hi {
				deg[b] += w
			} else {
				deg[b] += 2 * w
			}
		}
	}
	return deg
}

// DaisyChainMaxDegree returns the maximum, over blocks, of
// PartitionDaisyChainDegree.
func (h *Hypergraph) DaisyChainMaxDegree(sol *solution.Solution) int64 {
	deg := h.PartitionDaisyChainDegree(sol)
	var max int64
	for _, d := range deg {
		if d > max {
			max = d
		}
	}
	return max
}

// SumOverflow returns sum(max(0, demand(b) - capacity(b))) over all
// blocks: the total amount by which blocks exceed their assigned
// capacity. This is the corrected definition (demand minus capacity);
// see DESIGN.md's Open Question entry for the self-subtraction bug in
// the reference implementation this corrects.
func (h *Hypergraph) SumOverflow(sol *solution.Solution) int64 {
	usage := h.PartitionUsage(sol)
	var total int64
	for b := Index(0); b < h.nBlocks; b++ {
		if over := usage[b] - h.blockCapacity[b]; over > 0 {
			total += over
		}
	}
	return total
}

// EmptyPartitions returns the number of blocks with zero demand.
func (h *Hypergraph) EmptyPartitions(sol *solution.Solution) int64 {
	usage := h.PartitionUsage(sol)
	var n int64
	for _, u := range usage {
		if u == 0 {
			n++
		}
	}
	return n
}

// RatioPenalty returns 1/geomean(usage_b/(total/K))^2 (glossary: "ratio
// penalty"), the geometric mean taken over blocks with nonzero usage --
// a zero usage_b would send the product (and so the penalty) to
// infinity, which the leading empty-partition term of every ratio
// objective vector already penalizes, so empty blocks are simply
// excluded from the product here rather than represented as an
// infinite float. A partition with every block at exactly the mean
// usage total/K has a penalty of 1; skew away from it increases it.
func (h *Hypergraph) RatioPenalty(sol *solution.Solution) float64 {
	usage := h.PartitionUsage(sol)
	var sum int64
	var nonEmpty int
	for _, u := range usage {
		if u > 0 {
			sum += u
			nonEmpty++
		}
	}
	if nonEmpty == 0 {
		return 1
	}
	mean := float64(sum) / float64(h.nBlocks)
	ratios := make([]float64, 0, nonEmpty)
	for _, u := range usage {
		if u > 0 {
			ratios = append(ratios, float64(u)/mean)
		}
	}
	weights := make([]float64, len(ratios))
	for i := range weights {
		weights[i] = 1
	}
	gm := stat.GeometricMean(ratios, weights)
	if gm <= 0 {
		return 1
	}
	return 1 / (gm * gm)
}

// RatioCut returns floor(100 * Cut * RatioPenalty).
func (h *Hypergraph) RatioCut(sol *solution.Solution) int64 {
	return int64(100.0 * float64(h.Cut(sol)) * h.RatioPenalty(sol))
}

// RatioSoed returns floor(100 * Soed * RatioPenalty).
func (h *Hypergraph) RatioSoed(sol *solution.Solution) int64 {
	return int64(100.0 * float64(h.Soed(sol)) * h.RatioPenalty(sol))
}

// RatioConnectivity returns floor(100 * Connectivity * RatioPenalty),
// the ratio counterpart of Connectivity (not an alias of RatioSoed: the
// two differ by the constant 100*TotalHedgeWeight*RatioPenalty term).
func (h *Hypergraph) RatioConnectivity(sol *solution.Solution) int64 {
	return int64(100.0 * float64(h.Connectivity(sol)) * h.RatioPenalty(sol))
}

// RatioMaxDegree returns floor(100 * MaxDegree * RatioPenalty).
func (h *Hypergraph) RatioMaxDegree(sol *solution.Solution) int64 {
	return int64(100.0 * float64(h.MaxDegree(sol)) * h.RatioPenalty(sol))
}
