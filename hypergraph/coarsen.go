package hypergraph

import (
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/go-minipart/minipart/errs"
	"github.com/go-minipart/minipart/solution"
)

// Coarsen folds this hypergraph's nodes according to mapping (a
// solution.Solution used as a coarsening map: mapping.Get(v) is the
// coarse node fine node v belongs to, mapping.NParts() the number of
// coarse nodes) and returns the resulting coarse hypergraph.
//
// Preconditions: mapping.NNodes() == h.NNodes(), and mapping.NParts()
// is a contiguous-dense labeling (every value in [0, NParts()) is used
// by at least one fine node) -- violations return
// errs.UnrepresentableError. Coarse node weights are the sum of their
// fine nodes' weights. A hyperedge whose pins collapse to fewer than
// two distinct coarse nodes is dropped. Hyperedges that become
// pin-identical after collapsing are merged by the same bucketing
// MergeParallelHedges uses.
func (h *Hypergraph) Coarsen(mapping *solution.Solution) (*Hypergraph, error) {
	if mapping.NNodes() != h.nNodes {
		return nil, &errs.UnrepresentableError{Reason: fmt.Sprintf(
			"hypergraph: coarsen mapping has %d nodes, want %d", mapping.NNodes(), h.nNodes)}
	}
	nCoarse := mapping.NParts()
	if nCoarse <= 0 {
		return nil, &errs.UnrepresentableError{Reason: "hypergraph: coarsen mapping has non-positive n_parts"}
	}
	used := make([]bool, nCoarse)
	for v := Index(0); v < h.nNodes; v++ {
		used[mapping.Get(v)] = true
	}
	for c, ok := range used {
		if !ok {
			return nil, &errs.UnrepresentableError{Reason: fmt.Sprintf(
				"hypergraph: coarsen mapping is not contiguous-dense: super-node %d has no fine nodes", c)}
		}
	}

	coarseNodeWeight := make([]int64, nCoarse)
	for v := Index(0); v < h.nNodes; v++ {
		coarseNodeWeight[mapping.Get(v)] += h.nodeWeight[v]
	}

	var pinLists [][]Index
	var weights []int64
	scratch := make([]Index, 0, 16)
	for e := Index(0); e < h.nHedges; e++ {
		scratch = scratch[:0]
		for _, v := range h.HedgeNodes(e) {
			scratch = append(scratch, mapping.Get(v))
		}
		sort.Slice(scratch, func(i, j int) bool { return scratch[i] < scratch[j] })
		scratch = dedupSorted(scratch)
		if len(scratch) < 2 {
			continue
		}
		pins := make([]Index, len(scratch))
		copy(pins, scratch)
		pinLists = append(pinLists, pins)
		weights = append(weights, h.hedgeWeight[e])
	}

	pinLists, weights = mergeParallel(pinLists, weights)

	return New(nCoarse, pinLists, coarseNodeWeight, weights)
}

// MergeParallelHedges groups hyperedges with identical sorted pin
// lists, summing their weights and keeping one representative -- the
// standalone form of spec.md §4.1's merge_parallel_hedges operation
// (Coarsen calls the same bucketing internally after folding pins).
func (h *Hypergraph) MergeParallelHedges() (*Hypergraph, error) {
	pinLists := make([][]Index, h.nHedges)
	weights := make([]int64, h.nHedges)
	for e := Index(0); e < h.nHedges; e++ {
		pins := h.HedgeNodes(e)
		cp := make([]Index, len(pins))
		copy(cp, pins)
		pinLists[e] = cp
		weights[e] = h.hedgeWeight[e]
	}
	pinLists, weights = mergeParallel(pinLists, weights)
	return New(h.nNodes, pinLists, h.nodeWeight, weights)
}

// mergeParallel groups pin lists that are identical as sets, summing
// the weights of every hyperedge in a group and keeping one
// representative pin list. Grouping uses an FNV-64 hash over each
// sorted pin list as a bucketing key, with a full slice-equality check
// to guard against hash collisions.
func mergeParallel(pinLists [][]Index, weights []int64) ([][]Index, []int64) {
	type bucket struct {
		pins   []Index
		weight int64
	}
	buckets := make(map[uint64][]*bucket)
	var order []*bucket // first-seen order, so the output is deterministic

	for i, pins := range pinLists {
		h := fnv.New64a()
		for _, v := range pins {
			var b [4]byte
			b[0] = byte(v)
			b[1] = byte(v >> 8)
			b[2] = byte(v >> 16)
			b[3] = byte(v >> 24)
			h.Write(b[:])
		}
		key := h.Sum64()

		var found *bucket
		for _, cand := range buckets[key] {
			if pinSliceEqual(cand.pins, pins) {
				found = cand
				break
			}
		}
		if found != nil {
			found.weight += weights[i]
			continue
		}
		nb := &bucket{pins: pins, weight: weights[i]}
		buckets[key] = append(buckets[key], nb)
		order = append(order, nb)
	}

	var outPins [][]Index
	var outWeights []int64
	for _, b := range order {
		outPins = append(outPins, b.pins)
		outWeights = append(outWeights, b.weight)
	}
	return outPins, outWeights
}

func pinSliceEqual(a, b []Index) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
