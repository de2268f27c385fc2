// Package hypergraph implements the immutable CSR-compressed hypergraph
// that every minipart optimizer operates over: nodes and hyperedges
// indexed 0..n, pins stored twice (once per hyperedge, once per node)
// so that both "pins of a hyperedge" and "hyperedges touching a node"
// are O(1)-amortized slice lookups instead of a pointer-chasing
// adjacency structure.
//
// Construction always goes through New, which runs a two-pass
// counting sort to build the node-indexed inversion of the
// caller-supplied hyperedge-indexed pin lists -- the same technique
// lvlath/matrix uses to build its dense adjacency rows from an edge
// list, generalized here to a non-square incidence structure.
package hypergraph

import (
	"fmt"
	"sort"

	"github.com/go-minipart/minipart/errs"
	"github.com/go-minipart/minipart/solution"
)

// Index aliases solution.Index for use as a node/hedge/block/pin index.
type Index = solution.Index

// Hypergraph is an immutable CSR-compressed hypergraph. All exported
// accessors are read-only; a Hypergraph is only ever produced by New,
// Coarsen, or MergeParallelHedges. The one in-place change is
// SetupBlocks, which sets the block count and block capacities; nodes,
// hyperedges and weights are never mutated.
type Hypergraph struct {
	nNodes  Index
	nHedges Index
	nBlocks Index

	// nodeBegin[v]..nodeBegin[v+1] indexes into nodeData, giving the
	// hyperedges incident on node v.
	nodeBegin []int32
	nodeData  []Index

	// hedgeBegin[e]..hedgeBegin[e+1] indexes into hedgeData, giving the
	// sorted, duplicate-free pins of hyperedge e.
	hedgeBegin []int32
	hedgeData  []Index

	nodeWeight  []int64
	hedgeWeight []int64

	blockCapacity []int64 // set by SetupBlocks; nil until then
}

// NNodes, NHedges, NBlocks, NPins report the hypergraph's dimensions.
func (h *Hypergraph) NNodes() Index  { return h.nNodes }
func (h *Hypergraph) NHedges() Index { return h.nHedges }
func (h *Hypergraph) NBlocks() Index { return h.nBlocks }
func (h *Hypergraph) NPins() int     { return len(h.hedgeData) }

// NodeWeight and HedgeWeight return the scalar weight of a node or
// hyperedge.
func (h *Hypergraph) NodeWeight(v Index) int64  { return h.nodeWeight[v] }
func (h *Hypergraph) HedgeWeight(e Index) int64 { return h.hedgeWeight[e] }

// BlockCapacity returns the capacity assigned to block b by
// SetupBlocks. Panics if SetupBlocks has not been called.
func (h *Hypergraph) BlockCapacity(b Index) int64 { return h.blockCapacity[b] }

// HedgeNodes returns the pins of hyperedge e, sorted ascending. The
// returned slice aliases internal storage and must not be modified.
func (h *Hypergraph) HedgeNodes(e Index) []Index {
	return h.hedgeData[h.hedgeBegin[e]:h.hedgeBegin[e+1]]
}

// NodeHedges returns the hyperedges incident on node v. The returned
// slice aliases internal storage and must not be modified.
func (h *Hypergraph) NodeHedges(v Index) []Index {
	return h.nodeData[h.nodeBegin[v]:h.nodeBegin[v+1]]
}

// HedgeDegree returns the number of pins in hyperedge e.
func (h *Hypergraph) HedgeDegree(e Index) int32 {
	return h.hedgeBegin[e+1] - h.hedgeBegin[e]
}

// NodeDegree returns the number of hyperedges incident on node v.
func (h *Hypergraph) NodeDegree(v Index) int32 {
	return h.nodeBegin[v+1] - h.nodeBegin[v]
}

// TotalNodeWeight returns the sum of all node weights.
func (h *Hypergraph) TotalNodeWeight() int64 {
	var total int64
	for _, w := range h.nodeWeight {
		total += w
	}
	return total
}

// New builds a Hypergraph from per-hyperedge pin lists. Stage 1
// (Validate) checks dimensions and pin ranges; Stage 2 (Prepare) sorts
// and dedups each hyperedge's pins; Stage 3 (Execute) runs the
// two-pass counting sort that inverts pins-per-hedge into
// hedges-per-node; Stage 4 (Finalize) assembles the CSR arrays.
//
// nodeWeights and hedgeWeights may be nil, defaulting every weight to 1.
func New(nNodes Index, hedgePins [][]Index, nodeWeights, hedgeWeights []int64) (*Hypergraph, error) {
	// Stage 1: Validate.
	if nNodes < 0 {
		return nil, &errs.InvalidConfigError{Reason: fmt.Sprintf("hypergraph: negative n_nodes %d", nNodes)}
	}
	if nodeWeights != nil && int32(len(nodeWeights)) != nNodes {
		return nil, &errs.InvalidConfigError{Reason: fmt.Sprintf(
			"hypergraph: node weight count %d != n_nodes %d", len(nodeWeights), nNodes)}
	}
	if hedgeWeights != nil && len(hedgeWeights) != len(hedgePins) {
		return nil, &errs.InvalidConfigError{Reason: fmt.Sprintf(
			"hypergraph: hedge weight count %d != n_hedges %d", len(hedgeWeights), len(hedgePins))}
	}
	for e, pins := range hedgePins {
		for _, v := range pins {
			if v < 0 || v >= nNodes {
				return nil, &errs.InvalidConfigError{Reason: fmt.Sprintf(
					"hypergraph: hedge %d pin %d out of range [0,%d)", e, v, nNodes)}
			}
		}
	}

	// Stage 2: Prepare -- sort and dedup pins per hyperedge.
	nHedges := Index(len(hedgePins))
	sortedPins := make([][]Index, nHedges)
	for e, pins := range hedgePins {
		cp := make([]Index, len(pins))
		copy(cp, pins)
		sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
		cp = dedupSorted(cp)
		sortedPins[e] = cp
	}

	hedgeBegin := make([]int32, nHedges+1)
	for e, pins := range sortedPins {
		hedgeBegin[e+1] = hedgeBegin[e] + int32(len(pins))
	}
	hedgeData := make([]Index, hedgeBegin[nHedges])
	for e, pins := range sortedPins {
		copy(hedgeData[hedgeBegin[e]:hedgeBegin[e+1]], pins)
	}

	// Stage 3: Execute -- two-pass counting sort inverting hedgeData
	// (pins per hedge) into nodeData (hedges per node).
	nodeDegree := make([]int32, nNodes)
	for _, v := range hedgeData {
		nodeDegree[v]++
	}
	nodeBegin := make([]int32, nNodes+1)
	for v := Index(0); v < nNodes; v++ {
		nodeBegin[v+1] = nodeBegin[v] + nodeDegree[v]
	}
	cursor := make([]int32, nNodes)
	copy(cursor, nodeBegin[:nNodes])
	nodeData := make([]Index, len(hedgeData))
	for e := Index(0); e < nHedges; e++ {
		for _, v := range hedgeData[hedgeBegin[e]:hedgeBegin[e+1]] {
			nodeData[cursor[v]] = e
			cursor[v]++
		}
	}

	// Stage 4: Finalize.
	nw := make([]int64, nNodes)
	if nodeWeights != nil {
		copy(nw, nodeWeights)
	} else {
		for i := range nw {
			nw[i] = 1
		}
	}
	hw := make([]int64, nHedges)
	if hedgeWeights != nil {
		copy(hw, hedgeWeights)
	} else {
		for i := range hw {
			hw[i] = 1
		}
	}

	return &Hypergraph{
		nNodes:      nNodes,
		nHedges:     nHedges,
		nodeBegin:   nodeBegin,
		nodeData:    nodeData,
		hedgeBegin:  hedgeBegin,
		hedgeData:   hedgeData,
		nodeWeight:  nw,
		hedgeWeight: hw,
	}, nil
}

func dedupSorted(s []Index) []Index {
	if len(s) == 0 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// SetupBlocks assigns the partitioning target: k blocks, each with a
// capacity derived from the total node weight and an imbalance
// factor. total_capacity = floor(total_node_weight * (1+imbalance));
// every block b>=1 receives floor(total_capacity/k); block 0 absorbs
// the remainder so the capacities sum exactly to total_capacity.
func (h *Hypergraph) SetupBlocks(k Index, imbalanceFactor float64) error {
	if k <= 0 {
		return &errs.InvalidConfigError{Reason: fmt.Sprintf("hypergraph: non-positive k=%d", k)}
	}
	total := h.TotalNodeWeight()
	totalCapacity := int64(float64(total) * (1.0 + imbalanceFactor))
	base := totalCapacity / int64(k)
	caps := make([]int64, k)
	for b := Index(1); b < k; b++ {
		caps[b] = base
	}
	caps[0] = totalCapacity - base*int64(k-1)
	h.nBlocks = k
	h.blockCapacity = caps
	return nil
}

// CheckConsistency verifies the structural invariants: duplicate-free,
// sorted pins per hyperedge; mutual consistency between the node and
// hyperedge incidence arrays; pin indices in range.
func (h *Hypergraph) CheckConsistency() error {
	for e := Index(0); e < h.nHedges; e++ {
		pins := h.HedgeNodes(e)
		for i := 1; i < len(pins); i++ {
			if pins[i] <= pins[i-1] {
				return &errs.InconsistencyError{Reason: fmt.Sprintf(
					"hypergraph: hedge %d pins not strictly increasing at %d", e, i)}
			}
		}
		for _, v := range pins {
			if v < 0 || v >= h.nNodes {
				return &errs.InconsistencyError{Reason: fmt.Sprintf(
					"hypergraph: hedge %d pin %d out of range", e, v)}
			}
			found := false
			for _, e2 := range h.NodeHedges(v) {
				if e2 == e {
					found = true
					break
				}
			}
			if !found {
				return &errs.InconsistencyError{Reason: fmt.Sprintf(
					"hypergraph: node %d incident to hedge %d per hedgeData but not per nodeData", v, e)}
			}
		}
	}
	for v := Index(0); v < h.nNodes; v++ {
		for _, e := range h.NodeHedges(v) {
			found := false
			for _, v2 := range h.HedgeNodes(e) {
				if v2 == v {
					found = true
					break
				}
			}
			if !found {
				return &errs.InconsistencyError{Reason: fmt.Sprintf(
					"hypergraph: hedge %d incident to node %d per nodeData but not per hedgeData", e, v)}
			}
		}
	}
	return nil
}
