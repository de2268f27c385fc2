// Package solution defines the node→block assignment vector shared by
// every minipart component, along with its dual use as a coarsening map.
//
// A Solution is deliberately the thinnest possible type: a slice of
// Index plus a block count. It carries no hypergraph reference and no
// derived state -- that belongs to objective.IncrementalObjective, the
// sole mutator of a live Solution (see objective.IncrementalObjective's
// doc comment for the ownership discipline).
package solution

import (
	"fmt"

	"github.com/go-minipart/minipart/errs"
)

// Index is the signed 32-bit integer used throughout minipart for node,
// hyperedge, block, and pin indices. Counters that may exceed it
// (objective components) are int64 instead; see objective.Vector.
type Index = int32

// Solution is a node→block assignment: Parts[v] is the block of node v,
// and NumBlocks is the number of blocks (as an assignment) or the
// number of coarse super-nodes (as a coarsening map -- see Coarsen).
type Solution struct {
	Parts     []Index
	NumBlocks Index
}

// New returns a zero-filled Solution for n nodes and k blocks.
func New(n, k Index) *Solution {
	return &Solution{Parts: make([]Index, n), NumBlocks: k}
}

// FromSlice wraps an explicit assignment vector. NumBlocks is computed
// as max(parts)+1 if nParts <= 0, matching the original Solution(vector)
// constructor; otherwise the caller's nParts is trusted as-is (it may
// legitimately exceed max(parts)+1, e.g. empty trailing blocks).
func FromSlice(parts []Index, nParts Index) *Solution {
	if nParts <= 0 {
		nParts = 0
		for _, p := range parts {
			if p+1 > nParts {
				nParts = p + 1
			}
		}
	}
	return &Solution{Parts: parts, NumBlocks: nParts}
}

// NNodes returns the number of entries in the assignment vector.
func (s *Solution) NNodes() Index { return Index(len(s.Parts)) }

// NParts returns the number of blocks (or coarse super-nodes).
func (s *Solution) NParts() Index { return s.NumBlocks }

// Get returns the block of node.
func (s *Solution) Get(node Index) Index { return s.Parts[node] }

// Set assigns node to block to. Callers that need derived-state
// maintenance under reassignment must go through
// objective.IncrementalObjective.Move instead of calling Set directly.
func (s *Solution) Set(node, to Index) { s.Parts[node] = to }

// Clone returns a deep copy.
func (s *Solution) Clone() *Solution {
	parts := make([]Index, len(s.Parts))
	copy(parts, s.Parts)
	return &Solution{Parts: parts, NumBlocks: s.NumBlocks}
}

// CheckConsistency validates that every entry lies in [0, NParts()).
func (s *Solution) CheckConsistency() error {
	for i, p := range s.Parts {
		if p < 0 {
			return &errs.InconsistencyError{Reason: fmt.Sprintf("solution: node %d has negative block %d", i, p)}
		}
		if p >= s.NumBlocks {
			return &errs.InconsistencyError{Reason: fmt.Sprintf("solution: node %d block %d >= NParts %d", i, p, s.NumBlocks)}
		}
	}
	return nil
}

// Coarsen produces a size-mapping.NParts() solution where coarse node c
// takes the block of any fine node mapping to c. The caller guarantees
// that all fine nodes mapping to the same coarse node already agree in
// s (solution.CoarsenStrict enforces this if the caller cannot).
//
// mapping is itself used here as a coarsening map: mapping.Parts[v] is
// the coarse node fine node v folds into, and mapping.NParts() is the
// number of coarse nodes.
func (s *Solution) Coarsen(mapping *Solution) *Solution {
	out := make([]Index, mapping.NParts())
	seen := make([]bool, mapping.NParts())
	for v, c := range mapping.Parts {
		if !seen[c] {
			out[c] = s.Parts[v]
			seen[c] = true
		}
	}
	return &Solution{Parts: out, NumBlocks: s.NumBlocks}
}

// CoarsenStrict behaves like Coarsen but returns errs.UnrepresentableError
// if two fine nodes folded into the same super-node disagree in s. Used
// by tests exercising spec.md §8 invariant 6 and by callers that cannot
// otherwise guarantee agreement.
func (s *Solution) CoarsenStrict(mapping *Solution) (*Solution, error) {
	out := make([]Index, mapping.NParts())
	seen := make([]bool, mapping.NParts())
	for v, c := range mapping.Parts {
		if !seen[c] {
			out[c] = s.Parts[v]
			seen[c] = true
			continue
		}
		if out[c] != s.Parts[v] {
			return nil, &errs.UnrepresentableError{Reason: fmt.Sprintf(
				"solution: fine nodes mapped to super-node %d disagree (%d vs %d)", c, out[c], s.Parts[v])}
		}
	}
	return &Solution{Parts: out, NumBlocks: s.NumBlocks}, nil
}

// Uncoarsen produces a size-mapping.NNodes() solution where fine node v
// receives the block of its super-node: out[v] = s[mapping[v]].
func (s *Solution) Uncoarsen(mapping *Solution) *Solution {
	out := make([]Index, mapping.NNodes())
	for v, c := range mapping.Parts {
		out[v] = s.Parts[c]
	}
	return &Solution{Parts: out, NumBlocks: s.NumBlocks}
}

// Equal reports whether two solutions have identical assignment vectors
// (NumBlocks is not compared, since a solution and its round-tripped
// coarsen/uncoarsen may carry a different nominal block count while
// assigning the same blocks).
func (s *Solution) Equal(other *Solution) bool {
	if len(s.Parts) != len(other.Parts) {
		return false
	}
	for i := range s.Parts {
		if s.Parts[i] != other.Parts[i] {
			return false
		}
	}
	return true
}
