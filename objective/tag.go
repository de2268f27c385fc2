// Package objective implements the partitioning objective functions:
// an incremental evaluator that maintains per-hyperedge partition-pin
// counts and derived scalars under single-node moves in time bounded
// by the pins touched, and a batch evaluator used as its independent
// oracle. Both are driven by a single Tag rather than by runtime
// interface dispatch per variant, keeping the hot loop (Move) a single
// monomorphic switch instead of eight separate vtables.
package objective

import (
	"fmt"
	"strings"

	"github.com/go-minipart/minipart/errs"
)

// Tag names one of the eight supported objective variants.
type Tag int

const (
	Cut Tag = iota
	Soed
	MaxDegree
	DaisyChainDistance
	DaisyChainMaxDegree
	RatioCut
	RatioSoed
	RatioMaxDegree
)

var tagNames = map[Tag]string{
	Cut:                 "cut",
	Soed:                "soed",
	MaxDegree:           "max-degree",
	DaisyChainDistance:  "daisy-chain-distance",
	DaisyChainMaxDegree: "daisy-chain-max-degree",
	RatioCut:            "ratio-cut",
	RatioSoed:           "ratio-soed",
	RatioMaxDegree:      "ratio-max-degree",
}

// String returns the canonical flag-surface name of the tag.
func (t Tag) String() string {
	if s, ok := tagNames[t]; ok {
		return s
	}
	return fmt.Sprintf("objective.Tag(%d)", int(t))
}

// IsRatio reports whether t is one of the ratio-normalized variants.
func (t Tag) IsRatio() bool {
	return t == RatioCut || t == RatioSoed || t == RatioMaxDegree
}

// IsDaisyChain reports whether t is one of the daisy-chain variants.
func (t Tag) IsDaisyChain() bool {
	return t == DaisyChainDistance || t == DaisyChainMaxDegree
}

// ParseTag parses an objective name from the CLI surface, including
// the "connectivity" / "ratio-connectivity" aliases for soed /
// ratio-soed (spec.md §6).
func ParseTag(name string) (Tag, error) {
	switch strings.ToLower(name) {
	case "cut":
		return Cut, nil
	case "soed", "connectivity":
		return Soed, nil
	case "max-degree":
		return MaxDegree, nil
	case "daisy-chain-distance":
		return DaisyChainDistance, nil
	case "daisy-chain-max-degree":
		return DaisyChainMaxDegree, nil
	case "ratio-cut":
		return RatioCut, nil
	case "ratio-soed", "ratio-connectivity":
		return RatioSoed, nil
	case "ratio-max-degree":
		return RatioMaxDegree, nil
	default:
		return 0, &errs.InvalidConfigError{Reason: fmt.Sprintf("objective: unknown objective name %q", name)}
	}
}
