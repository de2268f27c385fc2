package blackbox

import (
	"hash/fnv"
	"math"

	"github.com/go-minipart/minipart/solution"
)

// poolInducedCoarsening folds together every fine node whose block
// assignment agrees across every member of members: the fingerprint of
// node v is the tuple (members[0].Get(v), members[1].Get(v), ...),
// hashed with FNV-64 and assigned a contiguous-dense coarse label in
// first-seen order. Two fine nodes fold into the same super-node only
// if every solution in members already agrees on them, which is what
// makes Solution.Coarsen safe to call without CoarsenStrict downstream.
func poolInducedCoarsening(members []*solution.Solution, nNodes solution.Index) *solution.Solution {
	labels := make([]solution.Index, nNodes)
	buckets := make(map[uint64][]solution.Index) // hash -> representative fine nodes already labeled
	var next solution.Index

	for v := solution.Index(0); v < nNodes; v++ {
		h := fnv.New64a()
		var buf [4]byte
		for _, m := range members {
			b := m.Get(v)
			buf[0] = byte(b)
			buf[1] = byte(b >> 8)
			buf[2] = byte(b >> 16)
			buf[3] = byte(b >> 24)
			h.Write(buf[:])
		}
		key := h.Sum64()

		label := solution.Index(-1)
		for _, rep := range buckets[key] {
			if fingerprintEqual(members, rep, v) {
				label = labels[rep]
				break
			}
		}
		if label == -1 {
			label = next
			next++
			buckets[key] = append(buckets[key], v)
		}
		labels[v] = label
	}

	return solution.FromSlice(labels, next)
}

func fingerprintEqual(members []*solution.Solution, a, b solution.Index) bool {
	for _, m := range members {
		if m.Get(a) != m.Get(b) {
			return false
		}
	}
	return true
}

// preferReductionFactor implements the V-cycle prefix-size choice of
// spec.md §4.7: given the candidate reduction factor f and the best
// factor seen so far, report whether f should replace it. Both in
// range: prefer whichever is closest to the midpoint. Both below
// min: prefer the larger (closer to being in range). Both above max:
// prefer the smaller. One in range beats one out of range; with one
// below min and the other above max, prefer whichever is closer to
// the [min,max] interval.
func preferReductionFactor(f, best, min, max float64) bool {
	if math.IsInf(best, 1) {
		return true
	}
	fIn := f >= min && f <= max
	bestIn := best >= min && best <= max
	mid := (min + max) / 2

	switch {
	case fIn && bestIn:
		return math.Abs(f-mid) < math.Abs(best-mid)
	case fIn && !bestIn:
		return true
	case !fIn && bestIn:
		return false
	case f < min && best < min:
		return f > best
	case f > max && best > max:
		return f < best
	default:
		return distToRange(f, min, max) < distToRange(best, min, max)
	}
}

func distToRange(f, min, max float64) float64 {
	if f < min {
		return min - f
	}
	if f > max {
		return f - max
	}
	return 0
}
