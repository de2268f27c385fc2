package objective

import (
	"github.com/go-minipart/minipart/errs"
	"github.com/go-minipart/minipart/hypergraph"
	"github.com/go-minipart/minipart/solution"
)

// IncrementalObjective maintains an objective vector under single-node
// moves in time bounded by the pins of the hyperedges touched by the
// move, rather than recomputing from scratch. It exclusively mutates
// the solution.Solution it was built from -- no other code may call
// Set on that Solution while an IncrementalObjective is live for it.
type IncrementalObjective interface {
	// Move reassigns node to block to, updating both the solution and
	// every maintained scalar. A no-op if to equals node's current
	// block.
	Move(node, to solution.Index)
	// Objectives returns the current lexicographic objective vector.
	Objectives() Vector
	// CheckConsistency recomputes the objective vector from scratch via
	// the batch oracle (Eval) and returns an errs.InconsistencyError if
	// it differs from Objectives(). The per-block demands, per-hyperedge
	// pin counts and hyperedge degrees are not compared on their own.
	// Intended for debug builds and tests, not the hot loop.
	CheckConsistency() error
}

// incObjective is the tagged-union implementation: a single struct
// whose Move method switches on tag, rather than eight structs behind
// an interface vtable. Only the state the tag actually needs is
// populated; the rest stays nil/zero.
type incObjective struct {
	tag Tag
	hg  *hypergraph.Hypergraph
	sol *solution.Solution

	demand   []int64
	overflow int64

	emptyBlocks int64

	pinsPerPart [][]int64
	hedgeDegree []int32

	cut  int64
	soed int64

	partitionDegrees []int64 // MaxDegree, RatioMaxDegree

	hedgeLo, hedgeHi     []solution.Index // DaisyChainDistance, DaisyChainMaxDegree
	distance             int64
	partitionDaisyDegree []int64 // DaisyChainMaxDegree
}

// New builds an IncrementalObjective for tag from hg and the current
// assignment in sol. sol must already satisfy hg.NNodes() ==
// sol.NNodes() and hg.NBlocks() == sol.NParts() (i.e. SetupBlocks has
// been called).
func New(tag Tag, hg *hypergraph.Hypergraph, sol *solution.Solution) (IncrementalObjective, error) {
	if sol.NNodes() != hg.NNodes() {
		return nil, &errs.InvalidConfigError{Reason: "objective: solution node count does not match hypergraph"}
	}
	if sol.NParts() != hg.NBlocks() {
		return nil, &errs.InvalidConfigError{Reason: "objective: solution block count does not match hypergraph (call SetupBlocks first)"}
	}

	o := &incObjective{tag: tag, hg: hg, sol: sol}

	o.demand = hg.PartitionUsage(sol)
	for b := solution.Index(0); b < hg.NBlocks(); b++ {
		if over := o.demand[b] - hg.BlockCapacity(b); over > 0 {
			o.overflow += over
		}
		if o.demand[b] == 0 {
			o.emptyBlocks++
		}
	}

	o.pinsPerPart = make([][]int64, hg.NHedges())
	o.hedgeDegree = make([]int32, hg.NHedges())
	for e := solution.Index(0); e < hg.NHedges(); e++ {
		counts := make([]int64, hg.NBlocks())
		for _, v := range hg.HedgeNodes(e) {
			counts[sol.Get(v)]++
		}
		var degree int32
		for _, c := range counts {
			if c > 0 {
				degree++
			}
		}
		o.pinsPerPart[e] = counts
		o.hedgeDegree[e] = degree
	}

	o.cut = hg.Cut(sol)
	o.soed = hg.Soed(sol)

	if tag == MaxDegree || tag == RatioMaxDegree {
		o.partitionDegrees = hg.PartitionDegree(sol)
	}
	if tag.IsDaisyChain() {
		o.hedgeLo = make([]solution.Index, hg.NHedges())
		o.hedgeHi = make([]solution.Index, hg.NHedges())
		for e := solution.Index(0); e < hg.NHedges(); e++ {
			if o.hedgeDegree[e] <= 1 {
				continue
			}
			lo, hi := blockSpan(o.pinsPerPart[e])
			o.hedgeLo[e], o.hedgeHi[e] = lo, hi
		}
		o.distance = hg.DaisyChainDistance(sol)
	}
	if tag == DaisyChainMaxDegree {
		o.partitionDaisyDegree = hg.PartitionDaisyChainDegree(sol)
	}

	return o, nil
}

func blockSpan(counts []int64) (lo, hi solution.Index) {
	first := true
	for b, c := range counts {
		if c == 0 {
			continue
		}
		if first {
			lo, hi = solution.Index(b), solution.Index(b)
			first = false
			continue
		}
		if solution.Index(b) < lo {
			lo = solution.Index(b)
		}
		if solution.Index(b) > hi {
			hi = solution.Index(b)
		}
	}
	return lo, hi
}

func max0(x int64) int64 {
	if x > 0 {
		return x
	}
	return 0
}

// Move implements IncrementalObjective.
func (o *incObjective) Move(node, to solution.Index) {
	from := o.sol.Get(node)
	if from == to {
		return
	}
	w := o.hg.NodeWeight(node)

	oldDemandFrom := o.demand[from]
	newDemandFrom := oldDemandFrom - w
	o.overflow += max0(newDemandFrom-o.hg.BlockCapacity(from)) - max0(oldDemandFrom-o.hg.BlockCapacity(from))
	if oldDemandFrom != 0 && newDemandFrom == 0 {
		o.emptyBlocks++
	}
	o.demand[from] = newDemandFrom

	oldDemandTo := o.demand[to]
	newDemandTo := oldDemandTo + w
	o.overflow += max0(newDemandTo-o.hg.BlockCapacity(to)) - max0(oldDemandTo-o.hg.BlockCapacity(to))
	if oldDemandTo == 0 && newDemandTo != 0 {
		o.emptyBlocks--
	}
	o.demand[to] = newDemandTo

	for _, e := range o.hg.NodeHedges(node) {
		o.moveHedge(e, node, from, to)
	}

	o.sol.Set(node, to)
}

// moveHedge updates every scalar derived from hyperedge e's pin
// distribution in response to node leaving block from and joining
// block to. o.sol still reflects the pre-move assignment when this
// runs (the caller updates it only after every incident hedge has been
// processed), so "touched blocks" helpers can distinguish before/after
// state by substituting to for node's block explicitly.
func (o *incObjective) moveHedge(e, node, from, to solution.Index) {
	degreeBefore := o.hedgeDegree[e]
	wasCut := degreeBefore > 1
	w := o.hg.HedgeWeight(e)

	counts := o.pinsPerPart[e]
	leavesFrom := false
	counts[from]--
	if counts[from] == 0 {
		leavesFrom = true
		o.hedgeDegree[e]--
	}
	reachesTo := false
	if counts[to] == 0 {
		reachesTo = true
		o.hedgeDegree[e]++
	}
	counts[to]++

	degreeAfter := o.hedgeDegree[e]
	isCut := degreeAfter > 1

	oldCut, newCut := int64(0), int64(0)
	if wasCut {
		oldCut = w
	}
	if isCut {
		newCut = w
	}
	o.cut += newCut - oldCut

	// soed = Sum_e w(e)*lambda(e) over every hyperedge; lambda(e) moves
	// by exactly +-1 per block entered/left, regardless of whether e is
	// cut before or after.
	if leavesFrom {
		o.soed -= w
	}
	if reachesTo {
		o.soed += w
	}

	switch o.tag {
	case MaxDegree, RatioMaxDegree:
		o.updatePartitionDegrees(e, node, to, leavesFrom, reachesTo, wasCut, isCut)
	case DaisyChainDistance:
		o.updateDaisyChainDistance(e, node, to, wasCut, isCut)
	case DaisyChainMaxDegree:
		o.updateDaisyChainBoth(e, node, to, wasCut, isCut)
	}
}

// touchedBlocks returns the distinct blocks hyperedge e's pins occupy,
// substituting to for node's block when after is true (o.sol is not
// yet updated for this move).
func (o *incObjective) touchedBlocks(e, node, to solution.Index, after bool) []solution.Index {
	pins := o.hg.HedgeNodes(e)
	seen := make(map[solution.Index]bool, len(pins))
	out := make([]solution.Index, 0, len(pins))
	for _, v := range pins {
		b := o.sol.Get(v)
		if v == node && after {
			b = to
		}
		if !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	return out
}

func (o *incObjective) updatePartitionDegrees(e, node, to solution.Index, leavesFrom, reachesTo, wasCut, isCut bool) {
	from := o.sol.Get(node)
	w := o.hg.HedgeWeight(e)
	if wasCut == isCut {
		if isCut {
			if leavesFrom {
				o.partitionDegrees[from] -= w
			}
			if reachesTo {
				o.partitionDegrees[to] += w
			}
		}
		return
	}
	if isCut && !wasCut {
		for _, b := range o.touchedBlocks(e, node, to, true) {
			o.partitionDegrees[b] += w
		}
		return
	}
	for _, b := range o.touchedBlocks(e, node, to, false) {
		o.partitionDegrees[b] -= w
	}
}

func (o *incObjective) updateDaisyChainDistance(e, node, to solution.Index, wasCut, isCut bool) {
	w := o.hg.HedgeWeight(e)
	oldLo, oldHi := o.hedgeLo[e], o.hedgeHi[e]
	oldContrib := int64(0)
	if wasCut {
		oldContrib = w * int64(oldHi-oldLo)
	}
	if !isCut {
		o.distance -= oldContrib
		return
	}
	lo, hi := blockSpanTouched(o.touchedBlocks(e, node, to, true))
	o.hedgeLo[e], o.hedgeHi[e] = lo, hi
	newContrib := w * int64(hi-lo)
	o.distance += newContrib - oldContrib
}

func blockSpanTouched(blocks []solution.Index) (lo, hi solution.Index) {
	lo, hi = blocks[0], blocks[0]
	for _, b := range blocks[1:] {
		if b < lo {
			lo = b
		}
		if b > hi {
			hi = b
		}
	}
	return lo, hi
}

// updateDaisyChainBoth maintains both distance and per-block daisy
// chain degree (DaisyChainMaxDegree variant): a cut hyperedge
// increments its two endpoint blocks by its weight and every
// intermediate block -- pinned or not -- by twice its weight, since
// the chain both enters and leaves it.
func (o *incObjective) updateDaisyChainBoth(e, node, to solution.Index, wasCut, isCut bool) {
	w := o.hg.HedgeWeight(e)
	oldLo, oldHi := o.hedgeLo[e], o.hedgeHi[e]
	if wasCut {
		o.addDaisyDegreeRange(oldLo, oldHi, -w)
	}

	o.updateDaisyChainDistance(e, node, to, wasCut, isCut)

	if isCut {
		o.addDaisyDegreeRange(o.hedgeLo[e], o.hedgeHi[e], w)
	}
}

func (o *incObjective) addDaisyDegreeRange(lo, hi solution.Index, delta int64) {
	for b := lo; b <= hi; b++ {
		if b == lo || b == hi {
			o.partitionDaisyDegree[b] += delta
		} else {
			o.partitionDaisyDegree[b] += 2 * delta
		}
	}
}

func (o *incObjective) maxPartitionDegree() int64 {
	var max int64
	for _, d := range o.partitionDegrees {
		if d > max {
			max = d
		}
	}
	return max
}

func (o *incObjective) maxPartitionDaisyDegree() int64 {
	var max int64
	for _, d := range o.partitionDaisyDegree {
		if d > max {
			max = d
		}
	}
	return max
}

// Objectives implements IncrementalObjective.
func (o *incObjective) Objectives() Vector {
	switch o.tag {
	case Cut:
		return Vector{o.overflow, o.cut, o.soed}
	case Soed:
		return Vector{o.overflow, o.soed}
	case MaxDegree:
		return Vector{o.overflow, o.maxPartitionDegree(), o.soed}
	case DaisyChainDistance:
		return Vector{o.overflow, o.distance, o.soed}
	case DaisyChainMaxDegree:
		return Vector{o.overflow, o.maxPartitionDaisyDegree(), o.distance}
	case RatioCut:
		rp := o.hg.RatioPenalty(o.sol)
		return Vector{o.emptyBlocks, int64(100.0 * float64(o.cut) * rp), o.cut, o.soed}
	case RatioSoed:
		rp := o.hg.RatioPenalty(o.sol)
		return Vector{o.emptyBlocks, int64(100.0 * float64(o.soed) * rp), o.soed}
	case RatioMaxDegree:
		rp := o.hg.RatioPenalty(o.sol)
		return Vector{o.emptyBlocks, int64(100.0 * float64(o.maxPartitionDegree()) * rp), o.soed}
	default:
		panic("objective: unhandled tag in Objectives")
	}
}

// CheckConsistency implements IncrementalObjective.
func (o *incObjective) CheckConsistency() error {
	got := o.Objectives()
	want := Eval(o.tag, o.hg, o.sol)
	if got.Compare(want) != 0 {
		return &errs.InconsistencyError{Reason: "objective: incremental state diverged from batch recompute"}
	}
	return nil
}
