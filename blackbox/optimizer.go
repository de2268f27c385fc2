package blackbox

import (
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/go-minipart/minipart/hypergraph"
	"github.com/go-minipart/minipart/localsearch"
	"github.com/go-minipart/minipart/objective"
	"github.com/go-minipart/minipart/solution"
)

// Optimizer runs the top-level flow of spec.md §4.7 against a fixed
// hypergraph: build an initial random pool, locally search every
// member, then run Params.NCycles V-cycles, finally returning the
// pool's best member by batch evaluation.
//
// Logger may be nil -- a nil Logger is a no-op, matching the library's
// convention of never logging unless a caller opts in (c.f.
// lvlath/core, which never logs internally).
type Optimizer struct {
	Params Params
	Logger *log.Logger

	// Initial, if non-nil, seeds pool member 0 instead of a random
	// assignment (spec.md §6's "-f <initial.sol>"). Its NParts must
	// equal the hypergraph's block count passed to Run.
	Initial *solution.Solution

	cyclesRun    prometheus.Counter
	movesApplied prometheus.Counter
	objectiveGauge prometheus.Gauge
}

// NewOptimizer builds an Optimizer. Prometheus collectors are created
// per-Optimizer: they are unexported fields, not registered against
// any registry, never served over HTTP, and not written out by this
// package -- they are updated during Run and nothing more.
func NewOptimizer(params Params) *Optimizer {
	return &Optimizer{
		Params: params,
		cyclesRun: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "minipart_vcycles_run_total",
			Help: "Number of top-level V-cycles completed in this run.",
		}),
		movesApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "minipart_moves_applied_total",
			Help: "Number of local search moves applied across the pool.",
		}),
		objectiveGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "minipart_best_objective_leading_term",
			Help: "Leading component of the best pool member's objective vector.",
		}),
	}
}

// Run executes the full optimization and returns the best solution
// found, plus its objective vector.
func (o *Optimizer) Run(hg *hypergraph.Hypergraph) (*solution.Solution, objective.Vector, error) {
	runID := uuid.New()
	rng := rand.New(rand.NewSource(o.Params.Seed))

	if err := hg.SetupBlocks(hg.NBlocks(), o.Params.ImbalanceFactor); err != nil {
		return nil, nil, err
	}

	pool := make([]*solution.Solution, o.Params.NSolutions)
	for i := range pool {
		if i == 0 && o.Initial != nil {
			pool[i] = o.Initial.Clone()
		} else {
			parts := make([]solution.Index, hg.NNodes())
			for v := range parts {
				parts[v] = solution.Index(rng.Intn(int(hg.NBlocks())))
			}
			pool[i] = solution.FromSlice(parts, hg.NBlocks())
		}
		o.polish(hg, pool[i], rng)
	}

	o.logDebug("run %s: initial pool of %d built for %d nodes / %d blocks", runID, len(pool), hg.NNodes(), hg.NBlocks())

	for cycle := 0; cycle < o.Params.NCycles; cycle++ {
		if err := o.runVCycle(hg, pool, rng, 0); err != nil {
			return nil, nil, err
		}
		o.cyclesRun.Inc()
		o.logInfo("run %s: completed cycle %d/%d", runID, cycle+1, o.Params.NCycles)
	}

	best, bestVec := o.selectBest(hg, pool)
	o.objectiveGauge.Set(float64(bestVec[0]))
	return best, bestVec, nil
}

func (o *Optimizer) selectBest(hg *hypergraph.Hypergraph, pool []*solution.Solution) (*solution.Solution, objective.Vector) {
	best := pool[0]
	bestVec := objective.Eval(o.Params.Tag, hg, best)
	for _, s := range pool[1:] {
		v := objective.Eval(o.Params.Tag, hg, s)
		if v.Less(bestVec) {
			best, bestVec = s, v
		}
	}
	return best, bestVec
}

// polish runs local search on sol in place at hg's level.
func (o *Optimizer) polish(hg *hypergraph.Hypergraph, sol *solution.Solution, rng *rand.Rand) {
	inc, err := objective.New(o.Params.Tag, hg, sol)
	if err != nil {
		return
	}
	opt := localsearch.New(hg, o.Params.MovesPerElement)
	spent := opt.Run(rng, hg, inc, sol)
	o.movesApplied.Add(float64(spent))
}

// runVCycle implements spec.md §4.7's recursive step: shuffle the
// pool, search for the prefix length s whose pool-induced coarsening
// gives the best reduction factor, and if that factor clears the
// minimum threshold, coarsen, recurse one level deeper, then
// uncoarsen the first s* pool members back and polish them.
func (o *Optimizer) runVCycle(hg *hypergraph.Hypergraph, pool []*solution.Solution, rng *rand.Rand, level int) error {
	if hg.NNodes() < o.Params.MinCoarseningNodes*hg.NBlocks() {
		return nil
	}

	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	bestS := -1
	var bestCoarsening *solution.Solution
	bestF := 0.0
	first := true
	for s := 1; s <= len(pool); s++ {
		coarsening := poolInducedCoarsening(pool[:s], hg.NNodes())
		f := float64(hg.NNodes()) / float64(coarsening.NParts())
		if first || preferReductionFactor(f, bestF, o.Params.MinCoarseningFactor, o.Params.MaxCoarseningFactor) {
			bestF = f
			bestS = s
			bestCoarsening = coarsening
			first = false
		}
	}

	if bestF < o.Params.MinCoarseningFactor {
		return nil
	}

	coarseHg, err := hg.Coarsen(bestCoarsening)
	if err != nil {
		return err
	}
	if err := coarseHg.SetupBlocks(hg.NBlocks(), o.Params.ImbalanceFactor); err != nil {
		return err
	}

	coarsePool := make([]*solution.Solution, bestS)
	for i := 0; i < bestS; i++ {
		coarsePool[i] = pool[i].Coarsen(bestCoarsening)
		o.polish(coarseHg, coarsePool[i], rng)
	}

	o.logDebug("level %d: n_nodes=%d -> coarse n_nodes=%d (factor=%.2f, pool prefix=%d)",
		level, hg.NNodes(), coarseHg.NNodes(), bestF, bestS)

	if err := o.runVCycle(coarseHg, coarsePool, rng, level+1); err != nil {
		return err
	}

	for i := 0; i < bestS; i++ {
		pool[i] = coarsePool[i].Uncoarsen(bestCoarsening)
		o.polish(hg, pool[i], rng)
	}

	if err := hg.CheckConsistency(); err != nil {
		return err
	}
	for _, s := range pool {
		if err := s.CheckConsistency(); err != nil {
			return err
		}
	}
	return nil
}

func (o *Optimizer) logDebug(format string, args ...interface{}) {
	if o.Logger != nil {
		o.Logger.Debugf(format, args...)
	}
}

func (o *Optimizer) logInfo(format string, args ...interface{}) {
	if o.Logger != nil {
		o.Logger.Infof(format, args...)
	}
}
