package cli

import "github.com/spf13/pflag"

// options holds the raw flag surface of spec.md §6, before run
// validates it and turns it into a blackbox.Params.
type options struct {
	input   string
	output  string
	initial string

	k           int
	imbalance   float64
	objective   string
	verbosity   int
	seed        int64

	poolSize    int
	vCycles     int
	minCFactor  float64
	maxCFactor  float64
	minCNodes   int
	moveRatio   float64
}

func newOptions() *options {
	return &options{
		output:     "",
		imbalance:  2,
		objective:  "cut",
		seed:       1,
		poolSize:   8,
		vCycles:    3,
		minCFactor: 1.5,
		maxCFactor: 3.0,
		minCNodes:  50,
		moveRatio:  8.0,
	}
}

func (o *options) bind(f *pflag.FlagSet) {
	f.StringVarP(&o.input, "input", "i", "", "input .hgr file (required)")
	f.StringVarP(&o.output, "output", "o", "", "output .sol file (defaults to stdout)")
	f.StringVarP(&o.initial, "initial", "f", "", "optional initial .sol seeding the solution pool")

	f.IntVarP(&o.k, "parts", "k", 2, "number of blocks K")
	f.Float64VarP(&o.imbalance, "imbalance", "e", 2, "allowed imbalance, in percent")
	f.StringVarP(&o.objective, "objective", "g", "cut", "objective: cut|soed|connectivity|max-degree|daisy-chain-distance|daisy-chain-max-degree|ratio-cut|ratio-soed|ratio-connectivity|ratio-max-degree")
	f.IntVarP(&o.verbosity, "verbosity", "v", 0, "log verbosity: 0=warn 1=info 2=debug")
	f.Int64VarP(&o.seed, "seed", "s", 1, "random seed")

	f.IntVar(&o.poolSize, "pool-size", o.poolSize, "number of solutions kept in the pool at every level")
	f.IntVar(&o.vCycles, "v-cycles", o.vCycles, "number of top-level V-cycles")
	f.Float64Var(&o.minCFactor, "min-c-factor", o.minCFactor, "minimum acceptable coarsening reduction factor")
	f.Float64Var(&o.maxCFactor, "max-c-factor", o.maxCFactor, "maximum acceptable coarsening reduction factor")
	f.IntVar(&o.minCNodes, "min-c-nodes", o.minCNodes, "stop recursing once n_nodes < min-c-nodes * k")
	f.Float64Var(&o.moveRatio, "move-ratio", o.moveRatio, "local search moves-per-element budget scale")
}
