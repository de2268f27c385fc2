package cli

import (
	"context"
	"io"
	"os"

	"github.com/go-minipart/minipart/blackbox"
	"github.com/go-minipart/minipart/errs"
	"github.com/go-minipart/minipart/hgrio"
	"github.com/go-minipart/minipart/hypergraph"
	"github.com/go-minipart/minipart/objective"
	"github.com/go-minipart/minipart/solution"
)

// run validates opts, loads the input hypergraph, runs the optimizer,
// and writes the resulting solution to opts.output (or stdout).
func run(ctx context.Context, opts *options, stdout io.Writer) error {
	if opts.input == "" {
		return fail("minipart: -i/--input is required")
	}
	if opts.k <= 0 {
		return errs.NewInvalidConfigError("-k/--parts must be positive, got %d", opts.k)
	}
	tag, err := objective.ParseTag(opts.objective)
	if err != nil {
		return err
	}

	logger := newLogger(opts.verbosity)

	hg, err := loadHypergraph(opts.input)
	if err != nil {
		return err
	}
	if err := hg.SetupBlocks(hypergraph.Index(opts.k), opts.imbalance/100); err != nil {
		return err
	}

	params := blackbox.DefaultParams(tag)
	params.Seed = opts.seed
	params.NSolutions = opts.poolSize
	params.NCycles = opts.vCycles
	params.ImbalanceFactor = opts.imbalance / 100
	params.MovesPerElement = opts.moveRatio
	params.MinCoarseningFactor = opts.minCFactor
	params.MaxCoarseningFactor = opts.maxCFactor
	params.MinCoarseningNodes = int32(opts.minCNodes)

	opt := blackbox.NewOptimizer(params)
	opt.Logger = logger

	if opts.initial != "" {
		seed, err := loadInitialSolution(opts.initial, hg.NBlocks())
		if err != nil {
			return err
		}
		opt.Initial = seed
	}

	best, vec, err := opt.Run(hg)
	if err != nil {
		return err
	}
	logger.Infof("best objective vector: %v", vec)

	return writeSolution(opts.output, best, stdout)
}

func loadHypergraph(path string) (*hypergraph.Hypergraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fail("minipart: opening input: %w", err)
	}
	defer f.Close()

	r, err := hgrio.MaybeGzipReader(f, path)
	if err != nil {
		return nil, fail("minipart: decompressing input: %w", err)
	}
	return hgrio.ReadHgr(r, path)
}

func loadInitialSolution(path string, nParts hypergraph.Index) (*solution.Solution, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fail("minipart: opening initial solution: %w", err)
	}
	defer f.Close()

	r, err := hgrio.MaybeGzipReader(f, path)
	if err != nil {
		return nil, fail("minipart: decompressing initial solution: %w", err)
	}
	return hgrio.ReadSol(r, nParts, path)
}

func writeSolution(path string, sol *solution.Solution, stdout io.Writer) error {
	if path == "" {
		return hgrio.WriteSol(stdout, sol)
	}
	f, err := os.Create(path)
	if err != nil {
		return fail("minipart: creating output: %w", err)
	}
	defer f.Close()

	w := hgrio.MaybeGzipWriter(f, path)
	defer w.Close()
	return hgrio.WriteSol(w, sol)
}
