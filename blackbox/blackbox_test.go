package blackbox_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-minipart/minipart/blackbox"
	"github.com/go-minipart/minipart/hypergraph"
	"github.com/go-minipart/minipart/objective"
)

func buildGrid(t *testing.T, n int32) *hypergraph.Hypergraph {
	t.Helper()
	var pins [][]hypergraph.Index
	for i := int32(0); i < n; i++ {
		pins = append(pins, []hypergraph.Index{i, (i + 1) % n})
		pins = append(pins, []hypergraph.Index{i, (i + 3) % n})
	}
	hg, err := hypergraph.New(n, pins, nil, nil)
	require.NoError(t, err)
	require.NoError(t, hg.SetupBlocks(4, 0.1))
	return hg
}

func TestRunProducesConsistentSolution(t *testing.T) {
	hg := buildGrid(t, 40)
	params := blackbox.DefaultParams(objective.Cut)
	params.NSolutions = 4
	params.NCycles = 2
	params.MinCoarseningNodes = 5

	opt := blackbox.NewOptimizer(params)
	sol, vec, err := opt.Run(hg)
	require.NoError(t, err)
	require.NoError(t, sol.CheckConsistency())
	require.NotNil(t, vec)
	require.EqualValues(t, 40, sol.NNodes())
}

func TestRunIsDeterministicGivenSeed(t *testing.T) {
	hg := buildGrid(t, 30)

	run := func() objective.Vector {
		params := blackbox.DefaultParams(objective.Soed)
		params.Seed = 123
		params.NSolutions = 3
		params.NCycles = 1
		params.MinCoarseningNodes = 5
		opt := blackbox.NewOptimizer(params)
		_, vec, err := opt.Run(hg)
		require.NoError(t, err)
		return vec
	}

	require.Equal(t, run(), run())
}
