package localsearch_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-minipart/minipart/hypergraph"
	"github.com/go-minipart/minipart/localsearch"
	"github.com/go-minipart/minipart/objective"
	"github.com/go-minipart/minipart/solution"
)

func buildRing(t *testing.T, n int32) *hypergraph.Hypergraph {
	t.Helper()
	var pins [][]hypergraph.Index
	for i := int32(0); i < n; i++ {
		pins = append(pins, []hypergraph.Index{i, (i + 1) % n})
	}
	hg, err := hypergraph.New(n, pins, nil, nil)
	require.NoError(t, err)
	require.NoError(t, hg.SetupBlocks(3, 0.5))
	return hg
}

func TestLocalSearchNeverIncreasesObjective(t *testing.T) {
	hg := buildRing(t, 12)
	rng := rand.New(rand.NewSource(7))
	parts := make([]solution.Index, hg.NNodes())
	for i := range parts {
		parts[i] = solution.Index(rng.Intn(3))
	}
	sol := solution.FromSlice(parts, 3)

	inc, err := objective.New(objective.Cut, hg, sol)
	require.NoError(t, err)
	before := inc.Objectives().Clone()

	opt := localsearch.New(hg, 4.0)
	opt.Run(rng, hg, inc, sol)

	after := inc.Objectives()
	require.True(t, after.Compare(before) <= 0)
	require.NoError(t, inc.CheckConsistency())
}

func TestLocalSearchIsDeterministicGivenSeed(t *testing.T) {
	hg := buildRing(t, 10)

	run := func(seed int64) objective.Vector {
		rng := rand.New(rand.NewSource(seed))
		parts := make([]solution.Index, hg.NNodes())
		for i := range parts {
			parts[i] = solution.Index(rng.Intn(3))
		}
		sol := solution.FromSlice(parts, 3)
		inc, err := objective.New(objective.Soed, hg, sol)
		require.NoError(t, err)
		opt := localsearch.New(hg, 2.0)
		opt.Run(rng, hg, inc, sol)
		return inc.Objectives()
	}

	require.Equal(t, run(99), run(99))
}
