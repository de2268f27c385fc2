package objective_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-minipart/minipart/hypergraph"
	"github.com/go-minipart/minipart/objective"
	"github.com/go-minipart/minipart/solution"
)

func TestTagStringParseRoundTrip(t *testing.T) {
	for _, tag := range []objective.Tag{
		objective.Cut, objective.Soed, objective.MaxDegree,
		objective.DaisyChainDistance, objective.DaisyChainMaxDegree,
		objective.RatioCut, objective.RatioSoed, objective.RatioMaxDegree,
	} {
		parsed, err := objective.ParseTag(tag.String())
		require.NoError(t, err)
		require.Equal(t, tag, parsed)
	}
}

func TestParseTagAliases(t *testing.T) {
	tag, err := objective.ParseTag("connectivity")
	require.NoError(t, err)
	require.Equal(t, objective.Soed, tag)

	tag, err = objective.ParseTag("ratio-connectivity")
	require.NoError(t, err)
	require.Equal(t, objective.RatioSoed, tag)
}

func TestIsRatioIsDaisyChain(t *testing.T) {
	require.True(t, objective.RatioCut.IsRatio())
	require.False(t, objective.Cut.IsRatio())
	require.True(t, objective.DaisyChainMaxDegree.IsDaisyChain())
	require.False(t, objective.Soed.IsDaisyChain())
}

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

// Invariant: incremental Move matches full recompute after every move,
// for every objective variant, over many random moves.
func TestIncrementalMatchesBatchAfterEveryMove(t *testing.T) {
	tags := []objective.Tag{
		objective.Cut, objective.Soed, objective.MaxDegree,
		objective.DaisyChainDistance, objective.DaisyChainMaxDegree,
		objective.RatioCut, objective.RatioSoed, objective.RatioMaxDegree,
	}
	for _, tag := range tags {
		hg := buildRing(t, 10)
		rng := rand.New(rand.NewSource(42))
		parts := make([]solution.Index, hg.NNodes())
		for i := range parts {
			parts[i] = solution.Index(rng.Intn(3))
		}
		sol := solution.FromSlice(parts, 3)

		inc, err := objective.New(tag, hg, sol)
		require.NoError(t, err)
		require.NoError(t, inc.CheckConsistency())

		for i := 0; i < 200; i++ {
			node := solution.Index(rng.Intn(int(hg.NNodes())))
			to := solution.Index(rng.Intn(3))
			inc.Move(node, to)
			require.NoError(t, inc.CheckConsistency(), "tag=%s move=%d", tag, i)
		}
	}
}

func TestMoveNoOpWhenSameBlock(t *testing.T) {
	hg := buildRing(t, 6)
	sol := solution.FromSlice([]solution.Index{0, 0, 1, 1, 2, 2}, 3)
	inc, err := objective.New(objective.Cut, hg, sol)
	require.NoError(t, err)
	before := inc.Objectives().Clone()
	inc.Move(0, 0)
	require.Equal(t, before, inc.Objectives())
}
