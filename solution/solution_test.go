package solution_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-minipart/minipart/solution"
)

func TestFromSliceComputesNParts(t *testing.T) {
	s := solution.FromSlice([]solution.Index{0, 2, 1, 2}, 0)
	require.EqualValues(t, 3, s.NParts())
}

func TestFromSliceRespectsExplicitNParts(t *testing.T) {
	s := solution.FromSlice([]solution.Index{0, 1}, 5)
	require.EqualValues(t, 5, s.NParts())
}

func TestCoarsenFromAgreeingPool(t *testing.T) {
	// Four fine nodes, folded pairwise into two super-nodes that agree
	// on block assignment within each pair.
	sol := solution.FromSlice([]solution.Index{0, 0, 1, 1}, 2)
	mapping := solution.FromSlice([]solution.Index{0, 0, 1, 1}, 2)

	coarse, err := sol.CoarsenStrict(mapping)
	require.NoError(t, err)
	require.Equal(t, []solution.Index{0, 1}, coarse.Parts)
	require.EqualValues(t, 2, coarse.NParts())
}

func TestCoarsenStrictRejectsDisagreement(t *testing.T) {
	sol := solution.FromSlice([]solution.Index{0, 1, 1, 1}, 2)
	mapping := solution.FromSlice([]solution.Index{0, 0, 1, 1}, 2)

	_, err := sol.CoarsenStrict(mapping)
	require.Error(t, err)
}

func TestUncoarsenRoundTrip(t *testing.T) {
	fine := solution.FromSlice([]solution.Index{0, 0, 1, 1}, 2)
	mapping := solution.FromSlice([]solution.Index{0, 0, 1, 1}, 2)

	coarse, err := fine.CoarsenStrict(mapping)
	require.NoError(t, err)

	back := coarse.Uncoarsen(mapping)
	require.True(t, fine.Equal(back))
}

func TestCheckConsistencyCatchesOutOfRange(t *testing.T) {
	s := solution.FromSlice([]solution.Index{0, 1, 2}, 2)
	err := s.CheckConsistency()
	require.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	s := solution.New(3, 2)
	c := s.Clone()
	c.Set(0, 1)
	require.NotEqual(t, s.Get(0), c.Get(0))
}
