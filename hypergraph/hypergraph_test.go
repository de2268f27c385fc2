package hypergraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-minipart/minipart/hypergraph"
	"github.com/go-minipart/minipart/solution"
)

func TestNewBuildsConsistentCSR(t *testing.T) {
	hg, err := hypergraph.New(3, [][]hypergraph.Index{{0, 1, 2}}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, hg.CheckConsistency())
	require.EqualValues(t, 3, hg.NNodes())
	require.EqualValues(t, 1, hg.NHedges())
	require.Equal(t, []hypergraph.Index{0, 1, 2}, hg.HedgeNodes(0))
}

func TestNewRejectsOutOfRangePin(t *testing.T) {
	_, err := hypergraph.New(2, [][]hypergraph.Index{{0, 5}}, nil, nil)
	require.Error(t, err)
}

// Trivial scenario: 3 nodes, 1 hyperedge spanning all of them, K=2.
// Node 0 alone in block 0, nodes 1-2 in block 1: the hyperedge is cut
// (spans both blocks), so cut=1, soed=1*2=2.
func TestTrivialTwoBlockScenario(t *testing.T) {
	hg, err := hypergraph.New(3, [][]hypergraph.Index{{0, 1, 2}}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, hg.SetupBlocks(2, 0.1))

	sol := solution.FromSlice([]solution.Index{0, 1, 1}, 2)
	require.EqualValues(t, 1, hg.Cut(sol))
	require.EqualValues(t, 2, hg.Soed(sol))
	require.EqualValues(t, 1, hg.MaxDegree(sol))
}

// Parallel-hedge-merge scenario: 2 nodes, 3 hyperedges all spanning
// {0,1}; coarsening with the identity mapping (every node its own
// super-node) must still pass through merge, collapsing the 3
// identical hyperedges into 1 with summed weight.
func TestParallelHedgeMerge(t *testing.T) {
	hg, err := hypergraph.New(2, [][]hypergraph.Index{{0, 1}, {1, 0}, {0, 1}}, nil, []int64{1, 2, 3})
	require.NoError(t, err)

	identity := solution.FromSlice([]solution.Index{0, 1}, 2)
	coarse, err := hg.Coarsen(identity)
	require.NoError(t, err)
	require.EqualValues(t, 1, coarse.NHedges())
	require.EqualValues(t, 6, coarse.HedgeWeight(0))
}

func TestMergeParallelHedgesStandalone(t *testing.T) {
	hg, err := hypergraph.New(2, [][]hypergraph.Index{{0, 1}, {1, 0}, {0, 1}}, nil, []int64{1, 2, 3})
	require.NoError(t, err)

	merged, err := hg.MergeParallelHedges()
	require.NoError(t, err)
	require.EqualValues(t, 1, merged.NHedges())
	require.EqualValues(t, 6, merged.HedgeWeight(0))
	require.EqualValues(t, 2, merged.NNodes())
}

func TestCoarsenDropsDegenerateHedges(t *testing.T) {
	hg, err := hypergraph.New(4, [][]hypergraph.Index{{0, 1}, {2, 3}}, nil, nil)
	require.NoError(t, err)

	// Fold 0,1 into super-node 0 and 2,3 into super-node 1: both
	// hyperedges collapse to a single distinct pin and must be dropped.
	mapping := solution.FromSlice([]solution.Index{0, 0, 1, 1}, 2)
	coarse, err := hg.Coarsen(mapping)
	require.NoError(t, err)
	require.EqualValues(t, 0, coarse.NHedges())
	require.EqualValues(t, 2, coarse.NNodes())
}

func TestSetupBlocksCapacityFormula(t *testing.T) {
	hg, err := hypergraph.New(3, [][]hypergraph.Index{{0, 1, 2}}, []int64{10, 10, 10}, nil)
	require.NoError(t, err)
	require.NoError(t, hg.SetupBlocks(3, 0.0))
	// total=30, totalCapacity=30, base=10, block0=30-20=10.
	require.EqualValues(t, 10, hg.BlockCapacity(0))
	require.EqualValues(t, 10, hg.BlockCapacity(1))
	require.EqualValues(t, 10, hg.BlockCapacity(2))
}

// Connectivity scenario: 4 nodes, 3 hyperedges, only one cut. Soed sums
// weight*degree over every hyperedge -- the two uncut ones contribute
// their weight once each (degree 1), the cut one contributes weight*2
// -- giving soed=4; Connectivity subtracts the total weight of all
// three hyperedges (3), giving +1, matching the non-negative
// Sum_e w(e)*(lambda(e)-1) definition.
func TestConnectivitySubtractsTotalHedgeWeight(t *testing.T) {
	hg, err := hypergraph.New(4, [][]hypergraph.Index{{0, 1}, {2, 3}, {0, 2}}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, hg.SetupBlocks(2, 0.5))

	sol := solution.FromSlice([]solution.Index{0, 0, 1, 1}, 2)
	require.EqualValues(t, 4, hg.Soed(sol))
	require.EqualValues(t, 3, hg.TotalHedgeWeight())
	require.EqualValues(t, 1, hg.Connectivity(sol))
	require.EqualValues(t,
		int64(100.0*float64(hg.Connectivity(sol))*hg.RatioPenalty(sol)),
		hg.RatioConnectivity(sol))
}

func TestSetupBlocksRejectsNonPositiveK(t *testing.T) {
	hg, err := hypergraph.New(1, nil, nil, nil)
	require.NoError(t, err)
	require.Error(t, hg.SetupBlocks(0, 0.1))
}
