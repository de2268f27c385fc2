package hgrio_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-minipart/minipart/hgrio"
	"github.com/go-minipart/minipart/solution"
)

func TestReadHgrBasic(t *testing.T) {
	input := "% a comment\n3 4 0\n1 2\n2 3 4\n\n1 4\n"
	hg, err := hgrio.ReadHgr(strings.NewReader(input), "<test>")
	require.NoError(t, err)
	require.EqualValues(t, 4, hg.NNodes())
	require.EqualValues(t, 3, hg.NHedges())
	require.Equal(t, []int32{0, 1}, hg.HedgeNodes(0))
}

func TestReadHgrWithWeights(t *testing.T) {
	input := "2 3 11\n5 1 2\n7 2 3\n10\n20\n30\n"
	hg, err := hgrio.ReadHgr(strings.NewReader(input), "<test>")
	require.NoError(t, err)
	require.EqualValues(t, 5, hg.HedgeWeight(0))
	require.EqualValues(t, 7, hg.HedgeWeight(1))
	require.EqualValues(t, 10, hg.NodeWeight(0))
	require.EqualValues(t, 30, hg.NodeWeight(2))
}

func TestReadHgrRejectsOutOfRangePin(t *testing.T) {
	input := "1 2 0\n1 5\n"
	_, err := hgrio.ReadHgr(strings.NewReader(input), "<test>")
	require.Error(t, err)
}

func TestReadHgrRejectsBadParams(t *testing.T) {
	input := "1 2 5\n1 2\n"
	_, err := hgrio.ReadHgr(strings.NewReader(input), "<test>")
	require.Error(t, err)
}

func TestWriteHgrRoundTrip(t *testing.T) {
	input := "2 3 0\n1 2\n2 3\n"
	hg, err := hgrio.ReadHgr(strings.NewReader(input), "<test>")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, hgrio.WriteHgr(&buf, hg))

	hg2, err := hgrio.ReadHgr(&buf, "<roundtrip>")
	require.NoError(t, err)
	require.EqualValues(t, hg.NNodes(), hg2.NNodes())
	require.EqualValues(t, hg.NHedges(), hg2.NHedges())
}

func TestSolRoundTrip(t *testing.T) {
	sol := solution.FromSlice([]solution.Index{0, 1, 2, 1}, 3)
	var buf bytes.Buffer
	require.NoError(t, hgrio.WriteSol(&buf, sol))

	back, err := hgrio.ReadSol(&buf, 3, "<test>")
	require.NoError(t, err)
	require.True(t, sol.Equal(back))
}
