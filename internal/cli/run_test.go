package cli

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// trivialHgr is spec.md §8's "trivial two-block" scenario: 3 nodes of
// weight 1, one hyperedge touching all three.
const trivialHgr = "1 3 0\n1 2 3\n"

func TestRunProducesOneLinePerNode(t *testing.T) {
	dir := t.TempDir()
	input := dir + "/toy.hgr"
	require.NoError(t, os.WriteFile(input, []byte(trivialHgr), 0o644))

	opts := newOptions()
	opts.input = input
	opts.k = 2
	opts.poolSize = 2
	opts.vCycles = 1

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), opts, &out))

	lines := strings.Fields(out.String())
	require.Len(t, lines, 3)
}

func TestRunRejectsMissingInput(t *testing.T) {
	opts := newOptions()
	opts.k = 2

	var out bytes.Buffer
	err := run(context.Background(), opts, &out)
	require.Error(t, err)
}

func TestRunRejectsNonPositiveK(t *testing.T) {
	dir := t.TempDir()
	input := dir + "/toy.hgr"
	require.NoError(t, os.WriteFile(input, []byte(trivialHgr), 0o644))

	opts := newOptions()
	opts.input = input
	opts.k = 0

	var out bytes.Buffer
	err := run(context.Background(), opts, &out)
	require.Error(t, err)
}

func TestRunRejectsUnknownObjective(t *testing.T) {
	dir := t.TempDir()
	input := dir + "/toy.hgr"
	require.NoError(t, os.WriteFile(input, []byte(trivialHgr), 0o644))

	opts := newOptions()
	opts.input = input
	opts.k = 2
	opts.objective = "not-a-real-objective"

	var out bytes.Buffer
	err := run(context.Background(), opts, &out)
	require.Error(t, err)
}
