// Package hgrio implements the external file formats of spec.md §6:
// the hMETIS ".hgr" hypergraph format (read and write) and the
// one-int-per-line ".sol" solution format. The readers and writers
// work on plain streams; MaybeGzipReader and MaybeGzipWriter add
// gzip (de)compression, via klauspost/compress/gzip, when a file name
// ends in ".gz".
package hgrio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/go-minipart/minipart/errs"
	"github.com/go-minipart/minipart/hypergraph"
	"github.com/go-minipart/minipart/solution"
)

// hgrParams values, per spec.md §6, read as decimal digits: a ones
// digit of 1 (params 1 or 11) means the file carries hyperedge weights,
// a tens digit of 1 (params 10 or 11) means it carries node weights.
const (
	paramHedgeWeights = 1
	paramNodeWeights  = 10
)

// ReadHgr parses an hMETIS ".hgr" file: a header line "<H> <N>
// [params]" (H hyperedges, N nodes, params in {0,1,10,11} selecting
// hedge-weight and/or node-weight columns), one line per hyperedge
// (optionally weight-prefixed, then 1-based pin indices), and if
// node-weights are present, one trailing line per node. "%"-prefixed
// and blank lines are skipped throughout, matching
// original_source/src/io.cc's getUncommentedLine helper.
func ReadHgr(r io.Reader, source string) (*hypergraph.Hypergraph, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0

	next := func() (string, bool) {
		for sc.Scan() {
			line++
			text := strings.TrimSpace(sc.Text())
			if text == "" || strings.HasPrefix(text, "%") {
				continue
			}
			return text, true
		}
		return "", false
	}

	header, ok := next()
	if !ok {
		return nil, errs.NewParseError(source, line, "empty input: missing header line")
	}
	headerFields := strings.Fields(header)
	if len(headerFields) < 2 {
		return nil, errs.NewParseError(source, line, "header line must have at least <n_hedges> <n_nodes>")
	}
	nHedges64, err := strconv.Atoi(headerFields[0])
	if err != nil {
		return nil, errs.NewParseError(source, line, fmt.Sprintf("invalid hyperedge count %q", headerFields[0]))
	}
	nNodes64, err := strconv.Atoi(headerFields[1])
	if err != nil {
		return nil, errs.NewParseError(source, line, fmt.Sprintf("invalid node count %q", headerFields[1]))
	}
	params := 0
	if len(headerFields) >= 3 {
		params, err = strconv.Atoi(headerFields[2])
		if err != nil {
			return nil, errs.NewParseError(source, line, fmt.Sprintf("invalid params field %q", headerFields[2]))
		}
		switch params {
		case 0, 1, 10, 11:
		default:
			return nil, errs.NewParseError(source, line, fmt.Sprintf("params field must be one of 0,1,10,11, got %d", params))
		}
	}

	hasHedgeWeights := params == paramHedgeWeights || params == 11
	hasNodeWeights := params == 10 || params == 11

	nHedges := hypergraph.Index(nHedges64)
	nNodes := hypergraph.Index(nNodes64)

	pins := make([][]hypergraph.Index, nHedges)
	hedgeWeights := make([]int64, nHedges)
	for e := hypergraph.Index(0); e < nHedges; e++ {
		text, ok := next()
		if !ok {
			return nil, errs.NewParseError(source, line, fmt.Sprintf("expected %d hyperedge lines, got %d", nHedges, e))
		}
		fields := strings.Fields(text)
		start := 0
		weight := int64(1)
		if hasHedgeWeights {
			if len(fields) < 1 {
				return nil, errs.NewParseError(source, line, "missing hyperedge weight")
			}
			w, err := strconv.ParseInt(fields[0], 10, 64)
			if err != nil {
				return nil, errs.NewParseError(source, line, fmt.Sprintf("invalid hyperedge weight %q", fields[0]))
			}
			weight = w
			start = 1
		}
		if len(fields) <= start {
			return nil, errs.NewParseError(source, line, fmt.Sprintf("hyperedge %d has no pins", e))
		}
		hedgePins := make([]hypergraph.Index, 0, len(fields)-start)
		for _, f := range fields[start:] {
			p, err := strconv.Atoi(f)
			if err != nil {
				return nil, errs.NewParseError(source, line, fmt.Sprintf("invalid pin %q", f))
			}
			if p < 1 || p > nNodes64 {
				return nil, errs.NewParseError(source, line, fmt.Sprintf("pin %d out of range [1,%d]", p, nNodes64))
			}
			hedgePins = append(hedgePins, hypergraph.Index(p-1)) // 1-based -> 0-based
		}
		pins[e] = hedgePins
		hedgeWeights[e] = weight
	}

	nodeWeights := make([]int64, nNodes)
	for i := range nodeWeights {
		nodeWeights[i] = 1
	}
	if hasNodeWeights {
		for v := hypergraph.Index(0); v < nNodes; v++ {
			text, ok := next()
			if !ok {
				return nil, errs.NewParseError(source, line, fmt.Sprintf("expected %d node weight lines, got %d", nNodes, v))
			}
			w, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
			if err != nil {
				return nil, errs.NewParseError(source, line, fmt.Sprintf("invalid node weight %q", text))
			}
			nodeWeights[v] = w
		}
	}

	hg, err := hypergraph.New(nNodes, pins, nodeWeights, hedgeWeights)
	if err != nil {
		return nil, fmt.Errorf("hgrio: %s: %w", source, err)
	}
	return hg, nil
}

// WriteHgr serializes hg back to hMETIS ".hgr" text, always including
// both hyperedge and node weight columns (params=11) so the output is
// lossless regardless of the original file's params field.
func WriteHgr(w io.Writer, hg *hypergraph.Hypergraph) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d 11\n", hg.NHedges(), hg.NNodes()); err != nil {
		return err
	}
	for e := hypergraph.Index(0); e < hg.NHedges(); e++ {
		pins := hg.HedgeNodes(e)
		fields := make([]string, 0, len(pins)+1)
		fields = append(fields, strconv.FormatInt(hg.HedgeWeight(e), 10))
		for _, p := range pins {
			fields = append(fields, strconv.Itoa(int(p)+1)) // 0-based -> 1-based
		}
		if _, err := fmt.Fprintln(bw, strings.Join(fields, " ")); err != nil {
			return err
		}
	}
	for v := hypergraph.Index(0); v < hg.NNodes(); v++ {
		if _, err := fmt.Fprintln(bw, hg.NodeWeight(v)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadSol parses a ".sol" file: one integer block index per line, in
// node order.
func ReadSol(r io.Reader, nParts solution.Index, source string) (*solution.Solution, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var parts []solution.Index
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		b, err := strconv.Atoi(text)
		if err != nil {
			return nil, errs.NewParseError(source, line, fmt.Sprintf("invalid block index %q", text))
		}
		parts = append(parts, solution.Index(b))
	}
	return solution.FromSlice(parts, nParts), nil
}

// WriteSol serializes sol as one block index per line.
func WriteSol(w io.Writer, sol *solution.Solution) error {
	bw := bufio.NewWriter(w)
	for _, p := range sol.Parts {
		if _, err := fmt.Fprintln(bw, p); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// MaybeGzipReader wraps r in a gzip.Reader if name ends in ".gz".
func MaybeGzipReader(r io.Reader, name string) (io.Reader, error) {
	if !strings.HasSuffix(name, ".gz") {
		return r, nil
	}
	return gzip.NewReader(r)
}

// MaybeGzipWriter wraps w in a gzip.Writer if name ends in ".gz". The
// caller must Close the returned io.WriteCloser (a no-op wrapper is
// returned when no compression applies).
func MaybeGzipWriter(w io.Writer, name string) io.WriteCloser {
	if !strings.HasSuffix(name, ".gz") {
		return nopCloser{w}
	}
	return gzip.NewWriter(w)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
