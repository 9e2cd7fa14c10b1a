package graph

import (
	"bufio"
	"context"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/succinctgraph/psgraph/pkg/collections"
	"github.com/succinctgraph/psgraph/pkg/errors"
	"github.com/succinctgraph/psgraph/pkg/parallel"
)

// tokenPool reuses the per-line token slices produced while parsing
// adjacency lists, avoiding one allocation per line on large graphs.
var tokenPool = collections.NewSlicePool[string](64)

// ReadGraph parses a graph file in the format:
//
//	<n>
//	<m>
//	<vertex> <adjacent vertex> <adjacent vertex> ...
//	...
//
// one adjacency line per vertex, vertex indices contiguous in [0, n). It
// fills First/Last for every vertex and computes every half-edge's twin
// pointer PTgt. It does not fill Vertex.Order; ReadCanonicalOrder does that.
func ReadGraph(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.CodeIOError, "opening graph file "+path, err)
	}
	defer f.Close()

	n, m, err := readCounts(f, true)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errors.New(errors.CodeInvalidInput, "graph has zero vertices")
	}

	// Half-edge index 0 is a reserved sentinel: the on-disk adjacency
	// data for a graph's m edges is packed starting at index 1, leaving
	// E[0] a zero-value placeholder that every pass over G's half-edges
	// (twin-pointer filling, orientation counting) skips. Trees carry no such
	// sentinel; ReadTree packs its edges starting at 0.
	g := &Graph{
		V: make([]Vertex, n),
		E: make([]Edge, 2*m+1),
		N: uint32(n),
		M: uint32(m),
	}

	if err := scanAdjacency(f, 2, 1, g.V, g.E); err != nil {
		return nil, err
	}
	if err := fillTwinPointers(g.E, g.V, 1); err != nil {
		return nil, err
	}
	return g, nil
}

// ReadTree parses a tree file with the same on-disk shape as a graph file
// but a single leading count line (the node count; the edge count is
// implied, 2(n-1)).
func ReadTree(path string) (*Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.CodeIOError, "opening tree file "+path, err)
	}
	defer f.Close()

	n, _, err := readCounts(f, false)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errors.New(errors.CodeInvalidInput, "tree has zero nodes")
	}

	t := &Tree{
		N:        make([]Node, n),
		E:        make([]Edge, 2*(n-1)),
		NumNodes: uint32(n),
	}

	vs := make([]Vertex, n)
	if err := scanAdjacency(f, 1, 0, vs, t.E); err != nil {
		return nil, err
	}
	for i, v := range vs {
		t.N[i] = Node{First: v.First, Last: v.Last}
	}
	if err := fillTwinPointersTree(t.E, t.N); err != nil {
		return nil, err
	}
	return t, nil
}

// ReadCanonicalOrder parses a text file whose first line is a vertex count
// and whose subsequent lines each contain "<vertex> <order>", filling an
// array order[0..n).
func ReadCanonicalOrder(path string, n uint32) ([]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.CodeIOError, "opening order file "+path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !sc.Scan() {
		return nil, errors.New(errors.CodeParseError, "order file is empty")
	}
	// first line is a count; the authoritative vertex count n comes from
	// the graph, so it is read and discarded here.

	order := make([]uint32, n)
	seen := make([]bool, n)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, errors.New(errors.CodeParseError, "malformed order line: "+line)
		}
		v, err1 := strconv.ParseUint(fields[0], 10, 32)
		o, err2 := strconv.ParseUint(fields[1], 10, 32)
		if err1 != nil || err2 != nil {
			return nil, errors.Wrap(errors.CodeParseError, "malformed order line: "+line, firstNonNil(err1, err2))
		}
		if v >= uint64(n) {
			return nil, errors.New(errors.CodeInvalidInput, "order file references vertex out of range")
		}
		order[v] = uint32(o)
		seen[v] = true
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.CodeIOError, "reading order file", err)
	}
	for i, ok := range seen {
		if !ok {
			return nil, errors.New(errors.CodeInvalidInput, "order file missing an entry for vertex "+strconv.Itoa(i))
		}
	}
	return order, nil
}

// ApplyCanonicalOrder stamps a canonical order array, as returned by
// ReadCanonicalOrder, onto g's vertices.
func ApplyCanonicalOrder(g *Graph, order []uint32) error {
	if len(order) != len(g.V) {
		return errors.New(errors.CodeInvalidInput, "order array length does not match vertex count")
	}
	for i, o := range order {
		g.V[i].Order = o
	}
	return nil
}

func firstNonNil(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// readCounts reads the leading count line(s) of a graph (n then m) or a
// tree (n only), then rewinds so scanAdjacency can re-read from the top
// with a known number of lines to skip.
func readCounts(f io.ReadSeeker, hasEdgeCount bool) (n, m int, err error) {
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !sc.Scan() {
		return 0, 0, errors.New(errors.CodeParseError, "missing vertex count line")
	}
	n, err = strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return 0, 0, errors.Wrap(errors.CodeParseError, "invalid vertex count", err)
	}

	if hasEdgeCount {
		if !sc.Scan() {
			return 0, 0, errors.New(errors.CodeParseError, "missing edge count line")
		}
		m, err = strconv.Atoi(strings.TrimSpace(sc.Text()))
		if err != nil {
			return 0, 0, errors.Wrap(errors.CodeParseError, "invalid edge count", err)
		}
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, 0, errors.Wrap(errors.CodeIOError, "rewinding file", err)
	}
	return n, m, nil
}

// scanAdjacency re-reads the file from the top, skips the headerLines
// count line(s), and fills vs/es from the adjacency lines that follow: one
// line per vertex, "<src> <tgt0> <tgt1> ...", in the order half-edges are
// laid out in es, starting at es[startIndex].
func scanAdjacency(f io.ReadSeeker, headerLines, startIndex int, vs []Vertex, es []Edge) error {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(errors.CodeIOError, "rewinding file", err)
	}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for i := 0; i < headerLines; i++ {
		if !sc.Scan() {
			return errors.New(errors.CodeParseError, "truncated header")
		}
	}

	m := startIndex
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return errors.New(errors.CodeParseError, "malformed adjacency line: "+line)
		}

		src, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return errors.Wrap(errors.CodeParseError, "malformed adjacency line: "+line, err)
		}
		if int(src) >= len(vs) {
			return errors.New(errors.CodeInvalidInput, "adjacency line references vertex out of range")
		}

		tok := tokenPool.Get()
		*tok = append((*tok)[:0], fields[1:]...)

		vs[src].First = uint32(m)
		for _, tgtStr := range *tok {
			tgt, err := strconv.ParseUint(tgtStr, 10, 32)
			if err != nil {
				tokenPool.Put(tok)
				return errors.Wrap(errors.CodeParseError, "malformed target in adjacency line: "+line, err)
			}
			if m >= len(es) {
				tokenPool.Put(tok)
				return errors.New(errors.CodeInvalidInput, "adjacency lines describe more half-edges than expected")
			}
			es[m].Src = uint32(src)
			es[m].Tgt = uint32(tgt)
			m++
		}
		vs[src].Last = uint32(m - 1)
		tokenPool.Put(tok)
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(errors.CodeIOError, "reading adjacency", err)
	}
	if m != len(es) {
		return errors.New(errors.CodeInvalidInput, "adjacency lines do not account for every half-edge")
	}
	return nil
}

// findTwin scans the half-edge range [first, last] of es for the half-edge
// whose target is es[i].Src, the twin of half-edge i. Shared by
// fillTwinPointers and fillTwinPointersTree so the two different
// parallel-dispatch mechanisms below stay in exact agreement on what
// "finding a twin" means.
func findTwin(es []Edge, i int, first, last uint32) (uint32, bool) {
	for j := first; j <= last; j++ {
		if es[j].Tgt == es[i].Src {
			return j, true
		}
	}
	return 0, false
}

// fillTwinPointers computes, for every half-edge i, the index of its twin
// (the half-edge Tgt->Src) by scanning the target vertex's adjacency range.
// Parallelized over half-edges with a ChunkProcessor: each worker only reads
// V/E and writes its own disjoint slice of PTgt, so no synchronization is
// needed beyond the implicit barrier ProcessChunks already provides.
func fillTwinPointers(es []Edge, vs []Vertex, startIndex int) error {
	n := len(es) - startIndex
	if n <= 0 {
		return nil
	}
	indices := make([]int, n)
	for k := range indices {
		indices[k] = startIndex + k
	}

	cp := parallel.NewChunkProcessor[int, error](parallel.PoolConfig{MaxWorkers: runtime.NumCPU()})
	return cp.ProcessChunks(context.Background(), indices,
		func(ctx context.Context, chunk []int, workerID int) error {
			for _, i := range chunk {
				tgt := vs[es[i].Tgt]
				j, found := findTwin(es, i, tgt.First, tgt.Last)
				if !found {
					return errors.New(errors.CodeInvalidInput, "half-edge has no twin; graph is not simple/undirected")
				}
				es[i].PTgt = j
			}
			return nil
		},
		firstChunkError,
	)
}

// fillTwinPointersTree mirrors fillTwinPointers for a tree's half-edges, but
// dispatches one task per half-edge through a WorkerPool rather than static
// chunks: trees are small enough (2(n-1) half-edges) that per-task channel
// dispatch overhead doesn't matter, and it exercises the pool's task/result
// machinery directly instead of going through ChunkProcessor a second time.
func fillTwinPointersTree(es []Edge, ns []Node) error {
	if len(es) == 0 {
		return nil
	}
	indices := make([]int, len(es))
	for k := range indices {
		indices[k] = k
	}

	pool := parallel.NewWorkerPool[int, struct{}](parallel.PoolConfig{MaxWorkers: runtime.NumCPU()})
	results := pool.ExecuteFunc(context.Background(), indices, func(ctx context.Context, i int) (struct{}, error) {
		tgt := ns[es[i].Tgt]
		j, found := findTwin(es, i, tgt.First, tgt.Last)
		if !found {
			return struct{}{}, errors.New(errors.CodeInvalidInput, "tree half-edge has no twin; tree is malformed")
		}
		es[i].PTgt = j
		return struct{}{}, nil
	})
	for _, r := range results {
		if r.Error != nil {
			return r.Error
		}
	}
	return nil
}

// firstChunkError reduces a ChunkProcessor's per-chunk error results down to
// the first non-nil one, matching ParallelFor's first-error-wins contract.
func firstChunkError(results []error) error {
	for _, err := range results {
		if err != nil {
			return err
		}
	}
	return nil
}
