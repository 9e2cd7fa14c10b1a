package graph

import (
	"bufio"
	"fmt"
	"os"

	"github.com/succinctgraph/psgraph/pkg/errors"
)

// WriteGraph serializes g back into the on-disk format ReadGraph expects.
// It exists for tests that need to build graph fixtures programmatically
// and round-trip them through the real parser rather than hand-writing
// adjacency text.
func WriteGraph(path string, g *Graph) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.CodeIOError, "creating graph file "+path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, g.N)
	fmt.Fprintln(w, g.M)
	if err := writeAdjacency(w, g.V, g.E); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(errors.CodeIOError, "flushing graph file", err)
	}
	return nil
}

// WriteTree serializes t back into the on-disk format ReadTree expects.
func WriteTree(path string, t *Tree) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.CodeIOError, "creating tree file "+path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, t.NumNodes)
	vs := make([]Vertex, len(t.N))
	for i, node := range t.N {
		vs[i] = Vertex{First: node.First, Last: node.Last}
	}
	if err := writeAdjacency(w, vs, t.E); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(errors.CodeIOError, "flushing tree file", err)
	}
	return nil
}

func writeAdjacency(w *bufio.Writer, vs []Vertex, es []Edge) error {
	for i, v := range vs {
		fmt.Fprintf(w, "%d", i)
		for j := v.First; j <= v.Last && int(j) < len(es); j++ {
			fmt.Fprintf(w, " %d", es[j].Tgt)
		}
		fmt.Fprintln(w)
	}
	return nil
}
