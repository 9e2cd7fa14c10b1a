package graph

import (
	"github.com/succinctgraph/psgraph/pkg/collections"
	"github.com/succinctgraph/psgraph/pkg/errors"
)

// ValidateSpanningTree confirms t is a spanning tree of a graph with n
// vertices: exactly n-1 undirected edges, rooted at vertex 0, reaching
// every vertex via a single BFS walk over t's half-edges. It is the one
// place Bitset earns its keep in this package: visited is a plain
// membership set, never touched concurrently, so the non-atomic Bitset is
// the right tool rather than a CAS-based bit vector.
func ValidateSpanningTree(t *Tree, n uint32) error {
	if t.NumNodes != n {
		return errors.Wrap(errors.CodeNotSpanning, "tree node count does not match graph vertex count", nil)
	}
	if len(t.E) != 2*int(n-1) && n > 0 {
		return errors.New(errors.CodeNotSpanning, "tree does not have exactly n-1 undirected edges")
	}

	visited := collections.NewBitset(int(n))
	queue := collections.NewQueue[uint32](int(n))

	visited.Set(0)
	queue.Enqueue(0)
	count := 1

	for {
		v, ok := queue.Dequeue()
		if !ok {
			break
		}
		node := t.N[v]
		for i := node.First; i <= node.Last; i++ {
			w := t.E[i].Tgt
			if !visited.Test(int(w)) {
				visited.Set(int(w))
				queue.Enqueue(w)
				count++
			}
		}
	}

	if count != int(n) {
		return errors.New(errors.CodeNotSpanning, "tree does not reach every vertex of the graph")
	}
	return nil
}
