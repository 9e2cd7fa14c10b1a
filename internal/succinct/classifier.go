package succinct

import (
	"context"
	"sync/atomic"

	"github.com/succinctgraph/psgraph/internal/graph"
	"github.com/succinctgraph/psgraph/pkg/errors"
	"github.com/succinctgraph/psgraph/pkg/parallel"
)

// CountEdgeOrientations classifies every half-edge of g by comparing the
// canonical order of its endpoints, and tallies, per tree node v, how
// many of v's graph-incident half-edges point to a lower-order neighbor
// (LowerNumb) versus a higher-order one (HigherNumb). Both counters are
// incremented concurrently from every worker via atomic adds, then, for
// every non-root v, corrected for v's tree half-edges: -1 on LowerNumb
// for the parent edge, and -(degree-1) on HigherNumb for the edges to
// v's children, so the edge classifier can use them directly as bracket
// offsets. The root's counters are left uncorrected.
func CountEdgeOrientations(g *graph.Graph, t *graph.Tree, p int) (lowerNumb, higherNumb []uint32, err error) {
	n := t.NumNodes
	lower := make([]atomic.Uint32, n)
	higher := make([]atomic.Uint32, n)

	// Half-edge 0 is a reserved sentinel (see ReadGraph); the real
	// adjacency data starts at index 1.
	err = parallel.ParallelFor(context.Background(), len(g.E)-1, p, func(ctx context.Context, chunk parallel.Range) error {
		for i := chunk.Lo; i < chunk.Hi; i++ {
			e := g.E[i+1]
			if g.V[e.Src].Order > g.V[e.Tgt].Order {
				lower[e.Src].Add(1)
			} else {
				higher[e.Src].Add(1)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	err = parallel.ParallelFor(context.Background(), int(n)-1, p, func(ctx context.Context, chunk parallel.Range) error {
		for i := chunk.Lo; i < chunk.Hi; i++ {
			v := i + 1
			lower[v].Add(^uint32(0)) // lower[v]--
			node := t.N[v]
			higher[v].Add(^(node.Last - node.First) + 1) // higher[v] -= degree-1
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	lowerNumb = make([]uint32, n)
	higherNumb = make([]uint32, n)
	for i := range lowerNumb {
		lowerNumb[i] = lower[i].Load()
		higherNumb[i] = higher[i].Load()
	}
	return lowerNumb, higherNumb, nil
}

// ClassifyTreeEdges builds the two Euler-tour linked lists (ET for S1,
// ET2 for S2) threaded through the spanning tree's half-edges: for each
// tree half-edge, decide whether it is a forward edge (toward a
// higher-order endpoint) or a backward edge (toward a lower-order one,
// i.e. back up to the parent), assign it its rank weight, and link it
// to the half-edge that continues the Euler tour.
func ClassifyTreeEdges(g *graph.Graph, t *graph.Tree, lowerNumb, higherNumb []uint32, p int) (et, et2 []EulerNode, err error) {
	numTreeEdges := len(t.E)
	et = make([]EulerNode, numTreeEdges)
	et2 = make([]EulerNode, numTreeEdges)

	if numTreeEdges == 0 {
		return et, et2, nil
	}

	rootLast := t.N[0].Last

	err = parallel.ParallelFor(context.Background(), numTreeEdges, p, func(ctx context.Context, chunk parallel.Range) error {
		for i := chunk.Lo; i < chunk.Hi; i++ {
			e := t.E[i]
			tgt := t.N[e.Tgt]

			if g.V[e.Src].Order < g.V[e.Tgt].Order {
				// Forward edge: descending into the tree.
				et2[i].Value = 1
				et[i].Rank = lowerNumb[e.Tgt] + 1
				et2[i].Rank = 1

				if tgt.First == tgt.Last {
					// Leaf: only way back is the twin edge.
					et[i].Next = int32(e.PTgt)
					et2[i].Next = int32(e.PTgt)
				} else {
					et[i].Next = int32(tgt.First + 1)
					et2[i].Next = int32(tgt.First + 1)
				}
				continue
			}

			// Backward edge: ascending back toward the parent.
			et2[i].Value = 0
			et[i].Rank = higherNumb[e.Src] + 1
			et2[i].Rank = 1

			if e.Tgt == 0 && e.PTgt == rootLast {
				et[i].Next = 0
				et2[i].Next = 0
				continue
			}

			if e.PTgt == t.N[e.Tgt].Last {
				et[i].Next = int32(t.N[e.Tgt].First)
				et2[i].Next = int32(t.N[e.Tgt].First)
			} else {
				et[i].Next = int32(e.PTgt + 1)
				et2[i].Next = int32(e.PTgt + 1)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if len(et) < 2 {
		return nil, nil, errors.New(errors.CodeInvalidInput, "tree is too small to build an Euler tour")
	}
	return et, et2, nil
}
