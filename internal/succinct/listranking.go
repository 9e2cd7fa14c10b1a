package succinct

import (
	"context"
	"math"

	"github.com/succinctgraph/psgraph/pkg/parallel"
)

// sublistNode is one splitter's entry in the coarse, length-s list built
// on top of the real length-n list: head is the splitter's position,
// next is the index of the next splitter reached while walking forward
// from head (or -1 if the walk runs off the end of the list first), and
// value accumulates the splitter's absolute rank offset from the head of
// the whole list.
type sublistNode struct {
	head  int32
	next  int32
	value uint32
}

// ListRanking computes, for every node of the singly linked list encoded
// by a[i].Next, its rank: the sum of the Rank weights of every node
// strictly before it in the list. a[0] must be the list head; its rank
// is always 0. The list may be terminated either by a negative Next (a
// plain linear list) or by looping back to index 0 (the shape every
// Euler tour built by ClassifyTreeEdges takes, since the tour always
// closes back on the root's first half-edge) — index 0 is always the
// walk's anchor and terminal in either case.
//
// This is the classic three-phase split-rank-combine parallel list
// ranking algorithm: pick O(log N * P) splitters, walk each splitter's
// sublist independently and in parallel, combine the per-sublist partial
// sums along the (short) splitter chain sequentially, then broadcast
// each node's splitter offset back into its rank in parallel.
func ListRanking(a []EulerNode, p int) error {
	n := len(a)
	if n <= 1 {
		if n == 1 {
			a[0].Rank = 0
		}
		return nil
	}
	if p <= 0 {
		p = 1
	}

	s := int(math.Ceil(math.Log2(float64(n)) * float64(p)))
	if s < 1 {
		s = 1
	}
	if s > n {
		s = n
	}
	chunk := n / s
	if chunk == 0 {
		chunk = 1
	}

	sublists := make([]sublistNode, s)
	headSplitter := make([]int32, n)
	owner := make([]int32, n)
	for i := range headSplitter {
		headSplitter[i] = -1
		owner[i] = -1
	}

	// Phase 1: place the splitters. Each one's own weight becomes the
	// starting offset its own independent walk will be based from,
	// since that walk begins at the node right after it.
	err := parallel.ParallelFor(context.Background(), s, s, func(ctx context.Context, idx parallel.Range) error {
		for i := idx.Lo; i < idx.Hi; i++ {
			x := i * chunk
			sublists[i] = sublistNode{head: int32(x), next: -1, value: a[x].Rank}
			headSplitter[x] = int32(i)
			owner[x] = int32(i)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Phase 2: walk forward from each splitter, accumulating the local
	// rank offset into every node visited, until either the next
	// splitter, index 0 (the list's fixed anchor), or the true end of
	// the list is reached. Index 0 never has its value overwritten here:
	// it is not a node "owned" by anyone's walk, it is where every
	// circular Euler tour closes, and its own phase-1 weight must
	// survive untouched into the combine step.
	err = parallel.ParallelFor(context.Background(), s, s, func(ctx context.Context, idx parallel.Range) error {
		for i := idx.Lo; i < idx.Hi; i++ {
			curr := a[sublists[i].head].Next
			var tmp uint32

			for curr >= 0 {
				if curr == 0 {
					sublists[i].next = 0
					break
				}

				weight := a[curr].Rank
				a[curr].Rank = tmp
				tmp += weight
				owner[curr] = int32(i)

				if j := headSplitter[curr]; j >= 0 {
					sublists[i].next = j
					sublists[j].value = tmp
					break
				}
				curr = a[curr].Next
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Phase 3: sequentially combine the splitter chain (length s, not
	// n) starting from the head, turning each splitter's value into an
	// absolute offset from the list head. Bounded by s steps: the chain
	// visits every splitter at most once.
	curr := int32(0)
	var acc uint32
	for step := 0; step < s && curr >= 0; step++ {
		next := sublists[curr].value
		sublists[curr].value += acc
		acc += next
		curr = sublists[curr].next
	}

	// Phase 4: broadcast each node's splitter offset back into its rank.
	err = parallel.ParallelFor(context.Background(), n, s, func(ctx context.Context, chunkRange parallel.Range) error {
		for j := chunkRange.Lo; j < chunkRange.Hi; j++ {
			if j == 0 {
				continue
			}
			o := owner[j]
			if o < 0 {
				continue
			}
			a[j].Rank += sublists[o].value
		}
		return nil
	})
	if err != nil {
		return err
	}

	a[0].Rank = 0
	return nil
}
