package succinct

import (
	"context"

	"github.com/succinctgraph/psgraph/pkg/parallel"
)

// PrefixSum computes the inclusive prefix sum of a in place, using the
// classic three-step chunked scan: a local scan per chunk, a sequential
// carry walk across every chunk boundary, and a parallel broadcast of
// each chunk's carry back into its own elements.
//
// p <= 1 degenerates to the same algorithm with a single chunk, which is
// just a sequential scan; this is the fallback the determinism invariant
// requires. p >= len(a) gives one element per chunk, so the carry walk
// does all of the summing.
func PrefixSum(a []uint32, p int) error {
	n := len(a)
	if n == 0 {
		return nil
	}

	chunks := parallel.Chunks(n, p)

	err := parallel.ParallelFor(context.Background(), len(chunks), len(chunks), func(ctx context.Context, idx parallel.Range) error {
		for h := idx.Lo; h < idx.Hi; h++ {
			c := chunks[h]
			var acc uint32
			for j := c.Lo; j < c.Hi; j++ {
				acc += a[j]
				a[j] = acc
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Sequential carry across every chunk boundary: carry[h] is the sum
	// of all elements strictly before chunk h. This must walk every
	// boundary, not just an inner subrange of them, or chunks near the
	// ends of the array end up missing part of the carry.
	carry := make([]uint32, len(chunks))
	var running uint32
	for h, c := range chunks {
		carry[h] = running
		if c.Len() > 0 {
			running += a[c.Hi-1]
		}
	}

	return parallel.ParallelFor(context.Background(), len(chunks), len(chunks), func(ctx context.Context, idx parallel.Range) error {
		for h := idx.Lo; h < idx.Hi; h++ {
			if carry[h] == 0 {
				continue
			}
			c := chunks[h]
			for j := c.Lo; j < c.Hi; j++ {
				a[j] += carry[h]
			}
		}
		return nil
	})
}
