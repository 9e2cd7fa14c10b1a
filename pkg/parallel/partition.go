package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Chunks splits [0, n) into at most p contiguous, equal-sized ranges,
// the static partitioning scheme every fork-join region in this codebase
// uses: chunk size is ceil(n/p), and the last chunk absorbs the remainder.
// A chunk with lo == hi is empty and callers should skip it.
func Chunks(n, p int) []Range {
	if p <= 0 {
		p = 1
	}
	if p > n {
		p = n
	}
	if p <= 0 {
		return nil
	}

	chunkSize := (n + p - 1) / p
	ranges := make([]Range, p)
	for h := 0; h < p; h++ {
		lo := h * chunkSize
		hi := lo + chunkSize
		if hi > n {
			hi = n
		}
		if lo > n {
			lo = n
		}
		ranges[h] = Range{Lo: lo, Hi: hi}
	}
	return ranges
}

// Range is a half-open index range [Lo, Hi) assigned to one worker.
type Range struct {
	Lo, Hi int
}

// Len returns the number of indices in the range.
func (r Range) Len() int { return r.Hi - r.Lo }

// ParallelFor partitions [0, n) into p fixed chunks and runs fn once per
// non-empty chunk concurrently, the fork-join shape every parallel region
// of the Orchestrator is built from (counters, classification, ranking,
// bit emission). It blocks until every chunk has completed or one of them
// returns an error, in which case the first error is returned and the
// others are allowed to finish (errgroup does not cancel siblings unless
// fn observes ctx.Done()).
//
// P == 1 runs fn sequentially in a single chunk covering the whole range,
// matching the sequential fallback required by the determinism invariant.
// P <= 0 uses runtime.NumCPU() chunks.
func ParallelFor(ctx context.Context, n, p int, fn func(ctx context.Context, chunk Range) error) error {
	if n <= 0 {
		return nil
	}
	if p <= 0 {
		p = runtime.NumCPU()
	}

	ranges := Chunks(n, p)
	g, gctx := errgroup.WithContext(ctx)
	for _, r := range ranges {
		if r.Len() == 0 {
			continue
		}
		r := r
		g.Go(func() error {
			return fn(gctx, r)
		})
	}
	return g.Wait()
}
