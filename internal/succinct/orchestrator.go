package succinct

import (
	"context"
	"time"

	"github.com/succinctgraph/psgraph/internal/graph"
	"github.com/succinctgraph/psgraph/internal/succinct/rmm"
	"github.com/succinctgraph/psgraph/pkg/errors"
	"github.com/succinctgraph/psgraph/pkg/parallel"
	"github.com/succinctgraph/psgraph/pkg/utils"
)

// SuccinctGraph is the succinct representation of a triangulated plane
// graph: S1 is the combined balanced-parenthesis-plus-bracket sequence,
// S2 is the spanning tree's own balanced-parenthesis sequence, and S3 is
// the sequence of non-tree ("bracket") edges. RMM1/RMM2/RMM3 are the
// navigation handles a caller would use to walk S1/S2/S3 respectively.
type SuccinctGraph struct {
	N, M uint64
	S1   *BitVector
	S2   *BitVector
	S3   *BitVector

	RMM1 *rmm.RangeMinMaxTree
	RMM2 *rmm.RangeMinMaxTree
	RMM3 *rmm.RangeMinMaxTree
}

// BuildOptions configures a single Build call.
type BuildOptions struct {
	// Workers is the fork-join width every phase partitions its work
	// into. Workers <= 1 runs the counting, classification and emission
	// phases as a single chunk each; ListRanking still spreads its walks
	// over its own splitter count (at least ceil(log2 N)). S1/S2/S3 are
	// byte-identical for every worker count.
	Workers int

	Logger utils.Logger
	Timer  *utils.Timer
}

// Build runs the full succinct-graph construction pipeline over g and
// its spanning tree t: classify every edge's orientation, thread the
// Euler tour through the tree, rank it in parallel, then emit S1/S2/S3
// via lock-free concurrent bit writes. The result depends only on
// (g, t, canonical order); it does not depend on opts.Workers beyond
// performance.
func Build(g *graph.Graph, t *graph.Tree, opts BuildOptions) (*SuccinctGraph, error) {
	p := opts.Workers
	if p <= 0 {
		p = 1
	}
	log := opts.Logger
	timer := opts.Timer
	if timer == nil {
		timer = utils.NullTimer
	}

	if t.NumNodes != g.N {
		return nil, errors.New(errors.CodeInvalidInput, "tree node count does not match graph vertex count")
	}
	if err := graph.ValidateSpanningTree(t, g.N); err != nil {
		return nil, err
	}

	numParentheses := 2 * uint64(t.NumNodes)
	numBrackets := 2 * (uint64(g.M) - uint64(t.NumNodes) + 1)
	numTotal := numParentheses + numBrackets

	s1 := NewBitVector(int(numTotal))
	s2 := NewBitVector(int(numParentheses))
	s3 := NewBitVector(int(numBrackets))

	// progress tracks the four sequential phases below (classify, build
	// Euler lists, rank, emit) and logs a heartbeat every 500ms while any
	// one of them is still running, independently of each phase's own
	// per-chunk parallelism.
	progress := parallel.NewProgressTracker(4, func(completed, total int64) {
		if log != nil {
			log.Debug("build progress: %d/%d phases complete", completed, total)
		}
	}, 500*time.Millisecond)
	progressCtx, stopProgress := context.WithCancel(context.Background())
	progress.Start(progressCtx)
	defer func() {
		progress.Stop()
		stopProgress()
	}()

	pt := timer.Start("classify_edges")
	lowerNumb, higherNumb, err := CountEdgeOrientations(g, t, p)
	pt.Stop()
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, "counting edge orientations", err)
	}
	if log != nil {
		log.Debug("counted edge orientations for %d tree nodes", t.NumNodes)
	}
	progress.Increment()

	pt = timer.Start("build_euler_lists")
	et, et2, err := ClassifyTreeEdges(g, t, lowerNumb, higherNumb, p)
	pt.Stop()
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, "classifying tree edges", err)
	}
	progress.Increment()

	pt = timer.Start("list_ranking")
	if err := ListRanking(et, p); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, "ranking S1 Euler tour", err)
	}
	if err := ListRanking(et2, p); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, "ranking S2 Euler tour", err)
	}
	pt.Stop()
	if log != nil {
		log.Debug("ranked %d Euler tour nodes", len(et))
	}
	progress.Increment()

	pt = timer.Start("emit_bits")
	err = parallel.ParallelFor(context.Background(), len(et), p, func(ctx context.Context, chunk parallel.Range) error {
		for i := chunk.Lo; i < chunk.Hi; i++ {
			s1.AtomicOrSet(int(et[i].Rank) + 1)

			if et2[i].Value != 0 {
				s2.AtomicOrSet(int(et2[i].Rank) + 1)
				continue
			}

			src := t.E[i].Src
			lo := et[i].Rank - et2[i].Rank
			hi := lo + higherNumb[src]
			for j := lo; j < hi; j++ {
				s3.AtomicOrSet(int(j))
			}
		}
		return nil
	})
	pt.Stop()
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, "emitting succinct bitstrings", err)
	}
	progress.Increment()

	s1.Set(0)
	s1.Set(int(numTotal) - 1)
	s2.Set(0)

	if log != nil {
		log.Info("built succinct graph: n=%d m=%d |S1|=%d |S2|=%d |S3|=%d", g.N, g.M, numTotal, numParentheses, numBrackets)
	}

	return &SuccinctGraph{
		N:    uint64(g.N),
		M:    uint64(g.M),
		S1:   s1,
		S2:   s2,
		S3:   s3,
		RMM1: rmm.BuildRangeMinMaxTree(s1.Bytes(), s1.Length()),
		RMM2: rmm.BuildRangeMinMaxTree(s2.Bytes(), s2.Length()),
		RMM3: rmm.BuildRangeMinMaxTree(s3.Bytes(), s3.Length()),
	}, nil
}
