package cmd

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/succinctgraph/psgraph/internal/graph"
	"github.com/succinctgraph/psgraph/internal/succinct"
	"github.com/succinctgraph/psgraph/pkg/errors"
	"github.com/succinctgraph/psgraph/pkg/utils"
)

var (
	workers    int
	memProfile bool
)

// buildCmd runs the succinct-graph construction pipeline over a graph file,
// a tree file and a canonical-order file.
var buildCmd = &cobra.Command{
	Use:   "build <graph_file> <tree_file> <order_file>",
	Short: "Build the succinct bitstring encoding of a plane graph",
	Args:  cobra.ExactArgs(3),
	RunE:  runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Fixed worker count (defaults to config, then the CPU count)")
	buildCmd.Flags().BoolVar(&memProfile, "mem", false, "Print a memory report instead of the timing line")
}

func runBuild(cmd *cobra.Command, args []string) error {
	log := GetLogger()
	c := GetConfig()

	graphFile, treeFile, orderFile := args[0], args[1], args[2]

	p := workers
	if p <= 0 {
		p = c.Parallel.Workers
	}
	if p <= 0 {
		p = runtime.NumCPU()
	}

	timer := utils.NewTimer("build", utils.WithLogger(log))

	pt := timer.Start("read_graph")
	g, err := graph.ReadGraph(graphFile)
	pt.Stop()
	if err != nil {
		return diagnostic(err)
	}

	pt = timer.Start("read_tree")
	t, err := graph.ReadTree(treeFile)
	pt.Stop()
	if err != nil {
		return diagnostic(err)
	}

	pt = timer.Start("read_order")
	order, err := graph.ReadCanonicalOrder(orderFile, g.N)
	pt.Stop()
	if err != nil {
		return diagnostic(err)
	}
	if err := graph.ApplyCanonicalOrder(g, order); err != nil {
		return diagnostic(err)
	}

	log.Debug("run_id=%s workers=%d n=%d m=%d", runID, p, g.N, g.M)

	mem := memProfile || c.Parallel.MemoryProfile
	var before runtime.MemStats
	if mem {
		runtime.ReadMemStats(&before)
	}

	start := time.Now()
	sg, err := succinct.Build(g, t, succinct.BuildOptions{
		Workers: p,
		Logger:  log,
		Timer:   timer,
	})
	elapsed := time.Since(start)
	if err != nil {
		return diagnostic(err)
	}

	if mem {
		var after runtime.MemStats
		runtime.ReadMemStats(&after)
		printMemoryReport(p, graphFile, sg, before, after)
		return nil
	}

	fmt.Printf("%d,%s,%d,%f\n", p, graphFile, sg.N, elapsed.Seconds())
	return nil
}

// printMemoryReport prints a comma-separated memory report in place of the
// usual timing line: runtime.MemStats deltas taken right before and right
// after succinct.Build, mirroring the before/after-plus-peak report the
// MALLOC_COUNT build of the original produces. TotalAlloc is cumulative
// bytes allocated during Build; Sys is the growth in memory obtained from
// the OS, the closest analogue to a peak-RSS figure Go's runtime exposes
// without a third-party profiler; HeapAlloc is the net change in live heap
// bytes and can be negative if a GC ran during Build.
func printMemoryReport(p int, graphFile string, sg *succinct.SuccinctGraph, before, after runtime.MemStats) {
	totalAllocDelta := after.TotalAlloc - before.TotalAlloc
	sysDelta := int64(after.Sys) - int64(before.Sys)
	heapAllocDelta := int64(after.HeapAlloc) - int64(before.HeapAlloc)
	fmt.Printf("%d,%s,%d,%d,%d,%d\n", p, graphFile, sg.N, totalAllocDelta, sysDelta, heapAllocDelta)
}

// diagnostic prints a single diagnostic line for I/O, parse and
// internal-invariant failures, then returns the error so Cobra exits
// non-zero without also printing its own error line or usage text for
// this kind of failure.
func diagnostic(err error) error {
	GetLogger().Error("%s", errors.GetErrorMessage(err))
	silenceUsage()
	rootCmd.SilenceErrors = true
	return err
}

func silenceUsage() {
	buildCmd.SilenceUsage = true
	rootCmd.SilenceUsage = true
}
