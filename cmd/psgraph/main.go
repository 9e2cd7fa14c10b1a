// Command psgraph builds the succinct bitstring encoding of a triangulated
// plane graph from a graph file, a spanning-tree file and a canonical-order
// file. It is the CLI harness around the core pipeline in internal/succinct;
// it owns no algorithmic content of its own.
package main

import "github.com/succinctgraph/psgraph/cmd/psgraph/cmd"

func main() {
	cmd.Execute()
}
