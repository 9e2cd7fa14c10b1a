// Package graph holds the index-based plane-graph and spanning-tree data
// model the succinct encoder consumes, plus the file readers that build it.
//
// Vertices and half-edges live in flat, owned slices; every cross reference
// (adjacency range, twin half-edge) is a plain array index, never a pointer,
// so the whole structure can be handed to parallel workers without any
// aliasing concerns beyond the ones the Orchestrator already accounts for.
package graph

// Vertex is one vertex of the plane graph G.
type Vertex struct {
	// First and Last are the inclusive bounds, into E, of this vertex's
	// adjacency range. Adjacency within the range is in counter-clockwise
	// order around the vertex, as supplied by the input.
	First, Last uint32

	// Order is this vertex's position in the canonical ordering, a
	// permutation of [0, N).
	Order uint32
}

// Edge is one directed half-edge of G (or T); its twin, going Tgt->Src, is
// E[PTgt].
type Edge struct {
	Src, Tgt uint32

	// PTgt is the index, in the owning half-edge array, of the twin
	// half-edge going Tgt->Src. Invariant: E[E[i].PTgt].PTgt == i.
	PTgt uint32
}

// Graph is the triangulated plane graph G = (V, E): N vertices, M undirected
// edges stored as 2M directed half-edges grouped into per-vertex contiguous
// adjacency ranges (V[i].First..V[i].Last). E[0] is a reserved sentinel slot;
// the real half-edges start at E[1], so len(E) == 2M+1.
type Graph struct {
	V []Vertex
	E []Edge
	N uint32
	M uint32
}

// Node is a tree node: same shape as Vertex but without a canonical order
// (the tree reuses G's canonical order through the vertex index).
type Node struct {
	First, Last uint32
}

// Tree is a spanning tree T of G, rooted at vertex 0, with the same shape
// as Graph but 2(N-1) half-edges. T's adjacency lists are consistent with
// G's: each tree edge appears at the same cyclic position around each
// endpoint as it does in G.
type Tree struct {
	N []Node
	E []Edge

	// NumNodes is the number of tree nodes (== G.N).
	NumNodes uint32
}

// Degree returns the number of half-edges incident to v.
func (v Vertex) Degree() uint32 {
	return v.Last - v.First + 1
}

// Degree returns the number of half-edges incident to n.
func (n Node) Degree() uint32 {
	return n.Last - n.First + 1
}
