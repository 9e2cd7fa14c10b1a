// Package succinct builds the succinct representation (S1, S2, S3) of a
// triangulated plane graph from its spanning tree, using the same
// fork-join parallel primitives throughout: static chunk partitioning,
// lock-free bit writes, and parallel list ranking for the Euler tour.
package succinct

// EulerNode is one entry of an Euler-tour linked list threaded through a
// tree's half-edges. Next holds the index of the next half-edge in the
// tour. It is signed so that a negative value can mark the end of a plain
// linear list; ListRanking reads Next and leaves it unchanged.
type EulerNode struct {
	Next  int32
	Value uint8
	Rank  uint32
}
