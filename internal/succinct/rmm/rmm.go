// Package rmm is the minimal stand-in for the range-min-max tree that
// would sit on top of a finished succinct bitstring (S1, S2 or S3) and
// answer the navigation queries (FindOpen, FindClose, Enclose, and so
// on) a real succinct tree representation needs. Query support is out
// of scope here; this package only gives the orchestrator somewhere to
// hand a finished bitstring off to, and a handle it can pass along.
package rmm

// RangeMinMaxTree is an opaque handle over a finished bitstring. It
// stores the bits and their logical length; it does not index them.
type RangeMinMaxTree struct {
	bits   []byte
	length int
}

// Len returns the number of bits the tree was built over.
func (t *RangeMinMaxTree) Len() int {
	return t.length
}

// Bits returns the raw backing bitstring the tree was built from.
func (t *RangeMinMaxTree) Bits() []byte {
	return t.bits
}

// BuildRangeMinMaxTree consumes a finished bitstring (S1, S2, or S3, as
// packed bytes) and its logical bit length, and returns a handle to it.
// No block-min/block-max/block-excess index is actually built: a real
// range-min-max tree would recursively summarize the bitstring into a
// small number of blocks to answer FindOpen/FindClose/Enclose in
// O(log n) time, but nothing upstream of this package queries the
// result, so building that index here would have no caller.
func BuildRangeMinMaxTree(bits []byte, length int) *RangeMinMaxTree {
	return &RangeMinMaxTree{bits: bits, length: length}
}
