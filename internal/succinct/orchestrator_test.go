package succinct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/succinctgraph/psgraph/internal/graph"
)

func setBits(bv *BitVector) []int {
	var out []int
	for i := 0; i < bv.Length(); i++ {
		if bv.Test(i) {
			out = append(out, i)
		}
	}
	return out
}

// starFixture builds the n=4, m=3 star K1,3 from the concrete test
// scenario: vertex 0 adjacent to 1, 2 and 3; the tree equals the graph.
func starFixture() (*graph.Graph, *graph.Tree) {
	g := &graph.Graph{
		V: []graph.Vertex{
			{First: 1, Last: 3, Order: 0},
			{First: 4, Last: 4, Order: 1},
			{First: 5, Last: 5, Order: 2},
			{First: 6, Last: 6, Order: 3},
		},
		E: []graph.Edge{
			{},
			{Src: 0, Tgt: 1, PTgt: 4},
			{Src: 0, Tgt: 2, PTgt: 5},
			{Src: 0, Tgt: 3, PTgt: 6},
			{Src: 1, Tgt: 0, PTgt: 1},
			{Src: 2, Tgt: 0, PTgt: 2},
			{Src: 3, Tgt: 0, PTgt: 3},
		},
		N: 4,
		M: 3,
	}
	t := &graph.Tree{
		N: []graph.Node{
			{First: 0, Last: 2},
			{First: 3, Last: 3},
			{First: 4, Last: 4},
			{First: 5, Last: 5},
		},
		E: []graph.Edge{
			{Src: 0, Tgt: 1, PTgt: 3},
			{Src: 0, Tgt: 2, PTgt: 4},
			{Src: 0, Tgt: 3, PTgt: 5},
			{Src: 1, Tgt: 0, PTgt: 0},
			{Src: 2, Tgt: 0, PTgt: 1},
			{Src: 3, Tgt: 0, PTgt: 2},
		},
		NumNodes: 4,
	}
	return g, t
}

func TestBuild_Triangle(t *testing.T) {
	g, tr := triangleFixture()
	sg, err := Build(g, tr, BuildOptions{Workers: 1})
	require.NoError(t, err)

	assert.Equal(t, 8, sg.S1.Length())
	assert.Equal(t, 6, sg.S2.Length())
	assert.Equal(t, 2, sg.S3.Length())

	assert.Equal(t, []int{0, 1, 2, 4, 6, 7}, setBits(sg.S1))
	assert.Equal(t, []int{0, 1, 3}, setBits(sg.S2))
	assert.Equal(t, []int{0}, setBits(sg.S3))

	require.NotNil(t, sg.RMM1)
	require.NotNil(t, sg.RMM2)
	require.NotNil(t, sg.RMM3)
	assert.Equal(t, sg.S1.Length(), sg.RMM1.Len())
}

func TestBuild_StarK13(t *testing.T) {
	g, tr := starFixture()
	sg, err := Build(g, tr, BuildOptions{Workers: 1})
	require.NoError(t, err)

	assert.Equal(t, 8, sg.S1.Length())
	assert.Equal(t, 8, sg.S2.Length())
	assert.Equal(t, 0, sg.S3.Length())
	assert.Empty(t, setBits(sg.S3))
}

func TestBuild_Determinism(t *testing.T) {
	g, tr := triangleFixture()

	var wantS1, wantS2, wantS3 []byte
	for _, p := range []int{1, 2, 4, 8} {
		sg, err := Build(g, tr, BuildOptions{Workers: p})
		require.NoError(t, err)
		if wantS1 == nil {
			wantS1, wantS2, wantS3 = sg.S1.Bytes(), sg.S2.Bytes(), sg.S3.Bytes()
			continue
		}
		assert.Equal(t, wantS1, sg.S1.Bytes(), "S1 differs for p=%d", p)
		assert.Equal(t, wantS2, sg.S2.Bytes(), "S2 differs for p=%d", p)
		assert.Equal(t, wantS3, sg.S3.Bytes(), "S3 differs for p=%d", p)
	}
}

func TestBuild_PathWithExtraEdge(t *testing.T) {
	g, tr := pathWithExtraEdgeFixture()
	sg, err := Build(g, tr, BuildOptions{Workers: 1})
	require.NoError(t, err)

	assert.Equal(t, 10, sg.S1.Length())
	assert.Equal(t, 8, sg.S2.Length())
	assert.Equal(t, 2, sg.S3.Length())
}

func TestBuild_RejectsMismatchedTree(t *testing.T) {
	g, tr := triangleFixture()
	tr.NumNodes = 4
	_, err := Build(g, tr, BuildOptions{Workers: 1})
	assert.Error(t, err)
}
