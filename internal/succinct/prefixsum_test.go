package succinct

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixSum_AllOnes(t *testing.T) {
	a := []uint32{1, 1, 1, 1, 1, 1, 1, 1}
	err := PrefixSum(a, 4)
	assert.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3, 4, 5, 6, 7, 8}, a)
}

func TestPrefixSum_SequentialFallback(t *testing.T) {
	a := []uint32{1, 1, 1, 1, 1, 1, 1, 1}
	err := PrefixSum(a, 1)
	assert.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3, 4, 5, 6, 7, 8}, a)
}

func TestPrefixSum_UnevenChunks(t *testing.T) {
	a := make([]uint32, 17)
	for i := range a {
		a[i] = uint32(i + 1)
	}
	want := make([]uint32, 17)
	var running uint32
	for i, v := range a {
		running += v
		want[i] = running
	}

	err := PrefixSum(a, 5)
	assert.NoError(t, err)
	assert.Equal(t, want, a)
}

func TestPrefixSum_MatchesAcrossWorkerCounts(t *testing.T) {
	base := make([]uint32, 97)
	for i := range base {
		base[i] = uint32(i*7 + 3)
	}

	var reference []uint32
	for _, p := range []int{1, 2, 3, 8, 16, 97, 200} {
		a := append([]uint32(nil), base...)
		err := PrefixSum(a, p)
		assert.NoError(t, err)
		if reference == nil {
			reference = a
		} else {
			assert.Equal(t, reference, a, "prefix sum differs for p=%d", p)
		}
	}
}

func TestPrefixSum_Empty(t *testing.T) {
	var a []uint32
	assert.NoError(t, PrefixSum(a, 4))
}
