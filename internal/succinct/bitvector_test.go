package succinct

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/succinctgraph/psgraph/pkg/parallel"
)

func TestBitVector_SetAndTest(t *testing.T) {
	bv := NewBitVector(70)
	bv.Set(0)
	bv.Set(63)
	bv.Set(64)
	bv.Set(69)

	assert.True(t, bv.Test(0))
	assert.True(t, bv.Test(63))
	assert.True(t, bv.Test(64))
	assert.True(t, bv.Test(69))
	assert.False(t, bv.Test(1))
	assert.False(t, bv.Test(68))
}

func TestBitVector_AtomicOrSet_ConcurrentAdjacentBits(t *testing.T) {
	const n = 4096
	bv := NewBitVector(n)

	err := parallel.ParallelFor(context.Background(), n, 32, func(ctx context.Context, chunk parallel.Range) error {
		for i := chunk.Lo; i < chunk.Hi; i++ {
			bv.AtomicOrSet(i)
		}
		return nil
	})
	assert.NoError(t, err)

	for i := 0; i < n; i++ {
		assert.True(t, bv.Test(i), "bit %d lost under concurrent set", i)
	}
}

func TestBitVector_Bytes(t *testing.T) {
	bv := NewBitVector(10)
	bv.Set(0)
	bv.Set(9)
	b := bv.Bytes()
	assert.Equal(t, byte(1), b[0]&1)
	assert.Equal(t, byte(1), (b[1]>>1)&1)
}
