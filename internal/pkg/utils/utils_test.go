package utils

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionHashBytes(t *testing.T) {
	sig := make([]byte, 64)
	sig[7], sig[15], sig[19], sig[27] = 1, 2, 3, 0x0B

	assert.Equal(t, uint32(0), PartitionHashBytes(sig, 1), "单分区恒为 0")
	assert.Equal(t, uint32(0), PartitionHashBytes(sig[:10], 12), "长度不足时退回 0")
	assert.Equal(t, uint32(0x0B&7), PartitionHashBytes(sig, 8), "2 的幂走掩码")

	hash := uint32(1)<<24 | uint32(2)<<16 | uint32(3)<<8 | uint32(0x0B)
	assert.Equal(t, hash%12, PartitionHashBytes(sig, 12))

	for mod := uint32(2); mod < 40; mod++ {
		assert.Less(t, PartitionHashBytes(sig, mod), mod)
	}
}

func TestParallelMap_KeepsOrder(t *testing.T) {
	input := make([]int, 100)
	for i := range input {
		input[i] = i
	}
	out := ParallelMap(input, 4, func(v int) int {
		time.Sleep(time.Duration(v%3) * time.Millisecond)
		return v * 2
	})
	require.Len(t, out, len(input))
	for i, v := range out {
		assert.Equal(t, i*2, v)
	}

	assert.Empty(t, ParallelMap([]int{}, 4, func(v int) int { return v }))
	assert.Equal(t, []int{84}, ParallelMap([]int{42}, 4, func(v int) int { return v * 2 }))
}

func TestParallelMap_RespectsLimit(t *testing.T) {
	var running, peak int32
	input := make([]int, 32)
	ParallelMap(input, 3, func(int) struct{} {
		n := atomic.AddInt32(&running, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return struct{}{}
	})
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3), "并发数不超过 workers")
}

func TestParallelMapCtx_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ParallelMapCtx(ctx, []int{1, 2, 3}, 2, func(_ context.Context, v int) int { return v })
	assert.ErrorIs(t, err, context.Canceled)

	out, err := ParallelMapCtx(context.Background(), []int{1, 2, 3}, 2, func(_ context.Context, v int) int { return v + 1 })
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4}, out)
}

func TestGetLocalIP(t *testing.T) {
	assert.NotEmpty(t, GetLocalIP())
}
