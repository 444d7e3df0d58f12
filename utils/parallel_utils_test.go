package utils

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	{ // Bucket sizes
		getHisto := func(K, Np int) (histo map[int]int) {
			pm := NewPartitionMap(Np, 0, K)
			histo = make(map[int]int)
			for np := 0; np < pm.ParallelDegree; np++ {
				maxK := pm.GetBucketDimension(np)
				histo[maxK]++
			}
			return
		}
		getTotal := func(histo map[int]int) (total int) {
			for key, count := range histo {
				total += key * count
			}
			return
		}
		assert.Equal(t, map[int]int{0: 30, 1: 2}, getHisto(2, 32))
		assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
		assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
		assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
		assert.Equal(t, 287, getTotal(getHisto(287, 32)))
		for n := 64; n < 2000; n++ {
			var (
				keys   [2]float64
				keyNum int
			)
			histo := getHisto(n, 32)
			for key := range histo {
				keys[keyNum] = float64(key)
				keyNum++
			}
			if keyNum == 2 {
				assert.Equal(t, 1., math.Abs(keys[0]-keys[1])) // Maximum imbalance of 1
			}
			assert.Equal(t, n, getTotal(histo))
		}
	}
	{ // Offset ranges, as used for rows 1..ny
		pm := NewPartitionMap(3, 1, 11)
		assert.Equal(t, [2]int{1, 5}, pm.Partitions[0])
		assert.Equal(t, [2]int{5, 8}, pm.Partitions[1])
		assert.Equal(t, [2]int{8, 11}, pm.Partitions[2])
		kMin, kMax := pm.GetBucketRange(1)
		assert.Equal(t, 5, kMin)
		assert.Equal(t, 8, kMax)
	}
	{ // Run visits every index exactly once
		pm := NewPartitionMap(4, 0, 103)
		var hits [103]int32
		pm.Run(func(bn, kMin, kMax int) {
			for k := kMin; k < kMax; k++ {
				atomic.AddInt32(&hits[k], 1)
			}
		})
		for k := range hits {
			assert.Equal(t, int32(1), hits[k])
		}
	}
	{ // Empty buckets are skipped when there are more buckets than indices
		pm := NewPartitionMap(8, 1, 4)
		var calls int32
		pm.Run(func(bn, kMin, kMax int) {
			assert.Greater(t, kMax, kMin)
			atomic.AddInt32(&calls, 1)
		})
		assert.Equal(t, int32(3), calls)
	}
	{
		assert.Equal(t, 3, ParallelDegree(8, 3))
		assert.Equal(t, 2, ParallelDegree(2, 100))
		assert.Equal(t, 1, ParallelDegree(0, 0))
	}
}
