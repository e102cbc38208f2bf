package problems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epfahl/go-cem/cem"
)

func TestTSPRing(t *testing.T) {
	const n = 10
	prob := NewTSPRing(n, nil)
	opts := cem.Options{
		NSample: 100, FElite: 0.1, FInterp: 0.1, NStepMax: 10, Seed: 1, Mode: cem.Min,
	}
	res, err := cem.Search(prob, opts)
	require.NoError(t, err)

	assert.Equal(t, cem.StepCapReached, res.Reason)
	assert.InDelta(t, float64(n), res.BestScore, 2.0)
	assert.Len(t, res.BestInstance, n)

	seen := make(map[int]bool, n)
	for _, city := range res.BestInstance {
		assert.False(t, seen[city], "city %d visited twice", city)
		seen[city] = true
	}
}

func TestRingCostSymmetric(t *testing.T) {
	cost := RingCost(6)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			assert.Equal(t, cost.At(i, j), cost.At(j, i))
		}
	}
	assert.Equal(t, 0.0, cost.At(2, 2))
	assert.Equal(t, 3.0, cost.At(0, 3)) // antipodal on a 6-ring
}
