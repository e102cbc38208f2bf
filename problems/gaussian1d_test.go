package problems

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epfahl/go-cem/cem"
)

func TestGaussian1D(t *testing.T) {
	prob := NewGaussian1D()
	opts := cem.Options{
		NSample: 100, FElite: 0.1, FInterp: 0.1, NStepMax: 100, Seed: 1,
	}
	res, err := cem.Search(prob, opts)
	require.NoError(t, err)

	assert.Less(t, math.Abs(res.BestInstance), 0.05)
	assert.Greater(t, res.BestScore, 0.99)
	assert.Less(t, res.NSteps, 100)
	assert.Equal(t, cem.Converged, res.Reason)
}

func TestGaussian1DDeterminismRegression(t *testing.T) {
	run := func() *cem.Result[Gaussian1DParams, float64] {
		opts := cem.Options{NSample: 100, FElite: 0.1, FInterp: 0.1, NStepMax: 100, Seed: 42}
		res, err := cem.Search(NewGaussian1D(), opts)
		require.NoError(t, err)
		return res
	}
	r1, r2 := run(), run()
	if diff := cmp.Diff(r1, r2); diff != "" {
		t.Fatalf("seed 42 runs diverged (-first +second):\n%s", diff)
	}
}
