package cem

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xrand "golang.org/x/exp/rand"
)

// scalarProblem is a minimal 1-D Gaussian-on-a-parabola problem used to
// exercise the engine's invariants without pulling in the problems package.
func scalarProblem(t *testing.T) *Problem[float64, float64] {
	t.Helper()
	p, err := New(Callbacks[float64, float64]{
		Init: func(opts Options) float64 { return 0 },
		Draw: func(mean float64, rng *RNG) float64 {
			return mean + rng.NormFloat64()*5
		},
		Score: func(x float64) float64 {
			if math.Abs(x) <= 1 {
				return 1 - x*x
			}
			return 0
		},
		Update: func(elites []float64) float64 {
			sum := 0.0
			for _, e := range elites {
				sum += e
			}
			return sum / float64(len(elites))
		},
		Smooth: func(newP, prevP, fInterp float64) float64 {
			return (1-fInterp)*newP + fInterp*prevP
		},
		Terminate: func(log []LogEntry[float64, float64], opts Options) bool {
			return false
		},
	})
	require.NoError(t, err)
	return p
}

func TestNewMissingCallback(t *testing.T) {
	_, err := New(Callbacks[float64, float64]{
		Draw:      func(float64, *RNG) float64 { return 0 },
		Score:     func(float64) float64 { return 0 },
		Update:    func([]float64) float64 { return 0 },
		Smooth:    func(a, b, f float64) float64 { return a },
		Terminate: func([]LogEntry[float64, float64], Options) bool { return true },
	})
	var missing *MissingCallbackError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "init", missing.Callback)
}

func TestEliteSize(t *testing.T) {
	cases := []struct {
		nSample int
		fElite  float64
		want    int
	}{
		{100, 0.1, 10},
		{1, 1.0, 1},
		{7, 0.1, 1},  // ceil(0.7) = 1
		{7, 0.3, 3},  // ceil(2.1) = 3
		{10, 1.0, 10},
	}
	for _, c := range cases {
		opts, err := ResolveOptions(Options{NSample: c.nSample, FElite: c.fElite})
		require.NoError(t, err)
		got := opts.NElite()
		assert.Equal(t, c.want, got, "nSample=%d fElite=%v", c.nSample, c.fElite)
		assert.GreaterOrEqual(t, got, 1)
		assert.LessOrEqual(t, got, c.nSample)
	}
}

func TestEliteCorrectnessMax(t *testing.T) {
	prob := scalarProblem(t)
	opts, err := ResolveOptions(Options{Mode: Max, NSample: 200, FElite: 0.1, FInterp: 0.1})
	require.NoError(t, err)
	rng := newRNG(xrand.NewSource(1), 0)

	entry, err := runStep(prob, opts, 0, rng, 1)
	require.NoError(t, err)

	// Re-derive the sample deterministically to check the threshold
	// property directly: at least nElite sampled scores reach the threshold.
	rng2 := newRNG(xrand.NewSource(1), 0)
	nElite := opts.NElite()
	scores := make([]float64, opts.NSample)
	for i := range scores {
		x := prob.draw(0, rng2)
		scores[i] = prob.score(x)
	}
	above, below := 0, 0
	for _, s := range scores {
		if s >= entry.EliteScore {
			above++
		} else {
			below++
		}
	}
	assert.GreaterOrEqual(t, above, nElite)
	assert.Equal(t, len(scores), above+below)
}

func TestEliteCorrectnessMin(t *testing.T) {
	prob := scalarProblem(t)
	prob = ReplaceScore(prob, func(x float64) float64 { return x * x }) // minimize distance from 0
	opts, err := ResolveOptions(Options{Mode: Min, NSample: 200, FElite: 0.1, FInterp: 0.1})
	require.NoError(t, err)
	rng := newRNG(xrand.NewSource(2), 0)

	entry, err := runStep(prob, opts, 0, rng, 1)
	require.NoError(t, err)
	assert.LessOrEqual(t, entry.Best.Score, entry.EliteScore+1e-9)
}

func TestLogMonotonicityAndStepCap(t *testing.T) {
	prob := scalarProblem(t)
	opts := Options{NSample: 20, FElite: 0.2, FInterp: 0.1, NStepMax: 5}
	res, err := Search(prob, opts)
	require.NoError(t, err)
	assert.Equal(t, StepCapReached, res.Reason)
	assert.Equal(t, 5, res.NSteps)
	require.Len(t, res.Log, 5)
	// head-first: log[0].Step is the largest.
	for i, e := range res.Log {
		assert.Equal(t, 5-i, e.Step)
	}
}

func TestSmoothingEndpoints(t *testing.T) {
	smooth := func(newP, prevP, fInterp float64) float64 {
		return (1-fInterp)*newP + fInterp*prevP
	}
	assert.Equal(t, 3.0, smooth(3.0, 9.0, 0))
	assert.Equal(t, 9.0, smooth(3.0, 9.0, 1))
}

func TestDeterminism(t *testing.T) {
	run := func() *Result[float64, float64] {
		prob := scalarProblem(t)
		opts := Options{NSample: 50, FElite: 0.1, FInterp: 0.1, NStepMax: 10, Seed: 42}
		res, err := Search(prob, opts)
		require.NoError(t, err)
		return res
	}
	r1 := run()
	r2 := run()
	if diff := cmp.Diff(r1, r2); diff != "" {
		t.Fatalf("runs with identical seed diverged (-first +second):\n%s", diff)
	}
}

func TestModeFlip(t *testing.T) {
	base := scalarProblem(t)
	maxProb := base
	minProb := ReplaceScore(base, func(x float64) float64 { return -base.score(x) })

	optsMax := Options{NSample: 50, FElite: 0.1, FInterp: 0.1, NStepMax: 10, Seed: 7, Mode: Max}
	optsMin := Options{NSample: 50, FElite: 0.1, FInterp: 0.1, NStepMax: 10, Seed: 7, Mode: Min}

	rMax, err := Search(maxProb, optsMax)
	require.NoError(t, err)
	rMin, err := Search(minProb, optsMin)
	require.NoError(t, err)

	assert.InDelta(t, rMax.BestInstance, rMin.BestInstance, 1e-9)
}

func TestReplaceIsolation(t *testing.T) {
	original := scalarProblem(t)
	replaced := ReplaceUpdate(original, func(elites []float64) float64 { return 999 })

	opts := Options{NSample: 10, FElite: 0.5, FInterp: 0, NStepMax: 1, Seed: 3}
	rOrig, err := Search(original, opts)
	require.NoError(t, err)
	rReplaced, err := Search(replaced, opts)
	require.NoError(t, err)

	assert.NotEqual(t, rOrig.Params, rReplaced.Params)
	assert.Equal(t, 999.0, rReplaced.Params)
}

func TestCallbackFailurePreservesPartialLog(t *testing.T) {
	prob := scalarProblem(t)
	calls := 0
	boom := ReplaceUpdate(prob, func(elites []float64) float64 {
		calls++
		if calls == 2 {
			panic("update exploded")
		}
		return 0
	})
	opts := Options{NSample: 10, FElite: 0.5, FInterp: 0.1, NStepMax: 10, Seed: 1}

	res, err := Search(boom, opts)
	require.Error(t, err)
	var cbErr *CallbackFailedError
	require.ErrorAs(t, err, &cbErr)
	assert.Equal(t, "update", cbErr.Callback)
	assert.Equal(t, 2, cbErr.Step)
	assert.Equal(t, CallbackFailed, res.Reason)
	require.Len(t, res.Log, 1)
	assert.Equal(t, 1, res.Log[0].Step)
}

func TestInvalidOptions(t *testing.T) {
	_, err := ResolveOptions(Options{NSample: -1})
	var invalid *InvalidOptionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "n_sample", invalid.Option)

	_, err = ResolveOptions(Options{NSample: 10, FElite: 1.5})
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "f_elite", invalid.Option)

	_, err = ResolveOptions(Options{NSample: 10, FElite: 0.1, FInterp: -0.2})
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "f_interp", invalid.Option)
}

func TestNSampleOneEliteIsOne(t *testing.T) {
	prob := scalarProblem(t)
	opts, err := ResolveOptions(Options{NSample: 1, FElite: 1})
	require.NoError(t, err)
	rng := newRNG(xrand.NewSource(9), 0)
	entry, err := runStep(prob, opts, 0, rng, 1)
	require.NoError(t, err)
	assert.Equal(t, entry.Best.Score, entry.EliteScore)
}
