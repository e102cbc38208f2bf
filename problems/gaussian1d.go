// Package problems bundles concrete Cross-Entropy Method problems: 1-D
// Gaussian optimization over a parabola, OneMax, and a TSP ring. These are
// external collaborators of the core cem engine (cem never imports this
// package); they exist to exercise the engine against real gonum numerical
// types the way pa-m-optimize pairs its generic optimize.Method contract
// with concrete Powell and CmaEsCholB implementations.
package problems

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/epfahl/go-cem/cem"
)

// Gaussian1DParams is the distribution CEM refines: a 1-D normal with mean
// and standard deviation.
type Gaussian1DParams struct {
	Mean, Std float64
}

// NewGaussian1D builds the 1-D Gaussian-on-a-parabola problem: maximize
// score(x) = 1 - x^2 for |x| <= 1, else 0, starting from a wide prior
// (mean 0, std 30) and terminating once the fitted std collapses below
// 1e-3.
func NewGaussian1D() *cem.Problem[Gaussian1DParams, float64] {
	p, err := cem.New(cem.Callbacks[Gaussian1DParams, float64]{
		Init: func(opts cem.Options) Gaussian1DParams {
			return Gaussian1DParams{Mean: 0, Std: 30}
		},
		Draw: func(params Gaussian1DParams, rng *cem.RNG) float64 {
			return distuv.Normal{Mu: params.Mean, Sigma: params.Std, Src: rng.Rand()}.Rand()
		},
		Score: func(x float64) float64 {
			if math.Abs(x) <= 1 {
				return 1 - x*x
			}
			return 0
		},
		Update: func(elites []float64) Gaussian1DParams {
			mean := floats.Sum(elites) / float64(len(elites))
			var ss float64
			for _, e := range elites {
				d := e - mean
				ss += d * d
			}
			return Gaussian1DParams{Mean: mean, Std: math.Sqrt(ss / float64(len(elites)))}
		},
		Smooth: func(newP, prevP Gaussian1DParams, fInterp float64) Gaussian1DParams {
			return Gaussian1DParams{
				Mean: (1-fInterp)*newP.Mean + fInterp*prevP.Mean,
				Std:  (1-fInterp)*newP.Std + fInterp*prevP.Std,
			}
		},
		Terminate: func(log []cem.LogEntry[Gaussian1DParams, float64], opts cem.Options) bool {
			return log[0].Params.Std < 1e-3
		},
	})
	if err != nil {
		// Every callback above is a literal, non-nil closure; a missing
		// callback here would be a programming error in this file, not a
		// reachable runtime condition.
		panic(err)
	}
	return p
}
