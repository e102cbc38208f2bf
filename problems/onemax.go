package problems

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/epfahl/go-cem/cem"
)

// OneMaxOtherOpts carries the problem's size parameter through
// cem.Options.OtherOpts, which the engine passes through untouched.
type OneMaxOtherOpts struct {
	NBits int
}

// OneMaxParams is a vector of independent Bernoulli probabilities, one per
// bit position.
type OneMaxParams []float64

// NewOneMax builds the OneMax problem: maximize the number of 1 bits in an
// n-bit vector. other_opts must be OneMaxOtherOpts{NBits: n}.
func NewOneMax() *cem.Problem[OneMaxParams, []int] {
	p, err := cem.New(cem.Callbacks[OneMaxParams, []int]{
		Init: func(opts cem.Options) OneMaxParams {
			n := opts.OtherOpts.(OneMaxOtherOpts).NBits
			params := make(OneMaxParams, n)
			for i := range params {
				params[i] = 0.5
			}
			return params
		},
		Draw: func(params OneMaxParams, rng *cem.RNG) []int {
			bits := make([]int, len(params))
			for i, pBit := range params {
				bits[i] = int(distuv.Bernoulli{P: pBit, Src: rng.Rand()}.Rand())
			}
			return bits
		},
		Score: func(bits []int) float64 {
			sum := 0.0
			for _, b := range bits {
				sum += float64(b)
			}
			return sum
		},
		Update: func(elites [][]int) OneMaxParams {
			n := len(elites[0])
			params := make(OneMaxParams, n)
			for _, bits := range elites {
				for i, b := range bits {
					params[i] += float64(b)
				}
			}
			for i := range params {
				params[i] /= float64(len(elites))
			}
			return params
		},
		Smooth: func(newP, prevP OneMaxParams, fInterp float64) OneMaxParams {
			smoothed := make(OneMaxParams, len(newP))
			for i := range smoothed {
				smoothed[i] = (1-fInterp)*newP[i] + fInterp*prevP[i]
			}
			return smoothed
		},
		Terminate: func(log []cem.LogEntry[OneMaxParams, []int], opts cem.Options) bool {
			n := opts.OtherOpts.(OneMaxOtherOpts).NBits
			return log[0].Best.Score == float64(n)
		},
	})
	if err != nil {
		panic(err)
	}
	return p
}
