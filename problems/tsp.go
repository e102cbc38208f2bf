package problems

import (
	"gonum.org/v1/gonum/mat"

	"github.com/epfahl/go-cem/cem"
)

// TSPParams is a row-stochastic transition matrix over the n cities, with a
// zero diagonal: TSPParams.M.At(i, j) is the probability of moving to city j
// immediately after city i.
type TSPParams struct {
	M *mat.Dense
}

// RingCost builds the n x n shortest-hop distance matrix for a ring of n
// equally spaced cities: cost(i, j) is the number of hops between i and j
// going whichever way around the ring is shorter.
func RingCost(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d := i - j
			if d < 0 {
				d = -d
			}
			if n-d < d {
				d = n - d
			}
			m.Set(i, j, float64(d))
		}
	}
	return m
}

// uniformRowStochastic builds an n x n matrix with uniform probability over
// the n-1 off-diagonal entries in each row, and a zero diagonal.
func uniformRowStochastic(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	p := 1 / float64(n-1)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				m.Set(i, j, p)
			}
		}
	}
	return m
}

// drawTour samples a Hamiltonian tour starting at city 0 by repeatedly
// sampling the next unvisited city from the current city's row,
// renormalized over the remaining unvisited cities — sequential sampling
// without replacement along the rows of trans.
func drawTour(trans *mat.Dense, rng *cem.RNG) []int {
	n, _ := trans.Dims()
	visited := make([]bool, n)
	tour := make([]int, n)
	current := 0
	tour[0] = current
	visited[current] = true

	for step := 1; step < n; step++ {
		total := 0.0
		for j := 0; j < n; j++ {
			if !visited[j] {
				total += trans.At(current, j)
			}
		}
		var next int
		switch {
		case total <= 0:
			// Degenerate row: fall back to a uniform pick among the
			// remaining unvisited cities.
			remaining := make([]int, 0, n-step)
			for j := 0; j < n; j++ {
				if !visited[j] {
					remaining = append(remaining, j)
				}
			}
			next = remaining[rng.Intn(len(remaining))]
		default:
			target := rng.Float64() * total
			cum := 0.0
			next = -1
			for j := 0; j < n; j++ {
				if visited[j] {
					continue
				}
				cum += trans.At(current, j)
				if cum >= target {
					next = j
					break
				}
			}
			if next == -1 { // floating-point rounding fallback
				for j := 0; j < n; j++ {
					if !visited[j] {
						next = j
						break
					}
				}
			}
		}
		tour[step] = next
		visited[next] = true
		current = next
	}
	return tour
}

// tourCost sums the cyclic edge costs of tour under cost.
func tourCost(tour []int, cost *mat.Dense) float64 {
	n := len(tour)
	total := 0.0
	for i := 0; i < n; i++ {
		from := tour[i]
		to := tour[(i+1)%n]
		total += cost.At(from, to)
	}
	return total
}

// NewTSPRing builds the TSP-ring problem for n cities: find the minimum-cost
// Hamiltonian cycle under cost. Score is the tour cost, so the search runs
// with Options.Mode set to cem.Min; the returned Problem does not carry a
// mode of its own. If cost is nil, it defaults
// to RingCost(n). n and cost are bound into the returned problem's closures
// directly (rather than threaded through OtherOpts at Search time) since
// they are fixed for the lifetime of this Problem value, not a per-run
// option.
func NewTSPRing(n int, cost *mat.Dense) *cem.Problem[TSPParams, []int] {
	if cost == nil {
		cost = RingCost(n)
	}
	p, err := cem.New(cem.Callbacks[TSPParams, []int]{
		Init: func(opts cem.Options) TSPParams {
			return TSPParams{M: uniformRowStochastic(n)}
		},
		Draw: func(params TSPParams, rng *cem.RNG) []int {
			return drawTour(params.M, rng)
		},
		Score: func(tour []int) float64 {
			return tourCost(tour, cost)
		},
		Update: func(elites [][]int) TSPParams {
			counts := mat.NewDense(n, n, nil)
			for _, tour := range elites {
				for i := 0; i < n; i++ {
					from := tour[i]
					to := tour[(i+1)%n]
					counts.Set(from, to, counts.At(from, to)+1)
				}
			}
			m := mat.NewDense(n, n, nil)
			for i := 0; i < n; i++ {
				rowSum := 0.0
				for j := 0; j < n; j++ {
					rowSum += counts.At(i, j)
				}
				if rowSum == 0 {
					uniform := 1 / float64(n-1)
					for j := 0; j < n; j++ {
						if j != i {
							m.Set(i, j, uniform)
						}
					}
					continue
				}
				for j := 0; j < n; j++ {
					m.Set(i, j, counts.At(i, j)/rowSum)
				}
			}
			return TSPParams{M: m}
		},
		Smooth: func(newP, prevP TSPParams, fInterp float64) TSPParams {
			m := mat.NewDense(n, n, nil)
			m.Scale(1-fInterp, newP.M)
			scaledPrev := mat.NewDense(n, n, nil)
			scaledPrev.Scale(fInterp, prevP.M)
			m.Add(m, scaledPrev)
			return TSPParams{M: m}
		},
		Terminate: func(log []cem.LogEntry[TSPParams, []int], opts cem.Options) bool {
			return false // this scenario relies on NStepMax, not early convergence
		},
	})
	if err != nil {
		panic(err)
	}
	return p
}
