package cem

import (
	"context"
	"fmt"
)

// Reason names why a search stopped.
type Reason int

const (
	// Converged means the problem's Terminate callback returned true.
	Converged Reason = iota
	// StepCapReached means NStepMax steps ran without Terminate firing.
	StepCapReached
	// CallbackFailed means a problem callback panicked or a context
	// passed to SearchContext was cancelled.
	CallbackFailed
)

func (r Reason) String() string {
	switch r {
	case Converged:
		return "converged"
	case StepCapReached:
		return "step-cap-reached"
	case CallbackFailed:
		return "callback-failed"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// Result is the outcome of a completed or aborted search.
type Result[P, I any] struct {
	// Params is the final distribution parameters.
	Params P
	// BestInstance and BestScore are the best-ever (instance, score) pair
	// observed across every step, judged by the search's Mode.
	BestInstance I
	BestScore    float64
	// NSteps is the number of steps actually executed.
	NSteps int
	// Reason names why the search stopped.
	Reason Reason
	// Log is the full step log, head-first (most recent step at index 0).
	Log []LogEntry[P, I]
	// Seed is the randomness seed used for this run: either the caller's
	// Options.Seed, or one drawn from OS entropy, surfaced for
	// reproducibility.
	Seed uint64
}

// Search runs prob to a fixed point: repeated steps until the problem's
// Terminate callback returns true or opts.NStepMax steps have executed.
// Equivalent to SearchContext with context.Background().
func Search[P, I any](prob *Problem[P, I], opts Options) (*Result[P, I], error) {
	return SearchContext(context.Background(), prob, opts)
}

// SearchContext is Search with a cancellation hook checked once at each
// step boundary (never mid-step). This is not part of the core CEM
// contract; it is the sanctioned suspension point a sequential engine may
// expose without affecting per-step semantics.
func SearchContext[P, I any](ctx context.Context, prob *Problem[P, I], opts Options) (*Result[P, I], error) {
	opts, err := ResolveOptions(opts)
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if opts.Src == nil && seed == 0 {
		seed = randomSeed()
	}
	rng := newRNG(opts.Src, seed)

	params, err := callInit(prob, opts, 0)
	if err != nil {
		return &Result[P, I]{Reason: CallbackFailed, Seed: seed}, err
	}

	var log []LogEntry[P, I] // head-first: log[0] is the most recent entry
	var bestEver Evaluation[I]
	haveBest := false

	isBetter := func(a, b float64) bool {
		if opts.Mode == Min {
			return a < b
		}
		return a > b
	}

	for step := 1; ; step++ {
		if err := ctx.Err(); err != nil {
			return &Result[P, I]{
				Params: params, NSteps: step - 1, Reason: CallbackFailed, Log: log, Seed: seed,
			}, err
		}

		entry, err := runStep(prob, opts, params, rng, step)
		if err != nil {
			return &Result[P, I]{
				Params: params, NSteps: step - 1, Reason: CallbackFailed, Log: log, Seed: seed,
			}, err
		}

		log = prepend(log, entry)
		params = entry.Params

		if !haveBest || isBetter(entry.Best.Score, bestEver.Score) {
			bestEver = entry.Best
			haveBest = true
		}

		stop, err := callTerminate(prob, log, opts, step)
		if err != nil {
			return &Result[P, I]{
				Params: params, BestInstance: bestEver.Instance, BestScore: bestEver.Score,
				NSteps: step, Reason: CallbackFailed, Log: log, Seed: seed,
			}, err
		}

		if stop {
			return &Result[P, I]{
				Params: params, BestInstance: bestEver.Instance, BestScore: bestEver.Score,
				NSteps: step, Reason: Converged, Log: log, Seed: seed,
			}, nil
		}
		if step == opts.NStepMax {
			return &Result[P, I]{
				Params: params, BestInstance: bestEver.Instance, BestScore: bestEver.Score,
				NSteps: step, Reason: StepCapReached, Log: log, Seed: seed,
			}, nil
		}
	}
}

// prepend returns log with e inserted at index 0, so the log stays
// head-first (most recent step first) as the driver's termination
// predicate requires.
func prepend[P, I any](log []LogEntry[P, I], e LogEntry[P, I]) []LogEntry[P, I] {
	log = append(log, LogEntry[P, I]{})
	copy(log[1:], log)
	log[0] = e
	return log
}
