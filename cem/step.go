package cem

import (
	"fmt"
	"sort"
)

// recoverCallback turns a recovered panic value into an error, preserving
// the original error if the panicking callback already produced one.
func recoverCallback(name string, step int, err *error) {
	if r := recover(); r != nil {
		if e, ok := r.(error); ok {
			*err = &CallbackFailedError{Step: step, Callback: name, Err: e}
			return
		}
		*err = &CallbackFailedError{Step: step, Callback: name, Err: fmt.Errorf("%v", r)}
	}
}

func callInit[P, I any](prob *Problem[P, I], opts Options, step int) (params P, err error) {
	defer recoverCallback("init", step, &err)
	params = prob.init(opts)
	return params, nil
}

func callDraw[P, I any](prob *Problem[P, I], params P, rng *RNG, step int) (instance I, err error) {
	defer recoverCallback("draw", step, &err)
	instance = prob.draw(params, rng)
	return instance, nil
}

func callScore[I any](score ScoreFunc[I], instance I, step int) (s float64, err error) {
	defer recoverCallback("score", step, &err)
	s = score(instance)
	return s, nil
}

func callUpdate[P, I any](prob *Problem[P, I], elites []I, step int) (params P, err error) {
	defer recoverCallback("update", step, &err)
	params = prob.update(elites)
	return params, nil
}

func callTerminate[P, I any](prob *Problem[P, I], log []LogEntry[P, I], opts Options, step int) (stop bool, err error) {
	defer recoverCallback("terminate", step, &err)
	stop = prob.terminate(log, opts)
	return stop, nil
}

// runStep performs one Cross-Entropy Method iteration: sample, score,
// select elites, fit, smooth, and build the resulting log entry.
func runStep[P, I any](prob *Problem[P, I], opts Options, paramsPrev P, rng *RNG, stepNum int) (LogEntry[P, I], error) {
	var zero LogEntry[P, I]

	sample := make([]Evaluation[I], opts.NSample)
	for i := range sample {
		instance, err := callDraw(prob, paramsPrev, rng, stepNum)
		if err != nil {
			return zero, err
		}
		score, err := callScore(prob.score, instance, stepNum)
		if err != nil {
			return zero, err
		}
		sample[i] = Evaluation[I]{Instance: instance, Score: score}
	}

	ranked := make([]Evaluation[I], len(sample))
	copy(ranked, sample)
	better := func(a, b float64) bool {
		if opts.Mode == Min {
			return a < b
		}
		return a > b
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return better(ranked[i].Score, ranked[j].Score)
	})

	nElite := opts.NElite()
	if nElite > len(ranked) {
		nElite = len(ranked)
	}
	elites := ranked[:nElite]
	eliteInstances := make([]I, nElite)
	for i, e := range elites {
		eliteInstances[i] = e.Instance
	}

	newParams, err := callUpdate(prob, eliteInstances, stepNum)
	if err != nil {
		return zero, err
	}

	smoothed, err := func() (p P, err error) {
		defer recoverCallback("smooth", stepNum, &err)
		p = prob.smooth(newParams, paramsPrev, opts.FInterp)
		return p, nil
	}()
	if err != nil {
		return zero, err
	}

	return LogEntry[P, I]{
		Step:       stepNum,
		Params:     smoothed,
		EliteScore: elites[len(elites)-1].Score,
		Best:       ranked[0],
	}, nil
}
