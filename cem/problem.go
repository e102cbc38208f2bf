package cem

// InitFunc seeds the initial distribution parameters from the resolved
// options. Called once per search, before step 1.
type InitFunc[P any] func(opts Options) P

// DrawFunc samples a single instance from the current parameters, consuming
// randomness from rng. Called n_sample times per step.
type DrawFunc[P, I any] func(params P, rng *RNG) I

// ScoreFunc rates an instance. Must be a pure function of the instance.
type ScoreFunc[I any] func(instance I) float64

// UpdateFunc fits new parameters to the ordered elite instances. Must not
// read the previous parameters.
type UpdateFunc[P, I any] func(elites []I) P

// SmoothFunc blends newly fit parameters with the previous ones, weighting
// the previous value by fInterp. smooth(new, prev, 0) must equal new;
// smooth(new, prev, 1) must equal prev.
type SmoothFunc[P any] func(newParams, prevParams P, fInterp float64) P

// TerminateFunc is consulted after every step with the log, head-first.
// Returning true stops the search.
type TerminateFunc[P, I any] func(log []LogEntry[P, I], opts Options) bool

// Callbacks bundles the six functions that parameterize a Problem. All six
// are required.
type Callbacks[P, I any] struct {
	Init      InitFunc[P]
	Draw      DrawFunc[P, I]
	Score     ScoreFunc[I]
	Update    UpdateFunc[P, I]
	Smooth    SmoothFunc[P]
	Terminate TerminateFunc[P, I]
}

// Problem is an immutable bundle of the six callbacks that define a
// Cross-Entropy Method search. The engine treats it as the entirety of
// problem-specific behavior; it never holds state of its own beyond the
// closures a caller captures in the callbacks.
type Problem[P, I any] struct {
	init      InitFunc[P]
	draw      DrawFunc[P, I]
	score     ScoreFunc[I]
	update    UpdateFunc[P, I]
	smooth    SmoothFunc[P]
	terminate TerminateFunc[P, I]
}

// New builds a Problem from cb, failing with *MissingCallbackError if any of
// the six fields is nil.
func New[P, I any](cb Callbacks[P, I]) (*Problem[P, I], error) {
	switch {
	case cb.Init == nil:
		return nil, &MissingCallbackError{Callback: "init"}
	case cb.Draw == nil:
		return nil, &MissingCallbackError{Callback: "draw"}
	case cb.Score == nil:
		return nil, &MissingCallbackError{Callback: "score"}
	case cb.Update == nil:
		return nil, &MissingCallbackError{Callback: "update"}
	case cb.Smooth == nil:
		return nil, &MissingCallbackError{Callback: "smooth"}
	case cb.Terminate == nil:
		return nil, &MissingCallbackError{Callback: "terminate"}
	}
	return &Problem[P, I]{
		init:      cb.Init,
		draw:      cb.Draw,
		score:     cb.Score,
		update:    cb.Update,
		smooth:    cb.Smooth,
		terminate: cb.Terminate,
	}, nil
}

// ReplaceInit returns a copy of p with Init substituted; p is unchanged.
func ReplaceInit[P, I any](p *Problem[P, I], fn InitFunc[P]) *Problem[P, I] {
	q := *p
	q.init = fn
	return &q
}

// ReplaceDraw returns a copy of p with Draw substituted; p is unchanged.
func ReplaceDraw[P, I any](p *Problem[P, I], fn DrawFunc[P, I]) *Problem[P, I] {
	q := *p
	q.draw = fn
	return &q
}

// ReplaceScore returns a copy of p with Score substituted; p is unchanged.
func ReplaceScore[P, I any](p *Problem[P, I], fn ScoreFunc[I]) *Problem[P, I] {
	q := *p
	q.score = fn
	return &q
}

// ReplaceUpdate returns a copy of p with Update substituted; p is unchanged.
func ReplaceUpdate[P, I any](p *Problem[P, I], fn UpdateFunc[P, I]) *Problem[P, I] {
	q := *p
	q.update = fn
	return &q
}

// ReplaceSmooth returns a copy of p with Smooth substituted; p is unchanged.
func ReplaceSmooth[P, I any](p *Problem[P, I], fn SmoothFunc[P]) *Problem[P, I] {
	q := *p
	q.smooth = fn
	return &q
}

// ReplaceTerminate returns a copy of p with Terminate substituted; p is
// unchanged.
func ReplaceTerminate[P, I any](p *Problem[P, I], fn TerminateFunc[P, I]) *Problem[P, I] {
	q := *p
	q.terminate = fn
	return &q
}
