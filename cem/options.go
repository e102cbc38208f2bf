package cem

import (
	"math"

	xrand "golang.org/x/exp/rand"
)

// Mode selects the optimization direction.
type Mode int

const (
	// Max retains the highest-scoring samples as elites. The default.
	Max Mode = iota
	// Min retains the lowest-scoring samples as elites.
	Min
)

func (m Mode) String() string {
	switch m {
	case Max:
		return "max"
	case Min:
		return "min"
	default:
		return "invalid"
	}
}

// Options configures a search. A zero-valued NSample, FElite, or NStepMax
// is replaced by its documented default when passed through ResolveOptions,
// since those fields have no valid zero value. FInterp does have a valid
// zero value (no smoothing at all), so it is never defaulted this way;
// start from DefaultOptions to get the documented 0.1 smoothing weight.
type Options struct {
	// Mode selects Max or Min optimization. Default Max.
	Mode Mode
	// NSample is the number of instances drawn per step. Default 100.
	NSample int
	// FElite is the elite fraction kept per step, in (0, 1]. Default 0.1.
	FElite float64
	// FInterp is the smoothing weight on the previous parameters, in
	// [0, 1]. Zero means no smoothing. Documented default 0.1 is only
	// applied by DefaultOptions, not by ResolveOptions.
	FInterp float64
	// NStepMax is the hard step cap. Default 100.
	NStepMax int
	// OtherOpts is passed verbatim to Init and Terminate; the engine never
	// inspects it.
	OtherOpts any
	// Src, if non-nil, is the randomness source the search threads through
	// Draw. If nil, a source is seeded from Seed (or from OS entropy if
	// Seed is also zero).
	Src xrand.Source
	// Seed is used to build the default randomness source when Src is nil.
	// If Seed is zero, a seed is drawn from OS entropy and surfaced in the
	// search Result so the run can be reproduced.
	Seed uint64
}

// DefaultOptions returns the documented option defaults.
func DefaultOptions() Options {
	return Options{
		Mode:     Max,
		NSample:  100,
		FElite:   0.1,
		FInterp:  0.1,
		NStepMax: 100,
	}
}

// ResolveOptions merges o over the documented defaults for the fields that
// have no valid zero value (NSample, FElite, NStepMax) and validates the
// result, returning *InvalidOptionError naming the first offending field.
func ResolveOptions(o Options) (Options, error) {
	d := DefaultOptions()
	if o.NSample == 0 {
		o.NSample = d.NSample
	}
	if o.FElite == 0 {
		o.FElite = d.FElite
	}
	if o.NStepMax == 0 {
		o.NStepMax = d.NStepMax
	}

	switch {
	case o.NSample < 1:
		return o, &InvalidOptionError{Option: "n_sample", Value: o.NSample}
	case o.FElite <= 0 || o.FElite > 1:
		return o, &InvalidOptionError{Option: "f_elite", Value: o.FElite}
	case o.FInterp < 0 || o.FInterp > 1:
		return o, &InvalidOptionError{Option: "f_interp", Value: o.FInterp}
	case o.NStepMax < 1:
		return o, &InvalidOptionError{Option: "n_step_max", Value: o.NStepMax}
	case math.IsNaN(o.FElite) || math.IsNaN(o.FInterp):
		return o, &InvalidOptionError{Option: "f_elite/f_interp", Value: math.NaN()}
	}
	return o, nil
}

// NElite returns ceil(f_elite * n_sample), the number of elites kept each
// step. o must already be resolved.
func (o Options) NElite() int {
	return int(math.Ceil(o.FElite * float64(o.NSample)))
}
