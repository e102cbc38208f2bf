package cem

import "fmt"

// ErrDegenerate is a sentinel a problem's Update or Smooth callback may
// panic with (possibly wrapped) when the elite set cannot be fit to — for
// example a zero-variance sample that would force a division by zero. The
// core never raises it itself; the step engine's panic recovery surfaces it
// as the Err of a *CallbackFailedError.
var ErrDegenerate = fmt.Errorf("cem: arithmetic-degenerate fit")

// MissingCallbackError is returned by New when a required callback is nil.
type MissingCallbackError struct {
	Callback string
}

func (e *MissingCallbackError) Error() string {
	return fmt.Sprintf("cem: missing callback %q", e.Callback)
}

// InvalidOptionError is returned by ResolveOptions when an option is out of
// its documented range.
type InvalidOptionError struct {
	Option string
	Value  any
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("cem: invalid option %s=%v", e.Option, e.Value)
}

// CallbackFailedError is returned by Search when a problem callback panics;
// Err holds the panic value, or the value itself if it is an error.
type CallbackFailedError struct {
	Step     int
	Callback string
	Err      error
}

func (e *CallbackFailedError) Error() string {
	return fmt.Sprintf("cem: callback %q failed at step %d: %v", e.Callback, e.Step, e.Err)
}

func (e *CallbackFailedError) Unwrap() error {
	return e.Err
}
