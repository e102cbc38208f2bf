// Package cem implements the Cross-Entropy Method, a generic stochastic
// optimization engine driven by sampling, elite selection, and distribution
// refitting.
//
// A problem is described entirely by six callbacks bundled into a Problem
// value: Init seeds the initial distribution parameters, Draw samples a
// candidate instance from the current parameters, Score rates an instance,
// Update refits parameters to a set of elite instances, Smooth blends the
// refit parameters with the previous ones, and Terminate decides when to
// stop. The engine is polymorphic in the parameter type P and the instance
// type I; it never inspects either, it only moves values between callbacks.
//
// Search runs the engine to a fixed point: it repeatedly samples n_sample
// instances from the current parameters, scores them, keeps the elite
// fraction, refits and smooths the parameters, and appends a log entry,
// until the problem's Terminate callback returns true or the step cap is
// reached.
package cem
