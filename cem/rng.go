package cem

import (
	"crypto/rand"
	"encoding/binary"

	xrand "golang.org/x/exp/rand"
)

// RNG is the single randomness capability the engine threads through a
// search. Draw callbacks consume it so that (seed, problem, options)
// deterministically fixes the entire run, per the reproducibility
// requirement in the engine's concurrency and resource model.
type RNG struct {
	r *xrand.Rand
}

// newRNG wraps src in an RNG, or seeds a fresh xrand.Source from seed if src
// is nil.
func newRNG(src xrand.Source, seed uint64) *RNG {
	if src == nil {
		src = xrand.NewSource(seed)
	}
	return &RNG{r: xrand.New(src)}
}

// Rand exposes the underlying *xrand.Rand for callbacks that need to hand it
// to a gonum distribution (e.g. distuv.Normal{Src: rng.Rand()}).
func (g *RNG) Rand() *xrand.Rand {
	return g.r
}

// Float64 returns a pseudo-random number in [0, 1).
func (g *RNG) Float64() float64 {
	return g.r.Float64()
}

// NormFloat64 returns a pseudo-random number from the standard normal
// distribution.
func (g *RNG) NormFloat64() float64 {
	return g.r.NormFloat64()
}

// Intn returns a pseudo-random number in [0, n).
func (g *RNG) Intn(n int) int {
	return g.r.Intn(n)
}

// Perm returns a pseudo-random permutation of [0, n).
func (g *RNG) Perm(n int) []int {
	return g.r.Perm(n)
}

// Shuffle pseudo-randomizes the order of n elements via swap, following the
// math/rand.Shuffle contract.
func (g *RNG) Shuffle(n int, swap func(i, j int)) {
	g.r.Shuffle(n, swap)
}

// randomSeed draws a seed from OS entropy, used when the caller does not
// supply one explicitly; the drawn value is surfaced in the search result so
// the run can be reproduced later.
func randomSeed() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing is effectively unrecoverable on any real
		// platform; fall back to a fixed seed rather than panicking so a
		// degraded environment still produces a run (with that seed).
		return 0x9e3779b97f4a7c15
	}
	return binary.LittleEndian.Uint64(buf[:])
}
