package engine

import "math/rand/v2"

// Source supplies the session's randomness: die rolls and chance draws.
// *rand.Rand satisfies it.
type Source interface {
	// IntN returns a value in [0, n). n is always positive.
	IntN(n int) int
}

// NewSource returns a PCG generator seeded with seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// drawBetween returns a value in [lo, hi]. lo must not exceed hi.
func drawBetween(src Source, lo, hi int) int {
	return lo + src.IntN(hi-lo+1)
}
