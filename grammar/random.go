package grammar

import (
	"math/rand/v2"
)

// Source is the injectable randomness source behind alternative selection and
// object handlers. *rand.Rand satisfies it directly; tests substitute fixed
// sequences to make expansion deterministic.
type Source interface {
	// IntN returns a uniform value in [0, n). It panics if n <= 0.
	IntN(n int) int

	// Float64 returns a uniform value in [0.0, 1.0).
	Float64() float64
}

// NewSource returns a general-purpose pseudorandom source with an arbitrary
// seed. This is the default source of a new Grammar.
func NewSource() Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededSource returns a pseudorandom source with a fixed seed, producing
// a reproducible selection sequence.
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, 0))
}
