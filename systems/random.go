package systems

import (
	"math/rand"
	"time"
)

// RandomSource is the single generator behind every probabilistic decision
// of a simulation: initial seeding, movement and breeding. It is owned by
// the simulator and handed to the rules explicitly, so two sources created
// with the same seed replay the same run.
type RandomSource struct {
	*rand.Rand
	seed int64
}

// NewRandomSource returns a source seeded with seed.
// A zero seed is replaced by a time-based one.
func NewRandomSource(seed int64) *RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomSource{
		Rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the seed the source was created with.
func (r *RandomSource) Seed() int64 {
	return r.seed
}

// Chance reports whether a uniform draw in [0,1) falls at or below p.
func (r *RandomSource) Chance(p float64) bool {
	return r.Float64() <= p
}

// IntBetween returns a uniform integer in [lo, hi].
func (r *RandomSource) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}
