package reliability

import (
	"math/rand/v2"
)

// FlipSource is the seeded decision stream behind second-coder
// simulation: seed in, flip decisions out. Abstracting it keeps the
// reliability computation independent of any particular random number
// generator and lets tests substitute a fixed sequence.
type FlipSource interface {
	// Flip reports whether a label should be flipped, given the flip
	// probability for its theme.
	Flip(p float64) bool
}

type pcgSource struct {
	rng *rand.Rand
}

// NewFlipSource returns a FlipSource backed by a PCG stream seeded from
// the run seed. Two sources built from the same seed produce identical
// decision streams, making the whole simulation reproducible
// bit-for-bit.
func NewFlipSource(seed int64) FlipSource {
	return &pcgSource{
		rng: rand.New(rand.NewPCG(uint64(seed), uint64(seed))),
	}
}

func (s *pcgSource) Flip(p float64) bool {
	return s.rng.Float64() < p
}
