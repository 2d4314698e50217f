package calculation

import "math/rand"

// RandomSource yields uniform draws in [0,1). All randomness in the engines
// flows through this interface so tests can supply fixed sequences, and so the
// event draw and the stock-price walk can be seeded independently.
type RandomSource interface {
	Float64() float64
}

// NewSeededSource returns a deterministic source for the given seed.
func NewSeededSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}
