package evo

import (
	"math/rand/v2"

	"github.com/matzehuels/beeline/pkg/tour"
)

// Mutate returns a copy of t in which, with probability rate, two distinct
// interior positions are swapped. The Bernoulli trial is drawn once per call.
// The depot positions are never touched; tours with fewer than two interior
// positions are returned unchanged.
func Mutate(rng *rand.Rand, t tour.Tour, rate float64) tour.Tour {
	out := t.Clone()
	if rng.Float64() >= rate {
		return out
	}
	n := len(out) - 2
	if n < 2 {
		return out
	}
	i := 1 + rng.IntN(n)
	j := 1 + rng.IntN(n-1)
	if j >= i {
		j++
	}
	out[i], out[j] = out[j], out[i]
	return out
}
