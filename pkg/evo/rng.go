package evo

import (
	"math/rand/v2"
	"time"
)

// NewRand returns a deterministic PCG-backed source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// resolveSeed returns seed, or a clock-derived non-zero seed when seed is 0.
func resolveSeed(seed uint64, now func() time.Time) uint64 {
	if seed != 0 {
		return seed
	}
	s := uint64(now().UnixNano())
	if s == 0 {
		s = 1
	}
	return s
}
