package vm

import "math/rand/v2"

// RandomSource supplies random numbers to the RND instruction. Only the
// lowest byte of each value is used, *rand.Rand satisfies it.
type RandomSource interface {
	Uint32() uint32
}

// NewRandomSource returns a deterministic PCG source for the given seed.
func NewRandomSource(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}
