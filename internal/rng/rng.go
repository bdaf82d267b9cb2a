// Package rng provides the seeded pseudo-random source that drives every
// randomized decision in layout generation. A seed string is hashed with
// 32-bit FNV-1a and the result seeds a mulberry32 generator, so the same
// string always yields the same sequence.
package rng

import "hash/fnv"

// Rand is a mulberry32 generator. It is not safe for concurrent use; each
// generation call owns its own instance.
type Rand struct {
	state uint32
}

// HashSeed folds s into a 32-bit seed using FNV-1a over its UTF-8 bytes.
func HashSeed(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s)) //nolint:errcheck
	return h.Sum32()
}

// New returns a generator seeded from the hash of seed.
func New(seed string) *Rand {
	return NewFromState(HashSeed(seed))
}

// NewFromState returns a generator whose initial state is exactly state.
func NewFromState(state uint32) *Rand {
	return &Rand{state: state}
}

// Next advances the generator and returns the next unsigned 32-bit value.
func (r *Rand) Next() uint32 {
	r.state += 0x6D2B79F5
	t := (r.state ^ (r.state >> 15)) * (r.state | 1)
	t = (t + (t^(t>>7))*(t|61)) ^ t
	return t ^ (t >> 14)
}

// NextInRange returns a value in [min, max] using a plain modulo reduction.
// The result is slightly biased when max-min+1 does not divide 2^32; layouts
// depend on that exact bias, so it stays. An empty range (max < min) returns
// min without advancing the generator.
func (r *Rand) NextInRange(min, max int) int {
	if max < min {
		return min
	}
	span := uint32(max - min + 1)
	return min + int(r.Next()%span)
}
