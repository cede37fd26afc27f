// Package rng provides the deterministic pseudo-random stream that drives
// event selection and map generation. The stream is save-compatible: the
// advanced seed is written back into the game state after each use, so a
// reloaded save continues exactly where it left off.
package rng

// LCG constants (Numerical Recipes).
const (
	multiplier = 1664525
	increment  = 1013904223
)

// Stream is a seeded linear-congruential generator. The zero value is a
// valid stream seeded with 0.
type Stream struct {
	state uint32
}

// New creates a stream from a seed. The same seed always yields the same
// sequence, on every platform.
func New(seed uint32) *Stream {
	return &Stream{state: seed}
}

// Next advances the stream and returns a float64 in [0, 1).
func (s *Stream) Next() float64 {
	s.state = s.state*multiplier + increment
	return float64(s.state) / float64(0xffffffff)
}

// Seed returns the current internal state. Persist this to resume the
// stream later.
func (s *Stream) Seed() uint32 {
	return s.state
}

// Clone forks the stream. Draws on the clone do not advance the original.
func (s *Stream) Clone() *Stream {
	return &Stream{state: s.state}
}
