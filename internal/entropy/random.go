// Package entropy provides the injectable random source used for every
// stochastic roll in the rule engine: personality generation, interaction
// outcomes, and display shuffles.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	mrand "math/rand/v2"
)

// Source is a synchronous random source. Implementations need not be safe
// for concurrent use; the engine draws from one goroutine.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n). Panics if n <= 0.
	Intn(n int) int
	// Shuffle pseudo-randomizes the order of n elements.
	Shuffle(n int, swap func(i, j int))
	// Read fills p with random bytes (used for identifier generation).
	Read(p []byte) (int, error)
}

// mainStream selects the PCG sequence used by New. Derived streams hash
// their label into a different sequence.
const mainStream = 0x9e3779b97f4a7c15

// Stream is a deterministic PCG-backed Source. Its position can be saved
// with MarshalBinary and restored with UnmarshalBinary, so a resumed game
// continues the sequence instead of replaying it.
type Stream struct {
	pcg *mrand.PCG
	r   *mrand.Rand
}

// New returns a deterministic Stream seeded with seed. Two streams built
// from the same seed yield the same sequence.
func New(seed int64) *Stream {
	return newStream(uint64(seed), mainStream)
}

// Derive returns a stream independent of New(seed) and of every other
// label. Draws from it never move the main sequence.
func Derive(seed int64, label string) *Stream {
	h := fnv.New64a()
	h.Write([]byte(label))
	return newStream(uint64(seed), h.Sum64())
}

func newStream(seed, seq uint64) *Stream {
	pcg := mrand.NewPCG(seed, seq)
	return &Stream{pcg: pcg, r: mrand.New(pcg)}
}

// Float64 implements Source.
func (s *Stream) Float64() float64 { return s.r.Float64() }

// Intn implements Source.
func (s *Stream) Intn(n int) int { return s.r.IntN(n) }

// Shuffle implements Source.
func (s *Stream) Shuffle(n int, swap func(i, j int)) { s.r.Shuffle(n, swap) }

// Read implements Source, eight bytes per draw.
func (s *Stream) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := s.r.Uint64()
		for j := 0; j < 8 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (8 * j))
		}
	}
	return len(p), nil
}

// MarshalBinary returns the current stream position.
func (s *Stream) MarshalBinary() ([]byte, error) {
	return s.pcg.MarshalBinary()
}

// UnmarshalBinary moves the stream to a position saved by MarshalBinary.
func (s *Stream) UnmarshalBinary(data []byte) error {
	if err := s.pcg.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("entropy: restore stream: %w", err)
	}
	return nil
}

// NewSeed generates a seed using crypto/rand.
func NewSeed() (int64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(buf[:])), nil
}

// Between returns an integer uniformly drawn from [lo, hi]. If hi < lo the
// bounds are swapped.
func Between(src Source, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + src.Intn(hi-lo+1)
}

// Chance reports whether a roll succeeds with probability p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Weighted picks an index from weights proportionally to its weight.
// Non-positive weights are never picked. Returns -1 if every weight is
// non-positive.
func Weighted(src Source, weights []int) int {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total == 0 {
		return -1
	}
	roll := src.Intn(total)
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if roll < w {
			return i
		}
		roll -= w
	}
	return len(weights) - 1
}
