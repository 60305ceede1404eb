// Package sampler draws GC-weighted random bases from a seedable source.
//
// A Sampler is the only source of randomness used by synthesis and conflict
// resolution, so a fixed seed reproduces a whole run.
package sampler

import (
	"math/rand"

	"github.com/levantapatin/siteout/core/span"
)

// Mutator is the single-base write primitive the sampler rewrites through.
type Mutator interface {
	Mutate(pos int, b byte) error
}

// Sampler is not safe for concurrent use.
type Sampler struct {
	seed int64
	rng  *rand.Rand
}

// New returns a sampler seeded with seed.
func New(seed int64) *Sampler {
	return &Sampler{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

// Seed returns the seed the sampler was created with.
func (s *Sampler) Seed() int64 { return s.seed }

func clamp(gc float64) float64 {
	switch {
	case gc < 0:
		return 0
	case gc > 1:
		return 1
	}
	return gc
}

// Draw returns G/C with combined probability gc and A/T with 1-gc,
// split evenly within each pair.
func (s *Sampler) Draw(gc float64) byte {
	gc = clamp(gc)
	r := s.rng.Float64()
	at := (1 - gc) / 2
	switch {
	case r < at:
		return 'A'
	case r < 2*at:
		return 'T'
	case r < 2*at+gc/2:
		return 'C'
	default:
		return 'G'
	}
}

// pairOf maps a base to the other member of its GC class.
func pairOf(b byte) byte {
	switch b {
	case 'A':
		return 'T'
	case 'T':
		return 'A'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	}
	return 'A'
}

// Replace draws a base different from cur. A draw equal to cur is swapped to
// its class partner, which keeps the GC class probability at gc.
func (s *Sampler) Replace(cur byte, gc float64) byte {
	b := s.Draw(gc)
	if b == cur {
		return pairOf(b)
	}
	return b
}

// Synthesize returns n freshly drawn bases.
func (s *Sampler) Synthesize(n int, gc float64) []byte {
	if n <= 0 {
		return []byte{}
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = s.Draw(gc)
	}
	return out
}

// Resample rewrites every position of r independently via Draw.
func (s *Sampler) Resample(m Mutator, r span.Range, gc float64) error {
	for pos := r.Start; pos < r.End; pos++ {
		if err := m.Mutate(pos, s.Draw(gc)); err != nil {
			return err
		}
	}
	return nil
}

// Intn returns a uniform int in [0, n). n must be > 0.
func (s *Sampler) Intn(n int) int { return s.rng.Intn(n) }
