package utils

import (
	"math/rand/v2"
	"sync"
)

// RandomSource is the randomness used by draws, animations and physics.
// Implementations must be safe for the goroutine that owns them; the default
// source is safe for concurrent use.
type RandomSource interface {
	Float64() float64 // [0, 1)
	IntN(n int) int   // [0, n)
}

type defaultRNG struct{}

func (defaultRNG) Float64() float64 { return rand.Float64() } //nolint:gosec // not security critical
func (defaultRNG) IntN(n int) int   { return rand.IntN(n) }   //nolint:gosec // not security critical

// DefaultRNG returns the process-wide source
func DefaultRNG() RandomSource { return defaultRNG{} }

// seededRNG is reproducible, used for Monte Carlo tests and replays
type seededRNG struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededRNG returns a deterministic source for the given seed
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *seededRNG) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// RandomRange returns a float in [min, max)
func RandomRange(rng RandomSource, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

// Shuffle permutes s in place (Fisher-Yates)
func Shuffle[T any](rng RandomSource, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
