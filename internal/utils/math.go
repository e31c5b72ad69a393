package utils

import (
	"math"
	"math/rand"
	"sync"
)

// RandomFloat returns a random float64 in [0.0, 1.0)
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

// NewSeededRandom returns a deterministic [0.0, 1.0) source, safe for concurrent use.
// Used by tests and benchmarks that need reproducible draws.
func NewSeededRandom(seed int64) func() float64 {
	var mu sync.Mutex
	r := rand.New(rand.NewSource(seed)) //nolint:gosec // Deterministic test randomness
	return func() float64 {
		mu.Lock()
		defer mu.Unlock()
		return r.Float64()
	}
}

// FixedRandom returns a source that always yields v.
func FixedRandom(v float64) func() float64 {
	return func() float64 { return v }
}

// Clamp bounds value to [min, max].
func Clamp(value, min, max float64) float64 {
	return math.Max(min, math.Min(max, value))
}
