// Package rng provides the pseudo-random source used to simulate
// measurement noise. Tests inject a fixed seed; production seeds from the clock.
package rng

import (
	"math/rand"
	"sync"
	"time"
)

// Source is the subset of *rand.Rand the engine depends on
type Source interface {
	// Intn returns a value in [0, n). n <= 0 yields 0.
	Intn(n int) int
}

type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a goroutine-safe source. A zero seed means seed from the clock.
func New(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedSource{rnd: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

// Fixed always returns the same offset, clamped into [0, n).
// Useful for pinning every random draw in tests.
type Fixed int

func (f Fixed) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(f)
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
