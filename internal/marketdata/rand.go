package marketdata

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"
)

// randSource wraps math/rand for concurrent use. Generators are shared across
// request goroutines, so draws are serialized.
type randSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newRandSource(seed int64) *randSource {
	return &randSource{rng: rand.New(rand.NewSource(seed))}
}

// uniform draws from [lo, hi)
func (r *randSource) uniform(lo, hi float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + r.rng.Float64()*(hi-lo)
}

// intn draws from [0, n)
func (r *randSource) intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// sleepJitter blocks for a random duration in [min, max), or until the
// context is cancelled. A non-positive max disables the delay.
func (r *randSource) sleepJitter(ctx context.Context, min, max time.Duration) error {
	if max <= 0 {
		return ctx.Err()
	}
	delay := min
	if max > min {
		delay = min + time.Duration(r.uniform(0, float64(max-min)))
	}
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
