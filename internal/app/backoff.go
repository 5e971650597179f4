package app

import (
	"context"
	"math/rand"
	"time"
)

// Default backoff configuration values for upstream dials.
const (
	DefaultBackoffInitial = 250 * time.Millisecond
	DefaultBackoffMax     = 5 * time.Second
)

// Backoff implements exponential backoff with jitter.
type Backoff struct {
	initial time.Duration
	max     time.Duration
	current time.Duration
}

// NewBackoff creates a backoff with the given initial and max durations.
// Non-positive values fall back to the defaults.
func NewBackoff(initial, max time.Duration) *Backoff {
	if initial <= 0 {
		initial = DefaultBackoffInitial
	}
	if max <= 0 {
		max = DefaultBackoffMax
	}
	return &Backoff{initial: initial, max: max, current: initial}
}

// Wait sleeps for the current backoff duration (±20% jitter) and doubles it,
// capped at max. Returns early with the context's error if it is cancelled.
func (b *Backoff) Wait(ctx context.Context) error {
	jitter := float64(b.current) * 0.2 * (rand.Float64()*2 - 1)
	sleep := time.Duration(float64(b.current) + jitter)

	b.current *= 2
	if b.current > b.max {
		b.current = b.max
	}

	timer := time.NewTimer(sleep)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Reset restores the backoff to its initial duration.
func (b *Backoff) Reset() {
	b.current = b.initial
}

// Current returns the next wait duration before jitter.
func (b *Backoff) Current() time.Duration {
	return b.current
}
