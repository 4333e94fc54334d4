package resilience

import (
	"context"
	"math/rand/v2"
	"time"
)

// Backoff computes exponential retry delays with additive jitter.
type Backoff struct {
	Base      time.Duration
	MaxJitter time.Duration

	// jitter returns a value in [0, n); replaced in tests.
	jitter func(n int64) int64
}

func NewBackoff(base, maxJitter time.Duration) Backoff {
	if base < 0 {
		base = 0
	}
	if maxJitter < 0 {
		maxJitter = 0
	}
	return Backoff{Base: base, MaxJitter: maxJitter, jitter: rand.Int64N}
}

// Delay returns Base*2^attempt plus jitter in [0, MaxJitter). attempt starts at 0.
func (b Backoff) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt > 30 {
		attempt = 30
	}

	delay := b.Base << attempt
	if b.MaxJitter > 0 {
		jitter := b.jitter
		if jitter == nil {
			jitter = rand.Int64N
		}
		delay += time.Duration(jitter(int64(b.MaxJitter)))
	}
	return delay
}

// Ceiling is the longest total wait across retries attempts.
func (b Backoff) Ceiling(retries int) time.Duration {
	var total time.Duration
	for attempt := 0; attempt < retries; attempt++ {
		total += b.Base<<attempt + b.MaxJitter
	}
	return total
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
