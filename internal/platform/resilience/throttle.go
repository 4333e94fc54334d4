package resilience

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Throttle spaces call starts at least interval apart on a single-token limiter.
type Throttle struct {
	limiter *rate.Limiter
	now     func() time.Time
	sleep   func(context.Context, time.Duration) error

	mu       sync.Mutex
	lastCall time.Time
}

func NewThrottle(interval time.Duration) *Throttle {
	t := &Throttle{now: time.Now, sleep: Sleep}
	if interval > 0 {
		t.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
	return t
}

// Wait blocks until the caller's slot arrives. A cancelled context hands the slot back.
func (t *Throttle) Wait(ctx context.Context) error {
	if t == nil || t.limiter == nil {
		return ctx.Err()
	}

	now := t.now()
	r := t.limiter.ReserveN(now, 1)
	if !r.OK() {
		return ctx.Err()
	}
	delay := r.DelayFrom(now)
	if err := t.sleep(ctx, delay); err != nil {
		r.CancelAt(t.now())
		return err
	}

	t.mu.Lock()
	if slot := now.Add(delay); slot.After(t.lastCall) {
		t.lastCall = slot
	}
	t.mu.Unlock()
	return nil
}

// LastCall reports the start of the latest call that got through.
func (t *Throttle) LastCall() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastCall
}
