package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestThrottle_SpacesConsecutiveCalls(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	var waits []time.Duration

	throttle := NewThrottle(time.Second)
	throttle.now = func() time.Time { return now }
	throttle.sleep = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}

	for i := 0; i < 3; i++ {
		if err := throttle.Wait(context.Background()); err != nil {
			t.Fatalf("wait %d: %v", i, err)
		}
	}

	want := []time.Duration{0, time.Second, 2 * time.Second}
	for i := range want {
		if waits[i] != want[i] {
			t.Fatalf("wait %d: got=%s want=%s", i, waits[i], want[i])
		}
	}
	if got := throttle.LastCall(); !got.Equal(now.Add(2 * time.Second)) {
		t.Fatalf("unexpected last call %s", got)
	}

	now = now.Add(10 * time.Second)
	if err := throttle.Wait(context.Background()); err != nil {
		t.Fatalf("wait after idle: %v", err)
	}
	if waits[3] != 0 {
		t.Fatalf("expected no wait after idle period, got=%s", waits[3])
	}
}

func TestThrottle_HonoursCancelledContext(t *testing.T) {
	t.Parallel()

	throttle := NewThrottle(time.Hour)
	if err := throttle.Wait(context.Background()); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := throttle.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestThrottle_CancelledWaitReturnsSlot(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	var waits []time.Duration

	throttle := NewThrottle(time.Second)
	throttle.now = func() time.Time { return now }
	throttle.sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return ctx.Err()
	}

	if err := throttle.Wait(context.Background()); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := throttle.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if err := throttle.Wait(context.Background()); err != nil {
		t.Fatalf("wait after cancel: %v", err)
	}

	if waits[2] != time.Second {
		t.Fatalf("expected cancelled slot to be reused, got=%s", waits[2])
	}
	if got := throttle.LastCall(); !got.Equal(now.Add(time.Second)) {
		t.Fatalf("unexpected last call %s", got)
	}
}

func TestBackoff_DelayAndCeiling(t *testing.T) {
	t.Parallel()

	b := NewBackoff(100*time.Millisecond, 50*time.Millisecond)
	b.jitter = func(n int64) int64 { return n - 1 }

	if got := b.Delay(0); got != 150*time.Millisecond-time.Nanosecond {
		t.Fatalf("attempt 0: got=%s", got)
	}
	if got := b.Delay(2); got != 450*time.Millisecond-time.Nanosecond {
		t.Fatalf("attempt 2: got=%s", got)
	}

	// 100+200+400 base plus three jitter ceilings.
	if got := b.Ceiling(3); got != 850*time.Millisecond {
		t.Fatalf("ceiling: got=%s", got)
	}

	for attempt := 0; attempt < 3; attempt++ {
		if b.Delay(attempt) >= b.Base<<attempt+b.MaxJitter {
			t.Fatalf("attempt %d exceeded its jitter ceiling", attempt)
		}
	}
}
