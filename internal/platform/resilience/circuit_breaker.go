package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

const (
	defaultFailureThreshold = 5
	defaultOpenTimeout      = 15 * time.Second
	defaultHalfOpenTrials   = 2
)

// CircuitBreakerConfig is read from PROVIDER_CIRCUIT_*. Zero values fall back to 5 failures,
// a 15s open window and 2 half-open trial requests.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

type BreakerOption func(*CircuitBreaker)

// OnStateChange registers a hook called with the lock held; it must not call back into the breaker.
func OnStateChange(fn func(from, to CircuitState)) BreakerOption {
	return func(b *CircuitBreaker) {
		b.onChange = fn
	}
}

// CircuitBreaker guards one provider. Consecutive transient failures open it; after the open
// window a limited number of trial requests decide whether it closes again.
type CircuitBreaker struct {
	mu sync.Mutex

	enabled   bool
	threshold int
	window    time.Duration
	trials    int
	onChange  func(from, to CircuitState)
	now       func() time.Time

	state    CircuitState
	failures int
	openedAt time.Time
	inFlight int
	passed   int
}

func NewCircuitBreaker(cfg CircuitBreakerConfig, opts ...BreakerOption) *CircuitBreaker {
	b := &CircuitBreaker{
		enabled:   cfg.Enabled,
		threshold: cfg.FailureThreshold,
		window:    cfg.OpenTimeout,
		trials:    cfg.HalfOpenMaxReq,
		now:       time.Now,
		state:     CircuitStateClosed,
	}
	if b.threshold < 1 {
		b.threshold = defaultFailureThreshold
	}
	if b.window <= 0 {
		b.window = defaultOpenTimeout
	}
	if b.trials < 1 {
		b.trials = defaultHalfOpenTrials
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Allow returns ErrCircuitOpen while the provider is cooling down or every half-open trial
// slot is taken.
func (b *CircuitBreaker) Allow() error {
	if b == nil || !b.enabled {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateOpen:
		if b.now().Sub(b.openedAt) < b.window {
			return ErrCircuitOpen
		}
		b.moveTo(CircuitStateHalfOpen)
		b.inFlight++
	case CircuitStateHalfOpen:
		if b.inFlight >= b.trials {
			return ErrCircuitOpen
		}
		b.inFlight++
	}
	return nil
}

// Record reports the outcome of an allowed request. Non-transient failures (a 404, a bad
// payload) should be recorded as successes.
func (b *CircuitBreaker) Record(transientFailure bool) {
	if b == nil || !b.enabled {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		if !transientFailure {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.threshold {
			b.moveTo(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		if transientFailure {
			b.moveTo(CircuitStateOpen)
			return
		}
		if b.inFlight > 0 {
			b.inFlight--
		}
		b.passed++
		if b.passed >= b.trials && b.inFlight == 0 {
			b.moveTo(CircuitStateClosed)
		}
	case CircuitStateOpen:
		if transientFailure {
			b.openedAt = b.now()
		}
	}
}

// State reports half_open once the open window has elapsed, even before the next Allow.
func (b *CircuitBreaker) State() CircuitState {
	if b == nil || !b.enabled {
		return CircuitStateClosed
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.window {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) moveTo(next CircuitState) {
	prev := b.state
	b.state = next
	b.inFlight = 0
	b.passed = 0
	b.failures = 0
	if next == CircuitStateOpen {
		b.openedAt = b.now()
	}
	if b.onChange != nil && prev != next {
		b.onChange(prev, next)
	}
}
