package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_ConcurrentCallersShareOneFetch(t *testing.T) {
	var g SingleFlight[[]byte]
	var fetches atomic.Int32
	var sharedCount atomic.Int32

	const callers = 16
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(callers)

	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			<-release
			payload, err, shared := g.Do("https://provider.test/eventsnextleague.php?id=4387", func() ([]byte, error) {
				fetches.Add(1)
				time.Sleep(40 * time.Millisecond)
				return []byte(`{"events":[]}`), nil
			})
			if err != nil || string(payload) != `{"events":[]}` {
				t.Errorf("unexpected result payload=%q err=%v", payload, err)
			}
			if shared {
				sharedCount.Add(1)
			}
		}()
	}

	close(release)
	wg.Wait()

	if got := fetches.Load(); got != 1 {
		t.Fatalf("expected one upstream fetch, got=%d", got)
	}
	if sharedCount.Load() == 0 {
		t.Fatalf("expected callers to observe a shared result")
	}
}

func TestSingleFlight_FailureIsNotRemembered(t *testing.T) {
	t.Parallel()

	var g SingleFlight[int]
	timeout := errors.New("provider timeout")

	if _, err, _ := g.Do("schedule:nhl", func() (int, error) { return 0, timeout }); !errors.Is(err, timeout) {
		t.Fatalf("expected timeout, got %v", err)
	}

	count, err, shared := g.Do("schedule:nhl", func() (int, error) { return 12, nil })
	if err != nil || count != 12 || shared {
		t.Fatalf("expected a fresh run, got count=%d err=%v shared=%t", count, err, shared)
	}
}

func TestSingleFlight_ZeroValueOnError(t *testing.T) {
	t.Parallel()

	var g SingleFlight[[]string]
	got, err, _ := g.Do("k", func() ([]string, error) { return nil, errors.New("boom") })
	if err == nil || got != nil {
		t.Fatalf("expected nil slice with error, got %v %v", got, err)
	}
}
