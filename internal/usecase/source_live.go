package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/sports-intel/internal/domain/event"
	"github.com/riskibarqy/sports-intel/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

// LiveSource queries every routed provider concurrently and merges the results.
type LiveSource struct {
	providers map[string]ScheduleProvider
	logger    *logging.Logger
	now       func() time.Time
}

func NewLiveSource(logger *logging.Logger, providers ...ScheduleProvider) *LiveSource {
	if logger == nil {
		logger = logging.Default()
	}
	byName := make(map[string]ScheduleProvider, len(providers))
	for _, p := range providers {
		if p == nil {
			continue
		}
		byName[strings.ToLower(p.Name())] = p
	}
	return &LiveSource{providers: byName, logger: logger, now: time.Now}
}

func (s *LiveSource) Name() string {
	return "live"
}

// Has reports whether a provider with this name is registered.
func (s *LiveSource) Has(name string) bool {
	_, ok := s.providers[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

type routeOutcome struct {
	index  int
	route  ProviderRoute
	events []ExternalEvent
	err    error
}

// Events fails only when every route failed; partial failures are logged and skipped.
func (s *LiveSource) Events(ctx context.Context, query EventQuery) ([]event.MergedEvent, error) {
	if len(query.Routes) == 0 {
		return nil, fmt.Errorf("%w: no provider routes for %s", ErrDependencyUnavailable, query.Sport)
	}

	p := pool.NewWithResults[routeOutcome]().WithMaxGoroutines(len(query.Routes))
	for i, route := range query.Routes {
		i, route := i, route
		p.Go(func() routeOutcome {
			out := routeOutcome{index: i, route: route}
			provider, ok := s.providers[strings.ToLower(route.Provider)]
			if !ok {
				out.err = fmt.Errorf("%w: provider %q is not configured", ErrDependencyUnavailable, route.Provider)
				return out
			}
			out.events, out.err = provider.FetchUpcoming(ctx, route)
			return out
		})
	}
	outcomes := p.Wait()
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].index < outcomes[j].index })

	var (
		merger   = newEventMerger(string(query.Sport))
		failures []string
	)
	for _, out := range outcomes {
		if out.err != nil {
			failures = append(failures, out.route.Provider+": "+out.err.Error())
			s.logger.WarnContext(ctx, "provider route failed",
				"sport", query.Sport,
				"provider", out.route.Provider,
				"resource", out.route.Resource,
				"error", out.err,
			)
			continue
		}
		for _, item := range out.events {
			merger.add(out.route.Provider, item)
		}
	}
	if len(failures) == len(outcomes) {
		return nil, fmt.Errorf("all providers failed for %s: %s", query.Sport, strings.Join(failures, "; "))
	}

	events := merger.events()
	if query.Kind == QueryBoxingUpcoming {
		events = upcomingOnly(events, s.now())
	}
	return events, nil
}

func upcomingOnly(events []event.MergedEvent, now time.Time) []event.MergedEvent {
	today := now.UTC().Truncate(24 * time.Hour)
	out := events[:0]
	for _, item := range events {
		if item.StartTime.IsZero() || !item.StartTime.Before(today) {
			out = append(out, item)
		}
	}
	return out
}
