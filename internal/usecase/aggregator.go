package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/sports-intel/internal/domain/confidence"
	"github.com/riskibarqy/sports-intel/internal/domain/event"
	"github.com/riskibarqy/sports-intel/internal/domain/sport"
	"github.com/riskibarqy/sports-intel/internal/platform/cache"
	"github.com/riskibarqy/sports-intel/internal/platform/logging"
	"github.com/riskibarqy/sports-intel/internal/platform/resilience"
	"github.com/riskibarqy/sports-intel/internal/scoring"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultScheduleTTL = 12 * time.Hour
	DefaultBoxingTTL   = 24 * time.Hour
)

type AggregatorConfig struct {
	ScheduleTTL  time.Duration
	BoxingTTL    time.Duration
	MockMode     bool
	EnrichEvents bool
	SyncWorkers  int
	Routes       map[sport.Sport][]ProviderRoute
}

// Aggregator answers schedule queries from cache, live providers or the mock generator,
// in that order, and never surfaces provider failures.
type Aggregator struct {
	cfg    AggregatorConfig
	cache  cache.Store
	live   EventSource
	mock   EventSource
	engine *scoring.Engine
	logger *logging.Logger
	flight resilience.SingleFlight[event.ScheduleResult]
	now    func() time.Time
}

type AggregatorOption func(*Aggregator)

func WithClock(now func() time.Time) AggregatorOption {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

func WithMockSource(source EventSource) AggregatorOption {
	return func(a *Aggregator) {
		if source != nil {
			a.mock = source
		}
	}
}

func NewAggregator(
	cfg AggregatorConfig,
	store cache.Store,
	live EventSource,
	engine *scoring.Engine,
	logger *logging.Logger,
	opts ...AggregatorOption,
) *Aggregator {
	if cfg.ScheduleTTL <= 0 {
		cfg.ScheduleTTL = DefaultScheduleTTL
	}
	if cfg.BoxingTTL <= 0 {
		cfg.BoxingTTL = DefaultBoxingTTL
	}
	if store == nil {
		store = cache.NewMemoryStore()
	}
	if engine == nil {
		engine = scoring.MustNewEngine()
	}
	if logger == nil {
		logger = logging.Default()
	}

	a := &Aggregator{
		cfg:    cfg,
		cache:  store,
		live:   live,
		engine: engine,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.mock == nil {
		a.mock = NewMockSource(a.now)
	}
	return a
}

// FetchSchedule returns upcoming events for a sport. The only error is an unknown sport.
func (a *Aggregator) FetchSchedule(ctx context.Context, rawSport string, useCache bool) (event.ScheduleResult, error) {
	s, ok := sport.Parse(rawSport)
	if !ok {
		return event.ScheduleResult{}, fmt.Errorf("%w: %q", ErrUnknownSport, rawSport)
	}

	query := EventQuery{Sport: s, Kind: QuerySchedule, Routes: a.cfg.Routes[s]}
	return a.fetch(ctx, query, sport.ScheduleKey(s), a.cfg.ScheduleTTL, useCache)
}

func (a *Aggregator) FetchUpcomingBoxing(ctx context.Context, useCache bool) (event.ScheduleResult, error) {
	query := EventQuery{Sport: sport.Boxing, Kind: QueryBoxingUpcoming, Routes: a.cfg.Routes[sport.Boxing]}
	return a.fetch(ctx, query, sport.BoxingUpcomingKey, a.cfg.BoxingTTL, useCache)
}

// ComputeDCI scores a matchup with the sport's profile.
func (a *Aggregator) ComputeDCI(ctx context.Context, rawSport string, one, two confidence.Competitor, mc confidence.MatchupContext) (confidence.Matchup, error) {
	_, span := startUsecaseSpan(ctx, "usecase.Aggregator.ComputeDCI", attribute.String("sport", rawSport))
	defer span.End()

	s, ok := sport.Parse(rawSport)
	if !ok {
		return confidence.Matchup{}, fmt.Errorf("%w: %q", ErrUnknownSport, rawSport)
	}
	if strings.TrimSpace(mc.Surface) != "" {
		mc.Surface = strings.ToLower(strings.TrimSpace(mc.Surface))
	}

	matchup, err := a.engine.Compute(s, one, two, mc)
	if err != nil {
		return confidence.Matchup{}, fmt.Errorf("%w: %v", ErrUnknownSport, err)
	}
	return matchup, nil
}

// SportInfo describes one supported sport for catalog listings.
type SportInfo struct {
	Sport       string   `json:"sport"`
	DisplayName string   `json:"display_name"`
	Providers   []string `json:"providers"`
	Factors     []string `json:"factors"`
	Mock        bool     `json:"mock"`
}

func (a *Aggregator) Catalog() []SportInfo {
	out := make([]SportInfo, 0, len(sport.All()))
	for _, s := range sport.All() {
		info := SportInfo{
			Sport:       string(s),
			DisplayName: s.DisplayName(),
			Providers:   []string{},
			Factors:     []string{},
		}
		for _, route := range a.cfg.Routes[s] {
			if !containsString(info.Providers, route.Provider) {
				info.Providers = append(info.Providers, route.Provider)
			}
		}
		info.Mock = a.cfg.MockMode || len(info.Providers) == 0
		if profile, ok := a.engine.Profile(s); ok {
			for _, f := range profile.Factors {
				info.Factors = append(info.Factors, f.Name)
			}
		}
		out = append(out, info)
	}
	return out
}

func (a *Aggregator) fetch(ctx context.Context, query EventQuery, key string, ttl time.Duration, useCache bool) (event.ScheduleResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Aggregator.fetch",
		attribute.String("sport", string(query.Sport)),
		attribute.String("cache.key", key),
		attribute.Bool("cache.use", useCache),
	)
	defer span.End()

	if useCache {
		if res, ok := a.readCache(ctx, key); ok {
			res.Cached = true
			return res, nil
		}
	}

	// The load is shared by every caller on key, so one caller leaving must not cancel it.
	shared := context.WithoutCancel(ctx)
	res, err, _ := a.flight.Do(key, func() (event.ScheduleResult, error) {
		return a.load(shared, query, key, ttl), nil
	})
	return res, err
}

func (a *Aggregator) load(ctx context.Context, query EventQuery, key string, ttl time.Duration) event.ScheduleResult {
	if a.cfg.MockMode || len(query.Routes) == 0 || a.live == nil {
		return a.fromMock(ctx, query, key, ttl)
	}

	events, err := a.live.Events(ctx, query)
	if err == nil {
		res := a.finalize(query.Sport, events)
		a.writeCache(ctx, key, res, ttl)
		return res
	}

	a.logger.WarnContext(ctx, "live source failed, falling back",
		"sport", query.Sport,
		"kind", query.Kind,
		"error", err,
	)
	if res, ok := a.readCache(ctx, key); ok {
		a.logger.InfoContext(ctx, "serving cached schedule after provider failure", "sport", query.Sport, "cache_key", key)
		res.Cached = true
		return res
	}
	return a.fromMock(ctx, query, key, ttl)
}

func (a *Aggregator) fromMock(ctx context.Context, query EventQuery, key string, ttl time.Duration) event.ScheduleResult {
	events, err := a.mock.Events(ctx, query)
	if err != nil {
		a.logger.ErrorContext(ctx, "mock source failed", "sport", query.Sport, "error", err)
	}
	res := a.finalize(query.Sport, events)
	a.writeCache(ctx, key, res, ttl)
	return res
}

func (a *Aggregator) finalize(s sport.Sport, events []event.MergedEvent) event.ScheduleResult {
	if a.cfg.EnrichEvents {
		for i := range events {
			events[i].Analysis = a.analyze(s, events[i])
		}
	}
	return event.NewScheduleResult(string(s), events, false)
}

// analyze scores an event from name-seeded stat bundles so cached payloads stay stable.
func (a *Aggregator) analyze(s sport.Sport, item event.MergedEvent) *event.Analysis {
	one, err := a.engine.MockCompetitor(s, item.Participants[0].Name)
	if err != nil {
		return nil
	}
	two, err := a.engine.MockCompetitor(s, item.Participants[1].Name)
	if err != nil {
		return nil
	}

	var mc confidence.MatchupContext
	if item.Participants[0].Side == event.SideHome {
		mc.Home = confidence.SideOne
	}
	matchup, err := a.engine.Compute(s, one, two, mc)
	if err != nil {
		return nil
	}

	analysis := &event.Analysis{Matchup: matchup}
	switch matchup.Favorite() {
	case confidence.SideOne:
		analysis.Favorite = matchup.One.Name
	case confidence.SideTwo:
		analysis.Favorite = matchup.Two.Name
	}
	return analysis
}

func (a *Aggregator) readCache(ctx context.Context, key string) (event.ScheduleResult, bool) {
	payload, ok, err := a.cache.Get(ctx, key)
	if err != nil {
		a.logger.WarnContext(ctx, "cache read failed", "cache_key", key, "error", err)
		return event.ScheduleResult{}, false
	}
	if !ok {
		return event.ScheduleResult{}, false
	}

	var res event.ScheduleResult
	if err := sonic.Unmarshal(payload, &res); err != nil {
		a.logger.WarnContext(ctx, "cache payload undecodable", "cache_key", key, "error", err)
		return event.ScheduleResult{}, false
	}
	if res.Events == nil {
		res.Events = []event.MergedEvent{}
	}
	return res, true
}

func (a *Aggregator) writeCache(ctx context.Context, key string, res event.ScheduleResult, ttl time.Duration) {
	res.Cached = false
	payload, err := sonic.Marshal(res)
	if err != nil {
		a.logger.WarnContext(ctx, "cache payload encode failed", "cache_key", key, "error", err)
		return
	}
	if err := a.cache.Put(ctx, key, payload, ttl); err != nil {
		a.logger.WarnContext(ctx, "cache write failed", "cache_key", key, "error", err)
	}
}
