package usecase_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/sports-intel/external/provider"
	"github.com/riskibarqy/sports-intel/internal/domain/confidence"
	"github.com/riskibarqy/sports-intel/internal/domain/event"
	"github.com/riskibarqy/sports-intel/internal/domain/sport"
	usecasemock "github.com/riskibarqy/sports-intel/internal/mocks/usecase"
	"github.com/riskibarqy/sports-intel/internal/platform/cache"
	"github.com/riskibarqy/sports-intel/internal/platform/logging"
	"github.com/riskibarqy/sports-intel/internal/scoring"
	"github.com/riskibarqy/sports-intel/internal/usecase"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func routes(entries ...usecase.ProviderRoute) map[sport.Sport][]usecase.ProviderRoute {
	out := make(map[sport.Sport][]usecase.ProviderRoute, len(entries))
	for _, r := range entries {
		out[r.Sport] = append(out[r.Sport], r)
	}
	return out
}

func forSport(s sport.Sport) any {
	return mock.MatchedBy(func(q usecase.EventQuery) bool { return q.Sport == s && q.Kind == usecase.QuerySchedule })
}

func liveEvents(s sport.Sport) []event.MergedEvent {
	return []event.MergedEvent{{
		ID:        "thesportsdb-100",
		SportType: string(s),
		League:    "NBA",
		Participants: [2]event.Participant{
			{Name: "Boston Celtics", Side: event.SideHome},
			{Name: "New York Knicks", Side: event.SideAway},
		},
		StartTime:   fixedNow.Add(48 * time.Hour),
		SourcesUsed: []string{"thesportsdb"},
	}}
}

func TestAggregator_CacheMissThenHit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	live := usecasemock.NewEventSource(t)
	live.On("Events", mock.Anything, forSport(sport.NBA)).Return(liveEvents(sport.NBA), nil).Once()

	agg := usecase.NewAggregator(usecase.AggregatorConfig{
		Routes: routes(usecase.ProviderRoute{Sport: sport.NBA, Provider: "thesportsdb", Resource: "4387"}),
	}, cache.NewMemoryStore(cache.WithClock(fixedClock)), live, nil, logging.NewNop(), usecase.WithClock(fixedClock))

	first, err := agg.FetchSchedule(ctx, "nba", true)
	require.NoError(t, err)
	require.False(t, first.Cached)
	require.Equal(t, 1, first.Count)

	second, err := agg.FetchSchedule(ctx, "NBA", true)
	require.NoError(t, err)
	require.True(t, second.Cached)
	require.Equal(t, first.Count, second.Count)
	require.Equal(t, []string{"thesportsdb"}, second.SourcesUsed)
	require.Equal(t, "Boston Celtics", second.Events[0].Participants[0].Name)

	live.AssertNumberOfCalls(t, "Events", 1)
}

func TestAggregator_BypassCacheAlwaysCallsProvider(t *testing.T) {
	t.Parallel()

	live := usecasemock.NewEventSource(t)
	live.On("Events", mock.Anything, forSport(sport.NBA)).Return(liveEvents(sport.NBA), nil).Twice()

	agg := usecase.NewAggregator(usecase.AggregatorConfig{
		Routes: routes(usecase.ProviderRoute{Sport: sport.NBA, Provider: "thesportsdb"}),
	}, nil, live, nil, logging.NewNop())

	for i := 0; i < 2; i++ {
		res, err := agg.FetchSchedule(context.Background(), "nba", false)
		require.NoError(t, err)
		require.False(t, res.Cached)
	}
}

func TestAggregator_CallerCancellationDoesNotAbortSharedLoad(t *testing.T) {
	t.Parallel()

	live := usecasemock.NewEventSource(t)
	live.On("Events", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }), forSport(sport.NBA)).
		Return(liveEvents(sport.NBA), nil).Once()

	agg := usecase.NewAggregator(usecase.AggregatorConfig{
		Routes: routes(usecase.ProviderRoute{Sport: sport.NBA, Provider: "thesportsdb"}),
	}, nil, live, nil, logging.NewNop(), usecase.WithClock(fixedClock))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := agg.FetchSchedule(ctx, "nba", false)
	require.NoError(t, err)
	require.Equal(t, []string{"thesportsdb"}, res.SourcesUsed)
	require.Equal(t, "Boston Celtics", res.Events[0].Participants[0].Name)
}

func TestAggregator_ProviderFailureFallsBackToDeterministicMock(t *testing.T) {
	t.Parallel()

	newAggregator := func() *usecase.Aggregator {
		p := usecasemock.NewScheduleProvider(t)
		p.On("Name").Return("thesportsdb")
		p.On("FetchUpcoming", mock.Anything, mock.Anything).
			Return(nil, &provider.Failure{Kind: provider.KindServerError, Provider: "thesportsdb", Status: 500})

		live := usecase.NewLiveSource(logging.NewNop(), p)
		return usecase.NewAggregator(usecase.AggregatorConfig{
			Routes: routes(usecase.ProviderRoute{Sport: sport.NHL, Provider: "thesportsdb", Resource: "4380"}),
		}, cache.NewMemoryStore(cache.WithClock(fixedClock)), live, nil, logging.NewNop(), usecase.WithClock(fixedClock))
	}

	first, err := newAggregator().FetchSchedule(context.Background(), "nhl", false)
	require.NoError(t, err)
	second, err := newAggregator().FetchSchedule(context.Background(), "hockey", false)
	require.NoError(t, err)

	require.NotEmpty(t, first.Events)
	require.True(t, first.Mock)
	require.True(t, reflect.DeepEqual(first.Events, second.Events), "mock fallback must be deterministic")
	require.Equal(t, "mock-nhl-1", first.Events[0].ID)
	require.Equal(t, "Team A", first.Events[0].Participants[0].Name)
	require.Equal(t, "NHL League", first.Events[0].League)
	require.True(t, first.Events[0].StartTime.Equal(fixedNow.Truncate(time.Hour).AddDate(0, 0, 1)))
	require.True(t, first.Events[1].StartTime.Equal(fixedNow.Truncate(time.Hour).AddDate(0, 0, 2)))
}

func TestAggregator_ProviderFailurePrefersFreshCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	live := usecasemock.NewEventSource(t)
	live.On("Events", mock.Anything, forSport(sport.NBA)).Return(liveEvents(sport.NBA), nil).Once()
	live.On("Events", mock.Anything, forSport(sport.NBA)).Return(nil, errors.New("all providers failed")).Once()

	store := cache.NewMemoryStore(cache.WithClock(fixedClock))
	agg := usecase.NewAggregator(usecase.AggregatorConfig{
		Routes: routes(usecase.ProviderRoute{Sport: sport.NBA, Provider: "thesportsdb"}),
	}, store, live, nil, logging.NewNop(), usecase.WithClock(fixedClock))

	_, err := agg.FetchSchedule(ctx, "nba", false)
	require.NoError(t, err)
	before, _, _ := store.Entry(ctx, sport.ScheduleKey(sport.NBA))

	res, err := agg.FetchSchedule(ctx, "nba", false)
	require.NoError(t, err)
	require.True(t, res.Cached)
	require.False(t, res.Mock)
	require.Equal(t, "thesportsdb-100", res.Events[0].ID)

	after, _, _ := store.Entry(ctx, sport.ScheduleKey(sport.NBA))
	require.Equal(t, before, after, "cache fallback must not rewrite the entry")
}

func TestAggregator_UnroutedSportUsesMockAndCaches(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	live := usecasemock.NewEventSource(t)
	store := cache.NewMemoryStore(cache.WithClock(fixedClock))
	agg := usecase.NewAggregator(usecase.AggregatorConfig{}, store, live, nil, logging.NewNop(), usecase.WithClock(fixedClock))

	res, err := agg.FetchSchedule(ctx, "golf", true)
	require.NoError(t, err)
	require.True(t, res.Mock)
	require.Equal(t, 2, res.Count)
	require.Equal(t, []string{"mock"}, res.SourcesUsed)

	entry, ok, err := store.Entry(ctx, "schedule:golf")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, entry.ExpiresAt.Equal(fixedNow.Add(usecase.DefaultScheduleTTL)))
}

func TestAggregator_MockModeNeverCallsProviders(t *testing.T) {
	t.Parallel()

	live := usecasemock.NewEventSource(t)
	agg := usecase.NewAggregator(usecase.AggregatorConfig{
		MockMode: true,
		Routes:   routes(usecase.ProviderRoute{Sport: sport.NFL, Provider: "thesportsdb"}),
	}, nil, live, nil, logging.NewNop())

	res, err := agg.FetchSchedule(context.Background(), "nfl", false)
	require.NoError(t, err)
	require.True(t, res.Mock)
	live.AssertNotCalled(t, "Events", mock.Anything, mock.Anything)
}

func TestAggregator_UpcomingBoxing(t *testing.T) {
	t.Parallel()

	store := cache.NewMemoryStore(cache.WithClock(fixedClock))
	agg := usecase.NewAggregator(usecase.AggregatorConfig{EnrichEvents: true}, store, nil, nil, logging.NewNop(), usecase.WithClock(fixedClock))

	res, err := agg.FetchUpcomingBoxing(context.Background(), true)
	require.NoError(t, err)
	require.Equal(t, 2, res.Count)
	require.Equal(t, "Gervonta Davis", res.Events[0].Participants[0].Name)
	require.Equal(t, "Lightweight", res.Events[0].WeightClass)

	analysis := res.Events[0].Analysis
	require.NotNil(t, analysis)
	require.InDelta(t, 100, analysis.Matchup.One.Score+analysis.Matchup.Two.Score, 0.01)
	require.NotEmpty(t, analysis.Favorite)

	entry, ok, _ := store.Entry(context.Background(), sport.BoxingUpcomingKey)
	require.True(t, ok)
	require.True(t, entry.ExpiresAt.Equal(fixedNow.Add(usecase.DefaultBoxingTTL)))
}

func TestAggregator_UnknownSport(t *testing.T) {
	t.Parallel()

	agg := usecase.NewAggregator(usecase.AggregatorConfig{}, nil, nil, nil, logging.NewNop())

	_, err := agg.FetchSchedule(context.Background(), "quidditch", true)
	require.ErrorIs(t, err, usecase.ErrUnknownSport)
	require.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = agg.ComputeDCI(context.Background(), "", confidence.Competitor{}, confidence.Competitor{}, confidence.MatchupContext{})
	require.ErrorIs(t, err, usecase.ErrUnknownSport)
}

func TestAggregator_ComputeDCIBoxingScenario(t *testing.T) {
	t.Parallel()

	agg := usecase.NewAggregator(usecase.AggregatorConfig{}, nil, nil, scoring.MustNewEngine(), logging.NewNop())
	fighterA := confidence.Competitor{Name: "Fighter A", Stats: confidence.StatBundle{
		"power_idx": 95, "speed_idx": 88, "stamina_idx": 75, "defense_idx": 82,
		"win_streak": 29, "reach_cm": 170, "age": 29, "ko_pct": 93.1,
	}}
	fighterB := confidence.Competitor{Name: "Fighter B", Stats: confidence.StatBundle{
		"power_idx": 72, "speed_idx": 92, "stamina_idx": 90, "defense_idx": 88,
		"win_streak": 31, "reach_cm": 178, "age": 25, "ko_pct": 48.4,
	}}

	matchup, err := agg.ComputeDCI(context.Background(), "boxing", fighterA, fighterB, confidence.MatchupContext{})
	require.NoError(t, err)
	require.Greater(t, matchup.One.Score, 50.0)
	require.InDelta(t, 100, matchup.One.Score+matchup.Two.Score, 0.01)
	reasoning := strings.ToLower(matchup.One.Reasoning)
	require.True(t, strings.Contains(reasoning, "power") || strings.Contains(reasoning, "ko rate"), reasoning)
}

func TestAggregator_SyncAllIsolatesFailures(t *testing.T) {
	t.Parallel()

	live := usecasemock.NewEventSource(t)
	live.On("Events", mock.Anything, forSport(sport.NBA)).Run(func(mock.Arguments) {
		panic("provider exploded")
	}).Once()
	live.On("Events", mock.Anything, forSport(sport.NFL)).Return(liveEvents(sport.NFL), nil).Once()

	agg := usecase.NewAggregator(usecase.AggregatorConfig{
		SyncWorkers: 3,
		Routes: routes(
			usecase.ProviderRoute{Sport: sport.NBA, Provider: "thesportsdb"},
			usecase.ProviderRoute{Sport: sport.NFL, Provider: "thesportsdb"},
		),
	}, nil, live, nil, logging.NewNop(), usecase.WithClock(fixedClock))

	report, err := agg.SyncAll(context.Background())
	require.NoError(t, err)

	total := len(sport.All()) + 1
	require.Len(t, report.Results, total)
	require.Equal(t, 3, report.WorkerCount)
	require.Equal(t, 1, report.FailedCount)
	require.Equal(t, total-1, report.SuccessCount)
	require.True(t, report.SyncedAt.Equal(fixedNow))

	for _, row := range report.Results {
		switch {
		case row.Sport == "nba":
			require.Equal(t, event.SyncStatusFailed, row.Status)
			require.Contains(t, row.Message, "panic")
		case row.Sport == "nfl":
			require.Equal(t, event.SyncStatusSuccess, row.Status)
			require.False(t, row.Mock)
			require.Equal(t, []string{"thesportsdb"}, row.Sources)
		default:
			require.Equal(t, event.SyncStatusSuccess, row.Status, row.Sport)
			require.True(t, row.Mock, row.Sport)
		}
	}
}

func TestAggregator_Catalog(t *testing.T) {
	t.Parallel()

	agg := usecase.NewAggregator(usecase.AggregatorConfig{
		Routes: routes(
			usecase.ProviderRoute{Sport: sport.NBA, Provider: "thesportsdb"},
			usecase.ProviderRoute{Sport: sport.NBA, Provider: "sportsdataio"},
		),
	}, nil, nil, nil, logging.NewNop())

	catalog := agg.Catalog()
	require.Len(t, catalog, len(sport.All()))
	for _, info := range catalog {
		require.NotEmpty(t, info.Factors, info.Sport)
		if info.Sport == "nba" {
			require.Equal(t, []string{"thesportsdb", "sportsdataio"}, info.Providers)
			require.False(t, info.Mock)
		}
	}
}
