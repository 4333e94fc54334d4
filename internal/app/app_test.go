package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/riskibarqy/sports-intel/internal/config"
	"github.com/riskibarqy/sports-intel/internal/domain/sport"
	"github.com/riskibarqy/sports-intel/internal/platform/logging"
)

func testConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		HTTPAddr:           ":0",
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		CORSAllowedOrigins: []string{"*"},
		CacheBackend:       config.CacheBackendMemory,
		CacheScheduleTTL:   time.Hour,
		CacheBoxingTTL:     time.Hour,
		CacheRetention:     24 * time.Hour,
		MockMode:           true,
		EnrichEvents:       true,
		SyncWorkers:        2,
		SyncInterval:       time.Hour,
		Routes:             config.DefaultRoutes(false, false),
	}
}

type fakePurger struct {
	cutoffs []time.Time
}

func (f *fakePurger) PurgeExpired(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoffs = append(f.cutoffs, cutoff)
	return 3, nil
}

func TestNew_MockModeServesHealthz(t *testing.T) {
	t.Parallel()

	a, err := New(context.Background(), testConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer a.Shutdown(context.Background())

	rec := httptest.NewRecorder()
	a.Server().Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected healthz status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.HTTPAddr = ""
	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}

func TestSyncOnce_PurgesWithRetentionCutoff(t *testing.T) {
	t.Parallel()

	a, err := New(context.Background(), testConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer a.Shutdown(context.Background())

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	purger := &fakePurger{}
	a.purger = purger
	a.now = func() time.Time { return now }

	a.syncOnce(context.Background())

	if len(purger.cutoffs) != 1 {
		t.Fatalf("expected one purge, got=%d", len(purger.cutoffs))
	}
	if want := now.Add(-24 * time.Hour); !purger.cutoffs[0].Equal(want) {
		t.Fatalf("unexpected cutoff %s want %s", purger.cutoffs[0], want)
	}
}

func TestRunSync_DisabledReturnsImmediately(t *testing.T) {
	t.Parallel()

	a, err := New(context.Background(), testConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer a.Shutdown(context.Background())

	done := make(chan struct{})
	go func() {
		a.RunSync(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("expected RunSync to return when sync is disabled")
	}
}

func TestOpenCacheBackend_Redis(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.CacheBackend = config.CacheBackendRedis
	cfg.RedisURL = "redis://" + mr.Addr() + "/0"

	backend, err := openCacheBackend(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("open redis backend: %v", err)
	}
	defer backend.close()

	if backend.purger != nil {
		t.Fatalf("redis expires keys itself, expected no purger")
	}
	if err := backend.store.Put(context.Background(), "schedule:nba", []byte(`{}`), time.Minute); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, ok, err := backend.store.Get(context.Background(), "schedule:nba"); err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
}

func TestOpenCacheBackend_Unsupported(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.CacheBackend = "memcached"
	if _, err := openCacheBackend(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for unsupported backend")
	}
}

func TestAggregatorRoutes_GroupsBySportInOrder(t *testing.T) {
	t.Parallel()

	routes := aggregatorRoutes([]config.Route{
		{Sport: sport.NBA, Provider: config.ProviderTheSportsDB, Resource: "4387"},
		{Sport: sport.Boxing, Provider: config.ProviderTheSportsDB, Resource: "boxing"},
		{Sport: sport.NBA, Provider: config.ProviderSportsDataIO, Resource: "nba"},
	})

	nba := routes[sport.NBA]
	if len(nba) != 2 || nba[0].Provider != config.ProviderTheSportsDB || nba[1].Provider != config.ProviderSportsDataIO {
		t.Fatalf("unexpected nba routes %+v", nba)
	}
	if len(routes[sport.Boxing]) != 1 {
		t.Fatalf("unexpected boxing routes %+v", routes[sport.Boxing])
	}
}

func TestBuildProviders(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.TheSportsDB = config.Provider{Enabled: true, APIKey: "3"}
	cfg.SportMonks = config.Provider{Enabled: true, APIKey: "token", WindowDays: 14}

	if got := buildProviders(cfg, logging.NewNop(), time.Now); len(got) != 0 {
		t.Fatalf("expected no providers in mock mode, got=%d", len(got))
	}

	cfg.MockMode = false
	got := buildProviders(cfg, logging.NewNop(), time.Now)
	if len(got) != 2 || got[0].Name() != config.ProviderTheSportsDB || got[1].Name() != config.ProviderSportMonks {
		t.Fatalf("unexpected providers %d", len(got))
	}
}

func TestProviderTuning_PerProviderTimeout(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.ProviderMaxConcurrent = 7
	cfg.ProviderMaxRetries = 2
	cfg.ProviderRateLimitDelay = 250 * time.Millisecond

	tuning := providerTuning(cfg, config.Provider{Timeout: 5 * time.Second})
	if tuning.Timeout != 5*time.Second || tuning.MaxConcurrent != 7 || tuning.MaxRetries != 2 {
		t.Fatalf("unexpected tuning %+v", tuning)
	}
	if tuning.RateLimitDelay != 250*time.Millisecond {
		t.Fatalf("unexpected rate limit delay %s", tuning.RateLimitDelay)
	}
}
