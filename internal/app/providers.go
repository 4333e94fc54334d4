package app

import (
	"time"

	"github.com/riskibarqy/sports-intel/external/provider"
	"github.com/riskibarqy/sports-intel/external/sportmonks"
	"github.com/riskibarqy/sports-intel/external/sportradar"
	"github.com/riskibarqy/sports-intel/external/sportsdataio"
	"github.com/riskibarqy/sports-intel/external/thesportsdb"
	"github.com/riskibarqy/sports-intel/internal/config"
	"github.com/riskibarqy/sports-intel/internal/domain/sport"
	"github.com/riskibarqy/sports-intel/internal/platform/logging"
	"github.com/riskibarqy/sports-intel/internal/platform/resilience"
	"github.com/riskibarqy/sports-intel/internal/usecase"
)

func providerTuning(cfg config.Config, p config.Provider) provider.Tuning {
	tuning := provider.DefaultTuning()
	if p.Timeout > 0 {
		tuning.Timeout = p.Timeout
	}
	tuning.RateLimitDelay = cfg.ProviderRateLimitDelay
	if cfg.ProviderMaxConcurrent > 0 {
		tuning.MaxConcurrent = cfg.ProviderMaxConcurrent
	}
	tuning.MaxRetries = cfg.ProviderMaxRetries
	if cfg.ProviderBaseBackoff > 0 {
		tuning.BaseBackoff = cfg.ProviderBaseBackoff
	}
	tuning.MaxJitter = cfg.ProviderMaxJitter
	return tuning
}

func circuitBreakerConfig(cfg config.Config) resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		Enabled:          cfg.ProviderCircuitEnabled,
		FailureThreshold: cfg.ProviderCircuitFailureCount,
		OpenTimeout:      cfg.ProviderCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.ProviderCircuitHalfOpenMax,
	}
}

// buildProviders instantiates one adapter per enabled provider. Mock mode builds none.
func buildProviders(cfg config.Config, logger *logging.Logger, now func() time.Time) []usecase.ScheduleProvider {
	if cfg.MockMode {
		return nil
	}

	breaker := circuitBreakerConfig(cfg)

	out := make([]usecase.ScheduleProvider, 0, 4)
	if p := cfg.TheSportsDB; p.Enabled {
		out = append(out, thesportsdb.NewClient(thesportsdb.ClientConfig{
			BaseURL:        p.BaseURL,
			APIKey:         p.APIKey,
			Tuning:         providerTuning(cfg, p),
			Logger:         logger,
			CircuitBreaker: breaker,
			Now:            now,
		}))
	}
	if p := cfg.SportsDataIO; p.Enabled {
		out = append(out, sportsdataio.NewClient(sportsdataio.ClientConfig{
			BaseURL:        p.BaseURL,
			APIKey:         p.APIKey,
			WindowDays:     p.WindowDays,
			Tuning:         providerTuning(cfg, p),
			Logger:         logger,
			CircuitBreaker: breaker,
			Now:            now,
		}))
	}
	if p := cfg.SportMonks; p.Enabled {
		out = append(out, sportmonks.NewClient(sportmonks.ClientConfig{
			BaseURL:        p.BaseURL,
			Token:          p.APIKey,
			WindowDays:     p.WindowDays,
			Tuning:         providerTuning(cfg, p),
			Logger:         logger,
			CircuitBreaker: breaker,
			Now:            now,
		}))
	}
	if p := cfg.Sportradar; p.Enabled {
		out = append(out, sportradar.NewClient(sportradar.ClientConfig{
			BaseURL:        p.BaseURL,
			APIKey:         p.APIKey,
			Tuning:         providerTuning(cfg, p),
			Logger:         logger,
			CircuitBreaker: breaker,
			Now:            now,
		}))
	}
	return out
}

// aggregatorRoutes groups active routes per sport, keeping configuration order.
func aggregatorRoutes(routes []config.Route) map[sport.Sport][]usecase.ProviderRoute {
	out := make(map[sport.Sport][]usecase.ProviderRoute, len(routes))
	for _, r := range routes {
		out[r.Sport] = append(out[r.Sport], usecase.ProviderRoute{
			Sport:    r.Sport,
			Provider: r.Provider,
			Resource: r.Resource,
		})
	}
	return out
}
