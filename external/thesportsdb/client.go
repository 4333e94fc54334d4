package thesportsdb

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/riskibarqy/sports-intel/external/provider"
	"github.com/riskibarqy/sports-intel/internal/domain/sport"
	"github.com/riskibarqy/sports-intel/internal/platform/logging"
	"github.com/riskibarqy/sports-intel/internal/platform/resilience"
	"github.com/riskibarqy/sports-intel/internal/usecase"
)

const (
	Name           = "thesportsdb"
	defaultBaseURL = "https://www.thesportsdb.com/api/v1/json"
	// FreeKey is the public test key accepted by the free tier.
	FreeKey = "3"

	boxingSearchTerm = "boxing"
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Tuning         provider.Tuning
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Now            func() time.Time
}

// Client reads league schedules and event searches from TheSportsDB. The key travels as a
// path segment: {base}/{key}/eventsnextleague.php.
type Client struct {
	http *provider.Client
	now  func() time.Time
}

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		key = FreeKey
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		http: provider.New(provider.Config{
			Name:           Name,
			BaseURL:        baseURL,
			Auth:           provider.AuthPath,
			APIKey:         key,
			Tuning:         cfg.Tuning,
			HTTPClient:     cfg.HTTPClient,
			Logger:         cfg.Logger,
			CircuitBreaker: cfg.CircuitBreaker,
		}),
		now: now,
	}
}

func (c *Client) Name() string {
	return Name
}

// FetchUpcoming lists the next events of a league. A boxing route (or a route whose resource
// is not a league id) runs an event search instead, keeping only fights dated after today.
func (c *Client) FetchUpcoming(ctx context.Context, route usecase.ProviderRoute) ([]usecase.ExternalEvent, error) {
	resource := strings.TrimSpace(route.Resource)
	if route.Sport == sport.Boxing || resource == "" || !isLeagueID(resource) {
		term := resource
		if term == "" {
			term = boxingSearchTerm
		}
		return c.searchUpcoming(ctx, term)
	}

	records, err := c.http.FetchRecords(ctx, "eventsnextleague.php", url.Values{"id": {resource}}, "events")
	if err != nil {
		return nil, err
	}

	out := make([]usecase.ExternalEvent, 0, len(records))
	for _, r := range records {
		if item, ok := mapEvent(r); ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (c *Client) searchUpcoming(ctx context.Context, term string) ([]usecase.ExternalEvent, error) {
	records, err := c.http.FetchRecords(ctx, "searchevents.php", url.Values{"e": {term}}, "event")
	if err != nil {
		return nil, err
	}

	now := c.now().UTC()
	out := make([]usecase.ExternalEvent, 0, len(records))
	for _, r := range records {
		day, ok := provider.ParseTime(r.String("dateEvent"))
		if !ok || !day.After(now) {
			continue
		}
		if item, ok := mapEvent(r); ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func mapEvent(r provider.Record) (usecase.ExternalEvent, bool) {
	home := r.String("strHomeTeam")
	away := r.String("strAwayTeam")
	if home == "" || away == "" {
		// fight cards often only carry "A vs B" in strEvent
		home, away = splitEventName(r.String("strEvent"))
	}
	if home == "" && away == "" {
		return usecase.ExternalEvent{}, false
	}

	return usecase.ExternalEvent{
		ExternalID: r.String("idEvent"),
		League:     r.String("strLeague"),
		HomeName:   home,
		HomeID:     r.String("idHomeTeam"),
		AwayName:   away,
		AwayID:     r.String("idAwayTeam"),
		StartTime:  startTime(r),
		Venue:      r.String("strVenue"),
		Location:   joinLocation(r.String("strCity"), r.String("strCountry")),
		Raw:        r,
	}, true
}

func startTime(r provider.Record) time.Time {
	if t, ok := r.Time("strTimestamp"); ok {
		return t
	}
	date := r.String("dateEvent")
	if clock := strings.TrimSpace(r.String("strTime")); clock != "" && date != "" {
		clock = strings.TrimSuffix(strings.TrimSuffix(clock, "+00:00"), "Z")
		if t, ok := provider.ParseTime(date + "T" + clock); ok {
			return t
		}
	}
	t, _ := provider.ParseTime(date)
	return t
}

func splitEventName(name string) (string, string) {
	lower := strings.ToLower(name)
	for _, sep := range []string{" vs. ", " vs ", " v "} {
		if idx := strings.Index(lower, sep); idx > 0 {
			return strings.TrimSpace(name[:idx]), strings.TrimSpace(name[idx+len(sep):])
		}
	}
	return "", ""
}

func joinLocation(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

func isLeagueID(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return value != ""
}
