package sportsdataio

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/sports-intel/external/provider"
	"github.com/riskibarqy/sports-intel/internal/platform/logging"
	"github.com/riskibarqy/sports-intel/internal/platform/resilience"
	"github.com/riskibarqy/sports-intel/internal/usecase"
)

const (
	Name              = "sportsdataio"
	defaultBaseURL    = "https://api.sportsdata.io"
	defaultWindowDays = 7
	subscriptionKey   = "Ocp-Apim-Subscription-Key"
)

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	// WindowDays is how many days starting today are requested per sport.
	WindowDays     int
	Tuning         provider.Tuning
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Now            func() time.Time
}

// Client reads day-by-day game lists from SportsDataIO. Every event it returns is flagged as
// premium data.
type Client struct {
	http       *provider.Client
	windowDays int
	now        func() time.Time
}

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	windowDays := cfg.WindowDays
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		http: provider.New(provider.Config{
			Name:           Name,
			BaseURL:        baseURL,
			Auth:           provider.AuthHeader,
			AuthParam:      subscriptionKey,
			APIKey:         cfg.APIKey,
			Tuning:         cfg.Tuning,
			HTTPClient:     cfg.HTTPClient,
			Logger:         cfg.Logger,
			CircuitBreaker: cfg.CircuitBreaker,
		}),
		windowDays: windowDays,
		now:        now,
	}
}

func (c *Client) Name() string {
	return Name
}

// FetchUpcoming walks GamesByDate from today across the window. The route resource is the
// sport path segment (nfl, nba, mlb, nhl) and defaults to the sport id.
func (c *Client) FetchUpcoming(ctx context.Context, route usecase.ProviderRoute) ([]usecase.ExternalEvent, error) {
	segment := strings.ToLower(strings.TrimSpace(route.Resource))
	if segment == "" {
		segment = string(route.Sport)
	}

	today := c.now().UTC().Truncate(24 * time.Hour)
	out := make([]usecase.ExternalEvent, 0, c.windowDays*4)
	for day := 0; day < c.windowDays; day++ {
		date := today.AddDate(0, 0, day).Format(time.DateOnly)
		endpoint := fmt.Sprintf("/v3/%s/scores/json/GamesByDate/%s", segment, date)

		records, err := c.http.FetchRecords(ctx, endpoint, nil)
		if err != nil {
			return nil, err
		}
		for _, r := range records {
			if item, ok := mapGame(r); ok {
				out = append(out, item)
			}
		}
	}
	return out, nil
}

func mapGame(r provider.Record) (usecase.ExternalEvent, bool) {
	if r.Bool("IsClosed") {
		return usecase.ExternalEvent{}, false
	}
	home := r.String("HomeTeamName", "HomeTeam")
	away := r.String("AwayTeamName", "AwayTeam")
	if home == "" || away == "" {
		return usecase.ExternalEvent{}, false
	}

	start, _ := r.Time("DateTimeUTC", "DateTime", "Day")
	stadium := r.Record("StadiumDetails")

	item := usecase.ExternalEvent{
		ExternalID: r.String("GameID", "GameId", "GlobalGameID"),
		HomeName:   home,
		HomeID:     r.String("HomeTeamID", "GlobalHomeTeamID"),
		AwayName:   away,
		AwayID:     r.String("AwayTeamID", "GlobalAwayTeamID"),
		StartTime:  start,
		Premium:    true,
		Raw:        r,
	}
	if stadium != nil {
		item.Venue = stadium.String("Name")
		item.Location = joinLocation(stadium.String("City"), stadium.String("State"))
	}
	return item, true
}

func joinLocation(city, state string) string {
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	default:
		return state
	}
}
