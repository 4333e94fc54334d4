package sportmonks

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/sports-intel/external/provider"
	"github.com/riskibarqy/sports-intel/internal/platform/logging"
	"github.com/riskibarqy/sports-intel/internal/platform/resilience"
	"github.com/riskibarqy/sports-intel/internal/usecase"
)

const (
	Name               = "sportmonks"
	defaultBaseURL     = "https://api.sportmonks.com/v3/football"
	defaultInclude     = "participants;venue"
	defaultWindowDays  = 14
	defaultMaxPages    = 5
	fixturesPerPage    = 50
	fixtureDateLayout  = "2006-01-02"
	leagueFilterPrefix = "fixtureLeagues:"
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	WindowDays     int
	MaxPages       int
	Tuning         provider.Tuning
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Now            func() time.Time
}

// Client lists football fixtures between today and the end of the window. The token is sent
// as the api_token query parameter.
type Client struct {
	http       *provider.Client
	logger     *logging.Logger
	windowDays int
	maxPages   int
	now        func() time.Time
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	windowDays := cfg.WindowDays
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		http: provider.New(provider.Config{
			Name:           Name,
			BaseURL:        baseURL,
			Auth:           provider.AuthQuery,
			AuthParam:      "api_token",
			APIKey:         cfg.Token,
			Tuning:         cfg.Tuning,
			HTTPClient:     cfg.HTTPClient,
			Logger:         logger,
			CircuitBreaker: cfg.CircuitBreaker,
		}),
		logger:     logger,
		windowDays: windowDays,
		maxPages:   maxPages,
		now:        now,
	}
}

func (c *Client) Name() string {
	return Name
}

// FetchUpcoming pages through /fixtures/between. A numeric route resource restricts the
// result to that league.
func (c *Client) FetchUpcoming(ctx context.Context, route usecase.ProviderRoute) ([]usecase.ExternalEvent, error) {
	start := c.now().UTC()
	end := start.AddDate(0, 0, c.windowDays)
	endpoint := fmt.Sprintf("/fixtures/between/%s/%s", start.Format(fixtureDateLayout), end.Format(fixtureDateLayout))

	params := url.Values{
		"include":  {defaultInclude},
		"per_page": {strconv.Itoa(fixturesPerPage)},
	}
	if leagueID := strings.TrimSpace(route.Resource); leagueID != "" {
		params.Set("filters", leagueFilterPrefix+leagueID)
	}

	out := make([]usecase.ExternalEvent, 0, fixturesPerPage)
	for page := 1; page <= c.maxPages; page++ {
		params.Set("page", strconv.Itoa(page))

		resp, raws, err := c.fetchPage(ctx, endpoint, params)
		if err != nil {
			return nil, err
		}
		for i, fx := range resp.Data {
			var raw provider.Record
			if i < len(raws) {
				raw = raws[i]
			}
			if item, ok := mapFixture(fx, raw); ok {
				out = append(out, item)
			}
		}
		if !resp.Pagination.HasMore {
			return out, nil
		}
	}

	c.logger.WarnContext(ctx, "sportmonks fixture listing truncated", "pages", c.maxPages, "league", route.Resource)
	return out, nil
}

func (c *Client) fetchPage(ctx context.Context, endpoint string, params url.Values) (fixturesResponse, []provider.Record, error) {
	body, err := c.http.Fetch(ctx, endpoint, params)
	if err != nil {
		return fixturesResponse{}, nil, err
	}

	var resp fixturesResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return fixturesResponse{}, nil, &provider.Failure{
			Kind:     provider.KindMalformedResponse,
			Provider: Name,
			Endpoint: endpoint,
			Detail:   "decode fixtures: " + err.Error(),
		}
	}
	raws, err := provider.DecodeRecords(body, "data")
	if err != nil {
		raws = nil
	}
	return resp, raws, nil
}

func mapFixture(fx fixture, raw provider.Record) (usecase.ExternalEvent, bool) {
	home, away, ok := fx.sides()
	if !ok {
		return usecase.ExternalEvent{}, false
	}
	start, _ := provider.ParseTime(fx.StartingAt)

	item := usecase.ExternalEvent{
		ExternalID: fx.ID.String(),
		HomeName:   strings.TrimSpace(home.Name),
		HomeID:     home.ID.String(),
		AwayName:   strings.TrimSpace(away.Name),
		AwayID:     away.ID.String(),
		StartTime:  start,
	}
	if fx.League.Set {
		item.League = strings.TrimSpace(fx.League.Data.Name)
	}
	if fx.Venue.Set {
		item.Venue = strings.TrimSpace(fx.Venue.Data.Name)
		item.Location = strings.TrimSpace(fx.Venue.Data.CityName)
	}
	if raw != nil {
		item.Raw = raw
	}
	return item, true
}
