package sportradar

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/sports-intel/external/provider"
	"github.com/riskibarqy/sports-intel/internal/domain/sport"
	"github.com/riskibarqy/sports-intel/internal/platform/logging"
	"github.com/riskibarqy/sports-intel/internal/platform/resilience"
	"github.com/riskibarqy/sports-intel/internal/usecase"
)

const (
	Name           = "sportradar"
	defaultBaseURL = "https://api.sportradar.com"

	placeholderDate     = "{date}"
	placeholderResource = "{resource}"
)

// DefaultTemplates maps sports to endpoint templates under the base URL. A route resource that
// starts with "/" is used as the template itself.
var DefaultTemplates = map[sport.Sport]string{
	sport.Tennis:  "/tennis/trial/v3/en/schedules/{date}/summaries.json",
	sport.MMA:     "/mma/trial/v2/en/competitions/{resource}/schedules.json",
	sport.MotoGP:  "/motogp/trial/v2/en/sport_events/{resource}/stages.json",
	sport.Cycling: "/cycling/trial/v2/en/sport_events/{resource}/schedule.json",
	sport.Cricket: "/cricket-t2/en/schedules/{date}/summaries.json",
	sport.Rugby:   "/rugby-union/trial/v3/en/schedules/{date}/summaries.json",
}

var envelopeKeys = []string{"summaries", "schedules", "sport_events", "stages"}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Templates      map[sport.Sport]string
	Tuning         provider.Tuning
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Now            func() time.Time
}

type Client struct {
	http      *provider.Client
	templates map[sport.Sport]string
	now       func() time.Time
}

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	templates := make(map[sport.Sport]string, len(DefaultTemplates)+len(cfg.Templates))
	for s, tpl := range DefaultTemplates {
		templates[s] = tpl
	}
	for s, tpl := range cfg.Templates {
		if strings.TrimSpace(tpl) != "" {
			templates[s] = strings.TrimSpace(tpl)
		}
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
			AuthParam:      "api_key",
			APIKey:         cfg.APIKey,
			Tuning:         cfg.Tuning,
			HTTPClient:     cfg.HTTPClient,
			Logger:         cfg.Logger,
			CircuitBreaker: cfg.CircuitBreaker,
		}),
		templates: templates,
		now:       now,
	}
}

func (c *Client) Name() string {
	return Name
}

func (c *Client) FetchUpcoming(ctx context.Context, route usecase.ProviderRoute) ([]usecase.ExternalEvent, error) {
	endpoint, err := c.endpoint(route)
	if err != nil {
		return nil, err
	}

	records, err := c.http.FetchRecords(ctx, endpoint, nil, envelopeKeys...)
	if err != nil {
		return nil, err
	}

	out := make([]usecase.ExternalEvent, 0, len(records))
	for _, r := range records {
		if item, ok := mapSportEvent(r); ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (c *Client) endpoint(route usecase.ProviderRoute) (string, error) {
	resource := strings.TrimSpace(route.Resource)
	tpl := c.templates[route.Sport]
	if strings.HasPrefix(resource, "/") {
		tpl, resource = resource, ""
	}
	if tpl == "" {
		return "", &provider.Failure{
			Kind:     provider.KindUnknown,
			Provider: Name,
			Detail:   "no endpoint template for sport " + string(route.Sport),
		}
	}
	if strings.Contains(tpl, placeholderResource) && resource == "" {
		return "", &provider.Failure{
			Kind:     provider.KindUnknown,
			Provider: Name,
			Endpoint: tpl,
			Detail:   "route resource required",
		}
	}

	replacer := strings.NewReplacer(
		placeholderDate, c.now().UTC().Format(time.DateOnly),
		placeholderResource, resource,
	)
	return replacer.Replace(tpl), nil
}

// mapSportEvent reads either a summary ({sport_event, sport_event_status}) or a bare sport event.
func mapSportEvent(r provider.Record) (usecase.ExternalEvent, bool) {
	ev := r.Record("sport_event")
	if ev == nil {
		ev = r
	}
	if status := r.Record("sport_event_status"); status != nil {
		switch strings.ToLower(status.String("status")) {
		case "closed", "ended", "cancelled", "abandoned":
			return usecase.ExternalEvent{}, false
		}
	}

	var home, away provider.Record
	competitors := ev.Records("competitors")
	for _, comp := range competitors {
		switch strings.ToLower(comp.String("qualifier")) {
		case "home":
			home = comp
		case "away":
			away = comp
		}
	}
	if (home == nil || away == nil) && len(competitors) == 2 {
		home, away = competitors[0], competitors[1]
	}
	if home == nil || away == nil {
		return usecase.ExternalEvent{}, false
	}

	start, _ := ev.Time("start_time", "scheduled")
	item := usecase.ExternalEvent{
		ExternalID: ev.String("id"),
		League:     competitionName(ev),
		HomeName:   home.String("name"),
		HomeID:     home.String("id"),
		AwayName:   away.String("name"),
		AwayID:     away.String("id"),
		StartTime:  start,
		Premium:    true,
		Raw:        r,
	}
	if venue := ev.Record("venue"); venue != nil {
		item.Venue = venue.String("name")
		item.Location = strings.Trim(venue.String("city_name")+", "+venue.String("country_name"), ", ")
	}
	return item, true
}

func competitionName(ev provider.Record) string {
	if ctx := ev.Record("sport_event_context"); ctx != nil {
		if comp := ctx.Record("competition"); comp != nil {
			return comp.String("name")
		}
	}
	if tournament := ev.Record("tournament"); tournament != nil {
		return tournament.String("name")
	}
	return ""
}
