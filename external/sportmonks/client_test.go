package sportmonks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/sports-intel/external/provider"
	"github.com/riskibarqy/sports-intel/internal/domain/sport"
	"github.com/riskibarqy/sports-intel/internal/platform/logging"
	"github.com/riskibarqy/sports-intel/internal/usecase"
)

const pageOne = `{
  "data": [
    {
      "id": 19134454,
      "league_id": 8,
      "name": "Chelsea vs Arsenal",
      "starting_at": "2026-05-02 16:30:00",
      "participants": [
        {"id": 19, "name": "Arsenal", "meta": {"location": "away"}},
        {"id": 18, "name": "Chelsea", "meta": {"location": "home"}}
      ],
      "venue": {"id": 321, "name": "Stamford Bridge", "city_name": "London"}
    },
    {
      "id": 19134455,
      "starting_at": "2026-05-02 19:00:00",
      "participants": {"data": [{"id": 1, "name": "Only One"}]}
    }
  ],
  "pagination": {"count": 2, "per_page": 50, "current_page": 1, "has_more": true}
}`

const pageTwo = `{
  "data": [
    {
      "id": "19134460",
      "starting_at": "2026-05-03T14:00:00Z",
      "participants": {"data": [
        {"id": 14, "name": "Manchester United", "meta": {"location": "home"}},
        {"id": 8, "name": "Liverpool", "meta": {"location": "away"}}
      ]},
      "venue": {"data": {"name": "Old Trafford", "city_name": "Manchester"}}
    }
  ],
  "pagination": {"count": 1, "per_page": 50, "current_page": 2, "has_more": false}
}`

func TestFetchUpcoming_PagesThroughFixtures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		query := r.URL.Query()
		if r.URL.Path != "/fixtures/between/2026-05-01/2026-05-15" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if query.Get("api_token") != "monks-token" {
			t.Errorf("missing api_token")
		}
		if query.Get("include") != "participants;venue" {
			t.Errorf("unexpected include %q", query.Get("include"))
		}
		if query.Get("filters") != "fixtureLeagues:8" {
			t.Errorf("unexpected filters %q", query.Get("filters"))
		}

		if query.Get("page") == "2" {
			_, _ = w.Write([]byte(pageTwo))
			return
		}
		_, _ = w.Write([]byte(pageOne))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{
		BaseURL:    srv.URL,
		Token:      "monks-token",
		HTTPClient: srv.Client(),
		Tuning:     provider.Tuning{Timeout: 2 * time.Second},
		Logger:     logging.NewNop(),
		Now: func() time.Time {
			return time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
		},
	})

	events, err := client.FetchUpcoming(context.Background(), usecase.ProviderRoute{Sport: sport.PremierLeague, Provider: Name, Resource: "8"})
	if err != nil {
		t.Fatalf("fetch upcoming: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 page requests, got=%d", calls.Load())
	}
	if len(events) != 2 {
		t.Fatalf("expected fixtures without two sides to be skipped, got=%d", len(events))
	}

	first := events[0]
	if first.HomeName != "Chelsea" || first.HomeID != "18" || first.AwayName != "Arsenal" {
		t.Fatalf("expected meta.location to decide sides, got %+v", first)
	}
	if first.ExternalID != "19134454" {
		t.Fatalf("unexpected id %q", first.ExternalID)
	}
	if first.Venue != "Stamford Bridge" || first.Location != "London" {
		t.Fatalf("unexpected venue %q/%q", first.Venue, first.Location)
	}
	if !first.StartTime.Equal(time.Date(2026, 5, 2, 16, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %s", first.StartTime)
	}
	if first.Raw["name"] != "Chelsea vs Arsenal" {
		t.Fatalf("expected raw fixture payload")
	}

	second := events[1]
	if second.ExternalID != "19134460" || second.Venue != "Old Trafford" || second.AwayName != "Liverpool" {
		t.Fatalf("unexpected wrapped relation decode %+v", second)
	}
}

func TestFetchUpcoming_MalformedPayload(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data": "nope"`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{
		BaseURL:    srv.URL,
		Token:      "monks-token",
		HTTPClient: srv.Client(),
		Tuning:     provider.Tuning{Timeout: time.Second},
		Logger:     logging.NewNop(),
	})

	_, err := client.FetchUpcoming(context.Background(), usecase.ProviderRoute{Sport: sport.PremierLeague})
	if provider.KindOf(err) != provider.KindMalformedResponse {
		t.Fatalf("expected malformed response, got %v", err)
	}
}

func TestFixtureSides_FallsBackToListOrder(t *testing.T) {
	t.Parallel()

	fx := fixture{Participants: relation[[]participant]{Set: true, Data: []participant{
		{ID: "1", Name: "Team One"},
		{ID: "2", Name: "Team Two"},
	}}}
	home, away, ok := fx.sides()
	if !ok || home.Name != "Team One" || away.Name != "Team Two" {
		t.Fatalf("unexpected sides %+v %+v ok=%v", home, away, ok)
	}
}
