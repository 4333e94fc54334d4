package event

import (
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/sports-intel/internal/domain/confidence"
)

const (
	SideHome = "home"
	SideAway = "away"
)

// Participant is one competitor (team, fighter, player or rider) in an event.
type Participant struct {
	Name       string `json:"name"`
	ExternalID string `json:"external_id,omitempty"`
	Side       string `json:"side,omitempty"`
}

// Analysis is the confidence enrichment attached to an event.
type Analysis struct {
	Favorite string             `json:"favorite,omitempty"`
	Matchup  confidence.Matchup `json:"matchup"`
}

// MergedEvent is the sport-agnostic record built from one or more provider payloads.
type MergedEvent struct {
	ID                   string         `json:"id"`
	SportType            string         `json:"sport_type"`
	League               string         `json:"league"`
	Participants         [2]Participant `json:"participants"`
	StartTime            time.Time      `json:"start_time"`
	Venue                string         `json:"venue,omitempty"`
	Location             string         `json:"location,omitempty"`
	WeightClass          string         `json:"weight_class,omitempty"`
	SourcesUsed          []string       `json:"sources_used"`
	PremiumDataAvailable bool           `json:"premium_data_available"`
	MockData             bool           `json:"mock_data"`
	Analysis             *Analysis      `json:"analysis,omitempty"`
	RawPayload           map[string]any `json:"raw_payload,omitempty"`
}

// MergeKey identifies the same real-world contest across providers.
func (e MergedEvent) MergeKey() string {
	names := []string{
		strings.ToLower(strings.TrimSpace(e.Participants[0].Name)),
		strings.ToLower(strings.TrimSpace(e.Participants[1].Name)),
	}
	sort.Strings(names)

	day := ""
	if !e.StartTime.IsZero() {
		day = e.StartTime.UTC().Format(time.DateOnly)
	}
	return e.SportType + "|" + names[0] + "|" + names[1] + "|" + day
}

// ScheduleResult is what schedule fetches hand back to callers.
type ScheduleResult struct {
	Sport       string        `json:"sport"`
	Events      []MergedEvent `json:"events"`
	Count       int           `json:"count"`
	Cached      bool          `json:"cached"`
	Mock        bool          `json:"mock"`
	SourcesUsed []string      `json:"sources_used"`
}

func NewScheduleResult(sportID string, events []MergedEvent, cached bool) ScheduleResult {
	if events == nil {
		events = []MergedEvent{}
	}

	mock := len(events) > 0
	seen := make(map[string]struct{}, 4)
	sources := make([]string, 0, 4)
	for _, item := range events {
		if !item.MockData {
			mock = false
		}
		for _, source := range item.SourcesUsed {
			if _, ok := seen[source]; ok {
				continue
			}
			seen[source] = struct{}{}
			sources = append(sources, source)
		}
	}
	sort.Strings(sources)

	return ScheduleResult{
		Sport:       sportID,
		Events:      events,
		Count:       len(events),
		Cached:      cached,
		Mock:        mock,
		SourcesUsed: sources,
	}
}
