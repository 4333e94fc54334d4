package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/riskibarqy/sports-intel/internal/domain/event"
	"github.com/riskibarqy/sports-intel/internal/domain/sport"
)

const mockSourceName = "mock"

// MockSource produces a fixed event list anchored to the current hour. It never fails.
type MockSource struct {
	now func() time.Time
}

func NewMockSource(now func() time.Time) *MockSource {
	if now == nil {
		now = time.Now
	}
	return &MockSource{now: now}
}

func (s *MockSource) Name() string {
	return mockSourceName
}

func (s *MockSource) Events(_ context.Context, query EventQuery) ([]event.MergedEvent, error) {
	anchor := s.now().UTC().Truncate(time.Hour)
	if query.Kind == QueryBoxingUpcoming || query.Sport == sport.Boxing {
		return mockFightCard(anchor), nil
	}
	return mockSchedule(query.Sport, anchor), nil
}

func mockSchedule(s sport.Sport, anchor time.Time) []event.MergedEvent {
	league := s.DisplayName() + " League"
	fixtures := []struct {
		home, away, venue string
		days              int
	}{
		{home: "Team A", away: "Team B", venue: "Stadium A", days: 1},
		{home: "Team C", away: "Team D", venue: "Stadium B", days: 2},
	}

	out := make([]event.MergedEvent, 0, len(fixtures))
	for i, f := range fixtures {
		out = append(out, mockEvent(
			"mock-"+string(s)+"-"+strconv.Itoa(i+1), s, league,
			f.home, f.away, anchor.AddDate(0, 0, f.days), f.venue, "", "",
		))
	}
	return out
}

func mockFightCard(anchor time.Time) []event.MergedEvent {
	return []event.MergedEvent{
		mockEvent("mock-boxing-1", sport.Boxing, "Professional Boxing",
			"Gervonta Davis", "Devin Haney", anchor.AddDate(0, 0, 30),
			"MGM Grand", "Las Vegas", "Lightweight"),
		mockEvent("mock-boxing-2", sport.Boxing, "Professional Boxing",
			"Canelo Alvarez", "Dmitry Bivol", anchor.AddDate(0, 0, 45),
			"T-Mobile Arena", "Las Vegas", "Super Middleweight"),
	}
}

func mockEvent(id string, s sport.Sport, league, one, two string, start time.Time, venue, location, weightClass string) event.MergedEvent {
	return event.MergedEvent{
		ID:        id,
		SportType: string(s),
		League:    league,
		Participants: [2]event.Participant{
			{Name: one, Side: event.SideHome},
			{Name: two, Side: event.SideAway},
		},
		StartTime:   start,
		Venue:       venue,
		Location:    location,
		WeightClass: weightClass,
		SourcesUsed: []string{mockSourceName},
		MockData:    true,
	}
}
