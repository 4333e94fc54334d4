package event

import (
	"testing"
	"time"
)

func TestMergeKey_IgnoresParticipantOrderAndTimeOfDay(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 19, 30, 0, 0, time.UTC)
	a := MergedEvent{
		SportType:    "nba",
		Participants: [2]Participant{{Name: "Boston Celtics"}, {Name: "Miami Heat"}},
		StartTime:    start,
	}
	b := MergedEvent{
		SportType:    "nba",
		Participants: [2]Participant{{Name: "miami heat "}, {Name: "BOSTON CELTICS"}},
		StartTime:    start.Add(2 * time.Hour),
	}

	if a.MergeKey() != b.MergeKey() {
		t.Fatalf("expected equal merge keys, got %q and %q", a.MergeKey(), b.MergeKey())
	}
}

func TestNewScheduleResult_CollectsSourcesAndMockFlag(t *testing.T) {
	t.Parallel()

	result := NewScheduleResult("nba", []MergedEvent{
		{ID: "1", SourcesUsed: []string{"thesportsdb"}},
		{ID: "2", SourcesUsed: []string{"sportsdataio", "thesportsdb"}},
	}, false)

	if result.Count != 2 {
		t.Fatalf("expected count=2, got=%d", result.Count)
	}
	if len(result.SourcesUsed) != 2 || result.SourcesUsed[0] != "sportsdataio" || result.SourcesUsed[1] != "thesportsdb" {
		t.Fatalf("unexpected sources %v", result.SourcesUsed)
	}
	if result.Mock {
		t.Fatalf("expected live result not to be flagged as mock")
	}

	mock := NewScheduleResult("nba", []MergedEvent{{ID: "m", MockData: true, SourcesUsed: []string{"mock"}}}, true)
	if !mock.Mock || !mock.Cached {
		t.Fatalf("expected mock cached result, got %+v", mock)
	}

	empty := NewScheduleResult("nba", nil, false)
	if empty.Events == nil || empty.Mock {
		t.Fatalf("expected non-nil empty events and mock=false, got %+v", empty)
	}
}
