package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/sports-intel/internal/domain/event"
	"github.com/riskibarqy/sports-intel/internal/domain/sport"
)

// ProviderRoute binds a sport to one provider resource (league id, competition id, search term).
type ProviderRoute struct {
	Sport    sport.Sport
	Provider string
	Resource string
}

// ExternalEvent is a provider event after field-name normalization.
type ExternalEvent struct {
	ExternalID  string
	League      string
	HomeName    string
	HomeID      string
	AwayName    string
	AwayID      string
	StartTime   time.Time
	Venue       string
	Location    string
	WeightClass string
	Premium     bool
	Raw         map[string]any
}

// ScheduleProvider is implemented by every external data adapter.
type ScheduleProvider interface {
	Name() string
	FetchUpcoming(ctx context.Context, route ProviderRoute) ([]ExternalEvent, error)
}

type QueryKind string

const (
	QuerySchedule       QueryKind = "schedule"
	QueryBoxingUpcoming QueryKind = "boxing_upcoming"
)

type EventQuery struct {
	Sport  sport.Sport
	Kind   QueryKind
	Routes []ProviderRoute
}

// EventSource yields merged events for a query. The live source talks to providers; the mock
// source never fails.
type EventSource interface {
	Name() string
	Events(ctx context.Context, query EventQuery) ([]event.MergedEvent, error)
}
