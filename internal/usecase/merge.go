package usecase

import (
	"sort"
	"strings"

	"github.com/riskibarqy/sports-intel/internal/domain/event"
)

// eventMerger folds provider events describing the same contest into one MergedEvent.
// Earlier routes win for descriptive fields.
type eventMerger struct {
	sportID string
	order   []string
	byKey   map[string]*event.MergedEvent
}

func newEventMerger(sportID string) *eventMerger {
	return &eventMerger{sportID: sportID, byKey: make(map[string]*event.MergedEvent)}
}

func (m *eventMerger) add(providerName string, item ExternalEvent) {
	home := strings.TrimSpace(item.HomeName)
	away := strings.TrimSpace(item.AwayName)
	if home == "" && away == "" {
		return
	}

	candidate := event.MergedEvent{
		ID:        eventID(providerName, item),
		SportType: m.sportID,
		League:    strings.TrimSpace(item.League),
		Participants: [2]event.Participant{
			{Name: home, ExternalID: item.HomeID, Side: event.SideHome},
			{Name: away, ExternalID: item.AwayID, Side: event.SideAway},
		},
		StartTime:            item.StartTime.UTC(),
		Venue:                strings.TrimSpace(item.Venue),
		Location:             strings.TrimSpace(item.Location),
		WeightClass:          strings.TrimSpace(item.WeightClass),
		SourcesUsed:          []string{providerName},
		PremiumDataAvailable: item.Premium,
	}
	if len(item.Raw) > 0 {
		candidate.RawPayload = map[string]any{providerName: item.Raw}
	}

	key := candidate.MergeKey()
	existing, ok := m.byKey[key]
	if !ok {
		m.byKey[key] = &candidate
		m.order = append(m.order, key)
		return
	}

	existing.League = firstNonEmpty(existing.League, candidate.League)
	existing.Venue = firstNonEmpty(existing.Venue, candidate.Venue)
	existing.Location = firstNonEmpty(existing.Location, candidate.Location)
	existing.WeightClass = firstNonEmpty(existing.WeightClass, candidate.WeightClass)
	existing.PremiumDataAvailable = existing.PremiumDataAvailable || candidate.PremiumDataAvailable
	for i := range existing.Participants {
		if existing.Participants[i].ExternalID == "" {
			existing.Participants[i].ExternalID = matchingParticipantID(existing.Participants[i].Name, candidate.Participants)
		}
	}
	if !containsString(existing.SourcesUsed, providerName) {
		existing.SourcesUsed = append(existing.SourcesUsed, providerName)
	}
	if candidate.RawPayload != nil {
		if existing.RawPayload == nil {
			existing.RawPayload = make(map[string]any, 2)
		}
		if _, taken := existing.RawPayload[providerName]; !taken {
			existing.RawPayload[providerName] = item.Raw
		}
	}
}

func (m *eventMerger) events() []event.MergedEvent {
	out := make([]event.MergedEvent, 0, len(m.order))
	for _, key := range m.order {
		out = append(out, *m.byKey[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

func eventID(providerName string, item ExternalEvent) string {
	if id := strings.TrimSpace(item.ExternalID); id != "" {
		return providerName + "-" + id
	}
	name := strings.ToLower(item.HomeName + "-" + item.AwayName)
	name = strings.Join(strings.Fields(name), "-")
	return providerName + "-" + name + "-" + item.StartTime.UTC().Format("20060102")
}

func matchingParticipantID(name string, candidates [2]event.Participant) string {
	for _, c := range candidates {
		if strings.EqualFold(c.Name, name) {
			return c.ExternalID
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, item := range values {
		if strings.TrimSpace(item) != "" {
			return strings.TrimSpace(item)
		}
	}
	return ""
}

func containsString(items []string, value string) bool {
	for _, item := range items {
		if item == value {
			return true
		}
	}
	return false
}
