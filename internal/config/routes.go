package config

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/sports-intel/internal/domain/sport"
)

const (
	ProviderTheSportsDB  = "thesportsdb"
	ProviderSportsDataIO = "sportsdataio"
	ProviderSportMonks   = "sportmonks"
	ProviderSportradar   = "sportradar"
)

// Route binds a sport to one provider. Resource is provider specific: a league id,
// a search term, a path segment or an endpoint template.
type Route struct {
	Sport    sport.Sport
	Provider string
	Resource string
}

func (r Route) String() string {
	if r.Resource == "" {
		return string(r.Sport) + ":" + r.Provider
	}
	return string(r.Sport) + ":" + r.Provider + ":" + r.Resource
}

// DefaultRoutes lists the built-in provider table. Premium providers are routed only when enabled.
func DefaultRoutes(sportsDataIOEnabled, sportMonksEnabled bool) []Route {
	out := []Route{
		{Sport: sport.NFL, Provider: ProviderTheSportsDB, Resource: "4391"},
		{Sport: sport.NBA, Provider: ProviderTheSportsDB, Resource: "4387"},
		{Sport: sport.MLB, Provider: ProviderTheSportsDB, Resource: "4424"},
		{Sport: sport.NHL, Provider: ProviderTheSportsDB, Resource: "4380"},
		{Sport: sport.PremierLeague, Provider: ProviderTheSportsDB, Resource: "4328"},
		{Sport: sport.Formula1, Provider: ProviderTheSportsDB, Resource: "4370"},
		{Sport: sport.NCAAFootball, Provider: ProviderTheSportsDB, Resource: "4479"},
		{Sport: sport.Boxing, Provider: ProviderTheSportsDB, Resource: "boxing"},
	}
	if sportsDataIOEnabled {
		for _, s := range []sport.Sport{sport.NFL, sport.NBA, sport.MLB, sport.NHL} {
			out = append(out, Route{Sport: s, Provider: ProviderSportsDataIO, Resource: string(s)})
		}
	}
	if sportMonksEnabled {
		out = append(out, Route{Sport: sport.PremierLeague, Provider: ProviderSportMonks, Resource: "8"})
	}
	return out
}

// ParseRoutes reads a comma separated list of sport:provider[:resource] entries. The resource
// keeps any further colons, so sportradar ids such as sr:competition:7 survive.
func ParseRoutes(raw string) ([]Route, error) {
	out := make([]Route, 0)
	for _, item := range splitCSV(raw) {
		parts := strings.SplitN(item, ":", 3)
		if len(parts) < 2 {
			return nil, fmt.Errorf("route %q: expected sport:provider[:resource]", item)
		}

		s, ok := sport.Parse(parts[0])
		if !ok {
			return nil, fmt.Errorf("route %q: unknown sport %q", item, parts[0])
		}
		providerName := strings.ToLower(strings.TrimSpace(parts[1]))
		switch providerName {
		case ProviderTheSportsDB, ProviderSportsDataIO, ProviderSportMonks, ProviderSportradar:
		default:
			return nil, fmt.Errorf("route %q: unknown provider %q", item, parts[1])
		}

		route := Route{Sport: s, Provider: providerName}
		if len(parts) == 3 {
			route.Resource = strings.TrimSpace(parts[2])
		}
		out = append(out, route)
	}
	return out, nil
}

// mergeRoutes replaces every default route of a sport that the overrides mention.
func mergeRoutes(defaults, overrides []Route) []Route {
	if len(overrides) == 0 {
		return defaults
	}

	overridden := make(map[sport.Sport]struct{}, len(overrides))
	for _, r := range overrides {
		overridden[r.Sport] = struct{}{}
	}

	out := make([]Route, 0, len(defaults)+len(overrides))
	for _, r := range defaults {
		if _, ok := overridden[r.Sport]; ok {
			continue
		}
		out = append(out, r)
	}
	return append(out, overrides...)
}
