package sport

import (
	"strings"
)

// Sport is the canonical sport identifier used for routing, cache keys and scoring profiles.
type Sport string

const (
	NFL           Sport = "nfl"
	NBA           Sport = "nba"
	MLB           Sport = "mlb"
	NHL           Sport = "nhl"
	PremierLeague Sport = "premier_league"
	Formula1      Sport = "formula1"
	NCAAFootball  Sport = "ncaa_football"
	Boxing        Sport = "boxing"
	MMA           Sport = "mma"
	Tennis        Sport = "tennis"
	Golf          Sport = "golf"
	Cricket       Sport = "cricket"
	Rugby         Sport = "rugby"
	Volleyball    Sport = "volleyball"
	Cycling       Sport = "cycling"
	MotoGP        Sport = "motogp"
	NASCAR        Sport = "nascar"
	TableTennis   Sport = "table_tennis"
)

var known = []Sport{
	NFL,
	NBA,
	MLB,
	NHL,
	PremierLeague,
	Formula1,
	NCAAFootball,
	Boxing,
	MMA,
	Tennis,
	Golf,
	Cricket,
	Rugby,
	Volleyball,
	Cycling,
	MotoGP,
	NASCAR,
	TableTennis,
}

var aliases = map[string]Sport{
	"soccer":      PremierLeague,
	"epl":         PremierLeague,
	"football":    PremierLeague,
	"f1":          Formula1,
	"ufc":         MMA,
	"hockey":      NHL,
	"cfb":         NCAAFootball,
	"ncaaf":       NCAAFootball,
	"tabletennis": TableTennis,
	"ping_pong":   TableTennis,
	"pingpong":    TableTennis,
}

// All returns every known sport in a stable order.
func All() []Sport {
	out := make([]Sport, len(known))
	copy(out, known)
	return out
}

// Parse normalizes a raw identifier, resolving aliases. It reports false for unknown sports.
func Parse(raw string) (Sport, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	value = strings.ReplaceAll(value, "-", "_")
	value = strings.ReplaceAll(value, " ", "_")
	if value == "" {
		return "", false
	}
	if alias, ok := aliases[value]; ok {
		return alias, true
	}

	candidate := Sport(value)
	if candidate.Known() {
		return candidate, true
	}
	return "", false
}

func (s Sport) Known() bool {
	for _, item := range known {
		if item == s {
			return true
		}
	}
	return false
}

func (s Sport) String() string {
	return string(s)
}

// DisplayName is used for generated league names, e.g. "NBA League".
func (s Sport) DisplayName() string {
	switch s {
	case PremierLeague:
		return "PREMIER LEAGUE"
	case NCAAFootball:
		return "NCAA FOOTBALL"
	case TableTennis:
		return "TABLE TENNIS"
	default:
		return strings.ToUpper(string(s))
	}
}

const (
	keyKindSchedule = "schedule"

	// BoxingUpcomingKey caches upcoming fight cards.
	BoxingUpcomingKey = "boxing:upcoming"
)

// ScheduleKey returns the cache key for a sport schedule, e.g. "schedule:nba".
func ScheduleKey(s Sport) string {
	return keyKindSchedule + ":" + string(s)
}
