package scoring

import (
	"math"
	"strings"

	"github.com/riskibarqy/sports-intel/internal/domain/confidence"
	"github.com/riskibarqy/sports-intel/internal/domain/sport"
)

func tennisProfile() Profile {
	return Profile{
		Sport:  sport.Tennis,
		Labels: confidence.TechnicalLabels,
		Factors: []Factor{
			{Name: "first_serve_pct", Weight: 0.20, Extract: percent("first_serve_pct", 65)},
			{Name: "break_points_saved", Weight: 0.15, Extract: percent("break_points_saved_pct", 60)},
			{Name: "aces", Weight: 0.10, Extract: perUnit("aces_per_match", 8, 5)},
			{Name: "unforced_errors", Weight: -0.10, Extract: perUnit("unforced_errors", 25, 2)},
			{Name: "stamina", Weight: 0.15, Extract: stat("stamina", 70)},
			{Name: "ranking_factor", Weight: 0.10, Extract: func(in Inputs) float64 {
				return 100 - in.Stat("ranking", 50)
			}},
			{Name: "surface_win_rate", Weight: 0.10, Extract: surfaceWinRate},
			{Name: "recent_form", Weight: 0.10, Extract: perUnit("recent_wins", 5, 10)},
		},
		Triggers: []Trigger{
			Above("first_serve_pct", 70, "powerful serve"),
			Above("break_points_saved", 70, "clutch defense under pressure"),
			Above("surface_win_rate", 65, "strong {surface} court record"),
			Above("recent_form", 70, "excellent recent form"),
			Above("unforced_errors", 70, "error-prone rallies"),
		},
		Mock: []MockStat{
			{Name: "first_serve_pct", Min: 55, Max: 75},
			{Name: "break_points_saved_pct", Min: 50, Max: 75},
			{Name: "aces_per_match", Min: 2, Max: 18, Integer: true},
			{Name: "unforced_errors", Min: 12, Max: 40, Integer: true},
			{Name: "stamina", Min: 60, Max: 95},
			{Name: "ranking", Min: 1, Max: 100, Integer: true},
			{Name: "hard_win_pct", Min: 40, Max: 80},
			{Name: "clay_win_pct", Min: 35, Max: 80},
			{Name: "grass_win_pct", Min: 35, Max: 80},
			{Name: "recent_wins", Min: 3, Max: 10, Integer: true},
		},
	}
}

// surfaceWinRate prefers the "{surface}_win_pct" stat for the matchup surface.
func surfaceWinRate(in Inputs) float64 {
	surface := strings.ToLower(strings.TrimSpace(in.Context.Surface))
	if surface != "" && in.Self.Has(surface+"_win_pct") {
		return in.Stat(surface+"_win_pct", 50)
	}
	return in.Stat("surface_win_pct", 50)
}

func tableTennisProfile() Profile {
	return Profile{
		Sport:  sport.TableTennis,
		Labels: confidence.BalancedLabels,
		Factors: []Factor{
			{Name: "serve_aces", Weight: 0.20, Extract: func(in Inputs) float64 {
				return math.Min(in.Stat("aces", 5)/15, 1) * 100
			}},
			{Name: "error_control", Weight: 0.20, Extract: func(in Inputs) float64 {
				return (1 - math.Min(in.Stat("errors", 4)/10, 1)) * 100
			}},
			{Name: "rally_efficiency", Weight: 0.20, Extract: fraction("rally_efficiency", 0.6)},
			{Name: "set_win_pct", Weight: 0.15, Extract: fraction("set_win_pct", 0.55)},
			{Name: "reflex", Weight: 0.15, Extract: fraction("reflex", 0.7)},
			{Name: "momentum", Weight: 0.10, Extract: fraction("momentum", 0.5)},
		},
		Triggers: []Trigger{
			Above("serve_aces", 60, "dangerous serve"),
			Above("error_control", 70, "disciplined shot selection"),
			Above("rally_efficiency", 70, "rally dominance"),
			Above("reflex", 80, "lightning reflexes"),
		},
		Mock: []MockStat{
			{Name: "aces", Min: 1, Max: 14, Integer: true},
			{Name: "errors", Min: 1, Max: 9, Integer: true},
			{Name: "rally_efficiency", Min: 0.4, Max: 0.85},
			{Name: "set_win_pct", Min: 0.35, Max: 0.8},
			{Name: "reflex", Min: 0.5, Max: 0.95},
			{Name: "momentum", Min: 0.3, Max: 0.9},
		},
	}
}

func golfProfile() Profile {
	return Profile{
		Sport:  sport.Golf,
		Labels: confidence.BalancedLabels,
		Factors: []Factor{
			{Name: "driving_accuracy", Weight: 0.15, Extract: fraction("driving_accuracy", 0.62)},
			{Name: "strokes_gained", Weight: 0.20, Extract: func(in Inputs) float64 {
				return (in.Stat("strokes_gained", 0.5) + 5) / 10 * 100
			}},
			{Name: "birdie_conversion", Weight: 0.15, Extract: fraction("birdie_conversion", 0.3)},
			{Name: "sand_saves", Weight: 0.10, Extract: fraction("sand_saves", 0.5)},
			{Name: "consistency", Weight: 0.15, Extract: fraction("consistency", 0.7)},
			{Name: "stamina", Weight: 0.10, Extract: fraction("stamina", 0.75)},
			{Name: "weather_impact", Weight: 0.10, Extract: fraction("weather_adaptability", 0.6)},
			{Name: "form", Weight: 0.05, Extract: fraction("form", 0.6)},
		},
		Triggers: []Trigger{
			Above("strokes_gained", 65, "elite strokes gained"),
			Above("driving_accuracy", 70, "accurate off the tee"),
			Above("birdie_conversion", 35, "strong birdie conversion"),
			Above("consistency", 80, "remarkable consistency"),
		},
		Mock: []MockStat{
			{Name: "driving_accuracy", Min: 0.5, Max: 0.8},
			{Name: "strokes_gained", Min: -1, Max: 2.5},
			{Name: "birdie_conversion", Min: 0.2, Max: 0.42},
			{Name: "sand_saves", Min: 0.35, Max: 0.65},
			{Name: "consistency", Min: 0.55, Max: 0.9},
			{Name: "stamina", Min: 0.6, Max: 0.95},
			{Name: "weather_adaptability", Min: 0.4, Max: 0.9},
			{Name: "form", Min: 0.3, Max: 0.9},
		},
	}
}
