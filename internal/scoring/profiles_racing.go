package scoring

import (
	"github.com/riskibarqy/sports-intel/internal/domain/confidence"
	"github.com/riskibarqy/sports-intel/internal/domain/sport"
)

func formula1Profile() Profile {
	return Profile{
		Sport:  sport.Formula1,
		Labels: confidence.BalancedLabels,
		Factors: []Factor{
			{Name: "qualifying_pace", Weight: 0.20, Extract: ranged("qualifying_position", 10, 21, 1)},
			{Name: "race_pace", Weight: 0.20, Extract: func(in Inputs) float64 {
				return 100 - in.Stat("race_pace_delta_s", 0.5)*50
			}},
			{Name: "pit_efficiency", Weight: 0.10, Extract: ranged("pit_stop_seconds", 2.5, 4, 2)},
			{Name: "reliability", Weight: 0.15, Extract: fraction("finish_rate", 0.85)},
			{Name: "championship_form", Weight: 0.15, Extract: func(in Inputs) float64 {
				return in.Stat("points_last_5", 40) / 125 * 100
			}},
			{Name: "track_history", Weight: 0.10, Extract: fraction("track_history", 0.5)},
			{Name: "tire_management", Weight: 0.10, Extract: fraction("tire_management", 0.6)},
		},
		Triggers: []Trigger{
			Above("qualifying_pace", 80, "front-row qualifying pace"),
			Above("race_pace", 80, "race-winning pace"),
			Above("reliability", 90, "bulletproof reliability"),
			Above("championship_form", 70, "title-contending form"),
		},
		Mock: []MockStat{
			{Name: "qualifying_position", Min: 1, Max: 20, Integer: true},
			{Name: "race_pace_delta_s", Min: 0, Max: 1.5},
			{Name: "pit_stop_seconds", Min: 2.1, Max: 3.6},
			{Name: "finish_rate", Min: 0.7, Max: 0.98},
			{Name: "points_last_5", Min: 0, Max: 120, Integer: true},
			{Name: "track_history", Min: 0.2, Max: 0.9},
			{Name: "tire_management", Min: 0.4, Max: 0.9},
		},
	}
}

func motoGPProfile() Profile {
	return Profile{
		Sport:  sport.MotoGP,
		Labels: confidence.BalancedLabels,
		Factors: []Factor{
			{Name: "lap_time_delta", Weight: 0.20, Extract: func(in Inputs) float64 {
				return 100 - in.Stat("lap_time_delta_s", 0.6)*40
			}},
			{Name: "top_speed", Weight: 0.15, Extract: ranged("top_speed_kmh", 345, 300, 366)},
			{Name: "braking", Weight: 0.15, Extract: fraction("braking", 0.75)},
			{Name: "rider_form", Weight: 0.15, Extract: fraction("rider_form", 0.6)},
			{Name: "track_adaptation", Weight: 0.10, Extract: fraction("track_adaptation", 0.65)},
			{Name: "tire_management", Weight: 0.10, Extract: fraction("tire_management", 0.65)},
			{Name: "experience", Weight: 0.10, Extract: func(in Inputs) float64 {
				return in.Stat("experience_years", 5) / 15 * 100
			}},
			{Name: "reaction_time", Weight: 0.05, Extract: ranged("reaction_time_ms", 250, 400, 150)},
		},
		Triggers: []Trigger{
			Above("lap_time_delta", 80, "blistering lap pace"),
			Above("top_speed", 80, "straight-line speed"),
			Above("braking", 80, "late-braking precision"),
			Above("rider_form", 75, "strong form"),
		},
		Mock: []MockStat{
			{Name: "lap_time_delta_s", Min: 0, Max: 1.4},
			{Name: "top_speed_kmh", Min: 335, Max: 366},
			{Name: "braking", Min: 0.55, Max: 0.95},
			{Name: "rider_form", Min: 0.35, Max: 0.9},
			{Name: "track_adaptation", Min: 0.4, Max: 0.9},
			{Name: "tire_management", Min: 0.4, Max: 0.9},
			{Name: "experience_years", Min: 1, Max: 15, Integer: true},
			{Name: "reaction_time_ms", Min: 180, Max: 320, Integer: true},
		},
	}
}

func nascarProfile() Profile {
	return Profile{
		Sport:  sport.NASCAR,
		Labels: confidence.BalancedLabels,
		Factors: []Factor{
			{Name: "laps_completed", Weight: 0.15, Extract: fraction("laps_completed_pct", 0.95)},
			{Name: "pit_stops", Weight: 0.10, Extract: ranged("pit_stop_seconds", 12, 16, 10)},
			{Name: "average_speed", Weight: 0.20, Extract: ranged("average_speed_mph", 170, 150, 200)},
			{Name: "consistency", Weight: 0.15, Extract: fraction("consistency", 0.7)},
			{Name: "overtakes", Weight: 0.10, Extract: perUnit("overtakes_per_race", 10, 5)},
			{Name: "tire_wear", Weight: 0.10, Extract: fraction("tire_management", 0.6)},
			{Name: "team_coordination", Weight: 0.15, Extract: fraction("team_coordination", 0.7)},
			{Name: "weather_impact", Weight: 0.05, Extract: fraction("weather_adaptability", 0.6)},
		},
		Triggers: []Trigger{
			Above("average_speed", 70, "raw pace"),
			Above("pit_stops", 75, "efficient pit crew"),
			Above("consistency", 80, "consistent finishes"),
			Above("overtakes", 70, "aggressive overtaking"),
		},
		Mock: []MockStat{
			{Name: "laps_completed_pct", Min: 0.85, Max: 1},
			{Name: "pit_stop_seconds", Min: 10.5, Max: 15},
			{Name: "average_speed_mph", Min: 155, Max: 195},
			{Name: "consistency", Min: 0.5, Max: 0.92},
			{Name: "overtakes_per_race", Min: 3, Max: 18, Integer: true},
			{Name: "tire_management", Min: 0.4, Max: 0.9},
			{Name: "team_coordination", Min: 0.5, Max: 0.95},
			{Name: "weather_adaptability", Min: 0.4, Max: 0.9},
		},
	}
}

func cyclingProfile() Profile {
	return Profile{
		Sport:  sport.Cycling,
		Labels: confidence.BalancedLabels,
		Factors: []Factor{
			{Name: "climb", Weight: 0.20, Extract: fraction("climbing", 0.6)},
			{Name: "time_gap", Weight: 0.15, Extract: func(in Inputs) float64 {
				return 100 - in.Stat("gc_gap_seconds", 30)/2
			}},
			{Name: "heart_rate_stability", Weight: 0.10, Extract: fraction("heart_rate_stability", 0.7)},
			{Name: "cadence", Weight: 0.15, Extract: ranged("cadence_rpm", 90, 70, 110)},
			{Name: "endurance", Weight: 0.15, Extract: fraction("endurance", 0.7)},
			{Name: "descent_control", Weight: 0.10, Extract: fraction("descending", 0.6)},
			{Name: "team_pacing", Weight: 0.10, Extract: fraction("team_pacing", 0.65)},
			{Name: "terrain_adaptation", Weight: 0.05, Extract: fraction("terrain_adaptation", 0.6)},
		},
		Triggers: []Trigger{
			Above("climb", 75, "elite climbing"),
			Above("endurance", 80, "exceptional endurance"),
			Above("descent_control", 75, "fearless descending"),
			Above("time_gap", 75, "well placed on general classification"),
		},
		Mock: []MockStat{
			{Name: "climbing", Min: 0.4, Max: 0.95},
			{Name: "gc_gap_seconds", Min: 0, Max: 180, Integer: true},
			{Name: "heart_rate_stability", Min: 0.5, Max: 0.95},
			{Name: "cadence_rpm", Min: 80, Max: 105, Integer: true},
			{Name: "endurance", Min: 0.55, Max: 0.95},
			{Name: "descending", Min: 0.4, Max: 0.9},
			{Name: "team_pacing", Min: 0.45, Max: 0.9},
			{Name: "terrain_adaptation", Min: 0.4, Max: 0.9},
		},
	}
}
