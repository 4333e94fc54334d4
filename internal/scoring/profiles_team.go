package scoring

import (
	"math"

	"github.com/riskibarqy/sports-intel/internal/domain/confidence"
	"github.com/riskibarqy/sports-intel/internal/domain/sport"
)

// teamMock covers the record/momentum stats shared by league sports.
var teamMock = []MockStat{
	{Name: "win_pct", Min: 0.3, Max: 0.75},
	{Name: "recent_wins", Min: 2, Max: 9, Integer: true},
	{Name: "recent_games", Min: 10, Max: 10, Integer: true},
	{Name: "injured_starters", Min: 0, Max: 3, Integer: true},
}

func withTeamMock(extra ...MockStat) []MockStat {
	out := make([]MockStat, 0, len(teamMock)+len(extra))
	out = append(out, teamMock...)
	return append(out, extra...)
}

func nbaProfile() Profile {
	return Profile{
		Sport:  sport.NBA,
		Labels: confidence.BalancedLabels,
		Factors: []Factor{
			{Name: "win_percentage", Weight: 0.20, Extract: fraction("win_pct", 0.5)},
			{Name: "offensive_rating", Weight: 0.15, Extract: ranged("points_per_game", 112, 95, 130)},
			{Name: "defensive_rating", Weight: 0.15, Extract: ranged("points_allowed_per_game", 112, 130, 95)},
			{Name: "momentum", Weight: 0.15, Extract: recentWins(5, 10)},
			{Name: "health", Weight: 0.10, Extract: injuries("injured_starters", 0.5, 20)},
			{Name: "rest", Weight: 0.10, Extract: func(in Inputs) float64 {
				return math.Min(in.Stat("days_rest", 1), 3) / 3 * 100
			}},
			{Name: "home_advantage", Weight: 0.15, Extract: venue("home_win_pct", 60, "away_win_pct", 40)},
		},
		Triggers: []Trigger{
			Above("win_percentage", 65, "winning pedigree"),
			Above("offensive_rating", 70, "high-powered offense"),
			Above("defensive_rating", 70, "stingy defense"),
			Above("momentum", 70, "strong momentum"),
			Below("health", 60, "injury concerns"),
			Above("home_advantage", 55, "home court advantage"),
		},
		Mock: withTeamMock(
			MockStat{Name: "points_per_game", Min: 102, Max: 122},
			MockStat{Name: "points_allowed_per_game", Min: 102, Max: 122},
			MockStat{Name: "days_rest", Min: 0, Max: 3, Integer: true},
			MockStat{Name: "home_win_pct", Min: 45, Max: 80},
			MockStat{Name: "away_win_pct", Min: 25, Max: 60},
		),
	}
}

func gridironFactors(momentumWeight, healthWeight float64) []Factor {
	return []Factor{
		{Name: "win_percentage", Weight: 0.20, Extract: fraction("win_pct", 0.5)},
		{Name: "offensive_rating", Weight: 0.15, Extract: ranged("points_per_game", 22, 14, 32)},
		{Name: "defensive_rating", Weight: 0.15, Extract: ranged("points_allowed_per_game", 22, 32, 14)},
		{Name: "turnover_margin", Weight: 0.10, Extract: func(in Inputs) float64 {
			return 50 + in.Stat("turnover_margin", 0)*10
		}},
		{Name: "momentum", Weight: momentumWeight, Extract: recentWins(5, 10)},
		{Name: "health", Weight: healthWeight, Extract: injuries("injured_starters", 1, 12)},
		{Name: "home_advantage", Weight: 0.15, Extract: venue("home_win_pct", 57, "away_win_pct", 43)},
	}
}

var gridironTriggers = []Trigger{
	Above("win_percentage", 65, "winning pedigree"),
	Above("offensive_rating", 70, "explosive offense"),
	Above("defensive_rating", 70, "suffocating defense"),
	Above("turnover_margin", 70, "ball security"),
	Above("momentum", 70, "strong momentum"),
	Below("health", 60, "injury concerns"),
	Above("home_advantage", 55, "home field advantage"),
}

var gridironMock = []MockStat{
	{Name: "points_per_game", Min: 15, Max: 32},
	{Name: "points_allowed_per_game", Min: 15, Max: 30},
	{Name: "turnover_margin", Min: -1.5, Max: 1.5},
	{Name: "home_win_pct", Min: 45, Max: 75},
	{Name: "away_win_pct", Min: 30, Max: 60},
}

func nflProfile() Profile {
	return Profile{
		Sport:    sport.NFL,
		Labels:   confidence.BalancedLabels,
		Factors:  gridironFactors(0.15, 0.10),
		Triggers: gridironTriggers,
		Mock:     withTeamMock(gridironMock...),
	}
}

func ncaaFootballProfile() Profile {
	return Profile{
		Sport:    sport.NCAAFootball,
		Labels:   confidence.BalancedLabels,
		Factors:  gridironFactors(0.20, 0.05),
		Triggers: gridironTriggers,
		Mock:     withTeamMock(gridironMock...),
	}
}

func mlbProfile() Profile {
	return Profile{
		Sport:  sport.MLB,
		Labels: confidence.BalancedLabels,
		Factors: []Factor{
			{Name: "win_percentage", Weight: 0.20, Extract: fraction("win_pct", 0.5)},
			{Name: "run_differential", Weight: 0.15, Extract: func(in Inputs) float64 {
				return 50 + in.Stat("run_differential_per_game", 0)*20
			}},
			{Name: "starting_pitching", Weight: 0.15, Extract: ranged("starter_era", 4, 6.5, 2)},
			{Name: "batting", Weight: 0.10, Extract: ranged("batting_avg", 0.25, 0.2, 0.3)},
			{Name: "bullpen", Weight: 0.10, Extract: ranged("bullpen_era", 4, 6.5, 2)},
			{Name: "momentum", Weight: 0.15, Extract: recentWins(5, 10)},
			{Name: "home_advantage", Weight: 0.15, Extract: venue("home_win_pct", 54, "away_win_pct", 46)},
		},
		Triggers: []Trigger{
			Above("starting_pitching", 75, "ace on the mound"),
			Above("batting", 70, "deep lineup"),
			Above("bullpen", 70, "lockdown bullpen"),
			Above("run_differential", 65, "dominant run differential"),
			Above("momentum", 70, "strong momentum"),
		},
		Mock: withTeamMock(
			MockStat{Name: "run_differential_per_game", Min: -1.2, Max: 1.5},
			MockStat{Name: "starter_era", Min: 2.4, Max: 5.5},
			MockStat{Name: "batting_avg", Min: 0.22, Max: 0.285},
			MockStat{Name: "bullpen_era", Min: 2.8, Max: 5.2},
			MockStat{Name: "home_win_pct", Min: 45, Max: 65},
			MockStat{Name: "away_win_pct", Min: 38, Max: 56},
		),
	}
}

func premierLeagueProfile() Profile {
	return Profile{
		Sport:  sport.PremierLeague,
		Labels: confidence.BalancedLabels,
		Factors: []Factor{
			{Name: "possession", Weight: 0.15, Extract: percent("possession_pct", 50)},
			{Name: "shots_on_target", Weight: 0.15, Extract: perUnit("shots_on_target_per_game", 4.5, 16)},
			{Name: "attack", Weight: 0.15, Extract: ranged("goals_per_game", 1.4, 0, 3)},
			{Name: "defense", Weight: 0.15, Extract: ranged("goals_conceded_per_game", 1.4, 3, 0)},
			{Name: "form", Weight: 0.15, Extract: recentWins(2, 5)},
			{Name: "home_advantage", Weight: 0.15, Extract: venue("home_win_pct", 55, "away_win_pct", 35)},
			{Name: "discipline", Weight: 0.10, Extract: func(in Inputs) float64 {
				return 100 - in.Stat("cards_per_game", 2)*10
			}},
		},
		Triggers: []Trigger{
			Above("possession", 58, "controls possession"),
			Above("shots_on_target", 75, "clinical finishing"),
			Above("defense", 70, "solid back line"),
			Above("form", 70, "excellent form"),
			Above("home_advantage", 55, "home advantage"),
			Below("discipline", 60, "discipline issues"),
		},
		Mock: []MockStat{
			{Name: "possession_pct", Min: 38, Max: 65},
			{Name: "shots_on_target_per_game", Min: 2.5, Max: 7},
			{Name: "goals_per_game", Min: 0.8, Max: 2.6},
			{Name: "goals_conceded_per_game", Min: 0.6, Max: 2.2},
			{Name: "recent_wins", Min: 0, Max: 5, Integer: true},
			{Name: "recent_games", Min: 5, Max: 5, Integer: true},
			{Name: "home_win_pct", Min: 35, Max: 75},
			{Name: "away_win_pct", Min: 20, Max: 55},
			{Name: "cards_per_game", Min: 1, Max: 3.5},
		},
	}
}

func nhlProfile() Profile {
	return Profile{
		Sport:  sport.NHL,
		Labels: confidence.TechnicalLabels,
		Factors: []Factor{
			{Name: "shots_on_goal", Weight: 0.15, Extract: perUnit("shots_per_game", 30, 2.5)},
			{Name: "save_percentage", Weight: 0.15, Extract: fraction("save_pct", 0.905)},
			{Name: "powerplay", Weight: 0.10, Extract: percent("powerplay_pct", 20)},
			{Name: "penalty_kill", Weight: 0.10, Extract: percent("penalty_kill_pct", 80)},
			{Name: "plus_minus", Weight: 0.10, Extract: func(in Inputs) float64 {
				return 50 + in.Stat("plus_minus", 0)*2
			}},
			{Name: "recent_wins", Weight: 0.15, Extract: perUnit("recent_wins", 5, 10)},
			{Name: "fatigue", Weight: -0.10, Extract: perUnit("games_last_7_days", 3, 15)},
			{Name: "home_advantage", Weight: 0.15, Extract: venue("home_win_pct", 55, "away_win_pct", 45)},
		},
		Triggers: []Trigger{
			Above("shots_on_goal", 75, "relentless shot volume"),
			Above("save_percentage", 91, "elite goaltending"),
			Above("powerplay", 22, "dangerous powerplay"),
			Above("recent_wins", 70, "hot streak"),
			Above("home_advantage", 60, "home ice advantage"),
			Above("fatigue", 60, "fatigue concerns"),
		},
		Mock: []MockStat{
			{Name: "shots_per_game", Min: 26, Max: 36},
			{Name: "save_pct", Min: 0.89, Max: 0.925},
			{Name: "powerplay_pct", Min: 14, Max: 28},
			{Name: "penalty_kill_pct", Min: 74, Max: 86},
			{Name: "plus_minus", Min: -15, Max: 20, Integer: true},
			{Name: "recent_wins", Min: 2, Max: 8, Integer: true},
			{Name: "games_last_7_days", Min: 2, Max: 4, Integer: true},
			{Name: "home_win_pct", Min: 45, Max: 68},
			{Name: "away_win_pct", Min: 35, Max: 55},
		},
	}
}

func rugbyProfile() Profile {
	return Profile{
		Sport:  sport.Rugby,
		Labels: confidence.BalancedLabels,
		Factors: []Factor{
			{Name: "possession", Weight: 0.20, Extract: percent("possession_pct", 50)},
			{Name: "tackles", Weight: 0.15, Extract: func(in Inputs) float64 {
				return in.Stat("tackles_per_match", 110) / 150 * 100
			}},
			{Name: "line_breaks", Weight: 0.10, Extract: perUnit("line_breaks", 5, 10)},
			{Name: "kick_accuracy", Weight: 0.10, Extract: percent("kick_accuracy", 70)},
			{Name: "try_conversion", Weight: 0.15, Extract: percent("try_conversion_pct", 60)},
			{Name: "stamina", Weight: 0.10, Extract: stat("stamina", 70)},
			{Name: "home_advantage", Weight: 0.10, Extract: venue("home_win_pct", 65, "away_win_pct", 35)},
			{Name: "discipline", Weight: 0.10, Extract: func(in Inputs) float64 {
				return 100 - in.Stat("penalties_conceded", 10)*5
			}},
		},
		Triggers: []Trigger{
			Above("possession", 55, "territorial control"),
			Above("tackles", 70, "ferocious defense"),
			Above("line_breaks", 70, "incisive attack"),
			Above("discipline", 70, "excellent discipline"),
		},
		Mock: []MockStat{
			{Name: "possession_pct", Min: 40, Max: 62},
			{Name: "tackles_per_match", Min: 80, Max: 150, Integer: true},
			{Name: "line_breaks", Min: 2, Max: 9, Integer: true},
			{Name: "kick_accuracy", Min: 60, Max: 88},
			{Name: "try_conversion_pct", Min: 45, Max: 80},
			{Name: "stamina", Min: 60, Max: 92},
			{Name: "home_win_pct", Min: 50, Max: 80},
			{Name: "away_win_pct", Min: 25, Max: 55},
			{Name: "penalties_conceded", Min: 6, Max: 14, Integer: true},
		},
	}
}

func cricketProfile() Profile {
	return Profile{
		Sport:  sport.Cricket,
		Labels: confidence.BalancedLabels,
		Factors: []Factor{
			{Name: "runs_per_over", Weight: 0.15, Extract: func(in Inputs) float64 {
				return in.Stat("run_rate", 7.5) / 8 * 100
			}},
			{Name: "wickets_taken", Weight: 0.15, Extract: perUnit("wickets_per_match", 6, 10)},
			{Name: "strike_rate", Weight: 0.15, Extract: func(in Inputs) float64 {
				return in.Stat("strike_rate", 130) / 150 * 100
			}},
			{Name: "bowling_economy", Weight: 0.10, Extract: func(in Inputs) float64 {
				return 100 - in.Stat("economy", 7.5)*10
			}},
			{Name: "fielding", Weight: 0.10, Extract: percent("fielding_pct", 75)},
			{Name: "player_form", Weight: 0.15, Extract: stat("form", 60)},
			{Name: "toss_win_pct", Weight: 0.10, Extract: percent("toss_win_pct", 50)},
			{Name: "momentum", Weight: 0.10, Extract: recentWins(3, 5)},
		},
		Triggers: []Trigger{
			Above("runs_per_over", 75, "explosive batting"),
			Above("wickets_taken", 70, "lethal bowling"),
			Above("fielding", 75, "sharp fielding"),
			Above("player_form", 75, "excellent form"),
		},
		Mock: []MockStat{
			{Name: "run_rate", Min: 5.5, Max: 9.5},
			{Name: "wickets_per_match", Min: 4, Max: 9},
			{Name: "strike_rate", Min: 100, Max: 160},
			{Name: "economy", Min: 5.5, Max: 9},
			{Name: "fielding_pct", Min: 65, Max: 90},
			{Name: "form", Min: 40, Max: 90},
			{Name: "toss_win_pct", Min: 40, Max: 60},
			{Name: "recent_wins", Min: 0, Max: 5, Integer: true},
			{Name: "recent_games", Min: 5, Max: 5, Integer: true},
		},
	}
}

func volleyballProfile() Profile {
	return Profile{
		Sport:  sport.Volleyball,
		Labels: confidence.BalancedLabels,
		Factors: []Factor{
			{Name: "attack_efficiency", Weight: 0.20, Extract: percent("attack_efficiency", 45)},
			{Name: "blocks", Weight: 0.15, Extract: perUnit("blocks_per_set", 2, 20)},
			{Name: "serve_aces", Weight: 0.10, Extract: perUnit("aces_per_set", 1.5, 25)},
			{Name: "reception", Weight: 0.15, Extract: percent("reception_pct", 60)},
			{Name: "stamina", Weight: 0.10, Extract: stat("stamina", 70)},
			{Name: "form", Weight: 0.10, Extract: stat("form", 60)},
			{Name: "team_chemistry", Weight: 0.10, Extract: stat("team_chemistry", 70)},
			{Name: "defensive_conversion", Weight: 0.10, Extract: percent("defensive_conversion", 55)},
		},
		Triggers: []Trigger{
			Above("attack_efficiency", 55, "efficient attack"),
			Above("blocks", 70, "imposing block"),
			Above("reception", 70, "stable reception"),
			Above("serve_aces", 60, "aggressive serving"),
		},
		Mock: []MockStat{
			{Name: "attack_efficiency", Min: 35, Max: 60},
			{Name: "blocks_per_set", Min: 1, Max: 4},
			{Name: "aces_per_set", Min: 0.5, Max: 3},
			{Name: "reception_pct", Min: 45, Max: 78},
			{Name: "stamina", Min: 60, Max: 92},
			{Name: "form", Min: 40, Max: 90},
			{Name: "team_chemistry", Min: 55, Max: 92},
			{Name: "defensive_conversion", Min: 40, Max: 70},
		},
	}
}
