package scoring

import (
	"math"

	"github.com/riskibarqy/sports-intel/internal/domain/confidence"
	"github.com/riskibarqy/sports-intel/internal/domain/sport"
)

func boxingProfile() Profile {
	return Profile{
		Sport:  sport.Boxing,
		Labels: confidence.TechnicalLabels,
		Factors: []Factor{
			{Name: "power_index", Weight: 0.30, Extract: boxingPower},
			{Name: "speed_index", Weight: 0.10, Extract: boxingSpeed},
			{Name: "stamina_index", Weight: 0.10, Extract: boxingStamina},
			{Name: "defense_index", Weight: 0.10, Extract: boxingDefense},
			{Name: "reach_advantage", Weight: 0.10, Extract: relative("reach_cm", 15)},
			{Name: "ko_rate", Weight: 0.10, Extract: boxingKORate},
			{Name: "win_streak", Weight: 0.10, Extract: winStreak(7)},
			{Name: "ring_experience", Weight: 0.10, Extract: ringExperience},
		},
		Triggers: []Trigger{
			Above("power_index", 75, "strong power index (%.0f)"),
			Above("ko_rate", 70, "high KO rate (%.0f%%)"),
			Above("reach_advantage", 66, "reach advantage"),
			Below("reach_advantage", 34, "reach disadvantage"),
			Above("defense_index", 80, "excellent defense"),
			Below("defense_index", 50, "defensive vulnerabilities"),
			Above("win_streak", 70, "strong win streak"),
			Above("stamina_index", 80, "superior stamina"),
			LeadBy("ring_experience", 20, "experience advantage"),
			TrailBy("ring_experience", 20, "experience disadvantage"),
		},
		Mock: []MockStat{
			{Name: "power_idx", Min: 60, Max: 98},
			{Name: "speed_idx", Min: 60, Max: 95},
			{Name: "stamina_idx", Min: 60, Max: 95},
			{Name: "defense_idx", Min: 55, Max: 92},
			{Name: "win_streak", Min: 0, Max: 15, Integer: true},
			{Name: "reach_cm", Min: 165, Max: 205, Integer: true},
			{Name: "age", Min: 22, Max: 38, Integer: true},
			{Name: "ko_pct", Min: 30, Max: 90},
			{Name: "wins", Min: 10, Max: 45, Integer: true},
			{Name: "losses", Min: 0, Max: 6, Integer: true},
		},
	}
}

// boxingPower uses the explicit index, else knockout rate plus a recent-KO bonus.
func boxingPower(in Inputs) float64 {
	if in.Self.Has("power_idx") {
		return in.Stat("power_idx", 0)
	}
	return boxingKORate(in) + math.Min(in.Stat("recent_ko_wins", 0)*5, 20)
}

func boxingSpeed(in Inputs) float64 {
	if in.Self.Has("speed_idx") {
		return in.Stat("speed_idx", 0)
	}

	base := 60.0
	if in.Self.Has("age") {
		age := in.Stat("age", 0)
		switch {
		case age < 22:
			base = 70
		case age <= 28:
			base = 85
		case age <= 32:
			base = 75
		case age <= 35:
			base = 60
		default:
			base = 45
		}
	}
	return base + math.Min(in.Stat("fights_last_year", 0)*2, 10)
}

func boxingStamina(in Inputs) float64 {
	if in.Self.Has("stamina_idx") {
		return in.Stat("stamina_idx", 0)
	}

	wins := in.Stat("wins", 0)
	if wins <= 0 {
		return 60
	}
	decisions := in.Stat("decision_wins", wins-koWins(in))
	distance := math.Min(totalFights(in), 30) / 30 * 30
	return decisions/wins*70 + distance
}

func boxingDefense(in Inputs) float64 {
	if in.Self.Has("defense_idx") {
		return in.Stat("defense_idx", 0)
	}

	losses := in.Stat("losses", 0)
	if losses <= 0 {
		return 90
	}
	koLossRatio := in.Stat("ko_losses", 0) / losses
	return math.Max(30, (1-koLossRatio)*100-math.Min(losses*2, 20))
}

func boxingKORate(in Inputs) float64 {
	if in.Self.Has("ko_pct") {
		return in.Stat("ko_pct", 0)
	}
	total := totalFights(in)
	if total <= 0 {
		return 50
	}
	return koWins(in) / total * 100
}

func koWins(in Inputs) float64 {
	if in.Self.Has("ko_wins") {
		return in.Stat("ko_wins", 0)
	}
	return in.Stat("wins", 0) * 0.6
}

// totalFights counts the record, falling back to the win streak when no record is given.
func totalFights(in Inputs) float64 {
	total := in.Stat("wins", 0) + in.Stat("losses", 0) + in.Stat("draws", 0)
	if total <= 0 {
		return math.Max(in.Stat("win_streak", 0), 0)
	}
	return total
}

func winStreak(cap float64) Extractor {
	return func(in Inputs) float64 {
		streak := math.Max(in.Stat("win_streak", 0), 0)
		return math.Min(streak, cap) / cap * 100
	}
}

func ageFactor(in Inputs) float64 {
	if !in.Self.Has("age") {
		return 50
	}
	age := in.Stat("age", 0)
	switch {
	case age >= 28 && age <= 32:
		return 100
	case age >= 25 && age < 28:
		return 90
	case age > 32 && age <= 35:
		return 85
	case age >= 22 && age < 25:
		return 75
	case age > 35 && age <= 38:
		return 60
	default:
		return 40
	}
}

// ringExperience blends prime-age and fight count.
func ringExperience(in Inputs) float64 {
	experience := math.Min(100, totalFights(in)/30*100)
	return (ageFactor(in) + experience) / 2
}

func mmaProfile() Profile {
	return Profile{
		Sport:  sport.MMA,
		Labels: confidence.TechnicalLabels,
		Factors: []Factor{
			{Name: "strike_accuracy", Weight: 0.20, Extract: percent("strike_accuracy", 45)},
			{Name: "takedown_success", Weight: 0.15, Extract: percent("takedown_accuracy", 40)},
			{Name: "stamina", Weight: 0.15, Extract: stat("stamina", 70)},
			{Name: "significant_strikes", Weight: 0.10, Extract: perUnit("sig_strikes_per_min", 4, 10)},
			{Name: "defense_efficiency", Weight: 0.10, Extract: mmaDefense},
			{Name: "reach_advantage", Weight: 0.10, Extract: relative("reach_cm", 15)},
			{Name: "recent_win_streak", Weight: 0.10, Extract: func(in Inputs) float64 {
				return math.Min(100, math.Max(in.Stat("win_streak", 0), 0)*20)
			}},
			{Name: "age_experience", Weight: 0.10, Extract: mmaAgeExperience},
		},
		Triggers: []Trigger{
			Above("strike_accuracy", 70, "elite striking accuracy"),
			Above("takedown_success", 70, "dominant wrestling"),
			Above("defense_efficiency", 70, "exceptional defense"),
			Above("recent_win_streak", 60, "strong momentum"),
			Above("stamina", 85, "deep gas tank"),
		},
		Mock: []MockStat{
			{Name: "strike_accuracy", Min: 35, Max: 75},
			{Name: "takedown_accuracy", Min: 20, Max: 80},
			{Name: "stamina", Min: 60, Max: 95},
			{Name: "sig_strikes_per_min", Min: 2, Max: 7},
			{Name: "strike_defense", Min: 45, Max: 75},
			{Name: "reach_cm", Min: 170, Max: 205, Integer: true},
			{Name: "win_streak", Min: 0, Max: 8, Integer: true},
			{Name: "age", Min: 22, Max: 38, Integer: true},
			{Name: "wins", Min: 8, Max: 30, Integer: true},
			{Name: "losses", Min: 0, Max: 8, Integer: true},
		},
	}
}

func mmaDefense(in Inputs) float64 {
	if in.Self.Has("strike_defense") {
		return in.Stat("strike_defense", 0)
	}
	return 100 - in.Stat("absorbed_per_min", 4)*10
}

func mmaAgeExperience(in Inputs) float64 {
	score := 50.0
	age := in.Stat("age", 0)
	if age >= 24 && age <= 32 {
		score += 20
	}
	fights := in.Stat("wins", 0) + in.Stat("losses", 0)
	switch {
	case fights > 15:
		score += 15
	case fights > 10:
		score += 10
	}
	return score
}
