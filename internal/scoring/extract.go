package scoring

import "math"

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// spread maps v from [lo, hi] onto [0, 100]. lo may exceed hi for "lower is better" stats.
func spread(v, lo, hi float64) float64 {
	if hi == lo {
		return 50
	}
	return clamp((v-lo)/(hi-lo)*100, 0, 100)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// stat reads a 0-100 value as-is.
func stat(name string, fallback float64) Extractor {
	return func(in Inputs) float64 {
		return in.Stat(name, fallback)
	}
}

// percent reads a stat reported on the 0-100 scale. A value of 1 means 1%.
func percent(name string, fallback float64) Extractor {
	return stat(name, fallback)
}

// fraction reads a stat reported on the 0-1 scale, e.g. win_pct 0.62 => 62.
func fraction(name string, fallback float64) Extractor {
	return func(in Inputs) float64 {
		return in.Stat(name, fallback) * 100
	}
}

// perUnit multiplies a rate into the 0-100 band, e.g. blocks per set * 20.
func perUnit(name string, fallback, multiplier float64) Extractor {
	return func(in Inputs) float64 {
		return in.Stat(name, fallback) * multiplier
	}
}

// ranged maps a stat from [lo, hi] onto 0-100.
func ranged(name string, fallback, lo, hi float64) Extractor {
	return func(in Inputs) float64 {
		return spread(in.Stat(name, fallback), lo, hi)
	}
}

// ratio turns wins/games style pairs into a percentage.
func ratio(num string, numFallback float64, den string, denFallback float64) Extractor {
	return func(in Inputs) float64 {
		d := in.Stat(den, denFallback)
		if d <= 0 {
			return 50
		}
		return in.Stat(num, numFallback) / d * 100
	}
}

// relative compares the stat with the opponent's and maps the difference from
// [-limit, limit] onto 0-100.
func relative(name string, limit float64) Extractor {
	return func(in Inputs) float64 {
		if !in.Self.Has(name) || !in.Opponent.Has(name) {
			return 50
		}
		diff := in.Stat(name, 0) - in.OpponentStat(name, 0)
		return spread(diff, -limit, limit)
	}
}

// venue picks the home or away win percentage (0-100) according to the matchup
// context; neutral venues score 50.
func venue(homeName string, homeFallback float64, awayName string, awayFallback float64) Extractor {
	return func(in Inputs) float64 {
		switch in.Venue() {
		case 1:
			return in.Stat(homeName, homeFallback)
		case -1:
			return in.Stat(awayName, awayFallback)
		default:
			return 50
		}
	}
}

// recentWins scores the last-N record, e.g. 7 of 10 => 70.
func recentWins(fallbackWins, fallbackGames float64) Extractor {
	return ratio("recent_wins", fallbackWins, "recent_games", fallbackGames)
}

// injuries converts injured key players into a health score.
func injuries(name string, fallback, perPlayer float64) Extractor {
	return func(in Inputs) float64 {
		return 100 - in.Stat(name, fallback)*perPlayer
	}
}
