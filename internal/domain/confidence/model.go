package confidence

import (
	"math"
	"strings"
)

// StatBundle maps a stat or factor name to its numeric value for one competitor.
type StatBundle map[string]float64

// Value returns the named stat, or fallback when it is absent or not a finite number.
func (b StatBundle) Value(name string, fallback float64) float64 {
	if b == nil {
		return fallback
	}
	v, ok := b[name]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

func (b StatBundle) Has(name string) bool {
	if b == nil {
		return false
	}
	v, ok := b[name]
	return ok && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Clone returns an independent copy.
func (b StatBundle) Clone() StatBundle {
	out := make(StatBundle, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Competitor is one side of a matchup.
type Competitor struct {
	Name  string
	Stats StatBundle
}

type Side string

const (
	SideNone Side = ""
	SideOne  Side = "one"
	SideTwo  Side = "two"
)

func ParseSide(raw string) Side {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "one", "1", "home_one", "competitor_one":
		return SideOne
	case "two", "2", "home_two", "competitor_two":
		return SideTwo
	default:
		return SideNone
	}
}

// MatchupContext carries situational inputs that are not part of either stat bundle.
type MatchupContext struct {
	Home    Side
	Surface string
}

// Result is the confidence outcome for one competitor.
type Result struct {
	Name           string             `json:"name"`
	Score          float64            `json:"score"`
	RawScore       float64            `json:"raw_score"`
	Classification Classification     `json:"classification"`
	Label          string             `json:"label"`
	Factors        map[string]float64 `json:"factors"`
	Reasoning      string             `json:"reasoning"`
}

// Matchup holds both results; their scores always sum to 100.
type Matchup struct {
	Sport string `json:"sport"`
	One   Result `json:"competitor_one"`
	Two   Result `json:"competitor_two"`
}

// Favorite returns the side with the higher score, or SideNone on an exact tie.
func (m Matchup) Favorite() Side {
	switch {
	case m.One.Score > m.Two.Score:
		return SideOne
	case m.Two.Score > m.One.Score:
		return SideTwo
	default:
		return SideNone
	}
}
