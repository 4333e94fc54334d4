package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/riskibarqy/sports-intel/internal/domain/confidence"
	"github.com/riskibarqy/sports-intel/internal/domain/sport"
)

const (
	minFactors      = 6
	maxFactors      = 8
	weightTolerance = 1e-6

	defaultFallbackPhrase = "balanced skillset"
)

// Inputs is what a factor extractor sees: the competitor's own stats, the opponent's
// stats and the situational context.
type Inputs struct {
	Self     confidence.StatBundle
	Opponent confidence.StatBundle
	Context  confidence.MatchupContext
	Side     confidence.Side
}

func (in Inputs) Stat(name string, fallback float64) float64 {
	return in.Self.Value(name, fallback)
}

func (in Inputs) OpponentStat(name string, fallback float64) float64 {
	return in.Opponent.Value(name, fallback)
}

// Venue reports home (1), away (-1) or neutral (0) for this competitor. The context wins
// over an explicit "is_home" stat.
func (in Inputs) Venue() int {
	if in.Context.Home != confidence.SideNone {
		if in.Context.Home == in.Side {
			return 1
		}
		return -1
	}
	if in.Self.Has("is_home") {
		if in.Self.Value("is_home", 0) > 0 {
			return 1
		}
		return -1
	}
	return 0
}

// Extractor derives one factor value from the inputs.
type Extractor func(in Inputs) float64

type Factor struct {
	Name    string
	Weight  float64
	Extract Extractor
}

// Trigger adds a phrase to the reasoning when a factor crosses its threshold.
type Trigger struct {
	Factor    string
	Threshold float64
	Below     bool
	Relative  bool
	Phrase    string
}

func Above(factor string, threshold float64, phrase string) Trigger {
	return Trigger{Factor: factor, Threshold: threshold, Phrase: phrase}
}

func Below(factor string, threshold float64, phrase string) Trigger {
	return Trigger{Factor: factor, Threshold: threshold, Below: true, Phrase: phrase}
}

// LeadBy fires when the factor exceeds the opponent's by more than margin.
func LeadBy(factor string, margin float64, phrase string) Trigger {
	return Trigger{Factor: factor, Threshold: margin, Relative: true, Phrase: phrase}
}

// TrailBy fires when the factor is behind the opponent's by more than margin.
func TrailBy(factor string, margin float64, phrase string) Trigger {
	return Trigger{Factor: factor, Threshold: -margin, Below: true, Relative: true, Phrase: phrase}
}

func (t Trigger) fires(self, opponent map[string]float64) (float64, bool) {
	value, ok := self[t.Factor]
	if !ok {
		return 0, false
	}
	if t.Relative {
		value -= opponent[t.Factor]
	}
	if t.Below {
		return value, value < t.Threshold
	}
	return value, value > t.Threshold
}

func (t Trigger) render(value float64, mc confidence.MatchupContext) string {
	phrase := t.Phrase
	if strings.Contains(phrase, "{surface}") {
		surface := strings.ToLower(strings.TrimSpace(mc.Surface))
		if surface == "" {
			surface = "hard"
		}
		phrase = strings.ReplaceAll(phrase, "{surface}", surface)
	}
	if strings.Contains(phrase, "%") {
		phrase = fmt.Sprintf(phrase, math.Abs(value))
	}
	return phrase
}

// MockStat is the range a generated stat is drawn from.
type MockStat struct {
	Name    string
	Min     float64
	Max     float64
	Integer bool
}

// Profile is the declarative scoring definition for one sport.
type Profile struct {
	Sport    sport.Sport
	Labels   confidence.LabelSet
	Factors  []Factor
	Triggers []Trigger
	Fallback string
	Mock     []MockStat
}

func (p Profile) Validate() error {
	if !p.Sport.Known() {
		return fmt.Errorf("profile sport %q is not known", p.Sport)
	}
	if len(p.Factors) < minFactors || len(p.Factors) > maxFactors {
		return fmt.Errorf("profile %s: expected %d-%d factors, got %d", p.Sport, minFactors, maxFactors, len(p.Factors))
	}

	seen := make(map[string]struct{}, len(p.Factors))
	total := 0.0
	for _, factor := range p.Factors {
		if strings.TrimSpace(factor.Name) == "" {
			return fmt.Errorf("profile %s: factor name is required", p.Sport)
		}
		if _, ok := seen[factor.Name]; ok {
			return fmt.Errorf("profile %s: duplicate factor %q", p.Sport, factor.Name)
		}
		if factor.Extract == nil {
			return fmt.Errorf("profile %s: factor %q has no extractor", p.Sport, factor.Name)
		}
		seen[factor.Name] = struct{}{}
		total += math.Abs(factor.Weight)
	}
	if math.Abs(total-1) > weightTolerance {
		return fmt.Errorf("profile %s: absolute weights sum to %.4f, want 1.0", p.Sport, total)
	}

	for _, trigger := range p.Triggers {
		if _, ok := seen[trigger.Factor]; !ok {
			return fmt.Errorf("profile %s: trigger references unknown factor %q", p.Sport, trigger.Factor)
		}
	}
	return nil
}

func (p Profile) fallbackPhrase() string {
	if strings.TrimSpace(p.Fallback) == "" {
		return defaultFallbackPhrase
	}
	return p.Fallback
}

func (p Profile) extract(in Inputs) (map[string]float64, float64) {
	factors := make(map[string]float64, len(p.Factors))
	raw := 0.0
	for _, factor := range p.Factors {
		value := clamp(factor.Extract(in), 0, 100)
		factors[factor.Name] = value
		raw += value * factor.Weight
	}
	return factors, raw
}

func (p Profile) reasons(self, opponent map[string]float64, mc confidence.MatchupContext) []string {
	out := make([]string, 0, len(p.Triggers))
	for _, trigger := range p.Triggers {
		value, ok := trigger.fires(self, opponent)
		if !ok {
			continue
		}
		out = append(out, trigger.render(value, mc))
	}
	return out
}
