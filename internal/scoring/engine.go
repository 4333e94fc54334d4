package scoring

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/riskibarqy/sports-intel/internal/domain/confidence"
	"github.com/riskibarqy/sports-intel/internal/domain/sport"
)

// normalizationEpsilon guards the relative split when both raw scores are (near) zero.
const normalizationEpsilon = 1e-9

var ErrUnknownProfile = errors.New("no scoring profile for sport")

// Engine computes confidence matchups from declarative per-sport profiles. It is safe
// for concurrent use; profiles are read-only after construction.
type Engine struct {
	profiles map[sport.Sport]Profile
}

// NewEngine builds an engine from the given profiles, or the built-in set when none
// are passed.
func NewEngine(profiles ...Profile) (*Engine, error) {
	if len(profiles) == 0 {
		profiles = BuiltinProfiles()
	}

	out := make(map[sport.Sport]Profile, len(profiles))
	for _, profile := range profiles {
		if err := profile.Validate(); err != nil {
			return nil, err
		}
		if _, ok := out[profile.Sport]; ok {
			return nil, fmt.Errorf("duplicate profile for sport %s", profile.Sport)
		}
		out[profile.Sport] = profile
	}
	return &Engine{profiles: out}, nil
}

// MustNewEngine is NewEngine for the built-in profiles, panicking on an invalid table.
func MustNewEngine() *Engine {
	engine, err := NewEngine()
	if err != nil {
		panic(err)
	}
	return engine
}

func (e *Engine) Profile(s sport.Sport) (Profile, bool) {
	profile, ok := e.profiles[s]
	return profile, ok
}

func (e *Engine) Sports() []sport.Sport {
	out := make([]sport.Sport, 0, len(e.profiles))
	for key := range e.profiles {
		out = append(out, key)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Compute scores one competitor against the other. It never fails on malformed stats;
// the only error is a sport without a profile.
func (e *Engine) Compute(s sport.Sport, one, two confidence.Competitor, mc confidence.MatchupContext) (confidence.Matchup, error) {
	profile, ok := e.profiles[s]
	if !ok {
		return confidence.Matchup{}, fmt.Errorf("%w: %s", ErrUnknownProfile, s)
	}

	factorsOne, rawOne := profile.extract(Inputs{Self: one.Stats, Opponent: two.Stats, Context: mc, Side: confidence.SideOne})
	factorsTwo, rawTwo := profile.extract(Inputs{Self: two.Stats, Opponent: one.Stats, Context: mc, Side: confidence.SideTwo})
	scoreOne, scoreTwo := Normalize(rawOne, rawTwo)

	return confidence.Matchup{
		Sport: string(s),
		One:   profile.result(defaultName(one.Name, "Competitor one"), scoreOne, rawOne, factorsOne, factorsTwo, mc),
		Two:   profile.result(defaultName(two.Name, "Competitor two"), scoreTwo, rawTwo, factorsTwo, factorsOne, mc),
	}, nil
}

// Normalize splits 100 points between two raw scores by absolute magnitude. The pair
// always sums to 100; near-zero totals split evenly.
func Normalize(rawOne, rawTwo float64) (float64, float64) {
	a := math.Abs(rawOne)
	b := math.Abs(rawTwo)
	total := a + b
	if math.IsNaN(total) || math.IsInf(total, 0) || total < normalizationEpsilon {
		return 50, 50
	}

	first := round(100*a/total, 2)
	return first, round(100-first, 2)
}

func (p Profile) result(name string, score, raw float64, self, opponent map[string]float64, mc confidence.MatchupContext) confidence.Result {
	classification := confidence.Classify(score)
	labels := p.Labels
	if labels == (confidence.LabelSet{}) {
		labels = confidence.BalancedLabels
	}
	label := labels.Label(classification)

	rounded := make(map[string]float64, len(self))
	for key, value := range self {
		rounded[key] = round(value, 2)
	}

	phrases := p.reasons(self, opponent, mc)
	if len(phrases) == 0 {
		phrases = []string{p.fallbackPhrase()}
	}

	return confidence.Result{
		Name:           name,
		Score:          score,
		RawScore:       round(raw, 4),
		Classification: classification,
		Label:          label,
		Factors:        rounded,
		Reasoning:      fmt.Sprintf("%s shows %s with %s. DCI: %.1f", name, strings.ToLower(label), strings.Join(phrases, ", "), score),
	}
}

func defaultName(name, fallback string) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	return fallback
}
