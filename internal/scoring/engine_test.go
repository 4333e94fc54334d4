package scoring

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/riskibarqy/sports-intel/internal/domain/confidence"
	"github.com/riskibarqy/sports-intel/internal/domain/sport"
)

func TestBuiltinProfiles_CoverEveryKnownSport(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine()
	if err != nil {
		t.Fatalf("build engine: %v", err)
	}
	for _, s := range sport.All() {
		if _, ok := engine.Profile(s); !ok {
			t.Fatalf("missing profile for %s", s)
		}
	}
	if got := len(engine.Sports()); got != len(sport.All()) {
		t.Fatalf("expected %d profiles, got=%d", len(sport.All()), got)
	}
}

func TestCompute_BoxingScenarioFavoursPowerPuncher(t *testing.T) {
	t.Parallel()

	engine := MustNewEngine()
	fighterA := confidence.Competitor{
		Name: "Fighter A",
		Stats: confidence.StatBundle{
			"power_idx":   95,
			"speed_idx":   88,
			"stamina_idx": 75,
			"defense_idx": 82,
			"win_streak":  29,
			"reach_cm":    170,
			"age":         29,
			"ko_pct":      93.1,
		},
	}
	fighterB := confidence.Competitor{
		Name: "Fighter B",
		Stats: confidence.StatBundle{
			"power_idx":   72,
			"speed_idx":   92,
			"stamina_idx": 90,
			"defense_idx": 88,
			"win_streak":  31,
			"reach_cm":    178,
			"age":         25,
			"ko_pct":      48.4,
		},
	}

	matchup, err := engine.Compute(sport.Boxing, fighterA, fighterB, confidence.MatchupContext{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if matchup.One.Score <= 50 {
		t.Fatalf("expected fighter A above 50, got=%.2f (B=%.2f)", matchup.One.Score, matchup.Two.Score)
	}
	reasoning := matchup.One.Reasoning
	if !strings.Contains(reasoning, "power") && !strings.Contains(reasoning, "KO rate") {
		t.Fatalf("expected reasoning to mention power or KO rate, got %q", reasoning)
	}
	if !strings.Contains(reasoning, "high KO rate (93%)") {
		t.Fatalf("expected formatted KO rate phrase, got %q", reasoning)
	}
	if matchup.Favorite() != confidence.SideOne {
		t.Fatalf("expected side one favoured, got %q", matchup.Favorite())
	}
}

func TestCompute_PairAlwaysSumsToHundred(t *testing.T) {
	t.Parallel()

	engine := MustNewEngine()
	names := []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", ""}
	extremes := []confidence.StatBundle{
		{},
		{"win_pct": -5, "power_idx": 1e9, "ranking": 5000, "unforced_errors": 1e6},
		{"save_pct": math.NaN(), "win_streak": -3, "age": 90},
	}

	for _, s := range sport.All() {
		profile, _ := engine.Profile(s)
		for i, nameOne := range names {
			nameTwo := names[(i+1)%len(names)]
			one := confidence.Competitor{Name: nameOne, Stats: profile.MockStats(nameOne)}
			two := confidence.Competitor{Name: nameTwo, Stats: profile.MockStats(nameTwo)}
			assertNormalizedPair(t, engine, s, one, two, confidence.MatchupContext{Home: confidence.SideOne, Surface: "clay"})
		}
		for _, bundle := range extremes {
			one := confidence.Competitor{Name: "X", Stats: bundle}
			two := confidence.Competitor{Name: "Y", Stats: profile.MockStats("Y")}
			assertNormalizedPair(t, engine, s, one, two, confidence.MatchupContext{})
		}
	}
}

func assertNormalizedPair(t *testing.T, engine *Engine, s sport.Sport, one, two confidence.Competitor, mc confidence.MatchupContext) {
	t.Helper()

	matchup, err := engine.Compute(s, one, two, mc)
	if err != nil {
		t.Fatalf("compute %s: %v", s, err)
	}
	sum := matchup.One.Score + matchup.Two.Score
	if math.Abs(sum-100) > 0.01 {
		t.Fatalf("%s: scores %.4f + %.4f = %.4f, want 100", s, matchup.One.Score, matchup.Two.Score, sum)
	}
	for _, score := range []float64{matchup.One.Score, matchup.Two.Score} {
		if score < 0 || score > 100 {
			t.Fatalf("%s: score %.4f out of range", s, score)
		}
	}
	if matchup.One.Classification != confidence.Classify(matchup.One.Score) {
		t.Fatalf("%s: classification mismatch for %.2f", s, matchup.One.Score)
	}
	if strings.TrimSpace(matchup.One.Reasoning) == "" || strings.TrimSpace(matchup.Two.Reasoning) == "" {
		t.Fatalf("%s: expected reasoning text", s)
	}
}

func TestCompute_IdenticalCompetitorsSplitEvenly(t *testing.T) {
	t.Parallel()

	engine := MustNewEngine()
	for _, s := range sport.All() {
		profile, _ := engine.Profile(s)
		stats := profile.MockStats("Mirror")
		matchup, err := engine.Compute(s,
			confidence.Competitor{Name: "Left", Stats: stats},
			confidence.Competitor{Name: "Right", Stats: stats.Clone()},
			confidence.MatchupContext{},
		)
		if err != nil {
			t.Fatalf("compute %s: %v", s, err)
		}
		if matchup.One.Score != 50 || matchup.Two.Score != 50 {
			t.Fatalf("%s: expected 50/50, got %.2f/%.2f", s, matchup.One.Score, matchup.Two.Score)
		}
		if matchup.One.Classification != confidence.EvenMatchup || matchup.Two.Classification != confidence.EvenMatchup {
			t.Fatalf("%s: expected even matchup, got %s/%s", s, matchup.One.Classification, matchup.Two.Classification)
		}
	}
}

func TestCompute_HomeContextTiltsIdenticalTeams(t *testing.T) {
	t.Parallel()

	engine := MustNewEngine()
	stats := confidence.StatBundle{"home_win_pct": 65, "away_win_pct": 40}
	matchup, err := engine.Compute(sport.NHL,
		confidence.Competitor{Name: "Home", Stats: stats},
		confidence.Competitor{Name: "Away", Stats: stats.Clone()},
		confidence.MatchupContext{Home: confidence.SideOne},
	)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if matchup.One.Score <= matchup.Two.Score {
		t.Fatalf("expected home side ahead, got %.2f vs %.2f", matchup.One.Score, matchup.Two.Score)
	}
	if !strings.Contains(matchup.One.Reasoning, "home ice advantage") {
		t.Fatalf("expected home ice phrase, got %q", matchup.One.Reasoning)
	}
}

func TestCompute_TennisSurfacePhraseUsesContext(t *testing.T) {
	t.Parallel()

	engine := MustNewEngine()
	matchup, err := engine.Compute(sport.Tennis,
		confidence.Competitor{Name: "Clay Specialist", Stats: confidence.StatBundle{"clay_win_pct": 82}},
		confidence.Competitor{Name: "Opponent", Stats: confidence.StatBundle{}},
		confidence.MatchupContext{Surface: "Clay"},
	)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if !strings.Contains(matchup.One.Reasoning, "strong clay court record") {
		t.Fatalf("expected surface phrase, got %q", matchup.One.Reasoning)
	}
	if got := matchup.One.Factors["surface_win_rate"]; got != 82 {
		t.Fatalf("expected surface_win_rate=82, got=%v", got)
	}
}

func TestCompute_PercentStatsKeepTheirUnit(t *testing.T) {
	t.Parallel()

	engine := MustNewEngine()
	matchup, err := engine.Compute(sport.Boxing,
		confidence.Competitor{Name: "Light Hitter", Stats: confidence.StatBundle{"ko_pct": 1}},
		confidence.Competitor{Name: "Puncher", Stats: confidence.StatBundle{"ko_pct": 40}},
		confidence.MatchupContext{},
	)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if one, two := matchup.One.Factors["ko_rate"], matchup.Two.Factors["ko_rate"]; one != 1 || two != 40 {
		t.Fatalf("expected ko_rate 1 vs 40, got=%v vs %v", one, two)
	}
	if matchup.One.Score >= matchup.Two.Score {
		t.Fatalf("expected 1%% KO rate to trail 40%%, got=%.2f vs %.2f", matchup.One.Score, matchup.Two.Score)
	}

	nba, err := engine.Compute(sport.NBA,
		confidence.Competitor{Name: "Home", Stats: confidence.StatBundle{"win_pct": 0.62}},
		confidence.Competitor{Name: "Away", Stats: confidence.StatBundle{"win_pct": 1}},
		confidence.MatchupContext{},
	)
	if err != nil {
		t.Fatalf("compute nba: %v", err)
	}
	if got := nba.One.Factors["win_percentage"]; math.Abs(got-62) > 1e-9 {
		t.Fatalf("expected win_percentage=62, got=%v", got)
	}
	if got := nba.Two.Factors["win_percentage"]; got != 100 {
		t.Fatalf("expected win_percentage=100, got=%v", got)
	}
}

func TestCompute_ReasoningFallsBackWhenNothingTriggers(t *testing.T) {
	t.Parallel()

	flat := func(in Inputs) float64 { return 40 }
	profile := Profile{
		Sport: sport.Golf,
		Factors: []Factor{
			{Name: "a", Weight: 0.2, Extract: flat},
			{Name: "b", Weight: 0.2, Extract: flat},
			{Name: "c", Weight: 0.2, Extract: flat},
			{Name: "d", Weight: 0.2, Extract: flat},
			{Name: "e", Weight: 0.1, Extract: flat},
			{Name: "f", Weight: 0.1, Extract: flat},
		},
		Triggers: []Trigger{Above("a", 90, "never")},
	}
	engine, err := NewEngine(profile)
	if err != nil {
		t.Fatalf("build engine: %v", err)
	}

	matchup, err := engine.Compute(sport.Golf, confidence.Competitor{Name: "P1"}, confidence.Competitor{Name: "P2"}, confidence.MatchupContext{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	want := "P1 shows balanced matchup with balanced skillset. DCI: 50.0"
	if matchup.One.Reasoning != want {
		t.Fatalf("unexpected reasoning:\n got=%q\nwant=%q", matchup.One.Reasoning, want)
	}
}

func TestCompute_UnknownSport(t *testing.T) {
	t.Parallel()

	engine := MustNewEngine()
	_, err := engine.Compute(sport.Sport("curling"), confidence.Competitor{}, confidence.Competitor{}, confidence.MatchupContext{})
	if !errors.Is(err, ErrUnknownProfile) {
		t.Fatalf("expected ErrUnknownProfile, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		one, two float64
		wantOne  float64
		wantTwo  float64
	}{
		{name: "both zero", one: 0, two: 0, wantOne: 50, wantTwo: 50},
		{name: "cancelling near zero", one: -1e-12, two: 1e-12, wantOne: 50, wantTwo: 50},
		{name: "positive split", one: 75, two: 25, wantOne: 75, wantTwo: 25},
		{name: "negative magnitude", one: -30, two: 10, wantOne: 75, wantTwo: 25},
		{name: "thirds", one: 1, two: 2, wantOne: 33.33, wantTwo: 66.67},
	}
	for _, tc := range cases {
		gotOne, gotTwo := Normalize(tc.one, tc.two)
		if math.Abs(gotOne-tc.wantOne) > 1e-9 || math.Abs(gotTwo-tc.wantTwo) > 1e-9 {
			t.Fatalf("%s: got %.4f/%.4f want %.4f/%.4f", tc.name, gotOne, gotTwo, tc.wantOne, tc.wantTwo)
		}
	}
}

func TestProfileValidate_RejectsBrokenTables(t *testing.T) {
	t.Parallel()

	base := boxingProfile()

	heavy := base
	heavy.Factors = append([]Factor(nil), base.Factors...)
	heavy.Factors[0].Weight = 0.9
	if err := heavy.Validate(); err == nil {
		t.Fatalf("expected weight sum error")
	}

	short := base
	short.Factors = base.Factors[:3]
	short.Triggers = nil
	if err := short.Validate(); err == nil {
		t.Fatalf("expected factor count error")
	}

	dangling := base
	dangling.Triggers = []Trigger{Above("missing", 1, "x")}
	if err := dangling.Validate(); err == nil {
		t.Fatalf("expected unknown trigger factor error")
	}
}

func TestMockStats_DeterministicPerName(t *testing.T) {
	t.Parallel()

	profile := boxingProfile()
	first := profile.MockStats("Canelo Alvarez")
	second := profile.MockStats("  canelo alvarez ")
	if len(first) != len(profile.Mock) {
		t.Fatalf("expected %d stats, got=%d", len(profile.Mock), len(first))
	}
	for key, value := range first {
		if second[key] != value {
			t.Fatalf("stat %s differs between calls: %v vs %v", key, value, second[key])
		}
	}

	other := profile.MockStats("Dmitry Bivol")
	same := true
	for key, value := range first {
		if other[key] != value {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("expected different names to produce different bundles")
	}

	for _, item := range profile.Mock {
		value := first[item.Name]
		if value < item.Min || value > item.Max {
			t.Fatalf("stat %s=%v outside [%v, %v]", item.Name, value, item.Min, item.Max)
		}
	}
}
