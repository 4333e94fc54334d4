package confidence

import (
	"math"
	"testing"
)

func TestClassify_Boundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score float64
		want  Classification
	}{
		{0, PotentialUpset},
		{49.99, PotentialUpset},
		{50, EvenMatchup},
		{64.99, EvenMatchup},
		{65, Advantage},
		{84.99, Advantage},
		{85, DominantEdge},
		{100, DominantEdge},
	}
	for _, tc := range cases {
		if got := Classify(tc.score); got != tc.want {
			t.Fatalf("classify %.2f: got=%s want=%s", tc.score, got, tc.want)
		}
	}
}

func TestClassify_IsMonotonic(t *testing.T) {
	t.Parallel()

	prev := Classify(0).Rank()
	for score := 0.0; score <= 100; score += 0.05 {
		rank := Classify(score).Rank()
		if rank < prev {
			t.Fatalf("tier decreased at score=%.2f: rank=%d prev=%d", score, rank, prev)
		}
		if score >= DominantEdgeThreshold && rank != DominantEdge.Rank() {
			t.Fatalf("score %.2f should be dominant edge", score)
		}
		if score < EvenMatchupThreshold && rank != PotentialUpset.Rank() {
			t.Fatalf("score %.2f should be potential upset", score)
		}
		prev = rank
	}
}

func TestLabelSet_Label(t *testing.T) {
	t.Parallel()

	if got := TechnicalLabels.Label(Advantage); got != "Technical Advantage" {
		t.Fatalf("unexpected technical label %q", got)
	}
	if got := BalancedLabels.Label(EvenMatchup); got != "Balanced Matchup" {
		t.Fatalf("unexpected balanced label %q", got)
	}
}

func TestStatBundle_ValueFallsBackOnMissingOrNaN(t *testing.T) {
	t.Parallel()

	b := StatBundle{"power": 90, "broken": math.NaN()}
	if got := b.Value("power", 50); got != 90 {
		t.Fatalf("expected 90, got=%v", got)
	}
	if got := b.Value("speed", 50); got != 50 {
		t.Fatalf("expected fallback 50, got=%v", got)
	}
	if got := b.Value("broken", 10); got != 10 {
		t.Fatalf("expected fallback for NaN, got=%v", got)
	}
	var nilBundle StatBundle
	if got := nilBundle.Value("x", 7); got != 7 {
		t.Fatalf("expected fallback on nil bundle, got=%v", got)
	}
}
