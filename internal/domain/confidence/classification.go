package confidence

type Classification string

const (
	DominantEdge   Classification = "dominant_edge"
	Advantage      Classification = "advantage"
	EvenMatchup    Classification = "even_matchup"
	PotentialUpset Classification = "potential_upset"
)

const (
	DominantEdgeThreshold = 85.0
	AdvantageThreshold    = 65.0
	EvenMatchupThreshold  = 50.0
)

// Classify maps a normalized score onto the four fixed tiers.
func Classify(score float64) Classification {
	switch {
	case score >= DominantEdgeThreshold:
		return DominantEdge
	case score >= AdvantageThreshold:
		return Advantage
	case score >= EvenMatchupThreshold:
		return EvenMatchup
	default:
		return PotentialUpset
	}
}

// Rank orders tiers from PotentialUpset (0) to DominantEdge (3).
func (c Classification) Rank() int {
	switch c {
	case DominantEdge:
		return 3
	case Advantage:
		return 2
	case EvenMatchup:
		return 1
	default:
		return 0
	}
}

// LabelSet is the human wording a sport uses for each tier.
type LabelSet struct {
	DominantEdge   string
	Advantage      string
	EvenMatchup    string
	PotentialUpset string
}

var (
	TechnicalLabels = LabelSet{
		DominantEdge:   "Dominant Edge",
		Advantage:      "Technical Advantage",
		EvenMatchup:    "Even Matchup",
		PotentialUpset: "Potential Upset",
	}
	BalancedLabels = LabelSet{
		DominantEdge:   "Dominant Edge",
		Advantage:      "Balanced Advantage",
		EvenMatchup:    "Balanced Matchup",
		PotentialUpset: "Potential Upset",
	}
)

func (l LabelSet) Label(c Classification) string {
	switch c {
	case DominantEdge:
		return l.DominantEdge
	case Advantage:
		return l.Advantage
	case EvenMatchup:
		return l.EvenMatchup
	default:
		return l.PotentialUpset
	}
}
