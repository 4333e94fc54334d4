package scoring

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/riskibarqy/sports-intel/internal/domain/confidence"
	"github.com/riskibarqy/sports-intel/internal/domain/sport"
)

const mockSeedStream = 0x5eed

// MockStats generates an illustrative stat bundle for a named competitor. The PRNG is
// seeded from the FNV-1a hash of the normalized name, so the same name always yields
// the same bundle.
func (p Profile) MockStats(name string) confidence.StatBundle {
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(strings.ToLower(strings.TrimSpace(name))))
	rng := rand.New(rand.NewPCG(hasher.Sum64(), mockSeedStream))

	out := make(confidence.StatBundle, len(p.Mock))
	for _, item := range p.Mock {
		value := item.Min + rng.Float64()*(item.Max-item.Min)
		if item.Integer {
			value = math.Round(value)
		} else {
			value = round(value, 3)
		}
		out[item.Name] = value
	}
	return out
}

// MockCompetitor builds a competitor carrying generated stats for the sport.
func (e *Engine) MockCompetitor(s sport.Sport, name string) (confidence.Competitor, error) {
	profile, ok := e.profiles[s]
	if !ok {
		return confidence.Competitor{}, fmt.Errorf("%w: %s", ErrUnknownProfile, s)
	}
	return confidence.Competitor{Name: name, Stats: profile.MockStats(name)}, nil
}
