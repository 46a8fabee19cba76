package content

import (
	"math/rand"
	"time"

	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/models"
)

const (
	defaultWeakProbability = 0.6
	defaultTopWeaknesses   = 5
)

// Generator produces practice word sequences. Without a profile it samples
// the neutral pool uniformly; with one, each position draws from a
// round-robin choice among the top weaknesses with probability weakProb.
type Generator struct {
	pools    *Pools
	rnd      *rand.Rand
	weakProb float64
	topN     int
}

func NewGenerator(pools *Pools, weakProb float64, topN int) *Generator {
	return NewGeneratorWithRand(pools, weakProb, topN,
		rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewGeneratorWithRand allows a seeded source for reproducible output.
func NewGeneratorWithRand(pools *Pools, weakProb float64, topN int, rnd *rand.Rand) *Generator {
	if weakProb <= 0 || weakProb > 1 {
		weakProb = defaultWeakProbability
	}
	if topN <= 0 {
		topN = defaultTopWeaknesses
	}
	return &Generator{pools: pools, rnd: rnd, weakProb: weakProb, topN: topN}
}

// Generate returns exactly count words regardless of profile richness.
func (g *Generator) Generate(count int, difficulty string, profile *models.WeaknessProfile) []string {
	if count <= 0 {
		return []string{}
	}

	neutral := g.pools.NeutralByDifficulty(difficulty)
	focus := g.focusPools(profile)

	words := make([]string, 0, count)
	next := 0
	for i := 0; i < count; i++ {
		pool := neutral
		if len(focus) > 0 && g.rnd.Float64() < g.weakProb {
			pool = focus[next%len(focus)]
			next++
		}
		words = append(words, pool[g.rnd.Intn(len(pool))])
	}

	g.rnd.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
	return words
}

// focusPools resolves the profile's top weak keys and bigrams to word
// pools. A nil or empty profile yields none, which degrades Generate to
// uniform neutral sampling.
func (g *Generator) focusPools(profile *models.WeaknessProfile) [][]string {
	if profile == nil {
		return nil
	}
	var pools [][]string
	for i, weak := range profile.WeakKeys {
		if i >= g.topN {
			break
		}
		if pool := g.pools.ForKey(weak.Key); len(pool) > 0 {
			pools = append(pools, pool)
		}
	}
	for i, weak := range profile.WeakBigrams {
		if i >= g.topN {
			break
		}
		if pool := g.pools.ForBigram(weak.Bigram); len(pool) > 0 {
			pools = append(pools, pool)
		}
	}
	return pools
}
