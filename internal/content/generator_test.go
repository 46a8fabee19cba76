package content

import (
	"math/rand"
	"testing"

	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPools() *Pools {
	return &Pools{
		Neutral: []string{"neutral"},
		Keys: map[string][]string{
			"q": {"qword"},
		},
		Bigrams: map[string][]string{
			"th": {"thword"},
		},
	}
}

func seeded() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func profileWithWeakKey(key string) *models.WeaknessProfile {
	return &models.WeaknessProfile{
		WeakKeys: models.WeakKeyList{{Key: key, ErrorRate: 50, TotalAttempts: 10}},
	}
}

func TestGenerateExactCountWithoutProfile(t *testing.T) {
	g := NewGeneratorWithRand(testPools(), 0.6, 5, seeded())

	for _, count := range []int{1, 10, 137} {
		words := g.Generate(count, "", nil)
		require.Len(t, words, count)
		for _, word := range words {
			assert.Equal(t, "neutral", word)
		}
	}
}

func TestGenerateExactCountWithProfile(t *testing.T) {
	g := NewGeneratorWithRand(testPools(), 0.6, 5, seeded())
	profile := &models.WeaknessProfile{
		WeakKeys:    models.WeakKeyList{{Key: "q", ErrorRate: 80}},
		WeakBigrams: models.WeakBigramList{{Bigram: "th", ErrorRate: 60}},
	}

	for _, count := range []int{1, 10, 137} {
		words := g.Generate(count, "", profile)
		require.Len(t, words, count)
		for _, word := range words {
			assert.Contains(t, []string{"neutral", "qword", "thword"}, word)
		}
	}
}

func TestGenerateZeroOrNegativeCount(t *testing.T) {
	g := NewGeneratorWithRand(testPools(), 0.6, 5, seeded())
	assert.Empty(t, g.Generate(0, "", nil))
	assert.Empty(t, g.Generate(-3, "", nil))
}

func TestGenerateWeakDrawSplit(t *testing.T) {
	// Over many draws the weak-pool share converges on the configured 0.6.
	g := NewGeneratorWithRand(testPools(), 0.6, 5, seeded())
	profile := profileWithWeakKey("q")

	const total = 20000
	weak := 0
	words := g.Generate(total, "", profile)
	for _, word := range words {
		if word == "qword" {
			weak++
		}
	}
	share := float64(weak) / float64(total)
	assert.InDelta(t, 0.6, share, 0.02)
}

func TestGenerateRoundRobinAcrossWeaknesses(t *testing.T) {
	g := NewGeneratorWithRand(testPools(), 1.0, 5, seeded())
	profile := &models.WeaknessProfile{
		WeakKeys:    models.WeakKeyList{{Key: "q"}},
		WeakBigrams: models.WeakBigramList{{Bigram: "th"}},
	}

	words := g.Generate(100, "", profile)
	counts := map[string]int{}
	for _, word := range words {
		counts[word]++
	}
	assert.Equal(t, 50, counts["qword"])
	assert.Equal(t, 50, counts["thword"])
}

func TestGenerateSyntheticFallbackForUnknownWeakness(t *testing.T) {
	g := NewGeneratorWithRand(testPools(), 1.0, 5, seeded())
	profile := profileWithWeakKey("z")

	words := g.Generate(20, "", profile)
	require.Len(t, words, 20)
	for _, word := range words {
		assert.Contains(t, []string{"zz", "zzz", "zzzz"}, word)
	}
}

func TestGenerateTopNLimitsWeaknesses(t *testing.T) {
	g := NewGeneratorWithRand(testPools(), 1.0, 1, seeded())
	profile := &models.WeaknessProfile{
		WeakKeys: models.WeakKeyList{
			{Key: "q", ErrorRate: 90},
			{Key: "z", ErrorRate: 10},
		},
	}

	// topN=1 keeps only the worst key; the "z" drills never appear.
	words := g.Generate(50, "", profile)
	for _, word := range words {
		assert.Equal(t, "qword", word)
	}
}

func TestSyntheticPoolPattern(t *testing.T) {
	assert.Equal(t, []string{"thth", "ththth", "thththth"}, syntheticPool("th"))
	assert.Empty(t, syntheticPool(""))
}

func TestNeutralByDifficulty(t *testing.T) {
	pools := &Pools{Neutral: []string{"cat", "house", "between"}}

	assert.Equal(t, []string{"cat"}, pools.NeutralByDifficulty("easy"))
	assert.Equal(t, []string{"cat", "house"}, pools.NeutralByDifficulty("medium"))
	assert.Equal(t, pools.Neutral, pools.NeutralByDifficulty("hard"))
	assert.Equal(t, pools.Neutral, pools.NeutralByDifficulty(""))
}

func TestNeutralByDifficultyNeverEmpty(t *testing.T) {
	pools := &Pools{Neutral: []string{"extraordinary"}}
	assert.Equal(t, pools.Neutral, pools.NeutralByDifficulty("easy"))
}
