// Package content synthesizes practice word sequences, optionally biased by
// a user's weakness profile.
package content

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Pools are the static word lookup tables, loaded once at startup: a
// balanced neutral pool plus per-key and per-bigram focus pools.
type Pools struct {
	Neutral []string            `yaml:"neutral"`
	Keys    map[string][]string `yaml:"keys"`
	Bigrams map[string][]string `yaml:"bigrams"`
}

// LoadPools reads and parses the word-pool YAML file.
func LoadPools(path string) (*Pools, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word pool file: %w", err)
	}

	var pools Pools
	if err := yaml.Unmarshal(data, &pools); err != nil {
		return nil, fmt.Errorf("failed to unmarshal word pool YAML: %w", err)
	}
	if len(pools.Neutral) == 0 {
		return nil, fmt.Errorf("word pool file %s has an empty neutral pool", path)
	}
	return &pools, nil
}

// ForKey returns the focus pool for a weak key, falling back to a
// deterministic repetition pattern when the table has no entry.
func (p *Pools) ForKey(key string) []string {
	if words, ok := p.Keys[key]; ok && len(words) > 0 {
		return words
	}
	return syntheticPool(key)
}

// ForBigram returns the focus pool for a weak bigram, with the same
// synthetic fallback as ForKey.
func (p *Pools) ForBigram(bigram string) []string {
	if words, ok := p.Bigrams[bigram]; ok && len(words) > 0 {
		return words
	}
	return syntheticPool(bigram)
}

// NeutralByDifficulty filters the neutral pool by word length. Unknown
// difficulties get the whole pool.
func (p *Pools) NeutralByDifficulty(difficulty string) []string {
	var maxLen int
	switch difficulty {
	case "easy":
		maxLen = 4
	case "medium":
		maxLen = 7
	default:
		return p.Neutral
	}
	filtered := make([]string, 0, len(p.Neutral))
	for _, word := range p.Neutral {
		if len(word) <= maxLen {
			filtered = append(filtered, word)
		}
	}
	if len(filtered) == 0 {
		return p.Neutral
	}
	return filtered
}

// syntheticPool builds repetition drills for keys/bigrams missing from the
// tables, e.g. "q" -> [qq qqq qqqq], "th" -> [thth ththth thththth].
func syntheticPool(fragment string) []string {
	if fragment == "" {
		return nil
	}
	words := make([]string, 0, 3)
	for n := 2; n <= 4; n++ {
		words = append(words, strings.Repeat(fragment, n))
	}
	return words
}
