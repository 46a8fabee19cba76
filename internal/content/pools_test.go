package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePoolFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pools.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadPools(t *testing.T) {
	path := writePoolFile(t, `
neutral: [cat, house, between]
keys:
  q: [quick, quiet]
bigrams:
  th: [think, there]
`)

	pools, err := LoadPools(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "house", "between"}, pools.Neutral)
	assert.Equal(t, []string{"quick", "quiet"}, pools.Keys["q"])
	assert.Equal(t, []string{"think", "there"}, pools.Bigrams["th"])
}

func TestLoadPoolsRejectsEmptyNeutral(t *testing.T) {
	path := writePoolFile(t, "keys:\n  q: [quick]\n")

	_, err := LoadPools(path)
	assert.Error(t, err)
}

func TestLoadPoolsMissingFile(t *testing.T) {
	_, err := LoadPools(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
