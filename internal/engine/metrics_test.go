package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFullyCorrectSession(t *testing.T) {
	// "cat" finalized, "d" in progress against "dog", 6 seconds in.
	m := Compute([]string{"cat"}, []string{"cat", "dog"}, "d", 6*time.Second)

	assert.Equal(t, 5, m.TotalCharsTyped) // 3 + separator + 1
	assert.Equal(t, 4, m.CorrectChars)
	assert.Equal(t, 4, m.TotalChars)
	assert.InDelta(t, 100.0, m.Accuracy, 1e-9)
	assert.InDelta(t, 10.0, m.RawWPM, 1e-9)
	assert.InDelta(t, 10.0, m.NetWPM, 1e-9)
}

func TestComputeMismatchInFinalizedWord(t *testing.T) {
	m := Compute([]string{"cap"}, []string{"cat"}, "", time.Minute)

	assert.Equal(t, 2, m.CorrectChars)
	assert.Equal(t, 3, m.TotalChars)
}

func TestComputeMissingCharactersPenalizeTotal(t *testing.T) {
	// "ca" finalized against "cat": the missing 't' counts toward the total.
	m := Compute([]string{"ca"}, []string{"cat"}, "", time.Minute)

	assert.Equal(t, 2, m.CorrectChars)
	assert.Equal(t, 3, m.TotalChars)
}

func TestComputeExcessCharactersNeverCorrect(t *testing.T) {
	// "catxx" finalized against "cat": two extra chars inflate the total only.
	m := Compute([]string{"catxx"}, []string{"cat"}, "", time.Minute)
	assert.Equal(t, 3, m.CorrectChars)
	assert.Equal(t, 5, m.TotalChars)

	// Same rule for the in-progress word.
	m = Compute(nil, []string{"cat"}, "catx", time.Minute)
	assert.Equal(t, 3, m.CorrectChars)
	assert.Equal(t, 4, m.TotalChars)
}

func TestComputeInProgressComparedOnlyUpToTypedLength(t *testing.T) {
	m := Compute(nil, []string{"dog"}, "d", time.Minute)

	assert.Equal(t, 1, m.CorrectChars)
	assert.Equal(t, 1, m.TotalChars)
	assert.InDelta(t, 100.0, m.Accuracy, 1e-9)
}

func TestComputeEmptyInputIsPerfect(t *testing.T) {
	m := Compute(nil, []string{"cat"}, "", 0)

	assert.Equal(t, 0, m.TotalChars)
	assert.InDelta(t, 100.0, m.Accuracy, 1e-9)
	assert.Zero(t, m.RawWPM)
	assert.Zero(t, m.NetWPM)
}

func TestComputeNetNeverExceedsRaw(t *testing.T) {
	cases := []struct {
		history []string
		input   string
	}{
		{[]string{"cat", "dog"}, ""},
		{[]string{"cap", "dig"}, "xx"},
		{[]string{"wrong", "words"}, "entirely"},
		{nil, "q"},
	}
	targets := []string{"cat", "dog", "fish"}

	for _, tc := range cases {
		m := Compute(tc.history, targets, tc.input, 30*time.Second)
		assert.LessOrEqual(t, m.NetWPM, m.RawWPM)
		assert.GreaterOrEqual(t, m.Accuracy, 0.0)
		assert.LessOrEqual(t, m.Accuracy, 100.0)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	history := []string{"cap", "dog"}
	targets := []string{"cat", "dog", "fish"}

	first := Compute(history, targets, "fi", 42*time.Second)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Compute(history, targets, "fi", 42*time.Second))
	}
}
