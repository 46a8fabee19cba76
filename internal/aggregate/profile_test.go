package aggregate

import (
	"testing"
	"time"

	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/keyboard"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ev(key, expected string, correct bool, timestamp, latency float64) models.KeystrokeEvent {
	return models.KeystrokeEvent{
		Key:       key,
		Timestamp: timestamp,
		Expected:  &expected,
		Correct:   &correct,
		LatencyMs: latency,
	}
}

func rawEv(key string, timestamp float64) models.KeystrokeEvent {
	return models.KeystrokeEvent{Key: key, Timestamp: timestamp}
}

func now() time.Time {
	return time.Date(2025, 6, 1, 3, 30, 0, 0, time.UTC)
}

func TestWeakKeyErrorRate(t *testing.T) {
	// Expected 'q' observed 5 times, 3 correct and 2 incorrect.
	events := []models.KeystrokeEvent{
		ev("q", "q", true, 0, 0),
		ev("q", "q", true, 100, 0),
		ev("w", "q", false, 200, 0),
		ev("q", "q", true, 300, 0),
		ev("e", "q", false, 400, 0),
	}

	profile := BuildProfile(1, events, now())
	require.Len(t, profile.WeakKeys, 1)
	assert.Equal(t, "q", profile.WeakKeys[0].Key)
	assert.InDelta(t, 40.0, profile.WeakKeys[0].ErrorRate, 1e-9)
	assert.Equal(t, 5, profile.WeakKeys[0].TotalAttempts)
}

func TestWeakKeysLowercaseAndSkipNilExpected(t *testing.T) {
	events := []models.KeystrokeEvent{
		ev("T", "T", true, 0, 0),
		ev("t", "t", false, 100, 0),
		rawEv("Backspace", 200), // no expectation, ignored for key tallies
	}

	profile := BuildProfile(1, events, now())
	require.Len(t, profile.WeakKeys, 1)
	assert.Equal(t, "t", profile.WeakKeys[0].Key)
	assert.Equal(t, 2, profile.WeakKeys[0].TotalAttempts)
}

func TestWeakBigramBothMustBeCorrect(t *testing.T) {
	// 't' correct then 'h' incorrect: bigram "th", 1 attempt, 0 correct.
	events := []models.KeystrokeEvent{
		ev("t", "t", true, 0, 0),
		ev("x", "h", false, 100, 0),
	}

	profile := BuildProfile(1, events, now())
	require.Len(t, profile.WeakBigrams, 1)
	assert.Equal(t, "th", profile.WeakBigrams[0].Bigram)
	assert.InDelta(t, 100.0, profile.WeakBigrams[0].ErrorRate, 1e-9)
}

func TestBigramSkipsPairsWithMissingExpectation(t *testing.T) {
	events := []models.KeystrokeEvent{
		ev("t", "t", true, 0, 0),
		rawEv("Backspace", 100),
		ev("h", "h", true, 200, 0),
	}

	profile := BuildProfile(1, events, now())
	assert.Empty(t, profile.WeakBigrams)
}

func TestWeakListsCappedAndSorted(t *testing.T) {
	var events []models.KeystrokeEvent
	ts := 0.0
	for c := 'a'; c <= 'z'; c++ {
		key := string(c)
		// Error count scales with the letter so rates differ.
		wrong := int(c-'a')%10 + 1
		for i := 0; i < 10; i++ {
			events = append(events, ev(key, key, i >= wrong, ts, 0))
			ts += 50
		}
	}

	profile := BuildProfile(1, events, now())
	assert.LessOrEqual(t, len(profile.WeakKeys), 20)
	assert.LessOrEqual(t, len(profile.WeakBigrams), 20)
	for i := 1; i < len(profile.WeakKeys); i++ {
		assert.GreaterOrEqual(t, profile.WeakKeys[i-1].ErrorRate, profile.WeakKeys[i].ErrorRate)
	}
	for i := 1; i < len(profile.WeakBigrams); i++ {
		assert.GreaterOrEqual(t, profile.WeakBigrams[i-1].ErrorRate, profile.WeakBigrams[i].ErrorRate)
	}
	for _, weak := range profile.WeakKeys {
		assert.GreaterOrEqual(t, weak.ErrorRate, 0.0)
		assert.LessOrEqual(t, weak.ErrorRate, 100.0)
	}
}

func TestFatigueBucketsSessionRelative(t *testing.T) {
	events := []models.KeystrokeEvent{
		ev("a", "a", true, 1000, 0),   // 0-15s
		ev("b", "b", true, 2000, 0),   // 0-15s
		ev("c", "c", false, 20000, 0), // 15-30s
		ev("d", "d", true, 99000, 0),  // 60s+ (clamped bucket)
	}

	profile := BuildProfile(1, events, now())
	buckets := profile.AccuracyByDurationBucket
	assert.InDelta(t, 100.0, buckets["0-15s"], 1e-9)
	assert.InDelta(t, 0.0, buckets["15-30s"], 1e-9)
	assert.InDelta(t, 100.0, buckets["30-60s"], 1e-9, "unsampled bucket defaults to 100")
	assert.InDelta(t, 100.0, buckets["60s+"], 1e-9)
}

func TestFatigueBucketsDefaultTo100(t *testing.T) {
	profile := BuildProfile(1, nil, now())
	for _, label := range models.DurationBuckets {
		assert.InDelta(t, 100.0, profile.AccuracyByDurationBucket[label], 1e-9)
	}
}

func TestFingerLatencyAverages(t *testing.T) {
	events := []models.KeystrokeEvent{
		ev("q", "q", true, 0, 0),     // zero latency excluded
		ev("q", "q", true, 100, 100), // left pinky
		ev("a", "a", true, 200, 300), // left pinky
		ev("j", "j", true, 300, 50),  // right index
	}

	profile := BuildProfile(1, events, now())
	assert.InDelta(t, 200.0, profile.AvgLatencyByFingerGroup[keyboard.LeftPinky], 1e-9)
	assert.InDelta(t, 50.0, profile.AvgLatencyByFingerGroup[keyboard.RightIndex], 1e-9)
}

func TestBuildProfileIsIdempotent(t *testing.T) {
	var events []models.KeystrokeEvent
	for i := 0; i < 200; i++ {
		key := string(rune('a' + i%26))
		events = append(events, ev(key, key, i%3 != 0, float64(i*75), float64(i%40)))
	}

	first := BuildProfile(42, events, now())
	for i := 0; i < 5; i++ {
		require.Equal(t, first, BuildProfile(42, events, now()))
	}
}

func TestDuplicateBatchesStayInRange(t *testing.T) {
	batch := []models.KeystrokeEvent{
		ev("q", "q", true, 0, 120),
		ev("u", "u", false, 100, 90),
	}
	// A retried flush stored twice: rates shift but never leave [0,100].
	events := append(append([]models.KeystrokeEvent{}, batch...), batch...)

	profile := BuildProfile(1, events, now())
	for _, weak := range profile.WeakKeys {
		assert.GreaterOrEqual(t, weak.ErrorRate, 0.0)
		assert.LessOrEqual(t, weak.ErrorRate, 100.0)
	}
	for _, weak := range profile.WeakBigrams {
		assert.GreaterOrEqual(t, weak.ErrorRate, 0.0)
		assert.LessOrEqual(t, weak.ErrorRate, 100.0)
	}
}
