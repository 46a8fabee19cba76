// Package aggregate turns stored keystroke telemetry into per-user weakness
// profiles.
package aggregate

import (
	"sort"
	"strings"
	"time"

	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/keyboard"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/models"
)

const (
	topWeakLimit   = 20
	bucketWidthMs  = 15000
	durationBucket = 4
)

type tally struct {
	correct int
	total   int
}

func (t tally) errorRate() float64 {
	if t.total == 0 {
		return 0
	}
	return float64(t.total-t.correct) / float64(t.total) * 100
}

// BuildProfile computes a replacement weakness profile from a flattened
// event stream. Events keep their per-batch order; adjacency across batch
// seams is approximate and deliberately not repaired by a global time sort.
// Tie-breaks are lexicographic so an unchanged window reproduces the exact
// same profile.
func BuildProfile(userID uint, events []models.KeystrokeEvent, now time.Time) *models.WeaknessProfile {
	keys := make(map[string]*tally)
	bigrams := make(map[string]*tally)
	buckets := make([]tally, durationBucket)
	latencySums := make(map[string]float64)
	latencyCounts := make(map[string]int)

	eventCorrect := func(ev models.KeystrokeEvent) bool {
		return ev.Correct != nil && *ev.Correct
	}

	for i, ev := range events {
		if ev.Expected != nil {
			key := strings.ToLower(*ev.Expected)
			t := keys[key]
			if t == nil {
				t = &tally{}
				keys[key] = t
			}
			t.total++
			if eventCorrect(ev) {
				t.correct++
			}

			// Fatigue bucket by session-relative elapsed time.
			idx := int(ev.Timestamp) / bucketWidthMs
			if idx < 0 {
				idx = 0
			}
			if idx >= durationBucket {
				idx = durationBucket - 1
			}
			buckets[idx].total++
			if eventCorrect(ev) {
				buckets[idx].correct++
			}

			if i+1 < len(events) && events[i+1].Expected != nil {
				next := events[i+1]
				bigram := key + strings.ToLower(*next.Expected)
				t := bigrams[bigram]
				if t == nil {
					t = &tally{}
					bigrams[bigram] = t
				}
				t.total++
				if eventCorrect(ev) && eventCorrect(next) {
					t.correct++
				}
			}
		}

		if ev.LatencyMs > 0 {
			for _, r := range ev.Key {
				if group, ok := keyboard.FingerGroup(r); ok {
					latencySums[group] += ev.LatencyMs
					latencyCounts[group]++
				}
				break
			}
		}
	}

	profile := &models.WeaknessProfile{
		UserID:                   userID,
		WeakKeys:                 topWeakKeys(keys),
		WeakBigrams:              topWeakBigrams(bigrams),
		AccuracyByDurationBucket: bucketAccuracy(buckets),
		AvgLatencyByFingerGroup:  models.FloatMap{},
		GeneratedAt:              now,
	}
	for group, sum := range latencySums {
		profile.AvgLatencyByFingerGroup[group] = sum / float64(latencyCounts[group])
	}
	return profile
}

func topWeakKeys(keys map[string]*tally) models.WeakKeyList {
	list := make(models.WeakKeyList, 0, len(keys))
	for key, t := range keys {
		list = append(list, models.WeakKey{
			Key:           key,
			ErrorRate:     t.errorRate(),
			TotalAttempts: t.total,
		})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].ErrorRate == list[j].ErrorRate {
			return list[i].Key < list[j].Key
		}
		return list[i].ErrorRate > list[j].ErrorRate
	})
	if len(list) > topWeakLimit {
		list = list[:topWeakLimit]
	}
	return list
}

func topWeakBigrams(bigrams map[string]*tally) models.WeakBigramList {
	list := make(models.WeakBigramList, 0, len(bigrams))
	for bigram, t := range bigrams {
		list = append(list, models.WeakBigram{
			Bigram:    bigram,
			ErrorRate: t.errorRate(),
		})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].ErrorRate == list[j].ErrorRate {
			return list[i].Bigram < list[j].Bigram
		}
		return list[i].ErrorRate > list[j].ErrorRate
	})
	if len(list) > topWeakLimit {
		list = list[:topWeakLimit]
	}
	return list
}

// bucketAccuracy averages correctness per duration bucket, defaulting to
// 100% where nothing was sampled.
func bucketAccuracy(buckets []tally) models.FloatMap {
	out := models.FloatMap{}
	for i, label := range models.DurationBuckets {
		if buckets[i].total == 0 {
			out[label] = 100
			continue
		}
		out[label] = float64(buckets[i].correct) / float64(buckets[i].total) * 100
	}
	return out
}
