package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Duration-bucket labels used for fatigue accuracy.
var DurationBuckets = []string{"0-15s", "15-30s", "30-60s", "60s+"}

// WeakKey is one error-prone expected character.
type WeakKey struct {
	Key           string  `json:"key"`
	ErrorRate     float64 `json:"errorRate"`
	TotalAttempts int     `json:"totalAttempts"`
}

// WeakBigram is one error-prone pair of adjacent expected characters.
type WeakBigram struct {
	Bigram    string  `json:"bigram"`
	ErrorRate float64 `json:"errorRate"`
}

// WeaknessProfile is the per-user aggregation output. Each aggregation run
// replaces the whole row; nothing is merged.
type WeaknessProfile struct {
	UserID                   uint `gorm:"primaryKey"`
	WeakKeys                 WeakKeyList
	WeakBigrams              WeakBigramList
	AccuracyByDurationBucket FloatMap
	AvgLatencyByFingerGroup  FloatMap
	GeneratedAt              time.Time
}

type WeakKeyList []WeakKey

func (l WeakKeyList) Value() (driver.Value, error) { return json.Marshal(l) }
func (l *WeakKeyList) Scan(src interface{}) error  { return scanJSON(l, src) }
func (WeakKeyList) GormDataType() string           { return "jsonb" }

type WeakBigramList []WeakBigram

func (l WeakBigramList) Value() (driver.Value, error) { return json.Marshal(l) }
func (l *WeakBigramList) Scan(src interface{}) error  { return scanJSON(l, src) }
func (WeakBigramList) GormDataType() string           { return "jsonb" }

type FloatMap map[string]float64

func (m FloatMap) Value() (driver.Value, error) { return json.Marshal(m) }
func (m *FloatMap) Scan(src interface{}) error  { return scanJSON(m, src) }
func (FloatMap) GormDataType() string           { return "jsonb" }
