package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

// Sample is one point of the per-session WPM time series, recorded on each
// engine timer tick. ErrorMarker is set when the cumulative error count
// strictly increased versus the previous sample.
type Sample struct {
	ElapsedSeconds float64 `json:"elapsedSeconds"`
	RawWPM         float64 `json:"rawWpm"`
	NetWPM         float64 `json:"netWpm"`
	Errors         int     `json:"errors"`
	ErrorMarker    bool    `json:"errorMarker"`
}

// SessionResult is the stored summary of a completed test session.
type SessionResult struct {
	ID        uint   `gorm:"primaryKey"`
	SessionID string `gorm:"uniqueIndex"`
	UserID    *uint  `gorm:"index"`
	Mode      string
	Target    int
	RawWPM    float64
	NetWPM    float64
	Accuracy  float64
	History   pq.StringArray `gorm:"type:text[]"`
	Samples   SampleList
	IdleMs    int64
	StartedAt time.Time
	EndedAt   time.Time
	CreatedAt time.Time
}

type SampleList []Sample

func (l SampleList) Value() (driver.Value, error) { return json.Marshal(l) }
func (l *SampleList) Scan(src interface{}) error  { return scanJSON(l, src) }
func (SampleList) GormDataType() string           { return "jsonb" }
