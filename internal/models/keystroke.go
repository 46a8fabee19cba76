package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// KeystrokeEvent is a single recorded keypress. Timestamp and LatencyMs are
// session-relative elapsed milliseconds; Expected and Correct are nil for
// non-printing keys (backspace, modifiers).
type KeystrokeEvent struct {
	Key       string  `json:"key"`
	Timestamp float64 `json:"timestamp"`
	Expected  *string `json:"expected"`
	Correct   *bool   `json:"correct"`
	Position  int     `json:"position"`
	LatencyMs float64 `json:"latencyMs"`
}

// KeystrokeBatch is one stored flush from a test session. Rows are
// append-only: a retried flush is stored again, never deduplicated. The
// (user_id, received_at DESC) window index is created in the migration
// step, not here.
type KeystrokeBatch struct {
	ID         string `gorm:"primaryKey;type:uuid"`
	SessionID  string `gorm:"index:idx_batches_session"`
	UserID     *uint
	Events     EventList
	ReceivedAt time.Time
}

// BatchPayload is the wire shape accepted by the ingestion endpoint.
type BatchPayload struct {
	SessionID string           `json:"sessionId"`
	UserID    *uint            `json:"userId"`
	Events    []KeystrokeEvent `json:"events"`
}

// EventList stores the ordered events of a batch as a JSONB column.
type EventList []KeystrokeEvent

func (l EventList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *EventList) Scan(src interface{}) error {
	return scanJSON(l, src)
}

func (EventList) GormDataType() string { return "jsonb" }

func scanJSON(dst interface{}, src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}
