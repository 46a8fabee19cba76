package engine

import (
	"time"

	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/models"
)

// Sink receives flushed keystroke batches. Implementations must not block
// the caller; delivery failures never affect local metric computation.
type Sink interface {
	Send(payload models.BatchPayload)
}

const (
	defaultFlushSize     = 50
	defaultFlushInterval = 2000 * time.Millisecond
)

// recorder buffers keystroke events and flushes them to the sink when the
// buffer reaches the flush size, the flush timer elapses, or the session
// completes.
type recorder struct {
	sessionID     string
	userID        *uint
	sink          Sink
	buf           []models.KeystrokeEvent
	flushSize     int
	flushInterval time.Duration
	lastFlush     time.Time
}

func newRecorder(sessionID string, userID *uint, sink Sink, flushSize int, flushInterval time.Duration) *recorder {
	if flushSize <= 0 {
		flushSize = defaultFlushSize
	}
	if flushInterval <= 0 {
		flushInterval = defaultFlushInterval
	}
	return &recorder{
		sessionID:     sessionID,
		userID:        userID,
		sink:          sink,
		flushSize:     flushSize,
		flushInterval: flushInterval,
	}
}

func (r *recorder) start(now time.Time) {
	r.lastFlush = now
}

func (r *recorder) record(ev models.KeystrokeEvent) {
	r.buf = append(r.buf, ev)
	if len(r.buf) >= r.flushSize {
		r.flush()
	}
}

func (r *recorder) tick(now time.Time) {
	if len(r.buf) > 0 && now.Sub(r.lastFlush) >= r.flushInterval {
		r.flush()
		r.lastFlush = now
	}
}

// close performs the final flush on session completion.
func (r *recorder) close() {
	r.flush()
}

func (r *recorder) reset(sessionID string) {
	r.sessionID = sessionID
	r.buf = nil
	r.lastFlush = time.Time{}
}

func (r *recorder) flush() {
	if len(r.buf) == 0 || r.sink == nil {
		r.buf = nil
		return
	}
	events := make([]models.KeystrokeEvent, len(r.buf))
	copy(events, r.buf)
	r.buf = r.buf[:0]

	r.sink.Send(models.BatchPayload{
		SessionID: r.sessionID,
		UserID:    r.userID,
		Events:    events,
	})
}
