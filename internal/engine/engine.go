// Package engine implements the live typing test session: a single-threaded
// state machine fed by keystroke and timer callbacks that produces
// deterministic speed and accuracy metrics as the user types.
package engine

import (
	"strings"
	"time"

	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/models"

	"github.com/google/uuid"
)

type State int

const (
	StateIdle State = iota
	StateActive
	StateCompleted
)

type Mode string

const (
	ModeTime  Mode = "time"  // Target is seconds
	ModeWords Mode = "words" // Target is a word count
)

const (
	// Separator finalizes the current word.
	Separator = ' '

	// Refill kicks in when fewer than this many words of lookahead remain
	// during a time-boxed session.
	lookaheadMin = 20
	refillCount  = 50

	// No input or pointer activity for this long flags the session idle.
	idleThreshold = 5 * time.Second
)

// Options configures a new session. Clock defaults to time.Now; Supply and
// Sink may be nil (the local fallback pool and a discarding recorder are
// used respectively).
type Options struct {
	Mode          Mode
	Target        int
	Difficulty    string
	Words         []string
	UserID        *uint
	Supply        WordSupply
	Sink          Sink
	Clock         func() time.Time
	FlushSize     int
	FlushInterval time.Duration
}

// Session is a single typing test. All methods must be called from one
// goroutine; the only concurrency inside is the lookahead refill, which
// hands results back through a channel drained on the next callback.
type Session struct {
	id         string
	mode       Mode
	target     int
	difficulty string
	clock      func() time.Time

	state   State
	words   []string
	index   int
	input   []rune
	history []string

	startedAt    time.Time
	endedAt      time.Time
	lastActivity time.Time
	lastKeyAt    time.Time
	idleAccum    time.Duration

	samples    []models.Sample
	lastErrors int

	supply    WordSupply
	refillCh  chan []string
	refilling bool

	rec *recorder
}

// New creates an Idle session over the given corpus.
func New(opts Options) *Session {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	words := opts.Words
	if len(words) == 0 {
		words = FallbackWords(refillCount)
	}
	s := &Session{
		id:         uuid.NewString(),
		mode:       opts.Mode,
		target:     opts.Target,
		difficulty: opts.Difficulty,
		clock:      clock,
		words:      words,
		supply:     opts.Supply,
		refillCh:   make(chan []string, 1),
	}
	s.rec = newRecorder(s.id, opts.UserID, opts.Sink, opts.FlushSize, opts.FlushInterval)
	return s
}

func (s *Session) ID() string          { return s.id }
func (s *Session) State() State        { return s.state }
func (s *Session) History() []string   { return s.history }
func (s *Session) Words() []string     { return s.words }
func (s *Session) Input() string       { return string(s.input) }
func (s *Session) StartedAt() time.Time { return s.startedAt }
func (s *Session) EndedAt() time.Time  { return s.endedAt }

// IdleTime reports the accumulated AFK time. It is telemetry only: the WPM
// formulas keep using wall-clock elapsed time from session start.
func (s *Session) IdleTime() time.Duration { return s.idleAccum }

// Samples returns the time series recorded so far.
func (s *Session) Samples() []models.Sample { return s.samples }

// Metrics recomputes the live metric snapshot.
func (s *Session) Metrics() Metrics {
	return Compute(s.history, s.words, string(s.input), s.elapsed(s.now()))
}

// Keystroke feeds one printable character (including the separator) into the
// session. The first accepted keystroke activates an Idle session. Returns
// false when the session is Completed and the input was discarded.
func (s *Session) Keystroke(r rune) bool {
	now := s.now()
	s.drainRefill()

	if s.state == StateCompleted {
		return false
	}
	if s.state == StateIdle {
		s.start(now)
	}
	s.markActivity(now)

	if r == Separator {
		s.rec.record(s.event(now, string(Separator), nil, nil, len(s.input)))
		s.lastKeyAt = now
		s.submitWord(now)
		return true
	}

	expected, correct := s.classify(r)
	s.rec.record(s.event(now, string(r), expected, correct, len(s.input)))
	s.lastKeyAt = now
	s.input = append(s.input, r)
	return true
}

// Backspace removes the last character of the input buffer. At buffer
// position 0 it pulls the previous finalized word out of history for
// editing, decrementing the word index. The corpus is never mutated.
func (s *Session) Backspace() {
	now := s.now()
	s.drainRefill()

	if s.state != StateActive {
		return
	}
	s.markActivity(now)
	s.rec.record(s.event(now, "Backspace", nil, nil, len(s.input)))
	s.lastKeyAt = now

	if len(s.input) > 0 {
		s.input = s.input[:len(s.input)-1]
		return
	}
	if s.index > 0 {
		s.index--
		s.input = []rune(s.history[s.index])
		s.history = s.history[:s.index]
	}
}

// Tick drives time-dependent behavior: time-series sampling, the telemetry
// flush timer, and time-boxed completion. Callers run it on a fixed polling
// interval while a session is active.
func (s *Session) Tick() {
	now := s.now()
	s.drainRefill()

	if s.state != StateActive {
		return
	}

	s.rec.tick(now)

	// Time-boxed completion runs on wall clock, idle or not.
	if s.mode == ModeTime && s.elapsed(now) >= time.Duration(s.target)*time.Second {
		s.complete(now)
		return
	}

	// Idle sessions suspend sampling; the gap is accounted on resume.
	if now.Sub(s.lastActivity) >= idleThreshold {
		return
	}

	m := Compute(s.history, s.words, string(s.input), s.elapsed(now))
	errors := m.TotalChars - m.CorrectChars
	s.samples = append(s.samples, models.Sample{
		ElapsedSeconds: m.ElapsedSeconds,
		RawWPM:         m.RawWPM,
		NetWPM:         m.NetWPM,
		Errors:         errors,
		ErrorMarker:    errors > s.lastErrors,
	})
	s.lastErrors = errors
}

// Complete force-finishes an active session.
func (s *Session) Complete() {
	if s.state != StateActive {
		return
	}
	s.complete(s.now())
}

// Reset discards all session state and re-arms the session over a fresh
// corpus with a new identifier.
func (s *Session) Reset(words []string) {
	if len(words) == 0 {
		words = FallbackWords(refillCount)
	}
	s.id = uuid.NewString()
	s.state = StateIdle
	s.words = words
	s.index = 0
	s.input = nil
	s.history = nil
	s.startedAt = time.Time{}
	s.endedAt = time.Time{}
	s.lastActivity = time.Time{}
	s.lastKeyAt = time.Time{}
	s.idleAccum = 0
	s.samples = nil
	s.lastErrors = 0
	s.refilling = false
	// A refill launched for the previous corpus must not leak into this one.
	select {
	case <-s.refillCh:
	default:
	}
	s.rec.reset(s.id)
}

// Result builds the stored summary for a completed session.
func (s *Session) Result(userID *uint) models.SessionResult {
	end := s.endedAt
	if end.IsZero() {
		end = s.now()
	}
	m := Compute(s.history, s.words, string(s.input), end.Sub(s.startedAt))
	return models.SessionResult{
		SessionID: s.id,
		UserID:    userID,
		Mode:      string(s.mode),
		Target:    s.target,
		RawWPM:    m.RawWPM,
		NetWPM:    m.NetWPM,
		Accuracy:  m.Accuracy,
		History:   append([]string(nil), s.history...),
		Samples:   append(models.SampleList(nil), s.samples...),
		IdleMs:    s.idleAccum.Milliseconds(),
		StartedAt: s.startedAt,
		EndedAt:   end,
	}
}

func (s *Session) start(now time.Time) {
	s.state = StateActive
	s.startedAt = now
	s.lastActivity = now
	s.rec.start(now)
}

func (s *Session) complete(now time.Time) {
	s.state = StateCompleted
	s.endedAt = now
	s.rec.close()
}

func (s *Session) submitWord(now time.Time) {
	word := strings.TrimSpace(string(s.input))
	s.history = append(s.history, word)
	s.index++
	s.input = nil

	if s.mode == ModeWords && len(s.history) >= s.target {
		s.complete(now)
		return
	}
	if s.mode == ModeTime && len(s.words)-s.index < lookaheadMin {
		s.requestRefill()
	}
}

// classify determines the expected character and correctness for the next
// typed rune. Beyond the target word's length there is no expectation; such
// characters only ever count toward totals.
func (s *Session) classify(r rune) (*string, *bool) {
	if s.index >= len(s.words) {
		return nil, nil
	}
	target := []rune(s.words[s.index])
	pos := len(s.input)
	if pos >= len(target) {
		return nil, nil
	}
	expected := string(target[pos])
	correct := r == target[pos]
	return &expected, &correct
}

func (s *Session) event(now time.Time, key string, expected *string, correct *bool, position int) models.KeystrokeEvent {
	var latency float64
	if !s.lastKeyAt.IsZero() {
		latency = float64(now.Sub(s.lastKeyAt).Milliseconds())
		if latency < 0 {
			latency = 0
		}
	}
	return models.KeystrokeEvent{
		Key:       key,
		Timestamp: float64(s.elapsed(now).Milliseconds()),
		Expected:  expected,
		Correct:   correct,
		Position:  position,
		LatencyMs: latency,
	}
}

func (s *Session) markActivity(now time.Time) {
	if gap := now.Sub(s.lastActivity); gap >= idleThreshold {
		s.idleAccum += gap
	}
	s.lastActivity = now
}

func (s *Session) elapsed(now time.Time) time.Duration {
	if s.startedAt.IsZero() {
		return 0
	}
	if s.state == StateCompleted {
		return s.endedAt.Sub(s.startedAt)
	}
	return now.Sub(s.startedAt)
}

func (s *Session) now() time.Time { return s.clock() }
