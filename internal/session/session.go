package session

import (
	"fmt"
	"time"
	"unicode"

	"github.com/verte-zerg/tukai/internal/model"
	"github.com/verte-zerg/tukai/internal/stats"
)

// TextSource returns a fresh target text for a session of the given duration.
type TextSource func(duration model.TypingDuration) string

// Recorder persists finished session results.
type Recorder interface {
	AppendStat(stat model.Stat) error
}

// Phase is the coarse state of a session.
type Phase int

// Session phases.
const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseStopped
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseStopped:
		return "stopped"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Snapshot is a read-only view of a session for rendering.
type Snapshot struct {
	Target       []rune
	Input        []rune
	Cursor       int
	Mistakes     []int
	Elapsed      int
	Remaining    int
	Duration     model.TypingDuration
	Phase        Phase
	PopupVisible bool
	LastStat     *model.Stat
}

// Session is the typing state machine. It is not safe for concurrent use;
// events must be delivered from a single goroutine.
type Session struct {
	duration model.TypingDuration
	text     TextSource
	recorder Recorder
	now      func() time.Time

	target       []rune
	input        []rune
	mistakes     *MistakeTracker
	phase        Phase
	popupVisible bool
	elapsed      int
	lastStat     *model.Stat
}

// Option configures a Session.
type Option func(*Session)

// WithRecorder sets where finished stats are appended. Without one, results are kept
// in memory only.
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// WithClock overrides the clock used to timestamp results.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// New creates an idle session with a freshly generated target text.
func New(duration model.TypingDuration, text TextSource, opts ...Option) *Session {
	s := &Session{
		duration: duration,
		text:     text,
		now:      time.Now,
		mistakes: NewMistakeTracker(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset(duration)
	return s
}

// Handle applies one event. The only error source is persisting the result when the
// deadline stops the session.
func (s *Session) Handle(ev Event) error {
	switch ev.Kind {
	case EventKey:
		s.typeRune(ev.Rune)
	case EventBackspace:
		s.backspace()
	case EventDeleteWord:
		s.deleteLastWord()
	case EventEscape:
		if s.popupVisible {
			s.popupVisible = false
		}
	case EventTick:
		return s.tick()
	}
	return nil
}

// Stop ends the run and records its result. Calling it again for the same run does nothing.
func (s *Session) Stop() error {
	if s.lastStat != nil {
		return nil
	}
	s.phase = PhaseStopped
	s.popupVisible = true

	stat := stats.NewStat(s.duration, len(s.input), s.mistakes.Count(), s.now())
	s.lastStat = &stat
	if s.recorder == nil {
		return nil
	}
	if err := s.recorder.AppendStat(stat); err != nil {
		return fmt.Errorf("failed to record session: %w", err)
	}
	return nil
}

// Reset starts over with a new target text and the given duration.
func (s *Session) Reset(duration model.TypingDuration) {
	s.duration = duration
	s.input = nil
	s.mistakes.Clear()
	s.phase = PhaseIdle
	s.popupVisible = false
	s.elapsed = 0
	s.lastStat = nil

	text := ""
	if s.text != nil {
		text = s.text(duration)
	}
	s.target = []rune(text)
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Target:       append([]rune(nil), s.target...),
		Input:        append([]rune(nil), s.input...),
		Cursor:       s.Cursor(),
		Mistakes:     s.mistakes.Positions(),
		Elapsed:      s.elapsed,
		Remaining:    s.Remaining(),
		Duration:     s.duration,
		Phase:        s.phase,
		PopupVisible: s.popupVisible,
	}
	if s.lastStat != nil {
		stat := *s.lastStat
		snap.LastStat = &stat
	}
	return snap
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// IsRunning reports whether a run is in progress.
func (s *Session) IsRunning() bool { return s.phase == PhaseRunning }

// IsPopupVisible reports whether the result popup is shown.
func (s *Session) IsPopupVisible() bool { return s.popupVisible }

// Cursor returns the index of the next character to type.
func (s *Session) Cursor() int { return len(s.input) }

// Input returns the typed text.
func (s *Session) Input() string { return string(s.input) }

// Target returns the text to reproduce.
func (s *Session) Target() string { return string(s.target) }

// Elapsed returns the number of ticks counted while running.
func (s *Session) Elapsed() int { return s.elapsed }

// Duration returns the configured session length.
func (s *Session) Duration() model.TypingDuration { return s.duration }

// Remaining returns the seconds left before the deadline.
func (s *Session) Remaining() int {
	left := s.duration.Seconds() - s.elapsed
	if left < 0 {
		return 0
	}
	return left
}

// Mistakes returns the tracker of incorrect positions.
func (s *Session) Mistakes() *MistakeTracker { return s.mistakes }

// LastStat returns the result of the most recent run, if any.
func (s *Session) LastStat() (model.Stat, bool) {
	if s.lastStat == nil {
		return model.Stat{}, false
	}
	return *s.lastStat, true
}

func (s *Session) start() {
	s.phase = PhaseRunning
	s.lastStat = nil
}

func (s *Session) typeRune(r rune) {
	switch s.phase {
	case PhaseStopped:
		return
	case PhaseIdle:
		if len(s.target) == 0 {
			return
		}
		s.start()
	}
	pos := len(s.input)
	if pos >= len(s.target) {
		return
	}
	if s.target[pos] != r {
		s.mistakes.Mark(pos)
	}
	s.input = append(s.input, r)
}

func (s *Session) backspace() {
	if s.phase != PhaseRunning || len(s.input) == 0 {
		return
	}
	s.input = s.input[:len(s.input)-1]
	s.mistakes.Unmark(len(s.input))
}

func (s *Session) deleteLastWord() {
	if s.phase != PhaseRunning || len(s.input) == 0 {
		return
	}
	end := len(s.input)
	for end > 0 && unicode.IsSpace(s.input[end-1]) {
		end--
	}
	start := 0
	for i := end - 1; i >= 0; i-- {
		if unicode.IsSpace(s.input[i]) {
			start = i + 1
			break
		}
	}
	for pos := start; pos < len(s.input); pos++ {
		s.mistakes.Unmark(pos)
	}
	s.input = s.input[:start]
}

func (s *Session) tick() error {
	if s.phase != PhaseRunning {
		return nil
	}
	s.elapsed++
	if s.elapsed >= s.duration.Seconds() {
		return s.Stop()
	}
	return nil
}
