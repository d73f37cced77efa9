package session

import (
	"context"
	"errors"
	"fmt"
)

// EventKind identifies a session input.
type EventKind int

// Event kinds understood by the session.
const (
	EventKey EventKind = iota
	EventBackspace
	EventDeleteWord
	EventEscape
	EventTick
)

func (k EventKind) String() string {
	switch k {
	case EventKey:
		return "key"
	case EventBackspace:
		return "backspace"
	case EventDeleteWord:
		return "delete-word"
	case EventEscape:
		return "escape"
	case EventTick:
		return "tick"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is a single discrete input delivered to a session.
type Event struct {
	Kind EventKind
	// Rune is set for EventKey only.
	Rune rune
}

// Key returns a character event.
func Key(r rune) Event { return Event{Kind: EventKey, Rune: r} }

// Backspace returns a single-character delete event.
func Backspace() Event { return Event{Kind: EventBackspace} }

// DeleteWord returns a delete-last-word event.
func DeleteWord() Event { return Event{Kind: EventDeleteWord} }

// Escape returns a popup dismissal event.
func Escape() Event { return Event{Kind: EventEscape} }

// Tick returns a one-second clock event.
func Tick() Event { return Event{Kind: EventTick} }

// ErrSourceClosed is returned by a Source with no further events.
var ErrSourceClosed = errors.New("event source closed")

// Source delivers events in order, blocking until one is available.
type Source interface {
	Next(ctx context.Context) (Event, error)
}

// ChanSource adapts a channel of events to a Source. Together with Drive it runs a session
// without a terminal; the TUI feeds Handle directly from bubbletea messages instead.
type ChanSource <-chan Event

// Next implements Source.
func (c ChanSource) Next(ctx context.Context) (Event, error) {
	select {
	case <-ctx.Done():
		return Event{}, ctx.Err()
	case ev, ok := <-c:
		if !ok {
			return Event{}, ErrSourceClosed
		}
		return ev, nil
	}
}

// Drive feeds events from src into s one at a time until the source closes or ctx ends.
// A closed source is not an error. Persistence errors from Stop are passed to onErr when set.
func Drive(ctx context.Context, s *Session, src Source, onErr func(error)) error {
	for {
		ev, err := src.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrSourceClosed) {
				return nil
			}
			return err
		}
		if herr := s.Handle(ev); herr != nil && onErr != nil {
			onErr(herr)
		}
	}
}
