package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tukai/internal/model"
)

func TestDriveProcessesEventsInOrder(t *testing.T) {
	s, rec := newTestSession(t, "abcdef", model.Duration15s)
	events := make(chan Event, 32)
	for _, r := range "abx" {
		events <- Key(r)
	}
	events <- Backspace()
	events <- Key('c')
	for i := 0; i < 15; i++ {
		events <- Tick()
	}
	close(events)

	require.NoError(t, Drive(context.Background(), s, ChanSource(events), nil))
	require.Equal(t, "abc", s.Input())
	require.Equal(t, PhaseStopped, s.Phase())
	require.Len(t, rec.stats, 1)
	require.Equal(t, 100.0, rec.stats[0].Accuracy)
}

func TestDriveReportsRecorderErrors(t *testing.T) {
	rec := &memoryRecorder{err: errors.New("read-only")}
	s := New(model.Duration15s, fixedText("abc"), WithRecorder(rec))
	events := make(chan Event, 16)
	events <- Key('a')
	for i := 0; i < 15; i++ {
		events <- Tick()
	}
	close(events)

	var got []error
	require.NoError(t, Drive(context.Background(), s, ChanSource(events), func(err error) {
		got = append(got, err)
	}))
	require.Len(t, got, 1)
	require.ErrorIs(t, got[0], rec.err)
}

func TestDriveStopsOnContextCancel(t *testing.T) {
	s, _ := newTestSession(t, "abc", model.Duration15s)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Drive(ctx, s, ChanSource(make(chan Event)), nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEventKindString(t *testing.T) {
	require.Equal(t, "delete-word", EventDeleteWord.String())
	require.Equal(t, "tick", Tick().Kind.String())
	require.Equal(t, "event(42)", EventKind(42).String())
}
