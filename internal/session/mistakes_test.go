package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMistakeTracker(t *testing.T) {
	tr := NewMistakeTracker()
	require.Equal(t, 0, tr.Count())
	require.False(t, tr.Unmark(3), "unmarking an absent position is a no-op")

	tr.Mark(5)
	tr.Mark(1)
	tr.Mark(5)
	require.Equal(t, 2, tr.Count())
	require.True(t, tr.Contains(1))
	require.False(t, tr.Contains(2))
	require.Equal(t, []int{1, 5}, tr.Positions())

	require.True(t, tr.Unmark(5))
	require.False(t, tr.Contains(5))

	tr.Clear()
	require.Equal(t, 0, tr.Count())
}

func TestMistakeTrackerZeroValue(t *testing.T) {
	var tr MistakeTracker
	require.False(t, tr.Contains(0))
	tr.Mark(0)
	require.Equal(t, 1, tr.Count())
}
