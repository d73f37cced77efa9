package stats

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tukai/internal/model"
)

func TestAverageWPM(t *testing.T) {
	require.Equal(t, 20, AverageWPM(100, 0, 60))
	require.Equal(t, 0, AverageWPM(3, 5, 60), "mistakes saturate at zero correct chars")
	require.Equal(t, 0, AverageWPM(100, 0, 0), "zero duration must not panic")
}

func TestRawWPM(t *testing.T) {
	require.Equal(t, 24, RawWPM(60, 30))
	require.Equal(t, 0, RawWPM(4, 60), "fewer chars than a word floor to zero")
}

func TestAccuracy(t *testing.T) {
	require.Equal(t, 95.0, Accuracy(100, 5))
	require.Equal(t, 66.67, Accuracy(3, 1))
	require.Equal(t, 100.0, Accuracy(7, 0))

	zero := Accuracy(0, 0)
	require.False(t, math.IsNaN(zero))
	require.Equal(t, 0.0, zero)
}

func TestNewStatScenario(t *testing.T) {
	finished := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	stat := NewStat(model.Duration30s, 60, 3, finished)

	require.Equal(t, model.Stat{
		Duration:   model.Duration30s,
		AverageWPM: 22,
		RawWPM:     24,
		Accuracy:   95.0,
		FinishedAt: finished,
	}, stat)
}
