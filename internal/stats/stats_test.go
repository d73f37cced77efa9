package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tukai/internal/model"
)

var day0 = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func history() []model.Stat {
	return []model.Stat{
		{Duration: model.Duration30s, AverageWPM: 40, RawWPM: 45, Accuracy: 90, FinishedAt: day0},
		{Duration: model.Duration60s, AverageWPM: 55, RawWPM: 58, Accuracy: 96, FinishedAt: day0.Add(24 * time.Hour)},
		{Duration: model.Duration30s, AverageWPM: 55, RawWPM: 57, Accuracy: 97, FinishedAt: day0.Add(48 * time.Hour)},
		{Duration: model.Duration30s, AverageWPM: 50, RawWPM: 52, Accuracy: 93, FinishedAt: day0.Add(72 * time.Hour)},
	}
}

func TestSummarize(t *testing.T) {
	sum := Summarize(history())
	require.Equal(t, 4, sum.Sessions)
	require.Equal(t, 55, sum.BestWPM)
	require.InDelta(t, 50.0, sum.AverageWPM, 1e-9)
	require.InDelta(t, 53.0, sum.AverageRaw, 1e-9)
	require.InDelta(t, 94.0, sum.AverageAcc, 1e-9)
	require.Equal(t, 150, sum.TotalTimeS)

	require.Equal(t, Summary{}, Summarize(nil))
}

func TestSelectFilters(t *testing.T) {
	h := history()
	require.Len(t, Select(h, model.StatsConfig{}), 4)
	require.Len(t, Select(h, model.StatsConfig{Duration: model.Duration30s}), 3)

	since := day0.Add(36 * time.Hour)
	got := Select(h, model.StatsConfig{Since: &since})
	require.Len(t, got, 2)
	require.Equal(t, 55, got[0].AverageWPM)

	got = Select(h, model.StatsConfig{Duration: model.Duration30s, Last: 2})
	require.Equal(t, []int{55, 50}, []int{got[0].AverageWPM, got[1].AverageWPM})
}

func TestRecentAndBestOrdering(t *testing.T) {
	h := history()
	recent := Recent(h)
	require.True(t, recent[0].FinishedAt.Equal(h[3].FinishedAt))
	require.True(t, recent[3].FinishedAt.Equal(h[0].FinishedAt))

	best := Best(h)
	wpms := []int{}
	for _, st := range best {
		wpms = append(wpms, st.AverageWPM)
	}
	require.Equal(t, []int{55, 55, 50, 40}, wpms)
	require.True(t, best[0].FinishedAt.Equal(h[2].FinishedAt), "newer run wins ties")
	require.Equal(t, 40, h[0].AverageWPM, "input is not reordered")
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	require.Equal(t, []float64{2, 3, 5, 7}, got)
	require.Equal(t, []float64{1, 2}, MovingAverage([]float64{1, 2}, 0))
	require.Empty(t, MovingAverage(nil, 3))
}

func TestSparkline(t *testing.T) {
	require.Equal(t, "", Sparkline(nil))
	require.Equal(t, "+++", Sparkline([]float64{3, 3, 3}))
	line := Sparkline([]float64{0, 5, 10})
	require.Equal(t, byte(' '), line[0])
	require.Equal(t, byte('@'), line[2])
}

func TestRenderSummaryAndHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderSummary(&buf, history()))
	require.NoError(t, RenderHistory(&buf, "Best runs", Best(history()), 2))
	out := buf.String()
	for _, want := range []string{"Sessions: 4", "Best WPM: 55", "Avg Accuracy: 94.00%", "Time typed: 2m30s", "Best runs", "Finished", "97.00%"} {
		require.Contains(t, out, want)
	}
	require.NotContains(t, out, "90.00%", "limit drops the slowest run")

	buf.Reset()
	require.NoError(t, RenderSummary(&buf, nil))
	require.Equal(t, "No sessions found.\n", buf.String())
}

func TestRenderCurves(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderCurves(&buf, history(), 2, 60, 5))
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "WPM\n"))
	require.Contains(t, out, "Trend: ")
}
