package stats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChartRender(t *testing.T) {
	out := Chart{
		Title: "Test Plot",
		Series: []Series{
			{Name: "A", Values: []float64{1, 2, 3, 2, 1}},
			{Name: "B", Values: []float64{1, 1, 2, 3, 4}},
		},
		Width:  40,
		Height: 4,
	}.Render()
	require.Contains(t, out, "Test Plot")
	require.Contains(t, out, "A")
	require.Contains(t, out, "B")

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 1+4+1, out)
	require.True(t, strings.HasPrefix(lines[1], "4 │ "), "max label on first row: %q", lines[1])
	require.True(t, strings.HasPrefix(lines[4], "1 │ "), "min label on last row: %q", lines[4])
}

func TestChartRenderEmpty(t *testing.T) {
	require.Empty(t, Chart{Series: []Series{{Name: "A"}}}.Render())
}

func TestPlotWidthFor(t *testing.T) {
	require.Equal(t, 80-3-3, PlotWidthFor(80, 3))
	require.Equal(t, minChartWidth, PlotWidthFor(5, 3))
}

func TestResampleSeries(t *testing.T) {
	require.Equal(t, []float64{2, 6}, resampleSeries([]float64{1, 3, 5, 7}, 2))
	require.Equal(t, []float64{0, 5, 10}, resampleSeries([]float64{0, 10}, 3))
}
