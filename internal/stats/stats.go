package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/tukai/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates a set of stats.
type Summary struct {
	Sessions   int
	AverageWPM float64
	BestWPM    int
	AverageRaw float64
	AverageAcc float64
	TotalTimeS int
}

// Summarize computes averages over stats. An empty slice yields a zero Summary.
func Summarize(stats []model.Stat) Summary {
	if len(stats) == 0 {
		return Summary{}
	}
	var sum Summary
	var wpm, raw, acc float64
	for _, st := range stats {
		wpm += float64(st.AverageWPM)
		raw += float64(st.RawWPM)
		acc += st.Accuracy
		if st.AverageWPM > sum.BestWPM {
			sum.BestWPM = st.AverageWPM
		}
		sum.TotalTimeS += st.Duration.Seconds()
	}
	count := float64(len(stats))
	sum.Sessions = len(stats)
	sum.AverageWPM = wpm / count
	sum.AverageRaw = raw / count
	sum.AverageAcc = acc / count
	return sum
}

// Select applies the duration, since and last filters of cfg, keeping chronological order.
func Select(stats []model.Stat, cfg model.StatsConfig) []model.Stat {
	out := make([]model.Stat, 0, len(stats))
	for _, st := range stats {
		if cfg.Duration != 0 && st.Duration != cfg.Duration {
			continue
		}
		if cfg.Since != nil && st.FinishedAt.Before(*cfg.Since) {
			continue
		}
		out = append(out, st)
	}
	if cfg.Last > 0 && len(out) > cfg.Last {
		out = out[len(out)-cfg.Last:]
	}
	return out
}

// Recent returns the stats newest first.
func Recent(stats []model.Stat) []model.Stat {
	out := make([]model.Stat, len(stats))
	for i, st := range stats {
		out[len(stats)-1-i] = st
	}
	return out
}

// Best returns the stats ordered by average WPM, highest first.
// Ties keep the newer run first.
func Best(stats []model.Stat) []model.Stat {
	out := Recent(stats)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AverageWPM > out[j].AverageWPM
	})
	return out
}

// WPMSeries extracts average and raw WPM values in order.
func WPMSeries(stats []model.Stat) (avg, raw []float64) {
	avg = make([]float64, len(stats))
	raw = make([]float64, len(stats))
	for i, st := range stats {
		avg[i] = float64(st.AverageWPM)
		raw[i] = float64(st.RawWPM)
	}
	return avg, raw
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		den := i + 1
		if i >= window {
			sum -= values[i-window]
			den = window
		}
		out[i] = sum / float64(den)
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := minMax(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		b.WriteByte(sparkChars[clamp(idx, 0, len(sparkChars)-1)])
	}
	return b.String()
}

// RenderSummary prints the summary block for stats.
func RenderSummary(w io.Writer, stats []model.Stat) error {
	if len(stats) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	sum := Summarize(stats)
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", sum.Sessions),
		fmt.Sprintf("Avg WPM: %.2f", sum.AverageWPM),
		fmt.Sprintf("Best WPM: %d", sum.BestWPM),
		fmt.Sprintf("Avg Raw WPM: %.2f", sum.AverageRaw),
		fmt.Sprintf("Avg Accuracy: %.2f%%", sum.AverageAcc),
		fmt.Sprintf("Time typed: %s", formatSeconds(sum.TotalTimeS)),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// HistoryRows formats stats as table cells: when, duration, WPM, raw, accuracy.
func HistoryRows(stats []model.Stat) [][]string {
	rows := make([][]string, 0, len(stats))
	for _, st := range stats {
		when := "-"
		if !st.FinishedAt.IsZero() {
			when = st.FinishedAt.Local().Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{
			when,
			st.Duration.String(),
			fmt.Sprintf("%d", st.AverageWPM),
			fmt.Sprintf("%d", st.RawWPM),
			fmt.Sprintf("%.2f%%", st.Accuracy),
		})
	}
	return rows
}

// HistoryHeaders are the column titles matching HistoryRows.
var HistoryHeaders = []string{"Finished", "Duration", "WPM", "Raw", "Accuracy"}

// RenderHistory prints up to limit stats as an aligned table. limit <= 0 prints all.
func RenderHistory(w io.Writer, title string, stats []model.Stat, limit int) error {
	if len(stats) == 0 {
		return nil
	}
	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	for _, line := range tableLines(historyColumns, HistoryRows(stats)) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderCurves prints the WPM chart with a moving average applied.
func RenderCurves(w io.Writer, stats []model.Stat, window, totalWidth, height int) error {
	if len(stats) == 0 {
		return nil
	}
	avg, raw := WPMSeries(stats)
	chart := Chart{
		Title: "WPM",
		Series: []Series{
			{Name: "WPM", Values: MovingAverage(avg, window)},
			{Name: "Raw", Values: MovingAverage(raw, window)},
		},
		Width:  totalWidth,
		Height: height,
	}
	if _, err := fmt.Fprintln(w, chart.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Trend: %s\n\n", Sparkline(avg))
	return err
}

func formatSeconds(total int) string {
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func minMax(values []float64) (float64, float64) {
	minVal := math.Inf(1)
	maxVal := math.Inf(-1)
	for _, v := range values {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.IsInf(minVal, 1) {
		return 0, 0
	}
	return minVal, maxVal
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
