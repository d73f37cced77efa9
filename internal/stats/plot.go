package stats

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	defaultChartHeight = 10
	minChartWidth      = 10
	fallbackTermWidth  = 80
	axisSeparator      = " │ "
)

// Series is a named sequence of values drawn on a Chart.
type Series struct {
	Name   string
	Values []float64
	// Color is optional; nil renders without styling.
	Color lipgloss.TerminalColor
}

// Chart draws series as braille line plots on a shared vertical scale.
type Chart struct {
	Title  string
	Series []Series
	// Width is the total width including the axis; 0 uses the terminal width.
	Width  int
	Height int
}

// Render returns the chart as text. It is empty when there is nothing to draw.
func (c Chart) Render() string {
	series := make([]Series, 0, len(c.Series))
	for _, s := range c.Series {
		if len(s.Values) > 0 {
			series = append(series, s)
		}
	}
	if len(series) == 0 {
		return ""
	}

	height := c.Height
	if height <= 0 {
		height = defaultChartHeight
	}
	total := c.Width
	if total <= 0 {
		total = terminalWidth()
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		smin, smax := minMax(s.Values)
		lo = math.Min(lo, smin)
		hi = math.Max(hi, smax)
	}
	if math.Abs(hi-lo) < 1e-9 {
		lo--
		hi++
	}
	labels := axisLabels(lo, hi, height)
	labelWidth := 0
	for _, l := range labels {
		labelWidth = max(labelWidth, runewidth.StringWidth(l))
	}
	width := PlotWidthFor(total, labelWidth)

	layers := make([][][]uint8, len(series))
	for si, s := range series {
		layers[si] = makeCells(height, width)
		points := resampleSeries(s.Values, width)
		prevX, prevY := -1, -1
		for x, v := range points {
			px, py := x*2, valueToRow(v, lo, hi, height*4)
			if prevX >= 0 {
				drawLine(prevX, prevY, px, py, func(dx, dy int) {
					setBrailleDot(layers[si], dx, dy)
				})
			} else {
				setBrailleDot(layers[si], px, py)
			}
			prevX, prevY = px, py
		}
	}

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(c.Title)
		b.WriteByte('\n')
	}
	for y := 0; y < height; y++ {
		b.WriteString(runewidth.FillLeft(labels[y], labelWidth))
		b.WriteString(axisSeparator)
		for x := 0; x < width; x++ {
			mask, owner := composeCell(layers, x, y)
			cell := string(brailleFromMask(mask))
			if owner >= 0 && series[owner].Color != nil {
				cell = lipgloss.NewStyle().Foreground(series[owner].Color).Render(cell)
			}
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}
	b.WriteString(legend(series))
	return b.String()
}

// PlotWidthFor returns the drawable width left after the axis.
func PlotWidthFor(totalWidth, labelWidth int) int {
	width := totalWidth - labelWidth - runewidth.StringWidth(axisSeparator)
	if width < minChartWidth {
		return minChartWidth
	}
	return width
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackTermWidth
	}
	return width
}

func axisLabels(lo, hi float64, height int) []string {
	labels := make([]string, height)
	labels[0] = fmt.Sprintf("%.0f", hi)
	if height > 2 {
		labels[height/2] = fmt.Sprintf("%.0f", (lo+hi)/2)
	}
	if height > 1 {
		labels[height-1] = fmt.Sprintf("%.0f", lo)
	}
	return labels
}

func legend(series []Series) string {
	parts := make([]string, 0, len(series))
	for _, s := range series {
		label := fmt.Sprintf("%c %s", brailleFromMask(0xff), s.Name)
		if s.Color != nil {
			label = lipgloss.NewStyle().Foreground(s.Color).Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	return cells
}

// composeCell merges every layer at x,y. The first layer with a dot owns the color.
func composeCell(layers [][][]uint8, x, y int) (uint8, int) {
	var mask uint8
	owner := -1
	for i, cells := range layers {
		m := cells[y][x]
		if m == 0 {
			continue
		}
		if owner == -1 {
			owner = i
		}
		mask |= m
	}
	return mask, owner
}

// resampleSeries maps values onto width columns by bucket averaging or linear interpolation.
func resampleSeries(values []float64, width int) []float64 {
	out := make([]float64, width)
	switch {
	case len(values) == 0 || width <= 0:
		return nil
	case len(values) == width:
		copy(out, values)
	case len(values) > width:
		for i := range out {
			start := i * len(values) / width
			end := max((i+1)*len(values)/width, start+1)
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case len(values) == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		for i := range out {
			pos := float64(i) * float64(len(values)-1) / float64(width-1)
			idx := int(pos)
			if idx >= len(values)-1 {
				out[i] = values[len(values)-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

func valueToRow(v, lo, hi float64, rows int) int {
	if rows <= 1 {
		return 0
	}
	pos := (v - lo) / (hi - lo)
	return clamp(int(math.Round((1-pos)*float64(rows-1))), 0, rows-1)
}

// drawLine plots a Bresenham line between two dot coordinates.
func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func setBrailleDot(cells [][]uint8, x, y int) {
	cy, cx := y/4, x/2
	if x < 0 || y < 0 || cy >= len(cells) || cx >= len(cells[cy]) {
		return
	}
	cells[cy][cx] |= brailleDots[y%4][x%2]
}

// brailleDots[row][col] is the bit of a dot inside a 2x4 braille cell.
var brailleDots = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
