package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tukai/internal/theme"
)

// wrongSpace is shown in place of a mistyped space.
const wrongSpace = '•'

// cell is one rendered target rune.
type cell struct {
	text  string
	width int
	space bool
}

// span is a half-open range of cells shown on one row.
type span struct {
	start int
	end   int
}

// styleCells renders every target rune. Typed positions are green or red depending on the
// mistake set, the rune under cursor gets the cursor style and the rest of the current word
// stays brighter than pending text. A negative cursor hides the cursor.
func styleCells(target, input []rune, mistakes []int, cursor int, styles theme.Styles) []cell {
	wrong := make(map[int]bool, len(mistakes))
	for _, pos := range mistakes {
		wrong[pos] = true
	}
	wordStart, wordEnd, inWord := wordBounds(target, cursor)

	cells := make([]cell, len(target))
	for i, r := range target {
		shown := r
		style := styles.Pending
		switch {
		case i < len(input) && wrong[i]:
			style = styles.Incorrect
			if r == ' ' {
				shown = wrongSpace
			}
		case i < len(input):
			style = styles.Correct
		case i == cursor:
			style = styles.Cursor
		case inWord && i >= wordStart && i < wordEnd:
			style = styles.Word
		}
		cells[i] = cell{
			text:  style.Render(string(shown)),
			width: runewidth.RuneWidth(shown),
			space: r == ' ',
		}
	}
	return cells
}

// wordBounds returns the word the cursor is in, or the next one when it sits on a space.
func wordBounds(target []rune, cursor int) (int, int, bool) {
	if cursor < 0 || cursor >= len(target) {
		return 0, 0, false
	}
	i := cursor
	for i < len(target) && target[i] == ' ' {
		i++
	}
	if i == len(target) {
		return 0, 0, false
	}
	start, end := i, i
	for start > 0 && target[start-1] != ' ' {
		start--
	}
	for end < len(target) && target[end] != ' ' {
		end++
	}
	return start, end, true
}

// layoutLines splits cells into rows no wider than width. Rows break after a space; a word
// wider than the row is split. Spaces always stay on the row they end.
func layoutLines(cells []cell, width int) []span {
	if len(cells) == 0 {
		return nil
	}
	if width <= 0 {
		return []span{{start: 0, end: len(cells)}}
	}
	var rows []span
	for start := 0; start < len(cells); {
		end, used, brk := start, 0, -1
		for end < len(cells) {
			c := cells[end]
			if c.space {
				end++
				used += c.width
				brk = end
				continue
			}
			if used+c.width > width {
				break
			}
			used += c.width
			end++
		}
		if end < len(cells) && brk > start {
			end = brk
		}
		if end == start {
			end = start + 1
		}
		rows = append(rows, span{start: start, end: end})
		start = end
	}
	return rows
}

// visibleRows keeps at most limit rows, scrolled so the row holding cursor is second from
// the top once the text is long enough. limit <= 0 keeps every row.
func visibleRows(rows []span, cursor, limit int) []span {
	if limit <= 0 || len(rows) <= limit {
		return rows
	}
	current := 0
	for i, r := range rows {
		if cursor >= r.start && cursor < r.end {
			current = i
			break
		}
		if cursor >= r.end {
			current = i
		}
	}
	first := max(0, current-1)
	first = min(first, len(rows)-limit)
	return rows[first : first+limit]
}

// renderRows joins rows with newlines, trimming a trailing space that overflows width.
func renderRows(cells []cell, rows []span, width int) string {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		row := cells[r.start:r.end]
		used := 0
		for _, c := range row {
			used += c.width
		}
		if width > 0 && used > width && row[len(row)-1].space {
			row = row[:len(row)-1]
		}
		var b strings.Builder
		for _, c := range row {
			b.WriteString(c.text)
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}
