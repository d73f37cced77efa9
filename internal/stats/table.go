package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// column describes one text table column.
type column struct {
	title string
	right bool
}

// historyColumns lines up with HistoryHeaders; numbers are right aligned.
var historyColumns = []column{
	{title: HistoryHeaders[0]},
	{title: HistoryHeaders[1]},
	{title: HistoryHeaders[2], right: true},
	{title: HistoryHeaders[3], right: true},
	{title: HistoryHeaders[4], right: true},
}

// tableLines renders the header and rows with columns sized to their widest cell.
// Missing cells render empty; extra cells are dropped.
func tableLines(cols []column, rows [][]string) []string {
	if len(cols) == 0 {
		return nil
	}
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = runewidth.StringWidth(c.title)
	}
	for _, row := range rows {
		for i := range cols {
			if i < len(row) {
				widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
			}
		}
	}

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.title
	}
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, joinCells(cols, widths, header))
	for _, row := range rows {
		lines = append(lines, joinCells(cols, widths, row))
	}
	return lines
}

func joinCells(cols []column, widths []int, row []string) string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		var value string
		if i < len(row) {
			value = row[i]
		}
		if c.right {
			cells[i] = runewidth.FillLeft(value, widths[i])
		} else {
			cells[i] = runewidth.FillRight(value, widths[i])
		}
	}
	return strings.Join(cells, " ")
}
