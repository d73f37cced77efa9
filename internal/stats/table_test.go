package stats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableLinesAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"15s", "112", "97.50%"},
		{"180s", "8", "8.00%"},
	}
	cols := []column{{title: "Duration"}, {title: "WPM", right: true}, {title: "Accuracy", right: true}}

	require.Equal(t, []string{
		"Duration WPM Accuracy",
		"15s      112   97.50%",
		"180s       8    8.00%",
	}, tableLines(cols, rows))
}

func TestTableLinesWideRunesAndShortRows(t *testing.T) {
	lines := tableLines([]column{{title: "Name"}, {title: "N", right: true}}, [][]string{{"日本", "1"}, {"x"}})
	require.Equal(t, "日本 1", lines[1], "wide runes count double")
	require.Equal(t, "x     ", lines[2], "short rows are padded")
}
