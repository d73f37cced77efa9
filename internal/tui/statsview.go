package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tukai/internal/stats"
	"github.com/verte-zerg/tukai/internal/theme"
)

const (
	chartHeight    = 8
	chartMaxPoints = 100
	minTableHeight = 3
)

func newHistoryTable() table.Model {
	columns := make([]table.Column, len(stats.HistoryHeaders))
	widths := []int{16, 8, 5, 5, 9}
	for i, title := range stats.HistoryHeaders {
		columns[i] = table.Column{Title: title, Width: widths[i]}
	}
	return table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(minTableHeight),
	)
}

func historyStyles(t theme.Theme) table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(t.Primary).
		Foreground(t.Text).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(t.Primary).
		Bold(true)
	return styles
}

// refreshHistory reloads table rows from the store in the selected order.
func (m *Model) refreshHistory() {
	all := m.store.Stats()
	ordered := stats.Recent(all)
	if m.bestOrder {
		ordered = stats.Best(all)
	}
	cells := stats.HistoryRows(ordered)
	rows := make([]table.Row, len(cells))
	for i, c := range cells {
		rows[i] = table.Row(c)
	}
	m.history.SetRows(rows)
	if m.history.Cursor() >= len(rows) {
		m.history.SetCursor(0)
	}
}

func (m *Model) resizeHistory() {
	// Header, summary cards, chart, table title and footer share the screen.
	reserved := 1 + 4 + chartHeight + 2 + 2 + 3
	m.history.SetHeight(max(minTableHeight, m.height-reserved))
}

func (m *Model) updateStatsScreen(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "b", "tab":
		m.bestOrder = !m.bestOrder
		m.refreshHistory()
		m.history.SetCursor(0)
		return nil
	}
	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	return cmd
}

func (m *Model) renderStatsScreen() string {
	all := m.store.Stats()
	header := m.styles.Muted.Render(m.styles.Title.Render("tukai") + " · stats")
	if len(all) == 0 {
		return m.place(lipgloss.JoinVertical(lipgloss.Center, header, "", m.styles.Muted.Render("No sessions yet. Finish a run to see stats.")))
	}

	sum := stats.Summarize(all)
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.metricCard("Sessions", fmt.Sprintf("%d", sum.Sessions)),
		m.metricCard("Avg WPM", fmt.Sprintf("%.1f", sum.AverageWPM)),
		m.metricCard("Best WPM", fmt.Sprintf("%d", sum.BestWPM)),
		m.metricCard("Avg Raw", fmt.Sprintf("%.1f", sum.AverageRaw)),
		m.metricCard("Avg Acc", fmt.Sprintf("%.1f%%", sum.AverageAcc)),
	)

	recent := all
	if len(recent) > chartMaxPoints {
		recent = recent[len(recent)-chartMaxPoints:]
	}
	avg, raw := stats.WPMSeries(recent)
	chart := stats.Chart{
		Series: []stats.Series{
			{Name: "WPM", Values: avg, Color: m.theme.Primary},
			{Name: "Raw", Values: raw, Color: m.theme.Text},
		},
		Width:  max(lipgloss.Width(cards), 40),
		Height: chartHeight,
	}.Render()

	order := "recent runs"
	if m.bestOrder {
		order = "best runs"
	}
	tableTitle := m.styles.Muted.Render(order + " · b to switch · ↑/↓ scroll")

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		cards,
		chart,
		"",
		tableTitle,
		m.history.View(),
	)
	return m.place(content)
}

func (m *Model) metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", m.styles.Muted.Render(label), m.styles.Title.Render(value))
	return m.styles.Card.Width(12).Render(content)
}
