package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tukai/internal/model"
	"github.com/verte-zerg/tukai/internal/session"
)

const (
	maxTextWidth = 80
	minTextWidth = 20
	minTextRows  = 3
	reservedRows = 14
)

var helpKeys = []string{
	"ctrl-r reset",
	"ctrl-d duration",
	"ctrl-s theme",
	"ctrl-t background",
	"ctrl-p language",
	"ctrl-l repeat",
	"ctrl-w/ctrl-h delete word",
	"←/→ screens",
	"esc quit",
}

func (m *Model) textWidth() int {
	if m.width == 0 {
		return maxTextWidth
	}
	width := int(float64(m.width)*0.70) - m.styles.Frame.GetHorizontalFrameSize()
	return max(minTextWidth, min(maxTextWidth, width))
}

func (m *Model) renderTypingScreen() string {
	snap := m.session.Snapshot()
	width := m.textWidth()

	var body string
	if snap.PopupVisible && snap.LastStat != nil {
		body = m.renderPopup(*snap.LastStat)
	} else {
		body = m.renderText(snap, width)
	}

	parts := []string{
		m.renderHeader(snap),
		body,
		m.renderTimer(snap),
		m.styles.Muted.Render(m.motto),
	}
	content := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return m.place(content)
}

func (m *Model) renderHeader(snap session.Snapshot) string {
	segments := []string{
		m.styles.Title.Render("tukai"),
		m.theme.Label,
		m.catalog.Name(m.store.LanguageIndex()),
		snap.Duration.String(),
	}
	if m.repeat {
		segments = append(segments, "repeat")
	}
	return m.styles.Muted.Render(strings.Join(segments, " · "))
}

func (m *Model) renderText(snap session.Snapshot, width int) string {
	cursor := -1
	if snap.Phase != session.PhaseStopped && snap.Cursor < len(snap.Target) {
		cursor = snap.Cursor
	}
	frame := m.styles.Frame.Width(width + m.styles.Frame.GetHorizontalPadding())
	if len(snap.Target) == 0 {
		return frame.Render(m.styles.Error.Render("no text to type"))
	}
	cells := styleCells(snap.Target, snap.Input, snap.Mistakes, cursor, m.styles)
	rows := visibleRows(layoutLines(cells, width), snap.Cursor, m.textRows())
	return frame.Render(renderRows(cells, rows, width))
}

// textRows is how many rows of practice text fit next to the header, timer and footer.
func (m *Model) textRows() int {
	if m.height == 0 {
		return 0
	}
	return max(minTextRows, m.height-reservedRows)
}

func (m *Model) renderTimer(snap session.Snapshot) string {
	switch snap.Phase {
	case session.PhaseIdle:
		return m.styles.Muted.Render(fmt.Sprintf("%ds · start typing", snap.Remaining))
	case session.PhaseRunning:
		return m.styles.Title.Render(fmt.Sprintf("%ds", snap.Remaining))
	default:
		return m.styles.Muted.Render("finished · ctrl-r for a new run")
	}
}

func (m *Model) renderPopup(stat model.Stat) string {
	rows := [][2]string{
		{"WPM", fmt.Sprintf("%d", stat.AverageWPM)},
		{"Raw WPM", fmt.Sprintf("%d", stat.RawWPM)},
		{"Accuracy", fmt.Sprintf("%.2f%%", stat.Accuracy)},
		{"Duration", stat.Duration.String()},
	}
	lines := []string{m.styles.Title.Render("Run finished"), ""}
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%-10s %s", row[0], m.styles.Title.Render(row[1])))
	}
	lines = append(lines, "")
	if m.repeat {
		lines = append(lines, m.styles.Muted.Render("practice run, not recorded"))
	}
	lines = append(lines, m.styles.Muted.Render("ctrl-r new run · esc close"))
	return m.styles.Popup.Render(strings.Join(lines, "\n"))
}

// renderFooter returns the status line followed by the key help, fitted to width.
func (m *Model) renderFooter(width int) string {
	help := strings.Join(helpKeys, " · ")
	if width > 0 && lipgloss.Width(help) > width {
		help = strings.Join(helpKeys[:3], " · ") + " · …"
	}
	lines := []string{}
	if m.status != "" {
		style := m.styles.Muted
		if m.statusErr {
			style = m.styles.Error
		}
		lines = append(lines, style.Render(m.status))
	}
	lines = append(lines, m.styles.Muted.Render(help))
	return strings.Join(lines, "\n")
}

// place centers content and pins the footer to the bottom row.
func (m *Model) place(content string) string {
	footer := m.renderFooter(m.width)
	if m.width == 0 || m.height == 0 {
		return content + "\n\n" + footer
	}
	footerHeight := lipgloss.Height(footer)
	bodyHeight := max(1, m.height-footerHeight)
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerBlock := lipgloss.Place(m.width, footerHeight, lipgloss.Center, lipgloss.Bottom, footer)
	return body + "\n" + footerBlock
}
