// Package theme defines the selectable color themes.
package theme

import "github.com/charmbracelet/lipgloss"

// DefaultID is the theme used when a stored id is unknown.
const DefaultID = "iced"

// Theme is a named palette.
type Theme struct {
	ID            string
	Label         string
	Primary       lipgloss.Color
	Text          lipgloss.Color
	TextCurrent   lipgloss.Color
	TextCurrentBg lipgloss.Color
	Background    lipgloss.Color
	Error         lipgloss.Color
}

// themes are listed in switch order.
var themes = []Theme{
	{ID: "iced", Label: "🥶 Iced", Primary: "#6cb5e6", Text: "#e8e8e8", TextCurrent: "#194a6b", TextCurrentBg: "#c8c8c8", Background: "#25282e", Error: "#d65a5a"},
	{ID: "anime", Label: "🌸 Anime", Primary: "#9875c9", Text: "#de87ae", TextCurrent: "#312d33", TextCurrentBg: "#deaa92", Background: "#1f1b1e", Error: "#e38a8a"},
	{ID: "deadpool", Label: "🩸 Deadpool", Primary: "#8b2323", Text: "#d2d2d2", TextCurrent: "#171717", TextCurrentBg: "#d2d2d2", Background: "#211d1d", Error: "#6e6e6e"},
	{ID: "wolverine", Label: "💪 Wolverine", Primary: "#c4a633", Text: "#c8c8c8", TextCurrent: "#171717", TextCurrentBg: "#d2d2d2", Background: "#0a0e12", Error: "#6e6e6e"},
	{ID: "rust", Label: "🦀 Rust", Primary: "#963f11", Text: "#ffb289", TextCurrent: "#ffb289", TextCurrentBg: "#963f11", Background: "#180802", Error: "#787878"},
	{ID: "goblin", Label: "🌳 Goblin", Primary: "#528c19", Text: "#88cf42", TextCurrent: "#dcdcdc", TextCurrentBg: "#273d11", Background: "#20241e", Error: "#754738"},
}

// All returns the themes in switch order.
func All() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

// Lookup returns the theme with id, or the default theme when id is unknown.
func Lookup(id string) Theme {
	for _, t := range themes {
		if t.ID == id {
			return t
		}
	}
	return themes[0]
}

// Next returns the theme after id, wrapping around. Unknown ids restart the cycle.
func Next(id string) Theme {
	for i, t := range themes {
		if t.ID == id {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	Base      lipgloss.Style
	Correct   lipgloss.Style
	Incorrect lipgloss.Style
	Pending   lipgloss.Style
	Word      lipgloss.Style
	Cursor    lipgloss.Style
	Title     lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Frame     lipgloss.Style
	Popup     lipgloss.Style
	Card      lipgloss.Style
}

// NewStyles builds styles for t. A transparent background leaves the terminal background alone.
func NewStyles(t Theme, transparent bool) Styles {
	base := lipgloss.NewStyle()
	if !transparent {
		base = base.Background(t.Background)
	}
	border := lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true).BorderForeground(t.Primary)
	if !transparent {
		border = border.BorderBackground(t.Background).Background(t.Background)
	}
	return Styles{
		Base:      base,
		Correct:   base.Foreground(t.Primary),
		Incorrect: base.Foreground(t.Error),
		Pending:   base.Foreground(t.Text).Faint(true),
		Word:      base.Foreground(t.Text),
		Cursor:    lipgloss.NewStyle().Foreground(t.TextCurrent).Background(t.TextCurrentBg),
		Title:     base.Foreground(t.Primary).Bold(true),
		Muted:     base.Foreground(t.Text).Faint(true),
		Error:     base.Foreground(t.Error).Bold(true),
		Frame:     border.Padding(1, 2),
		Popup:     border.Padding(1, 3),
		Card:      border.Padding(0, 1),
	}
}
