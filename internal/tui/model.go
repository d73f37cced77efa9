// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tukai/internal/generator"
	"github.com/verte-zerg/tukai/internal/model"
	"github.com/verte-zerg/tukai/internal/session"
	"github.com/verte-zerg/tukai/internal/storage"
	"github.com/verte-zerg/tukai/internal/theme"
	"github.com/verte-zerg/tukai/internal/wordlist"
)

type screen int

const (
	screenTyping screen = iota
	screenStats
)

type tickMsg time.Time

// tickCmd fires on the next whole second of the wall clock, so the cadence does not drift
// by the time spent handling each tick.
func tickCmd() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Options configures a Model.
type Options struct {
	Generator *generator.Generator
	Text      generator.Options
	Logger    *slog.Logger
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	store    *storage.Store
	catalog  *wordlist.Catalog
	gen      *generator.Generator
	textOpts generator.Options
	logger   *slog.Logger

	session *session.Session
	repeat  bool
	screen  screen

	theme  theme.Theme
	styles theme.Styles
	motto  string

	status    string
	statusErr bool

	width  int
	height int

	history   table.Model
	bestOrder bool
}

// NewModel constructs a typing TUI model. Settings are read from and written to st.
func NewModel(st *storage.Store, catalog *wordlist.Catalog, opts Options) *Model {
	m := &Model{
		store:    st,
		catalog:  catalog,
		gen:      opts.Generator,
		textOpts: opts.Text,
		logger:   opts.Logger,
	}
	if m.gen == nil {
		m.gen = generator.New()
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m.history = newHistoryTable()
	m.applyTheme()
	m.motto = m.gen.Motto()
	m.session = m.newSession()
	m.refreshHistory()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeHistory()
		return m, nil
	case tickMsg:
		m.dispatch(session.Tick())
		return m, tickCmd()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.screen {
	case screenStats:
		return m.renderStatsScreen()
	default:
		return m.renderTypingScreen()
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		if m.session.IsPopupVisible() {
			m.dispatch(session.Escape())
			return m, nil
		}
		return m, tea.Quit
	case tea.KeyLeft:
		m.screen = screenTyping
	case tea.KeyRight:
		m.screen = screenStats
		m.refreshHistory()
	case tea.KeyCtrlR:
		m.reset()
	case tea.KeyCtrlD:
		m.cycleDuration()
	case tea.KeyCtrlS:
		m.cycleTheme()
	case tea.KeyCtrlT:
		m.toggleTransparent()
	case tea.KeyCtrlP:
		m.cycleLanguage()
	case tea.KeyCtrlL:
		m.toggleRepeat()
	default:
		if m.screen == screenStats {
			return m, m.updateStatsScreen(msg)
		}
		m.handleTyping(msg)
	}
	return m, nil
}

func (m *Model) handleTyping(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyBackspace:
		if msg.Alt {
			m.dispatch(session.DeleteWord())
			return
		}
		m.dispatch(session.Backspace())
	// Terminals that send BS (0x08) for Backspace deliver it as ctrl-h.
	case tea.KeyCtrlW, tea.KeyCtrlH:
		m.dispatch(session.DeleteWord())
	case tea.KeySpace:
		m.dispatch(session.Key(' '))
	case tea.KeyRunes:
		if msg.Alt || msg.Paste {
			return
		}
		for _, r := range msg.Runes {
			m.dispatch(session.Key(r))
		}
	}
}

// dispatch feeds one event to the session and reacts to a finished run.
func (m *Model) dispatch(ev session.Event) {
	wasRunning := m.session.IsRunning()
	if err := m.session.Handle(ev); err != nil {
		m.fail("failed to save result", err)
	}
	if !wasRunning || m.session.Phase() != session.PhaseStopped {
		return
	}
	if stat, ok := m.session.LastStat(); ok {
		m.logger.Info("session finished",
			"duration", stat.Duration.String(),
			"wpm", stat.AverageWPM,
			"raw", stat.RawWPM,
			"accuracy", stat.Accuracy,
			"repeat", m.repeat,
		)
	}
	m.refreshHistory()
}

func (m *Model) newSession() *session.Session {
	var opts []session.Option
	if !m.repeat {
		opts = append(opts, session.WithRecorder(m.store))
	}
	return session.New(m.store.TypingDuration(), m.text, opts...)
}

func (m *Model) text(duration model.TypingDuration) string {
	words, err := m.catalog.Words(m.store.LanguageIndex())
	if err != nil {
		m.fail("failed to load words", err)
		return ""
	}
	if m.repeat {
		return m.gen.RepeatText(words)
	}
	return m.gen.Text(words, duration, m.textOpts)
}

func (m *Model) reset() {
	m.session.Reset(m.store.TypingDuration())
	m.motto = m.gen.Motto()
}

func (m *Model) cycleDuration() {
	next := m.store.TypingDuration().Next()
	if err := m.store.SetTypingDuration(next); err != nil {
		m.fail("failed to save duration", err)
	} else {
		m.notify("duration " + next.String())
	}
	m.reset()
}

func (m *Model) cycleTheme() {
	next := theme.Next(m.store.ActiveTheme())
	if err := m.store.SetTheme(next.ID); err != nil {
		m.fail("failed to save theme", err)
	} else {
		m.notify("theme " + next.Label)
	}
	m.applyTheme()
}

func (m *Model) toggleTransparent() {
	transparent := !m.store.TransparentBackground()
	if err := m.store.SetTransparentBackground(transparent); err != nil {
		m.fail("failed to save background", err)
	} else if transparent {
		m.notify("transparent background")
	} else {
		m.notify("themed background")
	}
	m.applyTheme()
}

func (m *Model) cycleLanguage() {
	next := m.catalog.Next(m.store.LanguageIndex())
	if err := m.store.SetLanguageIndex(next); err != nil {
		m.fail("failed to save language", err)
	} else {
		m.notify("language " + m.catalog.Name(next))
	}
	m.reset()
}

func (m *Model) toggleRepeat() {
	m.repeat = !m.repeat
	m.session = m.newSession()
	m.motto = m.gen.Motto()
	if m.repeat {
		m.notify("repeat-word practice (not recorded)")
	} else {
		m.notify("timed practice")
	}
}

func (m *Model) applyTheme() {
	m.theme = theme.Lookup(m.store.ActiveTheme())
	m.styles = theme.NewStyles(m.theme, m.store.TransparentBackground())
	m.history.SetStyles(historyStyles(m.theme))
}

func (m *Model) notify(msg string) {
	m.status = msg
	m.statusErr = false
	m.logger.Debug(msg)
}

func (m *Model) fail(msg string, err error) {
	m.status = fmt.Sprintf("%s: %v", msg, err)
	m.statusErr = true
	m.logger.Error(msg, "err", err)
}
