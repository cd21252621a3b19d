// Package tui is the interactive terminal browser for transactions and
// planned operations.
package tui

import (
	"context"

	"github.com/Veraticus/family-budget/internal/engine"
	"github.com/Veraticus/family-budget/internal/model"
	"github.com/Veraticus/family-budget/internal/tui/themes"
	"github.com/Veraticus/family-budget/internal/viewsync"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Model holds the main TUI state. Budget data lives in the engine's view;
// the model only keeps presentation state.
type Model struct {
	ctx      context.Context
	engine   *engine.Engine
	theme    themes.Theme
	help     help.Model
	keymap   KeyMap
	config   Config
	cursors  map[View]int
	// archived is the local show-archived choice; nil follows settings.
	archived *bool
	width    int
	height   int
	view     View
	ready    bool
	quitting bool
}

func newModel(ctx context.Context, eng *engine.Engine, cfg Config) Model {
	theme := themes.Dark
	if cfg.Theme != nil {
		theme = *cfg.Theme
	}
	h := help.New()
	h.ShowAll = cfg.ShowHelp

	return Model{
		ctx:     ctx,
		engine:  eng,
		theme:   theme,
		help:    h,
		keymap:  DefaultKeyMap(),
		config:  cfg,
		cursors: map[View]int{ViewTransactions: 0, ViewPlanned: 0},
		width:   cfg.Width,
		height:  cfg.Height,
		view:    ViewTransactions,
	}
}

// Init loads every section.
func (m Model) Init() tea.Cmd {
	return m.refreshAll()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	view := m.engine.View()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case referenceLoadedMsg:
		_ = m.engine.ApplyReference(msg.data)
		if m.archived != nil {
			view.SetShowArchived(*m.archived)
		}
		if m.config.Theme == nil && msg.data.SettingsErr == nil && msg.data.Settings != nil {
			m.theme = themes.ForDisplay(msg.data.Settings.Display)
			m.config.Compact = msg.data.Settings.Display.Density == model.DensityCompact
		}
		m.ready = true

	case transactionsLoadedMsg:
		if m.engine.ApplyTransactions(msg.result) {
			m.clampCursor(ViewTransactions, len(view.Snapshot().Transactions))
		}

	case plannedLoadedMsg:
		m.engine.ApplyPlanned(msg.result)
		m.clampCursor(ViewPlanned, m.plannedCount())

	case plannedCompletedMsg:
		m.engine.ApplyCompletion(msg.result)
		m.clampCursor(ViewPlanned, m.plannedCount())

	case reportLoadedMsg:
		m.engine.ApplyReport(msg.result)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.engine.View()

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keymap.SwitchView):
		if m.view == ViewTransactions {
			m.view = ViewPlanned
		} else {
			m.view = ViewTransactions
		}

	case key.Matches(msg, m.keymap.Up):
		if m.cursors[m.view] > 0 {
			m.cursors[m.view]--
		}

	case key.Matches(msg, m.keymap.Down):
		m.cursors[m.view]++
		m.clampCursor(m.view, m.rowCount(m.view))

	case key.Matches(msg, m.keymap.PrevMonth), key.Matches(msg, m.keymap.NextMonth):
		step := 1
		if key.Matches(msg, m.keymap.PrevMonth) {
			step = -1
		}
		filters := view.Filters()
		filters.Period = filters.Period.AdjacentMonth(step)
		view.SetFilters(filters)
		m.cursors[ViewTransactions] = 0
		return m, m.refreshWindow()

	case key.Matches(msg, m.keymap.CycleType):
		filters := view.Filters()
		filters.Type = nextType(filters.Type)
		view.SetFilters(filters)
		m.cursors[ViewTransactions] = 0
		return m, m.refreshWindow()

	case key.Matches(msg, m.keymap.ToggleArchived):
		show := !view.ShowArchived()
		m.archived = &show
		view.SetShowArchived(show)

	case key.Matches(msg, m.keymap.Refresh):
		return m, m.refreshAll()

	case key.Matches(msg, m.keymap.Complete):
		if m.view != ViewPlanned {
			return m, nil
		}
		pending := view.Snapshot().Pending
		if i := m.cursors[ViewPlanned]; i < len(pending) {
			return m, m.completePlanned(pending[i].ID)
		}
	}

	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.renderLoading()
	}
	return m.render()
}

func nextType(t model.TransactionType) model.TransactionType {
	switch t {
	case "":
		return model.TransactionTypeExpense
	case model.TransactionTypeExpense:
		return model.TransactionTypeIncome
	default:
		return ""
	}
}

func (m Model) plannedCount() int {
	s := m.engine.View().Snapshot()
	return len(s.Pending) + len(s.Completed)
}

func (m Model) rowCount(v View) int {
	if v == ViewPlanned {
		return m.plannedCount()
	}
	return len(m.engine.View().Snapshot().Transactions)
}

func (m *Model) clampCursor(v View, n int) {
	switch {
	case n == 0:
		m.cursors[v] = 0
	case m.cursors[v] >= n:
		m.cursors[v] = n - 1
	}
}

// Status returns the status string for a section, for display and tests.
func (m Model) Status(section viewsync.Section) string {
	return m.engine.View().Status(section)
}
