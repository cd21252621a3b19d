package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Commands capture everything they need from the view while still on the
// Update goroutine; the returned closures only talk to the backend.

func (m Model) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(m.ctx, m.config.RequestTimeout)
}

func (m Model) fetchReference() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return referenceLoadedMsg{data: m.engine.FetchReference(ctx)}
	}
}

func (m Model) fetchTransactions() tea.Cmd {
	query := m.engine.TransactionQuery()
	generation := m.engine.View().Generation()
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return transactionsLoadedMsg{result: m.engine.FetchTransactions(ctx, query, generation)}
	}
}

func (m Model) fetchReport() tea.Cmd {
	period := m.engine.View().Filters().Period
	generation := m.engine.View().Generation()
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return reportLoadedMsg{result: m.engine.FetchReport(ctx, period, generation)}
	}
}

func (m Model) fetchPlanned() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return plannedLoadedMsg{result: m.engine.FetchPlanned(ctx)}
	}
}

func (m Model) completePlanned(operationID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return plannedCompletedMsg{result: m.engine.FetchCompletion(ctx, operationID)}
	}
}

// refreshAll reloads every section.
func (m Model) refreshAll() tea.Cmd {
	return tea.Batch(
		m.fetchReference(),
		m.fetchTransactions(),
		m.fetchPlanned(),
		m.fetchReport(),
	)
}

// refreshWindow reloads the sections that depend on the filters.
func (m Model) refreshWindow() tea.Cmd {
	return tea.Batch(m.fetchTransactions(), m.fetchReport())
}
