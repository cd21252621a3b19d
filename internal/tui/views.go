package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/family-budget/internal/model"
	"github.com/Veraticus/family-budget/internal/viewsync"
	"github.com/charmbracelet/lipgloss"
)

const dateLayout = "Jan 02"

func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render("Family Budget"),
		"",
		m.theme.StatusPending.Render("Loading budget data..."),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) render() string {
	state := m.engine.View().Snapshot()

	sections := []string{
		m.renderHeader(state),
		m.renderTabs(),
	}
	if !m.config.Compact {
		sections = append(sections, m.renderAccounts())
	}

	switch m.view {
	case ViewPlanned:
		sections = append(sections, m.renderPlanned(state))
	default:
		sections = append(sections, m.renderTransactions(state))
		sections = append(sections, m.renderReport(state))
	}

	if status := m.renderStatus(state); status != "" {
		sections = append(sections, status)
	}
	sections = append(sections, m.help.View(m.keymap))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(state viewsync.ViewState) string {
	parts := []string{
		m.theme.Title.Render("Family Budget"),
		m.theme.Subtitle.Render(state.Filters.Period.String()),
	}
	if state.Filters.Type != "" {
		parts = append(parts, m.theme.Subtitle.Render("type: "+string(state.Filters.Type)))
	}
	if state.ShowArchived {
		parts = append(parts, m.theme.Muted.Render("[archived shown]"))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, 2)
	for _, v := range []View{ViewTransactions, ViewPlanned} {
		style := m.theme.TabInactive
		if v == m.view {
			style = m.theme.TabActive
		}
		tabs = append(tabs, style.Render(v.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderAccounts() string {
	accounts := m.engine.View().VisibleAccounts()
	if len(accounts) == 0 {
		return m.theme.Muted.Render("No accounts")
	}
	parts := make([]string, 0, len(accounts))
	for _, a := range accounts {
		label := fmt.Sprintf("%s %s", a.Name, m.amount(a.BalanceMinor, a.Currency))
		if a.IsArchived {
			label = m.theme.Muted.Render(a.Name + " (archived)")
		}
		parts = append(parts, label)
	}
	return m.theme.BorderedBox.Render(strings.Join(parts, "  |  "))
}

func (m Model) renderTransactions(state viewsync.ViewState) string {
	if len(state.Transactions) == 0 {
		return m.theme.Muted.Render("No transactions in this period")
	}

	view := m.engine.View()
	lines := make([]string, 0, len(state.Transactions))
	for i, tx := range windowOf(state.Transactions, m.offset(ViewTransactions), m.listHeight()) {
		category := tx.CategoryID
		if c, ok := view.Category(tx.CategoryID); ok {
			category = c.Name
		}
		account := tx.AccountID
		if a, ok := view.Account(tx.AccountID); ok {
			account = a.Name
		}
		line := fmt.Sprintf("%-6s  %-18s  %-14s  %s",
			tx.OccurredAt.UTC().Format(dateLayout),
			truncate(category, 18),
			truncate(account, 14),
			m.amount(tx.SignedMinor(), tx.Currency),
		)
		if comment := tx.CommentText(); comment != "" && !m.config.Compact {
			line += "  " + m.theme.Muted.Render(truncate(comment, 30))
		}
		lines = append(lines, m.row(line, i+m.offset(ViewTransactions)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderPlanned(state viewsync.ViewState) string {
	if len(state.Pending) == 0 && len(state.Completed) == 0 {
		return m.theme.Muted.Render("No planned operations")
	}

	all := make([]model.PlannedOperation, 0, len(state.Pending)+len(state.Completed))
	all = append(all, state.Pending...)
	all = append(all, state.Completed...)

	lines := make([]string, 0, len(all))
	for i, op := range windowOf(all, m.offset(ViewPlanned), m.listHeight()) {
		amount := op.AmountMinor
		if op.Type == model.TransactionTypeExpense {
			amount = -amount
		}
		marker := "[ ]"
		when := op.DueAt.UTC().Format(dateLayout)
		if op.IsCompleted {
			marker = "[x]"
			when = op.CompletionTime().UTC().Format(dateLayout)
		}
		line := fmt.Sprintf("%s %-6s  %-22s  %s",
			marker, when, truncate(op.Title, 22), m.amount(amount, op.Currency))
		if op.Recurrence != "" && op.Recurrence != model.RecurrenceNone {
			line += "  " + m.theme.Muted.Render(string(op.Recurrence))
		}
		if op.IsCompleted {
			line = m.theme.Muted.Render(line)
		}
		lines = append(lines, m.row(line, i+m.offset(ViewPlanned)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderReport(state viewsync.ViewState) string {
	r := state.Report
	if r == nil {
		return ""
	}
	return m.theme.BorderedBox.Render(fmt.Sprintf("Income %s   Expenses %s   Net %s",
		m.amount(r.TotalIncomeMinor, r.Currency),
		m.amount(-r.TotalExpenseMinor, r.Currency),
		m.amount(r.NetMinor, r.Currency),
	))
}

// renderStatus shows one line per failed section.
func (m Model) renderStatus(state viewsync.ViewState) string {
	order := []viewsync.Section{
		viewsync.SectionCategories,
		viewsync.SectionAccounts,
		viewsync.SectionMembers,
		viewsync.SectionSettings,
		viewsync.SectionTransactions,
		viewsync.SectionPlanned,
		viewsync.SectionReport,
	}
	var lines []string
	for _, section := range order {
		if msg := state.Status[section]; msg != "" {
			lines = append(lines, m.theme.StatusError.Render(fmt.Sprintf("%s: %s", section, msg)))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) amount(minor int64, currency string) string {
	text := model.FormatMinor(minor, currency)
	switch {
	case minor > 0:
		return m.theme.Income.Render("+" + text)
	case minor < 0:
		return m.theme.Expense.Render(text)
	default:
		return m.theme.Normal.Render(text)
	}
}

func (m Model) row(line string, index int) string {
	if index == m.cursors[m.view] {
		return m.theme.Selected.Render("> " + line)
	}
	return "  " + line
}

// listHeight is the number of rows available to the active list.
func (m Model) listHeight() int {
	reserved := 8
	if m.config.Compact {
		reserved = 5
	}
	if h := m.height - reserved; h > 3 {
		return h
	}
	return 3
}

func (m Model) offset(v View) int {
	if c := m.cursors[v]; c >= m.listHeight() {
		return c - m.listHeight() + 1
	}
	return 0
}

func windowOf[T any](items []T, offset, height int) []T {
	if offset > len(items) {
		offset = len(items)
	}
	end := offset + height
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
