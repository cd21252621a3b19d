package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/family-budget/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Lookup resolves ids shown in tables to display names.
type Lookup interface {
	Category(id string) (model.Category, bool)
	Account(id string) (model.Account, bool)
	Member(id string) (model.FamilyMember, bool)
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

const dateLayout = "2006-01-02"

func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	styled := make([]string, len(headers))
	rules := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = headerStyle.Render(h)
		rules[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(styled, "\t"))
	fmt.Fprintln(tw, strings.Join(rules, "\t"))
	return tw
}

func row(tw io.Writer, cells ...string) {
	fmt.Fprintln(tw, strings.Join(cells, "\t"))
}

func categoryName(lookup Lookup, id string) string {
	if c, ok := lookup.Category(id); ok {
		return c.Name
	}
	return id
}

func accountName(lookup Lookup, id string) string {
	if a, ok := lookup.Account(id); ok {
		return a.Name
	}
	return id
}

// WriteCategories writes categories as a tree: children are indented under
// their parent, in the order given.
func WriteCategories(w io.Writer, categories []model.Category) error {
	tw := newTable(w, "ID", "Name", "Type", "Status")

	children := make(map[string][]model.Category)
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}
	var roots []model.Category
	for _, c := range categories {
		if !c.IsTopLevel() && known[*c.ParentID] {
			children[*c.ParentID] = append(children[*c.ParentID], c)
			continue
		}
		roots = append(roots, c)
	}

	var walk func(c model.Category, depth int)
	walk = func(c model.Category, depth int) {
		name := strings.Repeat("  ", depth) + c.Name
		var flags []string
		if c.IsSystem {
			flags = append(flags, "system")
		}
		if c.IsArchived {
			flags = append(flags, "archived")
		}
		status := strings.Join(flags, ",")
		if c.IsArchived {
			name = SubtleStyle.Render(name)
		}
		row(tw, c.ID, name, string(c.Type), status)
		for _, child := range children[c.ID] {
			walk(child, depth+1)
		}
	}
	for _, c := range roots {
		walk(c, 0)
	}

	return tw.Flush()
}

// WriteAccounts writes accounts with their balances.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	tw := newTable(w, "ID", "Name", "Type", "Balance", "Shared")
	for _, a := range accounts {
		name := a.Name
		if a.IsArchived {
			name = SubtleStyle.Render(name + " (archived)")
		}
		shared := ""
		if a.IsShared {
			shared = "yes"
		}
		row(tw, a.ID, name, string(a.Type), model.FormatMinor(a.BalanceMinor, a.Currency), shared)
	}
	return tw.Flush()
}

// WriteMembers writes family members.
func WriteMembers(w io.Writer, members []model.FamilyMember) error {
	tw := newTable(w, "ID", "Name", "Email", "Role")
	for _, m := range members {
		row(tw, m.ID, m.Name, m.Email, string(m.Role))
	}
	return tw.Flush()
}

// WriteTransactions writes transactions with signed, colored amounts.
func WriteTransactions(w io.Writer, transactions []model.Transaction, lookup Lookup) error {
	tw := newTable(w, "Date", "Amount", "Category", "Account", "Author", "Comment")
	for _, tx := range transactions {
		author := tx.UserID
		if tx.Author != nil && tx.Author.Name != "" {
			author = tx.Author.Name
		} else if m, ok := lookup.Member(tx.UserID); ok {
			author = m.Name
		}
		row(tw,
			tx.OccurredAt.UTC().Format(dateLayout),
			FormatAmount(tx.SignedMinor(), tx.Currency),
			categoryName(lookup, tx.CategoryID),
			accountName(lookup, tx.AccountID),
			author,
			tx.CommentText(),
		)
	}
	return tw.Flush()
}

// WritePlanned writes pending operations followed by completed ones.
// Pending recurring operations also show the due date after this one.
func WritePlanned(w io.Writer, pending, completed []model.PlannedOperation, lookup Lookup) error {
	tw := newTable(w, "ID", "Due", "Title", "Amount", "Category", "Repeats", "Next", "State")
	write := func(op model.PlannedOperation, state string) {
		next := ""
		if t, ok := op.NextDue(); ok && !op.IsCompleted {
			next = t.Format(dateLayout)
		}
		amount := op.AmountMinor
		if op.Type == model.TransactionTypeExpense {
			amount = -amount
		}
		row(tw,
			op.ID,
			op.DueAt.UTC().Format(dateLayout),
			op.Title,
			FormatAmount(amount, op.Currency),
			categoryName(lookup, op.CategoryID),
			string(op.Recurrence),
			next,
			state,
		)
	}
	for _, op := range pending {
		write(op, "pending")
	}
	for _, op := range completed {
		write(op, SubtleStyle.Render("done "+op.CompletionTime().UTC().Format(dateLayout)))
	}
	return tw.Flush()
}

// WriteReport writes the totals and per-category and per-member breakdowns.
func WriteReport(w io.Writer, report model.ReportOverview) error {
	period := model.Period{Start: report.StartDate.Time, End: report.EndDate.Time}
	fmt.Fprintln(w, TitleStyle.Render(ChartIcon+" Report "+period.String()))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row(tw, "Income", FormatAmount(report.TotalIncomeMinor, report.Currency))
	row(tw, "Expenses", FormatAmount(-report.TotalExpenseMinor, report.Currency))
	row(tw, "Net", FormatAmount(report.NetMinor, report.Currency))
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(report.Categories) > 0 {
		fmt.Fprintln(w)
		tw = newTable(w, "Category", "Type", "Amount")
		for _, c := range report.Categories {
			row(tw, c.Name, string(c.Type), model.FormatMinor(c.AmountMinor, report.Currency))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(report.Members) > 0 {
		fmt.Fprintln(w)
		tw = newTable(w, "Member", "Income", "Expenses")
		for _, m := range report.Members {
			row(tw, m.Name,
				model.FormatMinor(m.IncomeMinor, report.Currency),
				model.FormatMinor(m.ExpenseMinor, report.Currency))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// WriteSettings writes the settings document as key/value pairs.
func WriteSettings(w io.Writer, s model.UserSettingsSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row(tw, "Currency", s.Currency)
	row(tw, "Family currency", s.FamilyCurrency)
	row(tw, "Locale", s.Locale)
	row(tw, "Theme", s.Display.Theme)
	row(tw, "Density", s.Display.Density)
	row(tw, "Show archived", fmt.Sprint(s.Display.ShowArchived))
	row(tw, "Totals in family currency", fmt.Sprint(s.Display.ShowTotalsInFamilyCurrency))
	row(tw, "Supported currencies", strings.Join(s.SupportedCurrencies, ", "))
	return tw.Flush()
}
