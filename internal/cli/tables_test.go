package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Veraticus/family-budget/internal/model"
	"github.com/Veraticus/family-budget/internal/testutil/fixtures"
	"github.com/Veraticus/family-budget/internal/viewsync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestWriteCategories_Tree(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCategories(&buf, []model.Category{
		fixtures.Category("c1", "Food").Build(),
		fixtures.Category("c2", "Groceries").Parent("c1").Build(),
		fixtures.Category("c3", "Salary").Income().System().Build(),
		fixtures.Category("c4", "Old").Archived().Build(),
		fixtures.Category("c5", "Orphan").Parent("gone").Build(),
	})
	require.NoError(t, err)

	out := lines(buf.String())
	require.Len(t, out, 7)
	assert.Contains(t, out[0], "Name")
	assert.Contains(t, out[2], "Food")
	assert.Contains(t, out[3], "  Groceries", "children are indented")
	assert.Contains(t, out[4], "system")
	assert.Contains(t, out[5], "archived")
	assert.Contains(t, out[6], "Orphan", "unknown parents render at top level")
}

func TestWriteTransactions(t *testing.T) {
	view := viewsync.New(viewsync.Filters{})
	view.ApplyCategoryList([]model.Category{fixtures.Category("cat-1", "Food").Build()})
	view.ApplyAccountList([]model.Account{fixtures.Account("acc-1", "Main").Build()})
	view.ApplyMembers([]model.FamilyMember{fixtures.Member("user-1", "Ada")})

	comment := "weekly shop"
	tx := fixtures.Transaction("tx-1").At(fixtures.Day(2024, 3, 5)).Amount(1234).Build()
	tx.Comment = &comment
	income := fixtures.Transaction("tx-2").Income().In("acc-9", "cat-9").Amount(50000).Build()

	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, []model.Transaction{tx, income}, view))

	out := lines(buf.String())
	require.Len(t, out, 4)
	assert.Contains(t, out[2], "2024-03-05")
	assert.Contains(t, out[2], "-12.34 EUR")
	assert.Contains(t, out[2], "Food")
	assert.Contains(t, out[2], "Main")
	assert.Contains(t, out[2], "Ada")
	assert.Contains(t, out[2], "weekly shop")
	assert.Contains(t, out[3], "500.00 EUR")
	assert.Contains(t, out[3], "cat-9", "unknown ids are shown raw")
}

func TestWritePlanned(t *testing.T) {
	view := viewsync.New(viewsync.Filters{})

	var buf bytes.Buffer
	err := WritePlanned(&buf,
		[]model.PlannedOperation{fixtures.Planned("p1").Due(fixtures.Day(2024, 1, 31)).Recurring(model.RecurrenceMonthly).Build()},
		[]model.PlannedOperation{fixtures.Planned("p2").Due(fixtures.Day(2024, 2, 3)).Recurring(model.RecurrenceWeekly).Completed(fixtures.Day(2024, 2, 3)).Build()},
		view,
	)
	require.NoError(t, err)

	out := lines(buf.String())
	require.Len(t, out, 4)
	assert.Contains(t, out[2], "pending")
	assert.Contains(t, out[2], "monthly")
	assert.Contains(t, out[2], "-50.00 EUR")
	assert.Contains(t, out[2], "2024-02-29", "next due clamps to the end of the month")
	assert.Contains(t, out[3], "done 2024-02-03")
	assert.NotContains(t, out[3], "2024-02-10", "completed operations have no next due")
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	err := WriteReport(&buf, model.ReportOverview{
		StartDate:         model.NewTimestamp(fixtures.Day(2024, 3, 1)),
		EndDate:           model.NewTimestamp(fixtures.Day(2024, 3, 31)),
		Currency:          "EUR",
		TotalIncomeMinor:  300000,
		TotalExpenseMinor: 120050,
		NetMinor:          179950,
		Categories:        []model.CategoryTotal{{CategoryID: "c1", Name: "Food", Type: model.CategoryTypeExpense, AmountMinor: 120050}},
		Members:           []model.MemberTotal{{UserID: "u1", Name: "Ada", IncomeMinor: 300000, ExpenseMinor: 120050}},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "2024-03-01..2024-03-31")
	assert.Contains(t, out, "3000.00 EUR")
	assert.Contains(t, out, "-1200.50 EUR")
	assert.Contains(t, out, "1799.50 EUR")
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "Ada")
}

func TestWriteAccountsAndMembers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, []model.Account{
		fixtures.Account("a1", "Main").Balance(-2500).Build(),
		fixtures.Account("a2", "Old").Archived().Build(),
	}))
	out := buf.String()
	assert.Contains(t, out, "-25.00 EUR")
	assert.Contains(t, out, "Old (archived)")

	buf.Reset()
	require.NoError(t, WriteMembers(&buf, []model.FamilyMember{fixtures.Member("u1", "Ada")}))
	assert.Contains(t, buf.String(), "u1@example.com")
}

func TestWriteSettings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSettings(&buf, model.UserSettingsSummary{
		SupportedCurrencies: []string{"EUR", "USD"},
		FamilyCurrency:      "EUR",
		Currency:            "USD",
		Locale:              "en-US",
		Display:             model.DisplaySettings{Theme: model.ThemeDark, ShowArchived: true},
	}))

	out := buf.String()
	assert.Contains(t, out, "EUR, USD")
	assert.Contains(t, out, "dark")
	assert.Regexp(t, `Show archived\s+true`, out)
}
