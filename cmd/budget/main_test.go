package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/family-budget/internal/api"
	"github.com/Veraticus/family-budget/internal/common"
	"github.com/Veraticus/family-budget/internal/config"
	"github.com/Veraticus/family-budget/internal/engine"
	"github.com/Veraticus/family-budget/internal/model"
	"github.com/Veraticus/family-budget/internal/service"
	"github.com/Veraticus/family-budget/internal/testutil/fixtures"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	mock        *api.MockClient
	sessionPath string
	stdin       string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	h := &harness{
		mock:        api.NewMockClient(),
		sessionPath: filepath.Join(dir, "session.json"),
	}

	t.Setenv("HOME", dir)
	t.Setenv("BUDGET_SESSION_PATH", h.sessionPath)
	t.Setenv("BUDGET_API_USER_ID", "")

	origService, origNow := newService, now
	newService = func(*config.Config) (service.RemoteBudgetService, error) { return h.mock, nil }
	now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() {
		newService = origService
		now = origNow
	})
	return h
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(viper.New())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(h.stdin))
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// runAs runs a command acting as user-1.
func (h *harness) runAs(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return h.run(t, append([]string{"--user-id", "user-1"}, args...)...)
}

func (h *harness) withReference() {
	h.mock.ListCategoriesFn = func(context.Context, string) ([]model.Category, error) {
		return []model.Category{
			fixtures.Category("cat-food", "Food").Build(),
			fixtures.Category("cat-old", "Old hobby").Archived().Build(),
			fixtures.Category("cat-sys", "Transfers").System().Build(),
			fixtures.Category("cat-salary", "Salary").Income().Build(),
		}, nil
	}
	h.mock.ListAccountsFn = func(context.Context, string) ([]model.Account, error) {
		return []model.Account{fixtures.Account("acc-1", "Checking").Balance(150000).Build()}, nil
	}
	h.mock.ListMembersFn = func(context.Context, string) ([]model.FamilyMember, error) {
		return []model.FamilyMember{fixtures.Member("user-1", "Ada")}, nil
	}
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "budget dev\n", out)
}

func TestRegister_SavesSession(t *testing.T) {
	h := newHarness(t)
	h.mock.RegisterFn = func(_ context.Context, req service.RegisterRequest) (*model.Registration, error) {
		assert.Equal(t, "Ada", req.Name)
		assert.Equal(t, "ada@example.com", req.Email)
		assert.Equal(t, "Lovelaces", req.FamilyName)
		assert.Equal(t, "EUR", req.Currency)
		return &model.Registration{
			User:   model.User{ID: "user-42", Name: "Ada", FamilyID: "fam-1"},
			Family: model.Family{ID: "fam-1", Name: "Lovelaces", BaseCurrency: "EUR"},
		}, nil
	}

	out, err := h.run(t, "register", "--name", "Ada", "--email", "ada@example.com",
		"--family-name", "Lovelaces", "--currency", "EUR")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered Ada")

	session, err := config.LoadSession(h.sessionPath)
	require.NoError(t, err)
	assert.Equal(t, "user-42", session.UserID)
	assert.Equal(t, "fam-1", session.FamilyID)
	assert.Equal(t, "EUR", session.Currency)

	// Later commands act as the saved user.
	var seen string
	h.mock.ListMembersFn = func(_ context.Context, userID string) ([]model.FamilyMember, error) {
		seen = userID
		return nil, nil
	}
	_, err = h.run(t, "members", "list")
	require.NoError(t, err)
	assert.Equal(t, "user-42", seen)
}

func TestRegister_PromptsForMissingValues(t *testing.T) {
	h := newHarness(t)
	h.stdin = "Grace\ngrace@example.com\n"
	h.mock.RegisterFn = func(_ context.Context, req service.RegisterRequest) (*model.Registration, error) {
		assert.Equal(t, "Grace", req.Name)
		assert.Equal(t, "grace@example.com", req.Email)
		return &model.Registration{User: model.User{ID: "user-7", Name: req.Name}}, nil
	}

	out, err := h.run(t, "register")
	require.NoError(t, err)
	assert.Contains(t, out, "Your name")
	assert.Contains(t, out, "Email")
	assert.Equal(t, 1, h.mock.CallCount("Register"))
}

func TestRegister_InvalidEmailSendsNothing(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "register", "--name", "Ada", "--email", "not-an-email")
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Zero(t, h.mock.CallCount("Register"))
}

func TestCommands_RequireRegistration(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "categories", "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotRegistered)
	assert.Contains(t, err.Error(), "budget register")
	assert.Zero(t, h.mock.CallCount("ListCategories"))
}

func TestCategoriesList(t *testing.T) {
	h := newHarness(t)
	h.withReference()

	out, err := h.runAs(t, "categories", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "Transfers")
	assert.NotContains(t, out, "Old hobby")

	out, err = h.runAs(t, "categories", "list", "--archived")
	require.NoError(t, err)
	assert.Contains(t, out, "Old hobby")
}

func TestCategoriesArchive(t *testing.T) {
	t.Run("system category is refused locally", func(t *testing.T) {
		h := newHarness(t)
		h.withReference()

		_, err := h.runAs(t, "categories", "archive", "cat-sys")
		require.ErrorIs(t, err, engine.ErrSystemCategory)
		assert.Zero(t, h.mock.CallCount("ArchiveCategory"))
	})

	t.Run("regular category", func(t *testing.T) {
		h := newHarness(t)
		h.withReference()
		h.mock.ArchiveCategoryFn = func(_ context.Context, _, id string, archived bool) (*model.Category, error) {
			assert.Equal(t, "cat-food", id)
			assert.True(t, archived)
			c := fixtures.Category(id, "Food").Archived().Build()
			return &c, nil
		}

		out, err := h.runAs(t, "categories", "archive", "cat-food")
		require.NoError(t, err)
		assert.Contains(t, out, `Archived category "Food"`)
	})

	t.Run("reports active subcategories", func(t *testing.T) {
		h := newHarness(t)
		h.withReference()
		h.mock.ListCategoriesFn = func(context.Context, string) ([]model.Category, error) {
			return []model.Category{
				fixtures.Category("cat-home", "Home").Build(),
				fixtures.Category("cat-rent", "Rent").Parent("cat-home").Build(),
				fixtures.Category("cat-gas", "Gas").Parent("cat-home").Archived().Build(),
			}, nil
		}
		h.mock.ArchiveCategoryFn = func(_ context.Context, _, id string, _ bool) (*model.Category, error) {
			c := fixtures.Category(id, "Home").Archived().Build()
			return &c, nil
		}

		out, err := h.runAs(t, "categories", "archive", "cat-home")
		require.NoError(t, err)
		assert.Contains(t, out, "1 subcategories are still active")
	})

	t.Run("unarchive", func(t *testing.T) {
		h := newHarness(t)
		h.withReference()
		h.mock.ArchiveCategoryFn = func(_ context.Context, _, id string, archived bool) (*model.Category, error) {
			assert.False(t, archived)
			c := fixtures.Category(id, "Old hobby").Build()
			return &c, nil
		}

		out, err := h.runAs(t, "categories", "unarchive", "cat-old")
		require.NoError(t, err)
		assert.Contains(t, out, `Restored category "Old hobby"`)
	})
}

func TestCategoriesEdit_KeepsUnchangedFields(t *testing.T) {
	h := newHarness(t)
	h.mock.ListCategoriesFn = func(context.Context, string) ([]model.Category, error) {
		c := fixtures.Category("cat-food", "Food").Build()
		c.Description = "Groceries and eating out"
		c.Color = "#ff0000"
		return []model.Category{c}, nil
	}

	var got service.CategoryInput
	h.mock.UpdateCategoryFn = func(_ context.Context, _, id string, in service.CategoryInput) (*model.Category, error) {
		got = in
		return &model.Category{ID: id, Name: in.Name, Type: in.Type}, nil
	}

	_, err := h.runAs(t, "categories", "edit", "cat-food", "--name", "Groceries")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Name)
	assert.Equal(t, model.CategoryTypeExpense, got.Type)
	assert.Equal(t, "Groceries and eating out", got.Description)
	assert.Equal(t, "#ff0000", got.Color)

	_, err = h.runAs(t, "categories", "edit", "missing", "--name", "X")
	require.Error(t, err)
	assert.Equal(t, 1, h.mock.CallCount("UpdateCategory"))
}

func TestAccountsAdd(t *testing.T) {
	h := newHarness(t)
	var got service.AccountInput
	h.mock.CreateAccountFn = func(_ context.Context, _ string, in service.AccountInput) (*model.Account, error) {
		got = in
		return &model.Account{ID: "acc-9", Name: in.Name, Currency: in.Currency, BalanceMinor: in.BalanceMinor}, nil
	}

	out, err := h.runAs(t, "accounts", "add", "Credit card", "--type", "card", "--currency", "EUR", "--balance", "-250.5", "--shared")
	require.NoError(t, err)
	assert.Equal(t, model.AccountTypeCard, got.Type)
	assert.Equal(t, int64(-25050), got.BalanceMinor)
	assert.True(t, got.IsShared)
	assert.Contains(t, out, "-250.50 EUR")
}

func TestTransactionsList(t *testing.T) {
	h := newHarness(t)
	h.withReference()

	var got service.TransactionQuery
	h.mock.ListTransactionsFn = func(_ context.Context, _ string, q service.TransactionQuery) ([]model.Transaction, error) {
		got = q
		return []model.Transaction{
			fixtures.Transaction("tx-1").In("acc-1", "cat-food").At(fixtures.Day(2024, 2, 10)).Amount(1999).Build(),
		}, nil
	}

	out, err := h.runAs(t, "transactions", "list", "--from", "2024-02-01", "--to", "2024-02-29", "--category", "cat-food", "--type", "expense")
	require.NoError(t, err)
	assert.Equal(t, fixtures.Day(2024, 2, 1), got.Period.Start)
	assert.Equal(t, fixtures.Day(2024, 2, 29), got.Period.End)
	assert.Equal(t, "cat-food", got.CategoryID)
	assert.Equal(t, model.TransactionTypeExpense, got.Type)
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "Checking")
	assert.Contains(t, out, "-19.99 EUR")
}

func TestTransactionsList_DefaultsToCurrentMonth(t *testing.T) {
	h := newHarness(t)
	var got service.TransactionQuery
	h.mock.ListTransactionsFn = func(_ context.Context, _ string, q service.TransactionQuery) ([]model.Transaction, error) {
		got = q
		return nil, nil
	}

	out, err := h.runAs(t, "transactions", "list")
	require.NoError(t, err)
	assert.Equal(t, model.MonthOf(fixtures.Day(2024, 3, 1)), got.Period)
	assert.Contains(t, out, "No transactions match")
}

func TestTransactionsList_Rejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "start after end", args: []string{"--from", "2024-03-10", "--to", "2024-03-01"}},
		{name: "bad date", args: []string{"--from", "March"}},
		{name: "unknown category", args: []string{"--category", "nope"}},
		{name: "unknown type", args: []string{"--type", "gift"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.withReference()

			_, err := h.runAs(t, append([]string{"transactions", "list"}, tt.args...)...)
			require.ErrorIs(t, err, common.ErrValidation)
			assert.Zero(t, h.mock.CallCount("ListTransactions"))
		})
	}
}

func TestTransactionsAdd_UsesEntryDefaults(t *testing.T) {
	h := newHarness(t)
	h.withReference()

	var got service.TransactionInput
	h.mock.CreateTransactionFn = func(_ context.Context, _ string, in service.TransactionInput) (*model.Transaction, error) {
		got = in
		tx := fixtures.Transaction("tx-new").In(in.AccountID, in.CategoryID).Amount(in.AmountMinor).At(in.OccurredAt.Time).Build()
		return &tx, nil
	}

	out, err := h.runAs(t, "transactions", "add", "--amount", "12,34", "--at", "2024-03-02", "--comment", "lunch")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", got.AccountID)
	assert.Equal(t, "cat-food", got.CategoryID)
	assert.Equal(t, int64(1234), got.AmountMinor)
	assert.Equal(t, model.TransactionTypeExpense, got.Type)
	require.NotNil(t, got.Comment)
	assert.Equal(t, "lunch", *got.Comment)
	assert.Contains(t, out, "-12.34 EUR on 2024-03-02")
}

func TestTransactionsAdd_InvalidAmount(t *testing.T) {
	for _, amount := range []string{"0", "-5", "abc", "1.2.3"} {
		t.Run(amount, func(t *testing.T) {
			h := newHarness(t)
			_, err := h.runAs(t, "transactions", "add", "--amount", amount, "--account", "acc-1", "--category", "cat-food")
			require.ErrorIs(t, err, common.ErrValidation)
			assert.Zero(t, h.mock.CallCount("CreateTransaction"))
		})
	}
}

func TestPlanned(t *testing.T) {
	h := newHarness(t)
	h.withReference()
	h.mock.ListPlannedOperationsFn = func(context.Context, string) (*service.PlannedOperations, error) {
		return &service.PlannedOperations{
			Pending:   []model.PlannedOperation{fixtures.Planned("op-rent").Due(fixtures.Day(2024, 4, 1)).Build()},
			Completed: []model.PlannedOperation{fixtures.Planned("op-gym").Completed(fixtures.Day(2024, 3, 1)).Build()},
		}, nil
	}

	out, err := h.runAs(t, "planned", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Planned op-rent")
	assert.Contains(t, out, "pending")
	assert.Contains(t, out, "done 2024-03-01")

	h.mock.CompletePlannedOperationFn = func(_ context.Context, _, id string) (*model.PlannedOperation, error) {
		op := fixtures.Planned(id).Recurring(model.RecurrenceMonthly).Due(fixtures.Day(2024, 5, 1)).Build()
		return &op, nil
	}
	out, err = h.runAs(t, "planned", "complete", "op-rent")
	require.NoError(t, err)
	assert.Contains(t, out, "next due 2024-05-01")
}

func TestPlannedAdd(t *testing.T) {
	h := newHarness(t)
	var got service.PlannedOperationInput
	h.mock.CreatePlannedOperationFn = func(_ context.Context, _ string, in service.PlannedOperationInput) (*model.PlannedOperation, error) {
		got = in
		op := fixtures.Planned("op-1").Due(in.DueAt.Time).Build()
		op.Title = in.Title
		return &op, nil
	}

	_, err := h.runAs(t, "planned", "add", "Rent", "--account", "acc-1", "--category", "cat-food",
		"--amount", "950", "--due", "2024-04-01", "--repeat", "monthly")
	require.NoError(t, err)
	assert.Equal(t, "Rent", got.Title)
	assert.Equal(t, int64(95000), got.AmountMinor)
	assert.Equal(t, model.RecurrenceMonthly, got.Recurrence)
	assert.Equal(t, fixtures.Day(2024, 4, 1), got.DueAt.Time)
	assert.Zero(t, h.mock.CallCount("ListCategories"))

	_, err = h.runAs(t, "planned", "add", "Bad", "--account", "acc-1", "--category", "cat-food",
		"--amount", "1", "--repeat", "daily")
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Equal(t, 1, h.mock.CallCount("CreatePlannedOperation"))
}

func TestReport(t *testing.T) {
	h := newHarness(t)
	var got model.Period
	h.mock.ReportOverviewFn = func(_ context.Context, _ string, p model.Period) (*model.ReportOverview, error) {
		got = p
		return &model.ReportOverview{
			StartDate:         model.NewTimestamp(p.Start),
			EndDate:           model.NewTimestamp(p.End),
			Currency:          "EUR",
			TotalIncomeMinor:  300000,
			TotalExpenseMinor: 120050,
			NetMinor:          179950,
			Categories:        []model.CategoryTotal{{CategoryID: "cat-food", Name: "Food", Type: model.CategoryTypeExpense, AmountMinor: 120050}},
		}, nil
	}

	out, err := h.runAs(t, "report")
	require.NoError(t, err)
	assert.Equal(t, model.MonthOf(fixtures.Day(2024, 3, 1)), got)
	assert.Contains(t, out, "3000.00 EUR")
	assert.Contains(t, out, "1799.50 EUR")
	assert.Contains(t, out, "Food")
}

func TestReport_ServerError(t *testing.T) {
	h := newHarness(t)
	h.mock.ReportOverviewFn = func(context.Context, string, model.Period) (*model.ReportOverview, error) {
		return nil, &common.ServerError{StatusCode: 500, Body: "report unavailable"}
	}

	_, err := h.runAs(t, "report")
	require.Error(t, err)
	var serverErr *common.ServerError
	require.True(t, errors.As(err, &serverErr))
	assert.Equal(t, "report unavailable", serverErr.Body)
}

func TestSettingsSet_OnlyChangesFlags(t *testing.T) {
	h := newHarness(t)
	h.mock.GetSettingsFn = func(context.Context, string) (*model.UserSettingsSummary, error) {
		return &model.UserSettingsSummary{
			Currency: "EUR",
			Locale:   "de-DE",
			Display:  model.DisplaySettings{Theme: model.ThemeDark, Density: model.DensityComfortable},
		}, nil
	}
	var got service.SettingsUpdate
	h.mock.UpdateSettingsFn = func(_ context.Context, _ string, in service.SettingsUpdate) (*model.UserSettingsSummary, error) {
		got = in
		return &model.UserSettingsSummary{Currency: in.Currency, Locale: in.Locale, Display: in.Display}, nil
	}

	out, err := h.runAs(t, "settings", "set", "--theme", "light", "--show-archived")
	require.NoError(t, err)
	assert.Equal(t, "EUR", got.Currency)
	assert.Equal(t, "de-DE", got.Locale)
	assert.Equal(t, model.ThemeLight, got.Display.Theme)
	assert.Equal(t, model.DensityComfortable, got.Display.Density)
	assert.True(t, got.Display.ShowArchived)
	assert.Contains(t, out, "Settings saved")
}

func TestParseBalance(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "", want: 0},
		{in: "0", want: 0},
		{in: "0.00", want: 0},
		{in: "12.5", want: 1250},
		{in: "-3,10", want: -310},
		{in: "ten", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseBalance(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePeriod_OpenBounds(t *testing.T) {
	p, err := parsePeriod("2024-01-15", "")
	require.NoError(t, err)
	assert.Equal(t, fixtures.Day(2024, 1, 15), p.Start)
	assert.True(t, p.End.IsZero())
}
