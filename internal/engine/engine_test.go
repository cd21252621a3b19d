package engine

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Veraticus/family-budget/internal/api"
	"github.com/Veraticus/family-budget/internal/common"
	"github.com/Veraticus/family-budget/internal/model"
	"github.com/Veraticus/family-budget/internal/service"
	"github.com/Veraticus/family-budget/internal/testutil/fixtures"
	"github.com/Veraticus/family-budget/internal/viewsync"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func march() viewsync.Filters {
	return viewsync.Filters{Period: model.MonthOf(fixtures.Day(2024, 3, 1))}
}

func newTestEngine(t *testing.T) (*Engine, *api.MockClient) {
	t.Helper()
	mock := api.NewMockClient()
	return New(mock, viewsync.New(march()), "user-1"), mock
}

// ignoreStatus compares view states while ignoring per-section status text.
var ignoreStatus = cmpopts.IgnoreFields(viewsync.ViewState{}, "Status")

func seed(e *Engine) {
	e.view.ApplyCategoryList([]model.Category{
		fixtures.Category("cat-1", "Food").Build(),
		fixtures.Category("cat-sys", "Transfers").System().Build(),
	})
	e.view.ApplyAccountList([]model.Account{fixtures.Account("acc-1", "Main").Build()})
	e.view.ApplyTransactionList([]model.Transaction{
		fixtures.Transaction("tx-1").At(fixtures.Day(2024, 3, 2)).Build(),
	})
}

func TestEngine_Bootstrap(t *testing.T) {
	e, mock := newTestEngine(t)
	mock.ListCategoriesFn = func(_ context.Context, userID string) ([]model.Category, error) {
		assert.Equal(t, "user-1", userID)
		return []model.Category{
			fixtures.Category("c2", "Rent").Build(),
			fixtures.Category("c1", "Food").Build(),
		}, nil
	}
	mock.ListAccountsFn = func(context.Context, string) ([]model.Account, error) {
		return []model.Account{fixtures.Account("a1", "Cash").Build()}, nil
	}
	mock.ListMembersFn = func(context.Context, string) ([]model.FamilyMember, error) {
		return []model.FamilyMember{fixtures.Member("user-1", "Ada")}, nil
	}
	mock.GetSettingsFn = func(context.Context, string) (*model.UserSettingsSummary, error) {
		return &model.UserSettingsSummary{Currency: "EUR", Display: model.DisplaySettings{ShowArchived: true}}, nil
	}

	require.NoError(t, e.Bootstrap(context.Background()))

	state := e.View().Snapshot()
	assert.Equal(t, "Food", state.Categories[0].Name)
	assert.Len(t, state.Accounts, 1)
	assert.Len(t, state.Members, 1)
	require.NotNil(t, state.Settings)
	assert.True(t, state.ShowArchived)
	assert.Equal(t, viewsync.Loaded{Categories: true, Accounts: true, Members: true, Settings: true}, state.Loaded)
	assert.Empty(t, state.Status)
	assert.Equal(t, viewsync.Entry{CategoryID: "c1", AccountID: "a1"}, state.Entry)

	for _, method := range []string{"ListCategories", "ListAccounts", "ListMembers", "GetSettings"} {
		assert.Equal(t, 1, mock.CallCount(method), method)
	}
}

func TestEngine_BootstrapRunsConcurrently(t *testing.T) {
	e, mock := newTestEngine(t)

	var inFlight, peak atomic.Int32
	track := func() {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
	}
	mock.ListCategoriesFn = func(context.Context, string) ([]model.Category, error) { track(); return nil, nil }
	mock.ListAccountsFn = func(context.Context, string) ([]model.Account, error) { track(); return nil, nil }
	mock.ListMembersFn = func(context.Context, string) ([]model.FamilyMember, error) { track(); return nil, nil }
	mock.GetSettingsFn = func(context.Context, string) (*model.UserSettingsSummary, error) {
		track()
		return &model.UserSettingsSummary{}, nil
	}

	require.NoError(t, e.Bootstrap(context.Background()))
	assert.Greater(t, peak.Load(), int32(1))
}

func TestEngine_BootstrapPartialFailure(t *testing.T) {
	e, mock := newTestEngine(t)
	mock.ListCategoriesFn = func(context.Context, string) ([]model.Category, error) {
		return []model.Category{fixtures.Category("c1", "Food").Build()}, nil
	}
	mock.ListAccountsFn = func(context.Context, string) ([]model.Account, error) {
		return nil, &common.ServerError{StatusCode: 503, Body: "accounts unavailable"}
	}

	err := e.Bootstrap(context.Background())
	require.Error(t, err)
	var serverErr *common.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, 503, serverErr.StatusCode)

	state := e.View().Snapshot()
	assert.Len(t, state.Categories, 1, "successful sections are applied")
	assert.Empty(t, state.Accounts)
	assert.False(t, state.Loaded.Accounts)
	assert.Equal(t, "accounts unavailable", e.View().Status(viewsync.SectionAccounts))
	assert.Empty(t, e.View().Status(viewsync.SectionCategories))
}

func TestEngine_BootstrapFailureDoesNotCancelOtherSections(t *testing.T) {
	e, mock := newTestEngine(t)
	mock.ListCategoriesFn = func(context.Context, string) ([]model.Category, error) {
		return nil, &common.ServerError{StatusCode: 500, Body: "boom"}
	}
	mock.ListAccountsFn = func(ctx context.Context, _ string) ([]model.Account, error) {
		time.Sleep(20 * time.Millisecond)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return []model.Account{fixtures.Account("a1", "Cash").Build()}, nil
	}

	err := e.Bootstrap(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "categories")
	assert.NotContains(t, err.Error(), "accounts")

	state := e.View().Snapshot()
	assert.Len(t, state.Accounts, 1)
	assert.True(t, state.Loaded.Accounts)
	assert.Equal(t, "boom", e.View().Status(viewsync.SectionCategories))
}

func TestEngine_RequiresUser(t *testing.T) {
	mock := api.NewMockClient()
	e := New(mock, viewsync.New(march()), "")

	err := e.Bootstrap(context.Background())
	require.ErrorIs(t, err, common.ErrNotRegistered)
	require.ErrorIs(t, e.RefreshTransactions(context.Background()), common.ErrNotRegistered)
	_, err = e.CreateCategory(context.Background(), service.CategoryInput{Name: "x", Type: model.CategoryTypeExpense})
	require.ErrorIs(t, err, common.ErrNotRegistered)

	assert.Zero(t, mock.CallCount("ListCategories"))
	assert.Zero(t, mock.CallCount("ListTransactions"))
	assert.Zero(t, mock.CallCount("CreateCategory"))
}

func TestEngine_Register(t *testing.T) {
	t.Run("validation error sends nothing", func(t *testing.T) {
		mock := api.NewMockClient()
		e := New(mock, viewsync.New(march()), "")

		_, err := e.Register(context.Background(), service.RegisterRequest{Name: "Ada"})
		require.ErrorIs(t, err, common.ErrValidation)
		assert.Zero(t, mock.CallCount("Register"))
		assert.Equal(t, "email: is required", e.View().Status(viewsync.SectionRegistration))
	})

	t.Run("applies returned collections", func(t *testing.T) {
		mock := api.NewMockClient()
		mock.RegisterFn = func(_ context.Context, req service.RegisterRequest) (*model.Registration, error) {
			return &model.Registration{
				User:       model.User{ID: "user-9", FamilyID: "fam-9", Name: req.Name},
				Family:     model.Family{ID: "fam-9", BaseCurrency: "EUR"},
				Accounts:   []model.Account{fixtures.Account("acc-1", "Cash").Build()},
				Members:    []model.FamilyMember{fixtures.Member("user-9", req.Name)},
				Categories: []model.Category{fixtures.Category("cat-1", "Food").Build()},
			}, nil
		}
		e := New(mock, viewsync.New(march()), "")

		reg, err := e.Register(context.Background(), service.RegisterRequest{Name: "Ada", Email: "ada@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "user-9", reg.User.ID)
		assert.Equal(t, "user-9", e.UserID())
		assert.Equal(t, viewsync.Entry{CategoryID: "cat-1", AccountID: "acc-1"}, e.View().Entry())
	})
}

func TestEngine_RefreshTransactions(t *testing.T) {
	e, mock := newTestEngine(t)
	e.View().SetFilters(viewsync.Filters{
		Period:    march().Period,
		Type:      model.TransactionTypeExpense,
		AccountID: "acc-1",
		MemberID:  "user-2",
	})

	var got service.TransactionQuery
	mock.ListTransactionsFn = func(_ context.Context, _ string, q service.TransactionQuery) ([]model.Transaction, error) {
		got = q
		return []model.Transaction{
			fixtures.Transaction("a").At(fixtures.Day(2024, 3, 1)).Build(),
			fixtures.Transaction("b").At(fixtures.Day(2024, 3, 9)).Build(),
		}, nil
	}

	require.NoError(t, e.RefreshTransactions(context.Background()))
	assert.Equal(t, service.TransactionQuery{
		Period:    march().Period,
		Type:      model.TransactionTypeExpense,
		AccountID: "acc-1",
		UserID:    "user-2",
	}, got)

	txs := e.View().Snapshot().Transactions
	require.Len(t, txs, 2)
	assert.Equal(t, "b", txs[0].ID, "newest first")
}

func TestEngine_StaleTransactionsDiscarded(t *testing.T) {
	e, mock := newTestEngine(t)
	mock.ListTransactionsFn = func(context.Context, string, service.TransactionQuery) ([]model.Transaction, error) {
		return []model.Transaction{fixtures.Transaction("old-window").At(fixtures.Day(2024, 3, 3)).Build()}, nil
	}

	res := e.FetchTransactions(context.Background(), e.TransactionQuery(), e.View().Generation())
	require.NoError(t, res.Err)

	e.View().SetFilters(viewsync.Filters{Period: model.MonthOf(fixtures.Day(2024, 4, 1))})
	before := e.View().Snapshot()

	assert.False(t, e.ApplyTransactions(res))
	if diff := cmp.Diff(before, e.View().Snapshot()); diff != "" {
		t.Errorf("stale result changed the view (-want +got):\n%s", diff)
	}
}

func TestEngine_RefreshFailureKeepsTransactions(t *testing.T) {
	e, mock := newTestEngine(t)
	seed(e)
	before := e.View().Snapshot()

	mock.ListTransactionsFn = func(context.Context, string, service.TransactionQuery) ([]model.Transaction, error) {
		return nil, common.ErrTransport
	}

	err := e.RefreshTransactions(context.Background())
	require.ErrorIs(t, err, common.ErrTransport)
	assert.Equal(t, "network error", e.View().Status(viewsync.SectionTransactions))
	if diff := cmp.Diff(before, e.View().Snapshot(), ignoreStatus); diff != "" {
		t.Errorf("failed refresh changed the view (-want +got):\n%s", diff)
	}
}

func TestEngine_RefreshRejectsInvertedPeriod(t *testing.T) {
	e, mock := newTestEngine(t)
	e.View().SetFilters(viewsync.Filters{Period: model.Period{
		Start: fixtures.Day(2024, 3, 10),
		End:   fixtures.Day(2024, 3, 1),
	}})

	err := e.RefreshTransactions(context.Background())
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Zero(t, mock.CallCount("ListTransactions"))
}

func TestEngine_CreateTransaction(t *testing.T) {
	valid := service.TransactionInput{
		AccountID:   "acc-1",
		CategoryID:  "cat-1",
		Type:        model.TransactionTypeExpense,
		AmountMinor: 1250,
	}

	tests := []struct {
		name         string
		occurredAt   time.Time
		amount       int64
		wantErr      error
		wantInserted bool
		wantCalls    int
	}{
		{
			name:         "inside window",
			occurredAt:   time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC),
			amount:       1250,
			wantInserted: true,
			wantCalls:    1,
		},
		{
			name:       "outside window",
			occurredAt: fixtures.Day(2024, 4, 1),
			amount:     1250,
			wantCalls:  1,
		},
		{
			name:       "zero amount rejected locally",
			occurredAt: fixtures.Day(2024, 3, 5),
			amount:     0,
			wantErr:    common.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, mock := newTestEngine(t)
			seed(e)
			before := e.View().Snapshot()

			mock.CreateTransactionFn = func(_ context.Context, userID string, in service.TransactionInput) (*model.Transaction, error) {
				tx := fixtures.Transaction("tx-new").At(in.OccurredAt.Time).Amount(in.AmountMinor).By(userID).Build()
				return &tx, nil
			}

			in := valid
			in.AmountMinor = tt.amount
			in.OccurredAt = model.NewTimestamp(tt.occurredAt)

			tx, inserted, err := e.CreateTransaction(context.Background(), in)
			assert.Equal(t, tt.wantCalls, mock.CallCount("CreateTransaction"))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				if diff := cmp.Diff(before, e.View().Snapshot(), ignoreStatus); diff != "" {
					t.Errorf("rejected input changed the view (-want +got):\n%s", diff)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "tx-new", tx.ID)
			assert.Equal(t, tt.wantInserted, inserted)

			txs := e.View().Snapshot().Transactions
			if tt.wantInserted {
				require.Len(t, txs, 2)
				assert.Equal(t, "tx-new", txs[0].ID)
			} else {
				assert.Len(t, txs, 1)
			}
		})
	}
}

func TestEngine_CreateTransactionServerError(t *testing.T) {
	e, mock := newTestEngine(t)
	seed(e)
	before := e.View().Snapshot()

	mock.CreateTransactionFn = func(context.Context, string, service.TransactionInput) (*model.Transaction, error) {
		return nil, &common.ServerError{StatusCode: 422, Body: "account is archived"}
	}

	_, _, err := e.CreateTransaction(context.Background(), service.TransactionInput{
		OccurredAt:  model.NewTimestamp(fixtures.Day(2024, 3, 5)),
		AccountID:   "acc-1",
		CategoryID:  "cat-1",
		Type:        model.TransactionTypeExpense,
		AmountMinor: 100,
	})
	require.Error(t, err)
	assert.Equal(t, "account is archived", e.View().Status(viewsync.SectionTransactions))
	if diff := cmp.Diff(before, e.View().Snapshot(), ignoreStatus); diff != "" {
		t.Errorf("failed create changed the view (-want +got):\n%s", diff)
	}
}
