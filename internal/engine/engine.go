// Package engine drives the remote budget service and feeds every response
// through the view synchronizer.
//
// Methods come in pairs. FetchX only talks to the backend and may run on any
// goroutine; ApplyX mutates the view and must run on the goroutine that owns
// it. The combined methods (Bootstrap, RefreshTransactions, CreateTransaction,
// ...) do both and are meant for callers that own the view and can block,
// such as CLI commands.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/family-budget/internal/common"
	"github.com/Veraticus/family-budget/internal/model"
	"github.com/Veraticus/family-budget/internal/service"
	"github.com/Veraticus/family-budget/internal/viewsync"
	"golang.org/x/sync/errgroup"
)

// ErrSystemCategory is returned when archiving a system category.
var ErrSystemCategory = common.NewValidationError("category", "system categories cannot be archived")

// Engine binds a backend, a user and a view.
type Engine struct {
	svc    service.RemoteBudgetService
	view   *viewsync.Synchronizer
	userID string
}

// New creates an engine acting as userID. userID may be empty until Register
// succeeds.
func New(svc service.RemoteBudgetService, view *viewsync.Synchronizer, userID string) *Engine {
	return &Engine{svc: svc, view: view, userID: userID}
}

// View returns the synchronizer the engine applies responses to.
func (e *Engine) View() *viewsync.Synchronizer {
	return e.view
}

// UserID returns the acting user.
func (e *Engine) UserID() string {
	return e.userID
}

func (e *Engine) requireUser() error {
	if e.userID == "" {
		return common.ErrNotRegistered
	}
	return nil
}

// Register creates the user (and family) and applies the returned
// collections. The engine acts as the new user afterwards.
func (e *Engine) Register(ctx context.Context, req service.RegisterRequest) (*model.Registration, error) {
	if err := req.Validate(); err != nil {
		e.view.SetStatus(viewsync.SectionRegistration, err)
		return nil, err
	}

	reg, err := e.svc.Register(ctx, req)
	if err != nil {
		e.view.SetStatus(viewsync.SectionRegistration, err)
		return nil, fmt.Errorf("register: %w", err)
	}

	e.userID = reg.User.ID
	e.view.ApplyRegistration(*reg)
	e.view.SetStatus(viewsync.SectionRegistration, nil)

	common.LogInfo("registered user", common.Fields{
		"user_id":   reg.User.ID,
		"family_id": reg.Family.ID,
	})
	return reg, nil
}

// ReferenceData is the result of fetching categories, accounts, members and
// settings concurrently. Each section carries its own error.
type ReferenceData struct {
	Settings      *model.UserSettingsSummary
	CategoriesErr error
	AccountsErr   error
	MembersErr    error
	SettingsErr   error
	Categories    []model.Category
	Accounts      []model.Account
	Members       []model.FamilyMember
}

// FetchReference loads the four reference collections in parallel. A
// failing section does not cancel the others.
func (e *Engine) FetchReference(ctx context.Context) *ReferenceData {
	data := &ReferenceData{}
	if err := e.requireUser(); err != nil {
		data.CategoriesErr, data.AccountsErr, data.MembersErr, data.SettingsErr = err, err, err, err
		return data
	}

	// No shared context: a failing section never cancels the other requests.
	// Errors travel in the per-section slots, so every goroutine returns nil.
	var g errgroup.Group
	g.Go(func() error {
		data.Categories, data.CategoriesErr = e.svc.ListCategories(ctx, e.userID)
		return nil
	})
	g.Go(func() error {
		data.Accounts, data.AccountsErr = e.svc.ListAccounts(ctx, e.userID)
		return nil
	})
	g.Go(func() error {
		data.Members, data.MembersErr = e.svc.ListMembers(ctx, e.userID)
		return nil
	})
	g.Go(func() error {
		data.Settings, data.SettingsErr = e.svc.GetSettings(ctx, e.userID)
		return nil
	})
	_ = g.Wait()

	return data
}

// ApplyReference applies every section that loaded and records a status for
// every section that did not. It returns the joined section errors.
func (e *Engine) ApplyReference(data *ReferenceData) error {
	var errs []error

	if data.CategoriesErr == nil {
		e.view.ApplyCategoryList(data.Categories)
	} else {
		errs = append(errs, fmt.Errorf("categories: %w", data.CategoriesErr))
	}
	e.view.SetStatus(viewsync.SectionCategories, data.CategoriesErr)

	if data.AccountsErr == nil {
		e.view.ApplyAccountList(data.Accounts)
	} else {
		errs = append(errs, fmt.Errorf("accounts: %w", data.AccountsErr))
	}
	e.view.SetStatus(viewsync.SectionAccounts, data.AccountsErr)

	if data.MembersErr == nil {
		e.view.ApplyMembers(data.Members)
	} else {
		errs = append(errs, fmt.Errorf("members: %w", data.MembersErr))
	}
	e.view.SetStatus(viewsync.SectionMembers, data.MembersErr)

	switch {
	case data.SettingsErr != nil:
		errs = append(errs, fmt.Errorf("settings: %w", data.SettingsErr))
	case data.Settings != nil:
		e.view.ApplySettings(*data.Settings)
	}
	e.view.SetStatus(viewsync.SectionSettings, data.SettingsErr)

	if len(errs) > 0 {
		err := errors.Join(errs...)
		common.LogWarn(err, "reference data partially loaded", common.Fields{"failed": len(errs)})
		return err
	}
	return nil
}

// Bootstrap loads all reference data into the view.
func (e *Engine) Bootstrap(ctx context.Context) error {
	return e.ApplyReference(e.FetchReference(ctx))
}

// TransactionQuery derives the backend query from the active filters.
func (e *Engine) TransactionQuery() service.TransactionQuery {
	f := e.view.Filters()
	return service.TransactionQuery{
		Period:     f.Period,
		Type:       f.Type,
		CategoryID: f.CategoryID,
		AccountID:  f.AccountID,
		UserID:     f.MemberID,
	}
}

// TransactionsResult is a transaction listing tagged with the generation it
// was requested under.
type TransactionsResult struct {
	Err          error
	Transactions []model.Transaction
	Generation   uint64
}

// FetchTransactions lists transactions for query.
func (e *Engine) FetchTransactions(ctx context.Context, query service.TransactionQuery, generation uint64) TransactionsResult {
	res := TransactionsResult{Generation: generation}
	if err := e.requireUser(); err != nil {
		res.Err = err
		return res
	}
	if err := query.Validate(); err != nil {
		res.Err = err
		return res
	}
	res.Transactions, res.Err = e.svc.ListTransactions(ctx, e.userID, query)
	return res
}

// ApplyTransactions applies a listing if its generation is still current.
// It returns false for a stale result, which is dropped untouched.
func (e *Engine) ApplyTransactions(res TransactionsResult) bool {
	if !e.view.IsCurrent(res.Generation) {
		common.LogDebug("discarding stale transactions", common.Fields{
			"generation": res.Generation,
			"current":    e.view.Generation(),
		})
		return false
	}
	if res.Err == nil {
		e.view.ApplyTransactionList(res.Transactions)
	}
	e.view.SetStatus(viewsync.SectionTransactions, res.Err)
	return true
}

// RefreshTransactions reloads the transaction window for the active filters.
func (e *Engine) RefreshTransactions(ctx context.Context) error {
	res := e.FetchTransactions(ctx, e.TransactionQuery(), e.view.Generation())
	e.ApplyTransactions(res)
	return res.Err
}

// CreateTransaction records a transaction and inserts it into the view when
// it matches the active window. It returns the created transaction and
// whether the view changed.
func (e *Engine) CreateTransaction(ctx context.Context, in service.TransactionInput) (*model.Transaction, bool, error) {
	if err := e.requireUser(); err != nil {
		return nil, false, err
	}
	if err := in.Validate(); err != nil {
		e.view.SetStatus(viewsync.SectionTransactions, err)
		return nil, false, err
	}

	tx, err := e.svc.CreateTransaction(ctx, e.userID, in)
	if err != nil {
		e.view.SetStatus(viewsync.SectionTransactions, err)
		return nil, false, fmt.Errorf("create transaction: %w", err)
	}

	inserted := e.view.InsertTransaction(*tx)
	e.view.SetStatus(viewsync.SectionTransactions, nil)
	common.LogDebug("created transaction", common.Fields{"id": tx.ID, "in_view": inserted})
	return tx, inserted, nil
}
