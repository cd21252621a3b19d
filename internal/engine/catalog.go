package engine

import (
	"context"
	"fmt"

	"github.com/Veraticus/family-budget/internal/common"
	"github.com/Veraticus/family-budget/internal/model"
	"github.com/Veraticus/family-budget/internal/service"
	"github.com/Veraticus/family-budget/internal/viewsync"
)

// CreateCategory creates a category and upserts it into the view.
func (e *Engine) CreateCategory(ctx context.Context, in service.CategoryInput) (*model.Category, error) {
	if err := e.requireUser(); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		e.view.SetStatus(viewsync.SectionCategories, err)
		return nil, err
	}

	category, err := e.svc.CreateCategory(ctx, e.userID, in)
	if err != nil {
		e.view.SetStatus(viewsync.SectionCategories, err)
		return nil, fmt.Errorf("create category: %w", err)
	}

	e.view.UpsertCategory(*category)
	e.view.SetStatus(viewsync.SectionCategories, nil)
	return category, nil
}

// EditCategory updates a category and upserts the server's copy.
func (e *Engine) EditCategory(ctx context.Context, categoryID string, in service.CategoryInput) (*model.Category, error) {
	if err := e.requireUser(); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		e.view.SetStatus(viewsync.SectionCategories, err)
		return nil, err
	}

	category, err := e.svc.UpdateCategory(ctx, e.userID, categoryID, in)
	if err != nil {
		e.view.SetStatus(viewsync.SectionCategories, err)
		return nil, fmt.Errorf("edit category %s: %w", categoryID, err)
	}

	e.view.UpsertCategory(*category)
	e.view.SetStatus(viewsync.SectionCategories, nil)
	return category, nil
}

// ArchiveCategory archives or restores a category. Archiving a category the
// view knows to be a system category is refused without a request.
func (e *Engine) ArchiveCategory(ctx context.Context, categoryID string, archived bool) (*model.Category, error) {
	if err := e.requireUser(); err != nil {
		return nil, err
	}
	if known, ok := e.view.Category(categoryID); ok && archived && !known.CanArchive() {
		e.view.SetStatus(viewsync.SectionCategories, ErrSystemCategory)
		return nil, ErrSystemCategory
	}

	category, err := e.svc.ArchiveCategory(ctx, e.userID, categoryID, archived)
	if err != nil {
		e.view.SetStatus(viewsync.SectionCategories, err)
		return nil, fmt.Errorf("archive category %s: %w", categoryID, err)
	}

	e.view.UpsertCategory(*category)
	e.view.SetStatus(viewsync.SectionCategories, nil)
	common.LogDebug("category archive state changed", common.Fields{
		"id":       category.ID,
		"archived": category.IsArchived,
	})
	return category, nil
}

// CreateAccount creates an account and upserts it into the view.
func (e *Engine) CreateAccount(ctx context.Context, in service.AccountInput) (*model.Account, error) {
	if err := e.requireUser(); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		e.view.SetStatus(viewsync.SectionAccounts, err)
		return nil, err
	}

	account, err := e.svc.CreateAccount(ctx, e.userID, in)
	if err != nil {
		e.view.SetStatus(viewsync.SectionAccounts, err)
		return nil, fmt.Errorf("create account: %w", err)
	}

	e.view.UpsertAccount(*account)
	e.view.SetStatus(viewsync.SectionAccounts, nil)
	return account, nil
}

// UpdateSettings replaces the user's settings and applies the result,
// including its archived-visibility preference.
func (e *Engine) UpdateSettings(ctx context.Context, in service.SettingsUpdate) (*model.UserSettingsSummary, error) {
	if err := e.requireUser(); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		e.view.SetStatus(viewsync.SectionSettings, err)
		return nil, err
	}

	settings, err := e.svc.UpdateSettings(ctx, e.userID, in)
	if err != nil {
		e.view.SetStatus(viewsync.SectionSettings, err)
		return nil, fmt.Errorf("update settings: %w", err)
	}

	e.view.ApplySettings(*settings)
	e.view.SetStatus(viewsync.SectionSettings, nil)
	return settings, nil
}
