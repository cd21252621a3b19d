// Package service defines the contract of the remote budget backend and the
// payloads exchanged with it.
package service

import (
	"context"

	"github.com/Veraticus/family-budget/internal/model"
)

// RemoteBudgetService is the external REST backend. It owns every business
// rule; the client only sends requests and replaces local copies with the
// entities it returns.
type RemoteBudgetService interface {
	// Registration
	Register(ctx context.Context, req RegisterRequest) (*model.Registration, error)

	// Categories
	ListCategories(ctx context.Context, userID string) ([]model.Category, error)
	CreateCategory(ctx context.Context, userID string, in CategoryInput) (*model.Category, error)
	UpdateCategory(ctx context.Context, userID, categoryID string, in CategoryInput) (*model.Category, error)
	ArchiveCategory(ctx context.Context, userID, categoryID string, archived bool) (*model.Category, error)

	// Accounts and members
	ListAccounts(ctx context.Context, userID string) ([]model.Account, error)
	CreateAccount(ctx context.Context, userID string, in AccountInput) (*model.Account, error)
	ListMembers(ctx context.Context, userID string) ([]model.FamilyMember, error)

	// Settings
	GetSettings(ctx context.Context, userID string) (*model.UserSettingsSummary, error)
	UpdateSettings(ctx context.Context, userID string, in SettingsUpdate) (*model.UserSettingsSummary, error)

	// Transactions
	ListTransactions(ctx context.Context, userID string, query TransactionQuery) ([]model.Transaction, error)
	CreateTransaction(ctx context.Context, userID string, in TransactionInput) (*model.Transaction, error)

	// Planned operations
	ListPlannedOperations(ctx context.Context, userID string) (*PlannedOperations, error)
	CreatePlannedOperation(ctx context.Context, userID string, in PlannedOperationInput) (*model.PlannedOperation, error)
	CompletePlannedOperation(ctx context.Context, userID, operationID string) (*model.PlannedOperation, error)

	// Reports
	ReportOverview(ctx context.Context, userID string, period model.Period) (*model.ReportOverview, error)
}

// PlannedOperations is the planned-operations listing split by state.
type PlannedOperations struct {
	Pending   []model.PlannedOperation `json:"pending"`
	Completed []model.PlannedOperation `json:"completed"`
}

// TransactionQuery selects the transaction window. Empty ids and an empty
// type mean "any".
type TransactionQuery struct {
	Period     model.Period
	Type       model.TransactionType
	CategoryID string
	AccountID  string
	UserID     string
}
