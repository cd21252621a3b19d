package api

import (
	"context"
	"sync"

	"github.com/Veraticus/family-budget/internal/model"
	"github.com/Veraticus/family-budget/internal/service"
)

// MockClient is a mock implementation of service.RemoteBudgetService for
// testing. It is safe for concurrent use.
type MockClient struct {
	// Functions that can be set by tests to control behavior
	RegisterFn                 func(ctx context.Context, req service.RegisterRequest) (*model.Registration, error)
	ListCategoriesFn           func(ctx context.Context, userID string) ([]model.Category, error)
	CreateCategoryFn           func(ctx context.Context, userID string, in service.CategoryInput) (*model.Category, error)
	UpdateCategoryFn           func(ctx context.Context, userID, categoryID string, in service.CategoryInput) (*model.Category, error)
	ArchiveCategoryFn          func(ctx context.Context, userID, categoryID string, archived bool) (*model.Category, error)
	ListAccountsFn             func(ctx context.Context, userID string) ([]model.Account, error)
	CreateAccountFn            func(ctx context.Context, userID string, in service.AccountInput) (*model.Account, error)
	ListMembersFn              func(ctx context.Context, userID string) ([]model.FamilyMember, error)
	GetSettingsFn              func(ctx context.Context, userID string) (*model.UserSettingsSummary, error)
	UpdateSettingsFn           func(ctx context.Context, userID string, in service.SettingsUpdate) (*model.UserSettingsSummary, error)
	ListTransactionsFn         func(ctx context.Context, userID string, query service.TransactionQuery) ([]model.Transaction, error)
	CreateTransactionFn        func(ctx context.Context, userID string, in service.TransactionInput) (*model.Transaction, error)
	ListPlannedOperationsFn    func(ctx context.Context, userID string) (*service.PlannedOperations, error)
	CreatePlannedOperationFn   func(ctx context.Context, userID string, in service.PlannedOperationInput) (*model.PlannedOperation, error)
	CompletePlannedOperationFn func(ctx context.Context, userID, operationID string) (*model.PlannedOperation, error)
	ReportOverviewFn           func(ctx context.Context, userID string, period model.Period) (*model.ReportOverview, error)

	calls map[string]int
	mu    sync.Mutex
}

// NewMockClient creates a new mock backend client.
func NewMockClient() *MockClient {
	return &MockClient{calls: make(map[string]int)}
}

// CallCount returns how many times the named method was called.
func (m *MockClient) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// Reset clears all call tracking.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = make(map[string]int)
}

func (m *MockClient) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

// Register implements service.RemoteBudgetService.
func (m *MockClient) Register(ctx context.Context, req service.RegisterRequest) (*model.Registration, error) {
	m.record("Register")
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, req)
	}
	return &model.Registration{}, nil
}

// ListCategories implements service.RemoteBudgetService.
func (m *MockClient) ListCategories(ctx context.Context, userID string) ([]model.Category, error) {
	m.record("ListCategories")
	if m.ListCategoriesFn != nil {
		return m.ListCategoriesFn(ctx, userID)
	}
	return []model.Category{}, nil
}

// CreateCategory implements service.RemoteBudgetService.
func (m *MockClient) CreateCategory(ctx context.Context, userID string, in service.CategoryInput) (*model.Category, error) {
	m.record("CreateCategory")
	if m.CreateCategoryFn != nil {
		return m.CreateCategoryFn(ctx, userID, in)
	}
	return &model.Category{Name: in.Name, Type: in.Type, ParentID: in.ParentID}, nil
}

// UpdateCategory implements service.RemoteBudgetService.
func (m *MockClient) UpdateCategory(ctx context.Context, userID, categoryID string, in service.CategoryInput) (*model.Category, error) {
	m.record("UpdateCategory")
	if m.UpdateCategoryFn != nil {
		return m.UpdateCategoryFn(ctx, userID, categoryID, in)
	}
	return &model.Category{ID: categoryID, Name: in.Name, Type: in.Type, ParentID: in.ParentID}, nil
}

// ArchiveCategory implements service.RemoteBudgetService.
func (m *MockClient) ArchiveCategory(ctx context.Context, userID, categoryID string, archived bool) (*model.Category, error) {
	m.record("ArchiveCategory")
	if m.ArchiveCategoryFn != nil {
		return m.ArchiveCategoryFn(ctx, userID, categoryID, archived)
	}
	return &model.Category{ID: categoryID, IsArchived: archived}, nil
}

// ListAccounts implements service.RemoteBudgetService.
func (m *MockClient) ListAccounts(ctx context.Context, userID string) ([]model.Account, error) {
	m.record("ListAccounts")
	if m.ListAccountsFn != nil {
		return m.ListAccountsFn(ctx, userID)
	}
	return []model.Account{}, nil
}

// CreateAccount implements service.RemoteBudgetService.
func (m *MockClient) CreateAccount(ctx context.Context, userID string, in service.AccountInput) (*model.Account, error) {
	m.record("CreateAccount")
	if m.CreateAccountFn != nil {
		return m.CreateAccountFn(ctx, userID, in)
	}
	return &model.Account{Name: in.Name, Type: in.Type, Currency: in.Currency}, nil
}

// ListMembers implements service.RemoteBudgetService.
func (m *MockClient) ListMembers(ctx context.Context, userID string) ([]model.FamilyMember, error) {
	m.record("ListMembers")
	if m.ListMembersFn != nil {
		return m.ListMembersFn(ctx, userID)
	}
	return []model.FamilyMember{}, nil
}

// GetSettings implements service.RemoteBudgetService.
func (m *MockClient) GetSettings(ctx context.Context, userID string) (*model.UserSettingsSummary, error) {
	m.record("GetSettings")
	if m.GetSettingsFn != nil {
		return m.GetSettingsFn(ctx, userID)
	}
	return &model.UserSettingsSummary{}, nil
}

// UpdateSettings implements service.RemoteBudgetService.
func (m *MockClient) UpdateSettings(ctx context.Context, userID string, in service.SettingsUpdate) (*model.UserSettingsSummary, error) {
	m.record("UpdateSettings")
	if m.UpdateSettingsFn != nil {
		return m.UpdateSettingsFn(ctx, userID, in)
	}
	return &model.UserSettingsSummary{}, nil
}

// ListTransactions implements service.RemoteBudgetService.
func (m *MockClient) ListTransactions(ctx context.Context, userID string, query service.TransactionQuery) ([]model.Transaction, error) {
	m.record("ListTransactions")
	if m.ListTransactionsFn != nil {
		return m.ListTransactionsFn(ctx, userID, query)
	}
	return []model.Transaction{}, nil
}

// CreateTransaction implements service.RemoteBudgetService.
func (m *MockClient) CreateTransaction(ctx context.Context, userID string, in service.TransactionInput) (*model.Transaction, error) {
	m.record("CreateTransaction")
	if m.CreateTransactionFn != nil {
		return m.CreateTransactionFn(ctx, userID, in)
	}
	return &model.Transaction{
		UserID:      userID,
		AccountID:   in.AccountID,
		CategoryID:  in.CategoryID,
		Type:        in.Type,
		AmountMinor: in.AmountMinor,
		Currency:    in.Currency,
		OccurredAt:  in.OccurredAt,
	}, nil
}

// ListPlannedOperations implements service.RemoteBudgetService.
func (m *MockClient) ListPlannedOperations(ctx context.Context, userID string) (*service.PlannedOperations, error) {
	m.record("ListPlannedOperations")
	if m.ListPlannedOperationsFn != nil {
		return m.ListPlannedOperationsFn(ctx, userID)
	}
	return &service.PlannedOperations{}, nil
}

// CreatePlannedOperation implements service.RemoteBudgetService.
func (m *MockClient) CreatePlannedOperation(ctx context.Context, userID string, in service.PlannedOperationInput) (*model.PlannedOperation, error) {
	m.record("CreatePlannedOperation")
	if m.CreatePlannedOperationFn != nil {
		return m.CreatePlannedOperationFn(ctx, userID, in)
	}
	return &model.PlannedOperation{Title: in.Title, DueAt: in.DueAt, AmountMinor: in.AmountMinor}, nil
}

// CompletePlannedOperation implements service.RemoteBudgetService.
func (m *MockClient) CompletePlannedOperation(ctx context.Context, userID, operationID string) (*model.PlannedOperation, error) {
	m.record("CompletePlannedOperation")
	if m.CompletePlannedOperationFn != nil {
		return m.CompletePlannedOperationFn(ctx, userID, operationID)
	}
	return &model.PlannedOperation{ID: operationID, IsCompleted: true}, nil
}

// ReportOverview implements service.RemoteBudgetService.
func (m *MockClient) ReportOverview(ctx context.Context, userID string, period model.Period) (*model.ReportOverview, error) {
	m.record("ReportOverview")
	if m.ReportOverviewFn != nil {
		return m.ReportOverviewFn(ctx, userID, period)
	}
	return &model.ReportOverview{}, nil
}

// Ensure MockClient implements RemoteBudgetService interface.
var _ service.RemoteBudgetService = (*MockClient)(nil)
