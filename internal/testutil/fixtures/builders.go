package fixtures

import (
	"time"

	"github.com/Veraticus/family-budget/internal/model"
)

// Epoch is the default creation time of every built entity.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CategoryBuilder builds a model.Category.
type CategoryBuilder struct {
	c model.Category
}

// Category starts an active expense category.
func Category(id, name string) *CategoryBuilder {
	return &CategoryBuilder{c: model.Category{
		ID:        id,
		FamilyID:  "fam-1",
		Name:      name,
		Type:      model.CategoryTypeExpense,
		CreatedAt: model.NewTimestamp(Epoch),
		UpdatedAt: model.NewTimestamp(Epoch),
	}}
}

// Archived marks the category archived.
func (b *CategoryBuilder) Archived() *CategoryBuilder {
	b.c.IsArchived = true
	return b
}

// System marks the category as system-managed.
func (b *CategoryBuilder) System() *CategoryBuilder {
	b.c.IsSystem = true
	return b
}

// Income makes the category an income category.
func (b *CategoryBuilder) Income() *CategoryBuilder {
	b.c.Type = model.CategoryTypeIncome
	return b
}

// Parent nests the category under parentID.
func (b *CategoryBuilder) Parent(parentID string) *CategoryBuilder {
	b.c.ParentID = &parentID
	return b
}

// Build returns the category.
func (b *CategoryBuilder) Build() model.Category {
	return b.c
}

// AccountBuilder builds a model.Account.
type AccountBuilder struct {
	a model.Account
}

// Account starts an active EUR bank account created at Epoch.
func Account(id, name string) *AccountBuilder {
	return &AccountBuilder{a: model.Account{
		ID:        id,
		FamilyID:  "fam-1",
		Name:      name,
		Type:      model.AccountTypeBank,
		Currency:  "EUR",
		CreatedAt: model.NewTimestamp(Epoch),
	}}
}

// Archived marks the account archived.
func (b *AccountBuilder) Archived() *AccountBuilder {
	b.a.IsArchived = true
	return b
}

// Created sets the creation time.
func (b *AccountBuilder) Created(t time.Time) *AccountBuilder {
	b.a.CreatedAt = model.NewTimestamp(t)
	return b
}

// Balance sets the balance in minor units.
func (b *AccountBuilder) Balance(minor int64) *AccountBuilder {
	b.a.BalanceMinor = minor
	return b
}

// Build returns the account.
func (b *AccountBuilder) Build() model.Account {
	return b.a
}

// Member returns an adult family member.
func Member(id, name string) model.FamilyMember {
	return model.FamilyMember{ID: id, Name: name, Email: id + "@example.com", Role: model.RoleAdult}
}

// TransactionBuilder builds a model.Transaction.
type TransactionBuilder struct {
	t model.Transaction
}

// Transaction starts a 10.00 EUR expense at Epoch.
func Transaction(id string) *TransactionBuilder {
	return &TransactionBuilder{t: model.Transaction{
		ID:          id,
		FamilyID:    "fam-1",
		UserID:      "user-1",
		AccountID:   "acc-1",
		CategoryID:  "cat-1",
		Type:        model.TransactionTypeExpense,
		AmountMinor: 1000,
		Currency:    "EUR",
		OccurredAt:  model.NewTimestamp(Epoch),
	}}
}

// At sets the occurrence time.
func (b *TransactionBuilder) At(t time.Time) *TransactionBuilder {
	b.t.OccurredAt = model.NewTimestamp(t)
	return b
}

// Income makes it an income transaction.
func (b *TransactionBuilder) Income() *TransactionBuilder {
	b.t.Type = model.TransactionTypeIncome
	return b
}

// Amount sets the amount in minor units.
func (b *TransactionBuilder) Amount(minor int64) *TransactionBuilder {
	b.t.AmountMinor = minor
	return b
}

// In sets the account and category ids.
func (b *TransactionBuilder) In(accountID, categoryID string) *TransactionBuilder {
	b.t.AccountID = accountID
	b.t.CategoryID = categoryID
	return b
}

// By sets the author.
func (b *TransactionBuilder) By(userID string) *TransactionBuilder {
	b.t.UserID = userID
	b.t.Author = &model.MemberSummary{ID: userID}
	return b
}

// Build returns the transaction.
func (b *TransactionBuilder) Build() model.Transaction {
	return b.t
}

// PlannedBuilder builds a model.PlannedOperation.
type PlannedBuilder struct {
	p model.PlannedOperation
}

// Planned starts a pending one-off expense due at Epoch.
func Planned(id string) *PlannedBuilder {
	return &PlannedBuilder{p: model.PlannedOperation{
		ID:          id,
		AccountID:   "acc-1",
		CategoryID:  "cat-1",
		Type:        model.TransactionTypeExpense,
		Title:       "Planned " + id,
		AmountMinor: 5000,
		Currency:    "EUR",
		Recurrence:  model.RecurrenceNone,
		DueAt:       model.NewTimestamp(Epoch),
		CreatedAt:   model.NewTimestamp(Epoch),
		UpdatedAt:   model.NewTimestamp(Epoch),
	}}
}

// Due sets the due date.
func (b *PlannedBuilder) Due(t time.Time) *PlannedBuilder {
	b.p.DueAt = model.NewTimestamp(t)
	return b
}

// Updated sets the last update time.
func (b *PlannedBuilder) Updated(t time.Time) *PlannedBuilder {
	b.p.UpdatedAt = model.NewTimestamp(t)
	return b
}

// Recurring sets the recurrence.
func (b *PlannedBuilder) Recurring(r model.Recurrence) *PlannedBuilder {
	b.p.Recurrence = r
	return b
}

// Completed marks the operation completed at t.
func (b *PlannedBuilder) Completed(t time.Time) *PlannedBuilder {
	ts := model.NewTimestamp(t)
	b.p.IsCompleted = true
	b.p.LastCompletedAt = &ts
	b.p.UpdatedAt = ts
	return b
}

// Build returns the operation.
func (b *PlannedBuilder) Build() model.PlannedOperation {
	return b.p
}
