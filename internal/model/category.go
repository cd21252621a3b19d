package model

import "fmt"

// CategoryType indicates which kind of money movement a category groups.
type CategoryType string

const (
	// CategoryTypeIncome represents categories for income transactions.
	CategoryTypeIncome CategoryType = "income"
	// CategoryTypeExpense represents categories for expense transactions.
	CategoryTypeExpense CategoryType = "expense"
	// CategoryTypeTransfer represents categories for moves between own accounts.
	CategoryTypeTransfer CategoryType = "transfer"
)

// Validate reports whether the category type is one the backend knows.
func (t CategoryType) Validate() error {
	switch t {
	case CategoryTypeIncome, CategoryTypeExpense, CategoryTypeTransfer:
		return nil
	default:
		return fmt.Errorf("unknown category type %q", t)
	}
}

// Category is a family category as returned by the backend.
// ParentID points at another category; the UI nests at most one level.
type Category struct {
	CreatedAt   Timestamp    `json:"created_at"`
	UpdatedAt   Timestamp    `json:"updated_at"`
	ParentID    *string      `json:"parent_id"`
	ID          string       `json:"id"`
	FamilyID    string       `json:"family_id"`
	Name        string       `json:"name"`
	Type        CategoryType `json:"type"`
	Color       string       `json:"color"`
	Description string       `json:"description"`
	IsSystem    bool         `json:"is_system"`
	IsArchived  bool         `json:"is_archived"`
}

// IsActive returns true if the category can be picked for new entries.
func (c Category) IsActive() bool {
	return !c.IsArchived
}

// IsTopLevel returns true if the category has no parent.
func (c Category) IsTopLevel() bool {
	return c.ParentID == nil || *c.ParentID == ""
}

// CanArchive reports whether the UI offers the archive action for the category.
// System categories keep the action hidden; the backend is not asked.
func (c Category) CanArchive() bool {
	return !c.IsSystem
}
