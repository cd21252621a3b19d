package service

import (
	"strings"

	"github.com/Veraticus/family-budget/internal/common"
	"github.com/Veraticus/family-budget/internal/model"
)

// RegisterRequest registers an owner and optionally joins an existing family.
type RegisterRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	FamilyName   string `json:"family_name,omitempty"`
	Currency     string `json:"currency,omitempty"`
	JoinFamilyID string `json:"family_id,omitempty"`
}

// Validate checks required fields before the request is sent.
func (r RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return common.NewValidationError("name", "is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return common.NewValidationError("email", "is required")
	}
	if !strings.Contains(r.Email, "@") {
		return common.NewValidationError("email", "is not an email address")
	}
	if r.Currency != "" {
		if err := validateCurrency(r.Currency); err != nil {
			return err
		}
	}
	return nil
}

// CategoryInput is the body of category create and edit requests.
type CategoryInput struct {
	ParentID    *string            `json:"parent_id"`
	Name        string             `json:"name"`
	Type        model.CategoryType `json:"type"`
	Color       string             `json:"color,omitempty"`
	Description string             `json:"description,omitempty"`
}

// Validate checks required fields before the request is sent.
func (in CategoryInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return common.NewValidationError("name", "is required")
	}
	if err := in.Type.Validate(); err != nil {
		return common.NewValidationError("type", err.Error())
	}
	return nil
}

// AccountInput is the body of account create requests.
type AccountInput struct {
	Name         string            `json:"name"`
	Type         model.AccountType `json:"type"`
	Currency     string            `json:"currency"`
	BalanceMinor int64             `json:"balance_minor"`
	IsShared     bool              `json:"is_shared"`
}

// Validate checks required fields before the request is sent.
func (in AccountInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return common.NewValidationError("name", "is required")
	}
	if err := in.Type.Validate(); err != nil {
		return common.NewValidationError("type", err.Error())
	}
	return validateCurrency(in.Currency)
}

// SettingsUpdate replaces the user's settings document.
type SettingsUpdate struct {
	Currency string                `json:"currency"`
	Locale   string                `json:"locale"`
	Display  model.DisplaySettings `json:"display"`
}

// Validate checks enumerated fields before the request is sent.
func (in SettingsUpdate) Validate() error {
	if in.Currency != "" {
		if err := validateCurrency(in.Currency); err != nil {
			return err
		}
	}
	if err := in.Display.Validate(); err != nil {
		return common.NewValidationError("display", err.Error())
	}
	return nil
}

// Validate rejects a window that starts after it ends and unknown types.
func (q TransactionQuery) Validate() error {
	if err := q.Period.Validate(); err != nil {
		return common.NewValidationError("", err.Error())
	}
	if q.Type != "" {
		if err := q.Type.Validate(); err != nil {
			return common.NewValidationError("type", err.Error())
		}
	}
	return nil
}

// TransactionInput is the body of transaction create requests.
// AmountMinor is positive; the sign is implied by Type.
type TransactionInput struct {
	OccurredAt  model.Timestamp       `json:"occurred_at"`
	Comment     *string               `json:"comment"`
	AccountID   string                `json:"account_id"`
	CategoryID  string                `json:"category_id"`
	Type        model.TransactionType `json:"type"`
	Currency    string                `json:"currency,omitempty"`
	AmountMinor int64                 `json:"amount_minor"`
}

// Validate checks required fields before the request is sent.
func (in TransactionInput) Validate() error {
	if in.AccountID == "" {
		return common.NewValidationError("account", "is required")
	}
	if in.CategoryID == "" {
		return common.NewValidationError("category", "is required")
	}
	if err := in.Type.Validate(); err != nil {
		return common.NewValidationError("type", err.Error())
	}
	if err := validateAmount(in.AmountMinor); err != nil {
		return err
	}
	if in.OccurredAt.IsZero() {
		return common.NewValidationError("occurred_at", "is required")
	}
	if in.Currency != "" {
		return validateCurrency(in.Currency)
	}
	return nil
}

// PlannedOperationInput is the body of planned-operation create requests.
type PlannedOperationInput struct {
	DueAt       model.Timestamp       `json:"due_at"`
	Comment     *string               `json:"comment"`
	AccountID   string                `json:"account_id"`
	CategoryID  string                `json:"category_id"`
	Type        model.TransactionType `json:"type"`
	Title       string                `json:"title"`
	Currency    string                `json:"currency,omitempty"`
	Recurrence  model.Recurrence      `json:"recurrence"`
	AmountMinor int64                 `json:"amount_minor"`
}

// Validate checks required fields before the request is sent.
func (in PlannedOperationInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return common.NewValidationError("title", "is required")
	}
	if in.AccountID == "" {
		return common.NewValidationError("account", "is required")
	}
	if in.CategoryID == "" {
		return common.NewValidationError("category", "is required")
	}
	if err := in.Type.Validate(); err != nil {
		return common.NewValidationError("type", err.Error())
	}
	if err := validateAmount(in.AmountMinor); err != nil {
		return err
	}
	if in.DueAt.IsZero() {
		return common.NewValidationError("due_at", "is required")
	}
	if err := in.Recurrence.Validate(); err != nil {
		return common.NewValidationError("recurrence", err.Error())
	}
	if in.Currency != "" {
		return validateCurrency(in.Currency)
	}
	return nil
}

func validateAmount(minor int64) error {
	if minor == 0 {
		return common.NewValidationError("amount", "must not be zero")
	}
	if minor < 0 {
		return common.NewValidationError("amount", "must be positive; the type sets the direction")
	}
	return nil
}

func validateCurrency(code string) error {
	if len(code) != 3 {
		return common.NewValidationError("currency", "must be a three-letter ISO code")
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return common.NewValidationError("currency", "must be a three-letter ISO code")
		}
	}
	return nil
}
