package model

import "fmt"

// TransactionType is the direction of a transaction. The sign of the
// amount is implied by it; amounts on the wire are always positive.
type TransactionType string

const (
	// TransactionTypeIncome adds money to an account.
	TransactionTypeIncome TransactionType = "income"
	// TransactionTypeExpense removes money from an account.
	TransactionTypeExpense TransactionType = "expense"
)

// Validate reports whether the transaction type is one the backend knows.
func (t TransactionType) Validate() error {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense:
		return nil
	default:
		return fmt.Errorf("unknown transaction type %q", t)
	}
}

// Transaction is a single recorded money movement.
type Transaction struct {
	OccurredAt  Timestamp       `json:"occurred_at"`
	Comment     *string         `json:"comment"`
	Author      *MemberSummary  `json:"author"`
	ID          string          `json:"id"`
	FamilyID    string          `json:"family_id"`
	UserID      string          `json:"user_id"`
	AccountID   string          `json:"account_id"`
	CategoryID  string          `json:"category_id"`
	Type        TransactionType `json:"type"`
	Currency    string          `json:"currency"`
	AmountMinor int64           `json:"amount_minor"`
}

// SignedMinor returns the amount with the sign implied by the type.
func (t Transaction) SignedMinor() int64 {
	if t.Type == TransactionTypeExpense {
		return -t.AmountMinor
	}
	return t.AmountMinor
}

// CommentText returns the comment or an empty string.
func (t Transaction) CommentText() string {
	if t.Comment == nil {
		return ""
	}
	return *t.Comment
}
