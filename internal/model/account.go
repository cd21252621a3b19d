package model

import "fmt"

// AccountType describes where the money of an account lives.
type AccountType string

const (
	// AccountTypeCash is physical cash.
	AccountTypeCash AccountType = "cash"
	// AccountTypeCard is a debit or credit card.
	AccountTypeCard AccountType = "card"
	// AccountTypeBank is a current bank account.
	AccountTypeBank AccountType = "bank"
	// AccountTypeDeposit is a savings deposit.
	AccountTypeDeposit AccountType = "deposit"
	// AccountTypeWallet is an electronic wallet.
	AccountTypeWallet AccountType = "wallet"
)

// Validate reports whether the account type is one the backend knows.
func (t AccountType) Validate() error {
	switch t {
	case AccountTypeCash, AccountTypeCard, AccountTypeBank, AccountTypeDeposit, AccountTypeWallet:
		return nil
	default:
		return fmt.Errorf("unknown account type %q", t)
	}
}

// Account is a family account. BalanceMinor is in minor units of Currency.
type Account struct {
	CreatedAt    Timestamp   `json:"created_at"`
	ID           string      `json:"id"`
	FamilyID     string      `json:"family_id"`
	Name         string      `json:"name"`
	Type         AccountType `json:"type"`
	Currency     string      `json:"currency"`
	BalanceMinor int64       `json:"balance_minor"`
	IsShared     bool        `json:"is_shared"`
	IsArchived   bool        `json:"is_archived"`
}

// VisibleWith reports whether the account is shown under the given
// archived-visibility preference.
func (a Account) VisibleWith(showArchived bool) bool {
	return showArchived || !a.IsArchived
}
