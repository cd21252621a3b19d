// Package viewsync keeps the client's local copy of family budget data
// consistent with the backend. Every fetch or mutation response is applied
// through a named operation that replaces entities wholesale, restores the
// display ordering and repairs selections that would otherwise point at an
// archived, hidden or deleted entity.
//
// A Synchronizer is owned by a single goroutine (the UI event loop or the
// command being run). Network calls may run elsewhere, but their results
// must be handed back to the owner before being applied.
package viewsync

import (
	"maps"
	"slices"

	"github.com/Veraticus/family-budget/internal/model"
)

// Section names a part of the view that loads and fails independently.
type Section string

const (
	SectionRegistration Section = "registration"
	SectionCategories   Section = "categories"
	SectionAccounts     Section = "accounts"
	SectionMembers      Section = "members"
	SectionSettings     Section = "settings"
	SectionTransactions Section = "transactions"
	SectionPlanned      Section = "planned"
	SectionReport       Section = "report"
)

// Filters narrow the transaction window. Empty fields match everything.
type Filters struct {
	Period     model.Period          `json:"period"`
	Type       model.TransactionType `json:"type,omitempty"`
	CategoryID string                `json:"category_id,omitempty"`
	AccountID  string                `json:"account_id,omitempty"`
	MemberID   string                `json:"member_id,omitempty"`
}

// Matches reports whether tx belongs in the window described by f.
func (f Filters) Matches(tx model.Transaction) bool {
	if !f.Period.Contains(tx.OccurredAt.Time) {
		return false
	}
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	if f.CategoryID != "" && tx.CategoryID != f.CategoryID {
		return false
	}
	if f.AccountID != "" && tx.AccountID != f.AccountID {
		return false
	}
	if f.MemberID != "" && tx.UserID != f.MemberID {
		return false
	}
	return true
}

// Entry is the selection state of the transaction-entry form.
type Entry struct {
	CategoryID string `json:"category_id"`
	AccountID  string `json:"account_id"`
}

// Loaded records which collections have been fetched at least once.
// Filters are only repaired against collections that are loaded.
type Loaded struct {
	Categories bool `json:"categories"`
	Accounts   bool `json:"accounts"`
	Members    bool `json:"members"`
	Settings   bool `json:"settings"`
}

// ViewState is the complete, serializable state of one client screen set.
type ViewState struct {
	Settings     *model.UserSettingsSummary `json:"settings,omitempty"`
	Report       *model.ReportOverview      `json:"report,omitempty"`
	Status       map[Section]string         `json:"status,omitempty"`
	Categories   []model.Category           `json:"categories"`
	Accounts     []model.Account            `json:"accounts"`
	Members      []model.FamilyMember       `json:"members"`
	Transactions []model.Transaction        `json:"transactions"`
	Pending      []model.PlannedOperation   `json:"pending"`
	Completed    []model.PlannedOperation   `json:"completed"`
	Filters      Filters                    `json:"filters"`
	Entry        Entry                      `json:"entry"`
	Generation   uint64                     `json:"generation"`
	Loaded       Loaded                     `json:"loaded"`
	ShowArchived bool                       `json:"show_archived"`
}

// clone copies every collection so the result shares no backing arrays
// with s. Entities are values and are never mutated in place.
func (s ViewState) clone() ViewState {
	out := s
	out.Categories = slices.Clone(s.Categories)
	out.Accounts = slices.Clone(s.Accounts)
	out.Members = slices.Clone(s.Members)
	out.Transactions = slices.Clone(s.Transactions)
	out.Pending = slices.Clone(s.Pending)
	out.Completed = slices.Clone(s.Completed)
	out.Status = maps.Clone(s.Status)
	if s.Settings != nil {
		settings := *s.Settings
		settings.SupportedCurrencies = slices.Clone(s.Settings.SupportedCurrencies)
		out.Settings = &settings
	}
	if s.Report != nil {
		report := *s.Report
		report.Categories = slices.Clone(s.Report.Categories)
		report.Members = slices.Clone(s.Report.Members)
		out.Report = &report
	}
	return out
}
