package viewsync

import (
	"slices"

	"github.com/Veraticus/family-budget/internal/common"
	"github.com/Veraticus/family-budget/internal/model"
)

// Synchronizer applies backend responses to a ViewState. None of its
// operations can fail; a failed request simply never reaches it.
type Synchronizer struct {
	state ViewState
}

// New creates a synchronizer with the given initial filters.
func New(filters Filters) *Synchronizer {
	return &Synchronizer{
		state: ViewState{
			Filters: filters,
			Status:  make(map[Section]string),
		},
	}
}

// Restore creates a synchronizer from a previously captured state.
func Restore(state ViewState) *Synchronizer {
	s := &Synchronizer{state: state.clone()}
	if s.state.Status == nil {
		s.state.Status = make(map[Section]string)
	}
	return s
}

// Snapshot returns a copy of the current state that the caller may keep.
func (s *Synchronizer) Snapshot() ViewState {
	return s.state.clone()
}

// ApplyCategoryList replaces the category collection.
func (s *Synchronizer) ApplyCategoryList(categories []model.Category) {
	s.state.Categories = slices.Clone(categories)
	sortCategories(s.state.Categories)
	s.state.Loaded.Categories = true
	s.ReconcileSelections()
}

// UpsertCategory replaces the category with the same id, or adds it.
// Create and edit responses both go through here.
func (s *Synchronizer) UpsertCategory(category model.Category) {
	s.state.Categories = slices.DeleteFunc(s.state.Categories, func(c model.Category) bool {
		return c.ID == category.ID
	})
	s.state.Categories = append(s.state.Categories, category)
	sortCategories(s.state.Categories)
	s.state.Loaded.Categories = true
	s.ReconcileSelections()
}

// ApplyAccountList replaces the account collection.
func (s *Synchronizer) ApplyAccountList(accounts []model.Account) {
	s.state.Accounts = slices.Clone(accounts)
	sortAccounts(s.state.Accounts)
	s.state.Loaded.Accounts = true
	s.ReconcileSelections()
}

// UpsertAccount replaces the account with the same id, or adds it.
func (s *Synchronizer) UpsertAccount(account model.Account) {
	s.state.Accounts = slices.DeleteFunc(s.state.Accounts, func(a model.Account) bool {
		return a.ID == account.ID
	})
	s.state.Accounts = append(s.state.Accounts, account)
	sortAccounts(s.state.Accounts)
	s.state.Loaded.Accounts = true
	s.ReconcileSelections()
}

// ApplyMembers replaces the family member collection.
func (s *Synchronizer) ApplyMembers(members []model.FamilyMember) {
	s.state.Members = slices.Clone(members)
	sortMembers(s.state.Members)
	s.state.Loaded.Members = true
	s.ReconcileSelections()
}

// ApplySettings replaces the settings document and adopts its
// archived-visibility preference.
func (s *Synchronizer) ApplySettings(settings model.UserSettingsSummary) {
	settings.SupportedCurrencies = slices.Clone(settings.SupportedCurrencies)
	s.state.Settings = &settings
	s.state.ShowArchived = settings.Display.ShowArchived
	s.state.Loaded.Settings = true
	s.ReconcileSelections()
}

// ApplyRegistration applies the collections returned by registration.
func (s *Synchronizer) ApplyRegistration(reg model.Registration) {
	s.ApplyCategoryList(reg.Categories)
	s.ApplyAccountList(reg.Accounts)
	s.ApplyMembers(reg.Members)
}

// SetShowArchived overrides the archived-visibility preference locally.
func (s *Synchronizer) SetShowArchived(show bool) {
	s.state.ShowArchived = show
	s.ReconcileSelections()
}

// ApplyTransactionList replaces the transactions currently in view.
func (s *Synchronizer) ApplyTransactionList(transactions []model.Transaction) {
	s.state.Transactions = slices.Clone(transactions)
	sortTransactions(s.state.Transactions)
}

// InsertTransaction adds a freshly created transaction to the view when it
// falls inside the active period and matches every active filter. Anything
// else is left for the next refresh to surface. It returns true if the view
// changed.
func (s *Synchronizer) InsertTransaction(tx model.Transaction) bool {
	if !s.state.Filters.Matches(tx) {
		return false
	}
	s.state.Transactions = slices.DeleteFunc(s.state.Transactions, func(t model.Transaction) bool {
		return t.ID == tx.ID
	})
	s.state.Transactions = append(s.state.Transactions, tx)
	sortTransactions(s.state.Transactions)
	return true
}

// ApplyPlannedOperations replaces both planned-operation lists.
func (s *Synchronizer) ApplyPlannedOperations(pending, completed []model.PlannedOperation) {
	s.state.Pending = slices.Clone(pending)
	s.state.Completed = slices.Clone(completed)
	sortPending(s.state.Pending)
	sortCompleted(s.state.Completed)
}

// UpsertPlannedOperation files an operation under pending or completed
// according to IsCompleted, removing any previous copy from either list.
func (s *Synchronizer) UpsertPlannedOperation(op model.PlannedOperation) {
	byID := func(p model.PlannedOperation) bool { return p.ID == op.ID }
	s.state.Pending = slices.DeleteFunc(s.state.Pending, byID)
	s.state.Completed = slices.DeleteFunc(s.state.Completed, byID)

	if op.IsCompleted {
		s.state.Completed = append(s.state.Completed, op)
	} else {
		s.state.Pending = append(s.state.Pending, op)
	}
	sortPending(s.state.Pending)
	sortCompleted(s.state.Completed)
}

// CompletePlannedOperation applies the server's answer to a complete
// request. List membership follows IsCompleted alone, so replaying the same
// terminal payload leaves both lists unchanged.
func (s *Synchronizer) CompletePlannedOperation(updated model.PlannedOperation) {
	s.UpsertPlannedOperation(updated)
}

// ApplyReport replaces the report overview.
func (s *Synchronizer) ApplyReport(report model.ReportOverview) {
	report.Categories = slices.Clone(report.Categories)
	report.Members = slices.Clone(report.Members)
	s.state.Report = &report
}

// SetFilters changes the transaction window. Transactions that no longer
// match are dropped from the view, invalid entity filters are cleared, and
// the generation advances so responses for the old window are discarded.
func (s *Synchronizer) SetFilters(filters Filters) {
	s.state.Filters = filters
	s.reconcileFilters()
	s.state.Transactions = slices.DeleteFunc(s.state.Transactions, func(t model.Transaction) bool {
		return !s.state.Filters.Matches(t)
	})
	s.Advance()
}

// Filters returns the active filters.
func (s *Synchronizer) Filters() Filters {
	return s.state.Filters
}

// SelectCategory points the entry form at id if it is an active category.
func (s *Synchronizer) SelectCategory(id string) bool {
	c, ok := s.Category(id)
	if !ok || !c.IsActive() {
		return false
	}
	s.state.Entry.CategoryID = id
	return true
}

// SelectAccount points the entry form at id if it is a visible account.
func (s *Synchronizer) SelectAccount(id string) bool {
	a, ok := s.Account(id)
	if !ok || !a.VisibleWith(s.state.ShowArchived) {
		return false
	}
	s.state.Entry.AccountID = id
	return true
}

// Entry returns the entry-form selection.
func (s *Synchronizer) Entry() Entry {
	return s.state.Entry
}

// ReconcileSelections repairs the entry-form selection and the active
// filters after categories, accounts, members or archived visibility change.
// It is idempotent.
func (s *Synchronizer) ReconcileSelections() {
	st := &s.state

	if c, ok := s.Category(st.Entry.CategoryID); !ok || !c.IsActive() {
		st.Entry.CategoryID = ""
		for _, c := range st.Categories {
			if c.IsActive() {
				st.Entry.CategoryID = c.ID
				break
			}
		}
	}

	if a, ok := s.Account(st.Entry.AccountID); !ok || !a.VisibleWith(st.ShowArchived) {
		st.Entry.AccountID = ""
		for _, a := range st.Accounts {
			if a.VisibleWith(st.ShowArchived) {
				st.Entry.AccountID = a.ID
				break
			}
		}
	}

	s.reconcileFilters()
}

func (s *Synchronizer) reconcileFilters() {
	st := &s.state
	if st.Loaded.Categories && st.Filters.CategoryID != "" {
		if _, ok := s.Category(st.Filters.CategoryID); !ok {
			st.Filters.CategoryID = ""
		}
	}
	if st.Loaded.Accounts && st.Filters.AccountID != "" {
		if _, ok := s.Account(st.Filters.AccountID); !ok {
			st.Filters.AccountID = ""
		}
	}
	if st.Loaded.Members && st.Filters.MemberID != "" {
		if _, ok := s.Member(st.Filters.MemberID); !ok {
			st.Filters.MemberID = ""
		}
	}
}

// Generation returns the tag to attach to a request dispatched now.
func (s *Synchronizer) Generation() uint64 {
	return s.state.Generation
}

// Advance invalidates every request dispatched so far.
func (s *Synchronizer) Advance() uint64 {
	s.state.Generation++
	return s.state.Generation
}

// IsCurrent reports whether a response tagged with generation may still be
// applied.
func (s *Synchronizer) IsCurrent(generation uint64) bool {
	return generation == s.state.Generation
}

// SetStatus records the outcome of the last request for a section.
// A nil error clears the status.
func (s *Synchronizer) SetStatus(section Section, err error) {
	if err == nil {
		delete(s.state.Status, section)
		return
	}
	if s.state.Status == nil {
		s.state.Status = make(map[Section]string)
	}
	s.state.Status[section] = common.StatusMessage(err)
}

// Status returns the status string of a section, or "".
func (s *Synchronizer) Status(section Section) string {
	return s.state.Status[section]
}
