package viewsync

import (
	"slices"
	"strings"

	"github.com/Veraticus/family-budget/internal/model"
)

// sortCategories orders active categories before archived ones, then by name.
func sortCategories(categories []model.Category) {
	slices.SortStableFunc(categories, func(a, b model.Category) int {
		if a.IsArchived != b.IsArchived {
			if a.IsArchived {
				return 1
			}
			return -1
		}
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// sortAccounts keeps creation order.
func sortAccounts(accounts []model.Account) {
	slices.SortStableFunc(accounts, func(a, b model.Account) int {
		return a.CreatedAt.Compare(b.CreatedAt.Time)
	})
}

func sortMembers(members []model.FamilyMember) {
	slices.SortStableFunc(members, func(a, b model.FamilyMember) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// sortTransactions puts the most recent transaction first.
func sortTransactions(transactions []model.Transaction) {
	slices.SortStableFunc(transactions, func(a, b model.Transaction) int {
		if c := b.OccurredAt.Compare(a.OccurredAt.Time); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// sortPending puts the soonest due operation first.
func sortPending(ops []model.PlannedOperation) {
	slices.SortStableFunc(ops, func(a, b model.PlannedOperation) int {
		if c := a.DueAt.Compare(b.DueAt.Time); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// sortCompleted puts the most recently completed operation first.
func sortCompleted(ops []model.PlannedOperation) {
	slices.SortStableFunc(ops, func(a, b model.PlannedOperation) int {
		if c := b.CompletionTime().Compare(a.CompletionTime()); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
