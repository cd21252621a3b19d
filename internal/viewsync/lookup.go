package viewsync

import "github.com/Veraticus/family-budget/internal/model"

// Category returns the category with the given id.
func (s *Synchronizer) Category(id string) (model.Category, bool) {
	if id == "" {
		return model.Category{}, false
	}
	for _, c := range s.state.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}

// Account returns the account with the given id.
func (s *Synchronizer) Account(id string) (model.Account, bool) {
	if id == "" {
		return model.Account{}, false
	}
	for _, a := range s.state.Accounts {
		if a.ID == id {
			return a, true
		}
	}
	return model.Account{}, false
}

// Member returns the family member with the given id.
func (s *Synchronizer) Member(id string) (model.FamilyMember, bool) {
	if id == "" {
		return model.FamilyMember{}, false
	}
	for _, m := range s.state.Members {
		if m.ID == id {
			return m, true
		}
	}
	return model.FamilyMember{}, false
}

// ActiveCategories returns the non-archived categories in display order.
func (s *Synchronizer) ActiveCategories() []model.Category {
	var out []model.Category
	for _, c := range s.state.Categories {
		if c.IsActive() {
			out = append(out, c)
		}
	}
	return out
}

// VisibleAccounts returns the accounts shown under the current
// archived-visibility preference, in display order.
func (s *Synchronizer) VisibleAccounts() []model.Account {
	var out []model.Account
	for _, a := range s.state.Accounts {
		if a.VisibleWith(s.state.ShowArchived) {
			out = append(out, a)
		}
	}
	return out
}

// Children returns the direct children of parentID, in display order.
func (s *Synchronizer) Children(parentID string) []model.Category {
	var out []model.Category
	for _, c := range s.state.Categories {
		if c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out
}

// ShowArchived reports the archived-visibility preference in effect.
func (s *Synchronizer) ShowArchived() bool {
	return s.state.ShowArchived
}
