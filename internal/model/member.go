package model

// MemberRole is the role a user holds inside a family.
type MemberRole string

const (
	// RoleOwner created the family.
	RoleOwner MemberRole = "owner"
	// RoleAdult is a full member.
	RoleAdult MemberRole = "adult"
	// RoleJunior is a restricted member.
	RoleJunior MemberRole = "junior"
)

// FamilyMember is a user belonging to the family.
type FamilyMember struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  MemberRole `json:"role"`
}

// MemberSummary is the denormalized author attached to transactions
// and planned operations.
type MemberSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is the registered user.
type User struct {
	CreatedAt Timestamp  `json:"created_at"`
	ID        string     `json:"id"`
	FamilyID  string     `json:"family_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      MemberRole `json:"role"`
}

// Family groups users sharing categories, accounts and transactions.
type Family struct {
	CreatedAt    Timestamp `json:"created_at"`
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	BaseCurrency string    `json:"base_currency"`
}

// Registration is everything the backend returns after registering a user.
type Registration struct {
	User       User           `json:"user"`
	Family     Family         `json:"family"`
	Accounts   []Account      `json:"accounts"`
	Members    []FamilyMember `json:"members"`
	Categories []Category     `json:"categories"`
}
