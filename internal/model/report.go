package model

// CategoryTotal is one row of the per-category breakdown.
type CategoryTotal struct {
	CategoryID  string       `json:"category_id"`
	Name        string       `json:"name"`
	Type        CategoryType `json:"type"`
	AmountMinor int64        `json:"amount_minor"`
}

// MemberTotal is one row of the per-member breakdown.
type MemberTotal struct {
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	IncomeMinor  int64  `json:"income_minor"`
	ExpenseMinor int64  `json:"expense_minor"`
}

// ReportOverview aggregates a period. All amounts are in Currency.
type ReportOverview struct {
	StartDate         Timestamp       `json:"start_date"`
	EndDate           Timestamp       `json:"end_date"`
	Currency          string          `json:"currency"`
	Categories        []CategoryTotal `json:"categories"`
	Members           []MemberTotal   `json:"members"`
	TotalIncomeMinor  int64           `json:"total_income_minor"`
	TotalExpenseMinor int64           `json:"total_expense_minor"`
	NetMinor          int64           `json:"net_minor"`
}
