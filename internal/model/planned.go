package model

import (
	"fmt"
	"time"
)

// Recurrence is how often a planned operation repeats.
type Recurrence string

const (
	// RecurrenceNone means the operation happens once.
	RecurrenceNone Recurrence = "none"
	// RecurrenceWeekly repeats every seven days.
	RecurrenceWeekly Recurrence = "weekly"
	// RecurrenceMonthly repeats on the same day every month.
	RecurrenceMonthly Recurrence = "monthly"
	// RecurrenceYearly repeats on the same date every year.
	RecurrenceYearly Recurrence = "yearly"
)

// Validate reports whether the recurrence is one the backend knows.
func (r Recurrence) Validate() error {
	switch r {
	case RecurrenceNone, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return nil
	default:
		return fmt.Errorf("unknown recurrence %q", r)
	}
}

// PlannedOperation is a scheduled transaction template. It is either pending
// or completed; completion is terminal on the client.
type PlannedOperation struct {
	DueAt           Timestamp       `json:"due_at"`
	CreatedAt       Timestamp       `json:"created_at"`
	UpdatedAt       Timestamp       `json:"updated_at"`
	LastCompletedAt *Timestamp      `json:"last_completed_at"`
	Comment         *string         `json:"comment"`
	Creator         *MemberSummary  `json:"creator"`
	ID              string          `json:"id"`
	AccountID       string          `json:"account_id"`
	CategoryID      string          `json:"category_id"`
	Type            TransactionType `json:"type"`
	Title           string          `json:"title"`
	Currency        string          `json:"currency"`
	Recurrence      Recurrence      `json:"recurrence"`
	AmountMinor     int64           `json:"amount_minor"`
	IsCompleted     bool            `json:"is_completed"`
}

// CompletionTime is the instant used to order completed operations:
// LastCompletedAt when known, UpdatedAt otherwise.
func (p PlannedOperation) CompletionTime() time.Time {
	if p.LastCompletedAt != nil && !p.LastCompletedAt.IsZero() {
		return p.LastCompletedAt.Time
	}
	return p.UpdatedAt.Time
}

// NextDue returns the due date following DueAt for recurring operations.
// The second result is false for one-off operations.
func (p PlannedOperation) NextDue() (time.Time, bool) {
	due := p.DueAt.UTC()
	switch p.Recurrence {
	case RecurrenceWeekly:
		return due.AddDate(0, 0, 7), true
	case RecurrenceMonthly:
		return addMonthsClamped(due, 1), true
	case RecurrenceYearly:
		return addMonthsClamped(due, 12), true
	default:
		return time.Time{}, false
	}
}

// addMonthsClamped moves t forward by n months, pinning the day to the
// last day of the target month instead of overflowing into the next one.
func addMonthsClamped(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
