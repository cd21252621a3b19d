package model

import (
	"errors"
	"time"
)

// DateLayout is the layout used for user-entered dates.
const DateLayout = "2006-01-02"

// ErrInvalidPeriod is returned when a period starts after it ends.
var ErrInvalidPeriod = errors.New("start date is after end date")

// Period is an inclusive range of calendar days. A zero bound is open.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// StartOfDayUTC truncates t to midnight UTC of its UTC calendar day.
func StartOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDayUTC returns the last representable instant of t's UTC calendar day.
func EndOfDayUTC(t time.Time) time.Time {
	return StartOfDayUTC(t).Add(24*time.Hour - time.Nanosecond)
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) Period {
	u := t.UTC()
	first := time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: first, End: first.AddDate(0, 1, -1)}
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// IsZero returns true if both bounds are open.
func (p Period) IsZero() bool {
	return p.Start.IsZero() && p.End.IsZero()
}

// From is the first instant covered by the period.
func (p Period) From() time.Time {
	if p.Start.IsZero() {
		return time.Time{}
	}
	return StartOfDayUTC(p.Start)
}

// Until is the last instant covered by the period.
func (p Period) Until() time.Time {
	if p.End.IsZero() {
		return time.Time{}
	}
	return EndOfDayUTC(p.End)
}

// Contains reports whether t falls within
// [StartOfDayUTC(Start), EndOfDayUTC(End)].
func (p Period) Contains(t time.Time) bool {
	if !p.Start.IsZero() && t.Before(p.From()) {
		return false
	}
	if !p.End.IsZero() && t.After(p.Until()) {
		return false
	}
	return true
}

// Validate rejects periods whose start day is after their end day.
func (p Period) Validate() error {
	if p.Start.IsZero() || p.End.IsZero() {
		return nil
	}
	if StartOfDayUTC(p.Start).After(StartOfDayUTC(p.End)) {
		return ErrInvalidPeriod
	}
	return nil
}

// AdjacentMonth returns the calendar month n months away from the month
// containing Start (or today when Start is open).
func (p Period) AdjacentMonth(n int) Period {
	anchor := p.Start
	if anchor.IsZero() {
		anchor = time.Now()
	}
	u := anchor.UTC()
	return MonthOf(time.Date(u.Year(), u.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC))
}

// String renders the period as "YYYY-MM-DD..YYYY-MM-DD" with "*" for open bounds.
func (p Period) String() string {
	start, end := "*", "*"
	if !p.Start.IsZero() {
		start = p.Start.UTC().Format(DateLayout)
	}
	if !p.End.IsZero() {
		end = p.End.UTC().Format(DateLayout)
	}
	return start + ".." + end
}
