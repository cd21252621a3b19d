package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinorPerMajor is the number of minor units in one major unit.
const MinorPerMajor = 100

// ErrInvalidAmount is returned for amounts that are not a positive decimal.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseMinor converts a user-typed positive decimal ("12.34" or "12,34")
// into minor units, rounding half-up on the third fractional digit.
// Zero, negative and malformed values are rejected.
func ParseMinor(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	if strings.Contains(fracPart, ".") {
		return 0, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return 0, ErrInvalidAmount
	}

	major, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxMajor = (1<<63 - 1) / MinorPerMajor
	if major >= maxMajor {
		return 0, ErrInvalidAmount
	}

	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
	}
	if len(fracPart) > 1 {
		frac += int64(fracPart[1] - '0')
	}
	if len(fracPart) > 2 && fracPart[2] >= '5' {
		frac++
	}

	minor := major*MinorPerMajor + frac
	if minor <= 0 {
		return 0, ErrInvalidAmount
	}
	return minor, nil
}

// FormatMinor renders minor units as a decimal with the currency code,
// e.g. FormatMinor(-1234, "EUR") == "-12.34 EUR".
func FormatMinor(minor int64, currency string) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	out := fmt.Sprintf("%s%d.%02d", sign, minor/MinorPerMajor, minor%MinorPerMajor)
	if currency != "" {
		out += " " + currency
	}
	return out
}

// allDigits reports whether s holds only ASCII digits.
func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
