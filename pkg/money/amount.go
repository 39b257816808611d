package money

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

const (
	// Scale is the number of fraction digits stored for every amount (cents)
	Scale = 2

	// MaxIntegerDigits is the widest integer part a stored amount can hold
	MaxIntegerDigits = 12
)

// limit is the smallest amount too wide to store: 10^MaxIntegerDigits
var limit = decimal.New(1, MaxIntegerDigits)

// amountPattern accepts unsigned amounts with zero, one or two decimal places.
// A trailing bare "." ("5.") is rejected.
var amountPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]{1,2})?$`)

// IsWellFormed reports whether s is an unsigned amount with at most two decimals
func IsWellFormed(s string) bool {
	return amountPattern.MatchString(s)
}

// Parse converts a user-entered amount string into an exact decimal.
// Handles "1000" -> 1000.00, "12.5" -> 12.50. Amounts needing more than
// MaxIntegerDigits integer digits are rejected; leading zeros do not count.
func Parse(s string) (decimal.Decimal, error) {
	if !IsWellFormed(s) {
		return decimal.Zero, fmt.Errorf("invalid amount format: %q", s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount: %w", err)
	}
	if d.GreaterThanOrEqual(limit) {
		return decimal.Zero, fmt.Errorf("amount %q exceeds %d integer digits", s, MaxIntegerDigits)
	}

	return d, nil
}

// Format renders an amount with exactly two decimal places
// E.g., 1000 -> "1000.00"
func Format(d decimal.Decimal) string {
	return d.StringFixed(Scale)
}

// FormatPtr renders an optional amount, returning nil when absent
func FormatPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := Format(*d)
	return &s
}
