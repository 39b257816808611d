// Package validate holds the field well-formedness predicates shared by the
// ledger, account and party packages. All functions are pure.
package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/kislikjeka/bookkeeper/pkg/money"
)

// DateLayout is the only accepted date format.
const DateLayout = "2006-01-02"

var (
	textPattern    = regexp.MustCompile(`^[A-Za-z0-9 \-_,:;]+$`)
	datePattern    = regexp.MustCompile(`^([0-9]{4})-([0-9]{2})-([0-9]{2})$`)
	numericPattern = regexp.MustCompile(`^[0-9]+$`)
)

// IsAlphanumericText accepts letters, digits, spaces and - _ , : ;
func IsAlphanumericText(s string) bool {
	return textPattern.MatchString(s)
}

// IsNumeric reports whether s is a non-empty run of ASCII digits
func IsNumeric(s string) bool {
	return numericPattern.MatchString(s)
}

// IsBlank is true iff s is empty after removing all whitespace
func IsBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}

// IsWellFormedAmount accepts unsigned amounts with at most two decimal places
func IsWellFormedAmount(s string) bool {
	return money.IsWellFormed(s)
}

// IsWellFormedDate reports whether s is a real calendar date in YYYY-MM-DD form
func IsWellFormedDate(s string) bool {
	_, ok := ParseDate(s)
	return ok
}

// ParseDate parses a YYYY-MM-DD date. Out of range days are rejected rather
// than normalized (2019-02-30 is not March 2nd).
func ParseDate(s string) (time.Time, bool) {
	m := datePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	if month < 1 || month > 12 {
		return time.Time{}, false
	}
	if day < 1 || day > DaysInMonth(year, time.Month(month)) {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// IsLeapYear: divisible by 4 and not by 100, or divisible by 400
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in month of year
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}
