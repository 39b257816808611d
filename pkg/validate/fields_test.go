package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAlphanumericText(t *testing.T) {
	valid := []string{"Loan", "Office rent - March", "Inv_2018: part 1; final", "a,b", "2018"}
	for _, s := range valid {
		assert.True(t, IsAlphanumericText(s), "expected %q to be valid", s)
	}

	invalid := []string{"", "Loan!", "50%", "O'Brien", "tab\there", "a.b", "x/y", "<script>"}
	for _, s := range invalid {
		assert.False(t, IsAlphanumericText(s), "expected %q to be invalid", s)
	}
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   "))
	assert.True(t, IsBlank(" \t\n "))
	assert.False(t, IsBlank(" a "))
	assert.False(t, IsBlank("0"))
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("1000"))
	assert.True(t, IsNumeric("0042"))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("10a0"))
	assert.False(t, IsNumeric("-100"))
	assert.False(t, IsNumeric("10.0"))
}

func TestIsWellFormedDate(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"2018-01-01", true},
		{"2018-12-31", true},
		{"2020-02-29", true},  // divisible by 4
		{"2000-02-29", true},  // divisible by 400
		{"1900-02-29", false}, // divisible by 100
		{"2019-02-29", false},
		{"2019-02-30", false},
		{"2019-04-31", false},
		{"2019-13-01", false},
		{"2019-00-10", false},
		{"2019-01-00", false},
		{"2019-1-01", false},
		{"19-01-01", false},
		{"2019/01/01", false},
		{"2019-01-01T00:00:00Z", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWellFormedDate(tt.input))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2018-03-15")
	require.True(t, ok)
	assert.Equal(t, time.Date(2018, time.March, 15, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2018-03-15", d.Format(DateLayout))
}

func TestIsWellFormedAmount(t *testing.T) {
	assert.True(t, IsWellFormedAmount("1000.00"))
	assert.True(t, IsWellFormedAmount("3"))
	assert.False(t, IsWellFormedAmount("5."))
	assert.False(t, IsWellFormedAmount("abc"))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2019, time.January))
	assert.Equal(t, 28, DaysInMonth(2019, time.February))
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 30, DaysInMonth(2019, time.November))
}
