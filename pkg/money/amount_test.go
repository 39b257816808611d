package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsWellFormed(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1000", true},
		{"1000.00", true},
		{"0.5", true},
		{"0", true},
		{"5.", false},
		{".50", false},
		{"1.234", false},
		{"-1.00", false},
		{"+1.00", false},
		{"1,000.00", false},
		{" 1.00", false},
		{"1e3", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWellFormed(tt.input))
		})
	}
}

func TestParse(t *testing.T) {
	d, err := Parse("12.5")
	require.NoError(t, err)
	assert.Equal(t, "12.50", Format(d))

	d, err = Parse("1000")
	require.NoError(t, err)
	assert.Equal(t, "1000.00", Format(d))

	_, err = Parse("12.505")
	assert.Error(t, err)

	_, err = Parse("5.")
	assert.Error(t, err)
}

func TestParse_IntegerDigitLimit(t *testing.T) {
	d, err := Parse("999999999999.99")
	require.NoError(t, err)
	assert.Equal(t, "999999999999.99", Format(d))

	d, err = Parse("0000000000000001.00")
	require.NoError(t, err)
	assert.Equal(t, "1.00", Format(d))

	_, err = Parse("1000000000000")
	assert.Error(t, err)

	_, err = Parse("1234567890123456.00")
	assert.Error(t, err)
}

func TestFormatPtr(t *testing.T) {
	assert.Nil(t, FormatPtr(nil))

	d := decimal.NewFromInt(7)
	got := FormatPtr(&d)
	require.NotNil(t, got)
	assert.Equal(t, "7.00", *got)
}
