package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/notas/internal/money"
)

func TestParse(t *testing.T) {
	type testCase struct {
		in   string
		want string
	}

	tests := []testCase{
		{in: "1.234,56", want: "1234.56"},
		{in: "1234,5", want: "1234.5"},
		{in: "R$ 10,00", want: "10"},
		{in: "1234.56", want: "1234.56"},
		{in: " 0 ", want: "0"},
		{in: "1.234.567,89", want: "1234567.89"},
		{in: "1.5", want: "1.5"},
		{in: "1234.567", want: "1234.567"},
		{in: "1.234,0", want: "1234"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := money.Parse(tt.in)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "12,3,4"} {
		_, err := money.Parse(in)
		assert.Error(t, err, in)
	}
}

func TestParse_Ambiguous(t *testing.T) {
	for _, in := range []string{"1.234", "R$ 12.500", "1.234.567", "-9.999"} {
		_, err := money.Parse(in)
		assert.ErrorIs(t, err, money.ErrAmbiguousAmount, in)
	}
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 1.234,56", money.FormatBRL(decimal.RequireFromString("1234.56")))
	assert.Equal(t, "R$ 0,00", money.FormatBRL(decimal.Zero))
	assert.Equal(t, "-R$ 40,50", money.FormatBRL(decimal.RequireFromString("-40.5")))
}

func TestFormatPlain(t *testing.T) {
	assert.Equal(t, "1234,50", money.FormatPlain(decimal.RequireFromString("1234.5")))
}
