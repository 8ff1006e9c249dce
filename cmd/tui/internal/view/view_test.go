package view

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTimeframeRange(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

	type testCase struct {
		tf    Timeframe
		start string
		end   string
	}

	tests := []testCase{
		{TimeframeThisMonth, "2024-03-01", "2024-03-31"},
		{TimeframeLastMonth, "2024-02-01", "2024-02-29"},
		{TimeframeThisYear, "2024-01-01", "2024-12-31"},
	}

	for _, tc := range tests {
		t.Run(tc.tf.String(), func(t *testing.T) {
			start, end := timeframeRange(tc.tf, now)
			assert.Equal(t, tc.start, start.Format(time.DateOnly))
			assert.Equal(t, tc.end, end.Format(time.DateOnly))
		})
	}
}

func TestTimeframeRange_January(t *testing.T) {
	start, end := timeframeRange(TimeframeLastMonth, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, "2023-12-01", start.Format(time.DateOnly))
	assert.Equal(t, "2023-12-31", end.Format(time.DateOnly))
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "-", FormatAmount(decimal.NullDecimal{}))
	assert.Equal(t, "-", FormatDate(""))
	assert.Equal(t, "15/01/2024", FormatDate("2024-01-15"))
	assert.Equal(t, "-", orDash(""))
	assert.Equal(t, "x", orDash("x"))
}
