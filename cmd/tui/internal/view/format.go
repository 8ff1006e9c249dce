package view

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/notas/internal/dates"
	"github.com/MrJamesThe3rd/notas/internal/money"
)

// FormatAmount renders an amount as BRL, or "-" when none was recorded.
func FormatAmount(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}

	return money.FormatBRL(d.Decimal)
}

// FormatDate renders an ISO date as DD/MM/YYYY, or "-" when empty.
func FormatDate(iso string) string {
	if iso == "" {
		return "-"
	}

	return dates.FormatBR(iso)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}
