package money

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ErrAmbiguousAmount is returned for "1.234" and the like, which read as one
// thousand two hundred thirty-four in pt-BR and as a fraction elsewhere.
var ErrAmbiguousAmount = errors.New("ambiguous amount: write the cents with a comma, e.g. 1.234,00")

var (
	printer = message.NewPrinter(language.BrazilianPortuguese)

	grouped = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+$`)
)

// Parse reads an amount typed by a user or found in a document.
// Accepted forms: "1.234,56", "1234,56", "R$ 10,00" and "1234.56".
// A dot is only a thousands separator when a comma is present; without one,
// dot-grouped thousands such as "1.234" are rejected with ErrAmbiguousAmount.
func Parse(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if grouped.MatchString(clean) {
		return decimal.Zero, fmt.Errorf("%q: %w", s, ErrAmbiguousAmount)
	}

	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	return d, nil
}

// FormatBRL renders d as Brazilian currency, e.g. "R$ 1.234,56".
func FormatBRL(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	return sign + printer.Sprintf("R$ %v", number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

// FormatPlain renders d with two decimals and a comma separator, without
// grouping. Used for spreadsheet cells.
func FormatPlain(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}
