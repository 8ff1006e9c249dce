// Package analytics folds invoice records into financial aggregates.
//
// The functions here are pure: they never mutate their input, hold no state
// and do no I/O. Service adds the fetch-then-aggregate convenience on top.
package analytics

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/notas/internal/invoice"
)

// ErrMissingEntryDate means a record cannot be placed in any month.
var ErrMissingEntryDate = errors.New("record has no entry date")

type Summary struct {
	TotalInflow  decimal.Decimal
	TotalOutflow decimal.Decimal
	NetBalance   decimal.Decimal
	InflowCount  int
	OutflowCount int
}

// MonthlyTotals maps a "YYYY-MM" key to the summed amount of each kind seen
// in that month.
type MonthlyTotals map[string]map[invoice.Kind]decimal.Decimal

// SupplierTotals maps a supplier name to the summed amount of its records,
// inflow and outflow alike.
type SupplierTotals map[string]decimal.Decimal

// Summarize totals inflow and outflow. Records of any other kind are ignored;
// a record without an amount counts as zero.
func Summarize(records []*invoice.Record) Summary {
	var s Summary

	for _, r := range records {
		if r == nil {
			continue
		}

		switch r.KindOrDefault() {
		case invoice.KindInflow:
			s.TotalInflow = s.TotalInflow.Add(r.AmountOrZero())
			s.InflowCount++
		case invoice.KindOutflow:
			s.TotalOutflow = s.TotalOutflow.Add(r.AmountOrZero())
			s.OutflowCount++
		}
	}

	s.NetBalance = s.TotalInflow.Sub(s.TotalOutflow)

	return s
}

// Monthly groups amounts by the literal "YYYY-MM" prefix of the entry date and
// by kind. Records lacking a kind or an amount are left out. A record without
// an entry date fails the whole call with ErrMissingEntryDate.
func Monthly(records []*invoice.Record) (MonthlyTotals, error) {
	totals := make(MonthlyTotals)

	for _, r := range records {
		if r == nil {
			continue
		}

		if r.EntryDate == "" {
			return nil, fmt.Errorf("invoice %d: %w", r.ID, ErrMissingEntryDate)
		}

		if r.Kind == "" || !r.Amount.Valid {
			continue
		}

		key := monthKey(r.EntryDate)

		byKind, ok := totals[key]
		if !ok {
			byKind = make(map[invoice.Kind]decimal.Decimal)
			totals[key] = byKind
		}

		byKind[r.Kind] = byKind[r.Kind].Add(r.Amount.Decimal)
	}

	return totals, nil
}

// monthKey is a plain prefix cut, not a calendar parse: "2024-1x-05" groups
// under "2024-1x".
func monthKey(date string) string {
	runes := []rune(date)
	if len(runes) <= 7 {
		return date
	}

	return string(runes[:7])
}

// BySupplier sums amounts per supplier name. Records without a supplier or an
// amount are skipped.
func BySupplier(records []*invoice.Record) SupplierTotals {
	totals := make(SupplierTotals)

	for _, r := range records {
		if r == nil || r.SupplierName == "" || !r.Amount.Valid {
			continue
		}

		totals[r.SupplierName] = totals[r.SupplierName].Add(r.Amount.Decimal)
	}

	return totals
}

// Months returns the month keys in ascending order.
func (m MonthlyTotals) Months() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

type SupplierAmount struct {
	Supplier string
	Amount   decimal.Decimal
}

// Ranked lists suppliers by descending total, ties broken by name.
func (s SupplierTotals) Ranked() []SupplierAmount {
	out := make([]SupplierAmount, 0, len(s))
	for name, amount := range s {
		out = append(out, SupplierAmount{Supplier: name, Amount: amount})
	}

	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}

		return out[i].Supplier < out[j].Supplier
	})

	return out
}
