package store_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/notas/internal/database"
	"github.com/MrJamesThe3rd/notas/internal/invoice"
	"github.com/MrJamesThe3rd/notas/internal/invoice/store"
)

func newStore(t *testing.T) (*store.Store, *sql.DB) {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "notas.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return store.New(db), db
}

func record(supplier, date, amount string, kind invoice.Kind) *invoice.Record {
	return &invoice.Record{
		StoreName:    "Loja Centro",
		SupplierName: supplier,
		Amount:       decimal.NewNullDecimal(decimal.RequireFromString(amount)),
		EntryDate:    date,
		Kind:         kind,
	}
}

func day(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}

	return &t
}

func TestStore_CreateAndGet(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	r := record("Acme", "2024-01-15", "100.10", invoice.KindInflow)
	r.AccessKey = "35240112345678000199550010000012341000012345"
	r.DueDate = "2024-02-15"

	require.NoError(t, s.CreateRecord(ctx, r))
	assert.Positive(t, r.ID)

	got, err := s.GetRecord(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.SupplierName)
	assert.Equal(t, r.AccessKey, got.AccessKey)
	assert.Equal(t, "2024-02-15", got.DueDate)
	assert.Equal(t, invoice.KindInflow, got.Kind)
	assert.True(t, got.Amount.Valid)
	assert.True(t, decimal.RequireFromString("100.10").Equal(got.Amount.Decimal))
}

func TestStore_GetMissing(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.GetRecord(context.Background(), 999)
	assert.ErrorIs(t, err, invoice.ErrNotFound)
}

func TestStore_NullColumnsSurfaceEmpty(t *testing.T) {
	s, db := newStore(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `INSERT INTO invoices (amount, kind) VALUES ('5', 'Saída')`)
	require.NoError(t, err)

	records, err := s.ListRecords(ctx, invoice.ListFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].SupplierName)
	assert.Empty(t, records[0].EntryDate)
	assert.Empty(t, records[0].DueDate)
}

func TestStore_ListRecords(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	for _, r := range []*invoice.Record{
		record("Acme", "2024-01-15", "100", invoice.KindInflow),
		record("Beta", "2024-01-20", "40", invoice.KindOutflow),
		record("Acme", "2024-02-01", "60", invoice.KindInflow),
		record("Acme", "2024-03-05", "10", invoice.KindOutflow),
	} {
		require.NoError(t, s.CreateRecord(ctx, r))
	}

	type testCase struct {
		name      string
		filter    invoice.ListFilter
		wantDates []string
	}

	tests := []testCase{
		{
			name:      "All newest first",
			filter:    invoice.ListFilter{},
			wantDates: []string{"2024-03-05", "2024-02-01", "2024-01-20", "2024-01-15"},
		},
		{
			name:      "Limit",
			filter:    invoice.ListFilter{Limit: 2},
			wantDates: []string{"2024-03-05", "2024-02-01"},
		},
		{
			name:      "Supplier",
			filter:    invoice.ListFilter{Supplier: "Acme"},
			wantDates: []string{"2024-03-05", "2024-02-01", "2024-01-15"},
		},
		{
			name:      "Date range inclusive",
			filter:    invoice.ListFilter{StartDate: day("2024-01-20"), EndDate: day("2024-02-01")},
			wantDates: []string{"2024-02-01", "2024-01-20"},
		},
		{
			name:      "Combined",
			filter:    invoice.ListFilter{StartDate: day("2024-01-01"), Supplier: "Acme", Limit: 1},
			wantDates: []string{"2024-03-05"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListRecords(ctx, tt.filter)
			require.NoError(t, err)

			dates := make([]string, len(got))
			for i, r := range got {
				dates[i] = r.EntryDate
			}

			assert.Equal(t, tt.wantDates, dates)
		})
	}
}

func TestStore_DeleteRecord(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	r := record("Acme", "2024-01-15", "1", invoice.KindInflow)
	require.NoError(t, s.CreateRecord(ctx, r))

	require.NoError(t, s.DeleteRecord(ctx, r.ID))
	assert.ErrorIs(t, s.DeleteRecord(ctx, r.ID), invoice.ErrNotFound)
}

func TestStore_EntryDates(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	legacy := record("Acme", "15-01-2024", "1", invoice.KindInflow)
	iso := record("Acme", "2024-01-16", "1", invoice.KindInflow)
	require.NoError(t, s.CreateRecord(ctx, legacy))
	require.NoError(t, s.CreateRecord(ctx, iso))

	stored, err := s.ListEntryDates(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{legacy.ID: "15-01-2024", iso.ID: "2024-01-16"}, stored)

	require.NoError(t, s.UpdateEntryDates(ctx, map[int64]string{legacy.ID: "2024-01-15"}))

	got, err := s.GetRecord(ctx, legacy.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", got.EntryDate)
}
