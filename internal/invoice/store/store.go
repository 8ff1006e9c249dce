package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/notas/internal/invoice"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord expects the column order of selectRecordColumns. Nullable text
// columns surface as empty strings.
func scanRecord(s scanner) (*invoice.Record, error) {
	var (
		r    invoice.Record
		text [11]sql.NullString
	)

	if err := s.Scan(
		&r.ID,
		&text[0], &text[1], &text[2], &text[3],
		&text[4], &text[5], &text[6],
		&r.Amount,
		&text[7], &text[8], &text[9], &text[10],
	); err != nil {
		return nil, err
	}

	r.StoreName = text[0].String
	r.StoreTaxID = text[1].String
	r.SupplierName = text[2].String
	r.SupplierTaxID = text[3].String
	r.DocumentNumber = text[4].String
	r.InvoiceNumber = text[5].String
	r.AccessKey = text[6].String
	r.EntryDate = text[7].String
	r.DueDate = text[8].String
	r.Note = text[9].String
	r.Kind = invoice.Kind(text[10].String)

	return &r, nil
}

const selectRecordColumns = `
	id, store_name, store_tax_id, supplier_name, supplier_tax_id,
	document_number, invoice_number, access_key,
	amount, entry_date, due_date, note, kind
`

func (s *Store) CreateRecord(ctx context.Context, r *invoice.Record) error {
	query := `
		INSERT INTO invoices (
			store_name, store_tax_id, supplier_name, supplier_tax_id,
			document_number, invoice_number, access_key,
			amount, entry_date, due_date, note, kind
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		r.StoreName,
		r.StoreTaxID,
		r.SupplierName,
		r.SupplierTaxID,
		r.DocumentNumber,
		r.InvoiceNumber,
		r.AccessKey,
		r.AmountOrZero().String(),
		r.EntryDate,
		r.DueDate,
		r.Note,
		string(r.Kind),
	).Scan(&r.ID)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	return nil
}

func (s *Store) GetRecord(ctx context.Context, id int64) (*invoice.Record, error) {
	query := `SELECT ` + selectRecordColumns + ` FROM invoices WHERE id = ?`

	r, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return r, nil
}

func (s *Store) ListRecords(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Record, error) {
	var (
		where []string
		args  []any
	)

	if filter.StartDate != nil {
		where = append(where, "entry_date >= ?")
		args = append(args, filter.StartDate.Format(time.DateOnly))
	}

	if filter.EndDate != nil {
		where = append(where, "entry_date <= ?")
		args = append(args, filter.EndDate.Format(time.DateOnly))
	}

	if filter.Supplier != "" {
		where = append(where, "supplier_name = ?")
		args = append(args, filter.Supplier)
	}

	query := `SELECT ` + selectRecordColumns + ` FROM invoices`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	query += " ORDER BY id DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"

		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var records []*invoice.Record

	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoices: %w", err)
	}

	return records, nil
}

func (s *Store) DeleteRecord(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	if n == 0 {
		return invoice.ErrNotFound
	}

	return nil
}

func (s *Store) ListEntryDates(ctx context.Context) (map[int64]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, entry_date FROM invoices WHERE entry_date LIKE '%-%-%'`)
	if err != nil {
		return nil, fmt.Errorf("listing entry dates: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]string)

	for rows.Next() {
		var (
			id   int64
			date string
		)

		if err := rows.Scan(&id, &date); err != nil {
			return nil, fmt.Errorf("scanning entry date: %w", err)
		}

		out[id] = date
	}

	return out, rows.Err()
}

// UpdateEntryDates applies all changes in one transaction.
func (s *Store) UpdateEntryDates(ctx context.Context, dates map[int64]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `UPDATE invoices SET entry_date = ? WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("preparing update: %w", err)
	}
	defer stmt.Close()

	for id, date := range dates {
		if _, err := stmt.ExecContext(ctx, date, id); err != nil {
			return fmt.Errorf("updating entry date of invoice %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
