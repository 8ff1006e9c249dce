package invoice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/notas/internal/dates"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	CreateRecord(ctx context.Context, r *Record) error
	GetRecord(ctx context.Context, id int64) (*Record, error)
	ListRecords(ctx context.Context, filter ListFilter) ([]*Record, error)
	DeleteRecord(ctx context.Context, id int64) error

	ListEntryDates(ctx context.Context) (map[int64]string, error)
	UpdateEntryDates(ctx context.Context, dates map[int64]string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	StoreName      string
	StoreTaxID     string
	SupplierName   string
	SupplierTaxID  string
	DocumentNumber string
	InvoiceNumber  string
	AccessKey      string
	Amount         decimal.Decimal
	EntryDate      string
	DueDate        string
	Note           string
	Kind           Kind
}

// ListFilter narrows a listing. Zero values mean "no restriction"; results
// always come newest first.
type ListFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Supplier  string
	Limit     int
}

func (p CreateParams) validate() error {
	if p.Amount.IsNegative() {
		return ErrNegativeAmount
	}

	if !dates.IsISO(p.EntryDate) {
		return fmt.Errorf("%w: entry date %q", ErrInvalidDate, p.EntryDate)
	}

	if p.DueDate != "" && !dates.IsISO(p.DueDate) {
		return fmt.Errorf("%w: due date %q", ErrInvalidDate, p.DueDate)
	}

	if p.Kind != KindInflow && p.Kind != KindOutflow {
		return fmt.Errorf("%w: %q", ErrInvalidKind, p.Kind)
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Record, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	r := &Record{
		StoreName:      strings.TrimSpace(params.StoreName),
		StoreTaxID:     strings.TrimSpace(params.StoreTaxID),
		SupplierName:   strings.TrimSpace(params.SupplierName),
		SupplierTaxID:  strings.TrimSpace(params.SupplierTaxID),
		DocumentNumber: strings.TrimSpace(params.DocumentNumber),
		InvoiceNumber:  strings.TrimSpace(params.InvoiceNumber),
		AccessKey:      strings.TrimSpace(params.AccessKey),
		Amount:         decimal.NewNullDecimal(params.Amount),
		EntryDate:      params.EntryDate,
		DueDate:        params.DueDate,
		Note:           strings.TrimSpace(params.Note),
		Kind:           params.Kind,
	}
	if err := s.repo.CreateRecord(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Record, error) {
	return s.repo.GetRecord(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Record, error) {
	return s.repo.ListRecords(ctx, filter)
}

// Recent returns the latest n records.
func (s *Service) Recent(ctx context.Context, n int) ([]*Record, error) {
	return s.repo.ListRecords(ctx, ListFilter{Limit: n})
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteRecord(ctx, id)
}

// NormalizeLegacyDates rewrites entry dates stored as DD-MM-YYYY into ISO
// form and reports how many records changed.
func (s *Service) NormalizeLegacyDates(ctx context.Context) (int, error) {
	stored, err := s.repo.ListEntryDates(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing entry dates: %w", err)
	}

	updates := make(map[int64]string)

	for id, d := range stored {
		iso, ok := dates.FromLegacy(d)
		if !ok {
			continue
		}

		updates[id] = iso
	}

	if len(updates) == 0 {
		return 0, nil
	}

	if err := s.repo.UpdateEntryDates(ctx, updates); err != nil {
		return 0, fmt.Errorf("updating entry dates: %w", err)
	}

	return len(updates), nil
}
