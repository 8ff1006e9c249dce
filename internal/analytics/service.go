package analytics

import (
	"context"

	"github.com/MrJamesThe3rd/notas/internal/invoice"
)

// Source supplies the records to aggregate. *invoice.Service satisfies it.
//
//go:generate mockgen -source=service.go -destination=source_mock.go -package=analytics
type Source interface {
	List(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Record, error)
}

// Service runs the aggregations over records fetched from a Source. Errors
// from the Source are returned as they are.
type Service struct {
	source Source
}

func NewService(source Source) *Service {
	return &Service{source: source}
}

// Report bundles every aggregate computed over one record set.
//
// Summary and Suppliers are always filled. When Monthly cannot be computed,
// Monthly is nil and MonthlyErr says why.
type Report struct {
	Records    int
	Summary    Summary
	Monthly    MonthlyTotals
	MonthlyErr error
	Suppliers  SupplierTotals
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	records, err := s.source.List(ctx, invoice.ListFilter{})
	if err != nil {
		return Summary{}, err
	}

	return Summarize(records), nil
}

func (s *Service) Monthly(ctx context.Context) (MonthlyTotals, error) {
	records, err := s.source.List(ctx, invoice.ListFilter{})
	if err != nil {
		return nil, err
	}

	return Monthly(records)
}

func (s *Service) BySupplier(ctx context.Context) (SupplierTotals, error) {
	records, err := s.source.List(ctx, invoice.ListFilter{})
	if err != nil {
		return nil, err
	}

	return BySupplier(records), nil
}

// Report aggregates the records matching filter. The error is the Source's;
// a monthly failure is reported in Report.MonthlyErr.
func (s *Service) Report(ctx context.Context, filter invoice.ListFilter) (*Report, error) {
	records, err := s.source.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return Build(records), nil
}

// Build computes every aggregate over records.
func Build(records []*invoice.Record) *Report {
	monthly, err := Monthly(records)

	return &Report{
		Records:    len(records),
		Summary:    Summarize(records),
		Monthly:    monthly,
		MonthlyErr: err,
		Suppliers:  BySupplier(records),
	}
}
