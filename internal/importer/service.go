package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/notas/internal/entity"
	"github.com/MrJamesThe3rd/notas/internal/importer/nfe"
	"github.com/MrJamesThe3rd/notas/internal/invoice"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer
type Creator interface {
	Create(ctx context.Context, params invoice.CreateParams) (*invoice.Record, error)
}

type Resolver interface {
	Resolve(ctx context.Context, t entity.Type, taxID, fallback string) (string, error)
}

type Service struct {
	importers map[Format]Importer
	creator   Creator
	resolver  Resolver
}

func NewService(creator Creator, resolver Resolver) *Service {
	return &Service{
		importers: map[Format]Importer{
			FormatNFe: nfe.New(),
		},
		creator:  creator,
		resolver: resolver,
	}
}

// Preview parses a document and swaps the names it carries for the ones
// registered under the same tax IDs, without saving anything.
func (s *Service) Preview(ctx context.Context, format Format, r io.Reader) (invoice.CreateParams, error) {
	imp, ok := s.importers[format]
	if !ok {
		return invoice.CreateParams{}, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	params, err := imp.Parse(r)
	if err != nil {
		return invoice.CreateParams{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	params.SupplierName, err = s.resolver.Resolve(ctx, entity.TypeSupplier, params.SupplierTaxID, params.SupplierName)
	if err != nil {
		return invoice.CreateParams{}, fmt.Errorf("resolving supplier: %w", err)
	}

	params.StoreName, err = s.resolver.Resolve(ctx, entity.TypeStore, params.StoreTaxID, params.StoreName)
	if err != nil {
		return invoice.CreateParams{}, fmt.Errorf("resolving store: %w", err)
	}

	return params, nil
}

func (s *Service) Import(ctx context.Context, format Format, r io.Reader) (*invoice.Record, error) {
	params, err := s.Preview(ctx, format, r)
	if err != nil {
		return nil, err
	}

	return s.creator.Create(ctx, params)
}
