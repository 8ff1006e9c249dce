package entity

import (
	"context"
	"errors"
	"strings"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=entity
type Repository interface {
	CreateEntity(ctx context.Context, e *Entity) error
	ListEntities(ctx context.Context, t Type) ([]*Entity, error)
	FindByTaxID(ctx context.Context, t Type, taxID string) (*Entity, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, t Type, name, taxID string) (*Entity, error) {
	if t != TypeStore && t != TypeSupplier {
		return nil, ErrUnknownType
	}

	e := &Entity{
		Type:  t,
		Name:  strings.TrimSpace(name),
		TaxID: NormalizeTaxID(taxID),
	}
	if e.Name == "" || e.TaxID == "" {
		return nil, ErrInvalid
	}

	if err := s.repo.CreateEntity(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

// List returns the registered entities of type t ordered by name.
func (s *Service) List(ctx context.Context, t Type) ([]*Entity, error) {
	return s.repo.ListEntities(ctx, t)
}

// Resolve returns the registered name for taxID, or fallback when the tax ID
// is not registered.
func (s *Service) Resolve(ctx context.Context, t Type, taxID, fallback string) (string, error) {
	id := NormalizeTaxID(taxID)
	if id == "" {
		return fallback, nil
	}

	e, err := s.repo.FindByTaxID(ctx, t, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fallback, nil
		}

		return "", err
	}

	return e.Name, nil
}
