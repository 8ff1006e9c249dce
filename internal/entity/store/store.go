package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/MrJamesThe3rd/notas/internal/entity"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateEntity(ctx context.Context, e *entity.Entity) error {
	query := `INSERT INTO entities (type, name, tax_id) VALUES (?, ?, ?) RETURNING id`

	err := s.db.QueryRowContext(ctx, query, string(e.Type), e.Name, e.TaxID).Scan(&e.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrDuplicate
		}

		return fmt.Errorf("creating entity: %w", err)
	}

	return nil
}

func (s *Store) ListEntities(ctx context.Context, t entity.Type) ([]*entity.Entity, error) {
	query := `SELECT id, type, name, tax_id FROM entities WHERE type = ? ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, string(t))
	if err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}
	defer rows.Close()

	var out []*entity.Entity

	for rows.Next() {
		var e entity.Entity
		if err := rows.Scan(&e.ID, &e.Type, &e.Name, &e.TaxID); err != nil {
			return nil, fmt.Errorf("scanning entity: %w", err)
		}

		out = append(out, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entities: %w", err)
	}

	return out, nil
}

func (s *Store) FindByTaxID(ctx context.Context, t entity.Type, taxID string) (*entity.Entity, error) {
	query := `SELECT id, type, name, tax_id FROM entities WHERE type = ? AND tax_id = ?`

	var e entity.Entity

	err := s.db.QueryRowContext(ctx, query, string(t), taxID).Scan(&e.ID, &e.Type, &e.Name, &e.TaxID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}

		return nil, fmt.Errorf("finding entity: %w", err)
	}

	return &e, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}

	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
