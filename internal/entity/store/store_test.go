package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/notas/internal/database"
	"github.com/MrJamesThe3rd/notas/internal/entity"
	"github.com/MrJamesThe3rd/notas/internal/entity/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "notas.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return store.New(db)
}

func TestStore_CreateAndList(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	for _, e := range []*entity.Entity{
		{Type: entity.TypeSupplier, Name: "Zeta Alimentos", TaxID: "11111111000111"},
		{Type: entity.TypeSupplier, Name: "Acme Distribuidora", TaxID: "22222222000122"},
		{Type: entity.TypeStore, Name: "Loja Centro", TaxID: "33333333000133"},
	} {
		require.NoError(t, s.CreateEntity(ctx, e))
		assert.Positive(t, e.ID)
	}

	suppliers, err := s.ListEntities(ctx, entity.TypeSupplier)
	require.NoError(t, err)
	require.Len(t, suppliers, 2)
	assert.Equal(t, "Acme Distribuidora", suppliers[0].Name)
	assert.Equal(t, "Zeta Alimentos", suppliers[1].Name)

	stores, err := s.ListEntities(ctx, entity.TypeStore)
	require.NoError(t, err)
	assert.Len(t, stores, 1)
}

func TestStore_Duplicate(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateEntity(ctx, &entity.Entity{Type: entity.TypeSupplier, Name: "Acme", TaxID: "1"}))

	err := s.CreateEntity(ctx, &entity.Entity{Type: entity.TypeSupplier, Name: "Acme", TaxID: "2"})
	assert.ErrorIs(t, err, entity.ErrDuplicate)

	err = s.CreateEntity(ctx, &entity.Entity{Type: entity.TypeSupplier, Name: "Other", TaxID: "1"})
	assert.ErrorIs(t, err, entity.ErrDuplicate)

	// Same identity in the other registry is fine.
	assert.NoError(t, s.CreateEntity(ctx, &entity.Entity{Type: entity.TypeStore, Name: "Acme", TaxID: "1"}))
}

func TestStore_FindByTaxID(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateEntity(ctx, &entity.Entity{Type: entity.TypeSupplier, Name: "Acme", TaxID: "123"}))

	e, err := s.FindByTaxID(ctx, entity.TypeSupplier, "123")
	require.NoError(t, err)
	assert.Equal(t, "Acme", e.Name)

	_, err = s.FindByTaxID(ctx, entity.TypeStore, "123")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
