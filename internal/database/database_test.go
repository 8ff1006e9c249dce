package database_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/notas/internal/database"
)

func TestNew_CreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "notas.db")

	db, err := database.New("file:" + path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('invoices', 'entities')`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNew_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notas.db")

	db, err := database.New(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = database.New(path)
	require.NoError(t, err)
	assert.NoError(t, db.Close())
}
