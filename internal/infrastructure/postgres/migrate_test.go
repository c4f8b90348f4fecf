package postgres

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_EmbebidasYReversibles(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.Len(t, files, 4)

	for _, f := range files {
		raw, err := fs.ReadFile(migrationsFS, f)
		require.NoError(t, err)
		sql := string(raw)
		assert.True(t, strings.HasPrefix(sql, "-- +goose Up"), "%s debe empezar con la sección Up", f)
		assert.Contains(t, sql, "-- +goose Down", "%s debe poder revertirse", f)
	}
}

func TestMigrations_ReferenciaUnicaYEstadosPermitidos(t *testing.T) {
	raw, err := fs.ReadFile(migrationsFS, "migrations/00002_deliveries.sql")
	require.NoError(t, err)
	sql := string(raw)

	assert.Contains(t, sql, "reference            VARCHAR(64)  NOT NULL UNIQUE")
	assert.Contains(t, sql, "'pending', 'assigned', 'in_transit', 'delivered', 'returned'")
}
