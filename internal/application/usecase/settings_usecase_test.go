package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-api/internal/application/usecase"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/testutil/memstore"
)

func TestSettings_PrimeraLecturaCreaDefaults(t *testing.T) {
	uc := usecase.NewSettingsUseCase(memstore.NewSettings(), nil, 0, nil)

	out, err := uc.Get(context.Background())
	require.NoError(t, err)

	def := entity.DefaultSettings()
	assert.Equal(t, def.SystemName, out.SystemName)
	assert.Equal(t, def.DefaultRole, out.DefaultRole)
	assert.True(t, out.AllowRegistration)
}

func TestSettings_LecturaDesdeCache(t *testing.T) {
	repo := memstore.NewSettings()
	cache := memstore.NewCache()
	uc := usecase.NewSettingsUseCase(repo, cache, 0, nil)

	_, err := uc.Current(context.Background())
	require.NoError(t, err)
	s, err := uc.Current(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.Reads, "la segunda lectura sale de la caché")
	assert.Equal(t, 1, cache.Hits)
	assert.Equal(t, "Logistica", s.SystemName)
}

func TestSettings_UpdateInvalidaCache(t *testing.T) {
	repo := memstore.NewSettings()
	cache := memstore.NewCache()
	uc := usecase.NewSettingsUseCase(repo, cache, 0, nil)

	cur, err := uc.Get(context.Background())
	require.NoError(t, err)
	cur.SystemName = "Reparto Norte"
	cur.MaintenanceMode = true
	updated, err := uc.Update(context.Background(), cur)
	require.NoError(t, err)
	assert.False(t, updated.UpdatedAt.IsZero())

	s, err := uc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Reparto Norte", s.SystemName)
	assert.True(t, s.MaintenanceMode)
	assert.Equal(t, 2, repo.Reads)
}

func TestSettingsDTO_Validate(t *testing.T) {
	uc := usecase.NewSettingsUseCase(memstore.NewSettings(), nil, 0, nil)
	cur, err := uc.Get(context.Background())
	require.NoError(t, err)
	require.NoError(t, cur.Validate())

	cur.DefaultRole = entity.RoleAdmin
	assert.Error(t, cur.Validate(), "el registro no puede otorgar admin")

	cur.DefaultRole = entity.RoleCustomer
	cur.TimeZone = "Marte/Olympus"
	assert.Error(t, cur.Validate())

	cur.TimeZone = "UTC"
	cur.DeliveryHoursEnd = "25:00"
	assert.Error(t, cur.Validate())
}
