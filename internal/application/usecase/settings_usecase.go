package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/application/ports"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
	"github.com/jhoicas/Logistica-api/pkg/logger"
)

const settingsCacheKey = "settings:current"

// SettingsUseCase lectura y actualización del documento único de configuración.
// Las lecturas pasan por la caché; la escritura la invalida.
type SettingsUseCase struct {
	repo  repository.SettingsRepository
	cache ports.Cache
	ttl   time.Duration
	log   *logger.Logger
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository, cache ports.Cache, ttl time.Duration, log *logger.Logger) *SettingsUseCase {
	if cache == nil {
		cache = ports.NopCache{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SettingsUseCase{repo: repo, cache: cache, ttl: ttl, log: log}
}

// Current devuelve la configuración vigente (la crea con valores por defecto la primera vez).
func (uc *SettingsUseCase) Current(ctx context.Context) (*entity.Settings, error) {
	var cached dto.SettingsDTO
	found, err := uc.cache.Get(ctx, settingsCacheKey, &cached)
	if err != nil {
		uc.log.Warn().Err(err).Msg("caché de configuración no disponible")
	}
	if found {
		s := cached.ToEntity()
		s.UpdatedAt = cached.UpdatedAt
		return s, nil
	}

	s, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := uc.cache.Set(ctx, settingsCacheKey, dto.SettingsFromEntity(s), uc.ttl); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo guardar la configuración en caché")
	}
	return s, nil
}

// Get devuelve la configuración como DTO.
func (uc *SettingsUseCase) Get(ctx context.Context) (dto.SettingsDTO, error) {
	s, err := uc.Current(ctx)
	if err != nil {
		return dto.SettingsDTO{}, err
	}
	return dto.SettingsFromEntity(s), nil
}

// Update reemplaza la configuración e invalida la caché.
func (uc *SettingsUseCase) Update(ctx context.Context, in dto.SettingsDTO) (dto.SettingsDTO, error) {
	s := in.ToEntity()
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return dto.SettingsDTO{}, err
	}
	if err := uc.cache.Delete(ctx, settingsCacheKey); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché de configuración")
	}
	return dto.SettingsFromEntity(s), nil
}
