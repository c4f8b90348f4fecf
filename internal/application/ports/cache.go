package ports

import (
	"context"
	"time"
)

// Cache define el puerto de salida para la caché de lecturas frecuentes
// (configuración del sistema, estadísticas del dashboard).
// Los valores se serializan como JSON; un fallo de caché nunca debe romper
// la operación que la usa.
type Cache interface {
	// Get carga en dest el valor de key. found=false si no existe o expiró.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// DashboardKeyPrefix prefijo de las estadísticas del dashboard cacheadas por usuario.
const DashboardKeyPrefix = "dashboard:stats:"

// NopCache implementación vacía: nunca encuentra nada y descarta las escrituras.
// Se usa cuando no hay Redis configurado.
type NopCache struct{}

var _ Cache = NopCache{}

func (NopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (NopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (NopCache) Delete(context.Context, ...string) error { return nil }
func (NopCache) DeleteByPrefix(context.Context, string) error { return nil }
