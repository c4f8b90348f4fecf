package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo documento único de configuración (fila con id = 1).
type SettingsRepo struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository construye el adaptador.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

// Get lee la configuración; si la fila no existe la crea con los valores por defecto.
func (r *SettingsRepo) Get(ctx context.Context) (*entity.Settings, error) {
	def := entity.DefaultSettings()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO settings (id, system_name, time_zone, language, maintenance_mode, allow_registration,
		                      default_role, delivery_radius_km, delivery_hours_start, delivery_hours_end,
		                      real_time_tracking, auto_assign, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (id) DO NOTHING`,
		def.SystemName, def.TimeZone, def.Language, def.MaintenanceMode, def.AllowRegistration,
		def.DefaultRole, def.DeliveryRadiusKm, def.DeliveryHoursStart, def.DeliveryHoursEnd,
		def.RealTimeTracking, def.AutoAssign,
	)
	if err != nil {
		return nil, fmt.Errorf("ensure settings: %w", err)
	}

	var s entity.Settings
	err = r.pool.QueryRow(ctx, `
		SELECT system_name, time_zone, language, maintenance_mode, allow_registration,
		       default_role, delivery_radius_km, delivery_hours_start, delivery_hours_end,
		       real_time_tracking, auto_assign, updated_at
		FROM settings WHERE id = 1`).Scan(
		&s.SystemName, &s.TimeZone, &s.Language, &s.MaintenanceMode, &s.AllowRegistration,
		&s.DefaultRole, &s.DeliveryRadiusKm, &s.DeliveryHoursStart, &s.DeliveryHoursEnd,
		&s.RealTimeTracking, &s.AutoAssign, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Update reemplaza la configuración completa (upsert sobre id = 1).
func (r *SettingsRepo) Update(ctx context.Context, s *entity.Settings) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO settings (id, system_name, time_zone, language, maintenance_mode, allow_registration,
		                      default_role, delivery_radius_km, delivery_hours_start, delivery_hours_end,
		                      real_time_tracking, auto_assign, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
		    system_name = EXCLUDED.system_name,
		    time_zone = EXCLUDED.time_zone,
		    language = EXCLUDED.language,
		    maintenance_mode = EXCLUDED.maintenance_mode,
		    allow_registration = EXCLUDED.allow_registration,
		    default_role = EXCLUDED.default_role,
		    delivery_radius_km = EXCLUDED.delivery_radius_km,
		    delivery_hours_start = EXCLUDED.delivery_hours_start,
		    delivery_hours_end = EXCLUDED.delivery_hours_end,
		    real_time_tracking = EXCLUDED.real_time_tracking,
		    auto_assign = EXCLUDED.auto_assign,
		    updated_at = EXCLUDED.updated_at`,
		s.SystemName, s.TimeZone, s.Language, s.MaintenanceMode, s.AllowRegistration,
		s.DefaultRole, s.DeliveryRadiusKm, s.DeliveryHoursStart, s.DeliveryHoursEnd,
		s.RealTimeTracking, s.AutoAssign, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}
