package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
)

// SettingsDTO configuración del sistema (lectura y escritura).
type SettingsDTO struct {
	SystemName         string    `json:"system_name"`
	TimeZone           string    `json:"time_zone"`
	Language           string    `json:"language"`
	MaintenanceMode    bool      `json:"maintenance_mode"`
	AllowRegistration  bool      `json:"allow_registration"`
	DefaultRole        string    `json:"default_role"`
	DeliveryRadiusKm   int       `json:"delivery_radius_km"`
	DeliveryHoursStart string    `json:"delivery_hours_start"`
	DeliveryHoursEnd   string    `json:"delivery_hours_end"`
	RealTimeTracking   bool      `json:"real_time_tracking"`
	AutoAssign         bool      `json:"auto_assign"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Validate reglas de actualización.
func (s SettingsDTO) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.SystemName, validation.Required, validation.Length(1, 100)),
		validation.Field(&s.TimeZone, validation.Required, validation.By(func(v interface{}) error {
			tz, _ := v.(string)
			if _, err := time.LoadLocation(tz); err != nil {
				return validation.NewError("validation_timezone", "zona horaria desconocida")
			}
			return nil
		})),
		validation.Field(&s.Language, validation.Required, validation.Length(2, 10)),
		validation.Field(&s.DefaultRole, validation.Required, validation.In(entity.RoleCustomer, entity.RoleDriver)),
		validation.Field(&s.DeliveryRadiusKm, validation.Min(1), validation.Max(500)),
		validation.Field(&s.DeliveryHoursStart, validation.Required, validation.Date("15:04")),
		validation.Field(&s.DeliveryHoursEnd, validation.Required, validation.Date("15:04")),
	)
}

// SettingsFromEntity convierte la entidad al DTO.
func SettingsFromEntity(s *entity.Settings) SettingsDTO {
	return SettingsDTO{
		SystemName:         s.SystemName,
		TimeZone:           s.TimeZone,
		Language:           s.Language,
		MaintenanceMode:    s.MaintenanceMode,
		AllowRegistration:  s.AllowRegistration,
		DefaultRole:        s.DefaultRole,
		DeliveryRadiusKm:   s.DeliveryRadiusKm,
		DeliveryHoursStart: s.DeliveryHoursStart,
		DeliveryHoursEnd:   s.DeliveryHoursEnd,
		RealTimeTracking:   s.RealTimeTracking,
		AutoAssign:         s.AutoAssign,
		UpdatedAt:          s.UpdatedAt,
	}
}

// ToEntity convierte el DTO a la entidad.
func (s SettingsDTO) ToEntity() *entity.Settings {
	return &entity.Settings{
		SystemName:         s.SystemName,
		TimeZone:           s.TimeZone,
		Language:           s.Language,
		MaintenanceMode:    s.MaintenanceMode,
		AllowRegistration:  s.AllowRegistration,
		DefaultRole:        s.DefaultRole,
		DeliveryRadiusKm:   s.DeliveryRadiusKm,
		DeliveryHoursStart: s.DeliveryHoursStart,
		DeliveryHoursEnd:   s.DeliveryHoursEnd,
		RealTimeTracking:   s.RealTimeTracking,
		AutoAssign:         s.AutoAssign,
	}
}
