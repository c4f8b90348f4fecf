package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
)

// settingsReader es el contrato mínimo que necesita el middleware para leer la configuración.
// Lo implementa *usecase.SettingsUseCase.
type settingsReader interface {
	Current(ctx context.Context) (*entity.Settings, error)
}

// RequireOnline bloquea las rutas protegidas mientras el modo mantenimiento esté activo.
// Debe usarse DESPUÉS de AuthMiddleware (necesita el rol).
//
// Comportamiento:
//   - El admin siempre pasa (necesita poder desactivar el modo).
//   - 503 MAINTENANCE → modo mantenimiento activo.
//   - 503 SETTINGS_UNAVAILABLE → fallo de infraestructura al leer la configuración.
func RequireOnline(settings settingsReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRole(c) == entity.RoleAdmin {
			return c.Next()
		}
		st, err := settings.Current(c.UserContext())
		if err != nil {
			requestLogger(c).Error().Err(err).Msg("leer configuración para modo mantenimiento")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "SETTINGS_UNAVAILABLE",
				Message: "no se pudo verificar el estado del sistema, intente más tarde",
			})
		}
		if st.MaintenanceMode {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "MAINTENANCE",
				Message: "el sistema '" + st.SystemName + "' está en mantenimiento",
			})
		}
		return c.Next()
	}
}
