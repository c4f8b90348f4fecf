package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Logistica-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats devuelve la comparación de los últimos 30 días contra los 30 anteriores.
// GET /api/dashboard/stats
//
// Respuesta: DashboardStatsDTO (mine siempre; global solo para admin).
// No requiere parámetros; las ventanas se calculan en el servidor.
//
// @Summary      Estadísticas del dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DashboardStatsDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.UserContext(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
