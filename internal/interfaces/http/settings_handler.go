package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/application/usecase"
)

// SettingsHandler configuración del sistema.
type SettingsHandler struct {
	uc *usecase.SettingsUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get godoc
// @Summary      Leer configuración
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.SettingsDTO
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar configuración (admin)
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SettingsDTO  true  "configuración completa"
// @Success      200   {object}  dto.SettingsDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in dto.SettingsDTO
	if ok, resp := parseBody(c, &in); !ok {
		return resp
	}
	out, err := h.uc.Update(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
