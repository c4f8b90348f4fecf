package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistica-api/internal/application/deliveries"
	"github.com/jhoicas/Logistica-api/internal/application/dto"
)

// DeliveryHandler maneja los endpoints de entregas.
type DeliveryHandler struct {
	uc *deliveries.DeliveryUseCase
}

// NewDeliveryHandler construye el handler.
func NewDeliveryHandler(uc *deliveries.DeliveryUseCase) *DeliveryHandler {
	return &DeliveryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear entrega
// @Description  Referencia vacía → se genera DLV-XXXXXXXX. Queda en pending a nombre del usuario.
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateDeliveryRequest  true  "datos de la entrega"
// @Success      201   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/deliveries [post]
func (h *DeliveryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDeliveryRequest
	if ok, resp := parseBody(c, &in); !ok {
		return resp
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar entregas
// @Description  Admin y manager ven todas; el conductor sus asignadas; el cliente las que creó.
// @Tags         deliveries
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "pending | assigned | in_transit | delivered | returned"
// @Param        search  query  string  false  "referencia o nombre del cliente"
// @Param        limit   query  int     false  "máx 100"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.DeliveryListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/deliveries [get]
func (h *DeliveryHandler) List(c *fiber.Ctx) error {
	var q dto.DeliveryListRequest
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.UserContext(), GetActor(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener entrega
// @Tags         deliveries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la entrega"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [get]
func (h *DeliveryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar entrega
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                     true  "ID de la entrega"
// @Param        body  body  dto.UpdateDeliveryRequest  true  "campos editables"
// @Success      200   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [put]
func (h *DeliveryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDeliveryRequest
	if ok, resp := parseBody(c, &in); !ok {
		return resp
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar entrega (admin)
// @Tags         deliveries
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la entrega"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [delete]
func (h *DeliveryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateStatus godoc
// @Summary      Cambiar estado
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                   true  "ID de la entrega"
// @Param        body  body  dto.UpdateStatusRequest  true  "nuevo estado"
// @Success      200   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/status [patch]
func (h *DeliveryHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if ok, resp := parseBody(c, &in); !ok {
		return resp
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), GetActor(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AssignDriver godoc
// @Summary      Asignar conductor (admin, manager)
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                   true  "ID de la entrega"
// @Param        body  body  dto.AssignDriverRequest  true  "driver_id"
// @Success      200   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/assign [patch]
func (h *DeliveryHandler) AssignDriver(c *fiber.Ctx) error {
	var in dto.AssignDriverRequest
	if ok, resp := parseBody(c, &in); !ok {
		return resp
	}
	out, err := h.uc.AssignDriver(c.UserContext(), c.Params("id"), in.DriverID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Track godoc
// @Summary      Seguimiento público
// @Description  Solo referencia, estado y fechas.
// @Tags         deliveries
// @Produce      json
// @Param        reference  path  string  true  "referencia"
// @Success      200  {object}  dto.TrackingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/track/{reference} [get]
func (h *DeliveryHandler) Track(c *fiber.Ctx) error {
	out, err := h.uc.Track(c.UserContext(), c.Params("reference"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
