package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistica-api/internal/application/cod"
	"github.com/jhoicas/Logistica-api/internal/application/dto"
)

// CodHandler resumen, descargas y reportes guardados de contra entrega (COD).
type CodHandler struct {
	uc *cod.UseCase
}

// NewCodHandler construye el handler.
func NewCodHandler(uc *cod.UseCase) *CodHandler {
	return &CodHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen COD
// @Description  Sin download ni detail → agregados. detail=true → filas (más reciente primero).
// @Description  download=true → archivo csv, excel o pdf según format.
// @Description  Admin ve todas las entregas; el resto solo las que creó.
// @Tags         cod
// @Produce      json
// @Produce      text/csv
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        from      query  string  false  "YYYY-MM-DD (por defecto 1970-01-01)"
// @Param        to        query  string  false  "YYYY-MM-DD, incluye el día completo (por defecto hoy)"
// @Param        format    query  string  false  "csv | excel | pdf"
// @Param        download  query  bool    false  "devolver archivo"
// @Param        detail    query  bool    false  "devolver filas"
// @Success      200  {object}  dto.CodSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cod/summary [get]
func (h *CodHandler) Summary(c *fiber.Ctx) error {
	var q dto.CodSummaryQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	actor := GetActor(c)

	switch {
	case q.Download:
		file, err := h.uc.Export(c.UserContext(), actor, q)
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, file.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
		return c.Send(file.Content)
	case q.Detail:
		out, err := h.uc.Detail(c.UserContext(), actor, q)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	default:
		out, err := h.uc.Summary(c.UserContext(), actor, q)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// CreateReport godoc
// @Summary      Registrar reporte COD
// @Description  Nombre COD_Report_<from>_to_<to>; repetido para el mismo usuario → 409.
// @Tags         cod
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateCodReportRequest  true  "from, to, format"
// @Success      201   {object}  dto.CodReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cod/reports [post]
func (h *CodHandler) CreateReport(c *fiber.Ctx) error {
	var in dto.CreateCodReportRequest
	if ok, resp := parseBody(c, &in); !ok {
		return resp
	}
	out, err := h.uc.CreateReport(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListReports godoc
// @Summary      Reportes COD guardados
// @Tags         cod
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.CodReportResponse
// @Router       /api/cod/reports [get]
func (h *CodHandler) ListReports(c *fiber.Ctx) error {
	list, err := h.uc.ListReports(c.UserContext(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// DeleteReport godoc
// @Summary      Eliminar reporte COD
// @Tags         cod
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del reporte"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cod/reports/{id} [delete]
func (h *CodHandler) DeleteReport(c *fiber.Ctx) error {
	if err := h.uc.DeleteReport(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
