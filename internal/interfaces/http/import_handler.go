package http

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistica-api/internal/application/deliveries"
	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/domain/csvimport"
)

// uploadField nombre del campo multipart con el CSV.
const uploadField = "file"

// ImportHandler carga masiva de entregas desde CSV.
type ImportHandler struct {
	uc       *deliveries.ImportUseCase
	maxBytes int64
}

// NewImportHandler construye el handler. maxBytes <= 0 desactiva el límite de tamaño.
func NewImportHandler(uc *deliveries.ImportUseCase, maxBytes int64) *ImportHandler {
	return &ImportHandler{uc: uc, maxBytes: maxBytes}
}

// readUpload lee el archivo del campo "file" y lo devuelve como texto UTF-8.
// Si falla, la respuesta 400 ya está escrita y se devuelve como error.
func (h *ImportHandler) readUpload(c *fiber.Ctx) (string, bool, error) {
	header, err := c.FormFile(uploadField)
	if err != nil {
		return "", false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "el campo 'file' es obligatorio"})
	}
	if h.maxBytes > 0 && header.Size > h.maxBytes {
		return "", false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("el archivo supera el máximo de %d bytes", h.maxBytes),
		})
	}
	f, err := header.Open()
	if err != nil {
		return "", false, respondError(c, fmt.Errorf("abrir archivo subido: %w", err))
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return "", false, respondError(c, fmt.Errorf("leer archivo subido: %w", err))
	}
	content, err := csvimport.DecodeContent(raw)
	if err != nil {
		return "", false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ENCODING", Message: err.Error()})
	}
	return content, true, nil
}

// BulkStatus godoc
// @Summary      Actualizar estados desde CSV (admin, manager)
// @Description  Filas "id,status". Las filas con estado desconocido se descartan sin aviso.
// @Tags         deliveries
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "CSV id,status"
// @Success      200   {object}  dto.BulkStatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/deliveries/bulk-status [post]
func (h *ImportHandler) BulkStatus(c *fiber.Ctx) error {
	content, ok, resp := h.readUpload(c)
	if !ok {
		return resp
	}
	out, err := h.uc.BulkStatus(c.UserContext(), content)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Preview godoc
// @Summary      Vista previa de carga de entregas
// @Description  Valida cada fila sin persistir nada.
// @Tags         deliveries
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "CSV de entregas"
// @Success      200   {object}  dto.ImportPreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/deliveries/bulk/preview [post]
func (h *ImportHandler) Preview(c *fiber.Ctx) error {
	content, ok, resp := h.readUpload(c)
	if !ok {
		return resp
	}
	out, err := h.uc.Preview(content)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BulkCreate godoc
// @Summary      Crear entregas desde CSV
// @Description  Crea las filas válidas; las inválidas y las referencias repetidas se reportan en errors.
// @Tags         deliveries
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "CSV de entregas"
// @Success      200   {object}  dto.BulkCreateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/deliveries/bulk [post]
func (h *ImportHandler) BulkCreate(c *fiber.Ctx) error {
	content, ok, resp := h.readUpload(c)
	if !ok {
		return resp
	}
	out, err := h.uc.BulkCreate(c.UserContext(), GetActor(c), content)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
