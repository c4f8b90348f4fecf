package http

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/domain"
)

// errorMapping traduce errores de dominio a status HTTP y código.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrEmptyInput, fiber.StatusBadRequest, "EMPTY_INPUT"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "INVALID_INPUT"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
}

// respondError escribe el ErrorResponse que corresponde a err.
// Cualquier error no mapeado es un 500 con mensaje genérico; el detalle solo va al log.
func respondError(c *fiber.Ctx, err error) error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: verrs.Error()})
	}
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	requestLogger(c).Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "Internal Server Error"})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// validatable lo cumplen los DTO con reglas ozzo.
type validatable interface {
	Validate() error
}

// parseBody decodifica el JSON y aplica Validate. Devuelve la respuesta 400 ya escrita
// en el segundo valor para que el handler solo tenga que retornarla.
func parseBody(c *fiber.Ctx, out validatable) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, invalidBody(c)
	}
	if err := out.Validate(); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return true, nil
}
