package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistica-api/pkg/logger"
)

const localLogger = "logger"

// RequestLogger registra método, ruta, status, duración y request id de cada petición.
// Usar después de requestid.New() para que el id ya esté en la respuesta.
func RequestLogger(log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		c.Locals(localLogger, log)

		chainErr := c.Next()
		if chainErr != nil {
			// El ErrorHandler de Fiber fija el status; lo invocamos aquí para loguear el final.
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Str("user_id", GetUserID(c)).
			Msg("http request")
		return nil
	}
}

// requestLogger devuelve el logger de la petición o uno nulo si no hay middleware.
func requestLogger(c *fiber.Ctx) *logger.Logger {
	if l, ok := c.Locals(localLogger).(*logger.Logger); ok && l != nil {
		return l
	}
	return logger.Nop()
}
