package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/inventario-hosteria/internal/application/dto"
	"github.com/tu-usuario/inventario-hosteria/pkg/logger"
)

// internalErrorMessage respuesta fija de los 500. El detalle (SQL, DSN,
// errores del driver) se queda en el log; al cliente nunca le llega.
const internalErrorMessage = "An internal server error occurred."

// internalError registra el error inesperado con contexto de la petición y
// responde 500 con el mensaje genérico.
func internalError(c *fiber.Ctx, log *logger.Logger, err error) error {
	log.Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno no manejado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: internalErrorMessage})
}
