package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dfmartinez/bodega-api/internal/application/dto"
	"github.com/dfmartinez/bodega-api/internal/domain"
)

// respondError mapea errores del dominio a respuestas HTTP. Los errores no
// reconocidos salen como 500 sin detalle interno.
func respondError(c *fiber.Ctx, err error) error {
	if v, ok := domain.AsValidation(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: v.Message})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrBatchArchived):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "BATCH_ARCHIVED", Message: "el lote ya fue retirado"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}
