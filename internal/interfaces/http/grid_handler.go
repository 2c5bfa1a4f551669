package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dfmartinez/bodega-api/internal/application/grid"
)

// GridHandler estado de ocupación de las celdas del almacén.
type GridHandler struct {
	uc *grid.GridUseCase
}

// NewGridHandler construye el handler de la grilla.
func NewGridHandler(uc *grid.GridUseCase) *GridHandler {
	return &GridHandler{uc: uc}
}

// Matrix godoc
// @Summary      Mapa de celdas del almacén
// @Description  Matriz sector → filas × celdas con "busy" o "free" según existencias.
// @Tags         grid
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string][][]string
// @Router       /api/cells [get]
func (h *GridHandler) Matrix(c *fiber.Ctx) error {
	matrix, err := h.uc.Matrix(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(matrix)
}
