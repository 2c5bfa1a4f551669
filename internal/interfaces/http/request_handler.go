package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dfmartinez/bodega-api/internal/application/dto"
	"github.com/dfmartinez/bodega-api/internal/application/request"
)

// RequestHandler solicitudes de mercancía al almacén.
type RequestHandler struct {
	uc *request.StockRequestUseCase
}

// NewRequestHandler construye el handler de solicitudes.
func NewRequestHandler(uc *request.StockRequestUseCase) *RequestHandler {
	return &RequestHandler{uc: uc}
}

// Create godoc
// @Summary      Crear solicitud
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockRequest  true  "product_name, cantidades"
// @Success      201   {object}  dto.StockRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/requests [post]
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToStockRequestResponse(req, ""))
}

// List godoc
// @Summary      Listar solicitudes
// @Description  status opcional: NEW, SEEN, DONE, FAILED o COMPLETED (DONE+FAILED).
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtro de estado"
// @Success      200  {array}  dto.StockRequestResponse
// @Router       /api/requests [get]
func (h *RequestHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// MarkSeen godoc
// @Summary      Marcar solicitud como vista
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/seen [put]
func (h *RequestHandler) MarkSeen(c *fiber.Ctx) error {
	if err := h.uc.MarkSeen(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "solicitud vista"})
}

// MarkDone godoc
// @Summary      Marcar solicitud como completada
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/done [put]
func (h *RequestHandler) MarkDone(c *fiber.Ctx) error {
	if err := h.uc.MarkDone(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "solicitud completada"})
}

// MarkFailed godoc
// @Summary      Marcar solicitud como fallida
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/failed [put]
func (h *RequestHandler) MarkFailed(c *fiber.Ctx) error {
	if err := h.uc.MarkFailed(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "solicitud marcada como fallida"})
}
