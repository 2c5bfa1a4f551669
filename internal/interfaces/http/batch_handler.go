package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dfmartinez/bodega-api/internal/application/batch"
	"github.com/dfmartinez/bodega-api/internal/application/dto"
)

// BatchHandler ciclo de vida de lotes: alta, retiro parcial, listados y búsqueda.
type BatchHandler struct {
	uc *batch.LifecycleUseCase
}

// NewBatchHandler construye el handler de lotes.
func NewBatchHandler(uc *batch.LifecycleUseCase) *BatchHandler {
	return &BatchHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar lote
// @Description  Crea el lote y registra su movimiento IN en la misma transacción.
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBatchRequest  true  "product_name, batch_code, location, cantidades"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/batches [post]
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	b, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToBatchResponse(b))
}

// Withdraw godoc
// @Summary      Retirar cantidad de un lote
// @Description  Resta cada medida de forma independiente y registra un movimiento
//
//	OUT. Si ambas medidas quedan en cero el lote pasa a REMOVED y se archiva.
//
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del lote"
// @Param        body  body  dto.WithdrawRequest  true  "quantity_units y/o quantity_kg"
// @Success      200   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/withdraw [put]
func (h *BatchHandler) Withdraw(c *fiber.Ctx) error {
	var in dto.WithdrawRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	b, err := h.uc.Withdraw(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToBatchResponse(b))
}

// List godoc
// @Summary      Lotes con existencias
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BatchResponse
// @Router       /api/batches [get]
func (h *BatchHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Search godoc
// @Summary      Buscar lotes activos
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        q      query  string  true   "Texto a buscar en producto, código o celda"
// @Param        page   query  int     false  "Página (si se envía, la respuesta es paginada)"
// @Success      200    {object}  dto.BatchPageResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/batches/search [get]
func (h *BatchHandler) Search(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "q es requerido"})
	}
	if pageStr := c.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "page debe ser un entero positivo"})
		}
		resp, err := h.uc.SearchPaged(c.Context(), q, page, 0)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(resp)
	}
	list, err := h.uc.Search(c.Context(), q, 50)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.BatchPageResponse{Results: list, Total: len(list)})
}

// GetByCode godoc
// @Summary      Lotes activos por código
// @Description  Agrupa los lotes ACTIVE que comparten el código y suma sus existencias.
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código de lote"
// @Success      200   {object}  dto.BatchByCodeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/batches/by-code/{code} [get]
func (h *BatchHandler) GetByCode(c *fiber.Ctx) error {
	resp, err := h.uc.GetByCode(c.Context(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
