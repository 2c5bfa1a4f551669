package dto

import (
	"time"

	"github.com/dfmartinez/bodega-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateBatchRequest body para POST /api/batches. Las cantidades son opcionales
// pero al menos una debe ser positiva.
type CreateBatchRequest struct {
	ProductName   string           `json:"product_name"`
	BatchCode     string           `json:"batch_code"`
	Location      string           `json:"location"`
	QuantityUnits *int64           `json:"quantity_units,omitempty"`
	QuantityKg    *decimal.Decimal `json:"quantity_kg,omitempty"`
	Comment       string           `json:"comment,omitempty"`
}

// WithdrawRequest body para PUT /api/batches/:id/withdraw. Cada medida es
// independiente; una medida no enviada queda intacta.
type WithdrawRequest struct {
	QuantityUnits *int64           `json:"quantity_units,omitempty"`
	QuantityKg    *decimal.Decimal `json:"quantity_kg,omitempty"`
}

// BatchResponse representación de un lote en respuestas.
type BatchResponse struct {
	ID            string          `json:"id"`
	ProductName   string          `json:"product_name"`
	BatchCode     string          `json:"batch_code"`
	Location      string          `json:"location"`
	Comment       string          `json:"comment,omitempty"`
	QuantityUnits int64           `json:"quantity_units"`
	QuantityKg    decimal.Decimal `json:"quantity_kg"`
	RemovedUnits  int64           `json:"removed_units"`
	RemovedKg     decimal.Decimal `json:"removed_kg"`
	Status        string          `json:"status"`
	IsArchived    bool            `json:"is_archived"`
	CreatedAt     time.Time       `json:"created_at"`
	RemovedAt     *time.Time      `json:"removed_at,omitempty"`
	RemovedBy     *string         `json:"removed_by,omitempty"`
}

// ToBatchResponse mapea la entidad a su representación; las medidas nil salen como 0.
func ToBatchResponse(b *entity.Batch) BatchResponse {
	resp := BatchResponse{
		ID:           b.ID,
		ProductName:  b.ProductName,
		BatchCode:    b.BatchCode,
		Location:     b.Location,
		Comment:      b.Comment,
		RemovedUnits: b.RemovedUnits,
		RemovedKg:    b.RemovedKg,
		Status:       b.Status,
		IsArchived:   b.IsArchived,
		CreatedAt:    b.CreatedAt,
		RemovedAt:    b.RemovedAt,
		RemovedBy:    b.RemovedBy,
	}
	if b.QuantityUnits != nil {
		resp.QuantityUnits = *b.QuantityUnits
	}
	resp.QuantityKg = decimal.Zero
	if b.QuantityKg != nil {
		resp.QuantityKg = *b.QuantityKg
	}
	return resp
}

// BatchPageResponse resultado paginado de búsqueda de lotes.
type BatchPageResponse struct {
	Results []BatchResponse `json:"results"`
	Total   int             `json:"total"`
}

// BatchByCodeResponse agrupa los lotes ACTIVE que comparten un código, con totales.
type BatchByCodeResponse struct {
	ProductName   string          `json:"product_name"`
	QuantityUnits int64           `json:"quantity_units"`
	QuantityKg    decimal.Decimal `json:"quantity_kg"`
	Items         []BatchResponse `json:"items"`
}
