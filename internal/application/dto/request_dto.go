package dto

import (
	"time"

	"github.com/dfmartinez/bodega-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateStockRequest body para POST /api/requests.
type CreateStockRequest struct {
	ProductName   string           `json:"product_name"`
	BatchCode     string           `json:"batch_code,omitempty"`
	QuantityUnits *int64           `json:"quantity_units,omitempty"`
	QuantityKg    *decimal.Decimal `json:"quantity_kg,omitempty"`
	Comment       string           `json:"comment,omitempty"`
}

// StockRequestResponse representación de una solicitud, con la última celda
// conocida del código de lote si existe.
type StockRequestResponse struct {
	ID            string          `json:"id"`
	ProductName   string          `json:"product_name"`
	BatchCode     string          `json:"batch_code,omitempty"`
	Location      string          `json:"location,omitempty"`
	QuantityUnits int64           `json:"quantity_units"`
	QuantityKg    decimal.Decimal `json:"quantity_kg"`
	Comment       string          `json:"comment,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	SeenAt        *time.Time      `json:"seen_at,omitempty"`
	CreatedBy     string          `json:"created_by"`
}

// ToStockRequestResponse mapea la entidad; location llega del caso de uso.
func ToStockRequestResponse(r *entity.StockRequest, location string) StockRequestResponse {
	return StockRequestResponse{
		ID:            r.ID,
		ProductName:   r.ProductName,
		BatchCode:     r.BatchCode,
		Location:      location,
		QuantityUnits: r.QuantityUnits,
		QuantityKg:    r.QuantityKg,
		Comment:       r.Comment,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
		SeenAt:        r.SeenAt,
		CreatedBy:     r.CreatedBy,
	}
}
