package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una solicitud al almacén.
const (
	RequestStatusNew    = "NEW"
	RequestStatusSeen   = "SEEN"
	RequestStatusDone   = "DONE"
	RequestStatusFailed = "FAILED"
)

// StockRequest es una petición de mercancía hecha al almacén (no muta lotes).
type StockRequest struct {
	ID            string
	ProductName   string
	BatchCode     string // opcional; vacío si el solicitante no conoce el código
	QuantityUnits int64
	QuantityKg    decimal.Decimal
	Comment       string
	Status        string // NEW | SEEN | DONE | FAILED
	CreatedAt     time.Time
	SeenAt        *time.Time // última transición de estado
	CreatedBy     string     // UserID
}
