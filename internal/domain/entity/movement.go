package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de la bitácora.
const (
	MovementTypeIN  = "IN"
	MovementTypeOUT = "OUT"
)

// Movement es un registro inmutable de entrada o salida contra un lote.
// La bitácora es append-only: nunca se actualiza ni se borra un movimiento.
// A diferencia del lote, las cantidades aquí siempre son cero por defecto, no nulas.
type Movement struct {
	ID            string
	BatchID       string
	Type          string // IN | OUT
	QuantityUnits int64
	QuantityKg    decimal.Decimal
	CreatedAt     time.Time // IN: fecha de creación del lote; OUT: fecha del retiro
}
