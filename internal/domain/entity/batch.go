package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un lote.
const (
	BatchStatusActive  = "ACTIVE"
	BatchStatusRemoved = "REMOVED"
)

// Batch representa un lote de producto almacenado en una celda física del almacén.
//
// Las dos medidas (unidades y kg) son independientes y no se convierten entre sí.
// Un puntero nil significa que la medida nunca se registró para el lote; cero
// significa registrada y agotada. Los acumuladores RemovedUnits/RemovedKg solo
// crecen, y únicamente mediante retiros registrados.
type Batch struct {
	ID            string
	ProductName   string
	BatchCode     string // no es único: varios lotes pueden compartir código
	Location      string // celda física, ej. "A-3-2"
	Comment       string
	QuantityUnits *int64
	QuantityKg    *decimal.Decimal
	RemovedUnits  int64
	RemovedKg     decimal.Decimal
	Status        string // ACTIVE | REMOVED
	IsArchived    bool   // true = terminal, no admite más retiros
	CreatedAt     time.Time
	RemovedAt     *time.Time // se fija una sola vez, al pasar a REMOVED
	RemovedBy     *string    // UserID del actor que completó el retiro
}

// HasStock indica si alguna medida tiene existencias positivas.
func (b *Batch) HasStock() bool {
	if b.QuantityUnits != nil && *b.QuantityUnits > 0 {
		return true
	}
	if b.QuantityKg != nil && b.QuantityKg.IsPositive() {
		return true
	}
	return false
}

// Depleted indica si ambas medidas están agotadas o nunca registradas.
func (b *Batch) Depleted() bool {
	unitsOut := b.QuantityUnits == nil || *b.QuantityUnits <= 0
	kgOut := b.QuantityKg == nil || !b.QuantityKg.IsPositive()
	return unitsOut && kgOut
}
