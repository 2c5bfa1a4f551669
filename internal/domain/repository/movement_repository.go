package repository

import (
	"time"

	"github.com/dfmartinez/bodega-api/internal/domain/entity"
)

// MovementWithBatch es un movimiento junto con los datos del lote necesarios para
// agrupar en reportes. BatchCode/ProductName son nil si el lote ya no existe
// (no debería ocurrir, los lotes nunca se borran; el agregador lo omite).
type MovementWithBatch struct {
	Movement    entity.Movement
	BatchCode   *string
	ProductName *string
}

// MovementRepository define el puerto de persistencia para la bitácora de
// movimientos. Solo inserta y lee: la bitácora es append-only.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	// ListWithBatchByType lista los movimientos de un tipo cuyo created_at cae en
	// el intervalo semiabierto [from, to); un extremo nil no acota por ese lado.
	ListWithBatchByType(movementType string, from, to *time.Time) ([]*MovementWithBatch, error)
	// BatchIDsWithType devuelve los IDs de lote que ya tienen algún movimiento del
	// tipo dado (existencia, no comparación de montos).
	BatchIDsWithType(movementType string) (map[string]bool, error)
}
