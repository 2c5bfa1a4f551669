package batch

import (
	"context"

	"github.com/dfmartinez/bodega-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el estado del lote y su movimiento
// de bitácora se hagan visibles juntos o no se hagan visibles en absoluto.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		movRepo repository.MovementRepository,
	) error) error
}
