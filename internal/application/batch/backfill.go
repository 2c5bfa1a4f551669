package batch

import (
	"context"

	"github.com/google/uuid"

	"github.com/dfmartinez/bodega-api/internal/domain/entity"
	"github.com/dfmartinez/bodega-api/internal/domain/repository"
)

// BackfillUseCase sintetiza movimientos faltantes para lotes anteriores a la
// bitácora. Es idempotente: decide por existencia de movimientos IN/OUT del
// lote, nunca por montos, así que una segunda pasada no encuentra nada que hacer.
// Debe terminar antes de aceptar tráfico de altas/retiros (se ejecuta en el
// arranque, dentro de una sola transacción).
type BackfillUseCase struct {
	txRunner TxRunner
}

// NewBackfillUseCase construye el reconciliador.
func NewBackfillUseCase(txRunner TxRunner) *BackfillUseCase {
	return &BackfillUseCase{txRunner: txRunner}
}

// Run recorre todos los lotes y devuelve cuántos movimientos sintetizó.
func (uc *BackfillUseCase) Run(ctx context.Context) (int, error) {
	created := 0
	err := uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository, movRepo repository.MovementRepository) error {
		withIN, err := movRepo.BatchIDsWithType(entity.MovementTypeIN)
		if err != nil {
			return err
		}
		withOUT, err := movRepo.BatchIDsWithType(entity.MovementTypeOUT)
		if err != nil {
			return err
		}
		batches, err := batchRepo.ListAll()
		if err != nil {
			return err
		}

		for _, b := range batches {
			if !withIN[b.ID] {
				// Reconstruir la entrada original: restante + acumulado retirado
				units := b.RemovedUnits
				if b.QuantityUnits != nil {
					units += *b.QuantityUnits
				}
				kg := b.RemovedKg
				if b.QuantityKg != nil {
					kg = kg.Add(*b.QuantityKg)
				}
				if units > 0 || kg.IsPositive() {
					mov := &entity.Movement{
						ID:            uuid.New().String(),
						BatchID:       b.ID,
						Type:          entity.MovementTypeIN,
						QuantityUnits: units,
						QuantityKg:    kg,
						CreatedAt:     b.CreatedAt,
					}
					if err := movRepo.Create(mov); err != nil {
						return err
					}
					created++
				}
			}
			if b.RemovedAt != nil && !withOUT[b.ID] {
				if b.RemovedUnits > 0 || b.RemovedKg.IsPositive() {
					mov := &entity.Movement{
						ID:            uuid.New().String(),
						BatchID:       b.ID,
						Type:          entity.MovementTypeOUT,
						QuantityUnits: b.RemovedUnits,
						QuantityKg:    b.RemovedKg,
						CreatedAt:     *b.RemovedAt,
					}
					if err := movRepo.Create(mov); err != nil {
						return err
					}
					created++
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
