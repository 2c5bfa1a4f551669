package batch

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dfmartinez/bodega-api/internal/application/dto"
	"github.com/dfmartinez/bodega-api/internal/domain"
	"github.com/dfmartinez/bodega-api/internal/domain/entity"
	"github.com/dfmartinez/bodega-api/internal/domain/repository"
)

// LifecycleUseCase implementa el ciclo de vida de lotes: alta con su movimiento
// IN, retiro parcial o total con su movimiento OUT, y las consultas de lectura.
// Toda mutación corre en una transacción (TxRunner) con bloqueo de fila, de modo
// que dos retiros concurrentes sobre el mismo lote se serializan.
type LifecycleUseCase struct {
	txRunner  TxRunner
	batchRepo repository.BatchRepository
}

// NewLifecycleUseCase construye el caso de uso. batchRepo se usa solo para
// lecturas fuera de transacción.
func NewLifecycleUseCase(txRunner TxRunner, batchRepo repository.BatchRepository) *LifecycleUseCase {
	return &LifecycleUseCase{txRunner: txRunner, batchRepo: batchRepo}
}

// Create valida y persiste un lote nuevo junto con su movimiento IN inicial,
// ambos en la misma transacción y con el mismo timestamp. Un alta sin su entrada
// en la bitácora rompería la contabilidad del archivo.
func (uc *LifecycleUseCase) Create(ctx context.Context, actorID string, in dto.CreateBatchRequest) (*entity.Batch, error) {
	name := strings.TrimSpace(in.ProductName)
	code := strings.TrimSpace(in.BatchCode)
	location := strings.TrimSpace(in.Location)

	if name == "" {
		return nil, domain.NewValidation("product_name", "el nombre del producto es obligatorio")
	}
	if code == "" {
		return nil, domain.NewValidation("batch_code", "el código de lote es obligatorio")
	}
	if location == "" {
		return nil, domain.NewValidation("location", "la celda es obligatoria")
	}
	if in.QuantityUnits != nil && *in.QuantityUnits < 0 {
		return nil, domain.NewValidation("quantity_units", "la cantidad en unidades no puede ser negativa")
	}
	if in.QuantityKg != nil && in.QuantityKg.IsNegative() {
		return nil, domain.NewValidation("quantity_kg", "la cantidad en kg no puede ser negativa")
	}
	unitsEmpty := in.QuantityUnits == nil || *in.QuantityUnits == 0
	kgEmpty := in.QuantityKg == nil || in.QuantityKg.IsZero()
	if unitsEmpty && kgEmpty {
		return nil, domain.NewValidation("", "debe indicar al menos una cantidad positiva (unidades o kg)")
	}

	now := time.Now()
	b := &entity.Batch{
		ID:            uuid.New().String(),
		ProductName:   name,
		BatchCode:     code,
		Location:      location,
		Comment:       strings.TrimSpace(in.Comment),
		QuantityUnits: in.QuantityUnits,
		QuantityKg:    in.QuantityKg,
		RemovedUnits:  0,
		RemovedKg:     decimal.Zero,
		Status:        entity.BatchStatusActive,
		IsArchived:    false,
		CreatedAt:     now,
	}

	err := uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository, movRepo repository.MovementRepository) error {
		if err := batchRepo.Create(b); err != nil {
			return err
		}
		mov := &entity.Movement{
			ID:            uuid.New().String(),
			BatchID:       b.ID,
			Type:          entity.MovementTypeIN,
			QuantityUnits: unitsOrZero(in.QuantityUnits),
			QuantityKg:    kgOrZero(in.QuantityKg),
			CreatedAt:     now,
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Withdraw retira cantidades de un lote, por medida de forma independiente.
// Si tras la resta ambas medidas quedan agotadas (o nunca registradas) el lote
// pasa a REMOVED y se archiva. Siempre agrega exactamente un movimiento OUT con
// las cantidades solicitadas en esta llamada, incluso en el retiro final.
func (uc *LifecycleUseCase) Withdraw(ctx context.Context, actorID, batchID string, in dto.WithdrawRequest) (*entity.Batch, error) {
	if in.QuantityUnits == nil && in.QuantityKg == nil {
		return nil, domain.NewValidation("", "debe indicar la cantidad a retirar")
	}

	var updated *entity.Batch
	err := uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository, movRepo repository.MovementRepository) error {
		b, err := batchRepo.GetForUpdate(batchID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if b.IsArchived {
			return domain.ErrBatchArchived
		}

		// Validación por medida: una medida nil en el lote solo exige >= 0
		if in.QuantityUnits != nil {
			q := *in.QuantityUnits
			if q < 0 {
				return domain.NewValidation("quantity_units", "la cantidad en unidades no puede ser negativa")
			}
			if b.QuantityUnits != nil && q > *b.QuantityUnits {
				return domain.NewValidation("quantity_units", "la cantidad en unidades debe estar entre 0 y %d", *b.QuantityUnits)
			}
		}
		if in.QuantityKg != nil {
			q := *in.QuantityKg
			if q.IsNegative() {
				return domain.NewValidation("quantity_kg", "la cantidad en kg no puede ser negativa")
			}
			if b.QuantityKg != nil && q.GreaterThan(*b.QuantityKg) {
				return domain.NewValidation("quantity_kg", "la cantidad en kg debe estar entre 0 y %s", b.QuantityKg.String())
			}
		}

		// Resta por medida y acumulación de lo retirado
		if in.QuantityUnits != nil {
			if b.QuantityUnits != nil {
				remaining := *b.QuantityUnits - *in.QuantityUnits
				b.QuantityUnits = &remaining
			}
			b.RemovedUnits += *in.QuantityUnits
		}
		if in.QuantityKg != nil {
			if b.QuantityKg != nil {
				remaining := b.QuantityKg.Sub(*in.QuantityKg)
				b.QuantityKg = &remaining
			}
			b.RemovedKg = b.RemovedKg.Add(*in.QuantityKg)
		}

		now := time.Now()
		if b.Depleted() {
			// Retiro total: REMOVED y archivado se fijan juntos, y las medidas
			// quedan exactamente en cero (también las nunca registradas).
			zeroUnits := int64(0)
			zeroKg := decimal.Zero
			b.QuantityUnits = &zeroUnits
			b.QuantityKg = &zeroKg
			b.Status = entity.BatchStatusRemoved
			b.RemovedAt = &now
			actor := actorID
			b.RemovedBy = &actor
			b.IsArchived = true
		}

		if err := batchRepo.Update(b); err != nil {
			return err
		}
		mov := &entity.Movement{
			ID:            uuid.New().String(),
			BatchID:       b.ID,
			Type:          entity.MovementTypeOUT,
			QuantityUnits: unitsOrZero(in.QuantityUnits),
			QuantityKg:    kgOrZero(in.QuantityKg),
			CreatedAt:     now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// List devuelve los lotes con existencias; un lote con ambas medidas en cero se
// oculta aunque su status no haya cambiado todavía.
func (uc *LifecycleUseCase) List(ctx context.Context) ([]dto.BatchResponse, error) {
	batches, err := uc.batchRepo.ListWithStock()
	if err != nil {
		return nil, err
	}
	return toResponses(batches), nil
}

// Search busca lotes ACTIVE por producto, código o celda.
func (uc *LifecycleUseCase) Search(ctx context.Context, q string, limit int) ([]dto.BatchResponse, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []dto.BatchResponse{}, nil
	}
	batches, err := uc.batchRepo.Search(q, limit)
	if err != nil {
		return nil, err
	}
	return toResponses(batches), nil
}

// SearchPaged como Search pero con paginación y total.
func (uc *LifecycleUseCase) SearchPaged(ctx context.Context, q string, page, pageSize int) (*dto.BatchPageResponse, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return &dto.BatchPageResponse{Results: []dto.BatchResponse{}, Total: 0}, nil
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 7
	}
	batches, total, err := uc.batchRepo.SearchPaged(q, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return &dto.BatchPageResponse{Results: toResponses(batches), Total: total}, nil
}

// GetByCode agrupa los lotes ACTIVE que comparten un código, con totales por medida.
func (uc *LifecycleUseCase) GetByCode(ctx context.Context, code string) (*dto.BatchByCodeResponse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.NewValidation("code", "el código de lote es obligatorio")
	}
	batches, err := uc.batchRepo.ListActiveByCode(code)
	if err != nil {
		return nil, err
	}
	if len(batches) == 0 {
		return nil, domain.ErrNotFound
	}
	resp := &dto.BatchByCodeResponse{
		ProductName: batches[0].ProductName,
		QuantityKg:  decimal.Zero,
		Items:       toResponses(batches),
	}
	for _, b := range batches {
		if b.QuantityUnits != nil {
			resp.QuantityUnits += *b.QuantityUnits
		}
		if b.QuantityKg != nil {
			resp.QuantityKg = resp.QuantityKg.Add(*b.QuantityKg)
		}
	}
	return resp, nil
}

func toResponses(batches []*entity.Batch) []dto.BatchResponse {
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, dto.ToBatchResponse(b))
	}
	return out
}

func unitsOrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func kgOrZero(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}
