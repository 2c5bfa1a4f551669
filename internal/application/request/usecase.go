package request

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

// StatusCompleted filtro virtual de listado: solicitudes DONE o FAILED.
const StatusCompleted = "COMPLETED"

// StockRequestUseCase gestiona solicitudes de mercancía al almacén. Las
// solicitudes no tocan lotes ni bitácora; solo cambian de estado.
type StockRequestUseCase struct {
	requestRepo repository.StockRequestRepository
	batchRepo   repository.BatchRepository
}

// NewStockRequestUseCase construye el caso de uso.
func NewStockRequestUseCase(requestRepo repository.StockRequestRepository, batchRepo repository.BatchRepository) *StockRequestUseCase {
	return &StockRequestUseCase{requestRepo: requestRepo, batchRepo: batchRepo}
}

// Create valida y persiste una solicitud nueva en estado NEW.
func (uc *StockRequestUseCase) Create(ctx context.Context, actorID string, in dto.CreateStockRequest) (*entity.StockRequest, error) {
	name := strings.TrimSpace(in.ProductName)
	if name == "" {
		return nil, domain.NewValidation("product_name", "el nombre del producto es obligatorio")
	}
	if in.QuantityUnits != nil && *in.QuantityUnits < 0 {
		return nil, domain.NewValidation("quantity_units", "la cantidad en unidades no puede ser negativa")
	}
	if in.QuantityKg != nil && in.QuantityKg.IsNegative() {
		return nil, domain.NewValidation("quantity_kg", "la cantidad en kg no puede ser negativa")
	}
	units := int64(0)
	if in.QuantityUnits != nil {
		units = *in.QuantityUnits
	}
	kg := decimal.Zero
	if in.QuantityKg != nil {
		kg = *in.QuantityKg
	}
	if units == 0 && kg.IsZero() {
		return nil, domain.NewValidation("", "debe indicar al menos una cantidad (unidades o kg)")
	}

	req := &entity.StockRequest{
		ID:            uuid.New().String(),
		ProductName:   name,
		BatchCode:     strings.TrimSpace(in.BatchCode),
		QuantityUnits: units,
		QuantityKg:    kg,
		Comment:       strings.TrimSpace(in.Comment),
		Status:        entity.RequestStatusNew,
		CreatedAt:     time.Now(),
		CreatedBy:     actorID,
	}
	if err := uc.requestRepo.Create(req); err != nil {
		return nil, err
	}
	return req, nil
}

// List lista solicitudes filtradas por estado ("COMPLETED" agrupa DONE y FAILED),
// resolviendo la última celda conocida de cada código de lote.
func (uc *StockRequestUseCase) List(ctx context.Context, status string) ([]dto.StockRequestResponse, error) {
	var statuses []string
	switch status {
	case "":
		// todas
	case StatusCompleted:
		statuses = []string{entity.RequestStatusDone, entity.RequestStatusFailed}
	default:
		statuses = []string{status}
	}
	requests, err := uc.requestRepo.List(statuses)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(requests))
	for _, r := range requests {
		if r.BatchCode != "" {
			codes = append(codes, r.BatchCode)
		}
	}
	locations := map[string]string{}
	if len(codes) > 0 {
		locations, err = uc.batchRepo.LatestLocationByCode(codes)
		if err != nil {
			return nil, err
		}
	}

	out := make([]dto.StockRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, dto.ToStockRequestResponse(r, locations[r.BatchCode]))
	}
	return out, nil
}

// MarkSeen, MarkDone y MarkFailed transicionan la solicitud y fijan seen_at.
func (uc *StockRequestUseCase) MarkSeen(ctx context.Context, id string) error {
	return uc.transition(id, entity.RequestStatusSeen)
}

func (uc *StockRequestUseCase) MarkDone(ctx context.Context, id string) error {
	return uc.transition(id, entity.RequestStatusDone)
}

func (uc *StockRequestUseCase) MarkFailed(ctx context.Context, id string) error {
	return uc.transition(id, entity.RequestStatusFailed)
}

func (uc *StockRequestUseCase) transition(id, status string) error {
	req, err := uc.requestRepo.GetByID(id)
	if err != nil {
		return err
	}
	if req == nil {
		return domain.ErrNotFound
	}
	return uc.requestRepo.UpdateStatus(id, status, time.Now())
}
