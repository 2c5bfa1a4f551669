package archive

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dfmartinez/bodega-api/internal/application/dto"
	"github.com/dfmartinez/bodega-api/internal/domain"
	"github.com/dfmartinez/bodega-api/internal/domain/entity"
	"github.com/dfmartinez/bodega-api/internal/domain/repository"
)

// ArchiveUseCase reconstruye totales históricos de entrada/salida a partir de la
// bitácora de movimientos. Es una proyección de solo lectura: nunca muta lotes
// ni movimientos.
type ArchiveUseCase struct {
	movRepo repository.MovementRepository
}

// NewArchiveUseCase construye el caso de uso.
func NewArchiveUseCase(movRepo repository.MovementRepository) *ArchiveUseCase {
	return &ArchiveUseCase{movRepo: movRepo}
}

// Aggregate agrupa los movimientos de la ventana por (batch_code, product_name)
// — por código y no por ID de lote: lotes físicos distintos que comparten código
// se suman en el mismo grupo — y suma unidades y kg de forma independiente.
func (uc *ArchiveUseCase) Aggregate(ctx context.Context, f Filter) (*dto.ArchiveResponse, error) {
	w, err := ResolveWindow(f, time.Now())
	if err != nil {
		return nil, err
	}
	incoming, err := uc.aggregateType(entity.MovementTypeIN, w, f.Search)
	if err != nil {
		return nil, err
	}
	outgoing, err := uc.aggregateType(entity.MovementTypeOUT, w, f.Search)
	if err != nil {
		return nil, err
	}
	return &dto.ArchiveResponse{Incoming: incoming, Outgoing: outgoing}, nil
}

func (uc *ArchiveUseCase) aggregateType(movementType string, w Window, search string) ([]dto.ArchiveGroup, error) {
	rows, err := uc.movRepo.ListWithBatchByType(movementType, w.From, w.To)
	if err != nil {
		return nil, err
	}
	search = strings.ToLower(strings.TrimSpace(search))

	type key struct{ code, name string }
	groups := make(map[key]*dto.ArchiveGroup)
	order := make([]key, 0)
	for _, r := range rows {
		if r.BatchCode == nil || r.ProductName == nil {
			continue // lote inexistente: se omite
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(*r.BatchCode), search) &&
			!strings.Contains(strings.ToLower(*r.ProductName), search) {
			continue
		}
		k := key{code: *r.BatchCode, name: *r.ProductName}
		g, ok := groups[k]
		if !ok {
			g = &dto.ArchiveGroup{ProductName: k.name, BatchCode: k.code, QuantityKg: decimal.Zero}
			groups[k] = g
			order = append(order, k)
		}
		g.QuantityUnits += r.Movement.QuantityUnits
		g.QuantityKg = g.QuantityKg.Add(r.Movement.QuantityKg)
	}

	out := make([]dto.ArchiveGroup, 0, len(order))
	for _, k := range order {
		out = append(out, *groups[k])
	}
	return out, nil
}

// Report resume entradas y salidas en un rango [start, end] (ambos obligatorios,
// end inclusivo): cantidad de lotes distintos y sumas de unidades/kg por dirección.
func (uc *ArchiveUseCase) Report(ctx context.Context, startStr, endStr string) (*dto.ReportResponse, error) {
	if startStr == "" || endStr == "" {
		return nil, domain.NewValidation("", "start y end son obligatorios (YYYY-MM-DD)")
	}
	w, err := ResolveWindow(Filter{StartDate: startStr, EndDate: endStr}, time.Now())
	if err != nil {
		return nil, err
	}

	incoming, err := uc.reportTotals(entity.MovementTypeIN, w)
	if err != nil {
		return nil, err
	}
	outgoing, err := uc.reportTotals(entity.MovementTypeOUT, w)
	if err != nil {
		return nil, err
	}
	return &dto.ReportResponse{Incoming: incoming, Outgoing: outgoing}, nil
}

func (uc *ArchiveUseCase) reportTotals(movementType string, w Window) (dto.ReportTotals, error) {
	rows, err := uc.movRepo.ListWithBatchByType(movementType, w.From, w.To)
	if err != nil {
		return dto.ReportTotals{}, err
	}
	totals := dto.ReportTotals{Kg: decimal.Zero}
	seen := make(map[string]bool)
	for _, r := range rows {
		if !seen[r.Movement.BatchID] {
			seen[r.Movement.BatchID] = true
			totals.Batches++
		}
		totals.Units += r.Movement.QuantityUnits
		totals.Kg = totals.Kg.Add(r.Movement.QuantityKg)
	}
	return totals, nil
}
