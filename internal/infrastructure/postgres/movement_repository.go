package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dfmartinez/bodega-api/internal/domain/entity"
	"github.com/dfmartinez/bodega-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo adaptador PostgreSQL del libro de movimientos (append-only:
// no hay UPDATE ni DELETE sobre batch_movements).
type MovementRepo struct {
	q Querier
}

func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create registra un movimiento IN u OUT.
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO batch_movements (id, batch_id, movement_type, quantity_units, quantity_kg, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.BatchID, m.Type, m.QuantityUnits, m.QuantityKg, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListWithBatchByType lista los movimientos de un tipo con los datos del lote
// (LEFT JOIN: código y producto quedan en nil si el lote ya no existe),
// opcionalmente acotados a una ventana [from, to).
func (r *MovementRepo) ListWithBatchByType(movementType string, from, to *time.Time) ([]*repository.MovementWithBatch, error) {
	query := `
		SELECT m.id, m.batch_id, m.movement_type, m.quantity_units, m.quantity_kg, m.created_at,
			b.batch_code, b.product_name
		FROM batch_movements m
		LEFT JOIN batches b ON b.id = m.batch_id
		WHERE m.movement_type = $1`
	args := []any{movementType}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND m.created_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND m.created_at < $%d", len(args))
	}
	query += " ORDER BY m.created_at"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*repository.MovementWithBatch
	for rows.Next() {
		var mw repository.MovementWithBatch
		err := rows.Scan(
			&mw.Movement.ID, &mw.Movement.BatchID, &mw.Movement.Type,
			&mw.Movement.QuantityUnits, &mw.Movement.QuantityKg, &mw.Movement.CreatedAt,
			&mw.BatchCode, &mw.ProductName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &mw)
	}
	return list, rows.Err()
}

// BatchIDsWithType devuelve los IDs de lote que ya tienen algún movimiento del tipo dado.
func (r *MovementRepo) BatchIDsWithType(movementType string) (map[string]bool, error) {
	query := `SELECT DISTINCT batch_id FROM batch_movements WHERE movement_type = $1`
	rows, err := r.q.Query(context.Background(), query, movementType)
	if err != nil {
		return nil, fmt.Errorf("batch ids with movement: %w", err)
	}
	defer rows.Close()
	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan batch id: %w", err)
		}
		ids[id] = true
	}
	return ids, rows.Err()
}
