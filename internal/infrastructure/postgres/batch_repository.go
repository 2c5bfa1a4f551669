package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dfmartinez/bodega-api/internal/domain/entity"
	"github.com/dfmartinez/bodega-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

const batchColumns = `id, product_name, batch_code, location, comment, quantity_units, quantity_kg,
		removed_units, removed_kg, status, is_archived, created_at, removed_at, removed_by`

// BatchRepo implementación del puerto BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

type pgxScanner interface {
	Scan(dest ...any) error
}

func scanBatch(row pgxScanner) (*entity.Batch, error) {
	var b entity.Batch
	err := row.Scan(
		&b.ID, &b.ProductName, &b.BatchCode, &b.Location, &b.Comment,
		&b.QuantityUnits, &b.QuantityKg, &b.RemovedUnits, &b.RemovedKg,
		&b.Status, &b.IsArchived, &b.CreatedAt, &b.RemovedAt, &b.RemovedBy,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BatchRepo) scanBatches(rows pgx.Rows) ([]*entity.Batch, error) {
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// Create persiste un lote nuevo.
func (r *BatchRepo) Create(b *entity.Batch) error {
	query := `
		INSERT INTO batches (id, product_name, batch_code, location, comment, quantity_units, quantity_kg,
			removed_units, removed_kg, status, is_archived, created_at, removed_at, removed_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.ProductName, b.BatchCode, b.Location, b.Comment,
		b.QuantityUnits, b.QuantityKg, b.RemovedUnits, b.RemovedKg,
		b.Status, b.IsArchived, b.CreatedAt, b.RemovedAt, b.RemovedBy,
	)
	if err != nil {
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID; (nil, nil) si no existe.
func (r *BatchRepo) GetByID(id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1`
	b, err := scanBatch(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

// GetForUpdate obtiene el lote y bloquea la fila (SELECT FOR UPDATE) para que
// dos retiros concurrentes sobre el mismo lote se serialicen.
func (r *BatchRepo) GetForUpdate(id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1 FOR UPDATE`
	b, err := scanBatch(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch for update: %w", err)
	}
	return b, nil
}

// Update persiste el estado mutable del lote (cantidades, ciclo de vida).
func (r *BatchRepo) Update(b *entity.Batch) error {
	query := `
		UPDATE batches SET
			quantity_units = $2, quantity_kg = $3, removed_units = $4, removed_kg = $5,
			status = $6, is_archived = $7, removed_at = $8, removed_by = $9, comment = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		b.ID, b.QuantityUnits, b.QuantityKg, b.RemovedUnits, b.RemovedKg,
		b.Status, b.IsArchived, b.RemovedAt, b.RemovedBy, b.Comment,
	)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update batch: fila no encontrada")
	}
	return nil
}

// ListWithStock lista los lotes con alguna medida positiva, más recientes primero.
func (r *BatchRepo) ListWithStock() ([]*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + ` FROM batches
		WHERE (quantity_units IS NOT NULL AND quantity_units > 0)
		   OR (quantity_kg IS NOT NULL AND quantity_kg > 0)
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	return r.scanBatches(rows)
}

// ListAll lista todos los lotes sin filtro.
func (r *BatchRepo) ListAll() ([]*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list all batches: %w", err)
	}
	return r.scanBatches(rows)
}

// Search busca lotes ACTIVE por producto, código o celda (ILIKE substring).
func (r *BatchRepo) Search(q string, limit int) ([]*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + ` FROM batches
		WHERE status = $1 AND (product_name ILIKE $2 OR batch_code ILIKE $2 OR location ILIKE $2)
		ORDER BY created_at DESC LIMIT $3`
	rows, err := r.q.Query(context.Background(), query, entity.BatchStatusActive, "%"+q+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search batches: %w", err)
	}
	return r.scanBatches(rows)
}

// SearchPaged como Search pero paginado, con total de coincidencias.
func (r *BatchRepo) SearchPaged(q string, limit, offset int) ([]*entity.Batch, int, error) {
	pattern := "%" + q + "%"
	countQuery := `
		SELECT count(*) FROM batches
		WHERE status = $1 AND (product_name ILIKE $2 OR batch_code ILIKE $2 OR location ILIKE $2)`
	var total int
	if err := r.q.QueryRow(context.Background(), countQuery, entity.BatchStatusActive, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count search batches: %w", err)
	}
	query := `
		SELECT ` + batchColumns + ` FROM batches
		WHERE status = $1 AND (product_name ILIKE $2 OR batch_code ILIKE $2 OR location ILIKE $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, entity.BatchStatusActive, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("search batches paged: %w", err)
	}
	list, err := r.scanBatches(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListActiveByCode lista los lotes ACTIVE que comparten un código, más recientes primero.
func (r *BatchRepo) ListActiveByCode(code string) ([]*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + ` FROM batches
		WHERE status = $1 AND batch_code = $2
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, entity.BatchStatusActive, code)
	if err != nil {
		return nil, fmt.Errorf("list batches by code: %w", err)
	}
	return r.scanBatches(rows)
}

// OccupiedLocations devuelve las celdas con algún lote con existencias positivas.
func (r *BatchRepo) OccupiedLocations() (map[string]bool, error) {
	query := `
		SELECT DISTINCT location FROM batches
		WHERE (quantity_units IS NOT NULL AND quantity_units > 0)
		   OR (quantity_kg IS NOT NULL AND quantity_kg > 0)`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("occupied locations: %w", err)
	}
	defer rows.Close()
	occupied := make(map[string]bool)
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		occupied[loc] = true
	}
	return occupied, rows.Err()
}

// LatestLocationByCode devuelve la celda del lote más reciente por cada código.
func (r *BatchRepo) LatestLocationByCode(codes []string) (map[string]string, error) {
	query := `
		SELECT DISTINCT ON (batch_code) batch_code, location
		FROM batches WHERE batch_code = ANY($1)
		ORDER BY batch_code, created_at DESC`
	rows, err := r.q.Query(context.Background(), query, codes)
	if err != nil {
		return nil, fmt.Errorf("latest location by code: %w", err)
	}
	defer rows.Close()
	locations := make(map[string]string)
	for rows.Next() {
		var code, loc string
		if err := rows.Scan(&code, &loc); err != nil {
			return nil, fmt.Errorf("scan code location: %w", err)
		}
		locations[code] = loc
	}
	return locations, rows.Err()
}

// CountByStatus cuenta lotes por estado.
func (r *BatchRepo) CountByStatus(status string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM batches WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count by status: %w", err)
	}
	return n, nil
}

// CountRemovedBy cuenta lotes retirados por un usuario.
func (r *BatchRepo) CountRemovedBy(userID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM batches WHERE status = $1 AND removed_by = $2`,
		entity.BatchStatusRemoved, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count removed by: %w", err)
	}
	return n, nil
}
