package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dfmartinez/bodega-api/internal/domain/entity"
	"github.com/dfmartinez/bodega-api/internal/domain/repository"
)

var _ repository.StockRequestRepository = (*StockRequestRepo)(nil)

const requestColumns = `id, product_name, batch_code, quantity_units, quantity_kg, comment,
		status, created_at, seen_at, created_by`

// StockRequestRepo adaptador PostgreSQL de solicitudes al almacén.
type StockRequestRepo struct {
	q Querier
}

func NewStockRequestRepository(q Querier) *StockRequestRepo {
	return &StockRequestRepo{q: q}
}

func scanRequest(row pgxScanner) (*entity.StockRequest, error) {
	var req entity.StockRequest
	err := row.Scan(
		&req.ID, &req.ProductName, &req.BatchCode, &req.QuantityUnits, &req.QuantityKg,
		&req.Comment, &req.Status, &req.CreatedAt, &req.SeenAt, &req.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *StockRequestRepo) Create(req *entity.StockRequest) error {
	query := `
		INSERT INTO stock_requests (id, product_name, batch_code, quantity_units, quantity_kg, comment,
			status, created_at, seen_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.ProductName, req.BatchCode, req.QuantityUnits, req.QuantityKg,
		req.Comment, req.Status, req.CreatedAt, req.SeenAt, req.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create stock request: %w", err)
	}
	return nil
}

func (r *StockRequestRepo) GetByID(id string) (*entity.StockRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM stock_requests WHERE id = $1`
	req, err := scanRequest(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock request: %w", err)
	}
	return req, nil
}

func (r *StockRequestRepo) List(statuses []string) ([]*entity.StockRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM stock_requests`
	var args []any
	if len(statuses) > 0 {
		args = append(args, statuses)
		query += " WHERE status = ANY($1)"
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock requests: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock request: %w", err)
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

func (r *StockRequestRepo) UpdateStatus(id, status string, seenAt time.Time) error {
	query := `UPDATE stock_requests SET status = $2, seen_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status, seenAt)
	if err != nil {
		return fmt.Errorf("update stock request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stock request: fila no encontrada")
	}
	return nil
}
