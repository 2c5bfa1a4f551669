package repository

import (
	"time"

	"github.com/dfmartinez/bodega-api/internal/domain/entity"
)

// StockRequestRepository define el puerto de persistencia para solicitudes al almacén.
type StockRequestRepository interface {
	Create(req *entity.StockRequest) error
	GetByID(id string) (*entity.StockRequest, error)
	// List lista solicitudes, más recientes primero; statuses vacío = todas.
	List(statuses []string) ([]*entity.StockRequest, error)
	UpdateStatus(id, status string, seenAt time.Time) error
}
