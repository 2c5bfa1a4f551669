package repository

import "github.com/dfmartinez/bodega-api/internal/domain/entity"

// BatchRepository define el puerto de persistencia para lotes (DIP).
// Los Get* devuelven (nil, nil) cuando el lote no existe.
type BatchRepository interface {
	Create(batch *entity.Batch) error
	GetByID(id string) (*entity.Batch, error)
	// GetForUpdate obtiene el lote y bloquea su fila (SELECT FOR UPDATE) para que
	// validación y resta de un retiro sean un read-modify-write atómico.
	GetForUpdate(id string) (*entity.Batch, error)
	Update(batch *entity.Batch) error
	// ListWithStock lista los lotes con alguna medida positiva, más recientes primero.
	// El filtro se aplica al consultar, independiente de IsArchived.
	ListWithStock() ([]*entity.Batch, error)
	// ListAll lista todos los lotes sin filtro (lo usa el reconciliador de arranque).
	ListAll() ([]*entity.Batch, error)
	// Search busca lotes ACTIVE por nombre de producto, código o celda (substring).
	Search(q string, limit int) ([]*entity.Batch, error)
	// SearchPaged como Search pero paginado; devuelve además el total de coincidencias.
	SearchPaged(q string, limit, offset int) ([]*entity.Batch, int, error)
	// ListActiveByCode lista los lotes ACTIVE que comparten un código, más recientes primero.
	ListActiveByCode(code string) ([]*entity.Batch, error)
	// OccupiedLocations devuelve las celdas con algún lote con existencias positivas.
	OccupiedLocations() (map[string]bool, error)
	// LatestLocationByCode devuelve la celda del lote más reciente por cada código.
	LatestLocationByCode(codes []string) (map[string]string, error)
	CountByStatus(status string) (int, error)
	CountRemovedBy(userID string) (int, error)
}
