package grid

import (
	"context"
	"fmt"

	"github.com/dfmartinez/bodega-api/internal/domain/repository"
)

// Estados de una celda en la matriz.
const (
	CellBusy = "busy"
	CellFree = "free"
)

// Config dimensiones físicas del almacén: sectores, filas y celdas por fila.
type Config struct {
	Sectors []string
	Rows    int
	Cells   int
}

// GridUseCase proyección de ocupación de celdas: una celda está ocupada si algún
// lote en esa ubicación tiene existencias positivas. Solo lectura, no forma
// parte del ciclo de vida de los lotes.
type GridUseCase struct {
	batchRepo repository.BatchRepository
	cfg       Config
}

// NewGridUseCase construye el caso de uso.
func NewGridUseCase(batchRepo repository.BatchRepository, cfg Config) *GridUseCase {
	return &GridUseCase{batchRepo: batchRepo, cfg: cfg}
}

// Matrix devuelve por sector una matriz filas×celdas con "busy" o "free".
// Las celdas se nombran "<sector>-<fila>-<celda>" con índices desde 1.
func (uc *GridUseCase) Matrix(ctx context.Context) (map[string][][]string, error) {
	occupied, err := uc.batchRepo.OccupiedLocations()
	if err != nil {
		return nil, err
	}
	matrix := make(map[string][][]string, len(uc.cfg.Sectors))
	for _, sector := range uc.cfg.Sectors {
		rows := make([][]string, 0, uc.cfg.Rows)
		for row := 1; row <= uc.cfg.Rows; row++ {
			cells := make([]string, 0, uc.cfg.Cells)
			for cell := 1; cell <= uc.cfg.Cells; cell++ {
				loc := fmt.Sprintf("%s-%d-%d", sector, row, cell)
				if occupied[loc] {
					cells = append(cells, CellBusy)
				} else {
					cells = append(cells, CellFree)
				}
			}
			rows = append(rows, cells)
		}
		matrix[sector] = rows
	}
	return matrix, nil
}
