// Package excel exporta el archivo de movimientos a una hoja XLSX con las
// tablas de entradas y salidas lado a lado, como la planilla que el personal
// del almacén imprime.
package excel

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/dfmartinez/bodega-api/internal/application/dto"
)

const sheetName = "Archivo"

// Colores de la planilla: fondos suaves para cabeceras y acentos para totales.
const (
	fillIncoming  = "DFF5E1"
	fillOutgoing  = "FADDE2"
	colorIncoming = "2DBE60"
	colorOutgoing = "E04A6A"
)

// ArchiveExporter genera el XLSX del archivo.
type ArchiveExporter struct{}

func NewArchiveExporter() *ArchiveExporter { return &ArchiveExporter{} }

// Export genera el libro y devuelve sus bytes. Entradas en columnas A-D,
// salidas en F-I, cada tabla con su fila de totales al final.
func (e *ArchiveExporter) Export(archive *dto.ArchiveResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	if err := e.writeTable(f, "A", "Entradas", archive.Incoming, fillIncoming, colorIncoming); err != nil {
		return nil, err
	}
	if err := e.writeTable(f, "F", "Salidas", archive.Outgoing, fillOutgoing, colorOutgoing); err != nil {
		return nil, err
	}

	// Anchos: producto ancho, el resto compacto
	_ = f.SetColWidth(sheetName, "A", "A", 28)
	_ = f.SetColWidth(sheetName, "B", "D", 12)
	_ = f.SetColWidth(sheetName, "E", "E", 3)
	_ = f.SetColWidth(sheetName, "F", "F", 28)
	_ = f.SetColWidth(sheetName, "G", "I", 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

// writeTable escribe una tabla de 4 columnas a partir de la columna startCol.
func (e *ArchiveExporter) writeTable(f *excelize.File, startCol, title string, groups []dto.ArchiveGroup, fill, accent string) error {
	cols := tableColumns(startCol)

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12, Color: accent},
	})
	if err != nil {
		return fmt.Errorf("excel: estilo título: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
	})
	if err != nil {
		return fmt.Errorf("excel: estilo cabecera: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: accent},
	})
	if err != nil {
		return fmt.Errorf("excel: estilo total: %w", err)
	}

	setCell := func(col string, row int, value any, style int) error {
		cell := fmt.Sprintf("%s%d", col, row)
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			return fmt.Errorf("excel: celda %s: %w", cell, err)
		}
		if style != 0 {
			if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
				return fmt.Errorf("excel: estilo celda %s: %w", cell, err)
			}
		}
		return nil
	}

	if err := setCell(cols[0], 1, title, titleStyle); err != nil {
		return err
	}
	headers := []string{"Producto", "Código", "Unidades", "Kg"}
	for i, h := range headers {
		if err := setCell(cols[i], 2, h, headerStyle); err != nil {
			return err
		}
	}

	var totalUnits int64
	totalKg := decimal.Zero
	for i, g := range groups {
		r := 3 + i
		if err := setCell(cols[0], r, g.ProductName, 0); err != nil {
			return err
		}
		if err := setCell(cols[1], r, g.BatchCode, 0); err != nil {
			return err
		}
		if err := setCell(cols[2], r, g.QuantityUnits, 0); err != nil {
			return err
		}
		kg, _ := g.QuantityKg.Float64()
		if err := setCell(cols[3], r, kg, 0); err != nil {
			return err
		}
		totalUnits += g.QuantityUnits
		totalKg = totalKg.Add(g.QuantityKg)
	}

	totalRow := 3 + len(groups)
	if err := setCell(cols[0], totalRow, "TOTAL", totalStyle); err != nil {
		return err
	}
	if err := setCell(cols[2], totalRow, totalUnits, totalStyle); err != nil {
		return err
	}
	kg, _ := totalKg.Float64()
	if err := setCell(cols[3], totalRow, kg, totalStyle); err != nil {
		return err
	}
	return nil
}

// tableColumns devuelve las 4 letras de columna consecutivas desde startCol.
func tableColumns(startCol string) [4]string {
	n, _ := excelize.ColumnNameToNumber(startCol)
	var cols [4]string
	for i := 0; i < 4; i++ {
		name, _ := excelize.ColumnNumberToName(n + i)
		cols[i] = name
	}
	return cols
}
