// Package pdf genera el reporte imprimible del archivo de movimientos.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────┐
//	│  HEADER: Título + ventana de fechas          │
//	│  ─────────────────────────────────────────  │
//	│  ENTRADAS: Producto | Código | Unid | Kg     │
//	│  TOTAL entradas                              │
//	│  ─────────────────────────────────────────  │
//	│  SALIDAS:  Producto | Código | Unid | Kg     │
//	│  TOTAL salidas                               │
//	└─────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/dfmartinez/bodega-api/internal/application/dto"
)

var (
	colorIncoming = &props.Color{Red: 45, Green: 190, Blue: 96}  // verde entradas
	colorOutgoing = &props.Color{Red: 224, Green: 74, Blue: 106} // rojo salidas
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ArchivePDFGenerator genera el reporte del archivo usando Maroto v2.
type ArchivePDFGenerator struct{}

func NewArchivePDFGenerator() *ArchivePDFGenerator { return &ArchivePDFGenerator{} }

// Generate genera el PDF y devuelve sus bytes. windowLabel describe el filtro
// aplicado ("2024-03", "todo el periodo", etc.) y solo se imprime en el header.
func (g *ArchivePDFGenerator) Generate(archive *dto.ArchiveResponse, windowLabel string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Archivo de movimientos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(windowLabel))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.5}))

	m.AddRows(sectionTitleRow("ENTRADAS", colorIncoming))
	m.AddRows(tableHeaderRow(colorIncoming))
	for _, r := range groupRows(archive.Incoming) {
		m.AddRows(r)
	}
	m.AddRows(totalsRow(archive.Incoming, colorIncoming))

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitleRow("SALIDAS", colorOutgoing))
	m.AddRows(tableHeaderRow(colorOutgoing))
	for _, r := range groupRows(archive.Outgoing) {
		m.AddRows(r)
	}
	m.AddRows(totalsRow(archive.Outgoing, colorOutgoing))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(windowLabel string) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("ARCHIVO DE MOVIMIENTOS", props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Periodo: "+windowLabel, props.Text{
				Size: 9, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func sectionTitleRow(title string, color *props.Color) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 10, Color: color, Top: 2,
		}),
	))
}

func tableHeaderRow(color *props.Color) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: color, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Producto", 5, align.Left),
		h("Código", 3, align.Left),
		h("Unidades", 2, align.Right),
		h("Kg", 2, align.Right),
	)
}

func groupRows(groups []dto.ArchiveGroup) []core.Row {
	if len(groups) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("Sin movimientos en el periodo", props.Text{
				Size: 8, Color: colorGray, Top: 1,
			}),
		))}
	}
	result := make([]core.Row, 0, len(groups))
	for _, g := range groups {
		result = append(result, row.New(6).Add(
			col.New(5).Add(text.New(g.ProductName, props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(g.BatchCode, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", g.QuantityUnits),
				props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(g.QuantityKg.StringFixed(3),
				props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return result
}

func totalsRow(groups []dto.ArchiveGroup, color *props.Color) core.Row {
	var units int64
	kg := decimal.Zero
	for _, g := range groups {
		units += g.QuantityUnits
		kg = kg.Add(g.QuantityKg)
	}
	return row.New(7).Add(
		col.New(8).Add(text.New("TOTAL", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: color, Top: 1,
		})),
		col.New(2).Add(text.New(fmt.Sprintf("%d", units), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: color, Top: 1,
		})),
		col.New(2).Add(text.New(kg.StringFixed(3), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: color, Top: 1,
		})),
	)
}
