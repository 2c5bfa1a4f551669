package dto

import "github.com/shopspring/decimal"

// ArchiveGroup totales de un grupo (batch_code, product_name) dentro de la ventana.
type ArchiveGroup struct {
	ProductName   string          `json:"product_name"`
	BatchCode     string          `json:"batch_code"`
	QuantityUnits int64           `json:"quantity_units"`
	QuantityKg    decimal.Decimal `json:"quantity_kg"`
}

// ArchiveResponse entradas y salidas agrupadas para la vista de archivo.
type ArchiveResponse struct {
	Incoming []ArchiveGroup `json:"incoming"`
	Outgoing []ArchiveGroup `json:"outgoing"`
}

// ReportTotals totales de una dirección del reporte: lotes distintos y sumas.
type ReportTotals struct {
	Batches int             `json:"batches"`
	Units   int64           `json:"units"`
	Kg      decimal.Decimal `json:"kg"`
}

// ReportResponse resumen de entradas/salidas en un rango de fechas.
type ReportResponse struct {
	Incoming ReportTotals `json:"incoming"`
	Outgoing ReportTotals `json:"outgoing"`
}
