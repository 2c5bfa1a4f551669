package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/dfmartinez/bodega-api/internal/application/archive"
	"github.com/dfmartinez/bodega-api/internal/application/dto"
)

// ArchiveExporter genera la planilla XLSX del archivo.
type ArchiveExporter interface {
	Export(archive *dto.ArchiveResponse) ([]byte, error)
}

// ArchivePDFGenerator genera el reporte PDF del archivo.
type ArchivePDFGenerator interface {
	Generate(archive *dto.ArchiveResponse, windowLabel string) ([]byte, error)
}

// ArchiveHandler vistas históricas sobre la bitácora de movimientos.
type ArchiveHandler struct {
	uc    *archive.ArchiveUseCase
	excel ArchiveExporter
	pdf   ArchivePDFGenerator
}

// NewArchiveHandler construye el handler del archivo.
func NewArchiveHandler(uc *archive.ArchiveUseCase, excel ArchiveExporter, pdf ArchivePDFGenerator) *ArchiveHandler {
	return &ArchiveHandler{uc: uc, excel: excel, pdf: pdf}
}

// filterFromQuery arma el filtro de ventana desde los query params.
func filterFromQuery(c *fiber.Ctx) archive.Filter {
	return archive.Filter{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Day:       c.Query("day"),
		Year:      c.QueryInt("year"),
		Month:     c.QueryInt("month"),
		Search:    c.Query("search"),
	}
}

// windowLabel describe el filtro para la cabecera de los exportes.
func windowLabel(f archive.Filter) string {
	switch {
	case f.StartDate != "" || f.EndDate != "":
		return f.StartDate + " / " + f.EndDate
	case f.Day != "":
		return f.Day
	case f.Year != 0 && f.Month != 0:
		return fmt.Sprintf("%04d-%02d", f.Year, f.Month)
	case f.Year != 0:
		return fmt.Sprintf("%04d", f.Year)
	case f.Month != 0:
		return fmt.Sprintf("mes %02d", f.Month)
	default:
		return "todo el periodo"
	}
}

// Get godoc
// @Summary      Archivo de movimientos
// @Description  Entradas y salidas agrupadas por (código, producto) dentro de la
//
//	ventana pedida. Sin filtros de fecha agrega todo el historial.
//
// @Tags         archive
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD inclusivo"
// @Param        end_date    query  string  false  "YYYY-MM-DD inclusivo"
// @Param        day         query  string  false  "YYYY-MM-DD"
// @Param        year        query  int     false  "Año"
// @Param        month       query  int     false  "Mes 1-12"
// @Success      200  {object}  dto.ArchiveResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/archive [get]
func (h *ArchiveHandler) Get(c *fiber.Ctx) error {
	resp, err := h.uc.Aggregate(c.Context(), filterFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ExportXLSX godoc
// @Summary      Exportar archivo a XLSX
// @Tags         archive
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        search  query  string  false  "Filtrar por código o producto"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/archive/export.xlsx [get]
func (h *ArchiveHandler) ExportXLSX(c *fiber.Ctx) error {
	resp, err := h.uc.Aggregate(c.Context(), filterFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	data, err := h.excel.Export(resp)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="archivo.xlsx"`)
	return c.Send(data)
}

// ExportPDF godoc
// @Summary      Exportar archivo a PDF
// @Tags         archive
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/archive/export.pdf [get]
func (h *ArchiveHandler) ExportPDF(c *fiber.Ctx) error {
	f := filterFromQuery(c)
	resp, err := h.uc.Aggregate(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	data, err := h.pdf.Generate(resp, windowLabel(f))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="archivo.pdf"`)
	return c.Send(data)
}

// Report godoc
// @Summary      Resumen de entradas y salidas
// @Description  Lotes distintos y sumas por dirección en el rango [start, end].
// @Tags         archive
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  true  "YYYY-MM-DD"
// @Param        end    query  string  true  "YYYY-MM-DD inclusivo"
// @Success      200  {object}  dto.ReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/report [get]
func (h *ArchiveHandler) Report(c *fiber.Ctx) error {
	resp, err := h.uc.Report(c.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
