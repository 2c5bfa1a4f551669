package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dfmartinez/bodega-api/internal/application/archive"
	"github.com/dfmartinez/bodega-api/internal/application/auth"
	"github.com/dfmartinez/bodega-api/internal/application/batch"
	"github.com/dfmartinez/bodega-api/internal/application/grid"
	"github.com/dfmartinez/bodega-api/internal/application/request"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	BatchUC   *batch.LifecycleUseCase
	ArchiveUC *archive.ArchiveUseCase
	GridUC    *grid.GridUseCase
	RequestUC *request.StockRequestUseCase
	AuthUC    *auth.AuthUseCase
	Excel     ArchiveExporter
	PDF       ArchivePDFGenerator
	JWTSecret string
}

// Router registra las rutas de la API. Login es la única ruta pública.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Perfil de usuario
	protected.Get("/user/me", authHandler.Me)
	protected.Post("/user/password", authHandler.ChangePassword)
	protected.Get("/user/activity", authHandler.Activity)

	// Lotes
	batchHandler := NewBatchHandler(deps.BatchUC)
	batches := protected.Group("/batches")
	batches.Post("/", batchHandler.Create)
	batches.Get("/", batchHandler.List)
	batches.Get("/search", batchHandler.Search)
	batches.Get("/by-code/:code", batchHandler.GetByCode)
	batches.Put("/:id/withdraw", batchHandler.Withdraw)

	// Archivo de movimientos
	archiveHandler := NewArchiveHandler(deps.ArchiveUC, deps.Excel, deps.PDF)
	protected.Get("/archive", archiveHandler.Get)
	protected.Get("/archive/export.xlsx", archiveHandler.ExportXLSX)
	protected.Get("/archive/export.pdf", archiveHandler.ExportPDF)
	protected.Get("/report", archiveHandler.Report)

	// Grilla de celdas
	gridHandler := NewGridHandler(deps.GridUC)
	protected.Get("/cells", gridHandler.Matrix)

	// Solicitudes al almacén
	requestHandler := NewRequestHandler(deps.RequestUC)
	requests := protected.Group("/requests")
	requests.Post("/", requestHandler.Create)
	requests.Get("/", requestHandler.List)
	requests.Put("/:id/seen", requestHandler.MarkSeen)
	requests.Put("/:id/done", requestHandler.MarkDone)
	requests.Put("/:id/failed", requestHandler.MarkFailed)
}
