package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dfmartinez/bodega-api/internal/application/archive"
	"github.com/dfmartinez/bodega-api/internal/application/auth"
	"github.com/dfmartinez/bodega-api/internal/application/batch"
	"github.com/dfmartinez/bodega-api/internal/application/grid"
	"github.com/dfmartinez/bodega-api/internal/application/request"
	infraexcel "github.com/dfmartinez/bodega-api/internal/infrastructure/excel"
	infrapdf "github.com/dfmartinez/bodega-api/internal/infrastructure/pdf"
	"github.com/dfmartinez/bodega-api/internal/infrastructure/postgres"
	httpRouter "github.com/dfmartinez/bodega-api/internal/interfaces/http"
	"github.com/dfmartinez/bodega-api/pkg/config"
	"github.com/dfmartinez/bodega-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migración del esquema")
	}
	if err := postgres.SeedUsers(ctx, pool, cfg.Seed, log); err != nil {
		log.Fatal().Err(err).Msg("siembra de usuarios")
	}

	batchRepo := postgres.NewBatchRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	requestRepo := postgres.NewStockRequestRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Backfill de la bitácora: garantiza que todo lote tenga sus movimientos
	// antes de aceptar tráfico. Idempotente, corre en una sola transacción.
	backfillUC := batch.NewBackfillUseCase(txRunner)
	created, err := backfillUC.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("backfill de movimientos")
	}
	if created > 0 {
		log.Info().Int("movimientos", created).Msg("backfill completado")
	}

	batchUC := batch.NewLifecycleUseCase(txRunner, batchRepo)
	archiveUC := archive.NewArchiveUseCase(movementRepo)
	gridUC := grid.NewGridUseCase(batchRepo, grid.Config{
		Sectors: cfg.Grid.Sectors,
		Rows:    cfg.Grid.Rows,
		Cells:   cfg.Grid.Cells,
	})
	requestUC := request.NewStockRequestUseCase(requestRepo, batchRepo)
	authUC := auth.NewAuthUseCase(userRepo, batchRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bodega API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		BatchUC:   batchUC,
		ArchiveUC: archiveUC,
		GridUC:    gridUC,
		RequestUC: requestUC,
		AuthUC:    authUC,
		Excel:     infraexcel.NewArchiveExporter(),
		PDF:       infrapdf.NewArchivePDFGenerator(),
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
