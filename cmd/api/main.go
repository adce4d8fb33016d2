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

	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/application/fulfillment"
	"github.com/jhoicas/stockflow/internal/application/inventory"
	"github.com/jhoicas/stockflow/internal/application/usecase"
	"github.com/jhoicas/stockflow/internal/domain/repository"
	"github.com/jhoicas/stockflow/internal/infrastructure/memory"
	"github.com/jhoicas/stockflow/internal/infrastructure/migration"
	"github.com/jhoicas/stockflow/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stockflow/internal/interfaces/http"
	"github.com/jhoicas/stockflow/pkg/config"
	"github.com/jhoicas/stockflow/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}

	ctx := context.Background()

	var (
		txRunner inventory.TxRunner
		refRepo  repository.ReferenceRepository
	)
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		log.Warn().Str("seed", cfg.Store.SeedFile).Msg("almacén en memoria: los datos se pierden al reiniciar")
		store, err := memory.LoadSeed(cfg.Store.SeedFile)
		if err != nil {
			log.Fatal().Err(err).Msg("cargar semilla")
		}
		txRunner, refRepo = store, store
	default:
		if cfg.DB.AutoMigrate {
			runMigrations(cfg.DB, log)
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner = postgres.NewTxRunner(pool)
		refRepo = postgres.NewReferenceRepository(pool)
	}

	refs := inventory.NewReferences(refRepo)
	prefixes := inventory.DocumentPrefixes{
		Receipt:     cfg.Documents.ReceiptPrefix,
		Delivery:    cfg.Documents.DeliveryPrefix,
		Transfer:    cfg.Documents.TransferPrefix,
		Requisition: cfg.Documents.RequisitionPrefix,
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs (solo si HTTP_SWAGGER_FILE apunta al JSON generado)
	if cfg.HTTP.SwaggerFile != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    cfg.App.Name + " API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReceiptUC:       inventory.NewReceiptUseCase(txRunner, refs, prefixes, log),
		AdjustmentUC:    inventory.NewAdjustmentUseCase(txRunner, refs, log),
		StockUC:         inventory.NewStockUseCase(txRunner, refs),
		ReplenishmentUC: inventory.NewReplenishmentUseCase(txRunner, refs),
		DeliveryUC:      fulfillment.NewDeliveryUseCase(txRunner, refs, prefixes, log),
		TransferUC:      fulfillment.NewTransferUseCase(txRunner, refs, prefixes, log),
		RequisitionUC:   fulfillment.NewRequisitionUseCase(txRunner, refs, prefixes, log),
		WarehouseUC:     usecase.NewWarehouseUseCase(refRepo),
		ProductUC:       usecase.NewProductUseCase(refRepo),
		Hydrator:        dto.NewHydrator(refRepo),
		Log:             log,
		JWTSecret:       cfg.JWT.Secret,
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

// runMigrations aplica las migraciones embebidas antes de abrir el pool.
func runMigrations(db config.DBConfig, log *logger.Logger) {
	url, err := postgres.MigrationURL(db)
	if err != nil {
		log.Fatal().Err(err).Msg("URL de migraciones")
	}
	m, err := migration.New(url, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migraciones")
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar migrador")
		}
	}()
	if err := m.Up(); err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}
}
