// @title                       Almacén API
// @version                     1.0
// @description                 Inventario de bodega: catálogos, documentos de ingreso y despacho, saldo por recurso y unidad.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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

	_ "github.com/jhoicas/almacen-api/docs"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-api/internal/infrastructure/migration"
	infrapdf "github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	var (
		repos    inventory.Repos
		txRunner inventory.TxRunner
		db       httpRouter.Pinger
	)
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := memory.NewStore()
		repos, txRunner = store.Repos(), store
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		if cfg.DB.AutoMigrate {
			m, err := migration.New(pool, log)
			if err != nil {
				log.Fatal().Err(err).Msg("preparar migraciones")
			}
			if err := m.Up(); err != nil {
				log.Fatal().Err(err).Msg("aplicar migraciones")
			}
			_ = m.Close()
		}
		repos, txRunner, db = postgres.NewRepos(pool), postgres.NewTxRunner(pool), pool
	}

	receiptUC := inventory.NewReceiptUseCase(txRunner, log)
	shipmentUC := inventory.NewShipmentUseCase(txRunner, log)
	balanceUC := usecase.NewBalanceUseCase(repos.Balances)
	reportUC := usecase.NewReportUseCase(
		receiptUC, shipmentUC, balanceUC,
		infrapdf.NewMarotoRenderer(cfg.App.Name),
		xmlexport.NewBalanceExporter(cfg.App.Name),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerPath,
			Path:     "docs",
			Title:    "Almacén API",
		}))
	} else {
		log.Warn().Str("path", cfg.HTTP.SwaggerPath).Msg("swagger.json no encontrado; UI deshabilitada")
	}

	app.Get("/health", httpRouter.Health(db, cfg.Storage.Driver))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ResourceUC: usecase.NewResourceUseCase(repos.Resources, log),
		UnitUC:     usecase.NewUnitUseCase(repos.Units, log),
		ClientUC:   usecase.NewClientUseCase(repos.Clients, log),
		BalanceUC:  balanceUC,
		ReportUC:   reportUC,
		ReceiptUC:  receiptUC,
		ShipmentUC: shipmentUC,
		JWTSecret:  cfg.JWT.Secret,
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
