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

	"github.com/jhoicas/erp-core/internal/application/authz"
	"github.com/jhoicas/erp-core/internal/application/finance"
	"github.com/jhoicas/erp-core/internal/application/inventory"
	"github.com/jhoicas/erp-core/internal/application/ports"
	"github.com/jhoicas/erp-core/internal/application/purchasing"
	"github.com/jhoicas/erp-core/internal/application/sales"
	"github.com/jhoicas/erp-core/internal/application/usecase"
	"github.com/jhoicas/erp-core/internal/infrastructure/memory"
	"github.com/jhoicas/erp-core/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/erp-core/internal/interfaces/http"
	"github.com/jhoicas/erp-core/pkg/config"
	"github.com/jhoicas/erp-core/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Service: cfg.App.Name,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
	}).Component("api")
	log.Info().
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := log.WithContext(context.Background())

	var (
		txRunner ports.TxRunner
		ping     func(ctx context.Context) error
	)
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		txRunner = memory.NewStore()
	default:
		if cfg.Storage.AutoMigrate {
			schema := cfg.Tenant.Schema(cfg.Tenant.Default)
			if err := postgres.MigrateTenant(ctx, cfg.DB.ConnectionString(), schema); err != nil {
				log.Fatal().Err(err).Str("schema", schema).Msg("migraciones")
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner = postgres.NewTxRunner(pool, cfg.Tenant.SchemaPrefix)
		ping = pool.Ping
	}

	stockLedger := inventory.NewStockLedger()
	accountLedger := finance.NewAccountLedger()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ERP Core API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:      usecase.NewProductUseCase(txRunner),
		LocationUC:     usecase.NewLocationUseCase(txRunner),
		CounterpartyUC: usecase.NewCounterpartyUseCase(txRunner),
		Movements:      inventory.NewMovementUseCase(txRunner, stockLedger),
		Reconcile:      inventory.NewReconcileUseCase(txRunner, stockLedger),
		StockQuery:     inventory.NewQueryUseCase(txRunner),
		Replenishment:  inventory.NewReplenishmentUseCase(txRunner),
		PurchaseOrders: purchasing.NewPurchaseOrderUseCase(txRunner, stockLedger),
		SalesOrders:    sales.NewSalesOrderUseCase(txRunner, stockLedger),
		Accounts:       finance.NewAccountUseCase(txRunner),
		Entries:        finance.NewEntryUseCase(txRunner, accountLedger),
		Payables:       finance.NewPayableUseCase(txRunner, accountLedger),
		Receivables:    finance.NewReceivableUseCase(txRunner, accountLedger),
		Authorizer:     authz.NewAuthorizer(authz.DefaultPolicy()),
		JWTSecret:      cfg.JWT.Secret,
		ServiceName:    cfg.App.Name,
		Ping:           ping,
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
