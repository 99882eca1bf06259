package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/rhu-inventory-api/docs"
	appanalytics "github.com/jhoicas/rhu-inventory-api/internal/application/analytics"
	"github.com/jhoicas/rhu-inventory-api/internal/application/auth"
	appinv "github.com/jhoicas/rhu-inventory-api/internal/application/inventory"
	"github.com/jhoicas/rhu-inventory-api/internal/application/ports"
	"github.com/jhoicas/rhu-inventory-api/internal/application/procurement"
	"github.com/jhoicas/rhu-inventory-api/internal/application/reports"
	"github.com/jhoicas/rhu-inventory-api/internal/application/usecase"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/repository"
	"github.com/jhoicas/rhu-inventory-api/internal/infrastructure/lock"
	"github.com/jhoicas/rhu-inventory-api/internal/infrastructure/memory"
	"github.com/jhoicas/rhu-inventory-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/rhu-inventory-api/internal/infrastructure/pdf"
	"github.com/jhoicas/rhu-inventory-api/internal/infrastructure/postgres"
	"github.com/jhoicas/rhu-inventory-api/internal/infrastructure/report"
	httpRouter "github.com/jhoicas/rhu-inventory-api/internal/interfaces/http"
	"github.com/jhoicas/rhu-inventory-api/pkg/config"
	"github.com/jhoicas/rhu-inventory-api/pkg/logger"
)

// storage agrupa lo que cada driver de persistencia aporta a los casos de uso.
type storage struct {
	tx    ports.TxRunner
	repos ports.TxRepos
	units repository.UnitRepository
	users repository.UserRepository
	store *memory.Store // solo en modo memory, para los datos demo
	close func()
}

// @title        RHU Inventory API
// @version      1.0
// @description  Inventario de medicamentos e insumos de la unidad rural de salud: lotes FEFO, libro de movimientos, transferencias y compras.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:      cfg.App.Env,
		Level:    cfg.Log.Level,
		Service:  cfg.App.Name,
		Location: cfg.App.Location(),
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Str("lock", cfg.Lock.Driver).
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	locker, closeLocker, err := newLocker(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar lock de items")
	}
	defer closeLocker()

	clock := ports.ZoneClock{Loc: cfg.App.Location()}
	var observer ports.InventoryObserver = ports.NopObserver{}
	var prom *metrics.Metrics
	if cfg.Metrics.Enabled {
		prom = metrics.New()
		observer = prom
	}

	ledgerUC := appinv.NewLedgerUseCase(appinv.LedgerDeps{
		Tx:          st.tx,
		Locker:      locker,
		Clock:       clock,
		Observer:    observer,
		Log:         log.Named("ledger"),
		Batches:     st.repos.Batches,
		Ledger:      st.repos.Transactions,
		Adjustments: st.repos.Adjustments,
	})
	if st.store != nil {
		if err := memory.SeedDemo(ctx, st.store, ledgerUC); err != nil {
			log.Fatal().Err(err).Msg("cargar datos demo")
		}
		log.Warn().Str("password", memory.DemoPassword).Msg("modo memory: usuarios demo admin, pharmacist, storekeeper, procurement, nurse")
	}

	itemUC := appinv.NewItemUseCase(st.repos.Items, st.repos.Batches, clock)
	transferUC := appinv.NewTransferUseCase(ledgerUC, st.tx, st.repos.Transfers, st.units, st.repos.Items)
	procurementUC := procurement.NewUseCase(
		ledgerUC, st.tx,
		st.repos.PurchaseRequests, st.repos.PurchaseOrders, st.repos.ReceivingReports, st.repos.Invoices,
	)
	patientUC := usecase.NewPatientUseCase(st.repos.Patients, st.tx, clock)
	dashboardUC := appanalytics.NewDashboardUseCase(appanalytics.DashboardDeps{
		Items:            st.repos.Items,
		Batches:          st.repos.Batches,
		Transactions:     st.repos.Transactions,
		Transfers:        st.repos.Transfers,
		PurchaseRequests: st.repos.PurchaseRequests,
		PurchaseOrders:   st.repos.PurchaseOrders,
		Clock:            clock,
	})
	reportsUC := reports.NewUseCase(
		st.repos.Items, st.repos.Batches, st.repos.Transactions, clock,
		report.NewXLSXExporter(), infrapdf.NewStockCardGenerator(cfg.App.Name),
	)
	authUC := auth.NewAuthUseCase(st.users, st.units, clock, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))
	if prom != nil {
		app.Use(prom.Middleware())
		app.Get("/metrics", adaptor.HTTPHandler(prom.Handler()))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.HTTP.Swagger {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "RHU Inventory API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ItemUC:        itemUC,
		LedgerUC:      ledgerUC,
		TransferUC:    transferUC,
		ProcurementUC: procurementUC,
		PatientUC:     patientUC,
		DashboardUC:   dashboardUC,
		ReportsUC:     reportsUC,
		JWTSecret:     cfg.JWT.Secret,
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

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == "memory" {
		store := memory.NewStore()
		return &storage{
			tx:    memory.NewTxRunner(store),
			repos: store.Repositories(),
			units: store.Units(),
			users: store.Users(),
			store: store,
			close: func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &storage{
		tx:    postgres.NewTxRunner(pool),
		repos: postgres.Repositories(pool),
		units: postgres.NewUnitRepository(pool),
		users: postgres.NewUserRepository(pool),
		close: pool.Close,
	}, nil
}

func newLocker(ctx context.Context, cfg *config.Config) (ports.ItemLocker, func(), error) {
	if cfg.Lock.Driver != "redis" {
		return lock.NewLocal(), func() {}, nil
	}
	client, err := lock.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, err
	}
	return lock.NewRedis(client, cfg.Lock.TTL), func() { _ = client.Close() }, nil
}
