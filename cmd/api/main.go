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

	appanalytics "github.com/jhoicas/Tablero-api/internal/application/analytics"
	"github.com/jhoicas/Tablero-api/internal/application/inventory"
	"github.com/jhoicas/Tablero-api/internal/application/reporting"
	"github.com/jhoicas/Tablero-api/internal/application/usecase"
	"github.com/jhoicas/Tablero-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Tablero-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Tablero-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Tablero-api/internal/interfaces/http"
	"github.com/jhoicas/Tablero-api/pkg/config"
	"github.com/jhoicas/Tablero-api/pkg/logger"
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
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(pool, log.Component("migrate")); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	customerRepo := postgres.NewCustomerRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	historyRepo := postgres.NewPriceHistoryRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	settings := reporting.NewSettings(cfg.Report)

	customerUC := usecase.NewCustomerUseCase(customerRepo, settings)
	orderUC := usecase.NewOrderUseCase(orderRepo, settings)
	companyUC := usecase.NewCompanyUseCase(companyRepo, settings)
	productUC := usecase.NewProductUseCase(productRepo, historyRepo, settings)
	pricingUC := inventory.NewPricingUseCase(txRunner, settings)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, settings)
	breakdownUC := appanalytics.NewBreakdownUseCase(analyticsRepo, settings)

	// PDF: plan de reposición para compras
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	reorderUC := inventory.NewReorderUseCase(inventoryRepo, pdfGenerator, settings)

	m := metrics.New()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.AccessLog(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tablero API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC:  customerUC,
		OrderUC:     orderUC,
		CompanyUC:   companyUC,
		ProductUC:   productUC,
		PricingUC:   pricingUC,
		DashboardUC: dashboardUC,
		BreakdownUC: breakdownUC,
		ReorderUC:   reorderUC,
		Metrics:     m,
		Logger:      log.Component("api"),
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
