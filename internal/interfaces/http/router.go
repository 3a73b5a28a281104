package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/Tablero-api/internal/application/analytics"
	"github.com/jhoicas/Tablero-api/internal/application/inventory"
	"github.com/jhoicas/Tablero-api/internal/application/usecase"
	"github.com/jhoicas/Tablero-api/internal/infrastructure/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC  *usecase.CustomerUseCase
	OrderUC     *usecase.OrderUseCase
	CompanyUC   *usecase.CompanyUseCase
	ProductUC   *usecase.ProductUseCase
	PricingUC   *inventory.PricingUseCase
	DashboardUC *appanalytics.DashboardUseCase
	BreakdownUC *appanalytics.BreakdownUseCase
	ReorderUC   *inventory.ReorderUseCase
	Metrics     *metrics.Metrics
	Logger      zerolog.Logger
}

// Router registra las rutas de la API y, si hay métricas, GET /metrics.
func Router(app *fiber.App, deps RouterDeps) {
	errs := NewErrorMapper(deps.Logger, deps.Metrics)

	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api", RequestMetrics(deps.Metrics))

	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, errs)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, errs)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)

	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC, errs)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)

	// Las rutas estáticas van antes de /:code.
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.PricingUC, errs)
	products.Get("/", productHandler.List)
	products.Get("/distribution/price", productHandler.PriceDistribution)
	products.Get("/distribution/margin", productHandler.MarginDistribution)
	products.Get("/:code", productHandler.GetByCode)
	products.Get("/:code/price-history", productHandler.PriceHistory)
	products.Get("/:code/price", productHandler.PriceAt)
	products.Put("/:code/pricing", productHandler.UpdatePricing)

	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, errs)
	dashboard.Get("/metrics", dashboardHandler.GetMetrics)

	analytics := api.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.BreakdownUC, errs)
	analytics.Get("/breakdown/:dimension", analyticsHandler.GetBreakdown)

	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ReorderUC, errs)
	invGroup.Get("/reorder", inventoryHandler.Reorder)
	invGroup.Get("/reorder.pdf", inventoryHandler.ReorderPDF)
	invGroup.Get("/:code/snapshots", inventoryHandler.Snapshots)
}
