package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/Tablero-api/internal/application/analytics"
	"github.com/jhoicas/Tablero-api/internal/application/dto"
	"github.com/jhoicas/Tablero-api/internal/application/inventory"
	"github.com/jhoicas/Tablero-api/internal/application/reporting"
	"github.com/jhoicas/Tablero-api/internal/application/usecase"
	"github.com/jhoicas/Tablero-api/internal/domain"
	"github.com/jhoicas/Tablero-api/internal/domain/entity"
	"github.com/jhoicas/Tablero-api/internal/domain/report"
	"github.com/jhoicas/Tablero-api/internal/domain/repository"
	"github.com/jhoicas/Tablero-api/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/Tablero-api/internal/interfaces/http"
)

var testNow = time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

// --- fakes de repositorio ---

type customerRepo struct {
	rows []repository.CustomerRow
	err  error
}

func (r *customerRepo) List(context.Context, repository.ListQuery) (*repository.Page[repository.CustomerRow], error) {
	if r.err != nil {
		return nil, r.err
	}
	return &repository.Page[repository.CustomerRow]{Rows: r.rows, TotalCount: int64(len(r.rows))}, nil
}

func (r *customerRepo) GetByID(context.Context, string) (*entity.Customer, error) {
	return nil, domain.ErrNotFound
}

type orderRepo struct{}

func (orderRepo) List(context.Context, repository.ListQuery) (*repository.Page[repository.OrderRow], error) {
	return &repository.Page[repository.OrderRow]{}, nil
}

func (orderRepo) GetByID(context.Context, string) (*entity.Order, error) {
	return nil, domain.ErrNotFound
}

type companyRepo struct{}

func (companyRepo) List(context.Context, repository.ListQuery) (*repository.Page[repository.CompanyRow], error) {
	return &repository.Page[repository.CompanyRow]{}, nil
}

func (companyRepo) GetByID(context.Context, string) (*entity.Company, error) {
	return nil, domain.ErrNotFound
}

type productRepo struct {
	products map[string]*entity.Product
}

func (r *productRepo) List(context.Context, repository.ListQuery) (*repository.Page[repository.ProductRow], error) {
	return &repository.Page[repository.ProductRow]{}, nil
}

func (r *productRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	if p, ok := r.products[code]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *productRepo) GetForUpdate(ctx context.Context, code string) (*entity.Product, error) {
	return r.GetByCode(ctx, code)
}

func (r *productRepo) UpdatePricing(_ context.Context, code string, cost, listPrice *decimal.Decimal) error {
	p, ok := r.products[code]
	if !ok {
		return domain.ErrNotFound
	}
	p.Cost, p.ListPrice = cost, listPrice
	return nil
}

func (r *productRepo) ListPricing(context.Context) ([]repository.ProductPricing, error) {
	out := make([]repository.ProductPricing, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, repository.ProductPricing{ProductCode: p.ProductCode, Cost: p.Cost, ListPrice: p.ListPrice})
	}
	return out, nil
}

type historyRepo struct {
	rows []entity.ProductPriceHistory
}

func (r *historyRepo) Append(_ context.Context, h *entity.ProductPriceHistory) error {
	r.rows = append(r.rows, *h)
	return nil
}

func (r *historyRepo) ListByProduct(context.Context, string) ([]entity.ProductPriceHistory, error) {
	return r.rows, nil
}

func (r *historyRepo) PriceAt(context.Context, string, time.Time) (*entity.ProductPriceHistory, error) {
	return nil, domain.ErrNotFound
}

type analyticsRepo struct{}

func (analyticsRepo) GetPeriodTotals(context.Context, report.DateRange) (repository.PeriodTotals, error) {
	return repository.PeriodTotals{Revenue: decimal.NewFromInt(1000), Orders: 4, Customers: 2, Units: decimal.NewFromInt(12)}, nil
}

func (analyticsRepo) GetCustomerSpends(context.Context, report.DateRange) ([]decimal.Decimal, error) {
	return []decimal.Decimal{decimal.NewFromInt(700), decimal.NewFromInt(300)}, nil
}

func (analyticsRepo) GetGroupTotals(context.Context, repository.BreakdownQuery) ([]report.GroupTotals, error) {
	return []report.GroupTotals{{Key: "web", Revenue: decimal.NewFromInt(1000), Orders: 4}}, nil
}

type inventoryRepo struct{}

func (inventoryRepo) ListReorder(context.Context, repository.ListQuery) (*repository.Page[repository.ReorderRow], error) {
	return &repository.Page[repository.ReorderRow]{}, nil
}

func (inventoryRepo) ListSnapshots(context.Context, string, report.DateRange) ([]entity.InventorySnapshot, error) {
	return nil, nil
}

type txRunner struct {
	products *productRepo
	history  *historyRepo
}

func (t txRunner) RunPricing(_ context.Context, fn func(repository.ProductRepository, repository.PriceHistoryRepository) error) error {
	return fn(t.products, t.history)
}

type pdfStub struct{}

func (pdfStub) GenerateReorderPlan(*dto.ReorderPlanDTO) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

// --- helpers ---

type testEnv struct {
	app       *fiber.App
	customers *customerRepo
	products  *productRepo
	history   *historyRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	settings := reporting.Settings{
		DefaultPageSize: 10,
		LargePageSize:   50,
		MaxPageSize:     200,
		DefaultPeriod:   "30d",
		Clock:           func() time.Time { return testNow },
	}
	cost, price := decimal.NewFromInt(6), decimal.NewFromInt(10)
	env := &testEnv{
		app:       fiber.New(),
		customers: &customerRepo{},
		products: &productRepo{products: map[string]*entity.Product{
			"TAZ-01": {ProductCode: "TAZ-01", Name: "Taza", Cost: &cost, ListPrice: &price, UnitsPerPackage: 6},
		}},
		history: &historyRepo{},
	}

	apphttp.Router(env.app, apphttp.RouterDeps{
		CustomerUC:  usecase.NewCustomerUseCase(env.customers, settings),
		OrderUC:     usecase.NewOrderUseCase(orderRepo{}, settings),
		CompanyUC:   usecase.NewCompanyUseCase(companyRepo{}, settings),
		ProductUC:   usecase.NewProductUseCase(env.products, env.history, settings),
		PricingUC:   inventory.NewPricingUseCase(txRunner{products: env.products, history: env.history}, settings),
		DashboardUC: appanalytics.NewDashboardUseCase(analyticsRepo{}, settings),
		BreakdownUC: appanalytics.NewBreakdownUseCase(analyticsRepo{}, settings),
		ReorderUC:   inventory.NewReorderUseCase(inventoryRepo{}, pdfStub{}, settings),
		Metrics:     metrics.New(),
		Logger:      zerolog.Nop(),
	})
	return env
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (int, []byte, string) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, b, resp.Header.Get("Content-Type")
}

func decodeError(t *testing.T, b []byte) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

// --- listados ---

func TestCustomers_List(t *testing.T) {
	env := newTestEnv(t)
	env.customers.rows = []repository.CustomerRow{
		{ID: "c1", Name: "Ana", OrderCount: 3, TotalSpent: decimal.RequireFromString("1234.5")},
	}

	status, body, _ := doRequest(t, env.app, fiber.MethodGet, "/api/customers?page=1&pageSize=500", "")
	require.Equal(t, fiber.StatusOK, status)

	var out dto.ListResponse[dto.CustomerRowDTO]
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, int64(1), out.TotalCount)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 200, out.PageSize)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "Ana", out.Rows[0].Name)
	assert.Equal(t, "$1,235", out.Rows[0].TotalSpentDisplay)
	assert.Equal(t, "N/A", out.Rows[0].LastOrderDisplay)
}

func TestCustomers_StoreFailureIsUnavailable(t *testing.T) {
	env := newTestEnv(t)
	env.customers.err = errors.New("dial tcp: connection refused")

	status, body, _ := doRequest(t, env.app, fiber.MethodGet, "/api/customers", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)

	e := decodeError(t, body)
	assert.Equal(t, apphttp.CodeAggregationUnavailable, e.Code)
	assert.Equal(t, "No data available", e.Message)
}

func TestCustomers_GetUnknown(t *testing.T) {
	env := newTestEnv(t)
	status, body, _ := doRequest(t, env.app, fiber.MethodGet, "/api/customers/not-a-uuid", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, apphttp.CodeNotFound, decodeError(t, body).Code)
}

func TestOrders_ListEmptyRowsIsArray(t *testing.T) {
	env := newTestEnv(t)
	status, body, _ := doRequest(t, env.app, fiber.MethodGet, "/api/orders", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), `"rows":[]`)
	assert.Contains(t, string(body), `"page_size":50`)
}

// --- productos ---

func TestProducts_GetByCode(t *testing.T) {
	env := newTestEnv(t)

	status, body, _ := doRequest(t, env.app, fiber.MethodGet, "/api/products/TAZ-01", "")
	require.Equal(t, fiber.StatusOK, status)
	var out dto.ProductDetailDTO
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "TAZ-01", out.ProductCode)
	require.NotNil(t, out.MarginPct)
	assert.True(t, out.MarginPct.Equal(decimal.NewFromInt(40)))

	status, body, _ = doRequest(t, env.app, fiber.MethodGet, "/api/products/NOPE", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, apphttp.CodeNotFound, decodeError(t, body).Code)
}

func TestProducts_DistributionRouteIsNotACode(t *testing.T) {
	env := newTestEnv(t)

	status, body, _ := doRequest(t, env.app, fiber.MethodGet, "/api/products/distribution/price?boundaries=0,10,20", "")
	require.Equal(t, fiber.StatusOK, status)
	var out dto.DistributionDTO
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out.Buckets, 2)
	assert.Equal(t, 1, out.Buckets[1].Count)
}

func TestProducts_PriceAtInvalidDate(t *testing.T) {
	env := newTestEnv(t)
	status, body, _ := doRequest(t, env.app, fiber.MethodGet, "/api/products/TAZ-01/price?date=10-06-2024", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeInvalidInput, decodeError(t, body).Code)
}

func TestProducts_UpdatePricing(t *testing.T) {
	env := newTestEnv(t)

	status, body, _ := doRequest(t, env.app, fiber.MethodPut, "/api/products/TAZ-01/pricing",
		`{"cost":"7","list_price":"14","effective_date":"2024-06-01","notes":"lista junio"}`)
	require.Equal(t, fiber.StatusOK, status, string(body))

	var out dto.ProductDetailDTO
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotNil(t, out.ListPrice)
	assert.True(t, out.ListPrice.Equal(decimal.NewFromInt(14)))
	require.Len(t, env.history.rows, 1)
	assert.Equal(t, "lista junio", env.history.rows[0].Notes)
}

func TestProducts_UpdatePricingRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)

	status, body, _ := doRequest(t, env.app, fiber.MethodPut, "/api/products/TAZ-01/pricing", `{"cost":`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeInvalidBody, decodeError(t, body).Code)

	status, body, _ = doRequest(t, env.app, fiber.MethodPut, "/api/products/TAZ-01/pricing", `{"cost":"-1"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeInvalidInput, decodeError(t, body).Code)

	status, _, _ = doRequest(t, env.app, fiber.MethodPut, "/api/products/NOPE/pricing", `{"cost":"1"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Empty(t, env.history.rows)
}

// --- tablero y desgloses ---

func TestDashboard_Metrics(t *testing.T) {
	env := newTestEnv(t)
	status, body, _ := doRequest(t, env.app, fiber.MethodGet, "/api/dashboard/metrics?period=7d", "")
	require.Equal(t, fiber.StatusOK, status)

	var out dto.DashboardMetricsDTO
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "7d", out.Period.Key)
	assert.True(t, out.Revenue.Current.Equal(decimal.NewFromInt(1000)))
	require.NotNil(t, out.Revenue.ChangePct)
	assert.True(t, out.Revenue.ChangePct.IsZero())
	assert.Equal(t, 1, out.CustomersTo50Percent)
	assert.Equal(t, 2, out.CustomersTo80Percent)
}

func TestBreakdown(t *testing.T) {
	env := newTestEnv(t)

	status, body, _ := doRequest(t, env.app, fiber.MethodGet, "/api/analytics/breakdown/channel?period=all", "")
	require.Equal(t, fiber.StatusOK, status)
	var out dto.BreakdownDTO
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out.Groups, 1)
	assert.Equal(t, "web", out.Groups[0].GroupKey)
	assert.Nil(t, out.Groups[0].Previous)
	assert.True(t, out.Groups[0].RevenueSharePct.Equal(decimal.NewFromInt(100)))

	status, body, _ = doRequest(t, env.app, fiber.MethodGet, "/api/analytics/breakdown/planet", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, apphttp.CodeNotFound, decodeError(t, body).Code)
}

// --- inventario y métricas ---

func TestInventory_ReorderPDF(t *testing.T) {
	env := newTestEnv(t)
	status, body, contentType := doRequest(t, env.app, fiber.MethodGet, "/api/inventory/reorder.pdf", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	status, _, _ := doRequest(t, env.app, fiber.MethodGet, "/api/orders", "")
	require.Equal(t, fiber.StatusOK, status)

	status, body, _ := doRequest(t, env.app, fiber.MethodGet, "/metrics", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), "tablero_http_requests_total")
	assert.Contains(t, string(body), "go_goroutines")
}
