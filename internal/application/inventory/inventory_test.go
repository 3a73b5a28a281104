package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tablero-api/internal/application/dto"
	"github.com/jhoicas/Tablero-api/internal/application/reporting"
	"github.com/jhoicas/Tablero-api/internal/domain"
	"github.com/jhoicas/Tablero-api/internal/domain/entity"
	"github.com/jhoicas/Tablero-api/internal/domain/report"
	"github.com/jhoicas/Tablero-api/internal/domain/repository"
)

var testNow = time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

func testSettings() reporting.Settings {
	return reporting.Settings{
		DefaultPageSize: 10,
		LargePageSize:   50,
		MaxPageSize:     200,
		DefaultPeriod:   "30d",
		Clock:           func() time.Time { return testNow },
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

type fakeInventoryRepo struct {
	lastQuery repository.ListQuery
	lastRange report.DateRange
	page      *repository.Page[repository.ReorderRow]
	snapshots []entity.InventorySnapshot
	err       error
}

func (f *fakeInventoryRepo) ListReorder(_ context.Context, q repository.ListQuery) (*repository.Page[repository.ReorderRow], error) {
	f.lastQuery = q
	return f.page, f.err
}

func (f *fakeInventoryRepo) ListSnapshots(_ context.Context, _ string, r report.DateRange) ([]entity.InventorySnapshot, error) {
	f.lastRange = r
	return f.snapshots, f.err
}

type fakePDF struct{ plan *dto.ReorderPlanDTO }

func (f *fakePDF) GenerateReorderPlan(plan *dto.ReorderPlanDTO) ([]byte, error) {
	f.plan = plan
	return []byte("%PDF-1.4"), nil
}

func TestSuggestedOrderQty(t *testing.T) {
	tests := []struct {
		name      string
		ideal     string
		available string
		pkg       int
		want      string
	}{
		{"sin déficit", "15", "20", 12, "0"},
		{"unidades sueltas", "15", "9.5", 1, "6"},
		{"redondeo a paquete", "15", "2", 12, "24"},
		{"paquete exacto", "30", "6", 12, "24"},
		{"disponible negativo", "15", "-3", 0, "18"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestedOrderQty(dec(tt.ideal), dec(tt.available), tt.pkg)
			assert.True(t, got.Equal(dec(tt.want)), "got %s", got)
		})
	}
}

func TestReorderUseCase_GetPlan(t *testing.T) {
	snap := time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)
	repo := &fakeInventoryRepo{page: &repository.Page[repository.ReorderRow]{
		Rows: []repository.ReorderRow{
			{ProductCode: "A-1", ReorderPoint: dec("10"), Available: dec("0"), UnitsPerPackage: 6, SnapshotDate: snap},
			{ProductCode: "B-2", ReorderPoint: dec("10"), Available: dec("8"), UnitsPerPackage: 1, SnapshotDate: snap},
			{ProductCode: "C-3", ReorderPoint: dec("10"), Available: dec("40"), DaysOfCover: decPtr("12.5"), SnapshotDate: snap},
		},
		TotalCount: 23,
	}}
	uc := NewReorderUseCase(repo, nil, testSettings())

	plan, err := uc.GetPlan(context.Background(), map[string][]string{
		"page":             {"2"},
		"pageSize":         {"3"},
		"period":           {"all"},
		"belowReorderOnly": {"true"},
	})
	require.NoError(t, err)

	q := repo.lastQuery
	assert.Equal(t, "90d", q.Window.Key)
	assert.True(t, q.Filters.FlagIs(report.FlagBelowReorderOnly))
	assert.Equal(t, report.Sort{Column: "shortfall", Direction: report.Desc}, q.Filters.Sort)

	assert.Equal(t, "90d", plan.Period.Key)
	assert.Equal(t, int64(23), plan.TotalCount)
	require.Len(t, plan.Rows, 3)

	a, b, c := plan.Rows[0], plan.Rows[1], plan.Rows[2]
	assert.Equal(t, 4, a.Priority)
	assert.Equal(t, 6, c.Priority)
	assert.Equal(t, dto.ReorderStatusCritical, a.Status)
	assert.Equal(t, dto.ReorderStatusReorder, b.Status)
	assert.Equal(t, dto.ReorderStatusOK, c.Status)
	assert.True(t, a.IdealStock.Equal(dec("15")))
	assert.True(t, a.SuggestedOrderQty.Equal(dec("18")))
	assert.True(t, b.SuggestedOrderQty.Equal(dec("7")))
	assert.True(t, c.SuggestedOrderQty.IsZero())
	assert.Equal(t, "2024-06-09", a.SnapshotDate)
}

func TestReorderUseCase_GetPlanPDF(t *testing.T) {
	repo := &fakeInventoryRepo{page: &repository.Page[repository.ReorderRow]{}}

	_, err := NewReorderUseCase(repo, nil, testSettings()).GetPlanPDF(context.Background(), nil)
	assert.Error(t, err)

	gen := &fakePDF{}
	out, err := NewReorderUseCase(repo, gen, testSettings()).GetPlanPDF(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(out))
	require.NotNil(t, gen.plan)
	assert.Equal(t, 50, gen.plan.PageSize)
}

func TestReorderUseCase_ListSnapshots(t *testing.T) {
	repo := &fakeInventoryRepo{snapshots: []entity.InventorySnapshot{
		{SnapshotDate: time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), QtyOnHand: dec("10"), QtyOnOrder: dec("5"), QtyCommitted: dec("3")},
	}}
	uc := NewReorderUseCase(repo, nil, testSettings())

	got, err := uc.ListSnapshots(context.Background(), "A-1", map[string][]string{"period": {"7d"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Available.Equal(dec("12")))
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), repo.lastRange.Start)

	_, err = uc.ListSnapshots(context.Background(), " ", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	repo.err = errors.New("boom")
	_, err = uc.ListSnapshots(context.Background(), "A-1", nil)
	assert.ErrorIs(t, err, domain.ErrAggregationUnavailable)
}

// fakeTxRunner simula la transacción: trabaja sobre copias y solo las publica si fn no falla.
type fakeTxRunner struct {
	products  map[string]*entity.Product
	history   []entity.ProductPriceHistory
	failAfter bool
}

type txProducts struct {
	repository.ProductRepository
	rows map[string]*entity.Product
}

func (r *txProducts) GetForUpdate(_ context.Context, code string) (*entity.Product, error) {
	p, ok := r.rows[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *txProducts) UpdatePricing(_ context.Context, code string, cost, listPrice *decimal.Decimal) error {
	r.rows[code].Cost, r.rows[code].ListPrice = cost, listPrice
	return nil
}

type txHistory struct {
	repository.PriceHistoryRepository
	rows []entity.ProductPriceHistory
	fail bool
}

func (r *txHistory) Append(_ context.Context, h *entity.ProductPriceHistory) error {
	if r.fail {
		return errors.New("insert failed")
	}
	r.rows = append(r.rows, *h)
	return nil
}

func (f *fakeTxRunner) RunPricing(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	historyRepo repository.PriceHistoryRepository,
) error) error {
	staged := make(map[string]*entity.Product, len(f.products))
	for k, v := range f.products {
		cp := *v
		staged[k] = &cp
	}
	hist := &txHistory{fail: f.failAfter}
	if err := fn(&txProducts{rows: staged}, hist); err != nil {
		return err
	}
	f.products = staged
	f.history = append(f.history, hist.rows...)
	return nil
}

func TestPricingUseCase_UpdateProductPricing(t *testing.T) {
	runner := &fakeTxRunner{products: map[string]*entity.Product{
		"A-1": {ProductCode: "A-1", Name: "Caja", ListPrice: decPtr("10")},
	}}
	uc := NewPricingUseCase(runner, testSettings())

	got, err := uc.UpdateProductPricing(context.Background(), "A-1", dto.UpdatePricingRequest{
		Cost:          decPtr("6"),
		ListPrice:     decPtr("12"),
		EffectiveDate: "2024-06-01",
		Notes:         " ajuste proveedor ",
	})
	require.NoError(t, err)

	assert.Equal(t, "50.0%", got.MarginDisplay)
	assert.True(t, runner.products["A-1"].ListPrice.Equal(dec("12")))
	require.Len(t, runner.history, 1)
	h := runner.history[0]
	assert.Equal(t, "A-1", h.ProductCode)
	assert.Equal(t, "ajuste proveedor", h.Notes)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), h.EffectiveDate)
	assert.NotEmpty(t, h.ID)
}

func TestPricingUseCase_RollsBackOnFailure(t *testing.T) {
	runner := &fakeTxRunner{
		products:  map[string]*entity.Product{"A-1": {ProductCode: "A-1", ListPrice: decPtr("10")}},
		failAfter: true,
	}
	uc := NewPricingUseCase(runner, testSettings())

	_, err := uc.UpdateProductPricing(context.Background(), "A-1", dto.UpdatePricingRequest{ListPrice: decPtr("99")})
	assert.ErrorIs(t, err, domain.ErrAggregationUnavailable)
	assert.True(t, runner.products["A-1"].ListPrice.Equal(dec("10")))
	assert.Empty(t, runner.history)
}

func TestPricingUseCase_Validation(t *testing.T) {
	runner := &fakeTxRunner{products: map[string]*entity.Product{}}
	uc := NewPricingUseCase(runner, testSettings())
	ctx := context.Background()

	_, err := uc.UpdateProductPricing(ctx, "A-1", dto.UpdatePricingRequest{Cost: decPtr("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateProductPricing(ctx, "A-1", dto.UpdatePricingRequest{EffectiveDate: "junio"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateProductPricing(ctx, "missing", dto.UpdatePricingRequest{ListPrice: decPtr("5")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, runner.history)
}
