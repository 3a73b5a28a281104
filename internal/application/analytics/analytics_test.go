package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tablero-api/internal/application/reporting"
	"github.com/jhoicas/Tablero-api/internal/domain"
	"github.com/jhoicas/Tablero-api/internal/domain/report"
	"github.com/jhoicas/Tablero-api/internal/domain/repository"
)

var testNow = time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

func testSettings() reporting.Settings {
	return reporting.Settings{
		ConsumerDomains: []string{"gmail.com"},
		DefaultPageSize: 10,
		LargePageSize:   50,
		MaxPageSize:     200,
		DefaultPeriod:   "30d",
		Clock:           func() time.Time { return testNow },
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fakeAnalyticsRepo responde según la fecha de inicio de la ventana consultada.
type fakeAnalyticsRepo struct {
	mu      sync.Mutex
	totals  map[time.Time]repository.PeriodTotals
	groups  map[time.Time][]report.GroupTotals
	spends  []decimal.Decimal
	queries []repository.BreakdownQuery
	calls   int
	err     error
}

func (f *fakeAnalyticsRepo) GetPeriodTotals(_ context.Context, r report.DateRange) (repository.PeriodTotals, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return repository.PeriodTotals{}, f.err
	}
	return f.totals[r.Start], nil
}

func (f *fakeAnalyticsRepo) GetCustomerSpends(context.Context, report.DateRange) ([]decimal.Decimal, error) {
	return f.spends, nil
}

func (f *fakeAnalyticsRepo) GetGroupTotals(_ context.Context, q repository.BreakdownQuery) ([]report.GroupTotals, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return f.groups[q.Range.Start], nil
}

func TestDashboardUseCase_GetMetrics(t *testing.T) {
	w := report.ResolvePeriodAt("7d", testNow)
	repo := &fakeAnalyticsRepo{
		totals: map[time.Time]repository.PeriodTotals{
			w.Start:         {Revenue: dec("1500"), Orders: 3, Customers: 2, Units: dec("12")},
			w.Compare.Start: {Revenue: dec("1000"), Orders: 0, Customers: 0, Units: dec("0")},
		},
		spends: []decimal.Decimal{dec("100"), dec("100"), dec("100"), dec("100")},
	}
	uc := NewDashboardUseCase(repo, testSettings())

	got, err := uc.GetMetrics(context.Background(), map[string][]string{"period": {"7d"}})
	require.NoError(t, err)

	assert.Equal(t, "7d", got.Period.Key)
	assert.True(t, got.Revenue.Current.Equal(dec("1500")))
	require.NotNil(t, got.Revenue.ChangePct)
	assert.True(t, got.Revenue.ChangePct.Equal(dec("50")))
	assert.Equal(t, "+50.0%", got.Revenue.ChangeDisplay)
	assert.Equal(t, "$1,500", got.Revenue.Display)

	require.NotNil(t, got.Orders.ChangePct)
	assert.True(t, got.Orders.ChangePct.Equal(dec("100")))
	assert.True(t, got.AverageOrderValue.Current.Equal(dec("500")))
	assert.True(t, got.AverageOrderValue.Previous.IsZero())

	assert.Equal(t, 2, got.CustomersTo50Percent)
	assert.Equal(t, 4, got.CustomersTo80Percent)
}

func TestDashboardUseCase_AllTimeHasNoComparison(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	uc := NewDashboardUseCase(repo, testSettings())

	got, err := uc.GetMetrics(context.Background(), map[string][]string{"period": {"all"}})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls)
	assert.Nil(t, got.Revenue.Previous)
	assert.Nil(t, got.Revenue.ChangePct)
	assert.Equal(t, "N/A", got.Revenue.ChangeDisplay)
	assert.Equal(t, "$0", got.Revenue.Display)
	assert.Equal(t, 0, got.CustomersTo50Percent)
}

func TestDashboardUseCase_StoreFailure(t *testing.T) {
	repo := &fakeAnalyticsRepo{err: errors.New("timeout")}
	uc := NewDashboardUseCase(repo, testSettings())

	_, err := uc.GetMetrics(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrAggregationUnavailable)
}

func TestBreakdownUseCase_FullOuterJoin(t *testing.T) {
	w := report.ResolvePeriodAt("30d", testNow)
	repo := &fakeAnalyticsRepo{groups: map[time.Time][]report.GroupTotals{
		w.Start: {
			{Key: "web", Revenue: dec("300"), Quantity: dec("3"), Orders: 3, Customers: 2},
			{Key: "phone", Revenue: dec("100"), Quantity: dec("1"), Orders: 1, Customers: 1},
		},
		w.Compare.Start: {
			{Key: "web", Revenue: dec("200"), Quantity: dec("2"), Orders: 2, Customers: 2},
			{Key: "marketplace", Revenue: dec("50"), Quantity: dec("1"), Orders: 1, Customers: 1},
		},
	}}
	uc := NewBreakdownUseCase(repo, testSettings())

	got, err := uc.GetBreakdown(context.Background(), "Channel", map[string][]string{"filterConsumer": {"true"}})
	require.NoError(t, err)

	assert.Equal(t, "channel", got.Dimension)
	require.Len(t, got.Groups, 3)
	assert.Equal(t, []string{"web", "phone", "marketplace"},
		[]string{got.Groups[0].GroupKey, got.Groups[1].GroupKey, got.Groups[2].GroupKey})

	web := got.Groups[0]
	require.NotNil(t, web.RevenueChangePct)
	assert.True(t, web.RevenueChangePct.Equal(dec("50")))
	assert.True(t, web.RevenueSharePct.Equal(dec("75")))

	phone := got.Groups[1]
	require.NotNil(t, phone.Previous)
	assert.True(t, phone.Previous.Revenue.IsZero())
	assert.True(t, phone.RevenueChangePct.Equal(dec("100")))

	gone := got.Groups[2]
	assert.True(t, gone.Current.Revenue.IsZero())
	assert.True(t, gone.RevenueChangePct.Equal(dec("-100")))

	require.Len(t, repo.queries, 2)
	for _, q := range repo.queries {
		assert.True(t, q.ExcludeConsumer)
		assert.Equal(t, report.DimensionChannel, q.Dimension)
	}
}

func TestBreakdownUseCase_KeyAndUnknownDimension(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	uc := NewBreakdownUseCase(repo, testSettings())

	got, err := uc.GetBreakdown(context.Background(), "family", map[string][]string{
		"key":    {"does-not-exist"},
		"period": {"all"},
	})
	require.NoError(t, err)
	assert.NotNil(t, got.Groups)
	assert.Empty(t, got.Groups)
	require.Len(t, repo.queries, 1)
	require.NotNil(t, repo.queries[0].Key)
	assert.Equal(t, "does-not-exist", *repo.queries[0].Key)

	_, err = uc.GetBreakdown(context.Background(), "weather", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
