// Package analytics contiene los casos de uso de las tarjetas del tablero y los desgloses
// por dimensión.
package analytics

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Tablero-api/internal/application/dto"
	"github.com/jhoicas/Tablero-api/internal/application/reporting"
	"github.com/jhoicas/Tablero-api/internal/domain/report"
	"github.com/jhoicas/Tablero-api/internal/domain/repository"
	"github.com/jhoicas/Tablero-api/pkg/format"
)

// DashboardUseCase calcula las tarjetas del tablero para un período y su ventana anterior.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	settings      reporting.Settings
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, settings reporting.Settings) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, settings: settings}
}

// GetMetrics construye las tarjetas a partir de la query string (period o startDate/endDate).
//
// Tres lecturas en paralelo:
//  1. GetPeriodTotals(ventana actual)
//  2. GetPeriodTotals(ventana anterior), salvo "all"
//  3. GetCustomerSpends(ventana actual) para la concentración
func (uc *DashboardUseCase) GetMetrics(ctx context.Context, raw map[string][]string) (*dto.DashboardMetricsDTO, error) {
	w := uc.window(raw)

	var (
		cur, prev repository.PeriodTotals
		spends    []decimal.Decimal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cur, err = uc.analyticsRepo.GetPeriodTotals(gctx, w.DateRange)
		return err
	})
	if w.HasComparison() {
		g.Go(func() error {
			var err error
			prev, err = uc.analyticsRepo.GetPeriodTotals(gctx, *w.Compare)
			return err
		})
	}
	g.Go(func() error {
		var err error
		spends, err = uc.analyticsRepo.GetCustomerSpends(gctx, w.DateRange)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, reporting.StoreError("dashboard.GetMetrics", err)
	}

	has := w.HasComparison()
	orders := decimal.NewFromInt(cur.Orders)
	customers := decimal.NewFromInt(cur.Customers)

	return &dto.DashboardMetricsDTO{
		Period: reporting.Period(w),
		Revenue: triple(report.NewTriple(cur.Revenue.Round(2), prev.Revenue.Round(2), has),
			format.Currency(cur.Revenue, false)),
		Orders: triple(report.NewTriple(orders, decimal.NewFromInt(prev.Orders), has),
			format.Number(orders, 0)),
		AverageOrderValue: triple(report.NewTriple(
			report.AverageOrderValue(cur.Revenue, cur.Orders),
			report.AverageOrderValue(prev.Revenue, prev.Orders), has),
			format.Currency(report.AverageOrderValue(cur.Revenue, cur.Orders), true)),
		ActiveCustomers: triple(report.NewTriple(customers, decimal.NewFromInt(prev.Customers), has),
			format.Number(customers, 0)),
		UnitsSold: triple(report.NewTriple(cur.Units, prev.Units, has),
			format.Number(cur.Units, 0)),
		CustomersTo50Percent: report.CustomersTo50(spends),
		CustomersTo80Percent: report.CustomersTo80(spends),
	}, nil
}

func (uc *DashboardUseCase) window(raw map[string][]string) report.Window {
	f := report.NormalizeFilters(raw, report.FilterOptions{DefaultPeriod: uc.settings.DefaultPeriod})
	return report.ResolvePeriodAt(f.Period, uc.settings.Now())
}

func triple(t report.Triple, display string) dto.MetricTripleDTO {
	out := dto.MetricTripleDTO{
		Current:       t.Current,
		Previous:      t.Previous,
		ChangePct:     t.ChangePct,
		Display:       display,
		ChangeDisplay: format.NotAvailable,
	}
	if t.ChangePct != nil {
		out.ChangeDisplay = format.SignedPercent(*t.ChangePct, 1)
	}
	return out
}
