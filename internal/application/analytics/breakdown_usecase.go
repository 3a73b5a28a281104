package analytics

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Tablero-api/internal/application/dto"
	"github.com/jhoicas/Tablero-api/internal/application/reporting"
	"github.com/jhoicas/Tablero-api/internal/domain"
	"github.com/jhoicas/Tablero-api/internal/domain/report"
	"github.com/jhoicas/Tablero-api/internal/domain/repository"
	"github.com/jhoicas/Tablero-api/pkg/format"
)

// ParamKey restringe el desglose a un solo grupo.
const ParamKey = "key"

// BreakdownUseCase desglose de ventas por canal, segmento, familia, material o empresa.
type BreakdownUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	settings      reporting.Settings
}

// NewBreakdownUseCase construye el caso de uso.
func NewBreakdownUseCase(analyticsRepo repository.AnalyticsRepository, settings reporting.Settings) *BreakdownUseCase {
	return &BreakdownUseCase{analyticsRepo: analyticsRepo, settings: settings}
}

// GetBreakdown agrega la ventana actual y la anterior por separado y las une por clave.
// Una dimensión desconocida es ErrNotFound; una clave inexistente devuelve grupos vacíos.
func (uc *BreakdownUseCase) GetBreakdown(ctx context.Context, dimension string, raw map[string][]string) (*dto.BreakdownDTO, error) {
	dim, ok := report.ParseDimension(dimension)
	if !ok {
		return nil, fmt.Errorf("breakdown: dimensión %q: %w", dimension, domain.ErrNotFound)
	}

	f := report.NormalizeFilters(raw, report.FilterOptions{
		Flags:         []string{report.FlagFilterConsumer},
		DefaultPeriod: uc.settings.DefaultPeriod,
	})
	w := report.ResolvePeriodAt(f.Period, uc.settings.Now())

	q := repository.BreakdownQuery{
		Dimension:       dim,
		Range:           w.DateRange,
		ConsumerDomains: uc.settings.ConsumerDomains,
		ExcludeConsumer: f.FlagIs(report.FlagFilterConsumer),
	}
	if key := strings.TrimSpace(report.First(raw, ParamKey)); key != "" {
		q.Key = &key
	}

	var cur, prev []report.GroupTotals
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cur, err = uc.analyticsRepo.GetGroupTotals(gctx, q)
		return err
	})
	if w.HasComparison() {
		pq := q
		pq.Range = *w.Compare
		g.Go(func() error {
			var err error
			prev, err = uc.analyticsRepo.GetGroupTotals(gctx, pq)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, reporting.StoreError("breakdown."+string(dim), err)
	}

	joined := report.JoinGroups(cur, prev)
	total := decimal.Zero
	for _, gc := range joined {
		total = total.Add(gc.Current.Revenue)
	}

	groups := make([]dto.GroupBreakdownDTO, 0, len(joined))
	for _, gc := range joined {
		item := dto.GroupBreakdownDTO{
			GroupKey:        gc.Key,
			Current:         groupTotals(gc.Current),
			RevenueSharePct: report.Share(gc.Current.Revenue, total),
		}
		if w.HasComparison() {
			p := groupTotals(gc.Previous)
			change := gc.RevenueChangePct
			item.Previous, item.RevenueChangePct = &p, &change
		}
		groups = append(groups, item)
	}

	return &dto.BreakdownDTO{
		Dimension: string(dim),
		Period:    reporting.Period(w),
		Groups:    groups,
	}, nil
}

func groupTotals(t report.GroupTotals) dto.GroupTotalsDTO {
	return dto.GroupTotalsDTO{
		Revenue:        t.Revenue.Round(2),
		RevenueDisplay: format.Currency(t.Revenue, false),
		Quantity:       t.Quantity,
		Orders:         t.Orders,
		Customers:      t.Customers,
	}
}
