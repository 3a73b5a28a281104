package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tablero-api/internal/application/dto"
	"github.com/jhoicas/Tablero-api/internal/application/reporting"
	"github.com/jhoicas/Tablero-api/internal/domain"
	"github.com/jhoicas/Tablero-api/internal/domain/report"
	"github.com/jhoicas/Tablero-api/internal/domain/repository"
)

// idealStockFactor stock ideal = punto de reorden × 1.5.
var idealStockFactor = decimal.NewFromFloat(1.5)

var reorderFilterOptions = report.FilterOptions{
	SortColumns: []report.SortColumn{
		{Name: "shortfall", DefaultDirection: report.Desc},
		{Name: "daysOfCover", DefaultDirection: report.Asc},
		{Name: "code", DefaultDirection: report.Asc},
		{Name: "name", DefaultDirection: report.Asc},
	},
	DefaultSort:   "shortfall",
	Flags:         []string{report.FlagBelowReorderOnly},
	DefaultPeriod: report.Period90d,
}

// ReorderUseCase plan de reposición a partir de la última foto de inventario de cada producto.
type ReorderUseCase struct {
	inventoryRepo repository.InventoryRepository
	pdfGen        ReorderPDFGenerator
	settings      reporting.Settings
}

// NewReorderUseCase construye el caso de uso. pdfGen puede ser nil si no se expone el PDF.
func NewReorderUseCase(
	inventoryRepo repository.InventoryRepository,
	pdfGen ReorderPDFGenerator,
	settings reporting.Settings,
) *ReorderUseCase {
	return &ReorderUseCase{
		inventoryRepo: inventoryRepo,
		pdfGen:        pdfGen,
		settings:      settings,
	}
}

// GetPlan página del plan con la cantidad sugerida de pedido y la prioridad de cada producto.
// El consumo diario se mide sobre el período (90d por defecto); "all" se trata como 90d.
func (uc *ReorderUseCase) GetPlan(ctx context.Context, raw map[string][]string) (*dto.ReorderPlanDTO, error) {
	lq := uc.settings.ListQuery(raw, uc.settings.Options(true, reorderFilterOptions))
	if lq.Window.IsAllTime() {
		lq.Window = report.ResolvePeriodAt(report.Period90d, uc.settings.Now())
	}

	page, err := uc.inventoryRepo.ListReorder(ctx, lq)
	if err != nil {
		return nil, reporting.StoreError("reorder.GetPlan", err)
	}

	items := make([]dto.ReorderItemDTO, 0, len(page.Rows))
	for i, row := range page.Rows {
		ideal := row.ReorderPoint.Mul(idealStockFactor)
		items = append(items, dto.ReorderItemDTO{
			Priority:          lq.Filters.Offset() + i + 1,
			ProductCode:       row.ProductCode,
			ProductName:       row.Name,
			Family:            row.Family,
			Status:            reorderStatus(row.Available, row.ReorderPoint),
			QtyOnHand:         row.QtyOnHand,
			QtyOnOrder:        row.QtyOnOrder,
			QtyCommitted:      row.QtyCommitted,
			Available:         row.Available,
			ReorderPoint:      row.ReorderPoint,
			IdealStock:        ideal,
			Shortfall:         row.Shortfall,
			AvgDailyUsage:     row.AvgDailyUsage,
			DaysOfCover:       row.DaysOfCover,
			UnitsPerPackage:   row.UnitsPerPackage,
			SuggestedOrderQty: SuggestedOrderQty(ideal, row.Available, row.UnitsPerPackage),
			SnapshotDate:      row.SnapshotDate.Format(time.DateOnly),
		})
	}

	return &dto.ReorderPlanDTO{
		Period:       reporting.Period(lq.Window),
		ListResponse: reporting.Page(items, page.TotalCount, lq.Filters),
	}, nil
}

// GetPlanPDF genera el PDF de la misma página del plan.
func (uc *ReorderUseCase) GetPlanPDF(ctx context.Context, raw map[string][]string) ([]byte, error) {
	if uc.pdfGen == nil {
		return nil, fmt.Errorf("reorder.GetPlanPDF: generador no configurado")
	}
	plan, err := uc.GetPlan(ctx, raw)
	if err != nil {
		return nil, err
	}
	b, err := uc.pdfGen.GenerateReorderPlan(plan)
	if err != nil {
		return nil, fmt.Errorf("reorder.GetPlanPDF: %w", err)
	}
	return b, nil
}

// ListSnapshots fotos diarias del producto en el período pedido (30d por defecto).
func (uc *ReorderUseCase) ListSnapshots(ctx context.Context, code string, raw map[string][]string) ([]dto.SnapshotDTO, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("inventory.ListSnapshots: %w", domain.ErrNotFound)
	}
	f := report.NormalizeFilters(raw, report.FilterOptions{DefaultPeriod: uc.settings.DefaultPeriod})
	w := report.ResolvePeriodAt(f.Period, uc.settings.Now())

	snaps, err := uc.inventoryRepo.ListSnapshots(ctx, code, w.DateRange)
	if err != nil {
		return nil, reporting.StoreError("inventory.ListSnapshots", err)
	}
	out := make([]dto.SnapshotDTO, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, dto.SnapshotDTO{
			SnapshotDate: s.SnapshotDate.Format(time.DateOnly),
			QtyOnHand:    s.QtyOnHand,
			QtyOnOrder:   s.QtyOnOrder,
			QtyCommitted: s.QtyCommitted,
			QtyChange:    s.QtyChange,
			Available:    s.Available(),
		})
	}
	return out, nil
}

// SuggestedOrderQty max(0, ideal - available) redondeado hacia arriba a paquetes completos.
func SuggestedOrderQty(ideal, available decimal.Decimal, unitsPerPackage int) decimal.Decimal {
	qty := ideal.Sub(available)
	if !qty.IsPositive() {
		return decimal.Zero
	}
	if unitsPerPackage <= 1 {
		return qty.Ceil()
	}
	pkg := decimal.NewFromInt(int64(unitsPerPackage))
	return qty.Div(pkg).Ceil().Mul(pkg)
}

func reorderStatus(available, reorderPoint decimal.Decimal) string {
	switch {
	case !available.IsPositive():
		return dto.ReorderStatusCritical
	case reorderPoint.IsPositive() && available.LessThanOrEqual(reorderPoint):
		return dto.ReorderStatusReorder
	default:
		return dto.ReorderStatusOK
	}
}
