package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tablero-api/internal/application/dto"
	"github.com/jhoicas/Tablero-api/internal/application/reporting"
	"github.com/jhoicas/Tablero-api/internal/domain"
	"github.com/jhoicas/Tablero-api/internal/domain/entity"
	"github.com/jhoicas/Tablero-api/internal/domain/report"
	"github.com/jhoicas/Tablero-api/internal/domain/repository"
	"github.com/jhoicas/Tablero-api/pkg/format"
)

// ParamBoundaries límites de los buckets de una distribución ("0,10,50").
const ParamBoundaries = "boundaries"

const (
	metricPrice  = "price"
	metricMargin = "margin"
)

var (
	defaultPriceBoundaries  = decimals(0, 10, 25, 50, 100, 250, 500, 1000)
	defaultMarginBoundaries = decimals(0, 10, 20, 30, 40, 50, 60, 100)
)

var productFilterOptions = report.FilterOptions{
	SortColumns: []report.SortColumn{
		{Name: "code", DefaultDirection: report.Asc},
		{Name: "name", DefaultDirection: report.Asc},
		{Name: "family", DefaultDirection: report.Asc},
		{Name: "cost", DefaultDirection: report.Desc},
		{Name: "listPrice", DefaultDirection: report.Desc},
		{Name: "qtyOnHand", DefaultDirection: report.Desc},
	},
	DefaultSort:   "code",
	Flags:         []string{report.FlagMissingPricing},
	DefaultPeriod: report.PeriodAll,
}

// ProductUseCase catálogo de productos: listado, ficha, historial de precios y distribuciones.
type ProductUseCase struct {
	repo        repository.ProductRepository
	historyRepo repository.PriceHistoryRepository
	settings    reporting.Settings
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	historyRepo repository.PriceHistoryRepository,
	settings reporting.Settings,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, historyRepo: historyRepo, settings: settings}
}

// List listado paginado de productos con margen calculado.
func (uc *ProductUseCase) List(ctx context.Context, raw map[string][]string) (*dto.ListResponse[dto.ProductRowDTO], error) {
	lq := uc.settings.ListQuery(raw, uc.settings.Options(false, productFilterOptions))

	page, err := uc.repo.List(ctx, lq)
	if err != nil {
		return nil, reporting.StoreError("products.List", err)
	}

	rows := make([]dto.ProductRowDTO, 0, len(page.Rows))
	for _, p := range page.Rows {
		margin := report.MarginPercent(p.ListPrice, p.Cost)
		row := dto.ProductRowDTO{
			ProductCode:      p.ProductCode,
			Name:             p.Name,
			Family:           p.Family,
			MaterialType:     p.MaterialType,
			Cost:             p.Cost,
			CostDisplay:      optionalCurrency(p.Cost),
			ListPrice:        p.ListPrice,
			ListPriceDisplay: optionalCurrency(p.ListPrice),
			MarginPct:        margin,
			MarginDisplay:    format.Percent(margin, 1),
			UnitsPerPackage:  p.UnitsPerPackage,
			QtyOnHand:        p.QtyOnHand,
		}
		if p.SnapshotDate != nil {
			d := p.SnapshotDate.Format(time.DateOnly)
			row.SnapshotDate = &d
		}
		rows = append(rows, row)
	}
	resp := reporting.Page(rows, page.TotalCount, lq.Filters)
	return &resp, nil
}

// Get ficha del producto.
func (uc *ProductUseCase) Get(ctx context.Context, code string) (*dto.ProductDetailDTO, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("products.Get: %w", domain.ErrNotFound)
	}
	p, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, reporting.StoreError("products.Get", err)
	}
	return toProductDetail(p), nil
}

// PriceHistory historial de precios del producto, vigencia más reciente primero.
func (uc *ProductUseCase) PriceHistory(ctx context.Context, code string) ([]dto.PriceHistoryDTO, error) {
	if _, err := uc.Get(ctx, code); err != nil {
		return nil, err
	}
	hist, err := uc.historyRepo.ListByProduct(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, reporting.StoreError("products.PriceHistory", err)
	}
	out := make([]dto.PriceHistoryDTO, 0, len(hist))
	for i := range hist {
		out = append(out, toPriceHistoryDTO(&hist[i]))
	}
	return out, nil
}

// PriceAt precio vigente en una fecha (YYYY-MM-DD; vacío = hoy).
func (uc *ProductUseCase) PriceAt(ctx context.Context, code, date string) (*dto.PriceHistoryDTO, error) {
	at := uc.settings.Now()
	if s := strings.TrimSpace(date); s != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, s, at.Location())
		if err != nil {
			return nil, fmt.Errorf("products.PriceAt: fecha %q: %w", s, domain.ErrInvalidInput)
		}
		at = parsed
	}
	h, err := uc.historyRepo.PriceAt(ctx, strings.TrimSpace(code), at)
	if err != nil {
		return nil, reporting.StoreError("products.PriceAt", err)
	}
	out := toPriceHistoryDTO(h)
	return &out, nil
}

// PriceDistribution reparte los precios de lista conocidos en buckets.
func (uc *ProductUseCase) PriceDistribution(ctx context.Context, raw map[string][]string) (*dto.DistributionDTO, error) {
	pricing, err := uc.repo.ListPricing(ctx)
	if err != nil {
		return nil, reporting.StoreError("products.PriceDistribution", err)
	}
	values := make([]decimal.Decimal, 0, len(pricing))
	unknown := 0
	for _, p := range pricing {
		if p.ListPrice == nil {
			unknown++
			continue
		}
		values = append(values, *p.ListPrice)
	}
	bounds := parseBoundaries(report.First(raw, ParamBoundaries), defaultPriceBoundaries)
	return toDistributionDTO(metricPrice, report.Distribute(values, bounds), unknown, priceLabel), nil
}

// MarginDistribution reparte los márgenes calculables en buckets; sin margen cuenta como desconocido.
func (uc *ProductUseCase) MarginDistribution(ctx context.Context, raw map[string][]string) (*dto.DistributionDTO, error) {
	pricing, err := uc.repo.ListPricing(ctx)
	if err != nil {
		return nil, reporting.StoreError("products.MarginDistribution", err)
	}
	values := make([]decimal.Decimal, 0, len(pricing))
	unknown := 0
	for _, p := range pricing {
		m := report.MarginPercent(p.ListPrice, p.Cost)
		if m == nil {
			unknown++
			continue
		}
		values = append(values, *m)
	}
	bounds := parseBoundaries(report.First(raw, ParamBoundaries), defaultMarginBoundaries)
	return toDistributionDTO(metricMargin, report.Distribute(values, bounds), unknown, marginLabel), nil
}

func toProductDetail(p *entity.Product) *dto.ProductDetailDTO {
	margin := report.MarginPercent(p.ListPrice, p.Cost)
	return &dto.ProductDetailDTO{
		ProductCode:     p.ProductCode,
		Name:            p.Name,
		Description:     p.Description,
		Family:          p.Family,
		MaterialType:    p.MaterialType,
		Cost:            p.Cost,
		ListPrice:       p.ListPrice,
		MarginPct:       margin,
		MarginDisplay:   format.Percent(margin, 1),
		UnitsPerPackage: p.UnitsPerPackage,
		ReorderPoint:    p.ReorderPoint,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toPriceHistoryDTO(h *entity.ProductPriceHistory) dto.PriceHistoryDTO {
	return dto.PriceHistoryDTO{
		ID:            h.ID,
		ProductCode:   h.ProductCode,
		Cost:          h.Cost,
		ListPrice:     h.ListPrice,
		MarginPct:     report.MarginPercent(h.ListPrice, h.Cost),
		EffectiveDate: h.EffectiveDate.Format(time.DateOnly),
		Notes:         h.Notes,
		CreatedAt:     h.CreatedAt,
	}
}

func toDistributionDTO(metric string, d report.Distribution, unknown int, label func(report.Bucket) string) *dto.DistributionDTO {
	out := &dto.DistributionDTO{
		Metric:  metric,
		Total:   d.Total,
		Unknown: unknown,
		Buckets: make([]dto.BucketDTO, 0, len(d.Buckets)),
	}
	for _, b := range d.Buckets {
		out.Buckets = append(out.Buckets, dto.BucketDTO{
			Label:          label(b),
			Lower:          b.Lower,
			Upper:          b.Upper,
			UpperInclusive: b.UpperInclusive,
			Count:          b.Count,
			Percent:        b.Percent,
		})
	}
	return out
}

func priceLabel(b report.Bucket) string {
	return format.Currency(b.Lower, false) + " - " + format.Currency(b.Upper, false)
}

func marginLabel(b report.Bucket) string {
	lo, hi := b.Lower, b.Upper
	return format.Percent(&lo, 0) + " - " + format.Percent(&hi, 0)
}

// parseBoundaries lee "0,10,50"; con menos de dos valores válidos usa def.
func parseBoundaries(s string, def []decimal.Decimal) []decimal.Decimal {
	if strings.TrimSpace(s) == "" {
		return def
	}
	out := make([]decimal.Decimal, 0, 8)
	for _, part := range strings.Split(s, ",") {
		d, err := decimal.NewFromString(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		out = append(out, d)
	}
	if len(out) < 2 {
		return def
	}
	return out
}

func optionalCurrency(v *decimal.Decimal) string {
	if v == nil {
		return format.NotAvailable
	}
	return format.Currency(*v, true)
}

func decimals(vs ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(vs))
	for i, v := range vs {
		out[i] = decimal.NewFromInt(v)
	}
	return out
}
