package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tablero-api/internal/domain/entity"
	"github.com/jhoicas/Tablero-api/internal/domain/report"
	"github.com/jhoicas/Tablero-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

var reorderSortColumns = map[string]string{
	"shortfall":   "r.shortfall",
	"daysOfCover": "r.days_of_cover",
	"code":        "p.product_code",
	"name":        "p.name",
}

// InventoryRepo lecturas de fotos de inventario sobre PostgreSQL.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// usageDays divisor del consumo diario: días calendario de la ventana (90d cubre 91 días).
func usageDays(r report.DateRange) int {
	return max(r.CalendarDays(), 1)
}

// ListReorder situación de reposición por producto tomando su última foto de inventario.
// El consumo diario promedio se calcula sobre la ventana del listado.
func (r *InventoryRepo) ListReorder(ctx context.Context, lq repository.ListQuery) (*repository.Page[repository.ReorderRow], error) {
	b := &queryBuilder{}
	usage := b.rangeCond("o.order_date", lq.Window.DateRange)
	daysArg := b.arg(usageDays(lq.Window.DateRange))

	plan := listingPlan{
		base: `
	SELECT p.product_code, p.name, p.family, p.units_per_package, p.reorder_point,
	       s.qty_on_hand, s.qty_on_order, s.qty_committed,
	       r.available, u.avg_daily_usage, r.days_of_cover, r.shortfall, s.snapshot_date
	FROM products p
	JOIN LATERAL (
	    SELECT qty_on_hand, qty_on_order, qty_committed, snapshot_date
	    FROM inventory_snapshots
	    WHERE product_code = p.product_code
	    ORDER BY snapshot_date DESC
	    LIMIT 1
	) s ON TRUE
	LEFT JOIN LATERAL (
	    SELECT ROUND(COALESCE(SUM(li.quantity), 0) / ` + daysArg + `::int, 4) AS avg_daily_usage
	    FROM order_line_items li
	    JOIN orders o ON o.id = li.order_id
	    WHERE li.product_code = p.product_code AND ` + usage + `
	) u ON TRUE
	CROSS JOIN LATERAL (
	    SELECT s.qty_on_hand + s.qty_on_order - s.qty_committed                   AS available,
	           p.reorder_point - (s.qty_on_hand + s.qty_on_order - s.qty_committed) AS shortfall,
	           CASE WHEN u.avg_daily_usage > 0
	                THEN ROUND((s.qty_on_hand + s.qty_on_order - s.qty_committed) / u.avg_daily_usage, 1)
	           END                                                                  AS days_of_cover
	) r`,
		searchColumns: []string{"p.product_code", "p.name"},
		sortColumns:   reorderSortColumns,
		defaultSort:   "shortfall",
		tieBreaker:    "p.product_code",
	}

	f := lq.Filters
	if f.FlagIs(report.FlagBelowReorderOnly) {
		b.where("(p.reorder_point > 0 AND r.available <= p.reorder_point)")
	}

	page, err := runListing(ctx, r.q, plan, b, f, func(rows pgx.Rows) (repository.ReorderRow, error) {
		var (
			row   repository.ReorderRow
			cover decimal.NullDecimal
		)
		err := rows.Scan(&row.ProductCode, &row.Name, &row.Family, &row.UnitsPerPackage, &row.ReorderPoint,
			&row.QtyOnHand, &row.QtyOnOrder, &row.QtyCommitted, &row.Available, &row.AvgDailyUsage,
			&cover, &row.Shortfall, &row.SnapshotDate)
		row.DaysOfCover = decimalPtr(cover)
		return row, err
	})
	if err != nil {
		return nil, fmt.Errorf("inventory.ListReorder: %w", err)
	}
	return page, nil
}

// ListSnapshots fotos del producto dentro de la ventana, más reciente primero.
func (r *InventoryRepo) ListSnapshots(ctx context.Context, code string, rng report.DateRange) ([]entity.InventorySnapshot, error) {
	b := &queryBuilder{}
	b.where("product_code = " + b.arg(code))
	b.dateRange("snapshot_date", rng)

	query := `
	SELECT product_code, snapshot_date, qty_on_hand, qty_on_order, qty_committed, qty_change
	FROM inventory_snapshots` + b.whereClause() + `
	ORDER BY snapshot_date DESC`

	rows, err := r.q.Query(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("inventory.ListSnapshots: %w", err)
	}
	defer rows.Close()

	out := []entity.InventorySnapshot{}
	for rows.Next() {
		var s entity.InventorySnapshot
		if err := rows.Scan(&s.ProductCode, &s.SnapshotDate, &s.QtyOnHand, &s.QtyOnOrder, &s.QtyCommitted, &s.QtyChange); err != nil {
			return nil, fmt.Errorf("inventory.ListSnapshots scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
