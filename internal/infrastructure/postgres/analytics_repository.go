package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tablero-api/internal/domain/report"
	"github.com/jhoicas/Tablero-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para tarjetas del tablero y desgloses.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetPeriodTotals ingresos, órdenes, clientes distintos y unidades de la ventana.
// COALESCE devuelve cero cuando no hay órdenes en el período.
func (r *AnalyticsRepo) GetPeriodTotals(ctx context.Context, rng report.DateRange) (repository.PeriodTotals, error) {
	b := &queryBuilder{}
	orderCond := b.rangeCond("o.order_date", rng)
	unitsCond := b.rangeCond("o2.order_date", rng)

	query := `
	SELECT
	    COALESCE(SUM(o.total_amount), 0),
	    COUNT(o.id),
	    COUNT(DISTINCT o.customer_id),
	    (SELECT COALESCE(SUM(li.quantity), 0)
	     FROM order_line_items li
	     JOIN orders o2 ON o2.id = li.order_id
	     WHERE ` + unitsCond + `)
	FROM orders o
	WHERE ` + orderCond

	var t repository.PeriodTotals
	if err := r.q.QueryRow(ctx, query, b.args...).Scan(&t.Revenue, &t.Orders, &t.Customers, &t.Units); err != nil {
		return repository.PeriodTotals{}, fmt.Errorf("analytics.GetPeriodTotals: %w", err)
	}
	return t, nil
}

// GetCustomerSpends gasto total de cada cliente con órdenes en la ventana.
func (r *AnalyticsRepo) GetCustomerSpends(ctx context.Context, rng report.DateRange) ([]decimal.Decimal, error) {
	b := &queryBuilder{}
	query := `
	SELECT SUM(o.total_amount)
	FROM orders o
	WHERE ` + b.rangeCond("o.order_date", rng) + `
	GROUP BY o.customer_id`

	rows, err := r.q.Query(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetCustomerSpends: %w", err)
	}
	defer rows.Close()

	var out []decimal.Decimal
	for rows.Next() {
		var s decimal.Decimal
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("analytics.GetCustomerSpends scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetGroupTotals ingresos y cantidades por grupo a partir de las líneas de orden.
// Un Key inexistente devuelve una lista vacía.
func (r *AnalyticsRepo) GetGroupTotals(ctx context.Context, q repository.BreakdownQuery) ([]report.GroupTotals, error) {
	query, args, err := breakdownSQL(q)
	if err != nil {
		return nil, err
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetGroupTotals(%s): %w", q.Dimension, err)
	}
	defer rows.Close()

	out := []report.GroupTotals{}
	for rows.Next() {
		var g report.GroupTotals
		if err := rows.Scan(&g.Key, &g.Revenue, &g.Quantity, &g.Orders, &g.Customers); err != nil {
			return nil, fmt.Errorf("analytics.GetGroupTotals scan: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// breakdownSQL arma la consulta agrupada para la dimensión pedida.
func breakdownSQL(q repository.BreakdownQuery) (string, []any, error) {
	b := &queryBuilder{}

	var keyExpr string
	switch q.Dimension {
	case report.DimensionChannel:
		keyExpr = "COALESCE(NULLIF(o.channel, ''), 'direct')"
	case report.DimensionSegment:
		keyExpr = "CASE WHEN co.id IS NULL OR LOWER(co.domain) = ANY(" + b.arg(q.ConsumerDomains) + ") " +
			"THEN '" + report.SegmentConsumer + "' ELSE '" + report.SegmentBusiness + "' END"
	case report.DimensionFamily:
		keyExpr = "COALESCE(NULLIF(p.family, ''), 'unknown')"
	case report.DimensionMaterial:
		keyExpr = "COALESCE(NULLIF(p.material_type, ''), 'unknown')"
	case report.DimensionCompany:
		keyExpr = "COALESCE(co.name, 'No company')"
	default:
		return "", nil, fmt.Errorf("analytics: dimensión no soportada %q", q.Dimension)
	}

	b.dateRange("o.order_date", q.Range)
	if q.Key != nil {
		b.where(keyExpr + " = " + b.arg(*q.Key))
	}
	if q.ExcludeConsumer {
		b.excludeDomains(contactDomainExpr, q.ConsumerDomains)
	}

	query := `
	SELECT ` + keyExpr + ` AS group_key,
	       COALESCE(SUM(li.line_amount), 0) AS revenue,
	       COALESCE(SUM(li.quantity), 0)    AS quantity,
	       COUNT(DISTINCT o.id)             AS orders,
	       COUNT(DISTINCT o.customer_id)    AS customers
	FROM orders o
	JOIN order_line_items li     ON li.order_id = o.id
	JOIN products p              ON p.product_code = li.product_code
	JOIN customers c             ON c.id = o.customer_id
	LEFT JOIN companies co       ON co.id = c.company_id
	LEFT JOIN customer_emails ce ON ce.customer_id = c.id AND ce.is_primary` +
		b.whereClause() + `
	GROUP BY 1
	ORDER BY revenue DESC, group_key ASC`
	return query, b.args, nil
}
