package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tablero-api/internal/domain/entity"
	"github.com/jhoicas/Tablero-api/internal/domain/report"
	"github.com/jhoicas/Tablero-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

var companySortColumns = map[string]string{
	"name":          "co.name",
	"domain":        "co.domain",
	"customerCount": "cc.customer_count",
	"totalRevenue":  "os.total_revenue",
	"lastOrderDate": "os.last_order_date",
}

const enrichedExpr = "(co.enrichment IS NOT NULL AND co.enrichment <> 'null'::jsonb)"

// CompanyRepo lecturas de empresas sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// List listado paginado de empresas con clientes, órdenes e ingresos dentro de la ventana.
func (r *CompanyRepo) List(ctx context.Context, lq repository.ListQuery) (*repository.Page[repository.CompanyRow], error) {
	b := &queryBuilder{}
	window := b.rangeCond("o.order_date", lq.Window.DateRange)

	plan := listingPlan{
		base: `
	SELECT co.id, co.name, co.domain, ` + enrichedExpr + ` AS enriched,
	       cc.customer_count, os.order_count, os.total_revenue, os.last_order_date
	FROM companies co
	LEFT JOIN LATERAL (
	    SELECT COUNT(*) AS customer_count FROM customers c WHERE c.company_id = co.id
	) cc ON TRUE
	LEFT JOIN LATERAL (
	    SELECT COUNT(o.id)                      AS order_count,
	           COALESCE(SUM(o.total_amount), 0) AS total_revenue,
	           MAX(o.order_date)                AS last_order_date
	    FROM customers c
	    JOIN orders o ON o.customer_id = c.id
	    WHERE c.company_id = co.id AND ` + window + `
	) os ON TRUE`,
		searchColumns: []string{"co.name", "co.domain"},
		sortColumns:   companySortColumns,
		defaultSort:   "totalRevenue",
		tieBreaker:    "co.id",
	}

	f := lq.Filters
	if f.FlagIs(report.FlagFilterConsumer) {
		b.excludeDomains("co.domain", lq.ConsumerDomains)
	}
	b.flag(f.Flag(report.FlagEnriched), enrichedExpr, "NOT "+enrichedExpr)
	b.amountRange("os.total_revenue", f)

	page, err := runListing(ctx, r.q, plan, b, f, func(rows pgx.Rows) (repository.CompanyRow, error) {
		var c repository.CompanyRow
		err := rows.Scan(&c.ID, &c.Name, &c.Domain, &c.Enriched, &c.CustomerCount,
			&c.OrderCount, &c.TotalRevenue, &c.LastOrderDate)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("companies.List: %w", err)
	}
	return page, nil
}

// GetByID empresa con su JSON de enriquecimiento.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	const query = `
	SELECT id, name, domain, enrichment, created_at
	FROM companies WHERE id = $1`

	var c entity.Company
	var enrichment []byte
	if err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Domain, &enrichment, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("companies.GetByID: %w", notFound(err))
	}
	c.Enrichment = enrichment
	return &c, nil
}
