package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tablero-api/internal/domain/entity"
	"github.com/jhoicas/Tablero-api/internal/domain/report"
	"github.com/jhoicas/Tablero-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// contactDomainExpr dominio del cliente: el de su empresa o, si no tiene, el de su correo primario.
const contactDomainExpr = "COALESCE(co.domain, split_part(ce.email, '@', 2))"

var customerSortColumns = map[string]string{
	"name":          "c.name",
	"company":       "co.name",
	"totalSpent":    "os.total_spent",
	"orderCount":    "os.order_count",
	"lastOrderDate": "os.last_order_date",
}

// CustomerRepo lecturas de clientes sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// List listado paginado de clientes con gasto, órdenes y última compra dentro de la ventana.
func (r *CustomerRepo) List(ctx context.Context, lq repository.ListQuery) (*repository.Page[repository.CustomerRow], error) {
	b := &queryBuilder{}
	window := b.rangeCond("o.order_date", lq.Window.DateRange)

	plan := listingPlan{
		base: `
	SELECT c.id, c.name, co.name, ce.email, cp.phone,
	       os.order_count, os.total_spent, os.last_order_date
	FROM customers c
	LEFT JOIN companies co       ON co.id = c.company_id
	LEFT JOIN customer_emails ce ON ce.customer_id = c.id AND ce.is_primary
	LEFT JOIN customer_phones cp ON cp.customer_id = c.id AND cp.is_primary
	LEFT JOIN LATERAL (
	    SELECT COUNT(o.id)                      AS order_count,
	           COALESCE(SUM(o.total_amount), 0) AS total_spent,
	           MAX(o.order_date)                AS last_order_date
	    FROM orders o
	    WHERE o.customer_id = c.id AND ` + window + `
	) os ON TRUE`,
		searchColumns: []string{"c.name", "co.name", "ce.email"},
		sortColumns:   customerSortColumns,
		defaultSort:   "totalSpent",
		tieBreaker:    "c.id",
	}

	f := lq.Filters
	if f.FlagIs(report.FlagFilterConsumer) {
		b.excludeDomains(contactDomainExpr, lq.ConsumerDomains)
	}
	b.flag(f.Flag(report.FlagEmailMarketable), "c.email_marketable", "NOT c.email_marketable")
	b.amountRange("os.total_spent", f)

	page, err := runListing(ctx, r.q, plan, b, f, func(rows pgx.Rows) (repository.CustomerRow, error) {
		var row repository.CustomerRow
		err := rows.Scan(&row.ID, &row.Name, &row.CompanyName, &row.PrimaryEmail, &row.PrimaryPhone,
			&row.OrderCount, &row.TotalSpent, &row.LastOrderDate)
		return row, err
	})
	if err != nil {
		return nil, fmt.Errorf("customers.List: %w", err)
	}
	return page, nil
}

// GetByID cliente con todos sus correos y teléfonos (primario primero).
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	const query = `
	SELECT id, name, company_id, email_marketable, created_at
	FROM customers WHERE id = $1`

	var c entity.Customer
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.CompanyID, &c.EmailMarketable, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("customers.GetByID: %w", notFound(err))
	}

	rows, err := r.q.Query(ctx, `
	SELECT email, is_primary FROM customer_emails
	WHERE customer_id = $1 ORDER BY is_primary DESC, email`, id)
	if err != nil {
		return nil, fmt.Errorf("customers.GetByID emails: %w", err)
	}
	c.Emails, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.ContactEmail, error) {
		var e entity.ContactEmail
		err := row.Scan(&e.Email, &e.IsPrimary)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("customers.GetByID emails: %w", err)
	}

	rows, err = r.q.Query(ctx, `
	SELECT phone, is_primary FROM customer_phones
	WHERE customer_id = $1 ORDER BY is_primary DESC, phone`, id)
	if err != nil {
		return nil, fmt.Errorf("customers.GetByID phones: %w", err)
	}
	c.Phones, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.ContactPhone, error) {
		var p entity.ContactPhone
		err := row.Scan(&p.Phone, &p.IsPrimary)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("customers.GetByID phones: %w", err)
	}
	return &c, nil
}
