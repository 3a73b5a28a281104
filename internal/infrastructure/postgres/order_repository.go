package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tablero-api/internal/domain/entity"
	"github.com/jhoicas/Tablero-api/internal/domain/report"
	"github.com/jhoicas/Tablero-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

var orderSortColumns = map[string]string{
	"orderDate":   "o.order_date",
	"orderNumber": "o.order_number",
	"totalAmount": "o.total_amount",
	"customer":    "c.name",
	"status":      "o.status",
}

const orderListBase = `
	SELECT o.id, o.order_number, o.order_date, o.total_amount, o.status, o.payment_status, o.channel,
	       c.id, c.name, co.name, ce.email,
	       (SELECT COUNT(*) FROM order_line_items li WHERE li.order_id = o.id) AS item_count
	FROM orders o
	JOIN customers c             ON c.id = o.customer_id
	LEFT JOIN companies co       ON co.id = c.company_id
	LEFT JOIN customer_emails ce ON ce.customer_id = c.id AND ce.is_primary`

// OrderRepo lecturas de órdenes sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// List listado paginado de órdenes dentro de la ventana.
func (r *OrderRepo) List(ctx context.Context, lq repository.ListQuery) (*repository.Page[repository.OrderRow], error) {
	plan := listingPlan{
		base:          orderListBase,
		searchColumns: []string{"o.order_number", "c.name", "co.name", "ce.email"},
		sortColumns:   orderSortColumns,
		defaultSort:   "orderDate",
		tieBreaker:    "o.id",
	}

	f := lq.Filters
	b := &queryBuilder{}
	b.dateRange("o.order_date", lq.Window.DateRange)
	if f.FlagIs(report.FlagFilterConsumer) {
		b.excludeDomains(contactDomainExpr, lq.ConsumerDomains)
	}
	b.amountRange("o.total_amount", f)

	page, err := runListing(ctx, r.q, plan, b, f, func(rows pgx.Rows) (repository.OrderRow, error) {
		var o repository.OrderRow
		err := rows.Scan(&o.ID, &o.OrderNumber, &o.OrderDate, &o.TotalAmount, &o.Status, &o.PaymentStatus,
			&o.Channel, &o.CustomerID, &o.CustomerName, &o.CompanyName, &o.PrimaryEmail, &o.ItemCount)
		return o, err
	})
	if err != nil {
		return nil, fmt.Errorf("orders.List: %w", err)
	}
	return page, nil
}

// GetByID orden con sus líneas.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	const query = `
	SELECT id, order_number, order_date, total_amount, status, payment_status, channel, customer_id
	FROM orders WHERE id = $1`

	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(&o.ID, &o.OrderNumber, &o.OrderDate, &o.TotalAmount,
		&o.Status, &o.PaymentStatus, &o.Channel, &o.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("orders.GetByID: %w", notFound(err))
	}

	const itemsQuery = `
	SELECT id, order_id, product_code, quantity, unit_price, line_amount
	FROM order_line_items WHERE order_id = $1 ORDER BY product_code, id`

	rows, err := r.q.Query(ctx, itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("orders.GetByID items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderLineItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductCode, &it.Quantity, &it.UnitPrice, &it.LineAmount); err != nil {
			return nil, fmt.Errorf("orders.GetByID scan item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders.GetByID items: %w", err)
	}
	return &o, nil
}
