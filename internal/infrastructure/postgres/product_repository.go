package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tablero-api/internal/domain"
	"github.com/jhoicas/Tablero-api/internal/domain/entity"
	"github.com/jhoicas/Tablero-api/internal/domain/report"
	"github.com/jhoicas/Tablero-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

var productSortColumns = map[string]string{
	"code":      "p.product_code",
	"name":      "p.name",
	"family":    "p.family",
	"cost":      "p.cost",
	"listPrice": "p.list_price",
	"qtyOnHand": "s.qty_on_hand",
}

const productListBase = `
	SELECT p.product_code, p.name, p.family, p.material_type, p.cost, p.list_price,
	       p.units_per_package, s.qty_on_hand, s.snapshot_date
	FROM products p
	LEFT JOIN LATERAL (
	    SELECT qty_on_hand, snapshot_date
	    FROM inventory_snapshots
	    WHERE product_code = p.product_code
	    ORDER BY snapshot_date DESC
	    LIMIT 1
	) s ON TRUE`

const productColumns = `product_code, name, description, material_type, family, cost, list_price,
	       units_per_package, reorder_point, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// List listado paginado de productos con la existencia de la última foto de inventario.
func (r *ProductRepo) List(ctx context.Context, lq repository.ListQuery) (*repository.Page[repository.ProductRow], error) {
	plan := listingPlan{
		base:          productListBase,
		searchColumns: []string{"p.product_code", "p.name", "p.description"},
		sortColumns:   productSortColumns,
		defaultSort:   "code",
		tieBreaker:    "p.product_code",
	}

	f := lq.Filters
	b := &queryBuilder{}
	b.flag(f.Flag(report.FlagMissingPricing),
		"(p.cost IS NULL OR p.list_price IS NULL)",
		"(p.cost IS NOT NULL AND p.list_price IS NOT NULL)")
	b.amountRange("p.list_price", f)

	page, err := runListing(ctx, r.q, plan, b, f, func(rows pgx.Rows) (repository.ProductRow, error) {
		var (
			p               repository.ProductRow
			cost, listPrice decimal.NullDecimal
			onHand          decimal.NullDecimal
		)
		err := rows.Scan(&p.ProductCode, &p.Name, &p.Family, &p.MaterialType, &cost, &listPrice,
			&p.UnitsPerPackage, &onHand, &p.SnapshotDate)
		p.Cost, p.ListPrice, p.QtyOnHand = decimalPtr(cost), decimalPtr(listPrice), decimalPtr(onHand)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("products.List: %w", err)
	}
	return page, nil
}

// GetByCode obtiene un producto por su código.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	p, err := r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE product_code = $1`, code)
	if err != nil {
		return nil, fmt.Errorf("products.GetByCode: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto bloqueando la fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, code string) (*entity.Product, error) {
	p, err := r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE product_code = $1 FOR UPDATE`, code)
	if err != nil {
		return nil, fmt.Errorf("products.GetForUpdate: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) getOne(ctx context.Context, query, code string) (*entity.Product, error) {
	var (
		p               entity.Product
		cost, listPrice decimal.NullDecimal
	)
	err := r.q.QueryRow(ctx, query, code).Scan(&p.ProductCode, &p.Name, &p.Description, &p.MaterialType,
		&p.Family, &cost, &listPrice, &p.UnitsPerPackage, &p.ReorderPoint, &p.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	p.Cost, p.ListPrice = decimalPtr(cost), decimalPtr(listPrice)
	return &p, nil
}

// UpdatePricing fija costo y precio de lista (nil = desconocido).
func (r *ProductRepo) UpdatePricing(ctx context.Context, code string, cost, listPrice *decimal.Decimal) error {
	const query = `
	UPDATE products SET cost = $2, list_price = $3, updated_at = NOW()
	WHERE product_code = $1`

	tag, err := r.q.Exec(ctx, query, code, nullDecimal(cost), nullDecimal(listPrice))
	if err != nil {
		return fmt.Errorf("products.UpdatePricing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("products.UpdatePricing: %w", domain.ErrNotFound)
	}
	return nil
}

// ListPricing costo y precio de lista de todo el catálogo.
func (r *ProductRepo) ListPricing(ctx context.Context) ([]repository.ProductPricing, error) {
	const query = `SELECT product_code, cost, list_price FROM products ORDER BY product_code`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("products.ListPricing: %w", err)
	}
	defer rows.Close()

	var out []repository.ProductPricing
	for rows.Next() {
		var (
			p               repository.ProductPricing
			cost, listPrice decimal.NullDecimal
		)
		if err := rows.Scan(&p.ProductCode, &cost, &listPrice); err != nil {
			return nil, fmt.Errorf("products.ListPricing scan: %w", err)
		}
		p.Cost, p.ListPrice = decimalPtr(cost), decimalPtr(listPrice)
		out = append(out, p)
	}
	return out, rows.Err()
}
