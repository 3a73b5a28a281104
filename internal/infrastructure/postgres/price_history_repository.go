package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tablero-api/internal/domain"
	"github.com/jhoicas/Tablero-api/internal/domain/entity"
	"github.com/jhoicas/Tablero-api/internal/domain/repository"
)

var _ repository.PriceHistoryRepository = (*PriceHistoryRepo)(nil)

const priceHistoryColumns = `id, product_code, cost, list_price, effective_date, notes, created_at`

// PriceHistoryRepo historial de precios (append-only) sobre PostgreSQL.
type PriceHistoryRepo struct {
	q Querier
}

// NewPriceHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceHistoryRepository(q Querier) *PriceHistoryRepo {
	return &PriceHistoryRepo{q: q}
}

// Append inserta una fila nueva; nunca modifica las existentes.
func (r *PriceHistoryRepo) Append(ctx context.Context, h *entity.ProductPriceHistory) error {
	const query = `
	INSERT INTO product_price_history (` + priceHistoryColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.q.Exec(ctx, query, h.ID, h.ProductCode, nullDecimal(h.Cost), nullDecimal(h.ListPrice),
		h.EffectiveDate, h.Notes, h.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("priceHistory.Append: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("priceHistory.Append: %w", err)
	}
	return nil
}

// ListByProduct historial del producto, más reciente primero.
func (r *PriceHistoryRepo) ListByProduct(ctx context.Context, code string) ([]entity.ProductPriceHistory, error) {
	const query = `
	SELECT ` + priceHistoryColumns + `
	FROM product_price_history
	WHERE product_code = $1
	ORDER BY effective_date DESC, created_at DESC`

	rows, err := r.q.Query(ctx, query, code)
	if err != nil {
		return nil, fmt.Errorf("priceHistory.ListByProduct: %w", err)
	}
	defer rows.Close()

	out := []entity.ProductPriceHistory{}
	for rows.Next() {
		h, err := scanPriceHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("priceHistory.ListByProduct scan: %w", err)
		}
		out = append(out, *h)
	}
	return out, rows.Err()
}

// PriceAt fila vigente en date: la de mayor effective_date <= date.
func (r *PriceHistoryRepo) PriceAt(ctx context.Context, code string, date time.Time) (*entity.ProductPriceHistory, error) {
	const query = `
	SELECT ` + priceHistoryColumns + `
	FROM product_price_history
	WHERE product_code = $1 AND effective_date <= $2::date
	ORDER BY effective_date DESC, created_at DESC
	LIMIT 1`

	// Fecha civil de date, sin zona horaria.
	h, err := scanPriceHistory(r.q.QueryRow(ctx, query, code, date.Format(time.DateOnly)))
	if err != nil {
		return nil, fmt.Errorf("priceHistory.PriceAt: %w", notFound(err))
	}
	return h, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPriceHistory(row rowScanner) (*entity.ProductPriceHistory, error) {
	var (
		h               entity.ProductPriceHistory
		cost, listPrice decimal.NullDecimal
	)
	if err := row.Scan(&h.ID, &h.ProductCode, &cost, &listPrice, &h.EffectiveDate, &h.Notes, &h.CreatedAt); err != nil {
		return nil, err
	}
	h.Cost, h.ListPrice = decimalPtr(cost), decimalPtr(listPrice)
	return &h, nil
}
