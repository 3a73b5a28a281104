package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tablero-api/internal/domain/entity"
)

// ProductRow fila del listado de productos. QtyOnHand sale de la última foto de inventario.
type ProductRow struct {
	ProductCode     string
	Name            string
	Family          string
	MaterialType    string
	Cost            *decimal.Decimal
	ListPrice       *decimal.Decimal
	UnitsPerPackage int
	QtyOnHand       *decimal.Decimal
	SnapshotDate    *time.Time
}

// ProductPricing par costo / precio de lista de un producto (para distribuciones).
type ProductPricing struct {
	ProductCode string
	Cost        *decimal.Decimal
	ListPrice   *decimal.Decimal
}

// ProductRepository puerto de persistencia de productos (usable con pool o tx).
type ProductRepository interface {
	List(ctx context.Context, q ListQuery) (*Page[ProductRow], error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE); solo tiene efecto dentro de una tx.
	GetForUpdate(ctx context.Context, code string) (*entity.Product, error)
	UpdatePricing(ctx context.Context, code string, cost, listPrice *decimal.Decimal) error
	ListPricing(ctx context.Context) ([]ProductPricing, error)
}

// PriceHistoryRepository historial de precios (solo inserción).
type PriceHistoryRepository interface {
	Append(ctx context.Context, h *entity.ProductPriceHistory) error
	ListByProduct(ctx context.Context, code string) ([]entity.ProductPriceHistory, error)
	// PriceAt devuelve la fila vigente en la fecha civil de date (effective_date <= date más reciente);
	// domain.ErrNotFound si no hay ninguna.
	PriceAt(ctx context.Context, code string, date time.Time) (*entity.ProductPriceHistory, error)
}
