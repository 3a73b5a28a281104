package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tablero-api/internal/domain/entity"
)

// OrderRow fila del listado de órdenes.
type OrderRow struct {
	ID            string
	OrderNumber   string
	OrderDate     time.Time
	TotalAmount   decimal.Decimal
	Status        string
	PaymentStatus string
	Channel       string
	CustomerID    string
	CustomerName  string
	CompanyName   *string
	PrimaryEmail  *string
	ItemCount     int64
}

// OrderRepository puerto de lectura de órdenes.
type OrderRepository interface {
	List(ctx context.Context, q ListQuery) (*Page[OrderRow], error)
	// GetByID devuelve la orden con sus líneas; domain.ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*entity.Order, error)
}
