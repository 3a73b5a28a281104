package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tablero-api/internal/domain/entity"
)

// CustomerRow fila del listado de clientes. Los agregados respetan la ventana del listado.
type CustomerRow struct {
	ID            string
	Name          string
	CompanyName   *string
	PrimaryEmail  *string
	PrimaryPhone  *string
	OrderCount    int64
	TotalSpent    decimal.Decimal
	LastOrderDate *time.Time
}

// CustomerRepository puerto de lectura de clientes.
type CustomerRepository interface {
	List(ctx context.Context, q ListQuery) (*Page[CustomerRow], error)
	// GetByID devuelve el cliente con todos sus correos y teléfonos; domain.ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
}
