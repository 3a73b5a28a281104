package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tablero-api/internal/domain/entity"
)

// CompanyRow fila del listado de empresas.
type CompanyRow struct {
	ID            string
	Name          string
	Domain        string
	Enriched      bool
	CustomerCount int64
	OrderCount    int64
	TotalRevenue  decimal.Decimal
	LastOrderDate *time.Time
}

// CompanyRepository puerto de lectura de empresas.
type CompanyRepository interface {
	List(ctx context.Context, q ListQuery) (*Page[CompanyRow], error)
	GetByID(ctx context.Context, id string) (*entity.Company, error)
}
