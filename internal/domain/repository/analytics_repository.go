package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tablero-api/internal/domain/report"
)

// PeriodTotals totales de ventas de una ventana.
type PeriodTotals struct {
	Revenue   decimal.Decimal // Σ total_amount
	Orders    int64
	Customers int64 // clientes distintos con al menos una orden
	Units     decimal.Decimal
}

// BreakdownQuery desglose por dimensión en una ventana. Key restringe a un solo grupo.
type BreakdownQuery struct {
	Dimension       report.Dimension
	Range           report.DateRange
	Key             *string
	ConsumerDomains []string
	ExcludeConsumer bool
}

// AnalyticsRepository consultas de solo lectura para tarjetas y desgloses.
// Un DateRange con Start cero no tiene cota inferior.
type AnalyticsRepository interface {
	GetPeriodTotals(ctx context.Context, r report.DateRange) (PeriodTotals, error)
	// GetCustomerSpends gasto total por cliente en la ventana (sin orden garantizado).
	GetCustomerSpends(ctx context.Context, r report.DateRange) ([]decimal.Decimal, error)
	GetGroupTotals(ctx context.Context, q BreakdownQuery) ([]report.GroupTotals, error)
}
