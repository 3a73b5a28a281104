package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tablero-api/internal/domain/entity"
	"github.com/jhoicas/Tablero-api/internal/domain/report"
)

// ReorderRow situación de reposición de un producto a partir de su última foto de inventario.
type ReorderRow struct {
	ProductCode     string
	Name            string
	Family          string
	UnitsPerPackage int
	ReorderPoint    decimal.Decimal
	QtyOnHand       decimal.Decimal
	QtyOnOrder      decimal.Decimal
	QtyCommitted    decimal.Decimal
	Available       decimal.Decimal
	AvgDailyUsage   decimal.Decimal  // unidades vendidas / día en los últimos 90 días
	DaysOfCover     *decimal.Decimal // nil si no hubo consumo
	Shortfall       decimal.Decimal  // reorder_point - available (puede ser negativo)
	SnapshotDate    time.Time
}

// InventoryRepository lecturas de inventario para el plan de reposición.
type InventoryRepository interface {
	ListReorder(ctx context.Context, q ListQuery) (*Page[ReorderRow], error)
	ListSnapshots(ctx context.Context, code string, r report.DateRange) ([]entity.InventorySnapshot, error)
}
