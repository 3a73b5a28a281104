package dto

import "github.com/shopspring/decimal"

// Estados de reposición.
const (
	ReorderStatusCritical = "critical" // sin existencia disponible
	ReorderStatusReorder  = "reorder"  // en o bajo el punto de reorden
	ReorderStatusOK       = "ok"
)

// ReorderItemDTO sugerencia de reposición de un producto.
type ReorderItemDTO struct {
	Priority          int              `json:"priority"`
	ProductCode       string           `json:"product_code"`
	ProductName       string           `json:"product_name"`
	Family            string           `json:"family"`
	Status            string           `json:"status"`
	QtyOnHand         decimal.Decimal  `json:"qty_on_hand"`
	QtyOnOrder        decimal.Decimal  `json:"qty_on_order"`
	QtyCommitted      decimal.Decimal  `json:"qty_committed"`
	Available         decimal.Decimal  `json:"available"`
	ReorderPoint      decimal.Decimal  `json:"reorder_point"`
	IdealStock        decimal.Decimal  `json:"ideal_stock"`
	Shortfall         decimal.Decimal  `json:"shortfall"`
	AvgDailyUsage     decimal.Decimal  `json:"avg_daily_usage"`
	DaysOfCover       *decimal.Decimal `json:"days_of_cover"`
	UnitsPerPackage   int              `json:"units_per_package"`
	SuggestedOrderQty decimal.Decimal  `json:"suggested_order_qty"`
	SnapshotDate      string           `json:"snapshot_date"`
}

// ReorderPlanDTO página del plan de reposición.
type ReorderPlanDTO struct {
	Period PeriodDTO `json:"period"`
	ListResponse[ReorderItemDTO]
}

// SnapshotDTO foto diaria de inventario.
type SnapshotDTO struct {
	SnapshotDate string          `json:"snapshot_date"`
	QtyOnHand    decimal.Decimal `json:"qty_on_hand"`
	QtyOnOrder   decimal.Decimal `json:"qty_on_order"`
	QtyCommitted decimal.Decimal `json:"qty_committed"`
	QtyChange    decimal.Decimal `json:"qty_change"`
	Available    decimal.Decimal `json:"available"`
}
