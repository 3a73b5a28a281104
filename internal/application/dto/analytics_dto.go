package dto

import "github.com/shopspring/decimal"

// MetricTripleDTO indicador con valor actual, anterior y variación. Previous y ChangePct son
// null cuando el período no tiene ventana de comparación.
type MetricTripleDTO struct {
	Current       decimal.Decimal  `json:"current"`
	Previous      *decimal.Decimal `json:"previous"`
	ChangePct     *decimal.Decimal `json:"change_pct"`
	Display       string           `json:"display"`
	ChangeDisplay string           `json:"change_display"`
}

// DashboardMetricsDTO tarjetas del tablero.
type DashboardMetricsDTO struct {
	Period               PeriodDTO       `json:"period"`
	Revenue              MetricTripleDTO `json:"revenue"`
	Orders               MetricTripleDTO `json:"orders"`
	AverageOrderValue    MetricTripleDTO `json:"average_order_value"`
	ActiveCustomers      MetricTripleDTO `json:"active_customers"`
	UnitsSold            MetricTripleDTO `json:"units_sold"`
	CustomersTo50Percent int             `json:"customers_to_50_percent"`
	CustomersTo80Percent int             `json:"customers_to_80_percent"`
}

// GroupTotalsDTO agregados de un grupo en una ventana.
type GroupTotalsDTO struct {
	Revenue        decimal.Decimal `json:"revenue"`
	RevenueDisplay string          `json:"revenue_display"`
	Quantity       decimal.Decimal `json:"quantity"`
	Orders         int64           `json:"orders"`
	Customers      int64           `json:"customers"`
}

// GroupBreakdownDTO un grupo del desglose. Previous y RevenueChangePct son null sin comparación.
type GroupBreakdownDTO struct {
	GroupKey         string           `json:"group_key"`
	Current          GroupTotalsDTO   `json:"current"`
	Previous         *GroupTotalsDTO  `json:"previous"`
	RevenueChangePct *decimal.Decimal `json:"revenue_change_pct"`
	RevenueSharePct  decimal.Decimal  `json:"revenue_share_pct"`
}

// BreakdownDTO desglose por dimensión.
type BreakdownDTO struct {
	Dimension string              `json:"dimension"`
	Period    PeriodDTO           `json:"period"`
	Groups    []GroupBreakdownDTO `json:"groups"`
}
