package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRowDTO fila del listado de productos. Cost, ListPrice y MarginPct son null cuando
// se desconocen; los campos *_display muestran "N/A".
type ProductRowDTO struct {
	ProductCode      string           `json:"product_code"`
	Name             string           `json:"name"`
	Family           string           `json:"family"`
	MaterialType     string           `json:"material_type"`
	Cost             *decimal.Decimal `json:"cost"`
	CostDisplay      string           `json:"cost_display"`
	ListPrice        *decimal.Decimal `json:"list_price"`
	ListPriceDisplay string           `json:"list_price_display"`
	MarginPct        *decimal.Decimal `json:"margin_pct"`
	MarginDisplay    string           `json:"margin_display"`
	UnitsPerPackage  int              `json:"units_per_package"`
	QtyOnHand        *decimal.Decimal `json:"qty_on_hand"`
	SnapshotDate     *string          `json:"snapshot_date"`
}

// ProductDetailDTO ficha del producto.
type ProductDetailDTO struct {
	ProductCode     string           `json:"product_code"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Family          string           `json:"family"`
	MaterialType    string           `json:"material_type"`
	Cost            *decimal.Decimal `json:"cost"`
	ListPrice       *decimal.Decimal `json:"list_price"`
	MarginPct       *decimal.Decimal `json:"margin_pct"`
	MarginDisplay   string           `json:"margin_display"`
	UnitsPerPackage int              `json:"units_per_package"`
	ReorderPoint    decimal.Decimal  `json:"reorder_point"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// PriceHistoryDTO fila del historial de precios.
type PriceHistoryDTO struct {
	ID            string           `json:"id"`
	ProductCode   string           `json:"product_code"`
	Cost          *decimal.Decimal `json:"cost"`
	ListPrice     *decimal.Decimal `json:"list_price"`
	MarginPct     *decimal.Decimal `json:"margin_pct"`
	EffectiveDate string           `json:"effective_date"`
	Notes         string           `json:"notes"`
	CreatedAt     time.Time        `json:"created_at"`
}

// UpdatePricingRequest cuerpo de PUT /products/:code/pricing. null deja el valor como desconocido.
type UpdatePricingRequest struct {
	Cost          *decimal.Decimal `json:"cost"`
	ListPrice     *decimal.Decimal `json:"list_price"`
	EffectiveDate string           `json:"effective_date"` // YYYY-MM-DD; vacío = hoy
	Notes         string           `json:"notes"`
}

// DistributionDTO distribución en buckets. Unknown cuenta los productos sin el dato.
type DistributionDTO struct {
	Metric  string      `json:"metric"`
	Total   int         `json:"total"`
	Unknown int         `json:"unknown"`
	Buckets []BucketDTO `json:"buckets"`
}

// BucketDTO un intervalo de la distribución.
type BucketDTO struct {
	Label          string          `json:"label"`
	Lower          decimal.Decimal `json:"lower"`
	Upper          decimal.Decimal `json:"upper"`
	UpperInclusive bool            `json:"upper_inclusive"`
	Count          int             `json:"count"`
	Percent        decimal.Decimal `json:"percent"`
}
