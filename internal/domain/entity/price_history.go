package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductPriceHistory fila inmutable del historial de precios; solo se agregan filas nuevas.
type ProductPriceHistory struct {
	ID            string
	ProductCode   string
	Cost          *decimal.Decimal
	ListPrice     *decimal.Decimal
	EffectiveDate time.Time
	Notes         string
	CreatedAt     time.Time
}
