package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo identificado por su código natural.
// Cost y ListPrice son nil cuando se desconocen; nil nunca equivale a cero.
type Product struct {
	ProductCode     string
	Name            string
	Description     string
	MaterialType    string
	Family          string
	Cost            *decimal.Decimal
	ListPrice       *decimal.Decimal
	UnitsPerPackage int
	ReorderPoint    decimal.Decimal // existencia mínima antes de reponer
	UpdatedAt       time.Time
}

// HasPricing indica si costo y precio de lista son conocidos.
func (p *Product) HasPricing() bool {
	return p.Cost != nil && p.ListPrice != nil
}
