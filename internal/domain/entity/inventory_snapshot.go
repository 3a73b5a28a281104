package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventorySnapshot foto diaria del inventario de un producto.
type InventorySnapshot struct {
	ProductCode  string
	SnapshotDate time.Time
	QtyOnHand    decimal.Decimal
	QtyOnOrder   decimal.Decimal
	QtyCommitted decimal.Decimal
	QtyChange    decimal.Decimal // variación contra el día anterior
}

// Available existencia disponible: en mano + en tránsito - comprometida.
func (s InventorySnapshot) Available() decimal.Decimal {
	return s.QtyOnHand.Add(s.QtyOnOrder).Sub(s.QtyCommitted)
}
