package report

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PercentChange variación porcentual de previous a current.
//
//	previous == 0 && current == 0 -> 0
//	previous == 0 && current > 0  -> 100
//	previous == 0 && current < 0  -> -100
//	en otro caso (current - previous) / previous * 100
//
// Todas las tarjetas y desgloses usan esta misma regla.
func PercentChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		switch current.Sign() {
		case 0:
			return decimal.Zero
		case 1:
			return hundred
		default:
			return hundred.Neg()
		}
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2)
}

// AverageOrderValue ingreso / órdenes; 0 si no hay órdenes.
func AverageOrderValue(revenue decimal.Decimal, orders int64) decimal.Decimal {
	if orders <= 0 {
		return decimal.Zero
	}
	return revenue.Div(decimal.NewFromInt(orders)).Round(2)
}

// MarginPercent (listPrice - cost) / listPrice * 100. nil (N/A) si el precio de lista es
// desconocido o cero, o si el costo es desconocido.
func MarginPercent(listPrice, cost *decimal.Decimal) *decimal.Decimal {
	if listPrice == nil || cost == nil || listPrice.IsZero() {
		return nil
	}
	m := listPrice.Sub(*cost).Div(*listPrice).Mul(hundred).Round(2)
	return &m
}

// Share participación de part en total (0 si total es 0).
func Share(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred).Round(2)
}

// Triple valor actual, anterior y variación de un indicador. Previous y ChangePct son nil
// cuando no hay ventana de comparación.
type Triple struct {
	Current   decimal.Decimal
	Previous  *decimal.Decimal
	ChangePct *decimal.Decimal
}

// NewTriple arma el indicador; hasPrevious=false deja Previous y ChangePct en nil.
func NewTriple(current, previous decimal.Decimal, hasPrevious bool) Triple {
	t := Triple{Current: current}
	if hasPrevious {
		p := previous
		c := PercentChange(current, previous)
		t.Previous = &p
		t.ChangePct = &c
	}
	return t
}
