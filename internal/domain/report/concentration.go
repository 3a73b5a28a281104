package report

import (
	"sort"

	"github.com/shopspring/decimal"
)

var (
	half      = decimal.NewFromInt(50)
	eightyPct = decimal.NewFromInt(80)
)

// Concentration cuántos clientes (ordenados por gasto descendente) se necesitan para alcanzar
// pct % del gasto total. El cliente que alcanza o supera el umbral cuenta. Total 0 -> 0.
func Concentration(spends []decimal.Decimal, pct decimal.Decimal) int {
	sorted := make([]decimal.Decimal, len(spends))
	copy(sorted, spends)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].GreaterThan(sorted[j]) })

	total := decimal.Zero
	for _, s := range sorted {
		total = total.Add(s)
	}
	if !total.IsPositive() {
		return 0
	}

	threshold := total.Mul(pct).Div(hundred)
	cumulative := decimal.Zero
	for i, s := range sorted {
		cumulative = cumulative.Add(s)
		if cumulative.GreaterThanOrEqual(threshold) {
			return i + 1
		}
	}
	return len(sorted)
}

// CustomersTo50 clientes necesarios para el 50 % del gasto.
func CustomersTo50(spends []decimal.Decimal) int { return Concentration(spends, half) }

// CustomersTo80 clientes necesarios para el 80 % del gasto.
func CustomersTo80(spends []decimal.Decimal) int { return Concentration(spends, eightyPct) }
