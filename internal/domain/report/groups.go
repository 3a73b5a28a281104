package report

import (
	"sort"

	"github.com/shopspring/decimal"
)

// GroupTotals agregados de un grupo (canal, segmento, familia, material, empresa) en una ventana.
type GroupTotals struct {
	Key       string
	Revenue   decimal.Decimal
	Quantity  decimal.Decimal
	Orders    int64
	Customers int64
}

// GroupComparison un grupo con sus totales en la ventana actual y la anterior.
type GroupComparison struct {
	Key              string
	Current          GroupTotals
	Previous         GroupTotals
	RevenueChangePct decimal.Decimal
}

// JoinGroups une por clave los totales de ambas ventanas (full outer join). El lado ausente
// queda en cero. Resultado ordenado por ingreso actual desc y luego por clave.
func JoinGroups(current, previous []GroupTotals) []GroupComparison {
	byKey := make(map[string]*GroupComparison, len(current)+len(previous))
	order := make([]string, 0, len(current)+len(previous))

	get := func(key string) *GroupComparison {
		if gc, ok := byKey[key]; ok {
			return gc
		}
		gc := &GroupComparison{
			Key:      key,
			Current:  zeroTotals(key),
			Previous: zeroTotals(key),
		}
		byKey[key] = gc
		order = append(order, key)
		return gc
	}

	for _, g := range current {
		get(g.Key).Current = g
	}
	for _, g := range previous {
		get(g.Key).Previous = g
	}

	out := make([]GroupComparison, 0, len(order))
	for _, k := range order {
		gc := byKey[k]
		gc.RevenueChangePct = PercentChange(gc.Current.Revenue, gc.Previous.Revenue)
		out = append(out, *gc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Current.Revenue.Equal(out[j].Current.Revenue) {
			return out[i].Current.Revenue.GreaterThan(out[j].Current.Revenue)
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func zeroTotals(key string) GroupTotals {
	return GroupTotals{Key: key, Revenue: decimal.Zero, Quantity: decimal.Zero}
}
