package report

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Bucket intervalo [Lower, Upper) de una distribución. El último es cerrado en Upper.
type Bucket struct {
	Lower          decimal.Decimal
	Upper          decimal.Decimal
	UpperInclusive bool
	Count          int
	Percent        decimal.Decimal
}

// Distribution resultado de repartir valores en buckets. La suma de Count es Total.
type Distribution struct {
	Buckets []Bucket
	Total   int
}

// Distribute reparte values en los intervalos definidos por boundaries (ascendentes).
// Con n límites hay n-1 buckets. Los valores por debajo del primer límite caen en el primer
// bucket y los valores desde el último límite interior caen en el último, cuyo techo se
// extiende al máximo observado. Ningún valor se descarta.
func Distribute(values []decimal.Decimal, boundaries []decimal.Decimal) Distribution {
	bounds := normalizeBoundaries(boundaries)
	if len(bounds) < 2 {
		bounds = observedRange(values)
	}

	buckets := make([]Bucket, len(bounds)-1)
	for i := range buckets {
		buckets[i] = Bucket{Lower: bounds[i], Upper: bounds[i+1]}
	}
	last := len(buckets) - 1
	buckets[last].UpperInclusive = true

	for _, v := range values {
		idx := last
		for i := 0; i < last; i++ {
			if v.LessThan(bounds[i+1]) {
				idx = i
				break
			}
		}
		buckets[idx].Count++
		if idx == 0 && v.LessThan(buckets[0].Lower) {
			buckets[0].Lower = v
		}
		if idx == last && v.GreaterThan(buckets[last].Upper) {
			buckets[last].Upper = v
		}
	}

	total := len(values)
	for i := range buckets {
		buckets[i].Percent = decimal.Zero
		if total > 0 {
			buckets[i].Percent = decimal.NewFromInt(int64(buckets[i].Count)).
				Div(decimal.NewFromInt(int64(total))).Mul(hundred).Round(2)
		}
	}
	return Distribution{Buckets: buckets, Total: total}
}

func normalizeBoundaries(boundaries []decimal.Decimal) []decimal.Decimal {
	sorted := make([]decimal.Decimal, len(boundaries))
	copy(sorted, boundaries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	out := make([]decimal.Decimal, 0, len(sorted))
	for _, b := range sorted {
		if len(out) > 0 && out[len(out)-1].Equal(b) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// observedRange un único bucket [min, max] cuando no hay límites utilizables.
func observedRange(values []decimal.Decimal) []decimal.Decimal {
	if len(values) == 0 {
		return []decimal.Decimal{decimal.Zero, decimal.Zero}
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = decimal.Min(lo, v)
		hi = decimal.Max(hi, v)
	}
	return []decimal.Decimal{lo, hi}
}
