// Package format convierte valores numéricos y fechas en las cadenas que muestra el tablero.
// Ninguna función entra en pánico: entradas no numéricas caen en los valores de respaldo
// ("$0.00", "0", "N/A").
package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// NotAvailable se muestra cuando un valor es desconocido (margen sin costo, etc.).
	NotAvailable = "N/A"
	// NoData mensaje de la capa de presentación cuando la agregación falló.
	NoData = "No data available"
)

const (
	thousandsSep = ","
	decimalSep   = "."
)

// Currency formatea un monto en USD con separador de miles. Con withCents=false se redondea
// al entero. Cualquier entrada no numérica (o NaN / Inf) devuelve "$0.00" en ambos modos.
func Currency(value any, withCents bool) string {
	scale := 0
	if withCents {
		scale = 2
	}
	d, ok := toDecimal(value)
	if !ok {
		return "$0.00"
	}
	d = d.Round(int32(scale))
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + "$" + grouped(d, scale)
}

// Number formatea un número con separador de miles y la cantidad de decimales pedida.
func Number(value any, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	d, ok := toDecimal(value)
	if !ok {
		return "0"
	}
	d = d.Round(int32(decimals))
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + grouped(d, decimals)
}

// Percent formatea un porcentaje ya calculado (12.5 -> "12.5%"). nil significa desconocido.
func Percent(p *decimal.Decimal, decimals int) string {
	if p == nil {
		return NotAvailable
	}
	return Number(*p, decimals) + "%"
}

// SignedPercent formatea la variación de un indicador con signo explícito ("+12.5%", "-3.0%").
func SignedPercent(p decimal.Decimal, decimals int) string {
	s := Number(p, decimals) + "%"
	if p.Round(int32(decimals)).IsPositive() {
		return "+" + s
	}
	return s
}

// DaysAgo devuelve floor((now - date) / 24h).
func DaysAgo(date, now time.Time) int {
	return int(math.Floor(now.Sub(date).Hours() / 24))
}

// RelativeDays describe la antigüedad de una fecha: "today", "1 day ago", "12 days ago".
// Una fecha nil se muestra como "N/A".
func RelativeDays(date *time.Time, now time.Time) string {
	if date == nil {
		return NotAvailable
	}
	switch d := DaysAgo(*date, now); {
	case d <= 0:
		return "today"
	case d == 1:
		return "1 day ago"
	default:
		return fmt.Sprintf("%d days ago", d)
	}
}

// grouped agrupa los miles de d (ya redondeado y no negativo) sobre su representación exacta.
func grouped(d decimal.Decimal, scale int) string {
	s := d.StringFixed(int32(scale))
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(thousandsSep)
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteString(decimalSep)
		b.WriteString(frac)
	}
	return b.String()
}

// toDecimal acepta los tipos numéricos habituales y cadenas; cualquier otra cosa no es numérica.
func toDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero, false
		}
		return *v, true
	case decimal.NullDecimal:
		return v.Decimal, v.Valid
	case float64:
		return fromFloat(v)
	case float32:
		return fromFloat(float64(v))
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int32:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

func fromFloat(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}
