// Package report contiene la lógica pura del pipeline de reportes: resolución de períodos,
// normalización de filtros y cálculo de métricas. Nada aquí toca la base de datos.
package report

import (
	"strings"
	"time"
)

// Atajos de período aceptados en el parámetro "period".
const (
	Period7d  = "7d"
	Period30d = "30d"
	Period90d = "90d"
	Period1y  = "1y"
	PeriodAll = "all"

	DefaultPeriod = Period30d

	dateLayout     = "2006-01-02"
	rangeSeparator = ".."
)

// DateRange intervalo cerrado [Start, End].
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Days longitud del intervalo en días calendario enteros (fecha de End menos fecha de Start).
func (r DateRange) Days() int {
	return int(civilDate(r.End).Sub(civilDate(r.Start)).Hours() / 24)
}

// CalendarDays días calendario cubiertos por el intervalo cerrado, ambos extremos incluidos.
func (r DateRange) CalendarDays() int {
	return r.Days() + 1
}

// Window período resuelto: ventana actual y, salvo "all", la ventana de comparación
// inmediatamente anterior de igual longitud.
type Window struct {
	Key string
	DateRange
	Compare *DateRange
}

// IsAllTime indica que la ventana no tiene cota inferior.
func (w Window) IsAllTime() bool { return w.Start.IsZero() }

// HasComparison indica si existe ventana de comparación.
func (w Window) HasComparison() bool { return w.Compare != nil }

// ResolvePeriod resuelve el período con el reloj del sistema.
func ResolvePeriod(period string) Window {
	return ResolvePeriodAt(period, time.Now())
}

// ResolvePeriodAt resuelve un atajo (7d, 30d, 90d, 1y, all) o un rango explícito
// "YYYY-MM-DD..YYYY-MM-DD" relativo a now. Valores no reconocidos caen en 30d.
func ResolvePeriodAt(period string, now time.Time) Window {
	key := strings.ToLower(strings.TrimSpace(period))
	end := endOfDay(now)

	var start time.Time
	switch key {
	case Period7d:
		start = startOfDay(end.AddDate(0, 0, -7))
	case Period30d:
		start = startOfDay(end.AddDate(0, 0, -30))
	case Period90d:
		start = startOfDay(end.AddDate(0, 0, -90))
	case Period1y:
		start = startOfDay(end.AddDate(-1, 0, 0))
	case PeriodAll:
		return Window{Key: PeriodAll, DateRange: DateRange{End: end}}
	default:
		if w, ok := parseExplicitRange(key, now.Location()); ok {
			return w
		}
		return ResolvePeriodAt(DefaultPeriod, now)
	}
	return withComparison(key, DateRange{Start: start, End: end})
}

// withComparison calcula la ventana anterior: termina el día previo a Start y dura los mismos días.
func withComparison(key string, cur DateRange) Window {
	days := cur.Days()
	if days < 1 {
		days = 1
	}
	prev := DateRange{
		Start: startOfDay(cur.Start.AddDate(0, 0, -days)),
		End:   endOfDay(cur.Start.AddDate(0, 0, -1)),
	}
	return Window{Key: key, DateRange: cur, Compare: &prev}
}

func parseExplicitRange(s string, loc *time.Location) (Window, bool) {
	from, to, found := strings.Cut(s, rangeSeparator)
	if !found {
		return Window{}, false
	}
	start, err := time.ParseInLocation(dateLayout, strings.TrimSpace(from), loc)
	if err != nil {
		return Window{}, false
	}
	end, err := time.ParseInLocation(dateLayout, strings.TrimSpace(to), loc)
	if err != nil || end.Before(start) {
		return Window{}, false
	}
	key := start.Format(dateLayout) + rangeSeparator + end.Format(dateLayout)
	return withComparison(key, DateRange{Start: startOfDay(start), End: endOfDay(end)}), true
}

// ExplicitRange arma el valor de período para un par de fechas (startDate/endDate).
func ExplicitRange(start, end string) string {
	return strings.TrimSpace(start) + rangeSeparator + strings.TrimSpace(end)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// civilDate proyecta la fecha a medianoche UTC para que los cambios de horario no alteren la resta.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
