package report

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Direction dirección de ordenamiento.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Nombres de parámetros reconocidos en la query string.
const (
	ParamPage          = "page"
	ParamPageSize      = "pageSize"
	ParamSearch        = "search"
	ParamSortColumn    = "sortColumn"
	ParamSortDirection = "sortDirection"
	ParamMinAmount     = "minAmount"
	ParamMaxAmount     = "maxAmount"
	ParamPeriod        = "period"
	ParamStartDate     = "startDate"
	ParamEndDate       = "endDate"
)

// Banderas de filtro usadas por los reportes.
const (
	FlagFilterConsumer   = "filterConsumer"
	FlagEmailMarketable  = "emailMarketable"
	FlagEnriched         = "enriched"
	FlagMissingPricing   = "missingPricing"
	FlagBelowReorderOnly = "belowReorderOnly"
)

const defaultMaxPageSize = 200

// SortColumn columna ordenable y su dirección por defecto (numéricas y fechas desc, texto asc).
type SortColumn struct {
	Name             string
	DefaultDirection Direction
}

// FilterOptions lo que cada reporte declara: allow-list de orden, banderas y tamaños por defecto.
type FilterOptions struct {
	DefaultPageSize int
	MaxPageSize     int
	SortColumns     []SortColumn
	DefaultSort     string
	Flags           []string
	DefaultPeriod   string
}

// Sort columna y dirección ya validadas.
type Sort struct {
	Column    string
	Direction Direction
}

// Filters parámetros tipados que consume el resto del pipeline.
type Filters struct {
	Page      int
	PageSize  int
	Search    string
	Sort      Sort
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	Period    string
	flags     map[string]bool
}

// Flag devuelve el valor de una bandera tri-estado: nil si no vino o no era "true"/"false".
func (f Filters) Flag(name string) *bool {
	v, ok := f.flags[name]
	if !ok {
		return nil
	}
	return &v
}

// FlagIs indica si la bandera vino explícitamente en true.
func (f Filters) FlagIs(name string) bool {
	v, ok := f.flags[name]
	return ok && v
}

// WithFlag devuelve una copia con la bandera fijada (útil en pruebas y valores forzados).
func (f Filters) WithFlag(name string, v bool) Filters {
	flags := make(map[string]bool, len(f.flags)+1)
	for k, val := range f.flags {
		flags[k] = val
	}
	flags[name] = v
	f.flags = flags
	return f
}

// Offset (page-1)*pageSize.
func (f Filters) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// NormalizeFilters convierte la query string cruda en Filters. Nunca falla: cualquier valor
// inválido cae en el valor por defecto del reporte.
func NormalizeFilters(raw map[string][]string, opts FilterOptions) Filters {
	maxSize := opts.MaxPageSize
	if maxSize <= 0 {
		maxSize = defaultMaxPageSize
	}
	defSize := opts.DefaultPageSize
	if defSize <= 0 || defSize > maxSize {
		defSize = min(10, maxSize)
	}

	f := Filters{
		Page:     positiveInt(First(raw, ParamPage), 1),
		PageSize: min(positiveInt(First(raw, ParamPageSize), defSize), maxSize),
		Search:   strings.TrimSpace(First(raw, ParamSearch)),
		Sort:     normalizeSort(First(raw, ParamSortColumn), First(raw, ParamSortDirection), opts),
		flags:    make(map[string]bool),
	}
	// Offset() no debe desbordar int.
	if maxPage := math.MaxInt / f.PageSize; f.Page > maxPage {
		f.Page = maxPage
	}

	for _, name := range opts.Flags {
		if v, ok := parseTriState(First(raw, name)); ok {
			f.flags[name] = v
		}
	}

	f.MinAmount = parseAmount(First(raw, ParamMinAmount))
	f.MaxAmount = parseAmount(First(raw, ParamMaxAmount))

	start, end := First(raw, ParamStartDate), First(raw, ParamEndDate)
	switch {
	case strings.TrimSpace(start) != "" && strings.TrimSpace(end) != "":
		f.Period = ExplicitRange(start, end)
	case strings.TrimSpace(First(raw, ParamPeriod)) != "":
		f.Period = strings.TrimSpace(First(raw, ParamPeriod))
	case opts.DefaultPeriod != "":
		f.Period = opts.DefaultPeriod
	default:
		f.Period = DefaultPeriod
	}
	return f
}

// First primer valor de un parámetro multi-valuado ("" si no existe).
func First(raw map[string][]string, key string) string {
	vs := raw[key]
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

func normalizeSort(column, direction string, opts FilterOptions) Sort {
	col, ok := findColumn(opts.SortColumns, strings.TrimSpace(column))
	if !ok {
		col, ok = findColumn(opts.SortColumns, opts.DefaultSort)
	}
	if !ok {
		if len(opts.SortColumns) == 0 {
			return Sort{}
		}
		col = opts.SortColumns[0]
	}

	dir := col.DefaultDirection
	switch Direction(strings.ToLower(strings.TrimSpace(direction))) {
	case Asc:
		dir = Asc
	case Desc:
		dir = Desc
	}
	if dir != Asc && dir != Desc {
		dir = Asc
	}
	return Sort{Column: col.Name, Direction: dir}
}

func findColumn(cols []SortColumn, name string) (SortColumn, bool) {
	if name == "" {
		return SortColumn{}, false
	}
	for _, c := range cols {
		if c.Name == name {
			return c, true
		}
	}
	return SortColumn{}, false
}

func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// parseTriState solo reconoce "true" y "false" (sin distinguir mayúsculas).
func parseTriState(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

func parseAmount(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	d := decimal.NewFromFloat(v)
	return &d
}
