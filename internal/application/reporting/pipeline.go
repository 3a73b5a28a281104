// Package reporting reúne lo que comparten todos los casos de uso de reportes: la
// configuración de negocio, el paso de query string cruda a ListQuery y el mapeo de errores
// del almacén.
package reporting

import (
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Tablero-api/internal/application/dto"
	"github.com/jhoicas/Tablero-api/internal/domain"
	"github.com/jhoicas/Tablero-api/internal/domain/report"
	"github.com/jhoicas/Tablero-api/internal/domain/repository"
	"github.com/jhoicas/Tablero-api/pkg/config"
)

// Settings parámetros de negocio que los reportes reciben por configuración.
type Settings struct {
	ConsumerDomains []string
	DefaultPageSize int
	LargePageSize   int
	MaxPageSize     int
	DefaultPeriod   string
	// Clock reloj inyectable; nil usa time.Now.
	Clock func() time.Time
}

// NewSettings toma los valores de la sección Report de la configuración.
func NewSettings(cfg config.ReportConfig) Settings {
	return Settings{
		ConsumerDomains: cfg.ConsumerDomains,
		DefaultPageSize: cfg.DefaultPageSize,
		LargePageSize:   cfg.LargePageSize,
		MaxPageSize:     cfg.MaxPageSize,
		DefaultPeriod:   cfg.DefaultPeriod,
	}
}

// Now hora actual según el reloj configurado.
func (s Settings) Now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// Options completa las opciones de un reporte con los tamaños de página configurados.
// large elige el tamaño de las tablas extensas.
func (s Settings) Options(large bool, opts report.FilterOptions) report.FilterOptions {
	opts.DefaultPageSize = s.DefaultPageSize
	if large {
		opts.DefaultPageSize = s.LargePageSize
	}
	opts.MaxPageSize = s.MaxPageSize
	if opts.DefaultPeriod == "" {
		opts.DefaultPeriod = s.DefaultPeriod
	}
	return opts
}

// ListQuery normaliza la query string y resuelve el período: la entrada del constructor de consultas.
func (s Settings) ListQuery(raw map[string][]string, opts report.FilterOptions) repository.ListQuery {
	f := report.NormalizeFilters(raw, opts)
	return repository.ListQuery{
		Filters:         f,
		Window:          report.ResolvePeriodAt(f.Period, s.Now()),
		ConsumerDomains: s.ConsumerDomains,
	}
}

// StoreError conserva ErrNotFound / ErrInvalidInput y convierte cualquier otro error del
// almacén en ErrAggregationUnavailable.
func StoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return domain.Unavailable(op, err)
}

// Period describe una ventana resuelta para las respuestas.
func Period(w report.Window) dto.PeriodDTO {
	p := dto.PeriodDTO{Key: w.Key, EndDate: w.End.Format(time.DateOnly)}
	if !w.IsAllTime() {
		start := w.Start.Format(time.DateOnly)
		p.StartDate = &start
	}
	if w.Compare != nil {
		cs, ce := w.Compare.Start.Format(time.DateOnly), w.Compare.End.Format(time.DateOnly)
		p.CompareStartDate, p.CompareEndDate = &cs, &ce
	}
	return p
}

// Page arma la respuesta paginada genérica.
func Page[T any](rows []T, total int64, f report.Filters) dto.ListResponse[T] {
	if rows == nil {
		rows = []T{}
	}
	return dto.ListResponse[T]{
		Rows:       rows,
		TotalCount: total,
		Page:       f.Page,
		PageSize:   f.PageSize,
	}
}
