package repository

import "github.com/jhoicas/Tablero-api/internal/domain/report"

// ListQuery parámetros de un listado paginado ya normalizados.
// Window acota los agregados por fecha (ingresos, órdenes); ConsumerDomains alimenta la
// bandera filterConsumer.
type ListQuery struct {
	Filters         report.Filters
	Window          report.Window
	ConsumerDomains []string
}

// Page una página de filas más el total del conjunto filtrado.
type Page[T any] struct {
	Rows       []T
	TotalCount int64
}
