// Package metrics expone contadores Prometheus de la API: tráfico HTTP por ruta y fallos de
// agregación por reporte.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tablero"

// Motivos de fallo de agregación.
const (
	ReasonDeadlineExceeded = "deadline_exceeded"
	ReasonQueryCanceled    = "query_canceled"
	ReasonRequestCanceled  = "request_canceled"
	ReasonConnection       = "connection"
	ReasonUndefinedObject  = "undefined_object"
	ReasonUnknown          = "unknown"
)

// Metrics instrumentos de la API sobre un registro propio.
type Metrics struct {
	registry           *prometheus.Registry
	requests           *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	aggregationFailure *prometheus.CounterVec
}

// New crea el registro con los colectores de proceso y runtime de Go.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP atendidas por ruta y código.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de las peticiones HTTP por ruta.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		aggregationFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aggregation_failures_total",
			Help:      "Reportes que no pudieron calcularse por error del almacén.",
		}, []string{"report", "reason"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.aggregationFailure,
	)
	return m
}

// ObserveRequest registra una petición terminada. route es el patrón de la ruta, no la URL.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// AggregationFailed cuenta un fallo de agregación clasificado por motivo.
func (m *Metrics) AggregationFailed(report string, err error) {
	if m == nil {
		return
	}
	m.aggregationFailure.WithLabelValues(strings.TrimSpace(report), ClassifyFailure(err)).Inc()
}

// Handler expone el registro en formato de texto Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry devuelve el registro subyacente.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ClassifyFailure motivo de un error de almacén para la etiqueta "reason".
func ClassifyFailure(err error) string {
	if err == nil {
		return ReasonUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonDeadlineExceeded
	}
	if errors.Is(err, context.Canceled) {
		return ReasonRequestCanceled
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "57014":
			return ReasonQueryCanceled
		case strings.HasPrefix(pgErr.Code, "08"):
			return ReasonConnection
		case strings.HasPrefix(pgErr.Code, "42"):
			return ReasonUndefinedObject
		}
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return ReasonConnection
	}
	return ReasonUnknown
}
