package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Tablero-api/internal/application/dto"
	"github.com/jhoicas/Tablero-api/internal/domain"
	"github.com/jhoicas/Tablero-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Tablero-api/pkg/format"
)

// Códigos de error expuestos en dto.ErrorResponse.
const (
	CodeNotFound               = "NOT_FOUND"
	CodeInvalidInput           = "INVALID_INPUT"
	CodeInvalidBody            = "INVALID_BODY"
	CodeConflict               = "CONFLICT"
	CodeAggregationUnavailable = "AGGREGATION_UNAVAILABLE"
)

// ErrorMapper traduce errores de dominio a respuestas HTTP. Los fallos del almacén se
// registran en el log y en el contador de agregaciones fallidas.
type ErrorMapper struct {
	log     zerolog.Logger
	metrics *metrics.Metrics
}

// NewErrorMapper construye el mapeador. m puede ser nil.
func NewErrorMapper(log zerolog.Logger, m *metrics.Metrics) *ErrorMapper {
	return &ErrorMapper{log: log, metrics: m}
}

// Respond escribe la respuesta de error; report identifica el reporte en logs y métricas.
func (e *ErrorMapper) Respond(c *fiber.Ctx, report string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: CodeNotFound, Message: "recurso no encontrado",
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: CodeInvalidInput, Message: err.Error(),
		})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: CodeConflict, Message: err.Error(),
		})
	}

	e.log.Error().Err(err).
		Str("report", report).
		Str("path", c.Path()).
		Msg("agregación no disponible")
	e.metrics.AggregationFailed(report, err)

	return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
		Code: CodeAggregationUnavailable, Message: format.NoData,
	})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: CodeInvalidBody, Message: "cuerpo inválido",
	})
}
