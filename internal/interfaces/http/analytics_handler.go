package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Tablero-api/internal/application/analytics"
)

// AnalyticsHandler maneja los desgloses por dimensión.
type AnalyticsHandler struct {
	uc   *appanalytics.BreakdownUseCase
	errs *ErrorMapper
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *appanalytics.BreakdownUseCase, errs *ErrorMapper) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc, errs: errs}
}

// GetBreakdown godoc
// @Summary      Desglose de ventas por dimensión
// @Description  Agrega la ventana actual y la anterior por separado y las une por clave.
// @Tags         analytics
// @Produce      json
// @Param        dimension       path   string  true   "channel, segment, family, material, company"
// @Param        key             query  string  false  "Restringe a un solo grupo"
// @Param        period          query  string  false  "7d, 30d, 90d, 1y, all"
// @Param        filterConsumer  query  bool    false  "Excluir dominios de consumidor"
// @Success      200  {object}  dto.BreakdownDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/analytics/breakdown/{dimension} [get]
func (h *AnalyticsHandler) GetBreakdown(c *fiber.Ctx) error {
	out, err := h.uc.GetBreakdown(c.UserContext(), c.Params("dimension"), queryValues(c))
	if err != nil {
		return h.errs.Respond(c, "breakdown", err)
	}
	return c.JSON(out)
}
