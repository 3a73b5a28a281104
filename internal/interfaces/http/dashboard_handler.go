package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Tablero-api/internal/application/analytics"
)

// DashboardHandler maneja las tarjetas del tablero.
type DashboardHandler struct {
	uc   *appanalytics.DashboardUseCase
	errs *ErrorMapper
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, errs *ErrorMapper) *DashboardHandler {
	return &DashboardHandler{uc: uc, errs: errs}
}

// GetMetrics devuelve las tarjetas del período con su comparación contra la ventana anterior.
// GET /api/dashboard/metrics?period=30d
//
// Respuesta: DashboardMetricsDTO (revenue, orders, average_order_value, active_customers,
// units_sold como {current, previous, change_pct} y la concentración de clientes).
func (h *DashboardHandler) GetMetrics(c *fiber.Ctx) error {
	out, err := h.uc.GetMetrics(c.UserContext(), queryValues(c))
	if err != nil {
		return h.errs.Respond(c, "dashboard", err)
	}
	return c.JSON(out)
}
