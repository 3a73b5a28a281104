package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tablero-api/internal/application/usecase"
)

// OrderHandler maneja las peticiones HTTP de órdenes.
type OrderHandler struct {
	uc   *usecase.OrderUseCase
	errs *ErrorMapper
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase, errs *ErrorMapper) *OrderHandler {
	return &OrderHandler{uc: uc, errs: errs}
}

// List godoc
// @Summary      Listar órdenes del período
// @Tags         orders
// @Produce      json
// @Param        page        query  int     false  "Página"            default(1)
// @Param        pageSize    query  int     false  "Filas por página"  default(50)
// @Param        sortColumn  query  string  false  "orderDate, orderNumber, totalAmount, customer, status"
// @Param        period      query  string  false  "7d, 30d, 90d, 1y, all o YYYY-MM-DD..YYYY-MM-DD"
// @Success      200  {object}  dto.ListResponse[dto.OrderRowDTO]
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), queryValues(c))
	if err != nil {
		return h.errs.Respond(c, "orders", err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Orden con sus líneas
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "ID de la orden (UUID)"
// @Success      200  {object}  dto.OrderDetailDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.Respond(c, "order", err)
	}
	return c.JSON(out)
}
