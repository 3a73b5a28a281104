package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tablero-api/internal/application/usecase"
)

// CustomerHandler maneja las peticiones HTTP de clientes.
type CustomerHandler struct {
	uc   *usecase.CustomerUseCase
	errs *ErrorMapper
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase, errs *ErrorMapper) *CustomerHandler {
	return &CustomerHandler{uc: uc, errs: errs}
}

// List godoc
// @Summary      Listar clientes
// @Description  Filtros: search, sortColumn (name, company, totalSpent, orderCount, lastOrderDate),
//               sortDirection, minAmount/maxAmount (gasto), filterConsumer, emailMarketable, period.
// @Tags         customers
// @Produce      json
// @Param        page      query  int     false  "Página"             default(1)
// @Param        pageSize  query  int     false  "Filas por página"   default(10)
// @Param        search    query  string  false  "Nombre, empresa o correo"
// @Param        period    query  string  false  "7d, 30d, 90d, 1y, all"  default(all)
// @Success      200  {object}  dto.ListResponse[dto.CustomerRowDTO]
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), queryValues(c))
	if err != nil {
		return h.errs.Respond(c, "customers", err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Ficha del cliente con correos y teléfonos
// @Tags         customers
// @Produce      json
// @Param        id   path  string  true  "ID del cliente (UUID)"
// @Success      200  {object}  dto.CustomerDetailDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.Respond(c, "customer", err)
	}
	return c.JSON(out)
}
