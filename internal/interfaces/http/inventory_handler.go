package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tablero-api/internal/application/inventory"
)

// InventoryHandler maneja el plan de reposición y las fotos de inventario.
type InventoryHandler struct {
	uc   *inventory.ReorderUseCase
	errs *ErrorMapper
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.ReorderUseCase, errs *ErrorMapper) *InventoryHandler {
	return &InventoryHandler{uc: uc, errs: errs}
}

// Reorder godoc
// @Summary      Plan de reposición
// @Tags         inventory
// @Produce      json
// @Param        belowReorderOnly  query  bool    false  "Solo productos en o bajo el punto de reorden"
// @Param        sortColumn        query  string  false  "shortfall, daysOfCover, code, name"
// @Success      200  {object}  dto.ReorderPlanDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventory/reorder [get]
func (h *InventoryHandler) Reorder(c *fiber.Ctx) error {
	out, err := h.uc.GetPlan(c.UserContext(), queryValues(c))
	if err != nil {
		return h.errs.Respond(c, "reorder", err)
	}
	return c.JSON(out)
}

// ReorderPDF godoc
// @Summary      Plan de reposición en PDF
// @Tags         inventory
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventory/reorder.pdf [get]
func (h *InventoryHandler) ReorderPDF(c *fiber.Ctx) error {
	b, err := h.uc.GetPlanPDF(c.UserContext(), queryValues(c))
	if err != nil {
		return h.errs.Respond(c, "reorder_pdf", err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="plan-reposicion.pdf"`)
	return c.Send(b)
}

// Snapshots godoc
// @Summary      Fotos diarias de inventario del producto
// @Tags         inventory
// @Produce      json
// @Param        code    path   string  true   "Código del producto"
// @Param        period  query  string  false  "7d, 30d, 90d, 1y, all"
// @Success      200  {array}  dto.SnapshotDTO
// @Router       /api/inventory/{code}/snapshots [get]
func (h *InventoryHandler) Snapshots(c *fiber.Ctx) error {
	out, err := h.uc.ListSnapshots(c.UserContext(), c.Params("code"), queryValues(c))
	if err != nil {
		return h.errs.Respond(c, "snapshots", err)
	}
	return c.JSON(out)
}
