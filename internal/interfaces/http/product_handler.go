package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tablero-api/internal/application/dto"
	"github.com/jhoicas/Tablero-api/internal/application/inventory"
	"github.com/jhoicas/Tablero-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP del catálogo y la actualización de precios.
type ProductHandler struct {
	uc        *usecase.ProductUseCase
	pricingUC *inventory.PricingUseCase
	errs      *ErrorMapper
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, pricingUC *inventory.PricingUseCase, errs *ErrorMapper) *ProductHandler {
	return &ProductHandler{uc: uc, pricingUC: pricingUC, errs: errs}
}

// List godoc
// @Summary      Listar productos con margen calculado
// @Tags         products
// @Produce      json
// @Param        sortColumn      query  string  false  "code, name, family, cost, listPrice, qtyOnHand"
// @Param        missingPricing  query  bool    false  "Solo productos sin costo o precio"
// @Success      200  {object}  dto.ListResponse[dto.ProductRowDTO]
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), queryValues(c))
	if err != nil {
		return h.errs.Respond(c, "products", err)
	}
	return c.JSON(out)
}

// GetByCode godoc
// @Summary      Ficha del producto
// @Tags         products
// @Produce      json
// @Param        code  path  string  true  "Código del producto"
// @Success      200  {object}  dto.ProductDetailDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{code} [get]
func (h *ProductHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("code"))
	if err != nil {
		return h.errs.Respond(c, "product", err)
	}
	return c.JSON(out)
}

// PriceHistory godoc
// @Summary      Historial de precios del producto
// @Tags         products
// @Produce      json
// @Param        code  path  string  true  "Código del producto"
// @Success      200  {array}   dto.PriceHistoryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{code}/price-history [get]
func (h *ProductHandler) PriceHistory(c *fiber.Ctx) error {
	out, err := h.uc.PriceHistory(c.UserContext(), c.Params("code"))
	if err != nil {
		return h.errs.Respond(c, "price_history", err)
	}
	return c.JSON(out)
}

// PriceAt godoc
// @Summary      Precio vigente en una fecha
// @Tags         products
// @Produce      json
// @Param        code  path   string  true   "Código del producto"
// @Param        date  query  string  false  "YYYY-MM-DD (default hoy)"
// @Success      200  {object}  dto.PriceHistoryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{code}/price [get]
func (h *ProductHandler) PriceAt(c *fiber.Ctx) error {
	out, err := h.uc.PriceAt(c.UserContext(), c.Params("code"), c.Query("date"))
	if err != nil {
		return h.errs.Respond(c, "price_at", err)
	}
	return c.JSON(out)
}

// PriceDistribution godoc
// @Summary      Distribución de precios de lista
// @Tags         products
// @Produce      json
// @Param        boundaries  query  string  false  "Límites separados por coma, ej. 0,10,50"
// @Success      200  {object}  dto.DistributionDTO
// @Router       /api/products/distribution/price [get]
func (h *ProductHandler) PriceDistribution(c *fiber.Ctx) error {
	out, err := h.uc.PriceDistribution(c.UserContext(), queryValues(c))
	if err != nil {
		return h.errs.Respond(c, "price_distribution", err)
	}
	return c.JSON(out)
}

// MarginDistribution godoc
// @Summary      Distribución de márgenes
// @Tags         products
// @Produce      json
// @Param        boundaries  query  string  false  "Límites en %, ej. 0,20,40"
// @Success      200  {object}  dto.DistributionDTO
// @Router       /api/products/distribution/margin [get]
func (h *ProductHandler) MarginDistribution(c *fiber.Ctx) error {
	out, err := h.uc.MarginDistribution(c.UserContext(), queryValues(c))
	if err != nil {
		return h.errs.Respond(c, "margin_distribution", err)
	}
	return c.JSON(out)
}

// UpdatePricing godoc
// @Summary      Actualizar costo y precio de lista
// @Description  Actualiza el producto y agrega una fila al historial en la misma transacción.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        code  path  string                    true  "Código del producto"
// @Param        body  body  dto.UpdatePricingRequest  true  "Nuevos valores (null = desconocido)"
// @Success      200  {object}  dto.ProductDetailDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{code}/pricing [put]
func (h *ProductHandler) UpdatePricing(c *fiber.Ctx) error {
	var in dto.UpdatePricingRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.pricingUC.UpdateProductPricing(c.UserContext(), c.Params("code"), in)
	if err != nil {
		return h.errs.Respond(c, "pricing", err)
	}
	return c.JSON(out)
}
