package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tablero-api/internal/application/usecase"
)

// CompanyHandler maneja las peticiones HTTP de empresas.
type CompanyHandler struct {
	uc   *usecase.CompanyUseCase
	errs *ErrorMapper
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *usecase.CompanyUseCase, errs *ErrorMapper) *CompanyHandler {
	return &CompanyHandler{uc: uc, errs: errs}
}

// List godoc
// @Summary      Listar empresas
// @Tags         companies
// @Produce      json
// @Param        enriched        query  bool  false  "Solo enriquecidas (true) o sin enriquecer (false)"
// @Param        filterConsumer  query  bool  false  "Excluir dominios de consumidor"
// @Success      200  {object}  dto.ListResponse[dto.CompanyRowDTO]
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), queryValues(c))
	if err != nil {
		return h.errs.Respond(c, "companies", err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Ficha de la empresa
// @Tags         companies
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa (UUID)"
// @Success      200  {object}  dto.CompanyDetailDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.Respond(c, "company", err)
	}
	return c.JSON(out)
}
