package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/revenue-analytics-api/internal/application/dataset"
	"github.com/jhoicas/revenue-analytics-api/internal/application/dto"
	"github.com/jhoicas/revenue-analytics-api/internal/domain"
)

// CompanyHandler expone el listado de empresas visibles según el rol.
type CompanyHandler struct {
	queries *dataset.QueryUseCase
}

// NewCompanyHandler construye el handler de empresas.
func NewCompanyHandler(queries *dataset.QueryUseCase) *CompanyHandler {
	return &CompanyHandler{queries: queries}
}

// List godoc
// @Summary      Listar empresas accesibles
// @Description  Un investee ve solo su propia empresa; un investor, las vinculadas a su portafolio.
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CompanyListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	out, err := h.queries.ListAccessibleCompanies(GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario no encontrado"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error consultando empresas, intente de nuevo"})
	}
	return c.JSON(out)
}
