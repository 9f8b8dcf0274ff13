package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/revenue-analytics-api/internal/application/access"
	"github.com/jhoicas/revenue-analytics-api/internal/application/dto"
	"github.com/jhoicas/revenue-analytics-api/internal/domain"
)

// AccessHandler administra los vínculos investor -> company.
// Solo el investee dueño otorga o revoca acceso sobre su propia empresa;
// el investee sale siempre del token y el investor del body.
type AccessHandler struct {
	uc *access.UseCase
}

// NewAccessHandler construye el handler de acceso.
func NewAccessHandler(uc *access.UseCase) *AccessHandler {
	return &AccessHandler{uc: uc}
}

// Grant godoc
// @Summary      Otorgar a un investor acceso de lectura sobre la empresa propia
// @Tags         access
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GrantAccessRequest  true  "investor_id a vincular"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/access/grant [post]
func (h *AccessHandler) Grant(c *fiber.Ctx) error {
	investorID, err := h.parseInvestorID(c)
	if err != nil {
		return err // respuesta ya escrita
	}
	if err := h.uc.Grant(GetUserID(c), investorID); err != nil {
		return accessError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Revoke godoc
// @Summary      Revocar el acceso de un investor sobre la empresa propia
// @Tags         access
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GrantAccessRequest  true  "investor_id a desvincular"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/access/revoke [post]
func (h *AccessHandler) Revoke(c *fiber.Ctx) error {
	investorID, err := h.parseInvestorID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Revoke(GetUserID(c), investorID); err != nil {
		return accessError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AccessHandler) parseInvestorID(c *fiber.Ctx) (string, error) {
	var in dto.GrantAccessRequest
	if err := c.BodyParser(&in); err != nil {
		return "", c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.InvestorID == "" {
		return "", c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "investor_id es requerido"})
	}
	return in.InvestorID, nil
}

func accessError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tiene una empresa propia sobre la cual administrar accesos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "investor no encontrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STORAGE", Message: "error de almacenamiento, intente de nuevo"})
	}
}
