package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/revenue-analytics-api/internal/application/dto"
	"github.com/jhoicas/revenue-analytics-api/internal/application/usecase"
)

// AIHandler expone las narrativas y el chat contextual por dataset.
type AIHandler struct {
	uc *usecase.NarrativeUseCase
}

// NewAIHandler construye el handler de narrativas.
func NewAIHandler(uc *usecase.NarrativeUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// Summarize godoc
// @Summary      Resumen narrativo de un dataset
// @Description  Genera la narrativa vía servicio externo, con degradación a resumen local.
// @Tags         ai
// @Security     Bearer
// @Produce      json
// @Param        id    path  string  true  "ID de la empresa"
// @Param        type  path  string  true  "Tipo de análisis"
// @Success      200  {object}  dto.SummaryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/datasets/{type}/summary [post]
func (h *AIHandler) Summarize(c *fiber.Ctx) error {
	resp, err := h.uc.Summarize(c.Context(), GetUserID(c), c.Params("id"), c.Params("type"))
	if err != nil {
		return datasetError(c, err)
	}
	return c.JSON(resp)
}

// Chat godoc
// @Summary      Pregunta en lenguaje natural sobre un dataset
// @Description  Cada turno envía el contexto del dataset más el historial del cliente; sin memoria servidor.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID de la empresa"
// @Param        type  path  string           true  "Tipo de análisis"
// @Param        body  body  dto.ChatRequest  true  "Pregunta e historial opcional"
// @Success      200  {object}  dto.ChatResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/datasets/{type}/chat [post]
func (h *AIHandler) Chat(c *fiber.Ctx) error {
	var in dto.ChatRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if strings.TrimSpace(in.Question) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "question es requerida"})
	}
	resp, err := h.uc.Chat(c.Context(), GetUserID(c), c.Params("id"), c.Params("type"), in)
	if err != nil {
		return datasetError(c, err)
	}
	return c.JSON(resp)
}
