package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/revenue-analytics-api/internal/application/dataset"
	"github.com/jhoicas/revenue-analytics-api/internal/application/dto"
	"github.com/jhoicas/revenue-analytics-api/internal/domain"
)

// Límite de tamaño por archivo subido (20 MB).
const maxUploadBytes = 20 << 20

// DatasetHandler maneja subida y lectura de datasets.
type DatasetHandler struct {
	uploads *dataset.UploadUseCase
	queries *dataset.QueryUseCase
}

// NewDatasetHandler construye el handler de datasets.
func NewDatasetHandler(uploads *dataset.UploadUseCase, queries *dataset.QueryUseCase) *DatasetHandler {
	return &DatasetHandler{uploads: uploads, queries: queries}
}

// Upload godoc
// @Summary      Subir archivo de datos de ingresos
// @Description  Acepta JSON (array de objetos planos) o Excel (.xlsx). Cada
//               tabla se clasifica en uno de los cinco tipos de análisis y se
//               guarda por (empresa, tipo) con semántica de reemplazo.
// @Tags         datasets
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "archivo .json o .xlsx"
// @Success      200   {object}  dto.UploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/datasets/upload [post]
func (h *DatasetHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo multipart 'file' requerido"})
	}
	if fileHeader.Size > maxUploadBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "el archivo excede el límite de 20 MB"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	defer file.Close()

	out, err := h.uploads.Upload(GetUserID(c), fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDataFormat):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "DATA_FORMAT", Message: err.Error()})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo un investee con empresa puede subir datos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STORAGE", Message: "no se pudo guardar el dataset, intente de nuevo"})
	}
	return c.JSON(out)
}

// Overview godoc
// @Summary      Overview de datasets de una empresa
// @Tags         datasets
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.DatasetOverviewResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/datasets [get]
func (h *DatasetHandler) Overview(c *fiber.Ctx) error {
	out, err := h.queries.Overview(GetUserID(c), c.Params("id"))
	if err != nil {
		return datasetError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Payload normalizado de un dataset
// @Tags         datasets
// @Security     Bearer
// @Produce      json
// @Param        id    path  string  true  "ID de la empresa"
// @Param        type  path  string  true  "tipo de análisis"
// @Success      200   {object}  dto.DatasetResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/datasets/{type} [get]
func (h *DatasetHandler) Get(c *fiber.Ctx) error {
	out, err := h.queries.Get(GetUserID(c), c.Params("id"), c.Params("type"))
	if err != nil {
		return datasetError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar un dataset
// @Tags         datasets
// @Security     Bearer
// @Param        id    path  string  true  "ID de la empresa"
// @Param        type  path  string  true  "tipo de análisis"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/datasets/{type} [delete]
func (h *DatasetHandler) Delete(c *fiber.Ctx) error {
	if err := h.queries.Delete(GetUserID(c), c.Params("id"), c.Params("type")); err != nil {
		return datasetError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// datasetError mapea errores de dominio a respuestas HTTP.
// ErrForbidden nunca distingue "no existe" de "sin acceso".
func datasetError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_TYPE", Message: "tipo de análisis inválido"})
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "dataset no encontrado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STORAGE", Message: "error de almacenamiento, intente de nuevo"})
}
