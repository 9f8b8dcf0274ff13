package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/revenue-analytics-api/internal/application/dto"
	"github.com/jhoicas/revenue-analytics-api/internal/domain"
	"github.com/jhoicas/revenue-analytics-api/internal/domain/analysis"
	"github.com/jhoicas/revenue-analytics-api/internal/domain/entity"
	"github.com/jhoicas/revenue-analytics-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// UploadUseCase procesa archivos subidos por un investee:
// parseo -> clasificación -> normalización -> upsert por (company, tipo).
type UploadUseCase struct {
	companyRepo repository.CompanyRepository
	datasetRepo repository.DatasetRepository
	parser      FileParser
}

// NewUploadUseCase construye el caso de uso de subida.
func NewUploadUseCase(companyRepo repository.CompanyRepository, datasetRepo repository.DatasetRepository, parser FileParser) *UploadUseCase {
	return &UploadUseCase{companyRepo: companyRepo, datasetRepo: datasetRepo, parser: parser}
}

// Upload procesa un archivo para la empresa del investee autenticado.
// Cada tabla (hoja o array JSON) se clasifica y persiste por separado;
// las tablas sin clasificar producen una advertencia y no se persisten,
// manteniendo el conjunto cerrado de tipos en la base.
func (uc *UploadUseCase) Upload(userID, filename string, r io.Reader) (*dto.UploadResponse, error) {
	company, err := uc.companyRepo.GetByInvestee(userID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrForbidden // solo investees con empresa pueden subir
	}

	tables, err := uc.parser.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataFormat, err)
	}

	resp := &dto.UploadResponse{}
	saved := 0
	for _, table := range tables {
		result, ok, err := uc.ingestTable(company.ID, filename, table)
		if err != nil {
			return nil, err
		}
		resp.Results = append(resp.Results, result)
		if ok {
			saved++
		}
	}
	if saved == 0 && !hasUsableRows(tables) {
		return nil, fmt.Errorf("%w: el archivo no contiene filas usables", domain.ErrDataFormat)
	}
	return resp, nil
}

// ingestTable clasifica, normaliza y persiste una tabla. Devuelve ok=false
// cuando la tabla se reporta pero no se persiste (vacía o sin clasificar).
func (uc *UploadUseCase) ingestTable(companyID, filename string, table analysis.Table) (dto.UploadResult, bool, error) {
	source := table.Name
	if source == "" {
		source = filename
	}
	result := dto.UploadResult{SourceFile: source}

	dataType := analysis.Detect(source, table.Headers)
	if dataType == analysis.TypeUnknown {
		// El nombre de hoja genérico ("Sheet1") no clasifica; probar el archivo.
		dataType = analysis.Detect(filename, table.Headers)
	}
	result.DataType = dataType

	normalized, issues := analysis.Normalize(table)
	result.Issues = issues
	result.RowCount = len(normalized.Rows)

	if len(normalized.Rows) == 0 {
		result.Warning = "tabla sin filas usables, no se guardó"
		return result, false, nil
	}
	if dataType == analysis.TypeUnknown {
		result.Warning = "no se pudo clasificar en un tipo de análisis conocido, no se guardó"
		return result, false, nil
	}

	payload, err := json.Marshal(normalized.Rows)
	if err != nil {
		return result, false, fmt.Errorf("serializar dataset: %w", err)
	}
	ds := &entity.CompanyDataset{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		DataType:     dataType,
		Payload:      payload,
		SourceFile:   filename,
		RowCount:     len(normalized.Rows),
		TotalRevenue: totalRevenue(normalized),
		UploadedAt:   time.Now(),
	}
	if err := uc.datasetRepo.Save(ds); err != nil {
		return result, false, err
	}
	return result, true, nil
}

// totalRevenue suma la columna principal de ingresos de la tabla normalizada.
// Cero cuando no hay columna numérica reconocible.
func totalRevenue(t analysis.Table) decimal.Decimal {
	col, ok := analysis.NumericColumn(t, "Revenue", "Quarter 4 Revenue", "Revenue Share")
	if !ok {
		return decimal.Zero
	}
	for _, cs := range analysis.Describe(t).Numeric {
		if cs.Name == col {
			return cs.Sum
		}
	}
	return decimal.Zero
}

func hasUsableRows(tables []analysis.Table) bool {
	for _, t := range tables {
		if len(t.Rows) > 0 {
			return true
		}
	}
	return false
}
