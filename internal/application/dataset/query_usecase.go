package dataset

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jhoicas/revenue-analytics-api/internal/application/dto"
	"github.com/jhoicas/revenue-analytics-api/internal/domain"
	"github.com/jhoicas/revenue-analytics-api/internal/domain/analysis"
	"github.com/jhoicas/revenue-analytics-api/internal/domain/entity"
	"github.com/jhoicas/revenue-analytics-api/internal/domain/repository"
)

// QueryUseCase lecturas de datasets con chequeo de visibilidad por rol.
// El predicado de autorización se evalúa SIEMPRE antes de la lectura,
// nunca embebido en la construcción del query.
type QueryUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	accessRepo  repository.AccessRepository
	datasetRepo repository.DatasetRepository
}

// NewQueryUseCase construye el caso de uso de lecturas.
func NewQueryUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, accessRepo repository.AccessRepository, datasetRepo repository.DatasetRepository) *QueryUseCase {
	return &QueryUseCase{userRepo: userRepo, companyRepo: companyRepo, accessRepo: accessRepo, datasetRepo: datasetRepo}
}

// ListAccessibleCompanies devuelve las empresas visibles para el usuario:
// un investee ve solo su propia empresa; un investor, las vinculadas.
func (uc *QueryUseCase) ListAccessibleCompanies(userID string) (*dto.CompanyListResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	var companies []*entity.Company
	switch user.Role {
	case entity.RoleInvestee:
		company, err := uc.companyRepo.GetByInvestee(userID)
		if err != nil {
			return nil, err
		}
		if company != nil {
			companies = append(companies, company)
		}
	case entity.RoleInvestor:
		companies, err = uc.accessRepo.ListCompaniesForInvestor(userID)
		if err != nil {
			return nil, err
		}
	default:
		return nil, domain.ErrForbidden
	}

	resp := &dto.CompanyListResponse{Items: make([]dto.CompanyResponse, 0, len(companies))}
	for _, c := range companies {
		resp.Items = append(resp.Items, dto.CompanyResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt})
	}
	return resp, nil
}

// Authorize es el predicado de visibilidad: informa si el usuario puede leer
// los datasets de la empresa. ErrForbidden no distingue entre "no existe" y
// "sin acceso" para no filtrar existencia de datos.
func (uc *QueryUseCase) Authorize(userID, companyID string) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUnauthorized
	}
	switch user.Role {
	case entity.RoleInvestee:
		company, err := uc.companyRepo.GetByInvestee(userID)
		if err != nil {
			return err
		}
		if company == nil || company.ID != companyID {
			return domain.ErrForbidden
		}
		return nil
	case entity.RoleInvestor:
		ok, err := uc.accessRepo.HasAccess(userID, companyID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrForbidden
		}
		return nil
	}
	return domain.ErrForbidden
}

// Overview devuelve metadatos de los datasets de la empresa (sin payloads).
func (uc *QueryUseCase) Overview(userID, companyID string) (*dto.DatasetOverviewResponse, error) {
	if err := uc.Authorize(userID, companyID); err != nil {
		return nil, err
	}
	list, err := uc.datasetRepo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	resp := &dto.DatasetOverviewResponse{CompanyID: companyID, Datasets: make([]dto.DatasetMetaResponse, 0, len(list))}
	for _, ds := range list {
		resp.Datasets = append(resp.Datasets, dto.DatasetMetaResponse{
			DataType:     ds.DataType,
			SourceFile:   ds.SourceFile,
			RowCount:     ds.RowCount,
			TotalRevenue: ds.TotalRevenue,
			UploadedAt:   ds.UploadedAt,
		})
	}
	return resp, nil
}

// Get devuelve el payload normalizado de un dataset.
func (uc *QueryUseCase) Get(userID, companyID, dataType string) (*dto.DatasetResponse, error) {
	if !analysis.IsKnownType(dataType) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.Authorize(userID, companyID); err != nil {
		return nil, err
	}
	ds, err := uc.datasetRepo.Get(companyID, dataType)
	if err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := decodeRows(ds)
	if err != nil {
		return nil, err
	}
	return &dto.DatasetResponse{
		CompanyID:  ds.CompanyID,
		DataType:   ds.DataType,
		SourceFile: ds.SourceFile,
		RowCount:   ds.RowCount,
		UploadedAt: ds.UploadedAt,
		Rows:       rows,
	}, nil
}

// Table reconstruye la tabla normalizada de un dataset para los casos de uso
// de resumen y chat. Aplica el mismo predicado de autorización que Get.
func (uc *QueryUseCase) Table(userID, companyID, dataType string) (analysis.Table, error) {
	ds, err := uc.loadAuthorized(userID, companyID, dataType)
	if err != nil {
		return analysis.Table{}, err
	}
	rows, err := decodeRows(ds)
	if err != nil {
		return analysis.Table{}, err
	}
	return analysis.Table{Name: dataType, Headers: headersOf(rows), Rows: rows}, nil
}

// Delete elimina un dataset; solo el investee dueño de la empresa puede.
func (uc *QueryUseCase) Delete(userID, companyID, dataType string) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil || user.Role != entity.RoleInvestee {
		return domain.ErrForbidden
	}
	if err := uc.Authorize(userID, companyID); err != nil {
		return err
	}
	return uc.datasetRepo.Delete(companyID, dataType)
}

func (uc *QueryUseCase) loadAuthorized(userID, companyID, dataType string) (*entity.CompanyDataset, error) {
	if !analysis.IsKnownType(dataType) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.Authorize(userID, companyID); err != nil {
		return nil, err
	}
	ds, err := uc.datasetRepo.Get(companyID, dataType)
	if err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, domain.ErrNotFound
	}
	return ds, nil
}

func decodeRows(ds *entity.CompanyDataset) ([]analysis.Row, error) {
	var rows []analysis.Row
	if err := json.Unmarshal(ds.Payload, &rows); err != nil {
		return nil, fmt.Errorf("payload corrupto para %s/%s: %w", ds.CompanyID, ds.DataType, err)
	}
	return rows, nil
}

// headersOf deriva un orden estable (alfabético) de columnas; el orden
// original se pierde al serializar las filas como objetos JSON.
func headersOf(rows []analysis.Row) []string {
	seen := map[string]bool{}
	var headers []string
	for _, row := range rows {
		for col := range row {
			if !seen[col] {
				seen[col] = true
				headers = append(headers, col)
			}
		}
	}
	sort.Strings(headers)
	return headers
}
