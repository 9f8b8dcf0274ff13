package repository

import "github.com/jhoicas/revenue-analytics-api/internal/domain/entity"

// DatasetRepository define el puerto de persistencia para CompanyDataset.
// Save tiene semántica upsert por (company_id, data_type): el registro se
// reemplaza completo en una sola sentencia (last-write-wins).
type DatasetRepository interface {
	Save(ds *entity.CompanyDataset) error
	Get(companyID, dataType string) (*entity.CompanyDataset, error)
	// ListByCompany devuelve metadatos (sin payload) para el overview.
	ListByCompany(companyID string) ([]*entity.CompanyDataset, error)
	Delete(companyID, dataType string) error
}
