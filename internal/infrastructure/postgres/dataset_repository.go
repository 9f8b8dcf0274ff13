package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/revenue-analytics-api/internal/domain/entity"
	"github.com/jhoicas/revenue-analytics-api/internal/domain/repository"
)

var _ repository.DatasetRepository = (*DatasetRepo)(nil)

// DatasetRepo implementación del puerto DatasetRepository sobre PostgreSQL
// (tabla company_data, payload JSONB).
type DatasetRepo struct {
	q Querier
}

// NewDatasetRepository construye el adaptador de datasets.
func NewDatasetRepository(q Querier) *DatasetRepo {
	return &DatasetRepo{q: q}
}

// Save upsert por (company_id, data_type): una re-subida reemplaza el
// registro completo en una sola sentencia (last-write-wins, sin token de
// concurrencia; aceptado para el perfil de escritura de la aplicación).
func (r *DatasetRepo) Save(ds *entity.CompanyDataset) error {
	query := `
		INSERT INTO company_data (id, company_id, data_type, payload, source_file, row_count, total_revenue, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (company_id, data_type) DO UPDATE SET
			payload       = EXCLUDED.payload,
			source_file   = EXCLUDED.source_file,
			row_count     = EXCLUDED.row_count,
			total_revenue = EXCLUDED.total_revenue,
			uploaded_at   = EXCLUDED.uploaded_at`
	_, err := r.q.Exec(context.Background(), query,
		ds.ID, ds.CompanyID, ds.DataType, ds.Payload, ds.SourceFile,
		ds.RowCount, ds.TotalRevenue, ds.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert dataset %s/%s: %w", ds.CompanyID, ds.DataType, err)
	}
	return nil
}

// Get obtiene un dataset con payload por (company_id, data_type).
func (r *DatasetRepo) Get(companyID, dataType string) (*entity.CompanyDataset, error) {
	query := `
		SELECT id, company_id, data_type, payload, source_file, row_count, total_revenue, uploaded_at
		FROM company_data WHERE company_id = $1 AND data_type = $2`
	var ds entity.CompanyDataset
	err := r.q.QueryRow(context.Background(), query, companyID, dataType).Scan(
		&ds.ID, &ds.CompanyID, &ds.DataType, &ds.Payload, &ds.SourceFile,
		&ds.RowCount, &ds.TotalRevenue, &ds.UploadedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dataset: %w", err)
	}
	return &ds, nil
}

// ListByCompany devuelve metadatos (sin payload) de los datasets de la empresa.
func (r *DatasetRepo) ListByCompany(companyID string) ([]*entity.CompanyDataset, error) {
	query := `
		SELECT id, company_id, data_type, source_file, row_count, total_revenue, uploaded_at
		FROM company_data WHERE company_id = $1 ORDER BY data_type`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	defer rows.Close()

	var list []*entity.CompanyDataset
	for rows.Next() {
		var ds entity.CompanyDataset
		if err := rows.Scan(&ds.ID, &ds.CompanyID, &ds.DataType, &ds.SourceFile,
			&ds.RowCount, &ds.TotalRevenue, &ds.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan dataset: %w", err)
		}
		list = append(list, &ds)
	}
	return list, rows.Err()
}

// Delete elimina un dataset por (company_id, data_type).
func (r *DatasetRepo) Delete(companyID, dataType string) error {
	query := `DELETE FROM company_data WHERE company_id = $1 AND data_type = $2`
	_, err := r.q.Exec(context.Background(), query, companyID, dataType)
	if err != nil {
		return fmt.Errorf("delete dataset: %w", err)
	}
	return nil
}
