package dto

import (
	"time"

	"github.com/jhoicas/revenue-analytics-api/internal/domain/analysis"
	"github.com/shopspring/decimal"
)

// UploadResult resultado de procesar una tabla del archivo subido.
// Warning se llena cuando la tabla se reportó pero no se guardó
// (vacía o sin clasificar); no es un error.
type UploadResult struct {
	SourceFile string               `json:"source_file"`
	DataType   string               `json:"data_type"`
	RowCount   int                  `json:"row_count"`
	Issues     []analysis.CellIssue `json:"issues,omitempty"`
	Warning    string               `json:"warning,omitempty"`
}

// UploadResponse agrupa los resultados de una subida multiarchivo
// (un workbook con varias hojas produce un resultado por hoja).
type UploadResponse struct {
	Results []UploadResult `json:"results"`
}

// DatasetMetaResponse metadatos de un dataset (sin payload), para el overview.
type DatasetMetaResponse struct {
	DataType     string          `json:"data_type"`
	SourceFile   string          `json:"source_file"`
	RowCount     int             `json:"row_count"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	UploadedAt   time.Time       `json:"uploaded_at"`
}

// DatasetOverviewResponse overview de los datasets de una empresa.
type DatasetOverviewResponse struct {
	CompanyID string                `json:"company_id"`
	Datasets  []DatasetMetaResponse `json:"datasets"`
}

// DatasetResponse payload normalizado de un dataset.
type DatasetResponse struct {
	CompanyID  string         `json:"company_id"`
	DataType   string         `json:"data_type"`
	SourceFile string         `json:"source_file"`
	RowCount   int            `json:"row_count"`
	UploadedAt time.Time      `json:"uploaded_at"`
	Rows       []analysis.Row `json:"rows"`
}
