package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyDataset es un dataset normalizado persistido por (company, data_type).
// La re-subida del mismo tipo reemplaza el registro completo (upsert atómico,
// last-write-wins); nunca hay actualización parcial del payload.
type CompanyDataset struct {
	ID         string
	CompanyID  string
	DataType   string // ver analysis.Type*
	Payload    []byte // JSON normalizado (array de objetos planos)
	SourceFile string
	RowCount   int
	// TotalRevenue agregado de la columna principal de ingresos, calculado
	// en la subida; NUMERIC en la base para consultas de portafolio.
	TotalRevenue decimal.Decimal
	UploadedAt   time.Time
}
