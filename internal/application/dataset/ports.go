package dataset

import (
	"io"

	"github.com/jhoicas/revenue-analytics-api/internal/domain/analysis"
)

// FileParser define el puerto de ingesta de archivos. La implementación
// (encoding/json + excelize) vive en infrastructure/ingest.
// Un workbook produce una tabla por hoja; un JSON produce una sola tabla.
type FileParser interface {
	Parse(filename string, r io.Reader) ([]analysis.Table, error)
}
