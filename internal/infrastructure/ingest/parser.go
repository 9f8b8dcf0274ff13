package ingest

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jhoicas/revenue-analytics-api/internal/application/dataset"
	"github.com/jhoicas/revenue-analytics-api/internal/domain/analysis"
)

// Verificar en tiempo de compilación que Parser implementa el puerto.
var _ dataset.FileParser = (*Parser)(nil)

// Parser despacha por extensión a los parsers de JSON y Excel.
type Parser struct{}

// NewParser construye el parser de archivos subidos.
func NewParser() *Parser {
	return &Parser{}
}

// Parse convierte el archivo en tablas uniformes: una por hoja para
// workbooks, una sola para arrays JSON.
func (p *Parser) Parse(filename string, r io.Reader) ([]analysis.Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		table, err := ParseJSON(baseName(filename), r)
		if err != nil {
			return nil, err
		}
		return []analysis.Table{table}, nil
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return ParseExcel(r)
	default:
		return nil, fmt.Errorf("extensión no soportada %q: se aceptan .json y .xlsx", filepath.Ext(filename))
	}
}

// baseName quita la extensión para usar el nombre como pista de clasificación.
func baseName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
