package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/jhoicas/revenue-analytics-api/internal/domain/analysis"
)

// ParseJSON lee un array JSON de objetos planos y lo convierte en tabla.
// Valores anidados (objetos o arrays dentro de una celda) se rechazan:
// el modelo de datos es estrictamente tabular.
func ParseJSON(name string, r io.Reader) (analysis.Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber() // evitar pérdida de precisión antes de la normalización

	var records []map[string]interface{}
	if err := dec.Decode(&records); err != nil {
		return analysis.Table{}, fmt.Errorf("JSON inválido: se espera un array de objetos planos: %w", err)
	}

	table := analysis.Table{Name: name}
	headerSet := map[string]bool{}
	for i, record := range records {
		row := make(analysis.Row, len(record))
		for key, val := range record {
			switch val.(type) {
			case map[string]interface{}, []interface{}:
				return analysis.Table{}, fmt.Errorf("registro %d, campo %q: valores anidados no soportados", i, key)
			}
			row[key] = val
			headerSet[key] = true
		}
		table.Rows = append(table.Rows, row)
	}

	// El orden de claves de un objeto JSON no es observable tras el decode;
	// se fija un orden alfabético estable.
	for key := range headerSet {
		table.Headers = append(table.Headers, key)
	}
	sort.Strings(table.Headers)
	return table, nil
}
