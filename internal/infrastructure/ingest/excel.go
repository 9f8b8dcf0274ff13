package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/revenue-analytics-api/internal/domain/analysis"
	"github.com/xuri/excelize/v2"
)

// Cuántas filas iniciales se inspeccionan buscando el encabezado.
// Las exportaciones suelen traer título o filas vacías antes de la tabla.
const headerScanRows = 5

// ParseExcel abre un workbook y produce una tabla por hoja con datos.
// Las celdas llegan como texto (formato de celda aplicado); la coerción de
// tipos ocurre después, en la normalización.
func ParseExcel(r io.Reader) ([]analysis.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir workbook: %w", err)
	}
	defer f.Close()

	var tables []analysis.Table
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("leer hoja %q: %w", sheet, err)
		}
		table, ok := sheetToTable(sheet, rows)
		if !ok {
			continue // hoja vacía o sin encabezado detectable
		}
		tables = append(tables, table)
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("el workbook no contiene hojas con datos tabulares")
	}
	return tables, nil
}

// sheetToTable detecta la fila de encabezado y mapea el resto como filas.
func sheetToTable(sheet string, rows [][]string) (analysis.Table, bool) {
	headerIdx, headers := detectHeaderRow(rows)
	if headerIdx < 0 {
		return analysis.Table{}, false
	}

	table := analysis.Table{Name: sheet, Headers: headers}
	for _, raw := range rows[headerIdx+1:] {
		if isEmptyRow(raw) {
			continue
		}
		row := make(analysis.Row, len(headers))
		for i, h := range headers {
			if i < len(raw) {
				row[h] = raw[i]
			} else {
				row[h] = nil // GetRows recorta celdas vacías al final
			}
		}
		table.Rows = append(table.Rows, row)
	}
	if len(table.Rows) == 0 {
		return analysis.Table{}, false
	}
	return table, true
}

// detectHeaderRow busca entre las primeras filas la más densa en celdas de
// texto no numérico: esa es la fila de encabezado.
func detectHeaderRow(rows [][]string) (int, []string) {
	limit := headerScanRows
	if len(rows) < limit {
		limit = len(rows)
	}

	bestIdx, bestScore := -1, 0
	for i := 0; i < limit; i++ {
		score := 0
		for _, cell := range rows[i] {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if !looksNumeric(cell) {
				score++
			}
		}
		// Empates favorecen la fila más temprana.
		if score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	if bestIdx < 0 || bestScore < 2 {
		return -1, nil // una tabla real tiene al menos dos columnas con nombre
	}

	var headers []string
	for j, cell := range rows[bestIdx] {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			cell = fmt.Sprintf("Column %d", j+1)
		}
		headers = append(headers, cell)
	}
	return bestIdx, headers
}

func looksNumeric(s string) bool {
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return false
	}
	dot, digit := false, false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case r == '-' && i == 0:
		case r == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return digit
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
