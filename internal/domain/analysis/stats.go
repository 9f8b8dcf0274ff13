package analysis

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ColumnStats agregados descriptivos de una columna numérica.
type ColumnStats struct {
	Name  string          `json:"name"`
	Count int             `json:"count"`
	Sum   decimal.Decimal `json:"sum"`
	Mean  decimal.Decimal `json:"mean"`
	Min   decimal.Decimal `json:"min"`
	Max   decimal.Decimal `json:"max"`
}

// Stats resumen descriptivo de una tabla normalizada.
// Alimenta el overview del dashboard y el resumen local de respaldo
// cuando el servicio de narrativas no está disponible.
type Stats struct {
	RowCount int           `json:"row_count"`
	Numeric  []ColumnStats `json:"numeric"`
}

// Describe calcula agregados por columna numérica con aritmética decimal
// para que el redondeo sea estable entre ejecuciones.
func Describe(t Table) Stats {
	stats := Stats{RowCount: len(t.Rows)}
	for _, col := range t.Headers {
		cs := ColumnStats{Name: col}
		for _, row := range t.Rows {
			f, ok := row[col].(float64)
			if !ok {
				continue
			}
			d := decimal.NewFromFloat(f)
			if cs.Count == 0 {
				cs.Min, cs.Max = d, d
			} else {
				if d.LessThan(cs.Min) {
					cs.Min = d
				}
				if d.GreaterThan(cs.Max) {
					cs.Max = d
				}
			}
			cs.Sum = cs.Sum.Add(d)
			cs.Count++
		}
		if cs.Count == 0 {
			continue
		}
		cs.Mean = cs.Sum.Div(decimal.NewFromInt(int64(cs.Count))).Round(numericPrecision)
		cs.Sum = cs.Sum.Round(numericPrecision)
		stats.Numeric = append(stats.Numeric, cs)
	}
	return stats
}

// TopN devuelve las n filas con mayor valor en la columna indicada
// (filas sin valor numérico en esa columna quedan al final y fuera del corte).
func TopN(t Table, column string, n int) []Row {
	rows := append([]Row(nil), t.Rows...)
	sort.SliceStable(rows, func(i, j int) bool {
		a, aok := rows[i][column].(float64)
		b, bok := rows[j][column].(float64)
		if aok != bok {
			return aok
		}
		return a > b
	})
	if n > len(rows) {
		n = len(rows)
	}
	return rows[:n]
}

// NumericColumn devuelve la primera columna numérica de la tabla que coincide
// con alguno de los candidatos, o la primera numérica si ninguno coincide.
// Se usa para elegir la columna "principal" de ingresos en el fallback.
func NumericColumn(t Table, candidates ...string) (string, bool) {
	numeric := func(col string) bool {
		for _, row := range t.Rows {
			if _, ok := row[col].(float64); ok {
				return true
			}
		}
		return false
	}
	for _, cand := range candidates {
		for _, col := range t.Headers {
			if col == cand && numeric(col) {
				return col, true
			}
		}
	}
	for _, col := range t.Headers {
		if numeric(col) {
			return col, true
		}
	}
	return "", false
}
