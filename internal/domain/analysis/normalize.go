package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Precisión de redondeo para valores numéricos: estabilidad de display
// entre subidas repetidas del mismo archivo.
const numericPrecision = 2

// Layouts de fecha aceptados en celdas de texto. El primero es también el
// formato de salida, lo que garantiza la idempotencia de Normalize.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"02-Jan-2006",
}

// Normalize convierte una tabla heterogénea en una representación uniforme y
// serializable: solo string, float64 (redondeado), bool y nil; fechas como
// ISO-8601. Es idempotente: Normalize(Normalize(t)) == Normalize(t).
//
// Una celda no coercionable se sustituye por nil y se registra en issues con
// su ubicación (fila, columna); el resto de la tabla sigue siendo usable.
func Normalize(t Table) (Table, []CellIssue) {
	out := Table{Name: t.Name, Headers: append([]string(nil), t.Headers...)}
	out.Rows = make([]Row, 0, len(t.Rows))

	var issues []CellIssue
	for i, row := range t.Rows {
		norm := make(Row, len(row))
		for _, col := range out.Headers {
			val, ok := row[col]
			if !ok {
				norm[col] = nil
				continue
			}
			coerced, err := normalizeCell(val)
			if err != nil {
				issues = append(issues, CellIssue{Row: i, Column: col, Reason: err.Error()})
				norm[col] = nil
				continue
			}
			norm[col] = coerced
		}
		out.Rows = append(out.Rows, norm)
	}
	return out, issues
}

// normalizeCell coerciona un valor de celda a un primitivo JSON.
func normalizeCell(v interface{}) (interface{}, error) {
	switch c := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return c, nil
	case float64:
		return roundFloat(c), nil
	case float32:
		return roundFloat(float64(c)), nil
	case int:
		return roundFloat(float64(c)), nil
	case int32:
		return roundFloat(float64(c)), nil
	case int64:
		return roundFloat(float64(c)), nil
	case json.Number:
		f, err := c.Float64()
		if err != nil {
			return nil, fmt.Errorf("número inválido: %s", c.String())
		}
		return roundFloat(f), nil
	case decimal.Decimal:
		return c.Round(numericPrecision).InexactFloat64(), nil
	case time.Time:
		return c.UTC().Format(dateLayouts[0]), nil
	case string:
		return normalizeString(c), nil
	default:
		return nil, fmt.Errorf("tipo de celda no soportado: %T", v)
	}
}

// normalizeString decide si un texto representa un número o una fecha.
// El texto que no coincide con nada se conserva tal cual.
func normalizeString(s string) interface{} {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}

	if f, ok := parseNumeric(trimmed); ok {
		return roundFloat(f)
	}

	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return ts.UTC().Format(dateLayouts[0])
		}
	}
	return trimmed
}

// parseNumeric acepta números con símbolo de moneda, separadores de miles
// y sufijo de porcentaje, como llegan de exportaciones de Excel.
func parseNumeric(s string) (float64, bool) {
	cleaned := strings.TrimPrefix(s, "$")
	cleaned = strings.TrimSuffix(cleaned, "%")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}

func roundFloat(f float64) float64 {
	return decimal.NewFromFloat(f).Round(numericPrecision).InexactFloat64()
}
