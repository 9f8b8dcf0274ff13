package usecase

import (
	"fmt"
	"strings"

	"github.com/jhoicas/revenue-analytics-api/internal/domain/analysis"
	"github.com/shopspring/decimal"
)

// Contenido local determinístico para cuando el servicio de narrativas no
// está disponible: se construye solo con agregados descriptivos de la tabla,
// así la vista nunca queda vacía.

var typeLabels = map[string]string{
	analysis.TypeQuarterlyRevenue:      "ingresos trimestrales",
	analysis.TypeRevenueBridge:         "puente de ingresos",
	analysis.TypeGeographic:            "ingresos por geografía",
	analysis.TypeCustomerConcentration: "concentración de clientes",
	analysis.TypeMonthlyTrend:          "tendencia mensual de ingresos",
}

// Columnas candidatas a "valor principal" y a "etiqueta" de cada fila,
// según los esquemas canónicos de los cinco tipos de análisis.
var (
	valueCandidates = []string{"Revenue", "Quarter 4 Revenue", "Revenue Share", "Net Change"}
	labelCandidates = []string{"Customer Name", "Country", "Region", "Month", "Category"}
)

// FallbackSummary produce un resumen textual determinístico de la tabla.
func FallbackSummary(dataType string, t analysis.Table) string {
	label, ok := typeLabels[dataType]
	if !ok {
		label = dataType
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Resumen de %s: %d registros.", label, len(t.Rows))

	valueCol, hasValue := analysis.NumericColumn(t, valueCandidates...)
	if hasValue {
		stats := analysis.Describe(t)
		for _, cs := range stats.Numeric {
			if cs.Name != valueCol {
				continue
			}
			fmt.Fprintf(&b, " %s total: %s; promedio: %s; máximo: %s.",
				valueCol, money(cs.Sum), money(cs.Mean), money(cs.Max))
		}

		top := analysis.TopN(t, valueCol, 3)
		if nameCol := labelColumn(t); nameCol != "" && len(top) > 0 {
			names := make([]string, 0, len(top))
			for _, row := range top {
				name, _ := row[nameCol].(string)
				val, _ := row[valueCol].(float64)
				names = append(names, fmt.Sprintf("%s (%s)", name, money(decimal.NewFromFloat(val))))
			}
			fmt.Fprintf(&b, " Principales por %s: %s.", valueCol, strings.Join(names, ", "))
		}
	}
	return b.String()
}

// FallbackAnswer responde una pregunta con reglas simples sobre agregados:
// totales, mejores registros, promedios y conteos.
func FallbackAnswer(dataType string, t analysis.Table, question string) string {
	q := strings.ToLower(question)
	valueCol, hasValue := analysis.NumericColumn(t, valueCandidates...)
	nameCol := labelColumn(t)

	contains := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(q, w) {
				return true
			}
		}
		return false
	}

	switch {
	case hasValue && contains("total", "suma", "sum"):
		stats := analysis.Describe(t)
		for _, cs := range stats.Numeric {
			if cs.Name == valueCol {
				return fmt.Sprintf("El total de %s es %s.", valueCol, money(cs.Sum))
			}
		}
	case hasValue && nameCol != "" && contains("top", "mejor", "mayor", "best", "principal"):
		top := analysis.TopN(t, valueCol, 1)
		if len(top) == 1 {
			name, _ := top[0][nameCol].(string)
			val, _ := top[0][valueCol].(float64)
			return fmt.Sprintf("El mayor valor de %s es %s con %s.", valueCol, name, money(decimal.NewFromFloat(val)))
		}
	case hasValue && contains("promedio", "media", "average", "mean"):
		stats := analysis.Describe(t)
		for _, cs := range stats.Numeric {
			if cs.Name == valueCol {
				return fmt.Sprintf("El promedio de %s es %s.", valueCol, money(cs.Mean))
			}
		}
	case contains("cuántos", "cuantos", "count", "número", "numero", "registros"):
		return fmt.Sprintf("Hay %d registros en los datos de %s.", len(t.Rows), displayLabel(dataType))
	}

	return fmt.Sprintf("Puedo ayudarte a analizar los datos de %s. Pregunta por totales, principales registros, promedios o conteos.",
		displayLabel(dataType))
}

func displayLabel(dataType string) string {
	if label, ok := typeLabels[dataType]; ok {
		return label
	}
	return dataType
}

// labelColumn elige la columna de etiqueta (nombre de cliente, país, mes).
func labelColumn(t analysis.Table) string {
	for _, cand := range labelCandidates {
		for _, h := range t.Headers {
			if h == cand {
				return h
			}
		}
	}
	for _, h := range t.Headers {
		for _, row := range t.Rows {
			if _, ok := row[h].(string); ok {
				return h
			}
		}
	}
	return ""
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
