package analysis

import "strings"

// Heurísticas de clasificación en dos pasos:
//  1. Palabras clave en el nombre de archivo/hoja (los archivos de exportación
//     llegan como Quarterly_Revenue.json, Country_wise.xlsx, etc.).
//  2. Huellas en los encabezados de columna cuando el nombre no decide
//     (ej. la presencia de "Churned Revenue" implica revenue_bridge).
//
// Una entrada sin coincidencias produce TypeUnknown: advertencia de
// clasificación para el caller, nunca un error.

var nameKeywords = []struct {
	keyword string
	dtype   string
}{
	{"quarterlyrevenue", TypeQuarterlyRevenue},
	{"revenuebridge", TypeRevenueBridge},
	{"countrywise", TypeGeographic},
	{"geographic", TypeGeographic},
	{"customerconcentration", TypeCustomerConcentration},
	{"monthonmonth", TypeMonthlyTrend},
	{"monthlyrevenue", TypeMonthlyTrend},
	{"monthlytrend", TypeMonthlyTrend},
}

// Detect clasifica una tabla por nombre y encabezados.
// name puede ser el nombre del archivo subido o de la hoja del workbook.
func Detect(name string, headers []string) string {
	folded := foldName(name)
	for _, kw := range nameKeywords {
		if strings.Contains(folded, kw.keyword) {
			return kw.dtype
		}
	}
	return detectByHeaders(headers)
}

// detectByHeaders inspecciona huellas específicas de cada categoría.
// El orden importa: las huellas más distintivas se evalúan primero.
func detectByHeaders(headers []string) string {
	set := make(map[string]bool, len(headers))
	for _, h := range headers {
		set[strings.ToLower(strings.TrimSpace(h))] = true
	}
	hasPrefix := func(prefix string) bool {
		for h := range set {
			if strings.HasPrefix(h, prefix) {
				return true
			}
		}
		return false
	}

	switch {
	case set["churned revenue"] || set["new revenue"] && set["expansion revenue"]:
		return TypeRevenueBridge
	case set["percentage of variance"] || set["variance"] && hasPrefix("quarter"):
		return TypeQuarterlyRevenue
	case set["revenue share"]:
		return TypeCustomerConcentration
	case set["country"] && set["revenue"]:
		return TypeGeographic
	case set["region"] && set["revenue"]:
		return TypeGeographic
	case set["month"] && set["revenue"]:
		return TypeMonthlyTrend
	}
	return TypeUnknown
}

// foldName baja a minúsculas y elimina separadores para comparar
// "Quarterly_Revenue", "quarterly-revenue" y "Quarterly Revenue" por igual.
func foldName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch r {
		case '_', '-', ' ', '.':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
