package analysis

// Tipos de análisis soportados (conjunto cerrado).
// Coinciden con el CHECK de la columna data_type en company_data.
const (
	TypeQuarterlyRevenue      = "quarterly_revenue"
	TypeRevenueBridge         = "revenue_bridge"
	TypeGeographic            = "geographic"
	TypeCustomerConcentration = "customer_concentration"
	TypeMonthlyTrend          = "monthly_trend"
	TypeUnknown               = "unknown"
)

// KnownTypes devuelve los cinco tipos de análisis válidos (sin unknown).
func KnownTypes() []string {
	return []string{
		TypeQuarterlyRevenue,
		TypeRevenueBridge,
		TypeGeographic,
		TypeCustomerConcentration,
		TypeMonthlyTrend,
	}
}

// IsKnownType informa si s es uno de los cinco tipos válidos.
func IsKnownType(s string) bool {
	switch s {
	case TypeQuarterlyRevenue, TypeRevenueBridge, TypeGeographic,
		TypeCustomerConcentration, TypeMonthlyTrend:
		return true
	}
	return false
}

// Row es una fila tabular: columna -> valor de celda.
// Tras Normalize las celdas contienen solo string, float64, bool o nil.
type Row map[string]interface{}

// Table es la representación uniforme de una tabla subida
// (hoja de Excel o array JSON de objetos planos).
type Table struct {
	Name    string   // nombre de hoja o de archivo origen
	Headers []string // orden estable de columnas
	Rows    []Row
}

// CellIssue registra una celda que no pudo coercionarse durante Normalize.
// Se reporta al usuario como diagnóstico; la celda queda en nil.
type CellIssue struct {
	Row    int    `json:"row"` // índice de fila, base 0
	Column string `json:"column"`
	Reason string `json:"reason"`
}
