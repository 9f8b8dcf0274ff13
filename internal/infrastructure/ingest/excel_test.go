package ingest_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/revenue-analytics-api/internal/infrastructure/ingest"
)

// buildWorkbook arma un .xlsx en memoria con las filas indicadas por hoja.
func buildWorkbook(t *testing.T, sheets map[string][][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return bytes.NewReader(buf.Bytes())
}

func TestParseExcel_HojaSimple(t *testing.T) {
	r := buildWorkbook(t, map[string][][]interface{}{
		"Country_wise": {
			{"Country", "Revenue"},
			{"Colombia", 1200.5},
			{"Chile", 800},
		},
	})

	tables, err := ingest.ParseExcel(r)
	require.NoError(t, err)
	require.Len(t, tables, 1)

	table := tables[0]
	assert.Equal(t, "Country_wise", table.Name)
	assert.Equal(t, []string{"Country", "Revenue"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Colombia", table.Rows[0]["Country"])
	// Las celdas llegan como texto; la coerción ocurre en la normalización.
	assert.Equal(t, "1200.5", table.Rows[0]["Revenue"])
}

// Exportaciones con título encima de la tabla: el encabezado real se
// detecta entre las primeras filas por densidad de texto no numérico.
func TestParseExcel_TituloAntesDelEncabezado(t *testing.T) {
	r := buildWorkbook(t, map[string][][]interface{}{
		"Datos": {
			{"Reporte de ingresos 2024"},
			{},
			{"Month", "Revenue"},
			{"2024-01", 100},
			{"2024-02", 200},
		},
	})

	tables, err := ingest.ParseExcel(r)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, []string{"Month", "Revenue"}, tables[0].Headers)
	assert.Len(t, tables[0].Rows, 2)
}

func TestParseExcel_FilasVaciasIntermediasSeOmiten(t *testing.T) {
	r := buildWorkbook(t, map[string][][]interface{}{
		"Datos": {
			{"Month", "Revenue"},
			{"2024-01", 100},
			{},
			{"2024-02", 200},
		},
	})

	tables, err := ingest.ParseExcel(r)
	require.NoError(t, err)
	assert.Len(t, tables[0].Rows, 2)
}

// Filas más cortas que el encabezado: las celdas faltantes quedan nil.
func TestParseExcel_FilasCortasCompletanConNil(t *testing.T) {
	r := buildWorkbook(t, map[string][][]interface{}{
		"Datos": {
			{"Customer Name", "Revenue", "Notes"},
			{"Acme Corp", 100},
		},
	})

	tables, err := ingest.ParseExcel(r)
	require.NoError(t, err)
	require.Len(t, tables[0].Rows, 1)
	assert.Nil(t, tables[0].Rows[0]["Notes"])
}

func TestParseExcel_HojasSinDatosSeDescartan(t *testing.T) {
	r := buildWorkbook(t, map[string][][]interface{}{
		"Datos": {
			{"Country", "Revenue"},
			{"Colombia", 50},
		},
		"Vacia": {},
	})

	tables, err := ingest.ParseExcel(r)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "Datos", tables[0].Name)
}

func TestParseExcel_WorkbookSinTablas(t *testing.T) {
	r := buildWorkbook(t, map[string][][]interface{}{
		"Vacia": {{"solo un título"}},
	})
	_, err := ingest.ParseExcel(r)
	assert.Error(t, err)
}

func TestParseExcel_NoEsUnWorkbook(t *testing.T) {
	_, err := ingest.ParseExcel(bytes.NewReader([]byte("esto no es un zip")))
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Parser — despacho por extensión
// ──────────────────────────────────────────────────────────────────────────────

func TestParser_DespachaPorExtension(t *testing.T) {
	p := ingest.NewParser()

	tables, err := p.Parse("Quarterly_Revenue.JSON", bytes.NewReader([]byte(`[{"Customer Name":"Acme","Revenue":1}]`)))
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "Quarterly_Revenue", tables[0].Name,
		"el nombre de la tabla JSON es el archivo sin extensión")

	_, err = p.Parse("datos.csv", bytes.NewReader(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extensión no soportada")
}
