package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/revenue-analytics-api/internal/application/dataset"
	"github.com/jhoicas/revenue-analytics-api/internal/application/dto"
	"github.com/jhoicas/revenue-analytics-api/internal/application/ports"
	"github.com/jhoicas/revenue-analytics-api/internal/domain/analysis"
	"github.com/rs/zerolog"
)

// Presupuesto de contexto textual hacia el LLM. La conversación completa
// (datos + historial) se trunca para no excederlo.
const maxContextChars = 8000

// llmTimeout tope por llamada al servicio externo; por encima se degrada
// al resumen local sin error visible para el usuario.
const llmTimeout = 10 * time.Second

// Plantillas de instrucción por tipo de análisis: tono factual de negocio,
// sin inventar cifras fuera de los datos entregados.
var instructionTemplates = map[string]string{
	analysis.TypeQuarterlyRevenue: "Analiza la comparación de ingresos trimestrales por cliente. " +
		"Destaca los clientes con mayor crecimiento y mayor caída según la variación porcentual.",
	analysis.TypeRevenueBridge: "Analiza el puente de ingresos entre periodos. " +
		"Explica el aporte de ingresos nuevos, expansión, contracción y churn al cambio neto.",
	analysis.TypeGeographic: "Analiza la distribución geográfica de los ingresos. " +
		"Identifica los países o regiones dominantes y el grado de diversificación.",
	analysis.TypeCustomerConcentration: "Analiza la concentración de ingresos por cliente. " +
		"Evalúa el riesgo de dependencia de los clientes principales.",
	analysis.TypeMonthlyTrend: "Analiza la tendencia mensual de ingresos. " +
		"Describe la dirección general, aceleraciones y meses atípicos.",
}

const systemInstruction = "Eres un analista financiero senior. Respondes en tono factual de negocio, " +
	"en español, citando únicamente cifras presentes en los datos entregados. " +
	"Máximo tres párrafos, sin markdown."

// NarrativeUseCase genera resúmenes narrativos y chat contextual por dataset.
// Toda falla del servicio externo degrada a contenido local determinístico:
// la vista nunca queda vacía y el usuario nunca ve un error duro.
type NarrativeUseCase struct {
	queries *dataset.QueryUseCase
	llm     ports.NarrativeService
	log     zerolog.Logger
}

// NewNarrativeUseCase construye el caso de uso. llm puede ser nil cuando no
// hay OPENAI_API_KEY configurada: todo cae al fallback local.
func NewNarrativeUseCase(queries *dataset.QueryUseCase, llm ports.NarrativeService, log zerolog.Logger) *NarrativeUseCase {
	return &NarrativeUseCase{queries: queries, llm: llm, log: log}
}

// Summarize produce la narrativa de un dataset para el usuario autorizado.
func (uc *NarrativeUseCase) Summarize(ctx context.Context, userID, companyID, dataType string) (*dto.SummaryResponse, error) {
	table, err := uc.queries.Table(userID, companyID, dataType)
	if err != nil {
		return nil, err
	}

	resp := &dto.SummaryResponse{CompanyID: companyID, DataType: dataType}

	instruction, ok := instructionTemplates[dataType]
	if !ok {
		instruction = "Resume los datos entregados en tono factual de negocio."
	}
	prompt := instruction + "\n\nDatos:\n" + buildDataContext(table, maxContextChars)

	text, err := uc.generate(ctx, []ports.Message{{Role: "user", Content: prompt}})
	if err != nil {
		uc.log.Warn().Err(err).Str("data_type", dataType).Msg("narrativa externa falló, usando resumen local")
		resp.Narrative = FallbackSummary(dataType, table)
		resp.Fallback = true
		return resp, nil
	}
	resp.Narrative = text
	return resp, nil
}

// Chat responde una pregunta sobre un dataset. Cada turno es una petición
// fresca con el contexto del dataset más el historial truncado; no se
// persiste memoria entre sesiones.
func (uc *NarrativeUseCase) Chat(ctx context.Context, userID, companyID, dataType string, in dto.ChatRequest) (*dto.ChatResponse, error) {
	table, err := uc.queries.Table(userID, companyID, dataType)
	if err != nil {
		return nil, err
	}

	messages := buildChatMessages(table, dataType, in)
	text, err := uc.generate(ctx, messages)
	if err != nil {
		uc.log.Warn().Err(err).Str("data_type", dataType).Msg("chat externo falló, usando respuesta local")
		return &dto.ChatResponse{Answer: FallbackAnswer(dataType, table, in.Question), Fallback: true}, nil
	}
	return &dto.ChatResponse{Answer: text}, nil
}

func (uc *NarrativeUseCase) generate(ctx context.Context, messages []ports.Message) (string, error) {
	if uc.llm == nil {
		return "", fmt.Errorf("servicio de narrativas no configurado")
	}
	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	text, err := uc.llm.Generate(ctx, systemInstruction, messages)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("respuesta vacía del servicio de narrativas")
	}
	return text, nil
}

// buildDataContext serializa las filas como JSON compacto, una por línea,
// hasta agotar el presupuesto. Se prefiere cortar filas enteras a truncar
// una fila por la mitad.
func buildDataContext(t analysis.Table, budget int) string {
	var b strings.Builder
	for i, row := range t.Rows {
		line, err := json.Marshal(orderedRow(t.Headers, row))
		if err != nil {
			continue
		}
		if b.Len()+len(line)+1 > budget {
			fmt.Fprintf(&b, "... (%d filas omitidas por límite de contexto)\n", len(t.Rows)-i)
			break
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// orderedRow produce pares columna/valor en el orden de Headers para que el
// contexto sea estable entre peticiones.
func orderedRow(headers []string, row analysis.Row) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(headers))
	for _, h := range headers {
		out = append(out, map[string]interface{}{h: row[h]})
	}
	return out
}

// buildChatMessages arma la conversación: contexto del dataset en el primer
// mensaje y luego el historial, truncado desde el turno más antiguo para
// respetar el presupuesto total.
func buildChatMessages(t analysis.Table, dataType string, in dto.ChatRequest) []ports.Message {
	question := strings.TrimSpace(in.Question)

	// Reservar presupuesto para historial y pregunta.
	historyBudget := 0
	for _, turn := range in.History {
		historyBudget += len(turn.Question) + len(turn.Answer)
	}
	dataBudget := maxContextChars - historyBudget - len(question)
	if dataBudget < maxContextChars/4 {
		dataBudget = maxContextChars / 4
	}

	contextMsg := fmt.Sprintf("Datos de %s:\n%s", dataType, buildDataContext(t, dataBudget))
	messages := []ports.Message{{Role: "user", Content: contextMsg}}

	history := in.History
	total := len(contextMsg) + len(question)
	// Recorrer de atrás hacia adelante para conservar los turnos recientes.
	keep := len(history)
	for i := len(history) - 1; i >= 0; i-- {
		turnLen := len(history[i].Question) + len(history[i].Answer)
		if total+turnLen > maxContextChars {
			break
		}
		total += turnLen
		keep = i
	}
	for _, turn := range history[keep:] {
		messages = append(messages,
			ports.Message{Role: "user", Content: turn.Question},
			ports.Message{Role: "assistant", Content: turn.Answer},
		)
	}
	messages = append(messages, ports.Message{Role: "user", Content: question})
	return messages
}
