package ports

import "context"

// Message un turno de conversación para el servicio de narrativas.
type Message struct {
	Role    string // "user" | "assistant"
	Content string
}

// NarrativeService define el puerto de salida hacia el servicio externo de
// generación de narrativas. Cualquier adaptador (OpenAI, Anthropic, mock)
// debe implementar esta interfaz; la aplicación solo conoce este contrato.
//
// El contexto debe llevar un timeout: las llamadas a LLMs pueden demorar
// varios segundos y el caller decide cuánto espera.
type NarrativeService interface {
	// Generate envía una instrucción de sistema más la conversación y
	// devuelve el texto generado verbatim. Cualquier fallo (timeout, cuota,
	// respuesta malformada) es un error; el caller decide el fallback.
	Generate(ctx context.Context, instruction string, messages []Message) (string, error)
}
