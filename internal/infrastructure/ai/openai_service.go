package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/revenue-analytics-api/internal/application/ports"
)

// Verificar en tiempo de compilación que OpenAIService implementa NarrativeService.
var _ ports.NarrativeService = (*OpenAIService)(nil)

const openaiChatCompletionsURL = "https://api.openai.com/v1/chat/completions"

// OpenAIService adaptador que implementa NarrativeService usando la API REST
// de Chat Completions. Usa net/http de la librería estándar de Go; no
// requiere el SDK oficial.
type OpenAIService struct {
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
}

// NewOpenAIService construye el adaptador.
// model suele ser "gpt-4o-mini". Temperatura baja para tono factual.
// Si apiKey está vacío las llamadas devuelven error descriptivo; el caso de
// uso degrada entonces al contenido local.
func NewOpenAIService(apiKey, model string, temperature float64, maxTokens int) *OpenAIService {
	return &OpenAIService{
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		httpClient: &http.Client{
			// Timeout de red de 25 s; el use case impone además un context.WithTimeout de 10 s.
			Timeout: 25 * time.Second,
		},
	}
}

// ── Estructuras internas del protocolo Chat Completions ───────────────────────

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiRequest struct {
	Model       string          `json:"model"`
	Messages    []openaiMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

type openaiResponse struct {
	Choices []struct {
		Message openaiMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// Generate envía la instrucción de sistema y la conversación al modelo y
// devuelve el texto de la primera choice verbatim.
func (s *OpenAIService) Generate(ctx context.Context, instruction string, messages []ports.Message) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: OPENAI_API_KEY no configurado")
	}

	reqMessages := make([]openaiMessage, 0, len(messages)+1)
	reqMessages = append(reqMessages, openaiMessage{Role: "system", Content: instruction})
	for _, m := range messages {
		reqMessages = append(reqMessages, openaiMessage{Role: m.Role, Content: m.Content})
	}

	payload := openaiRequest{
		Model:       s.model,
		Messages:    reqMessages,
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openaiChatCompletionsURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	// Manejar errores HTTP de la API de OpenAI (cuota, modelo inválido, etc.)
	if resp.StatusCode != http.StatusOK {
		var errResp openaiResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: OpenAI error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI: OpenAI HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var chatResp openaiResponse
	if err := json.Unmarshal(rawBody, &chatResp); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta OpenAI: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("AI: el modelo devolvió respuesta vacía")
	}
	return chatResp.Choices[0].Message.Content, nil
}
