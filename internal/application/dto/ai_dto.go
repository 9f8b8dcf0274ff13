package dto

// SummaryResponse narrativa de un dataset.
// Fallback=true indica que el texto se generó localmente (agregados
// determinísticos) porque el servicio externo falló o no está configurado.
type SummaryResponse struct {
	CompanyID string `json:"company_id"`
	DataType  string `json:"data_type"`
	Narrative string `json:"narrative"`
	Fallback  bool   `json:"fallback"`
}

// ChatTurn un par pregunta/respuesta previo de la conversación.
type ChatTurn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ChatRequest pregunta sobre un dataset más el historial de la sesión.
// El historial vive en el cliente: cada turno llega completo y se trunca
// del lado del servidor para respetar el presupuesto de contexto.
type ChatRequest struct {
	Question string     `json:"question" validate:"required,max=2000"`
	History  []ChatTurn `json:"history" validate:"omitempty,max=50"`
}

// ChatResponse respuesta de un turno de chat.
type ChatResponse struct {
	Answer   string `json:"answer"`
	Fallback bool   `json:"fallback"`
}
