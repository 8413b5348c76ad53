package assistant

// ChatConfig é o bloco de prompt enviado em cada turno. Os campos vêm das
// configurações do atendente IA da conta.
type ChatConfig struct {
	Personality string `json:"personality"`
	Instruction string `json:"instruction"`
	Rules       string `json:"rules"`
	Limitations string `json:"limitations"`
	Context     string `json:"context"`
	Examples    string `json:"examples"`
	// Inventory é o CSV bruto da planilha de imóveis, quando configurada.
	Inventory string `json:"inventory"`
}

// ChatInput é um turno de conversa de teste com o atendente.
type ChatInput struct {
	SessionID   string
	Message     string
	AudioBase64 string
	Config      ChatConfig
}

type chatRequest struct {
	Action    string     `json:"action"`
	SessionID string     `json:"sessionId"`
	Message   string     `json:"message,omitempty"`
	Audio     string     `json:"audio,omitempty"`
	Type      string     `json:"type"`
	Config    ChatConfig `json:"config"`
	Timestamp string     `json:"timestamp"`
}

type resetRequest struct {
	Action    string `json:"action"`
	SessionID string `json:"sessionId"`
	Timestamp string `json:"timestamp"`
}
