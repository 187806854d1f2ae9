package voice

import "context"

type Modality string

const ModalityAudio Modality = "AUDIO"

// AudioChunk e um trecho de audio codificado em base64.
type AudioChunk struct {
	Data     string
	MIMEType string
}

type ToolParameter struct {
	Type        string
	Description string
	Required    bool
}

type ToolDeclaration struct {
	Name        string
	Description string
	Parameters  map[string]ToolParameter
}

// SessionConfig e enviada ao modelo a cada abertura de sessao.
type SessionConfig struct {
	Model               string
	SystemInstruction   string
	VoiceName           string
	ResponseModality    Modality
	InputTranscription  bool
	OutputTranscription bool
	Tools               []ToolDeclaration
}

type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

type ToolResponse struct {
	ID       string
	Name     string
	Response map[string]any
}

// ServerMessage e uma mensagem do modelo ja achatada. Campos vazios
// significam ausencia.
type ServerMessage struct {
	ToolCalls           []ToolCall
	InputTranscription  string
	OutputTranscription string
	TurnComplete        bool
	// Audio e o primeiro trecho inline do turno do modelo, em base64.
	Audio string
}

// Dialer abre uma sessao duplex com o modelo.
type Dialer interface {
	Dial(ctx context.Context, cfg SessionConfig) (Conn, error)
}

// Conn e uma sessao aberta com o modelo. SendAudio e SendToolResponse podem
// ser chamados de goroutines diferentes de Receive.
type Conn interface {
	SendAudio(chunk AudioChunk) error
	SendToolResponse(resp ToolResponse) error
	Receive() (ServerMessage, error)
	Close() error
}
