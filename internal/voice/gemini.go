package voice

import (
	"context"
	"encoding/base64"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"desbuguei/config"
)

var _ Dialer = (*GeminiDialer)(nil)

// GeminiDialer abre sessoes na API Live da Gemini.
type GeminiDialer struct {
	client *genai.Client
	logger zerolog.Logger
}

func NewGeminiDialer(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*GeminiDialer, error) {
	if err := cfg.RequireGeminiKey(); err != nil {
		return nil, err
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cliente da Gemini: %w", err)
	}
	return &GeminiDialer{
		client: client,
		logger: logger.With().Str("component", "gemini-live").Logger(),
	}, nil
}

func (d *GeminiDialer) Dial(ctx context.Context, cfg SessionConfig) (Conn, error) {
	session, err := d.client.Live.Connect(ctx, cfg.Model, liveConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar na Gemini Live: %w", err)
	}
	d.logger.Debug().Str("model", cfg.Model).Str("voice", cfg.VoiceName).Msg("Sessao Live aberta")
	return &geminiConn{session: session}, nil
}

func liveConfig(cfg SessionConfig) *genai.LiveConnectConfig {
	lc := &genai.LiveConnectConfig{
		ResponseModalities: []genai.Modality{genai.Modality(cfg.ResponseModality)},
		SystemInstruction:  genai.NewContentFromText(cfg.SystemInstruction, genai.RoleUser),
	}
	if cfg.VoiceName != "" {
		lc.SpeechConfig = &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: cfg.VoiceName},
			},
		}
	}
	if cfg.InputTranscription {
		lc.InputAudioTranscription = &genai.AudioTranscriptionConfig{}
	}
	if cfg.OutputTranscription {
		lc.OutputAudioTranscription = &genai.AudioTranscriptionConfig{}
	}
	if len(cfg.Tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, 0, len(cfg.Tools))
		for _, t := range cfg.Tools {
			decls = append(decls, functionDeclaration(t))
		}
		lc.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}
	return lc
}

func functionDeclaration(t ToolDeclaration) *genai.FunctionDeclaration {
	params := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(t.Parameters)),
	}
	names := make([]string, 0, len(t.Parameters))
	for name := range t.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p := t.Parameters[name]
		params.Properties[name] = &genai.Schema{Type: schemaType(p.Type), Description: p.Description}
		if p.Required {
			params.Required = append(params.Required, name)
		}
	}
	return &genai.FunctionDeclaration{Name: t.Name, Description: t.Description, Parameters: params}
}

func schemaType(typ string) genai.Type {
	switch typ {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	default:
		return genai.TypeObject
	}
}

// geminiConn serializa os envios: o pump de audio e a goroutine da sessao
// escrevem no mesmo websocket.
type geminiConn struct {
	session *genai.Session
	sendMu  sync.Mutex
}

func (c *geminiConn) SendAudio(chunk AudioChunk) error {
	data, err := base64.StdEncoding.DecodeString(chunk.Data)
	if err != nil {
		return fmt.Errorf("audio base64 invalido: %w", err)
	}
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	return c.session.SendRealtimeInput(genai.LiveRealtimeInput{
		Audio: &genai.Blob{Data: data, MIMEType: chunk.MIMEType},
	})
}

func (c *geminiConn) SendToolResponse(resp ToolResponse) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	return c.session.SendToolResponse(genai.LiveToolResponseInput{
		FunctionResponses: []*genai.FunctionResponse{{
			ID:       resp.ID,
			Name:     resp.Name,
			Response: resp.Response,
		}},
	})
}

func (c *geminiConn) Receive() (ServerMessage, error) {
	msg, err := c.session.Receive()
	if err != nil {
		return ServerMessage{}, err
	}
	return serverMessage(msg), nil
}

func (c *geminiConn) Close() error {
	return c.session.Close()
}

func serverMessage(msg *genai.LiveServerMessage) ServerMessage {
	var out ServerMessage
	if msg == nil {
		return out
	}
	if msg.ToolCall != nil {
		for _, fc := range msg.ToolCall.FunctionCalls {
			if fc == nil {
				continue
			}
			out.ToolCalls = append(out.ToolCalls, ToolCall{ID: fc.ID, Name: fc.Name, Args: fc.Args})
		}
	}
	sc := msg.ServerContent
	if sc == nil {
		return out
	}
	if sc.InputTranscription != nil {
		out.InputTranscription = sc.InputTranscription.Text
	}
	if sc.OutputTranscription != nil {
		out.OutputTranscription = sc.OutputTranscription.Text
	}
	out.TurnComplete = sc.TurnComplete
	if sc.ModelTurn != nil && len(sc.ModelTurn.Parts) > 0 {
		if part := sc.ModelTurn.Parts[0]; part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			out.Audio = base64.StdEncoding.EncodeToString(part.InlineData.Data)
		}
	}
	return out
}
