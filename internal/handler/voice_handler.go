package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"desbuguei/internal/voice"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsReadLimit    = 1 << 20
	wsOutboxSize   = 64
)

// VoiceOpener abre sessoes de voz. *voice.Manager satisfaz a interface.
type VoiceOpener interface {
	Open(ctx context.Context, personaID string, devices voice.Devices, hooks voice.Hooks) (*voice.Session, error)
}

// Mensagens do servidor para o navegador.
type voiceMessage struct {
	Type             string       `json:"type"`
	SessionID        string       `json:"sessionId,omitempty"`
	Status           voice.Status `json:"status,omitempty"`
	Transcript       []voice.Line `json:"transcript,omitempty"`
	PendingUser      string       `json:"pendingUser,omitempty"`
	PendingAssistant string       `json:"pendingAssistant,omitempty"`
	Audio            string       `json:"audio,omitempty"`
	SampleRate       int          `json:"sampleRate,omitempty"`
	StartAt          *float64     `json:"startAt,omitempty"`
	Path             string       `json:"path,omitempty"`
	Error            string       `json:"error,omitempty"`
}

type voiceCommand struct {
	Type string `json:"type"`
}

// VoiceHandler liga o navegador a uma sessao de voz por websocket. O cliente
// manda quadros binarios (float32 LE, 16 kHz) e {"type":"stop"}; o servidor
// manda status, transcript, audio, navigate e closed.
type VoiceHandler struct {
	opener   VoiceOpener
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

func NewVoiceHandler(opener VoiceOpener, logger zerolog.Logger) *VoiceHandler {
	return &VoiceHandler{
		opener: opener,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  32 * 1024,
			WriteBufferSize: 32 * 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.With().Str("component", "voice-handler").Logger(),
	}
}

func (h *VoiceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Falha no upgrade do websocket")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(wsReadLimit)

	outbox := make(chan voiceMessage, wsOutboxSize)
	writerDone := make(chan struct{})
	go h.writeLoop(conn, outbox, writerDone)

	send := func(m voiceMessage) {
		select {
		case outbox <- m:
		case <-writerDone:
		}
	}
	finish := func() {
		close(outbox)
		<-writerDone
	}

	capture := voice.NewStreamCapture(16)
	devices := voice.BridgeDevices{
		Capture: capture,
		Sink: func(buf voice.Buffer, at float64) {
			start := at
			send(voiceMessage{
				Type:       "audio",
				Audio:      base64.StdEncoding.EncodeToString(voice.EncodePCM16(buf.Samples)),
				SampleRate: buf.SampleRate,
				StartAt:    &start,
			})
		},
	}

	session, err := h.opener.Open(r.Context(), r.URL.Query().Get("persona"), devices, voice.Hooks{
		OnChange: stateForwarder(send),
		Navigate: func(path string) {
			send(voiceMessage{Type: "navigate", Path: path})
		},
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("Erro ao abrir sessao de voz")
		send(voiceMessage{Type: "closed", Error: err.Error()})
		finish()
		return
	}
	log := h.logger.With().Str("session", session.ID()).Logger()
	log.Info().Str("persona", session.Persona().ID).Msg("Cliente de voz conectado")

	go h.readLoop(conn, capture, session, log)

	<-session.Done()
	send(voiceMessage{Type: "closed", SessionID: session.ID()})
	finish()
	log.Info().Msg("Cliente de voz desconectado")
}

// readLoop termina quando o websocket fecha; fechar a sessao aqui cobre o
// caso do navegador sumir sem mandar stop.
func (h *VoiceHandler) readLoop(conn *websocket.Conn, capture *voice.StreamCapture, session *voice.Session, log zerolog.Logger) {
	defer session.Close()
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Msg("Leitura do websocket encerrada")
			}
			return
		}

		switch kind {
		case websocket.BinaryMessage:
			capture.Push(voice.DecodeFloat32LE(data))
		case websocket.TextMessage:
			var cmd voiceCommand
			if err := json.Unmarshal(data, &cmd); err != nil {
				log.Warn().Err(err).Msg("Comando de voz invalido")
				continue
			}
			switch cmd.Type {
			case "stop":
				session.Stop()
			case "close":
				session.Close()
			default:
				log.Warn().Str("type", cmd.Type).Msg("Comando de voz desconhecido")
			}
		}
	}
}

func (h *VoiceHandler) writeLoop(conn *websocket.Conn, outbox <-chan voiceMessage, done chan<- struct{}) {
	defer close(done)
	for m := range outbox {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(m); err != nil {
			h.logger.Debug().Err(err).Msg("Falha ao escrever no websocket")
			return
		}
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(wsWriteTimeout))
}

// stateForwarder manda status e transcricao so quando mudam.
func stateForwarder(send func(voiceMessage)) func(voice.Snapshot) {
	var last voice.Snapshot
	first := true
	return func(s voice.Snapshot) {
		if first || s.Status != last.Status {
			send(voiceMessage{Type: "status", SessionID: s.ID, Status: s.Status})
		}
		if first || !slices.Equal(s.Transcript, last.Transcript) ||
			s.PendingUser != last.PendingUser || s.PendingAssistant != last.PendingAssistant {
			send(voiceMessage{
				Type:             "transcript",
				SessionID:        s.ID,
				Transcript:       s.Transcript,
				PendingUser:      s.PendingUser,
				PendingAssistant: s.PendingAssistant,
			})
		}
		last, first = s, false
	}
}
