package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"desbuguei/internal/domain"
	"desbuguei/internal/utils"
)

type Status string

const (
	StatusConnecting Status = "connecting"
	StatusListening  Status = "listening"
	StatusSpeaking   Status = "speaking"
	StatusProcessing Status = "processing"
	StatusClosed     Status = "closed"
)

type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
	SpeakerSystem    Speaker = "system"
)

// Line e uma linha finalizada da transcricao, ja formatada ("Você: ...").
type Line struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Snapshot e uma copia do estado visivel da sessao.
type Snapshot struct {
	ID               string `json:"id"`
	PersonaID        string `json:"persona"`
	Status           Status `json:"status"`
	Transcript       []Line `json:"transcript"`
	PendingUser      string `json:"pendingUser"`
	PendingAssistant string `json:"pendingAssistant"`
}

// Hooks sao chamados da goroutine da sessao e nao podem chamar Close nem Stop.
type Hooks struct {
	OnChange func(Snapshot)
	Navigate func(path string)
}

// TermPath e a rota da pagina de definicao de um termo.
func TermPath(term string) string {
	return "/term/" + url.PathEscape(term)
}

type eventKind int

const (
	eventMessage eventKind = iota
	eventReceiveError
	eventPlaybackEnded
	eventStop
)

type event struct {
	kind     eventKind
	msg      ServerMessage
	err      error
	playback uint64
}

// Session e uma conversa de voz com o modelo. Todo o estado mutavel pertence
// a goroutine de run; os demais metodos so trocam mensagens com ela.
type Session struct {
	id      string
	persona domain.Persona
	cfg     SessionConfig
	dialer  Dialer
	devices Devices
	hooks   Hooks
	logger  zerolog.Logger

	events chan event
	cancel context.CancelFunc
	done   chan struct{}

	mu               sync.Mutex
	status           Status
	transcript       []Line
	pendingUser      string
	pendingAssistant string

	capture   Capture
	input     AudioContext
	output    OutputContext
	conn      Conn
	playing   map[uint64]Playback
	nextPlay  uint64
	scheduler Scheduler
	stopPump  context.CancelFunc
	pumpDone  chan struct{}
	closed    bool
}

func newSession(persona domain.Persona, cfg SessionConfig, dialer Dialer, devices Devices, hooks Hooks, logger zerolog.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:      id,
		persona: persona,
		cfg:     cfg,
		dialer:  dialer,
		devices: devices,
		hooks:   hooks,
		logger:  logger.With().Str("session", id).Str("persona", persona.ID).Logger(),
		events:  make(chan event),
		done:    make(chan struct{}),
		status:  StatusConnecting,
		playing: make(map[uint64]Playback),
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) Persona() domain.Persona { return s.persona }

// Done fecha quando a sessao terminou e liberou todos os recursos.
func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		ID:               s.id,
		PersonaID:        s.persona.ID,
		Status:           s.status,
		Transcript:       append([]Line(nil), s.transcript...),
		PendingUser:      s.pendingUser,
		PendingAssistant: s.pendingAssistant,
	}
}

// Close encerra a sessao sem navegar. Pode ser chamado em qualquer estado,
// inclusive durante a conexao, e mais de uma vez.
func (s *Session) Close() {
	s.cancel()
	<-s.done
}

// Stop encerra a sessao e navega para o termo que o usuario ja falou, se houver.
func (s *Session) Stop() {
	select {
	case s.events <- event{kind: eventStop}:
	case <-s.done:
	}
	<-s.done
}

func (s *Session) start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	go s.run(ctx)
}

func (s *Session) run(ctx context.Context) {
	defer close(s.done)
	defer s.cancel()

	if err := s.open(ctx); err != nil {
		if ctx.Err() == nil {
			s.logger.Error().Err(err).Msg("Erro ao iniciar sessao de voz")
			s.appendLine(SpeakerSystem, StartFailedLine)
			s.notify()
		}
		s.teardown()
		s.finish()
		return
	}
	s.logger.Info().Msg("Sessao de voz conectada")
	s.notify()

	for {
		select {
		case <-ctx.Done():
			s.shutdown("")
			return
		case ev := <-s.events:
			if s.handle(ev) {
				return
			}
		}
	}
}

func (s *Session) open(ctx context.Context) error {
	var err error
	if s.capture, err = s.devices.OpenCapture(); err != nil {
		return fmt.Errorf("%w: microfone: %w", domain.ErrSession, err)
	}
	if s.input, err = s.devices.OpenInput(InputSampleRate); err != nil {
		return fmt.Errorf("%w: contexto de entrada: %w", domain.ErrSession, err)
	}
	if s.output, err = s.devices.OpenOutput(OutputSampleRate); err != nil {
		return fmt.Errorf("%w: contexto de saida: %w", domain.ErrSession, err)
	}
	s.scheduler.Reset()

	conn, err := s.dialer.Dial(ctx, s.cfg)
	if err != nil {
		return fmt.Errorf("%w: conexao com o modelo: %w", domain.ErrSession, err)
	}
	s.conn = conn
	s.setStatus(StatusListening)

	go s.receive(conn)

	pumpCtx, stop := context.WithCancel(ctx)
	s.stopPump = stop
	s.pumpDone = make(chan struct{})
	go s.pump(pumpCtx, s.capture, conn, s.pumpDone)
	return nil
}

// post entrega um evento a goroutine da sessao, ou desiste se ela ja terminou.
func (s *Session) post(ev event) bool {
	select {
	case s.events <- ev:
		return true
	case <-s.done:
		return false
	}
}

func (s *Session) receive(conn Conn) {
	for {
		msg, err := conn.Receive()
		if err != nil {
			s.post(event{kind: eventReceiveError, err: err})
			return
		}
		if !s.post(event{kind: eventMessage, msg: msg}) {
			return
		}
	}
}

// pump junta as amostras do microfone em quadros de FrameSize e as envia.
// Erros de envio sao ignorados: a sessao pode estar fechando.
func (s *Session) pump(ctx context.Context, capture Capture, conn Conn, done chan struct{}) {
	defer close(done)
	pending := make([]float32, 0, FrameSize*2)
	for {
		select {
		case <-ctx.Done():
			return
		case samples, ok := <-capture.Frames():
			if !ok {
				return
			}
			pending = append(pending, samples...)
			for len(pending) >= FrameSize {
				if err := conn.SendAudio(EncodeFrame(pending[:FrameSize])); err != nil {
					s.logger.Debug().Err(err).Msg("Quadro de audio descartado")
				}
				pending = pending[:copy(pending, pending[FrameSize:])]
			}
		}
	}
}

// handle processa um evento e devolve true quando a sessao terminou.
func (s *Session) handle(ev event) bool {
	switch ev.kind {
	case eventMessage:
		return s.handleMessage(ev.msg)

	case eventReceiveError:
		if errors.Is(ev.err, io.EOF) {
			s.logger.Info().Msg("Sessao encerrada pelo modelo")
			return false
		}
		s.logger.Error().Err(ev.err).Msg("Erro na sessao com o modelo")
		s.setStatus(StatusConnecting)
		s.appendLine(SpeakerSystem, ServiceUnavailableLine)

	case eventPlaybackEnded:
		delete(s.playing, ev.playback)
		if len(s.playing) == 0 && s.currentStatus() == StatusSpeaking {
			s.setStatus(StatusListening)
		}

	case eventStop:
		s.shutdown(s.stopTarget())
		return true
	}

	s.notify()
	return false
}

func (s *Session) handleMessage(msg ServerMessage) bool {
	for _, call := range msg.ToolCalls {
		if call.Name != SearchTermTool {
			s.logger.Warn().Str("tool", call.Name).Msg("Ferramenta desconhecida ignorada")
			continue
		}

		term, err := searchTermArg(call)
		if err != nil {
			s.logger.Warn().Err(err).Interface("args", call.Args).Msg("Argumentos da ferramenta invalidos")
			resp := ToolResponse{ID: call.ID, Name: call.Name, Response: map[string]any{"error": err.Error()}}
			if sendErr := s.conn.SendToolResponse(resp); sendErr != nil {
				s.logger.Debug().Err(sendErr).Msg("Resposta da ferramenta descartada")
			}
			s.clearPending()
			continue
		}

		s.logger.Info().Str("term", term).Msg("Navegando para o termo")
		s.setStatus(StatusProcessing)
		s.notify()
		s.shutdown(TermPath(term))
		return true
	}

	s.mu.Lock()
	s.pendingUser += msg.InputTranscription
	s.pendingAssistant += msg.OutputTranscription
	if msg.TurnComplete {
		s.flushLocked()
	}
	s.mu.Unlock()

	if msg.Audio != "" {
		s.play(msg.Audio)
	}

	s.notify()
	return false
}

func searchTermArg(call ToolCall) (string, error) {
	term, ok := call.Args[SearchTermArg].(string)
	term = strings.TrimSpace(term)
	if !ok || term == "" {
		return "", fmt.Errorf("%w: %q ausente ou invalido em %s", domain.ErrToolArgument, SearchTermArg, call.Name)
	}
	return term, nil
}

func (s *Session) play(data string) {
	buf, err := DecodeChunk(data, OutputSampleRate)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Audio do modelo descartado")
		return
	}
	s.setStatus(StatusSpeaking)

	at := s.scheduler.Schedule(s.output.CurrentTime(), buf.Duration())
	s.nextPlay++
	id := s.nextPlay
	pb, err := s.output.Play(buf, at, func() {
		s.post(event{kind: eventPlaybackEnded, playback: id})
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("Falha ao agendar audio")
		if len(s.playing) == 0 {
			s.setStatus(StatusListening)
		}
		return
	}
	s.playing[id] = pb
}

// stopTarget escolhe o termo de uma parada manual: a fala pendente do
// usuario ou, na falta dela, a primeira fala finalizada.
func (s *Session) stopTarget() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if text := strings.TrimSpace(s.pendingUser); text != "" {
		return TermPath(text)
	}
	for _, line := range s.transcript {
		if line.Speaker != SpeakerUser {
			continue
		}
		if text, ok := utils.UserLineText(line.Text); ok && text != "" {
			return TermPath(text)
		}
	}
	return ""
}

// shutdown libera tudo e navega no maximo uma vez.
func (s *Session) shutdown(path string) {
	if s.closed {
		return
	}
	s.teardown()
	s.finish()
	if path != "" && s.hooks.Navigate != nil {
		s.hooks.Navigate(path)
	}
}

func (s *Session) teardown() {
	if s.capture != nil {
		s.capture.Stop()
		s.capture = nil
	}
	if s.stopPump != nil {
		s.stopPump()
		<-s.pumpDone
		s.stopPump, s.pumpDone = nil, nil
	}
	if s.input != nil {
		if err := s.input.Close(); err != nil {
			s.logger.Debug().Err(err).Msg("Erro ao fechar contexto de entrada")
		}
		s.input = nil
	}
	if s.output != nil {
		if err := s.output.Close(); err != nil {
			s.logger.Debug().Err(err).Msg("Erro ao fechar contexto de saida")
		}
		s.output = nil
	}
	for id, pb := range s.playing {
		pb.Stop()
		delete(s.playing, id)
	}
	s.scheduler.Reset()
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			s.logger.Debug().Err(err).Msg("Erro ao fechar sessao com o modelo")
		}
		s.conn = nil
	}
}

func (s *Session) finish() {
	s.closed = true
	s.mu.Lock()
	s.status = StatusClosed
	s.transcript = nil
	s.pendingUser, s.pendingAssistant = "", ""
	s.mu.Unlock()
	s.notify()
	s.logger.Info().Msg("Sessao de voz encerrada")
}

func (s *Session) flushLocked() {
	if s.pendingUser != "" {
		s.transcript = append(s.transcript, Line{Speaker: SpeakerUser, Text: utils.BuildUserLine(s.pendingUser)})
		s.pendingUser = ""
	}
	if s.pendingAssistant != "" {
		s.transcript = append(s.transcript, Line{Speaker: SpeakerAssistant, Text: utils.BuildTranscriptLine(s.persona.Name, s.pendingAssistant)})
		s.pendingAssistant = ""
	}
}

func (s *Session) clearPending() {
	s.mu.Lock()
	s.pendingUser, s.pendingAssistant = "", ""
	s.mu.Unlock()
}

func (s *Session) appendLine(speaker Speaker, text string) {
	s.mu.Lock()
	s.transcript = append(s.transcript, Line{Speaker: speaker, Text: text})
	s.mu.Unlock()
}

func (s *Session) setStatus(st Status) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}

func (s *Session) currentStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) notify() {
	if s.hooks.OnChange != nil {
		s.hooks.OnChange(s.Snapshot())
	}
}
