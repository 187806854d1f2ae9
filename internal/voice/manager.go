package voice

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"desbuguei/internal/domain"
	"desbuguei/internal/sessions"
)

// Manager abre sessoes de voz e mantem o registro das que estao vivas.
type Manager struct {
	dialer   Dialer
	model    string
	registry *sessions.Registry
	logger   zerolog.Logger
}

func NewManager(dialer Dialer, model string, registry *sessions.Registry, logger zerolog.Logger) *Manager {
	if registry == nil {
		registry = sessions.NewRegistry()
	}
	return &Manager{
		dialer:   dialer,
		model:    model,
		registry: registry,
		logger:   logger.With().Str("component", "voice").Logger(),
	}
}

// Open cria uma sessao nova para a persona (a padrao, se o id nao existir) e
// comeca a conectar em segundo plano. Cada chamada usa handles novos.
func (m *Manager) Open(ctx context.Context, personaID string, devices Devices, hooks Hooks) (*Session, error) {
	if m.dialer == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSession, errors.New("API Key não encontrada"))
	}
	if devices == nil {
		return nil, fmt.Errorf("%w: dispositivos de audio ausentes", domain.ErrSession)
	}

	persona := domain.PersonaOrDefault(personaID)
	s := newSession(persona, NewSessionConfig(m.model, persona), m.dialer, devices, hooks, m.logger)
	m.registry.Set(s)
	s.start(context.WithoutCancel(ctx))

	go func() {
		<-s.Done()
		m.registry.Delete(s.ID())
	}()

	return s, nil
}

// Get devolve uma sessao viva pelo id.
func (m *Manager) Get(id string) (*Session, bool) {
	s, ok := m.registry.Get(id)
	if !ok {
		return nil, false
	}
	vs, ok := s.(*Session)
	return vs, ok
}

func (m *Manager) Active() int {
	return m.registry.Len()
}

// CloseAll fecha todas as sessoes vivas.
func (m *Manager) CloseAll() int {
	n := m.registry.CloseAll()
	if n > 0 {
		m.logger.Info().Int("sessions", n).Msg("Sessoes de voz encerradas")
	}
	return n
}
