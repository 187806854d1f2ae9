package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"desbuguei/internal/domain"
	"desbuguei/internal/store"
	"desbuguei/internal/utils"
)

// DefinitionGenerator gera um termo estruturado a partir do texto digitado.
type DefinitionGenerator interface {
	Generate(ctx context.Context, term string) (domain.Term, error)
}

// TermService resolve buscas em termos: banco, tabela local e, por fim, Gemini
// com gravacao de volta no banco.
type TermService struct {
	store     store.TermStore
	generator DefinitionGenerator
	fallback  map[string]domain.Term
	logger    zerolog.Logger

	writeTimeout time.Duration
	seedDelay    time.Duration

	pending sync.WaitGroup
}

type Option func(*TermService)

// WithFallback troca a tabela local de termos (chave: busca em minusculas).
func WithFallback(terms map[string]domain.Term) Option {
	return func(s *TermService) { s.fallback = terms }
}

// WithSeedDelay define a pausa obrigatoria entre itens da carga inicial.
func WithSeedDelay(d time.Duration) Option {
	return func(s *TermService) { s.seedDelay = d }
}

// WithWriteTimeout limita cada gravacao em segundo plano.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *TermService) { s.writeTimeout = d }
}

// NewTermService monta o pipeline. generator pode ser nil (sem Gemini): nesse
// caso so o banco e a tabela local respondem.
func NewTermService(st store.TermStore, generator DefinitionGenerator, logger zerolog.Logger, opts ...Option) *TermService {
	if st == nil {
		st = store.NopTermStore{}
	}
	s := &TermService{
		store:        st,
		generator:    generator,
		fallback:     localTerms,
		logger:       logger.With().Str("component", "resolver").Logger(),
		writeTimeout: 10 * time.Second,
		seedDelay:    time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve devolve o termo para a busca digitada pelo usuario.
func (s *TermService) Resolve(ctx context.Context, rawQuery string) (domain.Term, error) {
	id := utils.NormalizeID(rawQuery)
	if id == "" {
		return domain.Term{}, fmt.Errorf("%w: %q", domain.ErrInvalidQuery, rawQuery)
	}
	log := s.logger.With().Str("id", id).Logger()

	if term, ok := s.lookup(ctx, id, log); ok {
		log.Debug().Msg("Termo encontrado no banco.")
		return term, nil
	}

	if term, ok := s.fallback[strings.ToLower(strings.TrimSpace(rawQuery))]; ok {
		log.Debug().Msg("Termo encontrado na tabela local.")
		return term.Clone(), nil
	}

	if s.generator == nil {
		return domain.Term{}, fmt.Errorf("%w: %w: gerador nao configurado", domain.ErrNotFound, domain.ErrGeneration)
	}

	generated, err := s.generator.Generate(ctx, rawQuery)
	if err != nil {
		log.Error().Err(err).Msg("Falha ao gerar definição.")
		if !errors.Is(err, domain.ErrGeneration) {
			err = fmt.Errorf("%w: %w", domain.ErrGeneration, err)
		}
		return domain.Term{}, fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}

	if generated.Term == "" {
		generated.Term = strings.TrimSpace(rawQuery)
	}
	term := generated.Heal(id)
	if !domain.KnownCategory(term.Category) {
		log.Warn().Str("category", term.Category).Msg("Categoria gerada fora da lista.")
	}

	s.writeBack(term.Clone(), log)
	return term, nil
}

// Wait bloqueia ate as gravacoes em segundo plano terminarem.
func (s *TermService) Wait() {
	s.pending.Wait()
}

// lookup trata qualquer erro do banco como cache miss.
func (s *TermService) lookup(ctx context.Context, id string, log zerolog.Logger) (domain.Term, bool) {
	term, err := s.store.Get(ctx, id)
	switch {
	case errors.Is(err, domain.ErrTermNotFound):
		return domain.Term{}, false
	case err != nil:
		log.Warn().Err(err).Msg("Banco indisponível, seguindo para geração.")
		return domain.Term{}, false
	case !term.Valid():
		log.Warn().Msg("Termo salvo sem definição, gerando de novo.")
		return domain.Term{}, false
	}
	return term, true
}

// writeBack grava o termo sem segurar a resposta ao chamador.
func (s *TermService) writeBack(term domain.Term, log zerolog.Logger) {
	if !store.Configured(s.store) {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
		defer cancel()

		if err := s.store.Upsert(ctx, term); err != nil {
			log.Error().Err(err).Msg("Erro ao salvar termo no banco.")
			return
		}
		log.Info().Msg("Termo salvo no banco (retroalimentação).")
	}()
}
