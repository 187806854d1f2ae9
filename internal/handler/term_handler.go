package handler

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"desbuguei/internal/domain"
)

// Resolver resolve uma consulta livre em um termo do glossario.
type Resolver interface {
	Resolve(ctx context.Context, rawQuery string) (domain.Term, error)
}

// TermHandler atende GET /api/terms/{query}. Se a resolucao demorar mais que
// slowAfter, responde 202 e deixa a resolucao terminar em segundo plano: a
// proxima tentativa encontra o termo no banco.
type TermHandler struct {
	resolver  Resolver
	slowAfter time.Duration
	logger    zerolog.Logger
}

func NewTermHandler(resolver Resolver, slowAfter time.Duration, logger zerolog.Logger) *TermHandler {
	return &TermHandler{
		resolver:  resolver,
		slowAfter: slowAfter,
		logger:    logger.With().Str("component", "term-handler").Logger(),
	}
}

type resolveResult struct {
	term domain.Term
	err  error
}

func (h *TermHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := r.PathValue("query")

	done := make(chan resolveResult, 1)
	go func() {
		term, err := h.resolver.Resolve(context.WithoutCancel(r.Context()), query)
		done <- resolveResult{term: term, err: err}
	}()

	var slow <-chan time.Time
	if h.slowAfter > 0 {
		timer := time.NewTimer(h.slowAfter)
		defer timer.Stop()
		slow = timer.C
	}

	select {
	case res := <-done:
		h.writeResult(w, query, res)
	case <-slow:
		retry := int(math.Ceil(h.slowAfter.Seconds()))
		h.logger.Warn().Str("query", query).Msg("Resolucao lenta, respondendo 202")
		w.Header().Set("Retry-After", strconv.Itoa(retry))
		writeJSON(w, http.StatusAccepted, errorResponse{Error: msgStillWorking, Retryable: true, RetryAfter: retry})
	case <-r.Context().Done():
		h.logger.Debug().Str("query", query).Msg("Cliente desistiu da consulta")
	}
}

func (h *TermHandler) writeResult(w http.ResponseWriter, query string, res resolveResult) {
	switch {
	case res.err == nil:
		writeJSON(w, http.StatusOK, res.term)
	case errors.Is(res.err, domain.ErrInvalidQuery):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgInvalidQuery})
	default:
		h.logger.Error().Err(res.err).Str("query", query).Msg("Falha ao resolver termo")
		writeJSON(w, http.StatusNotFound, errorResponse{Error: msgTermNotFound, Retryable: true})
	}
}
