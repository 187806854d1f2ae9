package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// Seeder popula o banco com uma lista de termos, reportando uma linha por passo.
type Seeder interface {
	Seed(ctx context.Context, terms []string, onProgress func(string)) error
}

type seedRequest struct {
	Terms []string `json:"terms"`
}

// SeedHandler atende POST /api/seed transmitindo o progresso em texto puro.
type SeedHandler struct {
	seeder   Seeder
	defaults []string
	logger   zerolog.Logger
}

func NewSeedHandler(seeder Seeder, defaults []string, logger zerolog.Logger) *SeedHandler {
	return &SeedHandler{
		seeder:   seeder,
		defaults: defaults,
		logger:   logger.With().Str("component", "seed-handler").Logger(),
	}
}

func (h *SeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	terms, err := h.readTerms(r)
	if err != nil {
		http.Error(w, "Erro ao decodificar a lista de termos", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)

	progress := func(line string) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}

	if err := h.seeder.Seed(r.Context(), terms, progress); err != nil {
		h.logger.Error().Err(err).Msg("Carga interrompida")
	}
}

func (h *SeedHandler) readTerms(r *http.Request) ([]string, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return h.defaults, nil
	}

	var req seedRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}
	terms := make([]string, 0, len(req.Terms))
	for _, t := range req.Terms {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, t)
		}
	}
	if len(terms) == 0 {
		if len(req.Terms) > 0 {
			return nil, errors.New("lista de termos vazia")
		}
		return h.defaults, nil
	}
	return terms, nil
}
