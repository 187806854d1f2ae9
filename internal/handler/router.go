package handler

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Deps reune o que as rotas precisam. Campos nil desligam a rota.
type Deps struct {
	Resolver  Resolver
	Seeder    Seeder
	SeedTerms []string
	Voice     VoiceOpener
	SlowAfter time.Duration
	Logger    zerolog.Logger
}

func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	if d.Resolver != nil {
		mux.Handle("GET /api/terms/{query}", NewTermHandler(d.Resolver, d.SlowAfter, d.Logger))
	}
	if d.Seeder != nil {
		mux.Handle("POST /api/seed", NewSeedHandler(d.Seeder, d.SeedTerms, d.Logger))
	}
	mux.HandleFunc("GET /api/personas", PersonaHandler)
	if d.Voice != nil {
		mux.Handle("GET /api/voice", NewVoiceHandler(d.Voice, d.Logger))
	}
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return accessLog(d.Logger, mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Flush() {
	if f, ok := s.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (s *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := s.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack nao suportado")
	}
	s.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

// Unwrap deixa o http.ResponseController achar o writer original.
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

func accessLog(logger zerolog.Logger, next http.Handler) http.Handler {
	log := logger.With().Str("component", "http").Logger()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("Requisicao atendida")
	})
}
