// Package logging monta o logger estruturado usado por todos os componentes.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New cria um logger zerolog no nivel informado. Niveis invalidos caem em info.
func New(level string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Component deriva um logger marcado com o nome do componente.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}
