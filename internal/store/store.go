// Package store guarda os termos do glossario. O pipeline de resolucao usa o
// store como cache de melhor esforco: qualquer falha vira cache miss.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"desbuguei/config"
	"desbuguei/internal/database"
	"desbuguei/internal/domain"
)

// TermStore define a interface para persistir e recuperar termos.
type TermStore interface {
	// Get devolve domain.ErrTermNotFound quando o id nao existe.
	Get(ctx context.Context, id string) (domain.Term, error)
	// Upsert insere ou sobrescreve o termo com o mesmo id.
	Upsert(ctx context.Context, term domain.Term) error
}

// New escolhe a variante do store conforme a configuracao e aplica as migracoes.
// O close devolvido libera a conexao (no-op para o store vazio).
func New(ctx context.Context, cfg config.Config, logger zerolog.Logger) (TermStore, func() error, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		db, err := database.OpenPostgres(ctx, cfg.DatabaseUrl, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(db, database.DialectPostgres, logger); err != nil {
			db.Close()
			return nil, nil, err
		}
		return NewPostgresTermStore(db, logger), db.Close, nil
	case config.StoreDriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(db, database.DialectSQLite, logger); err != nil {
			db.Close()
			return nil, nil, err
		}
		return NewSQLiteTermStore(db, logger), db.Close, nil
	case config.StoreDriverNop:
		logger.Warn().Msg("Banco de termos não configurado: usando store vazio.")
		return NopTermStore{}, func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("STORE_DRIVER invalido: %q", cfg.StoreDriver)
}

// Configured informa se o store persiste de fato.
func Configured(s TermStore) bool {
	_, nop := s.(NopTermStore)
	return !nop
}

// sqlTermStore concentra o que Postgres e SQLite tem em comum; muda so o SQL.
type sqlTermStore struct {
	db          *sql.DB
	logger      zerolog.Logger
	selectQuery string
	upsertQuery string
	backend     string
}

func (s *sqlTermStore) Get(ctx context.Context, id string) (domain.Term, error) {
	var content []byte
	err := s.db.QueryRowContext(ctx, s.selectQuery, id).Scan(&content)
	if err == sql.ErrNoRows {
		return domain.Term{}, domain.ErrTermNotFound
	}
	if err != nil {
		return domain.Term{}, fmt.Errorf("%w: erro ao buscar termo %q: %w", domain.ErrStoreUnavailable, id, err)
	}

	var term domain.Term
	if err := json.Unmarshal(content, &term); err != nil {
		return domain.Term{}, fmt.Errorf("%w: conteudo invalido para %q: %w", domain.ErrStoreUnavailable, id, err)
	}
	return term, nil
}

func (s *sqlTermStore) Upsert(ctx context.Context, term domain.Term) error {
	if term.ID == "" {
		return fmt.Errorf("%w: termo sem id", domain.ErrInvalidQuery)
	}
	content, err := json.Marshal(term)
	if err != nil {
		return fmt.Errorf("erro ao converter termo para JSON: %w", err)
	}

	_, err = s.db.ExecContext(ctx, s.upsertQuery,
		term.ID,
		term.Term,
		term.Category,
		term.Definition,
		string(content),
	)
	if err != nil {
		return fmt.Errorf("%w: erro ao salvar termo %q: %w", domain.ErrStoreUnavailable, term.ID, err)
	}

	s.logger.Debug().Str("id", term.ID).Str("backend", s.backend).Msg("Termo salvo.")
	return nil
}
