package store

import (
	"database/sql"

	"github.com/rs/zerolog"
)

// PostgresTermStore e o store de producao (tabela terms, conteudo em JSONB).
type PostgresTermStore struct {
	sqlTermStore
}

// NewPostgresTermStore cria o repositorio PostgreSQL. O schema vem de database.Migrate.
func NewPostgresTermStore(db *sql.DB, logger zerolog.Logger) *PostgresTermStore {
	return &PostgresTermStore{sqlTermStore{
		db:          db,
		logger:      logger.With().Str("component", "store").Logger(),
		backend:     "postgres",
		selectQuery: `SELECT content FROM terms WHERE id = $1`,
		upsertQuery: `
    INSERT INTO terms (id, term, category, definition, content, created_at)
    VALUES ($1, $2, $3, $4, $5::jsonb, CURRENT_TIMESTAMP)
    ON CONFLICT (id) DO UPDATE SET
        term = EXCLUDED.term,
        category = EXCLUDED.category,
        definition = EXCLUDED.definition,
        content = EXCLUDED.content`,
	}}
}
