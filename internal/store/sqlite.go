package store

import (
	"database/sql"

	"github.com/rs/zerolog"
)

// SQLiteTermStore guarda os termos num arquivo local, util offline e em testes.
type SQLiteTermStore struct {
	sqlTermStore
}

func NewSQLiteTermStore(db *sql.DB, logger zerolog.Logger) *SQLiteTermStore {
	return &SQLiteTermStore{sqlTermStore{
		db:          db,
		logger:      logger.With().Str("component", "store").Logger(),
		backend:     "sqlite",
		selectQuery: `SELECT content FROM terms WHERE id = ?`,
		upsertQuery: `
    INSERT INTO terms (id, term, category, definition, content, created_at)
    VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
    ON CONFLICT (id) DO UPDATE SET
        term = excluded.term,
        category = excluded.category,
        definition = excluded.definition,
        content = excluded.content`,
	}}
}
