package store

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"desbuguei/config"
	"desbuguei/internal/database"
	"desbuguei/internal/domain"
)

func newSQLiteStore(t *testing.T) *SQLiteTermStore {
	t.Helper()
	ctx := context.Background()

	db, err := database.OpenSQLite(ctx, ":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db, database.DialectSQLite, zerolog.Nop()))

	return NewSQLiteTermStore(db, zerolog.Nop())
}

func dockerTerm() domain.Term {
	return domain.Term{
		ID:             "docker",
		Term:           "Docker",
		Category:       domain.CategoryInfrastructure,
		Definition:     "Empacota aplicações em contêineres.",
		Examples:       []domain.Example{{Title: "DEPLOY", Description: "Mesmo pacote em todo ambiente."}},
		Analogies:      []domain.Example{},
		PracticalUsage: domain.PracticalUsage{Title: "Na daily", Content: "Subi a imagem nova."},
		RelatedTerms:   []string{"Kubernetes", "Imagem"},
	}
}

func TestSQLiteTermStoreGetMissing(t *testing.T) {
	s := newSQLiteStore(t)

	_, err := s.Get(context.Background(), "nada")
	assert.ErrorIs(t, err, domain.ErrTermNotFound)
}

func TestSQLiteTermStoreUpsertAndGet(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, dockerTerm()))

	got, err := s.Get(ctx, "docker")
	require.NoError(t, err)
	assert.Equal(t, dockerTerm(), got)
}

func TestSQLiteTermStoreUpsertOverwrites(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, dockerTerm()))

	updated := dockerTerm()
	updated.Definition = "Nova definição."
	require.NoError(t, s.Upsert(ctx, updated))
	// Mesmo upsert de novo: idempotente.
	require.NoError(t, s.Upsert(ctx, updated))

	got, err := s.Get(ctx, "docker")
	require.NoError(t, err)
	assert.Equal(t, "Nova definição.", got.Definition)

	var count int
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM terms WHERE id = 'docker'`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSQLiteTermStoreRejectsEmptyID(t *testing.T) {
	s := newSQLiteStore(t)

	err := s.Upsert(context.Background(), domain.Term{Term: "sem id"})
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)
}

func TestSQLiteTermStoreClosedDB(t *testing.T) {
	s := newSQLiteStore(t)
	require.NoError(t, s.db.Close())

	_, err := s.Get(context.Background(), "docker")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, domain.ErrTermNotFound)
}

func TestNopTermStore(t *testing.T) {
	var s TermStore = NopTermStore{}
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, dockerTerm()))
	_, err := s.Get(ctx, "docker")
	assert.ErrorIs(t, err, domain.ErrTermNotFound)
	assert.False(t, Configured(s))
}

func TestNewSelectsVariant(t *testing.T) {
	ctx := context.Background()

	st, closeFn, err := New(ctx, config.Config{StoreDriver: config.StoreDriverNop}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, NopTermStore{}, st)
	assert.NoError(t, closeFn())

	st, closeFn, err = New(ctx, config.Config{StoreDriver: config.StoreDriverSQLite, SQLitePath: ":memory:"}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &SQLiteTermStore{}, st)
	assert.True(t, Configured(st))
	assert.NoError(t, closeFn())

	_, _, err = New(ctx, config.Config{StoreDriver: "mongo"}, zerolog.Nop())
	assert.Error(t, err)
}
