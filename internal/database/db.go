package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

//go:embed migrations
var migrations embed.FS

// Dialetos suportados pelas migracoes.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

// goose guarda dialeto e FS em variaveis globais.
var gooseMu sync.Mutex

// OpenPostgres abre e testa a conexao com o PostgreSQL.
func OpenPostgres(ctx context.Context, connStr string, logger zerolog.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir conexão com o banco de dados: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("erro ao conectar com o banco de dados (ping): %w", err)
	}

	logger.Info().Msg("Conexão com o banco de dados PostgreSQL estabelecida com sucesso!")
	return db, nil
}

// OpenSQLite abre o banco local. Use ":memory:" em testes.
func OpenSQLite(ctx context.Context, path string, logger zerolog.Logger) (*sql.DB, error) {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir banco sqlite: %w", err)
	}
	// Uma conexao: ":memory:" e por conexao e o sqlite serializa escritas.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("erro ao conectar com o banco sqlite (ping): %w", err)
	}

	logger.Info().Str("path", path).Msg("Banco SQLite local aberto.")
	return db, nil
}

// Migrate aplica as migracoes embutidas do dialeto informado.
func Migrate(db *sql.DB, dialect string, logger zerolog.Logger) error {
	var dir string
	switch dialect {
	case DialectPostgres:
		dir = "migrations/postgres"
	case DialectSQLite:
		dir = "migrations/sqlite"
	default:
		return fmt.Errorf("dialeto de migracao desconhecido: %q", dialect)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(gooseLogger{logger})

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("erro ao configurar dialeto %s: %w", dialect, err)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("erro ao aplicar migracoes: %w", err)
	}

	logger.Info().Str("dialect", dialect).Msg("Tabela 'terms' verificada/criada com sucesso.")
	return nil
}

// gooseLogger adapta o zerolog para a interface goose.Logger.
type gooseLogger struct {
	logger zerolog.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.logger.Debug().Msgf(format, v...)
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Fatal().Msgf(format, v...)
}
