package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
	StoreDriverNop      = "nop"
)

// Config reúne toda a configuração do processo. É montada uma única vez em
// Load e repassada aos construtores do store, do gerador e do servidor.
type Config struct {
	GeminiKey       string        `json:"gemini_key"`
	GeminiModel     string        `json:"gemini_model"`
	GeminiLiveModel string        `json:"gemini_live_model"`
	StoreDriver     string        `json:"store_driver"`
	DatabaseUrl     string        `json:"database_url"`
	SQLitePath      string        `json:"sqlite_path"`
	HTTPAddr        string        `json:"http_addr"`
	LogLevel        string        `json:"log_level"`
	SlowAfter       time.Duration `json:"slow_after"`
	SeedDelay       time.Duration `json:"seed_delay"`

	// DotenvLoaded indica se um arquivo .env foi encontrado.
	DotenvLoaded bool `json:"-"`
}

// Load carrega as variaveis de ambiente (e o arquivo .env, se existir).
func Load() (Config, error) {
	cfg := Config{DotenvLoaded: godotenv.Load() == nil}

	cfg.GeminiKey = os.Getenv("GEMINI_KEY")
	cfg.GeminiModel = getenv("GEMINI_MODEL", "gemini-3-flash-preview")
	cfg.GeminiLiveModel = getenv("GEMINI_LIVE_MODEL", "gemini-2.5-flash-native-audio-preview-12-2025")
	cfg.DatabaseUrl = os.Getenv("DATABASE_URL")
	cfg.SQLitePath = os.Getenv("SQLITE_PATH")
	cfg.HTTPAddr = getenv("HTTP_ADDR", ":8080")
	cfg.LogLevel = getenv("LOG_LEVEL", "info")

	var err error
	if cfg.SlowAfter, err = durationEnv("RESOLVE_SLOW_AFTER", 20*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.SeedDelay, err = durationEnv("SEED_DELAY", time.Second); err != nil {
		return Config{}, err
	}

	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(os.Getenv("STORE_DRIVER")))
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = defaultDriver(cfg)
	}
	if err := cfg.validateStore(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// RequireGeminiKey falha quando a chave da Gemini nao foi configurada.
func (c Config) RequireGeminiKey() error {
	if c.GeminiKey == "" {
		return errors.New("variavel de ambiente GEMINI_KEY nao encontrada")
	}
	return nil
}

func (c Config) validateStore() error {
	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DatabaseUrl == "" {
			return errors.New("variavel de ambiente DATABASE_URL nao encontrada")
		}
	case StoreDriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("variavel de ambiente SQLITE_PATH nao encontrada")
		}
	case StoreDriverNop:
	default:
		return fmt.Errorf("STORE_DRIVER invalido: %q", c.StoreDriver)
	}
	return nil
}

func defaultDriver(c Config) string {
	switch {
	case c.DatabaseUrl != "":
		return StoreDriverPostgres
	case c.SQLitePath != "":
		return StoreDriverSQLite
	default:
		return StoreDriverNop
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("variavel de ambiente %s invalida: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("variavel de ambiente %s nao pode ser negativa", key)
	}
	return d, nil
}
