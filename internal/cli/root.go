// Package cli monta os comandos do binario desbuguei.
package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"desbuguei/config"
	"desbuguei/internal/logging"
	"desbuguei/internal/service"
	"desbuguei/internal/store"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "desbuguei",
	Short: "Glossario de termos de tecnologia com assistente de voz",
	Long: `Desbuguei explica jargao de tecnologia em portugues.

Cada termo pesquisado e normalizado, buscado no banco e, se nao existir,
gerado pela Gemini e salvo para as proximas consultas.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "nivel de log (sobrescreve LOG_LEVEL)")
	rootCmd.AddCommand(serveCmd, resolveCmd, seedCmd, migrateCmd, personasCmd)
}

// Execute roda o comando raiz.
func Execute() error {
	return rootCmd.Execute()
}

// app e o grafo de dependencias comum aos comandos.
type app struct {
	cfg        config.Config
	logger     zerolog.Logger
	store      store.TermStore
	closeStore func() error
	svc        *service.TermService
}

func loadConfig() (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logger := logging.New(cfg.LogLevel, nil)
	if !cfg.DotenvLoaded {
		logger.Debug().Msg("Arquivo .env nao encontrado, usando apenas o ambiente")
	}
	return cfg, logger, nil
}

func newApp(ctx context.Context) (*app, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}

	st, closeStore, err := store.New(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var generator service.DefinitionGenerator
	if g, err := service.NewGeminiGenerator(ctx, cfg, logger); err != nil {
		logger.Warn().Err(err).Msg("Gemini indisponivel: apenas banco e tabela local respondem")
	} else {
		generator = g
	}

	svc := service.NewTermService(st, generator, logger, service.WithSeedDelay(cfg.SeedDelay))
	return &app{
		cfg:        cfg,
		logger:     logger,
		store:      st,
		closeStore: closeStore,
		svc:        svc,
	}, nil
}

// close espera as gravacoes pendentes e fecha o banco.
func (a *app) close() {
	a.svc.Wait()
	if err := a.closeStore(); err != nil {
		a.logger.Error().Err(err).Msg("Erro ao fechar o banco")
	}
}

