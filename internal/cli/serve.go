package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"desbuguei/internal/handler"
	"desbuguei/internal/service"
	"desbuguei/internal/sessions"
	"desbuguei/internal/voice"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Sobe a API HTTP e o websocket de voz",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		var dialer voice.Dialer
		if d, err := voice.NewGeminiDialer(ctx, a.cfg, a.logger); err != nil {
			a.logger.Warn().Err(err).Msg("Assistente de voz desligado")
		} else {
			dialer = d
		}
		manager := voice.NewManager(dialer, a.cfg.GeminiLiveModel, sessions.NewRegistry(), a.logger)

		addr := a.cfg.HTTPAddr
		if serveAddr != "" {
			addr = serveAddr
		}
		srv := &http.Server{
			Addr: addr,
			Handler: handler.NewRouter(handler.Deps{
				Resolver:  a.svc,
				Seeder:    a.svc,
				SeedTerms: service.DefaultSeedTerms,
				Voice:     manager,
				SlowAfter: a.cfg.SlowAfter,
				Logger:    a.logger,
			}),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			a.logger.Info().Str("addr", addr).Msg("Servidor iniciado")
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		case <-ctx.Done():
			a.logger.Info().Msg("Encerrando servidor")
		}

		manager.CloseAll()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error().Err(err).Msg("Erro ao encerrar o servidor")
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "endereco HTTP (sobrescreve HTTP_ADDR)")
}
