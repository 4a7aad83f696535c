package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vivekananda.org/vivek-web/internal/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site",
	Long: `The serve command starts the HTTP server. In dev mode templates are re-parsed
whenever a file under the templates directory changes and assets are not cached.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "HTTP listen address")
	serveCmd.Flags().Bool("dev", false, "reload templates on change and disable asset caching")
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg := appConfig
	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Server.Dev {
		go func() {
			if err := a.tmpl.Watch(ctx, nil); err != nil {
				logger.Warn("template watcher stopped", zap.Error(err))
			}
		}()
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           a.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web listening",
			zap.String("addr", cfg.Server.Addr),
			zap.Bool("dev", cfg.Server.Dev),
			zap.String("content", cfg.Content.Source),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
