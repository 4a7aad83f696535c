package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"vivekananda.org/vivek-web/internal/config"
	"vivekananda.org/vivek-web/internal/content"
	"vivekananda.org/vivek-web/internal/i18n"
	mw "vivekananda.org/vivek-web/internal/middleware"
	"vivekananda.org/vivek-web/internal/pages"
	"vivekananda.org/vivek-web/internal/relay"
	"vivekananda.org/vivek-web/internal/view"
)

// app holds the long-lived dependencies shared by every handler.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	bundle *i18n.Bundle
	tmpl   *view.Templates
	source content.Source
	relay  *relay.Client
	pages  *pages.Store
	now    func() time.Time
}

func newApp(cfg config.Config, logger *zap.Logger) (*app, error) {
	bundle, err := i18n.Embedded(cfg.I18n.Default)
	if err != nil {
		return nil, fmt.Errorf("load dictionaries: %w", err)
	}
	tmpl, err := view.New(cfg.Paths.Templates, bundle, view.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	relayClient := relay.NewClient(relay.Config{
		Endpoint:    cfg.Relay.Endpoint,
		ServiceID:   cfg.Relay.ServiceID,
		TemplateID:  cfg.Relay.TemplateID,
		PublicKey:   cfg.Relay.PublicKey,
		AccessToken: cfg.Relay.AccessToken,
		To:          cfg.Relay.To,
		Timeout:     cfg.Relay.Timeout,
	}, relay.WithLogger(logger))
	if !relayClient.Configured() {
		logger.Info("contact relay not configured; messages are logged only")
	}
	return &app{
		cfg:    cfg,
		logger: logger,
		bundle: bundle,
		tmpl:   tmpl,
		source: content.NewSource(cfg.Content.Source, cfg.Content.Timeout),
		relay:  relayClient,
		pages:  pages.NewStore(os.DirFS(cfg.Paths.Pages), bundle.Fallback()),
		now:    time.Now,
	}, nil
}

// routes builds the router with the full middleware stack.
func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(chimw.RealIP)
	r.Use(mw.Logger(a.logger))
	r.Use(mw.Trace)
	r.Use(chimw.Recoverer)
	r.Use(mw.HTMX)
	r.Use(mw.Locale(a.bundle, a.cfg.I18n.Negotiate))
	r.Use(mw.CSRF(a.cfg.Server.SecureCookies))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(a.cfg.Server.WriteTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	maxAge := a.cfg.Server.AssetMaxAge
	if a.cfg.Server.Dev {
		maxAge = 0
	}
	r.Handle("/assets/*", mw.AssetsWithCache(filepath.Join(a.cfg.Paths.Public, "assets"), "/assets", maxAge))

	r.Get("/", a.homeHandler)
	r.Get("/content.json", a.contentJSONHandler)
	r.Get("/content/sections", a.sectionsHandler)
	r.Post("/contact", a.contactHandler)
	r.Get("/pages/{slug}", a.pageHandler)
	return r
}
