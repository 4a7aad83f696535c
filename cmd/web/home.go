package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"

	"go.uber.org/zap"

	"vivekananda.org/vivek-web/internal/content"
	"vivekananda.org/vivek-web/internal/handlers"
	"vivekananda.org/vivek-web/internal/i18n"
	mw "vivekananda.org/vivek-web/internal/middleware"
	"vivekananda.org/vivek-web/internal/observability"
	"vivekananda.org/vivek-web/internal/relay"
	"vivekananda.org/vivek-web/internal/seo"
	"vivekananda.org/vivek-web/internal/site"
)

// homeRequest is everything the home pipeline needs from a request.
type homeRequest struct {
	pref    mw.Preference
	token   string
	outcome *relay.Outcome
	persist i18n.Persister
	// static renders links for the exported site.
	static bool
}

// homeData builds the template view model for lang.
func (a *app) homeData(lang, token string, outcome *relay.Outcome, static bool) handlers.HomeData {
	l := handlers.BuildLayout(handlers.LayoutInput{
		Lang:      lang,
		Langs:     a.bundle.Supported(),
		Path:      "/",
		CSRFToken: token,
		Now:       a.now(),
		Static:    static,
	})
	l.SEO = seo.Build(seo.Input{
		BaseURL:     a.cfg.Server.BaseURL,
		Path:        "/",
		Lang:        lang,
		Langs:       a.bundle.Supported(),
		SiteName:    a.bundle.T(lang, "site.title"),
		Title:       a.bundle.T(lang, "site.title"),
		Description: a.bundle.T(lang, "site.description"),
		Image:       "/assets/img/hero.jpg",
		Static:      static,
	})
	l.SEO.AddJSONLD(seo.Organization(a.bundle.T(lang, "site.title"), a.cfg.Server.BaseURL, "", ""))
	return handlers.HomeData{
		Layout:  l,
		Contact: handlers.NewContactData(lang, token, outcome),
	}
}

// buildHome runs the page pipeline: template, saved language, content, then the
// requested language change if any. A failed content load leaves the static sections.
func (a *app) buildHome(ctx context.Context, req homeRequest) (*site.Page, error) {
	logger := observability.FromContext(ctx)
	lang := req.pref.Saved
	if lang == "" {
		lang = req.pref.Fallback
	}

	var buf bytes.Buffer
	if err := a.tmpl.Execute(&buf, "home", a.homeData(req.pref.Effective(), req.token, req.outcome, req.static)); err != nil {
		return nil, err
	}
	opts := []site.Option{site.WithLogger(logger)}
	if req.persist != nil {
		opts = append(opts, site.WithPersister(req.persist))
	}
	page, err := site.NewPage(&buf, a.bundle, a.source, opts...)
	if err != nil {
		return nil, err
	}
	if err := page.Init(lang); err != nil {
		page.Close()
		return nil, err
	}
	// The error is already logged by the page; the static markup is served instead.
	_ = page.Load(ctx)
	if req.pref.Requested != "" && req.pref.Requested != page.Language() {
		if err := page.SetLanguage(req.pref.Requested); err != nil {
			logger.Warn("language change rejected", zap.String("lang", req.pref.Requested), zap.Error(err))
		}
	}
	appendEventSchema(page)
	return page, nil
}

// appendEventSchema adds Event JSON-LD for the loaded events to the document head.
func appendEventSchema(page *site.Page) {
	doc, ok := page.State().Content()
	if !ok || len(doc.Events) == 0 {
		return
	}
	lang := page.Language()
	head := page.Document().Find("head")
	for _, ev := range doc.Events {
		e := ev.Localize(lang)
		b, err := json.Marshal(seo.Event(e.Title, e.Description, e.Date, page.T("site.title")))
		if err != nil {
			continue
		}
		head.AppendHtml(`<script type="application/ld+json">` + string(b) + `</script>`)
	}
}

func (a *app) homeHandler(w http.ResponseWriter, r *http.Request) {
	a.serveHome(w, r, nil, http.StatusOK)
}

func (a *app) serveHome(w http.ResponseWriter, r *http.Request, outcome *relay.Outcome, status int) {
	pref, _ := mw.PreferenceFromContext(r.Context())
	if pref.Fallback == "" {
		pref.Fallback = a.bundle.Fallback()
	}
	page, err := a.buildHome(r.Context(), homeRequest{
		pref:    pref,
		token:   mw.CSRFToken(r.Context()),
		outcome: outcome,
		persist: mw.LangCookiePersister(w, a.cfg.Server.SecureCookies),
	})
	if err != nil {
		observability.FromContext(r.Context()).Error("render home", zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "template error")
		return
	}
	defer page.Close()

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		observability.FromContext(r.Context()).Error("serialize home", zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "render error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// sectionsHandler re-fetches the content document and returns the data-driven
// sections for an out-of-band swap.
func (a *app) sectionsHandler(w http.ResponseWriter, r *http.Request) {
	pref, _ := mw.PreferenceFromContext(r.Context())
	if pref.Fallback == "" {
		pref.Fallback = a.bundle.Fallback()
	}
	page, err := a.buildHome(r.Context(), homeRequest{pref: pref, token: mw.CSRFToken(r.Context())})
	if err != nil {
		observability.FromContext(r.Context()).Error("render sections", zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "template error")
		return
	}
	defer page.Close()

	var buf bytes.Buffer
	if err := page.RenderSections(&buf); err != nil {
		mw.WriteError(w, r, http.StatusInternalServerError, "render error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

// contentJSONHandler serves the local content document so that the page and other
// clients read the same file.
func (a *app) contentJSONHandler(w http.ResponseWriter, r *http.Request) {
	src, ok := a.source.(content.FileSource)
	if !ok {
		if hs, ok := a.source.(*content.HTTPSource); ok {
			http.Redirect(w, r, hs.URL(), http.StatusFound)
			return
		}
		http.NotFound(w, r)
		return
	}
	doc, err := src.Fetch(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, fs.ErrNotExist):
			status = http.StatusNotFound
		case errors.Is(err, content.ErrMalformed):
			status = http.StatusBadGateway
		}
		observability.FromContext(r.Context()).Warn("content document unavailable", zap.Error(err))
		mw.WriteError(w, r, status, "content unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_ = json.NewEncoder(w).Encode(doc)
}
