package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"vivekananda.org/vivek-web/internal/handlers"
	mw "vivekananda.org/vivek-web/internal/middleware"
	"vivekananda.org/vivek-web/internal/observability"
	"vivekananda.org/vivek-web/internal/pages"
	"vivekananda.org/vivek-web/internal/seo"
)

const pageCacheControl = "public, max-age=600"

func (a *app) pageData(lang, token string, p pages.Page, static bool) handlers.PageData {
	path := "/pages/" + p.Slug
	l := handlers.BuildLayout(handlers.LayoutInput{
		Lang:      lang,
		Langs:     a.bundle.Supported(),
		Path:      path,
		Title:     p.Title,
		CSRFToken: token,
		Now:       a.now(),
		Static:    static,
	})
	l.SEO = seo.Build(seo.Input{
		BaseURL:     a.cfg.Server.BaseURL,
		Path:        path,
		Lang:        lang,
		Langs:       a.bundle.Supported(),
		SiteName:    a.bundle.T(lang, "site.title"),
		Title:       p.Title,
		Description: p.Summary,
		Type:        "article",
		Static:      static,
	})
	var modified string
	if !p.UpdatedAt.IsZero() {
		modified = p.UpdatedAt.Format("2006-01-02")
	}
	l.SEO.AddJSONLD(seo.Article(p.Title, l.SEO.Canonical, p.Lang, modified))
	crumbs := make([]seo.BreadcrumbItem, 0, len(l.Breadcrumbs))
	for _, c := range l.Breadcrumbs {
		name := c.Label
		if c.LabelKey != "" {
			name = a.bundle.T(lang, c.LabelKey)
		}
		crumbs = append(crumbs, seo.BreadcrumbItem{Name: name, Item: a.cfg.Server.BaseURL + c.Href})
	}
	l.SEO.AddJSONLD(seo.BreadcrumbList(crumbs))
	return handlers.NewPageData(l, p)
}

// pageHandler renders a markdown page with ETag revalidation.
func (a *app) pageHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	p, err := a.pages.Get(chi.URLParam(r, "slug"), lang)
	if errors.Is(err, pages.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		observability.FromContext(r.Context()).Error("load page", zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "page unavailable")
		return
	}
	if pref, ok := mw.PreferenceFromContext(r.Context()); ok && pref.Requested != "" {
		mw.SetLangCookie(w, pref.Requested, a.cfg.Server.SecureCookies)
	}

	var buf bytes.Buffer
	if err := a.tmpl.Execute(&buf, "page", a.pageData(lang, mw.CSRFToken(r.Context()), p, false)); err != nil {
		observability.FromContext(r.Context()).Error("render page", zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "template error")
		return
	}
	sum := sha256.Sum256(buf.Bytes())
	etag := `W/"` + hex.EncodeToString(sum[:8]) + `"`

	w.Header().Set("Cache-Control", pageCacheControl)
	w.Header().Set("ETag", etag)
	if !p.UpdatedAt.IsZero() {
		w.Header().Set("Last-Modified", p.UpdatedAt.UTC().Format(http.TimeFormat))
	}
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
