// Package seo builds per-language page metadata.
package seo

import (
	"html/template"
	"net/url"
	"strings"
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
	Locale      string
}

// Alternate is one hreflang link.
type Alternate struct {
	Href     string
	Hreflang string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	OG          OpenGraph
	Alternates  []Alternate
	JSONLD      []template.JS
}

// Input is what a page knows about itself.
type Input struct {
	BaseURL     string
	Path        string
	Lang        string
	Langs       []string
	SiteName    string
	Title       string
	Description string
	Image       string
	Type        string
	// Static places the language in the path (/bn/pages/x/) instead of the query.
	Static bool
}

var ogLocales = map[string]string{"en": "en_US", "bn": "bn_BD"}

// Build fills Meta. Alternates point at the same path with an explicit language,
// plus x-default without one.
func Build(in Input) Meta {
	base := strings.TrimRight(in.BaseURL, "/")
	path := in.Path
	if path == "" {
		path = "/"
	}
	title := in.Title
	if in.SiteName != "" && title != in.SiteName {
		title = strings.TrimSpace(title + " | " + in.SiteName)
		title = strings.TrimPrefix(title, "| ")
	}
	kind := in.Type
	if kind == "" {
		kind = "website"
	}
	m := Meta{
		Title:       title,
		Description: in.Description,
		Canonical:   in.localized(base, path, in.Lang),
		OG: OpenGraph{
			Title:       title,
			Description: in.Description,
			Image:       absolute(base, in.Image),
			Type:        kind,
			URL:         in.localized(base, path, in.Lang),
			SiteName:    in.SiteName,
			Locale:      ogLocales[in.Lang],
		},
	}
	for _, l := range in.Langs {
		m.Alternates = append(m.Alternates, Alternate{Href: in.localized(base, path, l), Hreflang: l})
	}
	if len(in.Langs) > 0 {
		m.Alternates = append(m.Alternates, Alternate{Href: base + path, Hreflang: "x-default"})
	}
	return m
}

// AddJSONLD appends a schema.org payload.
func (m *Meta) AddJSONLD(v any) {
	if s := JSON(v); s != "" {
		m.JSONLD = append(m.JSONLD, template.JS(s))
	}
}

func (in Input) localized(base, path, lang string) string {
	if in.Static && lang != "" {
		return base + "/" + lang + strings.TrimRight(path, "/") + "/"
	}
	return withLang(base+path, lang)
}

func withLang(u, lang string) string {
	if lang == "" {
		return u
	}
	return u + "?lang=" + url.QueryEscape(lang)
}

func absolute(base, ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return base + "/" + strings.TrimPrefix(ref, "/")
}
