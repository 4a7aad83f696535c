// Package handlers holds the view models shared by the templates.
package handlers

import (
	"net/url"
	"strings"
	"time"

	"vivekananda.org/vivek-web/internal/format"
	"vivekananda.org/vivek-web/internal/nav"
	"vivekananda.org/vivek-web/internal/pages"
	"vivekananda.org/vivek-web/internal/relay"
	"vivekananda.org/vivek-web/internal/seo"
)

// Language is one option of the language selector.
type Language struct {
	Code     string
	LabelKey string
	Selected bool
	// Href is where the selector navigates for this language.
	Href string
}

// Layout carries the fields every page template reads.
type Layout struct {
	Lang        string
	Path        string
	Year        string
	CSRFToken   string
	SEO         seo.Meta
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	Languages   []Language
	// Static is set when the page is written as a file for a static host, where
	// query parameters are not served.
	Static bool
}

// HomeHref links to the home page in lang.
func (l Layout) HomeHref(lang string) string {
	if l.Static {
		return "/" + lang + "/"
	}
	return "/?lang=" + url.QueryEscape(lang)
}

// PageHref links to the markdown page slug in the layout language.
func (l Layout) PageHref(slug string) string {
	if l.Static {
		return "/" + l.Lang + "/pages/" + slug + "/"
	}
	return "/pages/" + slug + "?lang=" + url.QueryEscape(l.Lang)
}

// langHref links to the current page in lang.
func (l Layout) langHref(lang string) string {
	if l.Path == "" || l.Path == "/" {
		return l.HomeHref(lang)
	}
	if l.Static {
		return "/" + lang + l.Path + "/"
	}
	return l.Path + "?lang=" + url.QueryEscape(lang)
}

// LayoutInput is what a handler knows about the request.
type LayoutInput struct {
	Lang      string
	Langs     []string
	Path      string
	Title     string
	CSRFToken string
	Now       time.Time
	Static    bool
}

// BuildLayout fills the shared layout fields.
func BuildLayout(in LayoutInput) Layout {
	l := Layout{
		Lang:      in.Lang,
		Path:      in.Path,
		Year:      format.Year(in.Now, in.Lang),
		CSRFToken: in.CSRFToken,
		Nav:       nav.Build(in.Path),
		Static:    in.Static,
	}
	if l.Static {
		for i, it := range l.Nav {
			if strings.HasPrefix(it.Href, "/#") {
				l.Nav[i].Href = l.HomeHref(in.Lang) + it.Href[1:]
			}
		}
	}
	if in.Path != "" && in.Path != "/" {
		l.Breadcrumbs = nav.Breadcrumbs(in.Path, in.Title)
		for i, c := range l.Breadcrumbs {
			if c.Href == "/" {
				l.Breadcrumbs[i].Href = l.HomeHref(in.Lang)
			}
		}
	}
	for _, code := range in.Langs {
		l.Languages = append(l.Languages, Language{
			Code:     code,
			LabelKey: "lang." + code,
			Selected: code == in.Lang,
			Href:     l.langHref(code),
		})
	}
	return l
}

// ContactData is the contact form state.
type ContactData struct {
	Lang      string
	CSRFToken string
	Values    relay.Message
	Outcome   *relay.Outcome
}

// NewContactData builds the form state from the result of a send. A nil outcome
// renders the empty form.
func NewContactData(lang, token string, o *relay.Outcome) ContactData {
	d := ContactData{Lang: lang, CSRFToken: token, Outcome: o}
	if o != nil {
		d.Values = o.Values
	}
	return d
}

// ButtonKey is the i18n key of the submit button label.
func (c ContactData) ButtonKey() string {
	if c.Outcome == nil || c.Outcome.Button.Key == "" {
		return "contact.send"
	}
	return c.Outcome.Button.Key
}

// DismissMillis returns the toast lifetime for data attributes.
func (c ContactData) DismissMillis() int64 {
	if c.Outcome == nil {
		return 0
	}
	return c.Outcome.Notice.DismissAfter.Milliseconds()
}

// RevertMillis returns the button reset delay for data attributes.
func (c ContactData) RevertMillis() int64 {
	if c.Outcome == nil {
		return 0
	}
	return c.Outcome.Button.RevertAfter.Milliseconds()
}

// HomeData is the view model for the home page.
type HomeData struct {
	Layout
	Contact ContactData
}

// PageData is the view model for a markdown page.
type PageData struct {
	Layout
	Page    pages.Page
	Updated string
}

// NewPageData formats the page for lang.
func NewPageData(l Layout, p pages.Page) PageData {
	return PageData{Layout: l, Page: p, Updated: format.Date(p.UpdatedAt, l.Lang)}
}
