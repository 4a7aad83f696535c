package site

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"vivekananda.org/vivek-web/internal/content"
	"vivekananda.org/vivek-web/internal/i18n"
	"vivekananda.org/vivek-web/internal/reveal"
)

// SelectorLanguage is the language selector control.
const SelectorLanguage = "select#lang"

// Sections are the data-driven containers sent back by a partial reload.
var Sections = []string{content.SelectorMeetings, content.SelectorEvents, content.SelectorGallery}

// Option customises NewPage.
type Option func(*options)

type options struct {
	persist i18n.Persister
	logger  *zap.Logger
}

// WithPersister saves every applied language.
func WithPersister(p i18n.Persister) Option {
	return func(o *options) { o.persist = p }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Page is one rendering session over one parsed document. Methods are safe for
// concurrent use; the document itself is owned by the page.
type Page struct {
	mu       sync.Mutex
	doc      *goquery.Document
	state    *State
	engine   *i18n.Engine
	loader   *content.Loader
	renderer *content.Renderer
	tracker  *reveal.Tracker
	logger   *zap.Logger
	cancel   func()
}

// NewPage parses markup and wires the pipeline. Content fetched from src is rendered
// again every time the language changes.
func NewPage(markup io.Reader, bundle *i18n.Bundle, src content.Source, opts ...Option) (*Page, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	doc, err := goquery.NewDocumentFromReader(markup)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	p := &Page{
		doc:    doc,
		state:  NewState(bundle.Fallback()),
		logger: o.logger,
	}
	engineOpts := []i18n.EngineOption{i18n.WithLogger(o.logger)}
	if o.persist != nil {
		engineOpts = append(engineOpts, i18n.WithPersister(o.persist))
	}
	p.engine = i18n.NewEngine(bundle, p.state, engineOpts...)
	p.loader = content.NewLoader(src)
	p.renderer = content.NewRenderer(p.engine)
	p.tracker = reveal.NewTracker(doc)
	p.cancel = p.engine.Changes().Subscribe(p.onLanguageChange)
	return p, nil
}

// Init activates saved when it is supported and the default language otherwise.
func (p *Page) Init(saved string) error {
	lang, ok := p.engine.Bundle().Normalize(saved)
	if !ok {
		lang = p.engine.Bundle().Fallback()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.syncSelector(lang)
	return p.engine.ApplyLanguage(p.doc, lang)
}

// Load fetches the content document and renders every data-driven section. On failure
// the static markup stays as it is and the error is returned for logging only.
func (p *Page) Load(ctx context.Context) error {
	res, err := p.loader.Load(ctx)
	if errors.Is(err, content.ErrStale) {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.logger.Warn("content load failed; keeping static markup", zap.Error(err))
		p.tracker.Prepare(p.doc.Selection)
		return fmt.Errorf("load content: %w", err)
	}
	if holes := res.Document.MissingTranslations(); len(holes) > 0 {
		p.logger.Warn("content has untranslated fields", zap.Strings("fields", holes))
	}
	p.state.SetContent(res.Document)
	p.renderer.Render(p.doc, res.Document, p.state.Language())
	p.tracker.Prepare(p.doc.Selection)
	return nil
}

// Reload fetches the content document again and re-renders the sections.
func (p *Page) Reload(ctx context.Context) error {
	return p.Load(ctx)
}

// SetLanguage switches the active language. Loaded content, hero included, is
// rendered again in the new language.
func (p *Page) SetLanguage(code string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if norm, ok := p.engine.Bundle().Normalize(code); ok {
		p.syncSelector(norm)
	}
	return p.engine.ApplyLanguage(p.doc, code)
}

// onLanguageChange runs inside ApplyLanguage, with p.mu held.
func (p *Page) onLanguageChange(c i18n.Change) {
	d, ok := p.state.Content()
	if !ok {
		return
	}
	// The dictionary pass has just overwritten the hero headings, so every section
	// is rendered again, hero included.
	p.renderer.Render(p.doc, d, c.Lang)
	p.tracker.Prepare(p.doc.Selection)
}

func (p *Page) syncSelector(lang string) {
	p.doc.Find(SelectorLanguage + " option").Each(func(_ int, s *goquery.Selection) {
		if s.AttrOr("value", "") == lang {
			s.SetAttr("selected", "selected")
		} else {
			s.RemoveAttr("selected")
		}
	})
}

// T translates key for the active language.
func (p *Page) T(key string) string { return p.engine.T(key) }

// Language returns the active language code.
func (p *Page) Language() string { return p.state.Language() }

// State exposes the session state.
func (p *Page) State() *State { return p.state }

// Engine exposes the i18n engine, mainly to subscribe to language changes.
func (p *Page) Engine() *i18n.Engine { return p.engine }

// Tracker exposes the reveal tracker of the page.
func (p *Page) Tracker() *reveal.Tracker { return p.tracker }

// Document returns the parsed document. Callers must not use it concurrently with
// other page methods.
func (p *Page) Document() *goquery.Document { return p.doc }

// Render writes the whole document.
func (p *Page) Render(w io.Writer) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return goquery.Render(w, p.doc.Selection)
}

// RenderSections writes the data-driven containers marked for an out-of-band swap.
func (p *Page) RenderSections(w io.Writer) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var b strings.Builder
	for _, sel := range Sections {
		s := p.doc.Find(sel).First()
		if s.Length() == 0 {
			continue
		}
		s.SetAttr("hx-swap-oob", "true")
		out, err := goquery.OuterHtml(s)
		if err != nil {
			return err
		}
		b.WriteString(out)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Close stops listening for language changes.
func (p *Page) Close() {
	p.cancel()
}
