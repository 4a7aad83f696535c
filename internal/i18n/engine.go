package i18n

import (
	"errors"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"vivekananda.org/vivek-web/internal/broadcast"
)

// ErrUnsupportedLanguage is returned when a language code has no dictionary.
var ErrUnsupportedLanguage = errors.New("i18n: unsupported language")

const (
	attrKey            = "data-i18n"
	attrPlaceholderKey = "data-i18n-placeholder"
)

// Change is published after a language has been applied to a document.
type Change struct {
	Lang string
}

// LanguageState is the holder of the active language. The Engine is its only writer.
type LanguageState interface {
	Language() string
	SetLanguage(code string)
}

// Persister stores the chosen language for future sessions.
type Persister interface {
	SaveLanguage(code string) error
}

// PersisterFunc adapts a function to Persister.
type PersisterFunc func(code string) error

func (f PersisterFunc) SaveLanguage(code string) error { return f(code) }

// Engine applies dictionaries to a parsed page and announces language changes.
type Engine struct {
	bundle  *Bundle
	state   LanguageState
	persist Persister
	changes *broadcast.Broadcaster[Change]
	policy  *bluemonday.Policy
	logger  *zap.Logger
}

// EngineOption customises NewEngine.
type EngineOption func(*Engine)

// WithPersister sets where the chosen language is saved.
func WithPersister(p Persister) EngineOption {
	return func(e *Engine) { e.persist = p }
}

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func NewEngine(bundle *Bundle, state LanguageState, opts ...EngineOption) *Engine {
	e := &Engine{
		bundle:  bundle,
		state:   state,
		changes: broadcast.New[Change](),
		policy:  bluemonday.UGCPolicy(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Bundle returns the dictionaries used by the engine.
func (e *Engine) Bundle() *Bundle { return e.bundle }

// Changes is the channel the engine publishes on after every ApplyLanguage.
func (e *Engine) Changes() *broadcast.Broadcaster[Change] { return e.changes }

// T translates key for the active language, falling back to the key.
func (e *Engine) T(key string) string {
	return e.bundle.T(e.state.Language(), key)
}

// ApplyLanguage translates every flagged element of doc, marks the document language,
// persists the choice and notifies subscribers.
func (e *Engine) ApplyLanguage(doc *goquery.Document, code string) error {
	code, ok := e.bundle.Normalize(code)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}

	doc.Find("[" + attrKey + "]").Each(func(_ int, s *goquery.Selection) {
		key, _ := s.Attr(attrKey)
		val := e.bundle.T(code, key)
		if isTextEntry(s) {
			s.SetAttr("placeholder", val)
			return
		}
		s.SetHtml(e.policy.Sanitize(val))
	})

	doc.Find("[" + attrPlaceholderKey + "]").Each(func(_ int, s *goquery.Selection) {
		key, _ := s.Attr(attrPlaceholderKey)
		if val, ok := e.bundle.Lookup(code, key); ok {
			s.SetAttr("placeholder", val)
		}
	})

	root := doc.Find("html")
	htmlLang := "en"
	if code == "bn" {
		htmlLang = "bn"
	}
	root.SetAttr("lang", htmlLang)
	root.SetAttr("data-lang", code)

	if e.persist != nil {
		if err := e.persist.SaveLanguage(code); err != nil {
			e.logger.Warn("persist language", zap.String("lang", code), zap.Error(err))
		}
	}
	e.state.SetLanguage(code)
	e.changes.Publish(Change{Lang: code})
	return nil
}

func isTextEntry(s *goquery.Selection) bool {
	switch goquery.NodeName(s) {
	case "input", "textarea":
		return true
	}
	return false
}
