// Package site runs the page pipeline: translation, content rendering and reveal.
package site

import (
	"sync"

	"vivekananda.org/vivek-web/internal/content"
)

// State is the application state of one page session: the active language and the
// loaded content document. The i18n engine is the only writer of the language.
type State struct {
	mu       sync.RWMutex
	lang     string
	document content.Document
	loaded   bool
}

func NewState(lang string) *State {
	return &State{lang: lang}
}

func (s *State) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lang
}

func (s *State) SetLanguage(code string) {
	s.mu.Lock()
	s.lang = code
	s.mu.Unlock()
}

// Content returns the loaded document and whether a load has succeeded.
func (s *State) Content() (content.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.document, s.loaded
}

func (s *State) SetContent(d content.Document) {
	s.mu.Lock()
	s.document = d
	s.loaded = true
	s.mu.Unlock()
}
