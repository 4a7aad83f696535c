package content

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrStale is returned by Load when a newer Load was started before this one finished.
var ErrStale = errors.New("content: superseded by a newer load")

// Loader fetches the document and drops responses of superseded requests.
type Loader struct {
	source Source
	issued atomic.Uint64
}

// Result is a successfully loaded document and the request token that produced it.
type Result struct {
	Document Document
	Token    uint64
}

func NewLoader(src Source) *Loader {
	return &Loader{source: src}
}

// Load fetches the document. Only the most recently issued request may return a
// document; earlier ones get ErrStale whatever their outcome.
func (l *Loader) Load(ctx context.Context) (Result, error) {
	token := l.issued.Add(1)
	doc, err := l.source.Fetch(ctx)
	if !l.IsLatest(token) {
		return Result{}, ErrStale
	}
	if err != nil {
		return Result{Token: token}, err
	}
	return Result{Document: doc, Token: token}, nil
}

// IsLatest reports whether token belongs to the most recently issued request.
func (l *Loader) IsLatest(token uint64) bool {
	return l.issued.Load() == token
}
