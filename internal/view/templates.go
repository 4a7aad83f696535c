// Package view parses the HTML templates and keeps them fresh in development.
package view

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"vivekananda.org/vivek-web/internal/i18n"
)

// Templates is a parsed template set that can be swapped atomically.
type Templates struct {
	dir    string
	funcs  template.FuncMap
	logger *zap.Logger

	mu   sync.RWMutex
	tmpl *template.Template
}

// Option customises New.
type Option func(*Templates)

func WithLogger(l *zap.Logger) Option {
	return func(t *Templates) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithClock replaces time.Now behind the `now` template func.
func WithClock(now func() time.Time) Option {
	return func(t *Templates) {
		if now != nil {
			t.funcs["now"] = now
		}
	}
}

// New parses every .tmpl file under dir.
func New(dir string, bundle *i18n.Bundle, opts ...Option) (*Templates, error) {
	t := &Templates{
		dir:    dir,
		logger: zap.NewNop(),
		funcs: template.FuncMap{
			"now": time.Now,
			"t":   bundle.T,
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.Reload(); err != nil {
		return nil, err
	}
	return t, nil
}

// Dir returns the template root.
func (t *Templates) Dir() string { return t.dir }

// Reload re-parses the template files. The previous set stays active on error.
func (t *Templates) Reload() error {
	tmpl, err := parseDir(t.dir, t.funcs)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.tmpl = tmpl
	t.mu.Unlock()
	return nil
}

// Execute renders the named template.
func (t *Templates) Execute(w io.Writer, name string, data any) error {
	t.mu.RLock()
	tmpl := t.tmpl
	t.mu.RUnlock()
	if tmpl == nil {
		return fmt.Errorf("view: templates not initialized")
	}
	return tmpl.ExecuteTemplate(w, name, data)
}

func parseDir(dir string, funcs template.FuncMap) (*template.Template, error) {
	// Recursively discover and parse all .tmpl files. Note: ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("view: no templates found under %s", dir)
	}
	return template.New("_root").Funcs(funcs).ParseFiles(files...)
}
