// Package pages serves localized markdown pages with YAML front matter.
package pages

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned for unknown or unsafe slugs.
var ErrNotFound = errors.New("pages: not found")

const defaultTTL = 5 * time.Minute

// Page is a rendered markdown page.
type Page struct {
	Slug      string
	Lang      string
	Title     string
	Summary   string
	HTML      template.HTML
	UpdatedAt time.Time
}

type frontMatter struct {
	Title     string `yaml:"title"`
	Summary   string `yaml:"summary"`
	UpdatedAt string `yaml:"updated_at"`
}

// Store reads pages from <lang>/<slug>.md and caches the rendered result.
type Store struct {
	fsys     fs.FS
	fallback string
	ttl      time.Duration
	now      func() time.Time
	md       goldmark.Markdown
	policy   *bluemonday.Policy

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	page    Page
	expires time.Time
}

// Option customises NewStore.
type Option func(*Store)

// WithTTL overrides the cache duration.
func WithTTL(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore reads pages from fsys; pages missing in a language come from fallback.
func NewStore(fsys fs.FS, fallback string, opts ...Option) *Store {
	s := &Store{
		fsys:     fsys,
		fallback: fallback,
		ttl:      defaultTTL,
		now:      time.Now,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
		policy: bluemonday.UGCPolicy(),
		cache:  map[string]cacheEntry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the page for slug in lang, or in the fallback language.
func (s *Store) Get(slug, lang string) (Page, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrNotFound
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	key := lang + "|" + slug
	if p, ok := s.cached(key); ok {
		return p, nil
	}

	priority := []string{lang}
	if lang != s.fallback {
		priority = append(priority, s.fallback)
	}
	for _, candidate := range priority {
		if candidate == "" || strings.ContainsAny(candidate, `./\`) {
			continue
		}
		p, err := s.read(slug, candidate)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Page{}, err
		}
		s.store(key, p)
		return p, nil
	}
	return Page{}, ErrNotFound
}

// Slugs lists the pages available in lang, sorted.
func (s *Store) Slugs(lang string) ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, lang)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".md" {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(out)
	return out, nil
}

func (s *Store) read(slug, lang string) (Page, error) {
	file := path.Join(lang, slug+".md")
	data, err := fs.ReadFile(s.fsys, file)
	if err != nil {
		return Page{}, err
	}
	fm, body := splitFrontMatter(string(data))
	var front frontMatter
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("pages: parse front matter %s: %w", file, err)
		}
	}
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(body), &buf); err != nil {
		return Page{}, fmt.Errorf("pages: render %s: %w", file, err)
	}

	p := Page{
		Slug:      slug,
		Lang:      lang,
		Title:     strings.TrimSpace(front.Title),
		Summary:   strings.TrimSpace(front.Summary),
		HTML:      template.HTML(s.policy.SanitizeBytes(buf.Bytes())),
		UpdatedAt: parseDate(front.UpdatedAt),
	}
	if p.UpdatedAt.IsZero() {
		if info, err := fs.Stat(s.fsys, file); err == nil {
			p.UpdatedAt = info.ModTime()
		}
	}
	if p.Title == "" {
		p.Title = prettifySlug(slug)
	}
	return p, nil
}

func (s *Store) cached(key string) (Page, bool) {
	s.mu.RLock()
	entry, ok := s.cache[key]
	s.mu.RUnlock()
	if !ok || s.now().After(entry.expires) {
		return Page{}, false
	}
	return entry.page, true
}

func (s *Store) store(key string, p Page) {
	s.mu.Lock()
	s.cache[key] = cacheEntry{page: p, expires: s.now().Add(s.ttl)}
	s.mu.Unlock()
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.Trim(strings.TrimSpace(strings.ToLower(slug)), "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}
