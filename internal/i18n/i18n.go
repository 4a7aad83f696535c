package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLang is the language shown when nothing has been persisted yet.
const DefaultLang = "en"

// DefaultSupported lists the languages shipped with the binary.
var DefaultSupported = []string{"en", "bn"}

type Bundle struct {
	dict      map[string]map[string]string
	fallback  string
	supported map[string]struct{}
	order     []string
	matcher   language.Matcher
}

// Default loads the dictionaries compiled into the binary.
func Default() (*Bundle, error) {
	return Embedded(DefaultLang)
}

// Embedded loads the compiled-in dictionaries with fallback as the default language.
func Embedded(fallback string) (*Bundle, error) {
	return Load(localeFS, "locales", fallback, DefaultSupported)
}

// MustDefault is Default for package-level wiring where the embedded files are known good.
func MustDefault() *Bundle {
	b, err := Default()
	if err != nil {
		panic(err)
	}
	return b
}

// Load reads <dir>/<lang>.json from fsys for every supported language.
func Load(fsys fs.FS, dir string, fallback string, supported []string) (*Bundle, error) {
	if len(supported) == 0 {
		supported = DefaultSupported
	}
	fallback = strings.ToLower(strings.TrimSpace(fallback))
	b := &Bundle{
		dict:      map[string]map[string]string{},
		fallback:  fallback,
		supported: map[string]struct{}{},
	}
	// fallback goes first so the matcher treats it as the default
	b.order = append(b.order, fallback)
	for _, l := range supported {
		l = strings.ToLower(strings.TrimSpace(l))
		if l != fallback {
			b.order = append(b.order, l)
		}
	}
	tags := make([]language.Tag, 0, len(b.order))
	for _, l := range b.order {
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", l, err)
		}
		tags = append(tags, tag)
		b.supported[l] = struct{}{}

		raw, err := fs.ReadFile(fsys, path.Join(dir, l+".json"))
		if err != nil {
			// allow missing file for non-default locales
			if l == fallback {
				return nil, fmt.Errorf("load locale %s: %w", l, err)
			}
			continue
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", l, err)
		}
		b.dict[l] = m
	}
	if _, ok := b.dict[fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %s not loaded", fallback)
	}
	b.matcher = language.NewMatcher(tags)
	return b, nil
}

func (b *Bundle) Supported() []string {
	out := make([]string, 0, len(b.supported))
	for k := range b.supported {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Fallback returns the configured fallback language.
func (b *Bundle) Fallback() string { return b.fallback }

// Normalize lower-cases code and reports whether it names a supported language.
func (b *Bundle) Normalize(code string) (string, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	_, ok := b.supported[code]
	return code, ok
}

// Lookup returns the raw dictionary entry without any fallback.
func (b *Bundle) Lookup(lang, key string) (string, bool) {
	m, ok := b.dict[lang]
	if !ok {
		return "", false
	}
	v, ok := m[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// T returns the translation for key in lang, or the key itself. Other languages are never consulted.
func (b *Bundle) T(lang, key string) string {
	if v, ok := b.Lookup(lang, key); ok {
		return v
	}
	return key
}

// Keys returns every key of lang's dictionary, sorted.
func (b *Bundle) Keys(lang string) []string {
	m := b.dict[lang]
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Resolve chooses the best supported language from an Accept-Language header.
func (b *Bundle) Resolve(acceptLang string) string {
	acceptLang = strings.TrimSpace(acceptLang)
	if acceptLang == "" {
		return b.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		return b.fallback
	}
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(b.order) {
		return b.fallback
	}
	return b.order[idx]
}
