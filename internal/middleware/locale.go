package middleware

import (
	"net/http"
	"strings"
	"time"

	"vivekananda.org/vivek-web/internal/i18n"
)

const (
	// LangCookie persists the chosen language between visits.
	LangCookie = "lang"
	// LangQuery carries a language-selector change.
	LangQuery     = "lang"
	langCookieTTL = 365 * 24 * time.Hour
)

// Preference is the language state of a request: the language saved by an earlier
// visit and the one requested by the selector, each empty when absent or unsupported.
type Preference struct {
	Saved     string
	Requested string
	Fallback  string
}

// Effective is the language the response should be rendered in.
func (p Preference) Effective() string {
	switch {
	case p.Requested != "":
		return p.Requested
	case p.Saved != "":
		return p.Saved
	default:
		return p.Fallback
	}
}

// Locale reads the saved language from the `lang` cookie and a requested change from
// the `lang` query parameter. With negotiate set, a visitor without a cookie gets the
// best Accept-Language match as the saved language.
func Locale(bundle *i18n.Bundle, negotiate bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := Preference{Fallback: bundle.Fallback()}
			if c, err := r.Cookie(LangCookie); err == nil {
				if code, ok := bundle.Normalize(c.Value); ok {
					p.Saved = code
				}
			}
			if p.Saved == "" && negotiate {
				if al := r.Header.Get("Accept-Language"); al != "" {
					p.Saved = bundle.Resolve(al)
				}
			}
			if q := strings.TrimSpace(r.URL.Query().Get(LangQuery)); q != "" {
				if code, ok := bundle.Normalize(q); ok {
					p.Requested = code
				}
			}

			w.Header().Add("Vary", "Cookie")
			if negotiate {
				w.Header().Add("Vary", "Accept-Language")
			}
			w.Header().Set("Content-Language", p.Effective())
			next.ServeHTTP(w, r.WithContext(WithPreference(r.Context(), p)))
		})
	}
}

// Lang returns the language a request should be served in.
func Lang(r *http.Request) string {
	if p, ok := PreferenceFromContext(r.Context()); ok {
		return p.Effective()
	}
	return i18n.DefaultLang
}

// SetLangCookie persists code for a year.
func SetLangCookie(w http.ResponseWriter, code string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookie,
		Value:    code,
		Path:     "/",
		MaxAge:   int(langCookieTTL.Seconds()),
		Expires:  time.Now().Add(langCookieTTL),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// LangCookiePersister saves applied languages as the `lang` cookie of w. Repeated
// saves of the same code write a single cookie.
func LangCookiePersister(w http.ResponseWriter, secure bool) i18n.Persister {
	var last string
	return i18n.PersisterFunc(func(code string) error {
		if code == last {
			return nil
		}
		last = code
		SetLangCookie(w, code, secure)
		return nil
	})
}
