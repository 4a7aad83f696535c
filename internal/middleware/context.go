package middleware

import (
	"context"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeyRequestID  ctxKey = "req_id"
	ctxKeyIsHTMX     ctxKey = "is_htmx"
	ctxKeyPreference ctxKey = "lang_pref"
	ctxKeyCSRF       ctxKey = "csrf"
)

// WithRequestID stores request id in context
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, id)
}

// RequestID gets request id from context
func RequestID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyRequestID).(string)
	return v, ok
}

// WithHTMX marks request as HTMX
func WithHTMX(ctx context.Context, is bool) context.Context {
	return context.WithValue(ctx, ctxKeyIsHTMX, is)
}

// IsHTMX returns whether this is an htmx request
func IsHTMX(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKeyIsHTMX).(bool)
	return v
}

// WithPreference stores the resolved language preference.
func WithPreference(ctx context.Context, p Preference) context.Context {
	return context.WithValue(ctx, ctxKeyPreference, p)
}

// PreferenceFromContext returns the language preference, if Locale ran.
func PreferenceFromContext(ctx context.Context) (Preference, bool) {
	p, ok := ctx.Value(ctxKeyPreference).(Preference)
	return p, ok
}

// WithCSRFToken stores the token forms must echo back.
func WithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKeyCSRF, token)
}

// CSRFToken returns the token for the current request.
func CSRFToken(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyCSRF).(string)
	return v
}
