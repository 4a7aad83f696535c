package middleware

import (
	"net/http"
	"strings"
	"time"

	chiMid "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"vivekananda.org/vivek-web/internal/observability"
)

// Logger stores a request-scoped logger on the context and emits one structured
// entry per request.
func Logger(base *zap.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rid := chiMid.GetReqID(r.Context())
			logger := base.With(
				zap.String("request_id", rid),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)
			ctx := observability.WithLogger(r.Context(), logger)
			if rid != "" {
				ctx = WithRequestID(ctx, rid)
			}
			r = r.WithContext(ctx)

			rw := NewResponseRecorder(w)
			next.ServeHTTP(rw, r)

			fields := []zap.Field{
				zap.Int("status", rw.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.Int64("bytes", rw.BytesWritten()),
				zap.String("remote_ip", clientIP(r)),
				zap.Bool("htmx", IsHTMX(r.Context())),
			}
			switch {
			case rw.Status() >= http.StatusInternalServerError:
				logger.Error("request", fields...)
			case rw.Status() >= http.StatusBadRequest:
				logger.Warn("request", fields...)
			default:
				logger.Info("request", fields...)
			}
		})
	}
}

func clientIP(r *http.Request) string {
	// Trust X-Forwarded-For set by the proxy (last IP is client)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		p := strings.Split(xff, ",")
		return strings.TrimSpace(p[len(p)-1])
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i != -1 {
		return host[:i]
	}
	return host
}
