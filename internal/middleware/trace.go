package middleware

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("vivekananda.org/vivek-web/internal/middleware")

// Trace starts a server span per request. Spans are dropped unless the process
// installs a tracer provider.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("url.path", r.URL.Path),
				attribute.Bool("htmx", r.Header.Get("HX-Request") == "true"),
			),
		)
		defer span.End()

		rw := NewResponseRecorder(w)
		next.ServeHTTP(rw, r.WithContext(ctx))

		span.SetAttributes(attribute.Int("http.response.status_code", rw.Status()))
		if rw.Status() >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(rw.Status()))
		}
	})
}
