package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultTimeout = 5 * time.Second
	// DefaultLocation is the fixed name of the content document next to the page.
	DefaultLocation = "content/content.json"
)

// ErrMalformed wraps decode failures of the content document.
var ErrMalformed = errors.New("content: malformed document")

var tracer = otel.Tracer("vivekananda.org/vivek-web/internal/content")

// Source retrieves the content document.
type Source interface {
	Fetch(ctx context.Context) (Document, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (Document, error)

func (f SourceFunc) Fetch(ctx context.Context) (Document, error) { return f(ctx) }

// NewSource picks an HTTP source for http(s) URLs and a file source otherwise.
func NewSource(location string, timeout time.Duration) Source {
	location = strings.TrimSpace(location)
	if location == "" {
		location = DefaultLocation
	}
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		return NewHTTPSource(location, &http.Client{Timeout: timeout})
	}
	return FileSource{path: location}
}

// HTTPSource fetches the document from a URL.
type HTTPSource struct {
	url  string
	http *http.Client
}

func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &HTTPSource{url: strings.TrimSpace(url), http: client}
}

// URL returns the fetched location.
func (s *HTTPSource) URL() string { return s.url }

func (s *HTTPSource) Fetch(ctx context.Context) (doc Document, err error) {
	ctx, span := tracer.Start(ctx, "content.fetch", trace.WithAttributes(
		attribute.String("content.source", s.url),
	))
	defer func() { endSpan(span, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return Document{}, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := s.http.Do(req)
	if err != nil {
		return Document{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return Document{}, fmt.Errorf("content: remote status %d", resp.StatusCode)
	}
	return decode(resp.Body)
}

// FileSource reads the document from the local file system.
type FileSource struct {
	path string
}

func NewFileSource(path string) FileSource { return FileSource{path: path} }

// Path returns the file read by Fetch.
func (s FileSource) Path() string { return s.path }

func (s FileSource) Fetch(ctx context.Context) (doc Document, err error) {
	_, span := tracer.Start(ctx, "content.read", trace.WithAttributes(
		attribute.String("content.source", s.path),
	))
	defer func() { endSpan(span, err) }()

	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()
	return decode(f)
}

func decode(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return doc, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
