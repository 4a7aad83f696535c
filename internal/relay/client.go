// Package relay forwards contact form submissions to the EmailJS REST API.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	// DefaultEndpoint is the EmailJS send API.
	DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"
	defaultTimeout  = 8 * time.Second
)

var tracer = otel.Tracer("vivekananda.org/vivek-web/internal/relay")

// Config holds the EmailJS credentials and the fixed destination address.
type Config struct {
	Endpoint    string
	ServiceID   string
	TemplateID  string
	PublicKey   string
	AccessToken string
	To          string
	Timeout     time.Duration
}

// Client sends messages. Without service id, template id and public key it only logs.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

// Receipt describes an accepted message.
type Receipt struct {
	ID     ulid.ULID
	Status int
	Text   string
}

// Option customises NewClient.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewClient(cfg Config, opts ...Option) *Client {
	cfg.Endpoint = strings.TrimSpace(cfg.Endpoint)
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	c := &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether messages leave the process.
func (c *Client) Configured() bool {
	return c != nil && c.cfg.ServiceID != "" && c.cfg.TemplateID != "" && c.cfg.PublicKey != ""
}

type sendPayload struct {
	ServiceID   string         `json:"service_id"`
	TemplateID  string         `json:"template_id"`
	UserID      string         `json:"user_id"`
	AccessToken string         `json:"accessToken,omitempty"`
	Params      templateParams `json:"template_params"`
}

type templateParams struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	ToEmail   string `json:"to_email"`
}

// Send validates msg and relays it. There is no retry; the caller shows the outcome.
func (c *Client) Send(ctx context.Context, msg Message) (rec Receipt, err error) {
	msg = msg.Clean()
	if err := msg.Validate(); err != nil {
		return Receipt{}, err
	}

	ctx, span := tracer.Start(ctx, "relay.send", trace.WithAttributes(
		attribute.Bool("relay.configured", c.Configured()),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	id := ulid.Make()
	if !c.Configured() {
		c.logger.Info("relay not configured; message logged only",
			zap.String("id", id.String()),
			zap.String("from", msg.Email),
			zap.String("subject", msg.Subject),
		)
		return fakeReceipt(id), nil
	}

	payload, err := json.Marshal(sendPayload{
		ServiceID:   c.cfg.ServiceID,
		TemplateID:  c.cfg.TemplateID,
		UserID:      c.cfg.PublicKey,
		AccessToken: c.cfg.AccessToken,
		Params: templateParams{
			FromName:  msg.Name,
			FromEmail: msg.Email,
			Subject:   msg.Subject,
			Message:   msg.Body,
			ToEmail:   c.cfg.To,
		},
	})
	if err != nil {
		return Receipt{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return Receipt{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Receipt{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return Receipt{}, fmt.Errorf("relay: send status %d: %s", resp.StatusCode, drainError(resp.Body))
	}
	text, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	return Receipt{ID: id, Status: resp.StatusCode, Text: strings.TrimSpace(string(text))}, nil
}

func fakeReceipt(id ulid.ULID) Receipt {
	return Receipt{ID: id, Status: http.StatusOK, Text: "OK (log only)"}
}

func drainError(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
