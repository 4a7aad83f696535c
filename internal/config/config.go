// Package config loads runtime configuration from defaults, an optional file and
// VIVEK_WEB_* environment variables.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"

	"vivekananda.org/vivek-web/internal/i18n"
)

// EnvPrefix prefixes every environment variable, e.g. VIVEK_WEB_SERVER_ADDR.
const EnvPrefix = "VIVEK_WEB"

const (
	defaultAddr            = ":8080"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultContentTimeout  = 5 * time.Second
	defaultRelayTimeout    = 8 * time.Second
	defaultAssetMaxAge     = 7 * 24 * time.Hour
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server  ServerConfig
	Paths   PathsConfig
	Content ContentConfig
	I18n    I18nConfig
	Relay   RelayConfig
	Log     LogConfig
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string
	BaseURL         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	AssetMaxAge     time.Duration
	SecureCookies   bool
	Dev             bool
}

// PathsConfig locates templates, static files and markdown pages.
type PathsConfig struct {
	Templates string
	Public    string
	Pages     string
}

// ContentConfig locates the content document: a file path or an http(s) URL.
type ContentConfig struct {
	Source  string
	Timeout time.Duration
}

// I18nConfig selects the default language and whether Accept-Language is consulted
// for first-time visitors.
type I18nConfig struct {
	Default   string
	Negotiate bool
}

// RelayConfig holds the contact-form relay credentials. Leaving the ids empty keeps
// the relay in log-only mode.
type RelayConfig struct {
	Endpoint    string
	ServiceID   string
	TemplateID  string
	PublicKey   string
	AccessToken string
	To          string
	Timeout     time.Duration
}

// LogConfig sets the log level.
type LogConfig struct {
	Level string
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// New returns a viper instance with defaults and environment binding. When file is
// set it must exist; otherwise ./config.yaml is read if present.
func New(file string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// SetDefaults registers every key, which also makes each one reachable from the
// environment.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", defaultAddr)
	v.SetDefault("server.baseurl", "")
	v.SetDefault("server.readtimeout", defaultReadTimeout)
	v.SetDefault("server.writetimeout", defaultWriteTimeout)
	v.SetDefault("server.idletimeout", defaultIdleTimeout)
	v.SetDefault("server.shutdowntimeout", defaultShutdownTimeout)
	v.SetDefault("server.assetmaxage", defaultAssetMaxAge)
	v.SetDefault("server.securecookies", false)
	v.SetDefault("server.dev", false)

	v.SetDefault("paths.templates", "templates")
	v.SetDefault("paths.public", "public")
	v.SetDefault("paths.pages", "content/pages")

	v.SetDefault("content.source", "content/content.json")
	v.SetDefault("content.timeout", defaultContentTimeout)

	v.SetDefault("i18n.default", i18n.DefaultLang)
	v.SetDefault("i18n.negotiate", false)

	v.SetDefault("relay.endpoint", "https://api.emailjs.com/api/v1.0/email/send")
	v.SetDefault("relay.serviceid", "")
	v.SetDefault("relay.templateid", "")
	v.SetDefault("relay.publickey", "")
	v.SetDefault("relay.accesstoken", "")
	v.SetDefault("relay.to", "")
	v.SetDefault("relay.timeout", defaultRelayTimeout)

	v.SetDefault("log.level", "info")
}

// Load decodes and validates v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Server.Addr = strings.TrimSpace(c.Server.Addr)
	c.Server.BaseURL = strings.TrimRight(strings.TrimSpace(c.Server.BaseURL), "/")
	c.Content.Source = strings.TrimSpace(c.Content.Source)
	c.I18n.Default = strings.ToLower(strings.TrimSpace(c.I18n.Default))
	c.Relay.ServiceID = strings.TrimSpace(c.Relay.ServiceID)
	c.Relay.TemplateID = strings.TrimSpace(c.Relay.TemplateID)
	c.Relay.PublicKey = strings.TrimSpace(c.Relay.PublicKey)
	c.Relay.To = strings.TrimSpace(c.Relay.To)
}

// RelayConfigured reports whether the relay sends real mail.
func (c Config) RelayConfigured() bool {
	return c.Relay.ServiceID != "" && c.Relay.TemplateID != "" && c.Relay.PublicKey != ""
}

// Validate lists every missing or invalid field.
func (c Config) Validate() error {
	var bad []string
	if c.Server.Addr == "" {
		bad = append(bad, "server.addr")
	}
	for name, d := range map[string]time.Duration{
		"server.readtimeout":     c.Server.ReadTimeout,
		"server.writetimeout":    c.Server.WriteTimeout,
		"server.idletimeout":     c.Server.IdleTimeout,
		"server.shutdowntimeout": c.Server.ShutdownTimeout,
		"content.timeout":        c.Content.Timeout,
		"relay.timeout":          c.Relay.Timeout,
	} {
		if d <= 0 {
			bad = append(bad, name)
		}
	}
	if strings.TrimSpace(c.Paths.Templates) == "" {
		bad = append(bad, "paths.templates")
	}
	if strings.TrimSpace(c.Paths.Public) == "" {
		bad = append(bad, "paths.public")
	}
	if !supported(c.I18n.Default) {
		bad = append(bad, "i18n.default")
	}
	set := 0
	for _, v := range []string{c.Relay.ServiceID, c.Relay.TemplateID, c.Relay.PublicKey} {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != 3 {
		bad = append(bad, "relay.serviceid/templateid/publickey")
	}
	if set == 3 && c.Relay.To == "" {
		bad = append(bad, "relay.to")
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return &ValidationError{fields: bad}
	}
	return nil
}

func supported(code string) bool {
	for _, s := range i18n.DefaultSupported {
		if s == code {
			return true
		}
	}
	return false
}
