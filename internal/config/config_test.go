package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "templates", cfg.Paths.Templates)
	assert.Equal(t, "content/content.json", cfg.Content.Source)
	assert.Equal(t, "en", cfg.I18n.Default)
	assert.False(t, cfg.I18n.Negotiate)
	assert.False(t, cfg.RelayConfigured())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestNewReadsEnvironmentAndFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
server:
  addr: ":9090"
content:
  source: https://cdn.example.org/content.json
relay:
  serviceid: service_x
  templateid: template_y
  publickey: pk
  to: office@example.org
`), 0o600))
	t.Setenv("VIVEK_WEB_I18N_DEFAULT", "bn")
	t.Setenv("VIVEK_WEB_CONTENT_TIMEOUT", "2s")

	v, err := New(file)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "https://cdn.example.org/content.json", cfg.Content.Source)
	assert.Equal(t, 2*time.Second, cfg.Content.Timeout)
	assert.Equal(t, "bn", cfg.I18n.Default)
	assert.True(t, cfg.RelayConfigured())
}

func TestNewMissingExplicitFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateListsEveryField(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("server.addr", " ")
	v.Set("i18n.default", "fr")
	v.Set("relay.serviceid", "service_only")
	v.Set("content.timeout", "0s")

	_, err := Load(v)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{
		"content.timeout",
		"i18n.default",
		"relay.serviceid/templateid/publickey",
		"server.addr",
	}, verr.Fields())
}

func TestValidateRequiresDestinationWhenRelayConfigured(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("relay.serviceid", "s")
	v.Set("relay.templateid", "t")
	v.Set("relay.publickey", "k")

	_, err := Load(v)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"relay.to"}, verr.Fields())
}
