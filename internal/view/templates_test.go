package view

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vivekananda.org/vivek-web/internal/i18n"
)

func writeTemplate(t *testing.T, dir, rel, body string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestExecuteWithFuncs(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "partials/nav.tmpl", `{{define "nav"}}<a>{{t .Lang "nav.home"}}</a>{{end}}`)
	writeTemplate(t, dir, "pages/home.tmpl", `{{define "home"}}{{template "nav" .}} {{(now).Year}}{{end}}`)

	clock := func() time.Time { return time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC) }
	tmpl, err := New(dir, i18n.MustDefault(), WithClock(clock))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.Execute(&buf, "home", map[string]string{"Lang": "bn"}))
	assert.Equal(t, "<a>"+i18n.MustDefault().T("bn", "nav.home")+"</a> 2031", buf.String())
}

func TestNewWithoutTemplates(t *testing.T) {
	_, err := New(t.TempDir(), i18n.MustDefault())
	assert.Error(t, err)
}

func TestReloadKeepsPreviousSetOnError(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "home.tmpl", `{{define "home"}}one{{end}}`)
	tmpl, err := New(dir, i18n.MustDefault())
	require.NoError(t, err)

	writeTemplate(t, dir, "home.tmpl", `{{define "home"}}{{.Broken{{end}}`)
	assert.Error(t, tmpl.Reload())

	var buf bytes.Buffer
	require.NoError(t, tmpl.Execute(&buf, "home", nil))
	assert.Equal(t, "one", buf.String())
}

func TestWatchReparsesOnChange(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "home.tmpl", `{{define "home"}}before{{end}}`)
	tmpl, err := New(dir, i18n.MustDefault())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var reloads atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- tmpl.Watch(ctx, func(err error) {
			if err == nil {
				reloads.Add(1)
			}
		})
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	writeTemplate(t, dir, "home.tmpl", `{{define "home"}}after{{end}}`)

	require.Eventually(t, func() bool { return reloads.Load() > 0 }, 3*time.Second, 20*time.Millisecond)
	var buf bytes.Buffer
	require.NoError(t, tmpl.Execute(&buf, "home", nil))
	assert.Equal(t, "after", buf.String())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
