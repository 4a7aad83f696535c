package content

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderReturnsDocument(t *testing.T) {
	want := sampleDocument()
	l := NewLoader(SourceFunc(func(context.Context) (Document, error) { return want, nil }))

	res, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, res.Document)
	assert.True(t, l.IsLatest(res.Token))
}

func TestLoaderDropsSupersededResponse(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	calls := 0
	src := SourceFunc(func(context.Context) (Document, error) {
		calls++
		if calls == 1 {
			close(started)
			<-release
			return Document{Hero: Hero{Title: "old"}}, nil
		}
		return Document{Hero: Hero{Title: "new"}}, nil
	})
	l := NewLoader(src)

	type outcome struct {
		res Result
		err error
	}
	first := make(chan outcome, 1)
	go func() {
		res, err := l.Load(context.Background())
		first <- outcome{res, err}
	}()
	<-started

	res, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new", res.Document.Hero.Title)

	close(release)
	old := <-first
	assert.ErrorIs(t, old.err, ErrStale)
	assert.Equal(t, Document{}, old.res.Document)
}

func TestLoaderPassesSourceError(t *testing.T) {
	boom := errors.New("boom")
	l := NewLoader(SourceFunc(func(context.Context) (Document, error) { return Document{}, boom }))

	res, err := l.Load(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.True(t, l.IsLatest(res.Token))
}
