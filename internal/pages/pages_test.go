package pages

import (
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"en/scholarship.md": {Data: []byte("---\ntitle: Scholarship Program\nsummary: Support for students\nupdated_at: 2025-11-02\n---\n# Apply\n\nSend **one** form.\n<script>alert(1)</script>\n")},
		"bn/scholarship.md": {Data: []byte("---\ntitle: বৃত্তি কার্যক্রম\n---\nআবেদন করুন\n")},
		"en/about-us.md":    {Data: []byte("Plain page without front matter.\n"), ModTime: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)},
		"en/broken.md":      {Data: []byte("---\ntitle: [unclosed\n---\nbody\n")},
		"en/notes.txt":      {Data: []byte("ignored")},
	}
}

func TestGetRendersMarkdown(t *testing.T) {
	s := NewStore(testFS(), "en")

	p, err := s.Get("scholarship", "en")
	require.NoError(t, err)
	assert.Equal(t, "Scholarship Program", p.Title)
	assert.Equal(t, "Support for students", p.Summary)
	assert.Equal(t, "en", p.Lang)
	assert.Equal(t, time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC), p.UpdatedAt)
	assert.Contains(t, string(p.HTML), "<strong>one</strong>")
	assert.Contains(t, string(p.HTML), "Apply</h1>")
	assert.NotContains(t, string(p.HTML), "<script>")
}

func TestGetLocalizedAndFallback(t *testing.T) {
	s := NewStore(testFS(), "en")

	bn, err := s.Get("scholarship", "bn")
	require.NoError(t, err)
	assert.Equal(t, "bn", bn.Lang)
	assert.Equal(t, "বৃত্তি কার্যক্রম", bn.Title)

	fallback, err := s.Get("about-us", "bn")
	require.NoError(t, err)
	assert.Equal(t, "en", fallback.Lang)
	assert.Equal(t, "About Us", fallback.Title)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), fallback.UpdatedAt)
}

func TestGetRejectsUnknownAndUnsafeSlugs(t *testing.T) {
	s := NewStore(testFS(), "en")
	for _, slug := range []string{"", "missing", "../en/scholarship", "en/scholarship", `a\b`} {
		_, err := s.Get(slug, "en")
		assert.ErrorIs(t, err, ErrNotFound, slug)
	}
	_, err := s.Get("scholarship", "../en")
	require.NoError(t, err, "unsafe languages fall back to the default")
}

func TestGetReportsBrokenFrontMatter(t *testing.T) {
	_, err := NewStore(testFS(), "en").Get("broken", "en")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestGetCachesUntilExpiry(t *testing.T) {
	fsys := testFS()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(fsys, "en", WithTTL(time.Minute), WithClock(func() time.Time { return now }))

	first, err := s.Get("scholarship", "en")
	require.NoError(t, err)

	fsys["en/scholarship.md"] = &fstest.MapFile{Data: []byte("---\ntitle: Changed\n---\nnew\n")}
	cached, err := s.Get("scholarship", "en")
	require.NoError(t, err)
	assert.Equal(t, first.Title, cached.Title)

	now = now.Add(2 * time.Minute)
	fresh, err := s.Get("scholarship", "en")
	require.NoError(t, err)
	assert.Equal(t, "Changed", fresh.Title)
}

func TestSlugs(t *testing.T) {
	s := NewStore(testFS(), "en")

	en, err := s.Slugs("en")
	require.NoError(t, err)
	assert.Equal(t, []string{"about-us", "broken", "scholarship"}, en)

	none, err := s.Slugs("fr")
	require.NoError(t, err)
	assert.Empty(t, none)
}
