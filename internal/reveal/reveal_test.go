package reveal

import (
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vivekananda.org/vivek-web/internal/dom"
)

const fixture = `<html><body>
<div class="meeting-info">
  <div class="meeting-item">static</div>
  <div class="meeting-item" style="opacity: 0; transform: translateY(30px)" data-enter-after="100">fresh</div>
</div>
<div class="events-grid"><div class="event-card">e1</div><div class="event-card">e2</div></div>
<div class="gallery"><div class="gallery-item">g1</div></div>
<p class="other">ignored</p>
</body></html>`

func newTracker(t *testing.T) (*Tracker, *goquery.Document) {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fixture))
	require.NoError(t, err)
	return NewTracker(doc), doc
}

func ids(doc *goquery.Document) []string {
	var out []string
	doc.Find(Selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.AttrOr(AttrID, ""))
	})
	return out
}

func TestPrepareObservesAllElements(t *testing.T) {
	tr, doc := newTracker(t)

	n := tr.Prepare(doc.Selection)

	assert.Equal(t, 5, n)
	assert.Equal(t, 5, tr.Observed())
	assert.Equal(t, []string{"r1", "r2", "r3", "r4", "r5"}, ids(doc))
	assert.Equal(t, 5, doc.Find(`[data-reveal="pending"]`).Length())
	assert.False(t, doc.Find(".other").Is("[" + AttrID + "]"))

	static := doc.Find(".meeting-item").First()
	transition, ok := dom.StyleValue(static, "transition")
	require.True(t, ok)
	assert.Equal(t, "opacity 0.6s ease, transform 0.6s ease", transition)

	fresh := doc.Find(".meeting-item").Eq(1)
	_, ok = dom.StyleValue(fresh, "transition")
	assert.False(t, ok, "elements with an inline opacity keep their own style")
}

func TestIntersectRevealsOnce(t *testing.T) {
	tr, doc := newTracker(t)
	tr.Prepare(doc.Selection)

	got := tr.Intersect([]Entry{
		{ID: "r1", Ratio: 0.5},
		{ID: "r2", Ratio: 0.05},
		{ID: "r3", Ratio: 0.1},
		{ID: "nope", Ratio: 1},
	})

	assert.Equal(t, []Reveal{
		{ID: "r1", Delay: 0},
		{ID: "r3", Delay: 2 * Step},
	}, got)
	p, _ := tr.Phase("r1")
	assert.Equal(t, Revealed, p)
	p, _ = tr.Phase("r2")
	assert.Equal(t, Pending, p)
	_, ok := tr.Phase("nope")
	assert.False(t, ok)

	el := doc.Find(`[data-reveal-id="r3"]`)
	assert.Equal(t, "revealed", el.AttrOr(AttrPhase, ""))
	assert.Equal(t, "200", el.AttrOr(AttrDelay, ""))
	opacity, _ := dom.StyleValue(el, "opacity")
	assert.Equal(t, "1", opacity)
	transform, _ := dom.StyleValue(el, "transform")
	assert.Equal(t, "translateY(0)", transform)

	again := tr.Intersect([]Entry{{ID: "r1", Ratio: 1}, {ID: "r3", Ratio: 1}})
	assert.Empty(t, again)
	assert.Equal(t, 3, tr.Observed())
}

func TestPrepareKeepsRevealedElements(t *testing.T) {
	tr, doc := newTracker(t)
	tr.Prepare(doc.Selection)
	tr.Intersect([]Entry{{ID: "r1", Ratio: 1}})

	tr.Prepare(doc.Selection)

	p, _ := tr.Phase("r1")
	assert.Equal(t, Revealed, p)
	assert.Equal(t, "revealed", doc.Find(`[data-reveal-id="r1"]`).AttrOr(AttrPhase, ""))
}

func TestPrepareForgetsRemovedElements(t *testing.T) {
	tr, doc := newTracker(t)
	tr.Prepare(doc.Selection)

	doc.Find(".events-grid").SetHtml(`<div class="event-card">replacement</div>`)
	n := tr.Prepare(doc.Find(".events-grid"))

	assert.Equal(t, 1, n)
	_, ok := tr.Phase("r3")
	assert.False(t, ok)
	assert.Equal(t, "r6", doc.Find(".event-card").AttrOr(AttrID, ""))
	assert.Equal(t, 4, tr.Observed())
}

func TestClientObserverUsesTrackerConstants(t *testing.T) {
	b, err := os.ReadFile("../../public/assets/js/site.js")
	require.NoError(t, err)
	js := string(b)

	assert.Contains(t, js, "var STEP = "+strconv.FormatInt(Step.Milliseconds(), 10)+";")
	assert.Contains(t, js, "var THRESHOLD = "+strconv.FormatFloat(Threshold, 'f', -1, 64)+";")
	assert.Contains(t, js, `querySelectorAll('[`+AttrPhase+`="`+string(Pending)+`"]')`)
	assert.Contains(t, js, "index * STEP")
}
