package content

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vivekananda.org/vivek-web/internal/dom"
)

const pageFixture = `<!doctype html><html lang="en"><body>
<section class="hero" id="home" style="min-height: 100vh">
  <h1 data-i18n="hero.title">Welcome</h1>
  <p class="hero-subtitle" data-i18n="hero.subtitle">Static subtitle</p>
</section>
<div class="meeting-info">
  <div class="meeting-item" id="static-meeting"><h3>Static</h3></div>
  <div class="meeting-item"><h3>Second static</h3></div>
</div>
<div class="events-grid"><div class="event-card">Static event</div></div>
<div class="gallery"><div class="gallery-item">Static tile</div></div>
</body></html>`

type labelTranslator map[string]string

func (l labelTranslator) T(key string) string {
	if v, ok := l[key]; ok {
		return v
	}
	return key
}

func sampleDocument() Document {
	return Document{
		Hero: Hero{
			BackgroundImage: "images/hero.jpg",
			Title:           "Vivekananda Study Circle",
			Subtitle:        "Arise, awake\n& stop not",
		},
		Meetings: []Meeting{
			{Title: "Sunday", TitleBN: "রবিবার", Time: "10 AM", TimeBN: "সকাল ১০টা", Description: "Prayer", DescriptionBN: "প্রার্থনা"},
			{Title: "Football", TitleBN: "ফুটবল", Time: "4 PM", TimeBN: "বিকেল ৪টা", Description: "Game", DescriptionBN: "খেলা"},
			{Title: "Open house", TitleBN: "", Time: "6 PM", TimeBN: "সন্ধ্যা ৬টা", Description: "All welcome", DescriptionBN: "সবাই স্বাগত"},
		},
		Events: []Event{
			{Date: "Jan 12", DateBN: "১২ জানুয়ারি", Title: "Birthday", TitleBN: "জন্মদিন", Description: "Celebration", DescriptionBN: "উদযাপন"},
			{Date: "Mar 3", DateBN: "৩ মার্চ", Title: "Camp", TitleBN: "শিবির", Description: "<b>Medical</b>", DescriptionBN: "চিকিৎসা"},
		},
		Gallery: []GalleryItem{
			{Image: "images/a.jpg", Title: "Worship", TitleBN: "পূজা"},
			{Image: "https://example.org/placeholder-1.png", Title: "Service", TitleBN: "সেবা"},
			{Title: "Empty", TitleBN: "খালি"},
			{Image: "images/d.jpg", Title: "Library", TitleBN: "গ্রন্থাগার"},
		},
	}
}

func parsePage(t *testing.T) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageFixture))
	require.NoError(t, err)
	return doc
}

func TestRenderPopulatesAllSections(t *testing.T) {
	doc := parsePage(t)
	r := NewRenderer(labelTranslator{"label.time": "Time:"})

	r.Render(doc, sampleDocument(), "en")

	items := doc.Find(".meeting-info .meeting-item")
	require.Equal(t, 4, items.Length())
	assert.Equal(t, "static-meeting", items.First().AttrOr("id", ""))

	rendered := doc.Find(`.meeting-info .meeting-item[data-source="content"]`)
	require.Equal(t, 3, rendered.Length())
	first := rendered.First()
	assert.Equal(t, "☀️", first.Find(".meeting-icon").Text())
	assert.Equal(t, "Sunday", first.Find("h3").Text())
	assert.Equal(t, "Time:", first.Find(".meeting-time strong").Text())
	assert.Equal(t, "Time: 10 AM", first.Find(".meeting-time").Text())
	assert.Equal(t, "100", first.AttrOr("data-enter-after", ""))
	opacity, _ := dom.StyleValue(first, "opacity")
	assert.Equal(t, "0", opacity)
	transform, _ := dom.StyleValue(first, "transform")
	assert.Equal(t, "translateY(30px)", transform)
	assert.Equal(t, "⚽", rendered.Eq(1).Find(".meeting-icon").Text())
	assert.Equal(t, DefaultIcon, rendered.Eq(2).Find(".meeting-icon").Text())

	events := doc.Find(".events-grid .event-card")
	require.Equal(t, 2, events.Length())
	assert.Equal(t, "Jan 12", events.First().Find(".event-date").Text())
	assert.Equal(t, "<b>Medical</b>", events.Eq(1).Find(".event-details p").Text())
	assert.Equal(t, 0, events.Find("b").Length())
	delay, _ := dom.StyleValue(events.Eq(1), "animation-delay")
	assert.Equal(t, "0.1s", delay)

	tiles := doc.Find(".gallery .gallery-item")
	require.Equal(t, 4, tiles.Length())
	assert.Equal(t, 0, doc.Find(".gallery .gallery-item:not([data-source])").Length())
}

func TestRenderSecondaryLanguageUsesBnFields(t *testing.T) {
	doc := parsePage(t)
	r := NewRenderer(labelTranslator{"label.time": "সময়:"})

	r.Render(doc, sampleDocument(), "bn")

	rendered := doc.Find(`.meeting-item[data-source="content"]`)
	assert.Equal(t, "রবিবার", rendered.First().Find("h3").Text())
	assert.Equal(t, "☀️", rendered.First().Find(".meeting-icon").Text())
	assert.Equal(t, "", rendered.Eq(2).Find("h3").Text())
	assert.Equal(t, "সময়: সকাল ১০টা", rendered.First().Find(".meeting-time").Text())
	assert.Equal(t, "১২ জানুয়ারি", doc.Find(".event-date").First().Text())
	assert.Equal(t, "পূজা", doc.Find(".gallery-item img").First().AttrOr("alt", ""))
}

func TestRenderIsIdempotent(t *testing.T) {
	doc := parsePage(t)
	r := NewRenderer(labelTranslator{})
	d := sampleDocument()

	r.Render(doc, d, "en")
	once, err := doc.Find("body").Html()
	require.NoError(t, err)
	r.Render(doc, d, "en")
	twice, err := doc.Find("body").Html()
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.Equal(t, 4, doc.Find(".meeting-info .meeting-item").Length())
}

func TestRenderHero(t *testing.T) {
	doc := parsePage(t)
	NewRenderer(labelTranslator{}).RenderHero(doc, sampleDocument().Hero)

	hero := doc.Find(".hero")
	bg, ok := dom.StyleValue(hero, "background-image")
	require.True(t, ok)
	assert.Equal(t, "linear-gradient(135deg, rgba(21,127,173,0.9) 0%, rgba(118,75,162,0.9) 100%), url('images/hero.jpg')", bg)
	for prop, want := range map[string]string{
		"background-size":       "cover",
		"background-position":   "center",
		"background-attachment": "fixed",
		"min-height":            "100vh",
	} {
		got, _ := dom.StyleValue(hero, prop)
		assert.Equal(t, want, got, prop)
	}
	assert.Equal(t, "Vivekananda Study Circle", hero.Find("h1").Text())

	subtitle, err := hero.Find(".hero-subtitle").Html()
	require.NoError(t, err)
	assert.Equal(t, "Arise, awake<br/>&amp; stop not", subtitle)
}

func TestRenderHeroSkipsEmptyFields(t *testing.T) {
	doc := parsePage(t)
	NewRenderer(labelTranslator{}).RenderHero(doc, Hero{})

	hero := doc.Find(".hero")
	assert.Equal(t, "min-height: 100vh", hero.AttrOr("style", ""))
	assert.Equal(t, "Welcome", hero.Find("h1").Text())
	assert.Equal(t, "Static subtitle", hero.Find(".hero-subtitle").Text())
}

func TestRenderHeroEscapesImageURL(t *testing.T) {
	doc := parsePage(t)
	NewRenderer(labelTranslator{}).RenderHero(doc, Hero{BackgroundImage: "x.jpg'); color: red; ('"})

	bg, _ := dom.StyleValue(doc.Find(".hero"), "background-image")
	assert.True(t, strings.HasSuffix(bg, "url('x.jpg%27%29; color: red; %28%27')"), bg)
	_, ok := dom.StyleValue(doc.Find(".hero"), "color")
	assert.False(t, ok)
}

func TestRenderGalleryTiles(t *testing.T) {
	doc := parsePage(t)
	NewRenderer(labelTranslator{}).RenderGallery(doc, sampleDocument().Gallery, "en")

	tiles := doc.Find(".gallery .gallery-item")
	require.Equal(t, 4, tiles.Length())

	img := tiles.Eq(0).Find("img")
	require.Equal(t, 1, img.Length())
	assert.Equal(t, "images/a.jpg", img.AttrOr("src", ""))
	assert.Equal(t, "Worship", img.AttrOr("alt", ""))
	assert.Equal(t, "lazy", img.AttrOr("loading", ""))
	assert.Equal(t, "Worship", tiles.Eq(0).Find(".gallery-caption").Text())

	for _, i := range []int{1, 2} {
		tile := tiles.Eq(i)
		assert.Equal(t, 0, tile.Find("img").Length(), "tile %d", i)
		bg, _ := dom.StyleValue(tile, "background")
		assert.Contains(t, bg, "var(--indigo)")
	}
	assert.Equal(t, "Service", tiles.Eq(1).Find(".gallery-caption").Text())

	for i, want := range []string{"0s", "0.05s", "0.1s", "0.15s"} {
		got, _ := dom.StyleValue(tiles.Eq(i), "animation-delay")
		assert.Equal(t, want, got)
	}
}

func TestRenderEmptyListsClearContainers(t *testing.T) {
	doc := parsePage(t)
	NewRenderer(labelTranslator{}).Render(doc, Document{}, "en")

	assert.Equal(t, 1, doc.Find(".meeting-info .meeting-item").Length())
	assert.Equal(t, 0, doc.Find(".events-grid").Children().Length())
	assert.Equal(t, 0, doc.Find(".gallery").Children().Length())
}

func TestRenderMissingContainersIsNoop(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body><p>bare</p></body></html>`))
	require.NoError(t, err)

	NewRenderer(labelTranslator{}).Render(doc, sampleDocument(), "en")

	assert.Equal(t, "bare", doc.Find("body").Text())
}

func TestIconFor(t *testing.T) {
	assert.Equal(t, "☀️", IconFor("Sunday"))
	assert.Equal(t, "🙏", IconFor("Thursday"))
	assert.Equal(t, "⚽", IconFor("Football"))
	assert.Equal(t, DefaultIcon, IconFor("football"))
	assert.Equal(t, DefaultIcon, IconFor("SUNDAY"))
	assert.Equal(t, DefaultIcon, IconFor("Sunday Prayer"))
	assert.Equal(t, DefaultIcon, IconFor(""))
}

func TestMissingTranslations(t *testing.T) {
	d := sampleDocument()
	assert.Equal(t, []string{"meetings[2].title_bn"}, d.MissingTranslations())
}
