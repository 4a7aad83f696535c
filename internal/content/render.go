package content

import (
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"vivekananda.org/vivek-web/internal/dom"
)

// Selectors of the containers the renderer fills.
const (
	SelectorHero     = ".hero"
	SelectorMeetings = ".meeting-info"
	SelectorEvents   = ".events-grid"
	SelectorGallery  = ".gallery"

	classMeetingItem = "meeting-item"

	// AttrSource marks nodes built from the content document.
	AttrSource  = "data-source"
	sourceValue = "content"
)

const (
	heroOverlay        = "linear-gradient(135deg, rgba(21,127,173,0.9) 0%, rgba(118,75,162,0.9) 100%)"
	tileGradient       = "linear-gradient(135deg, var(--indigo) 0%, var(--purple) 100%)"
	meetingSettleDelay = 100 * time.Millisecond
	eventStagger       = 100 * time.Millisecond
	galleryStagger     = 50 * time.Millisecond
)

// Translator resolves interface strings for the active language.
type Translator interface {
	T(key string) string
}

// Renderer writes the content document into a parsed page.
type Renderer struct {
	t Translator
}

func NewRenderer(t Translator) *Renderer {
	return &Renderer{t: t}
}

// Render fills every section in order: hero, meetings, events, gallery.
func (r *Renderer) Render(doc *goquery.Document, d Document, lang string) {
	r.RenderHero(doc, d.Hero)
	r.RenderMeetings(doc, d.Meetings, lang)
	r.RenderEvents(doc, d.Events, lang)
	r.RenderGallery(doc, d.Gallery, lang)
}

// RenderHero applies the background image and overwrites heading texts when provided.
func (r *Renderer) RenderHero(doc *goquery.Document, h Hero) {
	hero := doc.Find(SelectorHero).First()
	if hero.Length() == 0 {
		return
	}
	if h.BackgroundImage != "" {
		dom.SetStyle(hero,
			dom.Decl{Prop: "background-image", Value: heroOverlay + ", url('" + cssURL(h.BackgroundImage) + "')"},
			dom.Decl{Prop: "background-size", Value: "cover"},
			dom.Decl{Prop: "background-position", Value: "center"},
			dom.Decl{Prop: "background-attachment", Value: "fixed"},
		)
	}
	if h.Title != "" {
		hero.Find("h1").First().SetText(h.Title)
	}
	if h.Subtitle != "" {
		lines := strings.Split(h.Subtitle, "\n")
		for i, l := range lines {
			lines[i] = html.EscapeString(l)
		}
		hero.Find(".hero-subtitle").First().SetHtml(strings.Join(lines, "<br>"))
	}
}

// RenderMeetings keeps the first static meeting entry, drops every other entry and
// appends one card per meeting.
func (r *Renderer) RenderMeetings(doc *goquery.Document, meetings []Meeting, lang string) {
	container := doc.Find(SelectorMeetings).First()
	if container.Length() == 0 {
		return
	}
	container.Find("." + classMeetingItem).Each(func(i int, s *goquery.Selection) {
		if i > 0 || isRendered(s) {
			s.Remove()
		}
	})

	label := r.t.T("label.time")
	var b strings.Builder
	for _, m := range meetings {
		lm := m.Localize(lang)
		b.WriteString(`<div class="meeting-item" data-source="content" data-enter-after="`)
		b.WriteString(strconv.FormatInt(meetingSettleDelay.Milliseconds(), 10))
		b.WriteString(`" style="opacity: 0; transform: translateY(30px)">`)
		b.WriteString(`<div class="meeting-icon">` + lm.Icon + `</div>`)
		b.WriteString(`<div class="meeting-content">`)
		b.WriteString(`<h3>` + html.EscapeString(lm.Title) + `</h3>`)
		b.WriteString(`<p class="meeting-time"><strong>` + html.EscapeString(label) + `</strong> ` + html.EscapeString(lm.Time) + `</p>`)
		b.WriteString(`<p>` + html.EscapeString(lm.Description) + `</p>`)
		b.WriteString(`</div></div>`)
	}
	container.AppendHtml(b.String())
}

// RenderEvents replaces the events grid with one card per event.
func (r *Renderer) RenderEvents(doc *goquery.Document, events []Event, lang string) {
	grid := doc.Find(SelectorEvents).First()
	if grid.Length() == 0 {
		return
	}
	var b strings.Builder
	for i, e := range events {
		le := e.Localize(lang)
		b.WriteString(`<div class="event-card" data-source="content" style="animation-delay: ` + stagger(i, eventStagger) + `">`)
		b.WriteString(`<div class="event-date">` + html.EscapeString(le.Date) + `</div>`)
		b.WriteString(`<div class="event-details">`)
		b.WriteString(`<h3>` + html.EscapeString(le.Title) + `</h3>`)
		b.WriteString(`<p>` + html.EscapeString(le.Description) + `</p>`)
		b.WriteString(`</div></div>`)
	}
	grid.SetHtml(b.String())
}

// RenderGallery replaces the gallery with one tile per item.
func (r *Renderer) RenderGallery(doc *goquery.Document, items []GalleryItem, lang string) {
	gallery := doc.Find(SelectorGallery).First()
	if gallery.Length() == 0 {
		return
	}
	var b strings.Builder
	for i, item := range items {
		caption := html.EscapeString(item.Caption(lang))
		delay := stagger(i, galleryStagger)
		if item.HasImage() {
			b.WriteString(`<div class="gallery-item" data-source="content" style="animation-delay: ` + delay + `">`)
			b.WriteString(`<img src="` + html.EscapeString(item.Image) + `" alt="` + caption + `" loading="lazy">`)
			b.WriteString(`<span class="gallery-caption" style="position: absolute; bottom: 1rem; left: 50%; transform: translateX(-50%); background: rgba(0,0,0,0.7); padding: 0.5rem 1rem; border-radius: 8px; color: white; font-weight: 600; white-space: nowrap">`)
			b.WriteString(caption + `</span></div>`)
			continue
		}
		b.WriteString(`<div class="gallery-item" data-source="content" style="animation-delay: ` + delay + `; background: ` + tileGradient + `">`)
		b.WriteString(`<span class="gallery-caption" style="color: white; font-weight: 600; padding: 1rem; text-align: center">`)
		b.WriteString(caption + `</span></div>`)
	}
	gallery.SetHtml(b.String())
}

func isRendered(s *goquery.Selection) bool {
	v, _ := s.Attr(AttrSource)
	return v == sourceValue
}

func stagger(i int, step time.Duration) string {
	d := time.Duration(i) * step
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
}

// cssURL escapes characters that would end a quoted url() token.
func cssURL(u string) string {
	return strings.NewReplacer(
		`'`, "%27",
		`"`, "%22",
		`\`, "%5C",
		"(", "%28",
		")", "%29",
		"\n", "",
		"\r", "",
	).Replace(u)
}
