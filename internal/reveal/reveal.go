// Package reveal tracks the one-shot scroll reveal of content cards.
package reveal

import (
	"strconv"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"vivekananda.org/vivek-web/internal/dom"
)

// Phase is the reveal state of one element. It only ever moves Pending → Revealed.
type Phase string

const (
	Pending  Phase = "pending"
	Revealed Phase = "revealed"
)

const (
	// Selector matches the elements that take part in the reveal.
	Selector = ".meeting-item, .event-card, .gallery-item"
	// Threshold is the visible fraction that triggers a reveal.
	Threshold = 0.1
	// Step is the delay added per position in an intersection batch.
	Step = 100 * time.Millisecond

	AttrPhase = "data-reveal"
	AttrID    = "data-reveal-id"
	AttrDelay = "data-reveal-delay"
)

var hidden = []dom.Decl{
	{Prop: "opacity", Value: "0"},
	{Prop: "transform", Value: "translateY(30px)"},
	{Prop: "transition", Value: "opacity 0.6s ease, transform 0.6s ease"},
}

var shown = []dom.Decl{
	{Prop: "opacity", Value: "1"},
	{Prop: "transform", Value: "translateY(0)"},
}

// Entry reports the visible fraction of one observed element.
type Entry struct {
	ID    string
	Ratio float64
}

// Reveal is a transition fired by Intersect.
type Reveal struct {
	ID    string
	Delay time.Duration
}

// Tracker observes the reveal elements of one document. Prepare marks the markup
// the browser receives; Intersect is the server-side model of the observer in
// public/assets/js/site.js, which reveals data-reveal="pending" elements with the
// same Threshold and Step. Phase and Observed report the model state.
type Tracker struct {
	mu     sync.Mutex
	doc    *goquery.Document
	next   int
	phases map[string]Phase
}

func NewTracker(doc *goquery.Document) *Tracker {
	return &Tracker{doc: doc, phases: make(map[string]Phase)}
}

// Prepare starts observing every reveal element under root. Elements without an
// inline opacity are put in their hidden starting style; elements that already have
// one (freshly rendered cards) keep it. It returns the number of elements observed.
func (t *Tracker) Prepare(root *goquery.Selection) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id := range t.phases {
		if t.find(id).Length() == 0 {
			delete(t.phases, id)
		}
	}

	count := 0
	root.Find(Selector).Each(func(_ int, s *goquery.Selection) {
		id, ok := s.Attr(AttrID)
		if ok && t.phases[id] == Revealed {
			return
		}
		if !ok {
			t.next++
			id = "r" + strconv.Itoa(t.next)
			s.SetAttr(AttrID, id)
		}
		if _, set := dom.StyleValue(s, "opacity"); !set {
			dom.SetStyle(s, hidden...)
		}
		s.SetAttr(AttrPhase, string(Pending))
		t.phases[id] = Pending
		count++
	})
	return count
}

// Intersect applies a batch of intersection entries. Pending elements at or above the
// threshold are revealed after Step times their batch position and stop being observed.
func (t *Tracker) Intersect(entries []Entry) []Reveal {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []Reveal
	for i, e := range entries {
		if e.Ratio < Threshold || t.phases[e.ID] != Pending {
			continue
		}
		delay := time.Duration(i) * Step
		t.phases[e.ID] = Revealed
		el := t.find(e.ID)
		el.SetAttr(AttrPhase, string(Revealed))
		el.SetAttr(AttrDelay, strconv.FormatInt(delay.Milliseconds(), 10))
		dom.SetStyle(el, shown...)
		out = append(out, Reveal{ID: e.ID, Delay: delay})
	}
	return out
}

// Phase returns the state of id; unknown ids report false.
func (t *Tracker) Phase(id string) (Phase, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.phases[id]
	return p, ok
}

// Observed returns the number of elements still pending.
func (t *Tracker) Observed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, p := range t.phases {
		if p == Pending {
			n++
		}
	}
	return n
}

func (t *Tracker) find(id string) *goquery.Selection {
	return t.doc.Find("[" + AttrID + `="` + id + `"]`)
}
