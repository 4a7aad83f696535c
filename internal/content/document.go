package content

import (
	"fmt"
	"strings"
)

// Document is the content description fetched once per page load.
type Document struct {
	Hero     Hero          `json:"hero"`
	Meetings []Meeting     `json:"meetings"`
	Events   []Event       `json:"events"`
	Gallery  []GalleryItem `json:"gallery"`
}

// Hero describes the banner at the top of the home page.
type Hero struct {
	BackgroundImage string `json:"backgroundImage,omitempty"`
	Title           string `json:"title,omitempty"`
	Subtitle        string `json:"subtitle,omitempty"` // may embed line breaks
}

// Meeting is a recurring gathering.
type Meeting struct {
	Title         string `json:"title"`
	TitleBN       string `json:"title_bn"`
	Time          string `json:"time"`
	TimeBN        string `json:"time_bn"`
	Description   string `json:"description"`
	DescriptionBN string `json:"description_bn"`
}

// Event is a dated happening.
type Event struct {
	Date          string `json:"date"`
	DateBN        string `json:"date_bn"`
	Title         string `json:"title"`
	TitleBN       string `json:"title_bn"`
	Description   string `json:"description"`
	DescriptionBN string `json:"description_bn"`
}

// GalleryItem is one photo tile. Image URLs containing PlaceholderMarker are not real images.
type GalleryItem struct {
	Image   string `json:"image,omitempty"`
	Title   string `json:"title"`
	TitleBN string `json:"title_bn"`
}

// PlaceholderMarker flags a gallery image URL that should render as a plain tile.
const PlaceholderMarker = "placeholder"

// SecondaryLang is the language served from the *_bn fields.
const SecondaryLang = "bn"

// pick returns the secondary field for the secondary language and the default field
// otherwise. An empty secondary field is returned as is.
func pick(lang, def, secondary string) string {
	if lang == SecondaryLang {
		return secondary
	}
	return def
}

// LocalizedMeeting is a Meeting resolved to one language.
type LocalizedMeeting struct {
	Icon        string
	Title       string
	Time        string
	Description string
}

// Localize resolves m for lang. The icon always follows the default-language title.
func (m Meeting) Localize(lang string) LocalizedMeeting {
	return LocalizedMeeting{
		Icon:        IconFor(m.Title),
		Title:       pick(lang, m.Title, m.TitleBN),
		Time:        pick(lang, m.Time, m.TimeBN),
		Description: pick(lang, m.Description, m.DescriptionBN),
	}
}

// LocalizedEvent is an Event resolved to one language.
type LocalizedEvent struct {
	Date        string
	Title       string
	Description string
}

func (e Event) Localize(lang string) LocalizedEvent {
	return LocalizedEvent{
		Date:        pick(lang, e.Date, e.DateBN),
		Title:       pick(lang, e.Title, e.TitleBN),
		Description: pick(lang, e.Description, e.DescriptionBN),
	}
}

// HasImage reports whether the tile should render a real image.
func (g GalleryItem) HasImage() bool {
	return g.Image != "" && !strings.Contains(g.Image, PlaceholderMarker)
}

// Caption returns the tile caption for lang.
func (g GalleryItem) Caption(lang string) string {
	return pick(lang, g.Title, g.TitleBN)
}

// MissingTranslations lists records whose secondary-language fields are empty while the
// default-language field is set. Such records render an empty string in that language.
func (d Document) MissingTranslations() []string {
	var out []string
	check := func(path, def, secondary string) {
		if strings.TrimSpace(def) != "" && strings.TrimSpace(secondary) == "" {
			out = append(out, path)
		}
	}
	for i, m := range d.Meetings {
		check(fmt.Sprintf("meetings[%d].title_bn", i), m.Title, m.TitleBN)
		check(fmt.Sprintf("meetings[%d].time_bn", i), m.Time, m.TimeBN)
		check(fmt.Sprintf("meetings[%d].description_bn", i), m.Description, m.DescriptionBN)
	}
	for i, e := range d.Events {
		check(fmt.Sprintf("events[%d].date_bn", i), e.Date, e.DateBN)
		check(fmt.Sprintf("events[%d].title_bn", i), e.Title, e.TitleBN)
		check(fmt.Sprintf("events[%d].description_bn", i), e.Description, e.DescriptionBN)
	}
	for i, g := range d.Gallery {
		check(fmt.Sprintf("gallery[%d].title_bn", i), g.Title, g.TitleBN)
	}
	return out
}
