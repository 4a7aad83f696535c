// Package nav builds the anchor navigation of the one-page site.
package nav

import (
	"strings"
)

// Item is a section of the home page.
type Item struct {
	Anchor   string // element id on the home page, e.g. "meetings"
	LabelKey string // i18n key, e.g. "nav.meetings"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Main lists the home page sections in page order.
var Main = []Item{
	{Anchor: "home", LabelKey: "nav.home"},
	{Anchor: "about", LabelKey: "nav.about"},
	{Anchor: "meetings", LabelKey: "nav.meetings"},
	{Anchor: "events", LabelKey: "nav.events"},
	{Anchor: "scholarship", LabelKey: "nav.scholarship"},
	{Anchor: "gallery", LabelKey: "nav.gallery"},
	{Anchor: "contact", LabelKey: "nav.contact"},
}

// Build renders the navigation for currentPath. On the home page links are plain
// fragments; elsewhere they point back to the home page.
func Build(currentPath string) []RenderedItem {
	home := currentPath == "" || currentPath == "/"
	items := make([]RenderedItem, 0, len(Main))
	for i, it := range Main {
		href := "#" + it.Anchor
		if !home {
			href = "/" + href
		}
		items = append(items, RenderedItem{
			Href:     href,
			LabelKey: it.LabelKey,
			Active:   home && i == 0,
		})
	}
	return items
}

// Breadcrumbs builds Home → page for a markdown page at currentPath.
func Breadcrumbs(currentPath, title string) []Crumb {
	crumbs := []Crumb{{Href: "/", LabelKey: "nav.home", Active: currentPath == "" || currentPath == "/"}}
	if currentPath == "" || currentPath == "/" {
		return crumbs
	}
	label := strings.TrimSpace(title)
	if label == "" {
		seg := currentPath[strings.LastIndex(currentPath, "/")+1:]
		label = titleFromSegment(seg)
	}
	return append(crumbs, Crumb{Href: currentPath, Label: label, Active: true})
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	// replace hyphens/underscores with spaces and capitalize first letter
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	r[0] = toUpper(r[0])
	return string(r)
}

func toUpper(r rune) rune {
	// ASCII only is sufficient for slugs here
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
