// Package dom holds small helpers for editing parsed pages.
package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Decl is one CSS declaration of an inline style attribute.
type Decl struct {
	Prop  string
	Value string
}

// ParseStyle splits an inline style attribute into declarations, keeping their order.
func ParseStyle(attr string) []Decl {
	var out []Decl
	for _, part := range splitDecls(attr) {
		colon := strings.IndexByte(part, ':')
		if colon <= 0 {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(part[:colon]))
		val := strings.TrimSpace(part[colon+1:])
		if prop == "" {
			continue
		}
		out = append(out, Decl{Prop: prop, Value: val})
	}
	return out
}

// FormatStyle joins declarations back into an attribute value.
func FormatStyle(decls []Decl) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.Prop+": "+d.Value)
	}
	return strings.Join(parts, "; ")
}

// SetStyle sets the given declarations on every element of sel, replacing existing
// values of the same property in place and appending new ones.
func SetStyle(sel *goquery.Selection, decls ...Decl) {
	sel.Each(func(_ int, s *goquery.Selection) {
		attr, _ := s.Attr("style")
		cur := ParseStyle(attr)
		for _, d := range decls {
			prop := strings.ToLower(d.Prop)
			replaced := false
			for i := range cur {
				if cur[i].Prop == prop {
					cur[i].Value = d.Value
					replaced = true
					break
				}
			}
			if !replaced {
				cur = append(cur, Decl{Prop: prop, Value: d.Value})
			}
		}
		s.SetAttr("style", FormatStyle(cur))
	})
}

// StyleValue returns the inline value of prop on the first element of sel.
func StyleValue(sel *goquery.Selection, prop string) (string, bool) {
	attr, ok := sel.Attr("style")
	if !ok {
		return "", false
	}
	prop = strings.ToLower(prop)
	for _, d := range ParseStyle(attr) {
		if d.Prop == prop && d.Value != "" {
			return d.Value, true
		}
	}
	return "", false
}

// splitDecls splits on ';' outside parentheses and quotes, so url('a;b') survives.
func splitDecls(s string) []string {
	var (
		out   []string
		depth int
		quote rune
		start int
	)
	for i, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case r == ';' && depth == 0:
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}
