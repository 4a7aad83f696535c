// Package format renders dates and numbers for the supported languages.
package format

import (
	"strings"
	"time"
)

var bnDigits = [10]rune{'০', '১', '২', '৩', '৪', '৫', '৬', '৭', '৮', '৯'}

var bnMonths = [12]string{
	"জানুয়ারি", "ফেব্রুয়ারি", "মার্চ", "এপ্রিল", "মে", "জুন",
	"জুলাই", "আগস্ট", "সেপ্টেম্বর", "অক্টোবর", "নভেম্বর", "ডিসেম্বর",
}

// Digits replaces ASCII digits with the native digits of lang.
func Digits(s, lang string) string {
	if !strings.EqualFold(lang, "bn") {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return bnDigits[r-'0']
		}
		return r
	}, s)
}

// Date formats t in a locale-friendly long form.
// Example: Date(t, "bn") => "৩ মার্চ ২০২৫"
func Date(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	switch strings.ToLower(lang) {
	case "bn":
		return Digits(t.Format("2"), lang) + " " + bnMonths[t.Month()-1] + " " + Digits(t.Format("2006"), lang)
	default:
		return t.Format("January 2, 2006")
	}
}

// Year returns the four-digit year of t in lang's digits.
func Year(t time.Time, lang string) string {
	return Digits(t.Format("2006"), lang)
}
