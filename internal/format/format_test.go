package format

import (
	"testing"
	"time"
)

func TestDate(t *testing.T) {
	d := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
	cases := map[string]string{
		"en": "March 3, 2025",
		"bn": "৩ মার্চ ২০২৫",
		"BN": "৩ মার্চ ২০২৫",
		"":   "March 3, 2025",
	}
	for lang, want := range cases {
		if got := Date(d, lang); got != want {
			t.Errorf("Date(%q) = %q, want %q", lang, got, want)
		}
	}
	if got := Date(time.Time{}, "en"); got != "" {
		t.Errorf("zero time = %q", got)
	}
}

func TestDigitsAndYear(t *testing.T) {
	if got := Digits("10 AM - 12:30", "bn"); got != "১০ AM - ১২:৩০" {
		t.Fatalf("Digits = %q", got)
	}
	if got := Digits("2025", "en"); got != "2025" {
		t.Fatalf("Digits en = %q", got)
	}
	if got := Year(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "bn"); got != "২০২৬" {
		t.Fatalf("Year = %q", got)
	}
}
