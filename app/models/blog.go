package models

import (
	"strings"
	"time"
	"unicode"

	"folio/app/markdown"
)

// blogDateLayouts are the date spellings found in blog fixtures.
var blogDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// PublishedAt parses Date. The second value is false when the date is
// missing or in an unknown layout.
func (b *BlogPost) PublishedAt() (time.Time, bool) {
	raw := strings.TrimSpace(b.Date)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range blogDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ReadingMinutes estimates how long the post takes to read.
func (b *BlogPost) ReadingMinutes() int {
	return markdown.ReadingMinutes(b.Content)
}

// Excerpt returns the summary, or the first n characters of the post body
// as plain text when no summary was written.
func (b *BlogPost) Excerpt(n int) string {
	if s := strings.TrimSpace(b.Summary); s != "" {
		return s
	}
	text := markdown.PlainText(b.Content)
	runes := []rune(text)
	if n <= 0 || len(runes) <= n {
		return text
	}
	cut := string(runes[:n])
	if !unicode.IsSpace(runes[n]) {
		if i := strings.LastIndex(cut, " "); i > 0 {
			cut = cut[:i]
		}
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// IsExternal reports whether the post lives on another site.
func (b *BlogPost) IsExternal() bool {
	return b.Content == "" && b.Link != ""
}
