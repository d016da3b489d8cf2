// Package clip bounds extracted text to a fixed character budget before it
// is used as model input.
package clip

import "unicode/utf8"

const (
	// DefaultLimit is the content budget in characters (runes).
	DefaultLimit = 8000
	// Marker is appended to clipped text so readers know the source was truncated.
	Marker = " …[clipped]"
)

// Clipper truncates text longer than Limit runes.
type Clipper struct {
	Limit int
}

// New creates a Clipper. Defaults to DefaultLimit if limit <= 0.
func New(limit int) *Clipper {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Clipper{Limit: limit}
}

// Clip returns text unchanged when it fits the budget, otherwise its first
// Limit runes followed by Marker.
func (c *Clipper) Clip(text string) string {
	if utf8.RuneCountInString(text) <= c.Limit {
		return text
	}

	n := 0
	for i := range text {
		if n == c.Limit {
			return text[:i] + Marker
		}
		n++
	}
	return text
}

// Clipped reports whether text was produced by a clip.
func Clipped(text string) bool {
	return len(text) >= len(Marker) && text[len(text)-len(Marker):] == Marker
}
