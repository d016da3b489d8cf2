package extract

import (
	"net/url"
	"time"

	"github.com/gaurav-prasanna/link2itinerary/core"
)

// Metadata describes the source page for renderers. title comes from
// Extract, so the page is not parsed again.
func Metadata(rawURL, title string, generatedAt time.Time) core.PageMetadata {
	meta := core.PageMetadata{
		URL:         rawURL,
		Title:       title,
		GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
	}
	if parsed, err := url.Parse(rawURL); err == nil {
		meta.Domain = parsed.Host
	}
	return meta
}
