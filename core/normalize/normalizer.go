// Package normalize converts a cleaned HTML fragment into Markdown so
// extracted page content can be inspected with its headings and lists intact.
package normalize

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"

	"github.com/gaurav-prasanna/link2itinerary/core"
)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
// With a page URL set, relative links and images resolve against it.
type MarkdownNormalizer struct {
	pageURL string
}

// New creates a MarkdownNormalizer that leaves relative links untouched.
func New() *MarkdownNormalizer {
	return &MarkdownNormalizer{}
}

// NewForPage creates a MarkdownNormalizer for content fetched from pageURL.
func NewForPage(pageURL string) *MarkdownNormalizer {
	return &MarkdownNormalizer{pageURL: pageURL}
}

func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	if html == "" {
		return "", nil
	}

	var opts []converter.ConvertOptionFunc
	if n.pageURL != "" {
		opts = append(opts, converter.WithDomain(n.pageURL))
	}
	markdown, err := htmltomarkdown.ConvertString(html, opts...)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return markdown, nil
}

var _ core.Normalizer = (*MarkdownNormalizer)(nil)
