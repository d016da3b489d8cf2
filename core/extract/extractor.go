// Package extract implements the Extractor interface.
// It isolates the readable content of a full HTML page by:
//  1. Removing noise elements (scripts, styles, navigation, frames, page chrome)
//  2. Taking the first non-empty content container (<main>, <article>, or <body>)
//  3. Collapsing whitespace into a single normalized text stream
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/link2itinerary/core"
)

// noiseSelectors are HTML elements removed before extraction.
// They contribute boilerplate, not travel content, and cost prompt tokens.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "footer", "header",
	"iframe",
}

// containers are tried in order; the first with non-empty text wins.
var containers = []string{"main", "article", "body"}

// HTMLExtractor strips noise from HTML and returns its readable text.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract returns the page title and the normalized plain text of the page
// from a single parse. It never fails: unparseable or empty pages yield
// an empty ExtractedPage.
func (e *HTMLExtractor) Extract(html string) core.ExtractedPage {
	doc, err := e.clean(html)
	if err != nil {
		return core.ExtractedPage{}
	}

	page := core.ExtractedPage{Title: collapseWhitespace(doc.Find("title").First().Text())}
	for _, tag := range containers {
		text := strings.TrimSpace(doc.Find(tag).Text())
		if text != "" {
			page.Text = collapseWhitespace(text)
			break
		}
	}
	return page
}

// Fragment returns the cleaned HTML of the first non-empty content
// container. It is used where markup matters, e.g. Markdown conversion.
func (e *HTMLExtractor) Fragment(html string) (string, error) {
	doc, err := e.clean(html)
	if err != nil {
		return "", err
	}

	for _, tag := range containers {
		sel := doc.Find(tag)
		if sel.Length() == 0 || strings.TrimSpace(sel.Text()) == "" {
			continue
		}
		result, err := goquery.OuterHtml(sel.First())
		if err != nil {
			return "", fmt.Errorf("serializing content: %w", err)
		}
		return result, nil
	}
	return "", nil
}

func (e *HTMLExtractor) clean(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}
	return doc, nil
}

// collapseWhitespace replaces every whitespace run with a single space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
