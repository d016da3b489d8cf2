// Package render turns a planned itinerary into a file format for the CLI.
// Markdown is the canonical rendering; the PDF renderer lays out the same text.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/link2itinerary/core"
)

// MarkdownRenderer writes an itinerary as a Markdown document.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render formats one heading per day and one list item per activity.
func (r *MarkdownRenderer) Render(resp *core.PlannerResponse, meta core.PageMetadata) ([]byte, error) {
	if resp == nil {
		return nil, fmt.Errorf("render markdown: nil itinerary")
	}
	return []byte(markdown(resp, meta)), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

func markdown(resp *core.PlannerResponse, meta core.PageMetadata) string {
	it := resp.Itinerary
	var b strings.Builder

	title := meta.Title
	if title == "" {
		title = "Itinerary"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if meta.URL != "" {
		fmt.Fprintf(&b, "Source: %s\n\n", meta.URL)
	}
	fmt.Fprintf(&b, "Itinerary `%s` for trip `%s`\n", it.ID, it.TripID)

	for i, day := range it.Days {
		fmt.Fprintf(&b, "\n## Day %d: %s\n\n", i+1, day.Date)
		for _, a := range day.Activities {
			fmt.Fprintf(&b, "- **%s** %s (%d min)\n", a.Time, a.Title, a.Duration)
			if a.Description != "" {
				fmt.Fprintf(&b, "  %s\n", a.Description)
			}
			details := []string{"Location: " + a.Location, fmt.Sprintf("Est. cost: $%d", a.EstimatedCost)}
			if a.BookingURL != "" {
				details = append(details, fmt.Sprintf("[Book](%s)", a.BookingURL))
			}
			fmt.Fprintf(&b, "  %s\n", strings.Join(details, " | "))
		}
	}

	total := it.TotalEstimatedCost
	fmt.Fprintf(&b, "\n**Estimated total:** %d to %d %s\n", total.Min, total.Max, total.Currency)
	return b.String()
}
