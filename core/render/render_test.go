package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/link2itinerary/core"
)

func sampleItinerary() *core.PlannerResponse {
	return &core.PlannerResponse{Itinerary: core.Itinerary{
		ID:     "it-1",
		TripID: "trip-1",
		Days: []core.Day{
			{Date: "2026-05-01", Activities: []core.Activity{
				{Time: "09:30", Duration: 90, Title: "Livraria Lello", Description: "Neo-gothic bookshop.", Location: "Rua das Carmelitas 144", EstimatedCost: 8, BookingURL: "https://www.livrarialello.pt"},
				{Time: "13:00", Duration: 60, Title: "Lunch at Bolhão", Location: "Mercado do Bolhão", EstimatedCost: 20},
			}},
			{Date: "2026-05-02", Activities: []core.Activity{
				{Time: "10:00", Duration: 120, Title: "Port cellars", Description: "Tasting in Gaia.", Location: "Vila Nova de Gaia", EstimatedCost: 25},
			}},
		},
		TotalEstimatedCost: core.CostRange{Min: 40, Max: 80, Currency: "USD"},
	}}
}

var sampleMeta = core.PageMetadata{
	URL:         "https://example.com/porto",
	Domain:      "example.com",
	Title:       "Two days in Porto",
	GeneratedAt: "2026-04-01T10:00:00Z",
}

func TestMarkdownRenderer(t *testing.T) {
	out, err := NewMarkdownRenderer().Render(sampleItinerary(), sampleMeta)
	require.NoError(t, err)
	md := string(out)

	assert.Contains(t, md, "# Two days in Porto\n")
	assert.Contains(t, md, "Source: https://example.com/porto")
	assert.Contains(t, md, "Itinerary `it-1` for trip `trip-1`")
	assert.Contains(t, md, "## Day 1: 2026-05-01")
	assert.Contains(t, md, "## Day 2: 2026-05-02")
	assert.Contains(t, md, "- **09:30** Livraria Lello (90 min)\n  Neo-gothic bookshop.\n")
	assert.Contains(t, md, "Location: Rua das Carmelitas 144 | Est. cost: $8 | [Book](https://www.livrarialello.pt)")
	assert.Contains(t, md, "Location: Mercado do Bolhão | Est. cost: $20\n")
	assert.Contains(t, md, "**Estimated total:** 40 to 80 USD")
	assert.Equal(t, ".md", NewMarkdownRenderer().Extension())
}

func TestMarkdownRenderer_UntitledPage(t *testing.T) {
	out, err := NewMarkdownRenderer().Render(sampleItinerary(), core.PageMetadata{})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("# Itinerary\n")))
	assert.NotContains(t, string(out), "Source:")
}

func TestJSONRenderer(t *testing.T) {
	out, err := NewJSONRenderer().Render(sampleItinerary(), sampleMeta)
	require.NoError(t, err)

	var doc struct {
		Source    core.PageMetadata `json:"source"`
		Itinerary core.Itinerary    `json:"itinerary"`
	}
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, sampleMeta, doc.Source)
	assert.Equal(t, sampleItinerary().Itinerary, doc.Itinerary)
	assert.Equal(t, ".json", NewJSONRenderer().Extension())
}

func TestPDFRenderer(t *testing.T) {
	out, err := NewPDFRenderer().Render(sampleItinerary(), sampleMeta)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Equal(t, ".pdf", NewPDFRenderer().Extension())
}

func TestRenderers_NilItinerary(t *testing.T) {
	for _, r := range []core.Renderer{NewMarkdownRenderer(), NewJSONRenderer(), NewPDFRenderer()} {
		_, err := r.Render(nil, sampleMeta)
		assert.Error(t, err)
	}
}

func TestCleanInlineMarkdown(t *testing.T) {
	assert.Equal(t, "09:30 Livraria Lello", cleanInlineMarkdown("**09:30** Livraria Lello"))
	assert.Equal(t, "Itinerary it-1", cleanInlineMarkdown("Itinerary `it-1`"))
	assert.Equal(t, "Book: https://x.test", cleanInlineMarkdown("[Book](https://x.test)"))
}
