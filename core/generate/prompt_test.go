package generate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gaurav-prasanna/link2itinerary/core/schema"
)

func TestBuildUserMessage(t *testing.T) {
	msg := BuildUserMessage(PromptInput{
		URL:         "https://example.com/lisbon",
		ItineraryID: "itin-1",
		TripID:      "trip-1",
		Text:        "Lisbon is hilly.",
	})

	lines := strings.Split(msg, "\n")
	assert.Equal(t, "SOURCE URL: https://example.com/lisbon", lines[0])
	assert.Contains(t, msg, "itinerary.id = itin-1\nitinerary.tripId = trip-1")
	assert.Contains(t, msg, "Extracted page text:\nLisbon is hilly.\n")
	assert.NotContains(t, msg, "Trip details:")
	assert.Equal(t, "- totalEstimatedCost must be 0/0/USD unless confident.", lines[len(lines)-1])

	for _, rule := range teaserRules {
		assert.Contains(t, msg, rule)
	}
}

func TestBuildUserMessage_TripDetails(t *testing.T) {
	msg := BuildUserMessage(PromptInput{
		URL:         "https://airbnb.com/rooms/1",
		ItineraryID: "itin-1",
		TripID:      "trip-1",
		Text:        "Loft in Le Marais.",
		Trip: &TripDetails{
			Location: "Paris, France",
			CheckIn:  "2026-05-01",
			CheckOut: "2026-05-03",
		},
	})

	assert.Contains(t, msg, "Trip details:\nLocation: Paris, France\nCheck-in: 2026-05-01\nCheck-out: 2026-05-03\n")
	assert.NotContains(t, msg, "Accommodation:")
	assert.Less(t, strings.Index(msg, "Trip details:"), strings.Index(msg, "Extracted page text:"))
}

func TestBuildRequest(t *testing.T) {
	req := BuildRequest(PromptInput{URL: "https://example.com", ItineraryID: "a", TripID: "trip-b"})

	assert.Equal(t, SystemInstruction, req.System)
	assert.Equal(t, schema.Name, req.SchemaName)
	assert.Same(t, schema.PlannerResponse(), req.Schema)
}
