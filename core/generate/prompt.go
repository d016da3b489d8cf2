package generate

import (
	"strings"

	"github.com/gaurav-prasanna/link2itinerary/core"
	"github.com/gaurav-prasanna/link2itinerary/core/schema"
)

// SystemInstruction is the fixed high-level instruction sent with every call.
const SystemInstruction = "You are a travel itinerary planner. Return JSON matching the schema exactly."

var teaserRules = []string{
	"- EXACTLY 2 activities per day.",
	"- Titles max 6 words.",
	"- Descriptions max 20 words.",
	"- Duration must be integer minutes.",
	"- EstimatedCost must be integer.",
	`- bookingUrl must be "" if unknown.`,
	"- totalEstimatedCost must be 0/0/USD unless confident.",
}

// TripDetails is the stored trip context added to the prompt when planning
// for a trip seed instead of a bare URL.
type TripDetails struct {
	Location          string
	CheckIn           string
	CheckOut          string
	AccommodationName string
	AccommodationType string
	Summary           string
}

// PromptInput carries everything the user message is assembled from.
type PromptInput struct {
	URL         string
	ItineraryID string
	TripID      string
	Text        string // already clipped
	Trip        *TripDetails
}

// BuildUserMessage assembles the user message: source, fixed IDs, optional
// trip details, the page text and the teaser rules, in that order.
func BuildUserMessage(in PromptInput) string {
	lines := []string{
		"SOURCE URL: " + in.URL,
		"",
		"Use these fixed IDs:",
		"itinerary.id = " + in.ItineraryID,
		"itinerary.tripId = " + in.TripID,
		"",
	}

	if in.Trip != nil {
		lines = append(lines, tripLines(in.Trip)...)
		lines = append(lines, "")
	}

	lines = append(lines, "Extracted page text:", in.Text, "", "Rules (TEASER MODE):")
	lines = append(lines, teaserRules...)

	return strings.Join(lines, "\n")
}

func tripLines(t *TripDetails) []string {
	lines := []string{"Trip details:"}
	add := func(label, value string) {
		if v := strings.TrimSpace(value); v != "" {
			lines = append(lines, label+": "+v)
		}
	}
	add("Location", t.Location)
	add("Check-in", t.CheckIn)
	add("Check-out", t.CheckOut)
	add("Accommodation", t.AccommodationName)
	add("Accommodation type", t.AccommodationType)
	add("Summary", t.Summary)
	if t.CheckIn != "" && t.CheckOut != "" {
		lines = append(lines, "- Plan one day per date from check-in to check-out.")
	}
	return lines
}

// BuildRequest pairs the prompt with the shared planner response schema.
func BuildRequest(in PromptInput) core.GenerationRequest {
	return core.GenerationRequest{
		System:     SystemInstruction,
		User:       BuildUserMessage(in),
		SchemaName: schema.Name,
		Schema:     schema.PlannerResponse(),
	}
}
