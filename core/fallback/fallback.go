// Package fallback builds the placeholder itinerary returned when generation
// or parsing fails. It never touches the network.
package fallback

import (
	"time"

	"github.com/gaurav-prasanna/link2itinerary/core"
	"github.com/gaurav-prasanna/link2itinerary/core/schema"
)

const dateLayout = "2006-01-02"

// New returns the fallback response for the given identifiers, dated on today's
// calendar day in today's location. The result is a fresh value on every call.
func New(itineraryID, tripID string, today time.Time) *core.PlannerResponse {
	return &core.PlannerResponse{
		Itinerary: core.Itinerary{
			ID:     itineraryID,
			TripID: tripID,
			Days: []core.Day{
				{
					Date: today.Format(dateLayout),
					Activities: []core.Activity{
						{
							Time:          "09:00",
							Duration:      schema.MinDuration,
							Title:         "Sample teaser activity",
							Description:   "Fallback itinerary while API unavailable.",
							Location:      "Unknown",
							EstimatedCost: 0,
							BookingURL:    "",
						},
						{
							Time:          "13:00",
							Duration:      schema.MinDuration,
							Title:         "Second sample stop",
							Description:   "Error when generating itinerary.",
							Location:      "Unknown",
							EstimatedCost: 0,
							BookingURL:    "",
						},
					},
				},
			},
			TotalEstimatedCost: core.CostRange{Min: 0, Max: 0, Currency: core.Currency},
		},
	}
}
