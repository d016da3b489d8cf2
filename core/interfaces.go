// Package core defines the itinerary data model and the pipeline interfaces
// for link2itinerary. Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"

	"github.com/gaurav-prasanna/link2itinerary/core/schema"
)

// Currency is the only currency the planner emits.
const Currency = "USD"

// TripIDPrefix tags trip identifiers so they are never confused with bare itinerary IDs.
const TripIDPrefix = "trip-"

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// PageMetadata describes the source a rendered itinerary was planned from.
type PageMetadata struct {
	URL         string `json:"url"`
	Domain      string `json:"domain"`
	Title       string `json:"title"`
	GeneratedAt string `json:"generated_at"` // ISO8601
}

// Activity is a single stop within a day.
type Activity struct {
	Time          string `json:"time"`     // HH:MM, 24-hour
	Duration      int    `json:"duration"` // minutes
	Title         string `json:"title"`
	Description   string `json:"description"`
	Location      string `json:"location"`
	EstimatedCost int    `json:"estimatedCost"`
	BookingURL    string `json:"bookingUrl"` // "" when unknown
}

// Day is one calendar date of the itinerary.
type Day struct {
	Date       string     `json:"date"` // YYYY-MM-DD
	Activities []Activity `json:"activities"`
}

// CostRange is the estimated spend over the whole trip.
type CostRange struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

// Itinerary is the root artifact produced by the planner.
type Itinerary struct {
	ID                 string    `json:"id"`
	TripID             string    `json:"tripId"`
	Days               []Day     `json:"days"`
	TotalEstimatedCost CostRange `json:"totalEstimatedCost"`
}

// PlannerResponse is the JSON envelope returned to callers and demanded from the generator.
type PlannerResponse struct {
	Itinerary Itinerary `json:"itinerary"`
}

// GenerationRequest is everything a generative backend needs for one call.
type GenerationRequest struct {
	System     string
	User       string
	SchemaName string
	Schema     *schema.Schema
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// ExtractedPage is what one parse of a fetched page yields.
type ExtractedPage struct {
	Title string
	Text  string // normalized readable text, "" when the page has none
}

// Extractor turns raw HTML into normalized plain text. It never fails.
type Extractor interface {
	Extract(html string) ExtractedPage
}

// Normalizer converts cleaned HTML into Markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Generator invokes a generative text backend under a schema and returns its raw text.
// Implementations are shared by all in-flight requests and must be safe for concurrent use.
type Generator interface {
	// Ready reports a configuration problem (such as a missing credential)
	// without touching the network.
	Ready() error
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

// Renderer converts an itinerary into a final output format.
type Renderer interface {
	Render(resp *PlannerResponse, meta PageMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
