package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/link2itinerary/core"
)

// JSONRenderer writes the planner envelope together with its source metadata.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

type jsonDocument struct {
	Source    core.PageMetadata `json:"source"`
	Itinerary core.Itinerary    `json:"itinerary"`
}

// Render produces indented JSON. The "itinerary" member has the same shape
// as the HTTP response body.
func (r *JSONRenderer) Render(resp *core.PlannerResponse, meta core.PageMetadata) ([]byte, error) {
	if resp == nil {
		return nil, fmt.Errorf("render json: nil itinerary")
	}
	data, err := json.MarshalIndent(jsonDocument{Source: meta, Itinerary: resp.Itinerary}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render json: %w", err)
	}
	return append(data, '\n'), nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
