// Package schema builds the strict output contract the generator must satisfy.
// The contract is a closed JSON Schema: every object forbids additional
// properties and lists all of its properties as required.
package schema

import "encoding/json"

// Name identifies the schema to generative backends that accept a named format.
const Name = "standard_planner_response"

// TimePattern matches 24-hour HH:MM clock times.
const TimePattern = `^([01]\d|2[0-3]):[0-5]\d$`

// Bounds shared by the schema and the fallback itinerary.
const (
	MinDuration = 15
	MaxDuration = 480
	MinCost     = 0
	MaxCost     = 1000

	// ActivitiesPerDay is the teaser rule: every day has exactly this many activities.
	ActivitiesPerDay = 2
)

// Schema is the subset of JSON Schema the planner contract uses.
type Schema struct {
	Type                 string             `json:"type"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties *bool              `json:"additionalProperties,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	MinItems             *int               `json:"minItems,omitempty"`
	MaxItems             *int               `json:"maxItems,omitempty"`
	Minimum              *int               `json:"minimum,omitempty"`
	Maximum              *int               `json:"maximum,omitempty"`
	Pattern              string             `json:"pattern,omitempty"`
	Enum                 []string           `json:"enum,omitempty"`
}

// field is a named property, kept in declaration order.
type field struct {
	name   string
	schema *Schema
}

var plannerResponse = build()

// PlannerResponse returns the shared planner response schema. Callers must
// treat it as read-only.
func PlannerResponse() *Schema {
	return plannerResponse
}

// JSON returns the schema serialized as JSON.
func (s *Schema) JSON() ([]byte, error) {
	return json.Marshal(s)
}

// MustJSON is JSON for schemas known to be serializable.
func (s *Schema) MustJSON() []byte {
	data, err := s.JSON()
	if err != nil {
		panic(err)
	}
	return data
}

func build() *Schema {
	activity := object(
		field{"time", &Schema{Type: "string", Pattern: TimePattern}},
		field{"duration", integer(MinDuration, MaxDuration)},
		field{"title", str()},
		field{"description", str()},
		field{"location", str()},
		field{"estimatedCost", integer(MinCost, MaxCost)},
		field{"bookingUrl", str()},
	)

	day := object(
		field{"date", str()},
		field{"activities", array(activity, ActivitiesPerDay, ActivitiesPerDay)},
	)

	minZero := 0
	cost := object(
		field{"min", &Schema{Type: "integer", Minimum: &minZero}},
		field{"max", &Schema{Type: "integer", Minimum: &minZero}},
		field{"currency", &Schema{Type: "string", Enum: []string{"USD"}}},
	)

	itinerary := object(
		field{"id", str()},
		field{"tripId", str()},
		field{"days", array(day, 1, -1)},
		field{"totalEstimatedCost", cost},
	)

	return object(field{"itinerary", itinerary})
}

// object builds a closed object schema that requires every field.
func object(fields ...field) *Schema {
	closed := false
	s := &Schema{
		Type:                 "object",
		Properties:           make(map[string]*Schema, len(fields)),
		Required:             make([]string, 0, len(fields)),
		AdditionalProperties: &closed,
	}
	for _, f := range fields {
		s.Properties[f.name] = f.schema
		s.Required = append(s.Required, f.name)
	}
	return s
}

// array bounds the item count; a negative max leaves it open.
func array(items *Schema, min, max int) *Schema {
	s := &Schema{Type: "array", Items: items, MinItems: &min}
	if max >= 0 {
		s.MaxItems = &max
	}
	return s
}

func str() *Schema {
	return &Schema{Type: "string"}
}

func integer(min, max int) *Schema {
	return &Schema{Type: "integer", Minimum: &min, Maximum: &max}
}
