// Package parse validates raw generator output against the planner schema
// and decodes it into the itinerary data model. Parsing is strict: there is
// no repair of malformed output.
package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/gaurav-prasanna/link2itinerary/core"
	"github.com/gaurav-prasanna/link2itinerary/core/schema"
)

// ErrEmptyOutput is returned when the generator produced no text at all.
var ErrEmptyOutput = errors.New("empty generator output")

// Parser checks raw text against a compiled schema before decoding it.
type Parser struct {
	compiled *gojsonschema.Schema
}

// New compiles s into a Parser.
func New(s *schema.Schema) (*Parser, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(s))
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return &Parser{compiled: compiled}, nil
}

// NewDefault returns a Parser for the shared planner response schema.
func NewDefault() (*Parser, error) {
	return New(schema.PlannerResponse())
}

// Parse validates raw and decodes it. Every failure is a parse *core.Failure.
func (p *Parser) Parse(raw string) (*core.PlannerResponse, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, core.ParseFailure(ErrEmptyOutput)
	}

	result, err := p.compiled.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, core.ParseFailure(fmt.Errorf("invalid JSON: %w", err))
	}
	if !result.Valid() {
		return nil, core.ParseFailure(&SchemaError{Violations: violations(result)})
	}

	var resp core.PlannerResponse
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&resp); err != nil {
		return nil, core.ParseFailure(fmt.Errorf("decoding itinerary: %w", err))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, core.ParseFailure(errors.New("trailing data after itinerary"))
	}

	return &resp, nil
}

// SchemaError lists every schema violation found in a document.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	var b bytes.Buffer
	b.WriteString("schema violation")
	if len(e.Violations) != 1 {
		b.WriteString("s")
	}
	b.WriteString(": ")
	b.WriteString(strings.Join(e.Violations, "; "))
	return b.String()
}

func violations(result *gojsonschema.Result) []string {
	out := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		out[i] = desc.String()
	}
	return out
}
