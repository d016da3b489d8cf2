package generate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/gaurav-prasanna/link2itinerary/core"
	"github.com/gaurav-prasanna/link2itinerary/core/schema"
)

const (
	DefaultGeminiModel = "gemini-2.5-flash"
	// DefaultThinkingBudget is the Gemini counterpart of a low reasoning effort.
	DefaultThinkingBudget int32 = 1024
)

// GeminiOptions configures the Gemini API backend.
type GeminiOptions struct {
	APIKey         string
	BaseURL        string // empty uses the SDK default
	Model          string
	ThinkingBudget int32
	HTTPClient     *http.Client
}

// GeminiGenerator calls the Gemini API through the genai SDK with a response schema.
type GeminiGenerator struct {
	opts   GeminiOptions
	client *genai.Client
}

// NewGemini builds the SDK client. A missing API key is not an error here;
// it is reported by Ready so the planner can surface it as a config failure.
func NewGemini(ctx context.Context, opts GeminiOptions) (*GeminiGenerator, error) {
	if opts.Model == "" {
		opts.Model = DefaultGeminiModel
	}
	if opts.ThinkingBudget == 0 {
		opts.ThinkingBudget = DefaultThinkingBudget
	}

	g := &GeminiGenerator{opts: opts}
	if strings.TrimSpace(opts.APIKey) == "" {
		return g, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	g.client = client
	return g, nil
}

func (g *GeminiGenerator) Ready() error {
	if g.client == nil {
		return fmt.Errorf("GEMINI_API_KEY: %w", core.ErrMissingCredential)
	}
	return nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, req core.GenerationRequest) (string, error) {
	if err := g.Ready(); err != nil {
		return "", err
	}
	if req.Schema == nil {
		return "", errors.New("generation request has no schema")
	}

	budget := g.opts.ThinkingBudget
	resp, err := g.client.Models.GenerateContent(ctx, g.opts.Model, genai.Text(req.User), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    ToGenaiSchema(req.Schema),
		ThinkingConfig:    &genai.ThinkingConfig{ThinkingBudget: &budget},
	})
	if err != nil {
		return "", fmt.Errorf("calling gemini: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrNoOutput
	}
	return text, nil
}

var genaiTypes = map[string]genai.Type{
	"object":  genai.TypeObject,
	"array":   genai.TypeArray,
	"string":  genai.TypeString,
	"integer": genai.TypeInteger,
	"number":  genai.TypeNumber,
	"boolean": genai.TypeBoolean,
}

// ToGenaiSchema converts the planner schema into the SDK's schema type.
// Gemini has no additionalProperties; closedness is still enforced by the parser.
func ToGenaiSchema(s *schema.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:    genaiTypes[s.Type],
		Pattern: s.Pattern,
		Enum:    s.Enum,
		Items:   ToGenaiSchema(s.Items),
	}
	if s.Minimum != nil {
		v := float64(*s.Minimum)
		out.Minimum = &v
	}
	if s.Maximum != nil {
		v := float64(*s.Maximum)
		out.Maximum = &v
	}
	if s.MinItems != nil {
		v := int64(*s.MinItems)
		out.MinItems = &v
	}
	if s.MaxItems != nil {
		v := int64(*s.MaxItems)
		out.MaxItems = &v
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = ToGenaiSchema(prop)
		}
		out.Required = append([]string(nil), s.Required...)
		out.PropertyOrdering = append([]string(nil), s.Required...)
	}
	return out
}
