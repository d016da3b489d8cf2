package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"

	"github.com/gaurav-prasanna/link2itinerary/core"
)

const (
	DefaultOpenAIBaseURL   = "https://api.openai.com/v1/"
	DefaultOpenAIModel     = "gpt-5.2"
	DefaultReasoningEffort = "low"

	// DefaultMaxResponseBytes caps a Responses API reply.
	DefaultMaxResponseBytes = 2 << 20
)

// ErrNoOutput means the backend answered but produced no usable text:
// no output_text part, a refusal, or an incomplete response.
var ErrNoOutput = errors.New("no output text")

// OpenAIOptions configures the Responses API backend.
type OpenAIOptions struct {
	APIKey           string
	BaseURL          string
	Model            string
	ReasoningEffort  string
	MaxResponseBytes int64
	HTTPClient       *http.Client
}

// OpenAIGenerator calls the OpenAI Responses API with a strict json_schema text format.
type OpenAIGenerator struct {
	opts   OpenAIOptions
	client openai.Client
}

func NewOpenAI(opts OpenAIOptions) *OpenAIGenerator {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultOpenAIBaseURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/") + "/"
	if opts.Model == "" {
		opts.Model = DefaultOpenAIModel
	}
	if opts.ReasoningEffort == "" {
		opts.ReasoningEffort = DefaultReasoningEffort
	}
	if opts.MaxResponseBytes <= 0 {
		opts.MaxResponseBytes = DefaultMaxResponseBytes
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithBaseURL(opts.BaseURL),
		// one attempt per run; the planner falls back instead of retrying
		option.WithMaxRetries(0),
		option.WithMiddleware(limitBody(opts.MaxResponseBytes)),
	}
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(opts.HTTPClient))
	}
	return &OpenAIGenerator{opts: opts, client: openai.NewClient(clientOpts...)}
}

func (g *OpenAIGenerator) Ready() error {
	if strings.TrimSpace(g.opts.APIKey) == "" {
		return fmt.Errorf("OPENAI_API_KEY: %w", core.ErrMissingCredential)
	}
	return nil
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req core.GenerationRequest) (string, error) {
	if err := g.Ready(); err != nil {
		return "", err
	}
	if req.Schema == nil {
		return "", errors.New("generation request has no schema")
	}

	schemaJSON, err := req.Schema.JSON()
	if err != nil {
		return "", fmt.Errorf("encoding schema: %w", err)
	}
	var schemaDoc map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaDoc); err != nil {
		return "", fmt.Errorf("encoding schema: %w", err)
	}

	resp, err := g.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:     shared.ResponsesModel(g.opts.Model),
		Reasoning: shared.ReasoningParam{Effort: shared.ReasoningEffort(g.opts.ReasoningEffort)},
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemParamOfMessage(req.System, responses.EasyInputMessageRoleSystem),
				responses.ResponseInputItemParamOfMessage(req.User, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:   req.SchemaName,
					Schema: schemaDoc,
					Strict: openai.Bool(true),
				},
			},
		},
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("responses API returned %d: %w", apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("calling responses API: %w", err)
	}
	return outputText(resp)
}

// outputText is the only place that knows the Responses API output layout.
func outputText(resp *responses.Response) (string, error) {
	if resp.Error.Message != "" {
		return "", fmt.Errorf("responses API error: %s", resp.Error.Message)
	}
	if resp.Status != "" && resp.Status != responses.ResponseStatusCompleted {
		return "", fmt.Errorf("%w: response status %q", ErrNoOutput, resp.Status)
	}

	var b strings.Builder
	for _, item := range resp.Output {
		if item.Type != "message" {
			continue
		}
		for _, part := range item.Content {
			switch part.Type {
			case "output_text":
				b.WriteString(part.Text)
			case "refusal":
				return "", fmt.Errorf("%w: refused: %s", ErrNoOutput, part.Refusal)
			}
		}
	}

	if b.Len() == 0 {
		return "", ErrNoOutput
	}
	return b.String(), nil
}

// limitBody truncates response bodies at max bytes; an oversized reply
// then fails to decode instead of being buffered whole.
func limitBody(max int64) option.Middleware {
	return func(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
		resp, err := next(req)
		if err != nil || resp == nil || resp.Body == nil {
			return resp, err
		}
		resp.Body = struct {
			io.Reader
			io.Closer
		}{io.LimitReader(resp.Body, max), resp.Body}
		return resp, nil
	}
}
