// Package generate assembles planner prompts and runs them against a
// generative text backend under the planner response schema.
package generate

import (
	"context"
	"fmt"
	"time"

	"github.com/gaurav-prasanna/link2itinerary/core"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	DefaultTimeout = 60 * time.Second
)

// Config selects and configures a backend.
type Config struct {
	Provider        string
	APIKey          string
	BaseURL         string
	Model           string
	ReasoningEffort string
}

// New returns the backend named by cfg.Provider. The returned generator is
// meant to be created once per process and shared.
func New(ctx context.Context, cfg Config) (core.Generator, error) {
	switch cfg.Provider {
	case "", ProviderOpenAI:
		return NewOpenAI(OpenAIOptions{
			APIKey:          cfg.APIKey,
			BaseURL:         cfg.BaseURL,
			Model:           cfg.Model,
			ReasoningEffort: cfg.ReasoningEffort,
		}), nil
	case ProviderGemini:
		return NewGemini(ctx, GeminiOptions{
			APIKey:         cfg.APIKey,
			BaseURL:        cfg.BaseURL,
			Model:          cfg.Model,
			ThinkingBudget: thinkingBudget(cfg.ReasoningEffort),
		})
	default:
		return nil, fmt.Errorf("unknown generator provider %q", cfg.Provider)
	}
}

func thinkingBudget(effort string) int32 {
	switch effort {
	case "minimal":
		return 128
	case "medium":
		return 4096
	case "high":
		return 16384
	default:
		return DefaultThinkingBudget
	}
}
