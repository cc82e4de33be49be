package llm

import (
	"context"
	"fmt"
	"strings"
)

type Options struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// NewCompleter builds the configured completion-service client.
func NewCompleter(ctx context.Context, opts Options) (Completer, error) {
	provider := strings.ToLower(strings.TrimSpace(opts.Provider))
	if provider == "" {
		provider = "gemini"
	}

	switch provider {
	case "gemini":
		return NewGeminiCompleter(ctx, opts.APIKey, opts.Model)
	case "openai":
		return NewOpenAICompleter(opts.APIKey, opts.Model, opts.BaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported completion provider: %s", opts.Provider)
	}
}
