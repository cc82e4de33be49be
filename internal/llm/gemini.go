package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiCompleter implements Completer using the Gemini API with response
// schemas enforcing the requested result shape.
type GeminiCompleter struct {
	client *genai.Client
	model  string
}

func NewGeminiCompleter(ctx context.Context, apiKey string, modelName string) (*GeminiCompleter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiCompleter{client: client, model: modelName}, nil
}

func (g *GeminiCompleter) Complete(ctx context.Context, prompt string, shape Shape) (string, error) {
	contents := genai.Text(prompt)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, generationConfig(shape))
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func generationConfig(shape Shape) *genai.GenerateContentConfig {
	switch shape {
	case ShapeStringList:
		return &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: &genai.Schema{
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		}
	case ShapeBoolFlag:
		return &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"relevant": {Type: genai.TypeBoolean},
				},
				Required: []string{"relevant"},
			},
		}
	default:
		return nil
	}
}
