package coach

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Generator turns a prompt into text. A non-nil schema asks for JSON output
// matching it.
type Generator interface {
	Generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

// Factory builds a Generator for an API key.
type Factory func(ctx context.Context, apiKey string) (Generator, error)

var errEmptyKey = errors.New("gemini API key is required")

// Gemini is a Generator backed by the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errEmptyKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  model,
	}, nil
}

// GeminiFactory returns a Factory for model.
func GeminiFactory(model string) Factory {
	return func(ctx context.Context, apiKey string) (Generator, error) {
		return NewGemini(ctx, apiKey, model)
	}
}

func (g *Gemini) Generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	var cfg *genai.GenerateContentConfig
	if schema != nil {
		cfg = &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}

// planSchema describes the training plan array.
var planSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"dayOffset":  {Type: genai.TypeInteger},
			"type":       {Type: genai.TypeString, Enum: []string{"distance", "interval"}},
			"targetDist": {Type: genai.TypeNumber},
			"targetPace": {Type: genai.TypeString},
			"note":       {Type: genai.TypeString},
			"intervalDetails": {
				Type:     genai.TypeObject,
				Nullable: genai.Ptr(true),
				Properties: map[string]*genai.Schema{
					"sets":     {Type: genai.TypeInteger},
					"workDist": {Type: genai.TypeInteger},
					"restTime": {Type: genai.TypeInteger},
				},
			},
		},
	},
}
