package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GenAIClient implements Client on the unified Google Gen AI SDK
type GenAIClient struct {
	client *genai.Client
	config *Config
}

// NewGenAIClient creates a new Gen AI client for the Gemini API backend
func NewGenAIClient(ctx context.Context, config *Config, apiKey string) (*GenAIClient, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gen AI client: %w", err)
	}

	return &GenAIClient{
		client: client,
		config: config,
	}, nil
}

// Generate runs a single request against the configured model for the tier
func (c *GenAIClient) Generate(ctx context.Context, req Request) (string, error) {
	modelName := c.config.GetModel(req.Tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", req.Tier)
	}

	prompt, cfg := buildGenAIRequest(req)

	resp, err := c.client.Models.GenerateContent(ctx, modelName, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}

// buildGenAIRequest maps a Request onto the SDK config.
// The API rejects JSON mode together with tools, so grounded structured
// requests carry the shape in the prompt instead.
func buildGenAIRequest(req Request) (string, *genai.GenerateContentConfig) {
	prompt := req.Prompt
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.1),
	}

	if req.Grounded {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
		prompt = WithShapeInstruction(prompt, req.Schema)
	} else if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = toGenAISchema(req.Schema)
	}

	if req.FastPath {
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)}
	}
	return prompt, cfg
}

// GetModel returns the model name for a tier
func (c *GenAIClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the Gen AI client holds no closable resources
func (c *GenAIClient) Close() error {
	return nil
}

func toGenAISchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genaiType(s.Type),
		Description: s.Description,
		Enum:        s.Enum,
		Items:       toGenAISchema(s.Items),
		Required:    s.Required,
	}
	if s.Nullable {
		out.Nullable = genai.Ptr(true)
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, p := range s.Properties {
			out.Properties[name] = toGenAISchema(p)
		}
	}
	return out
}

func genaiType(t Type) genai.Type {
	switch t {
	case TypeString:
		return genai.TypeString
	case TypeNumber:
		return genai.TypeNumber
	case TypeInteger:
		return genai.TypeInteger
	case TypeBoolean:
		return genai.TypeBoolean
	case TypeArray:
		return genai.TypeArray
	case TypeObject:
		return genai.TypeObject
	default:
		return genai.TypeUnspecified
	}
}
