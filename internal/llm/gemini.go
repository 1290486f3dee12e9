package llm

import (
	"context"
	"fmt"
	"log/slog"

	legacy "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient implements Client on the generative-ai-go SDK.
// This SDK has no search grounding; grounded requests run ungrounded.
type GeminiClient struct {
	client *legacy.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	client, err := legacy.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Generate runs a single request against the configured model for the tier
func (c *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	modelName := c.config.GetModel(req.Tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", req.Tier)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.1)
	if req.Schema != nil {
		model.ResponseMIMEType = "application/json"
		model.ResponseSchema = toLegacySchema(req.Schema)
	}
	if req.Grounded {
		slog.Debug("search grounding unavailable for provider, running ungrounded", "provider", ProviderGemini, "model", modelName)
	}

	resp, err := model.GenerateContent(ctx, legacy.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(resp), nil
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse concatenates the text parts of the first candidate
func extractTextFromResponse(resp *legacy.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var text string
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(legacy.Text); ok {
			text += string(t)
		}
	}
	return text
}

func toLegacySchema(s *Schema) *legacy.Schema {
	if s == nil {
		return nil
	}
	out := &legacy.Schema{
		Type:        legacyType(s.Type),
		Description: s.Description,
		Enum:        s.Enum,
		Nullable:    s.Nullable,
		Items:       toLegacySchema(s.Items),
		Required:    s.Required,
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*legacy.Schema, len(s.Properties))
		for name, p := range s.Properties {
			out.Properties[name] = toLegacySchema(p)
		}
	}
	return out
}

func legacyType(t Type) legacy.Type {
	switch t {
	case TypeString:
		return legacy.TypeString
	case TypeNumber:
		return legacy.TypeNumber
	case TypeInteger:
		return legacy.TypeInteger
	case TypeBoolean:
		return legacy.TypeBoolean
	case TypeArray:
		return legacy.TypeArray
	case TypeObject:
		return legacy.TypeObject
	default:
		return legacy.TypeUnspecified
	}
}
