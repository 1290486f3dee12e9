package llm

import (
	"context"
	"errors"
)

// ErrNoAPIKey is returned when a provider client is built without credentials
var ErrNoAPIKey = errors.New("API key is required")

// Request describes a single generation call
type Request struct {
	Prompt string
	Tier   ModelTier
	// Schema is the declared output shape. Nil means free text.
	Schema *Schema
	// Grounded lets the model consult Google Search where the provider supports it.
	Grounded bool
	// FastPath disables extended thinking for latency-sensitive calls.
	FastPath bool
}

// Client is an abstraction over LLM providers
type Client interface {
	// Generate runs one request/response call and returns the raw response text
	Generate(ctx context.Context, req Request) (string, error)
	// GetModel returns the provider model name for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return NewGenAIClient(ctx, config, apiKey)
	}
}

// UnavailableClient fails every call with the construction error.
// It lets the service start without credentials; engine calls then fail at request time.
type UnavailableClient struct {
	Err error
}

// Generate always returns the construction error
func (u UnavailableClient) Generate(context.Context, Request) (string, error) {
	return "", u.Err
}

// GetModel returns an empty model name
func (u UnavailableClient) GetModel(ModelTier) string { return "" }

// Close is a no-op
func (u UnavailableClient) Close() error { return nil }
