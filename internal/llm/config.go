// Package llm provides centralized LLM configuration and client abstractions.
// Engines talk to a provider-neutral Client; the provider and model per tier are configuration.
package llm

import "strings"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for quick conversational replies
	TierLite ModelTier = "lite"
	// TierStandard is for grounded market research and resume work
	TierStandard ModelTier = "standard"
	// TierAdvanced is for assessment authoring and evaluation
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider SDK
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGenAI is the unified Google Gen AI SDK (supports search grounding)
	ProviderGenAI Provider = "genai"
	// ProviderGemini is the original generative-ai-go SDK
	ProviderGemini Provider = "gemini"
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGenAI,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// ParseProvider maps a configuration string to a Provider, defaulting to ProviderGenAI
func ParseProvider(s string) Provider {
	switch Provider(strings.ToLower(strings.TrimSpace(s))) {
	case ProviderGemini:
		return ProviderGemini
	default:
		return ProviderGenAI
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelTier]string, len(c.Models)+1),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}

// WithProvider returns a copy of the Config using the given provider
func (c *Config) WithProvider(p Provider) *Config {
	newConfig := c.WithModel(TierStandard, c.GetModel(TierStandard))
	newConfig.Provider = p
	return newConfig
}
