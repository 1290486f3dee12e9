// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/23bam037-tech/HITHESH-P-H/internal/llm"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, the environment or CLI flags.
type Config struct {
	// Model access
	APIKey        string `json:"api_key,omitempty"`        // Gemini API key
	Provider      string `json:"provider,omitempty"`       // "genai" or "gemini"
	LiteModel     string `json:"lite_model,omitempty"`     // Model for chat
	StandardModel string `json:"standard_model,omitempty"` // Model for recommendations, analysis and resumes
	AdvancedModel string `json:"advanced_model,omitempty"` // Model for assessments

	// Server
	Port        int    `json:"port,omitempty"`         // HTTP port
	SessionTTL  string `json:"session_ttl,omitempty"`  // Idle session lifetime, e.g. "2h"
	RabbitMQURL string `json:"rabbitmq_url,omitempty"` // Optional AMQP broker for session events

	// Export
	ChromePath string `json:"chrome_path,omitempty"` // Chrome binary used for PDF export

	// Logging
	LogLevel  string `json:"log_level,omitempty"`  // debug, info, warn, error
	LogFormat string `json:"log_format,omitempty"` // text or json

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Default values
const (
	DefaultPort       = 8080
	DefaultSessionTTL = 2 * time.Hour
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Provider:   string(llm.ProviderGenAI),
		Port:       DefaultPort,
		SessionTTL: DefaultSessionTTL.String(),
		LogLevel:   DefaultLogLevel,
		LogFormat:  DefaultLogFormat,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overlays values from the environment onto empty fields.
// getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	setString := func(dst *string, keys ...string) {
		if *dst != "" {
			return
		}
		for _, k := range keys {
			if v := strings.TrimSpace(getenv(k)); v != "" {
				*dst = v
				return
			}
		}
	}

	setString(&c.APIKey, "GEMINI_API_KEY", "API_KEY")
	setString(&c.Provider, "LLM_PROVIDER")
	setString(&c.RabbitMQURL, "RABBITMQ_URL")
	setString(&c.ChromePath, "CHROME_PATH")
	setString(&c.SessionTTL, "SESSION_TTL")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogFormat, "LOG_FORMAT")

	if c.Port == 0 {
		if p, err := strconv.Atoi(getenv("PORT")); err == nil {
			c.Port = p
		}
	}
}

// Validate checks that the configuration has valid values.
// A missing API key is not an error; engine calls fail at request time instead.
func (c *Config) Validate() error {
	if c.Provider != "" {
		switch llm.Provider(c.Provider) {
		case llm.ProviderGenAI, llm.ProviderGemini:
		default:
			return fmt.Errorf("config error: 'provider' must be %q or %q", llm.ProviderGenAI, llm.ProviderGemini)
		}
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.SessionTTL != "" {
		ttl, err := time.ParseDuration(c.SessionTTL)
		if err != nil {
			return fmt.Errorf("config error: invalid 'session_ttl': %w", err)
		}
		if ttl <= 0 {
			return fmt.Errorf("config error: 'session_ttl' must be positive")
		}
	}

	if c.LogFormat != "" && c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("config error: 'log_format' must be text or json")
	}

	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.LiteModel == "" {
		result.LiteModel = defaults.LiteModel
	}
	if result.StandardModel == "" {
		result.StandardModel = defaults.StandardModel
	}
	if result.AdvancedModel == "" {
		result.AdvancedModel = defaults.AdvancedModel
	}
	if result.SessionTTL == "" {
		result.SessionTTL = defaults.SessionTTL
	}
	if result.RabbitMQURL == "" {
		result.RabbitMQURL = defaults.RabbitMQURL
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// TTL returns the parsed session TTL, or the default when unset or invalid
func (c *Config) TTL() time.Duration {
	if ttl, err := time.ParseDuration(c.SessionTTL); err == nil && ttl > 0 {
		return ttl
	}
	return DefaultSessionTTL
}

// LLMConfig builds the model configuration
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig().WithProvider(llm.ParseProvider(c.Provider))
	if c.LiteModel != "" {
		cfg = cfg.WithModel(llm.TierLite, c.LiteModel)
	}
	if c.StandardModel != "" {
		cfg = cfg.WithModel(llm.TierStandard, c.StandardModel)
	}
	if c.AdvancedModel != "" {
		cfg = cfg.WithModel(llm.TierAdvanced, c.AdvancedModel)
	}
	return cfg
}
