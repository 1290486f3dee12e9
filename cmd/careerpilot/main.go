// Package main provides the entry point for the CareerPilot CLI and HTTP API server.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/23bam037-tech/HITHESH-P-H/internal/config"
	"github.com/23bam037-tech/HITHESH-P-H/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "careerpilot",
	Short: "CareerPilot career guidance",
	Long: `CareerPilot walks a user from a profile through a generated skills assessment,
career recommendations, a per-career analysis, resume auditing and rewriting, and a
career-strategy chat. Run it as an HTTP API with "serve" or interactively with "journey".

Configuration can be loaded from a JSON file using --config. Command-line arguments
override config file values; the environment fills anything still unset.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

var (
	rootConfigPath string
	rootAPIKey     string
	rootProvider   string
	rootLogLevel   string
	rootLogFormat  string
	rootVerbose    bool
)

// settings is the merged configuration shared by every command
var settings config.Config

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	rootCmd.PersistentFlags().StringVar(&rootAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	rootCmd.PersistentFlags().StringVar(&rootProvider, "provider", "", "Model provider: genai or gemini")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&rootLogFormat, "log-format", "", "Log format: text or json")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed debug information")
}

// loadSettings merges the config file, flags, environment and defaults, then configures logging
func loadSettings(cmd *cobra.Command, _ []string) error {
	var cfg config.Config
	if rootConfigPath != "" {
		loaded, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("api-key") {
		cfg.APIKey = rootAPIKey
	}
	if flags.Changed("provider") {
		cfg.Provider = rootProvider
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = rootLogLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = rootLogFormat
	}
	if flags.Changed("verbose") {
		cfg.Verbose = rootVerbose
	}
	if cfg.Verbose && cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}

	cfg.ApplyEnv(os.Getenv)
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.Setup(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	if rootConfigPath != "" {
		slog.Debug("loaded config", "path", rootConfigPath)
	}

	settings = cfg
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
