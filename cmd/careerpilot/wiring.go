package main

import (
	"context"
	"log/slog"

	"github.com/23bam037-tech/HITHESH-P-H/internal/assistant"
	"github.com/23bam037-tech/HITHESH-P-H/internal/config"
	"github.com/23bam037-tech/HITHESH-P-H/internal/document"
	"github.com/23bam037-tech/HITHESH-P-H/internal/engines"
	"github.com/23bam037-tech/HITHESH-P-H/internal/llm"
	"github.com/23bam037-tech/HITHESH-P-H/internal/workflow"
)

// stack holds the engines shared by every session of one process
type stack struct {
	client  llm.Client
	engines workflow.Engines
}

// newStack builds the model client and the engines on top of it.
// A missing API key is not fatal; engine calls fail at request time instead.
func newStack(ctx context.Context, cfg config.Config) *stack {
	llmConfig := cfg.LLMConfig()

	client, err := llm.NewClient(ctx, llmConfig, cfg.APIKey)
	if err != nil {
		slog.Warn("model client unavailable; engine calls will fail", "provider", llmConfig.Provider, "error", err)
		client = llm.UnavailableClient{Err: err}
	}

	var chat workflow.Assistant = assistant.NewSingle(client)
	if cfg.APIKey != "" && llmConfig.Provider == llm.ProviderGenAI {
		agent, err := assistant.NewAgent(ctx, llmConfig, cfg.APIKey)
		if err != nil {
			slog.Warn("chat agent unavailable; using stateless assistant", "error", err)
		} else {
			chat = agent
		}
	}

	return &stack{
		client: client,
		engines: workflow.Engines{
			Assessor:    engines.NewAssessmentEngine(client),
			Recommender: engines.NewRecommendationEngine(client),
			Analyst:     engines.NewAnalysisEngine(client),
			Resume:      engines.NewResumeEngine(client),
			Assistant:   chat,
			Extractor:   document.NewPDFExtractor(),
		},
	}
}

// Close releases the model client
func (s *stack) Close() {
	if err := s.client.Close(); err != nil {
		slog.Warn("failed to close model client", "error", err)
	}
}
