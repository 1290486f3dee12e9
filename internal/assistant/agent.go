package assistant

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"sync"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"github.com/23bam037-tech/HITHESH-P-H/internal/llm"
	"github.com/23bam037-tech/HITHESH-P-H/internal/prompts"
)

const (
	agentName = "career_strategist"
	userID    = "careerpilot"
)

// runFunc matches runner.Runner.Run without the run config
type runFunc func(ctx context.Context, userID, sessionID string, msg *genai.Content) iter.Seq2[*session.Event, error]

// Agent answers messages through an ADK agent runner. Each conversation id maps to
// one in-memory ADK session, so follow-up questions see the earlier turns.
type Agent struct {
	run      runFunc
	sessions session.Service
	appName  string

	mu   sync.Mutex
	open map[string]bool
}

// NewAgent creates an agent on the lite-tier model of config
func NewAgent(ctx context.Context, config *llm.Config, apiKey string) (*Agent, error) {
	if apiKey == "" {
		return nil, llm.ErrNoAPIKey
	}
	if config == nil {
		config = llm.DefaultConfig()
	}

	model, err := gemini.NewModel(ctx, config.GetModel(llm.TierLite), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}

	strategist, err := llmagent.New(llmagent.Config{
		Name:        agentName,
		Model:       model,
		Description: prompts.MustGet(prompts.AssistantFile, "description"),
		Instruction: prompts.MustGet(prompts.AssistantFile, "instruction"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	sessions := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        strategist.Name(),
		Agent:          strategist,
		SessionService: sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	return &Agent{
		run: func(ctx context.Context, userID, sessionID string, msg *genai.Content) iter.Seq2[*session.Event, error] {
			return r.Run(ctx, userID, sessionID, msg, agent.RunConfig{})
		},
		sessions: sessions,
		appName:  strategist.Name(),
		open:     make(map[string]bool),
	}, nil
}

// Reply sends one user turn and returns the final response text
func (a *Agent) Reply(ctx context.Context, conversationID, message, contextLine string) (string, error) {
	if err := a.ensureSession(ctx, conversationID); err != nil {
		return "", err
	}

	text := message
	if contextLine != "" {
		text = fmt.Sprintf("%s\n\nContext: %s", message, contextLine)
	}

	var output string
	for event, err := range a.run(ctx, userID, conversationID, &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: text}},
	}) {
		if err != nil {
			return "", fmt.Errorf("agent run failed: %w", err)
		}
		if event != nil && event.IsFinalResponse() && event.Content != nil {
			for _, part := range event.Content.Parts {
				output += part.Text
			}
		}
	}

	reply := PlainText(output)
	if reply == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}

// Forget deletes the ADK session for a conversation
func (a *Agent) Forget(ctx context.Context, conversationID string) error {
	a.mu.Lock()
	known := a.open[conversationID]
	delete(a.open, conversationID)
	a.mu.Unlock()
	if !known {
		return nil
	}

	err := a.sessions.Delete(ctx, &session.DeleteRequest{
		AppName:   a.appName,
		UserID:    userID,
		SessionID: conversationID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (a *Agent) ensureSession(ctx context.Context, conversationID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.open[conversationID] {
		return nil
	}

	_, err := a.sessions.Create(ctx, &session.CreateRequest{
		AppName:   a.appName,
		UserID:    userID,
		SessionID: conversationID,
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	slog.Debug("assistant session created", "session_id", conversationID)
	a.open[conversationID] = true
	return nil
}
