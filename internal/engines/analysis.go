package engines

import (
	"context"
	"strings"

	"github.com/23bam037-tech/HITHESH-P-H/internal/llm"
	"github.com/23bam037-tech/HITHESH-P-H/internal/prompts"
	"github.com/23bam037-tech/HITHESH-P-H/internal/types"
)

// AnalysisEngine produces the multi-section report for one career
type AnalysisEngine struct {
	client llm.Client
}

// NewAnalysisEngine creates an analysis engine on the given client
func NewAnalysisEngine(client llm.Client) *AnalysisEngine {
	return &AnalysisEngine{client: client}
}

// Analyze builds the full career analysis. The returned analysis carries the career name.
func (e *AnalysisEngine) Analyze(ctx context.Context, career string, profile types.Profile) (*types.FullCareerAnalysis, error) {
	const op = "analyze career"

	if strings.TrimSpace(career) == "" {
		return nil, &ShapeError{Message: op + ": career name is required"}
	}

	template := prompts.MustGet(prompts.EnginesFile, "analyze-career")
	prompt := prompts.Format(template, map[string]string{
		"Career":    career,
		"Education": profile.Education,
		"Skills":    profile.Skills,
		"Location":  profile.Location,
	})

	analysis, err := call[types.FullCareerAnalysis](ctx, e.client, op, llm.Request{
		Prompt:   prompt,
		Tier:     llm.TierStandard,
		Schema:   AnalysisShape(),
		Grounded: true,
	})
	if err != nil {
		return nil, err
	}
	if err := analysis.Validate(); err != nil {
		return nil, shapeError(op, err)
	}

	analysis.Career = career
	return &analysis, nil
}
