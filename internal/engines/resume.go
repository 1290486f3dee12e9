package engines

import (
	"context"

	"github.com/23bam037-tech/HITHESH-P-H/internal/llm"
	"github.com/23bam037-tech/HITHESH-P-H/internal/prompts"
	"github.com/23bam037-tech/HITHESH-P-H/internal/types"
)

// ResumeEngine audits and rewrites resumes. Both calls run with thinking disabled.
type ResumeEngine struct {
	client llm.Client
}

// NewResumeEngine creates a resume engine on the given client
func NewResumeEngine(client llm.Client) *ResumeEngine {
	return &ResumeEngine{client: client}
}

// AnalyzeResume scores a resume and extracts its skills
func (e *ResumeEngine) AnalyzeResume(ctx context.Context, text string) (*types.ResumeAnalysis, error) {
	const op = "analyze resume"

	template := prompts.MustGet(prompts.EnginesFile, "analyze-resume")
	prompt := prompts.Format(template, map[string]string{"Resume": text})

	analysis, err := call[types.ResumeAnalysis](ctx, e.client, op, llm.Request{
		Prompt:   prompt,
		Tier:     llm.TierStandard,
		Schema:   ResumeAnalysisShape(),
		FastPath: true,
	})
	if err != nil {
		return nil, err
	}
	if err := analysis.Validate(); err != nil {
		return nil, shapeError(op, err)
	}
	return &analysis, nil
}

// OptimizeResume rewrites a resume for the target role
func (e *ResumeEngine) OptimizeResume(ctx context.Context, text, target string) (*types.ResumeOptimization, error) {
	const op = "optimize resume"

	template := prompts.MustGet(prompts.EnginesFile, "optimize-resume")
	prompt := prompts.Format(template, map[string]string{
		"Career": target,
		"Resume": text,
	})

	opt, err := call[types.ResumeOptimization](ctx, e.client, op, llm.Request{
		Prompt:   prompt,
		Tier:     llm.TierStandard,
		Schema:   ResumeOptimizationShape(),
		FastPath: true,
	})
	if err != nil {
		return nil, err
	}
	if err := opt.Validate(); err != nil {
		return nil, shapeError(op, err)
	}

	opt.Target = target
	return &opt, nil
}
