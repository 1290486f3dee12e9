package workflow

import (
	"context"

	"github.com/23bam037-tech/HITHESH-P-H/internal/types"
)

// Assessor authors and evaluates assessments
type Assessor interface {
	GenerateQuestions(ctx context.Context, profile types.Profile) ([]types.Question, error)
	Evaluate(ctx context.Context, profile types.Profile, questions []types.Question, answers types.AnswerSet) (*types.AssessmentResult, error)
}

// Recommender ranks career paths for a profile
type Recommender interface {
	Recommend(ctx context.Context, profile types.Profile) ([]types.CareerRecommendation, error)
}

// Analyst produces the full analysis of one career
type Analyst interface {
	Analyze(ctx context.Context, career string, profile types.Profile) (*types.FullCareerAnalysis, error)
}

// ResumeReviewer audits and rewrites resumes
type ResumeReviewer interface {
	AnalyzeResume(ctx context.Context, text string) (*types.ResumeAnalysis, error)
	OptimizeResume(ctx context.Context, text, target string) (*types.ResumeOptimization, error)
}

// Assistant answers chat messages. conversationID is the workflow session id.
type Assistant interface {
	Reply(ctx context.Context, conversationID, message, contextLine string) (string, error)
	Forget(ctx context.Context, conversationID string) error
}

// Extractor turns an uploaded document into plain text
type Extractor interface {
	Extract(data []byte, name string) (string, error)
}

// Engines bundles the collaborators a controller drives
type Engines struct {
	Assessor    Assessor
	Recommender Recommender
	Analyst     Analyst
	Resume      ResumeReviewer
	Assistant   Assistant
	Extractor   Extractor
}
