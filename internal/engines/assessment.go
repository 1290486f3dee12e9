package engines

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/23bam037-tech/HITHESH-P-H/internal/llm"
	"github.com/23bam037-tech/HITHESH-P-H/internal/prompts"
	"github.com/23bam037-tech/HITHESH-P-H/internal/types"
)

var kindLabels = map[types.QuestionKind]string{
	types.KindTechnicalChoice: "technical multiple-choice",
	types.KindLogicalChoice:   "logical reasoning multiple-choice",
	types.KindCodingChallenge: "coding challenge",
	types.KindSituational:     "situational/architectural open-ended",
}

// AssessmentEngine authors and evaluates aptitude assessments
type AssessmentEngine struct {
	client llm.Client
}

// NewAssessmentEngine creates an assessment engine on the given client
func NewAssessmentEngine(client llm.Client) *AssessmentEngine {
	return &AssessmentEngine{client: client}
}

// GenerateQuestions produces the assessment for a profile
func (e *AssessmentEngine) GenerateQuestions(ctx context.Context, profile types.Profile) ([]types.Question, error) {
	const op = "generate assessment"

	template := prompts.MustGet(prompts.EnginesFile, "generate-assessment")
	prompt := prompts.Format(template, map[string]string{
		"Count":           fmt.Sprint(types.AssessmentSize),
		"CareerGoal":      profile.CareerGoal,
		"Education":       profile.Education,
		"Skills":          profile.Skills,
		"ExperienceLevel": string(profile.ExperienceLevel),
		"Distribution":    distributionText(),
	})

	questions, err := call[[]types.Question](ctx, e.client, op, llm.Request{
		Prompt: prompt,
		Tier:   llm.TierAdvanced,
		Schema: QuestionsShape(),
	})
	if err != nil {
		return nil, err
	}
	return normalizeQuestions(op, questions)
}

func distributionText() string {
	var sb strings.Builder
	for _, kind := range types.QuestionKinds {
		n := types.AssessmentDistribution[kind]
		fmt.Fprintf(&sb, "- %d %s question(s) with type %q.\n", n, kindLabels[kind], kind)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// normalizeQuestions checks every question and renumbers ids 1..n when
// they are missing or duplicated.
func normalizeQuestions(op string, questions []types.Question) ([]types.Question, error) {
	if len(questions) == 0 {
		return nil, &ShapeError{Message: op + ": no questions generated"}
	}

	seen := make(map[int]bool, len(questions))
	renumber := false
	for i := range questions {
		q := &questions[i]
		if err := types.Validator().Struct(q); err != nil {
			return nil, shapeError(op, err)
		}
		if q.Kind.IsChoice() {
			if len(q.Options) < 2 {
				return nil, &ShapeError{
					Message: op + ": choice question needs at least two options",
					Fields:  []string{fmt.Sprintf("[%d].options", i)},
				}
			}
		} else {
			q.Options = nil
		}
		if q.ID <= 0 || seen[q.ID] {
			renumber = true
		}
		seen[q.ID] = true
	}

	if renumber {
		slog.Debug("renumbering assessment questions", "count", len(questions))
		for i := range questions {
			questions[i].ID = i + 1
		}
	}
	if len(questions) != types.AssessmentSize {
		slog.Warn("assessment size differs from request", "requested", types.AssessmentSize, "received", len(questions))
	}
	return questions, nil
}

// Evaluate scores a complete answer set
func (e *AssessmentEngine) Evaluate(ctx context.Context, profile types.Profile, questions []types.Question, answers types.AnswerSet) (*types.AssessmentResult, error) {
	const op = "evaluate assessment"

	questionsJSON, err := json.MarshalIndent(questions, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal questions: %w", err)
	}
	answersJSON, err := json.MarshalIndent(answers, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal answers: %w", err)
	}

	template := prompts.MustGet(prompts.EnginesFile, "evaluate-assessment")
	prompt := prompts.Format(template, map[string]string{
		"CareerGoal": profile.CareerGoal,
		"Questions":  string(questionsJSON),
		"Answers":    string(answersJSON),
	})

	result, err := call[types.AssessmentResult](ctx, e.client, op, llm.Request{
		Prompt: prompt,
		Tier:   llm.TierAdvanced,
		Schema: EvaluationShape(),
	})
	if err != nil {
		return nil, err
	}
	if err := result.Validate(); err != nil {
		return nil, shapeError(op, err)
	}
	return &result, nil
}
