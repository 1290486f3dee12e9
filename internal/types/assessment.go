package types

import (
	"fmt"
	"slices"
	"strings"
)

// QuestionKind identifies how a question is answered
type QuestionKind string

// Question kinds produced by the assessment engine
const (
	KindTechnicalChoice QuestionKind = "technical_choice"
	KindLogicalChoice   QuestionKind = "logical_choice"
	KindCodingChallenge QuestionKind = "coding_challenge"
	KindSituational     QuestionKind = "situational"
)

// QuestionKinds lists every question kind
var QuestionKinds = []QuestionKind{KindTechnicalChoice, KindLogicalChoice, KindCodingChallenge, KindSituational}

// IsChoice reports whether the kind is answered by picking one of the options
func (k QuestionKind) IsChoice() bool {
	return k == KindTechnicalChoice || k == KindLogicalChoice
}

// AssessmentDistribution is the number of questions requested per kind
var AssessmentDistribution = map[QuestionKind]int{
	KindTechnicalChoice: 2,
	KindLogicalChoice:   1,
	KindCodingChallenge: 1,
	KindSituational:     1,
}

// AssessmentSize is the total number of questions in one assessment
const AssessmentSize = 5

// Question is a single generated assessment question
type Question struct {
	ID              int          `json:"id"`
	Kind            QuestionKind `json:"type" validate:"required,oneof=technical_choice logical_choice coding_challenge situational"`
	Prompt          string       `json:"question" validate:"required"`
	Options         []string     `json:"options,omitempty"`
	ReferenceAnswer string       `json:"correctAnswer,omitempty"`
	Explanation     string       `json:"explanation"`
}

// AcceptsAnswer checks an answer against the question kind.
// Choice questions only accept one of their options.
func (q Question) AcceptsAnswer(answer string) error {
	if strings.TrimSpace(answer) == "" {
		return fmt.Errorf("answer is empty")
	}
	if q.Kind.IsChoice() && !slices.Contains(q.Options, answer) {
		return fmt.Errorf("answer %q is not one of the options for question %d", answer, q.ID)
	}
	return nil
}

// AnswerSet maps question id to the user's answer
type AnswerSet map[int]string

// Clone returns an independent copy of the answer set
func (a AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Missing returns the ids of questions that have no answer, in question order
func (a AnswerSet) Missing(questions []Question) []int {
	var missing []int
	for _, q := range questions {
		if strings.TrimSpace(a[q.ID]) == "" {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// Complete reports whether every question has an answer
func (a AnswerSet) Complete(questions []Question) bool {
	return len(a.Missing(questions)) == 0
}

// StudySuggestion pairs a weak topic with a resource to study it
type StudySuggestion struct {
	Topic    string `json:"topic"`
	Resource string `json:"resource"`
}

// AssessmentResult is the evaluated outcome of a submitted assessment
type AssessmentResult struct {
	Score             float64           `json:"score" validate:"gte=0,lte=100"`
	WeakAreas         []string          `json:"weakAreas"`
	StudySuggestions  []StudySuggestion `json:"studySuggestions"`
	Summary           string            `json:"summary"`
	TechnicalFeedback string            `json:"technicalFeedback"`
}

// Validate checks the score range
func (r *AssessmentResult) Validate() error {
	return validate.Struct(r)
}
