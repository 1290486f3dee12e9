package types

import "time"

// DefaultOptimizationTarget is used when neither a selected career nor a career goal is known
const DefaultOptimizationTarget = "Professional"

// ResumeAnalysis is the ATS audit of a resume
type ResumeAnalysis struct {
	Score           float64  `json:"score" validate:"gte=0,lte=100"`
	ExtractedSkills []string `json:"extractedSkills"`
	MissingKeywords []string `json:"missingKeywords"`
	Suggestions     []string `json:"suggestions"`
}

// Validate checks the score range
func (r *ResumeAnalysis) Validate() error {
	return validate.Struct(r)
}

// ResumeOptimization is a resume rewritten for a target role
type ResumeOptimization struct {
	OptimizedText  string   `json:"optimizedText" validate:"required"`
	KeywordBoost   []string `json:"keywordBoost"`
	FormattingTips []string `json:"formattingTips"`
	ATSStrategy    string   `json:"atsStrategy"`
	Target         string   `json:"target,omitempty"`
}

// Validate checks that the rewritten text is present
func (r *ResumeOptimization) Validate() error {
	return validate.Struct(r)
}

// ChatRole identifies the author of a chat message
type ChatRole string

// Chat roles
const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one entry of the append-only assistant transcript
type ChatMessage struct {
	Role ChatRole  `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}
