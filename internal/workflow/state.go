package workflow

import (
	"fmt"
	"time"

	"github.com/23bam037-tech/HITHESH-P-H/internal/types"
)

// View is a named screen of the user journey
type View string

// Views
const (
	ViewForm             View = "form"
	ViewAssessment       View = "assessment"
	ViewAssessmentResult View = "assessment_result"
	ViewDashboard        View = "dashboard"
	ViewResume           View = "resume"
	ViewChat             View = "chat"
)

// Views lists every view in funnel order
var Views = []View{ViewForm, ViewAssessment, ViewAssessmentResult, ViewDashboard, ViewResume, ViewChat}

// ParseView validates a view name
func ParseView(s string) (View, error) {
	for _, v := range Views {
		if string(v) == s {
			return v, nil
		}
	}
	return "", &ValidationError{Field: "view", Message: fmt.Sprintf("unknown view %q", s)}
}

// ResumeMode is the sub-mode of the resume view
type ResumeMode string

// Resume modes
const (
	ResumeEdit   ResumeMode = "edit"
	ResumeResult ResumeMode = "result"
)

// ParseResumeMode validates a resume mode name
func ParseResumeMode(s string) (ResumeMode, error) {
	switch ResumeMode(s) {
	case ResumeEdit, ResumeResult:
		return ResumeMode(s), nil
	}
	return "", &ValidationError{Field: "mode", Message: fmt.Sprintf("unknown resume mode %q", s)}
}

// AnalysisStatus tracks the background career analysis
type AnalysisStatus string

// Analysis statuses
const (
	AnalysisIdle    AnalysisStatus = "idle"
	AnalysisLoading AnalysisStatus = "loading"
	AnalysisReady   AnalysisStatus = "ready"
	AnalysisFailed  AnalysisStatus = "failed"
)

// Level is the severity of a notification
type Level string

// Notification levels
const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a user-facing message
type Notification struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Busy labels of the primary operations
const (
	LabelGenerateAssessment = "Generating assessment"
	LabelEvaluate           = "Evaluating answers"
	LabelRecommend          = "Finding career matches"
	LabelAnalyzeResume      = "Auditing resume"
	LabelOptimizeResume     = "Optimizing resume"
	LabelExtract            = "Reading document"
)

// ChatFallback is appended when the assistant cannot answer
const ChatFallback = "The career strategist is offline right now. Please try again."

// state is the mutable render state guarded by Controller.mu
type state struct {
	view    View
	profile types.Profile

	questions []types.Question
	answers   types.AnswerSet
	submitted types.AnswerSet
	result    *types.AssessmentResult

	recommendations []types.CareerRecommendation
	selected        string
	analysis        *types.FullCareerAnalysis
	analysisStatus  AnalysisStatus
	analysisGen     uint64

	resumeText     string
	resumeMode     ResumeMode
	resumeAnalysis *types.ResumeAnalysis
	optimization   *types.ResumeOptimization

	chat []types.ChatMessage

	busy         string
	notification *Notification
}

func newState() state {
	return state{
		view:           ViewForm,
		profile:        types.NewProfile(),
		answers:        types.AnswerSet{},
		analysisStatus: AnalysisIdle,
		resumeMode:     ResumeEdit,
	}
}

func (s *state) question(id int) (types.Question, bool) {
	for _, q := range s.questions {
		if q.ID == id {
			return q, true
		}
	}
	return types.Question{}, false
}

func (s *state) recommended(name string) bool {
	for _, r := range s.recommendations {
		if r.Name == name {
			return true
		}
	}
	return false
}
