package workflow

import (
	"slices"

	"github.com/23bam037-tech/HITHESH-P-H/internal/types"
)

// Suggestions are quick picks for the profile form
type Suggestions struct {
	Education   []string `json:"education"`
	CareerGoals []string `json:"careerGoals"`
}

// ResumeSnapshot is the resume view state
type ResumeSnapshot struct {
	Text         string                    `json:"text"`
	Mode         ResumeMode                `json:"mode"`
	Analysis     *types.ResumeAnalysis     `json:"analysis,omitempty"`
	Optimization *types.ResumeOptimization `json:"optimization,omitempty"`
}

// Snapshot is an immutable copy of everything needed to render a session.
// Committed engine results are never mutated, so nested slices are shared.
type Snapshot struct {
	SessionID string `json:"sessionId"`
	View      View   `json:"view"`
	Busy      bool   `json:"busy"`
	BusyLabel string `json:"busyLabel,omitempty"`

	Profile     types.Profile `json:"profile"`
	Suggestions Suggestions   `json:"suggestions"`

	Questions        []types.Question        `json:"questions"`
	Answers          types.AnswerSet         `json:"answers"`
	AssessmentResult *types.AssessmentResult `json:"assessmentResult,omitempty"`
	SubmittedAnswers types.AnswerSet         `json:"submittedAnswers,omitempty"`

	Recommendations  []types.CareerRecommendation `json:"recommendations"`
	SelectedCareer   string                       `json:"selectedCareer,omitempty"`
	Analysis         *types.FullCareerAnalysis    `json:"analysis,omitempty"`
	AnalysisStatus   AnalysisStatus               `json:"analysisStatus"`
	AnalysisLoading  bool                         `json:"analysisLoading"`
	SalaryProjection []types.SalaryPoint          `json:"salaryProjection,omitempty"`

	Resume ResumeSnapshot      `json:"resume"`
	Chat   []types.ChatMessage `json:"chat"`

	Notification *Notification `json:"notification,omitempty"`
}

// Snapshot returns a copy of the current state.
// Reference answers and explanations stay hidden until the assessment is evaluated.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := &c.st

	snap := Snapshot{
		SessionID: c.id,
		View:      s.view,
		Busy:      s.busy != "",
		BusyLabel: s.busy,
		Profile:   s.profile,
		Suggestions: Suggestions{
			Education:   slices.Clone(types.EducationSuggestions),
			CareerGoals: slices.Clone(types.CareerGoalSuggestions),
		},
		Questions:       slices.Clone(s.questions),
		Answers:         s.answers.Clone(),
		Recommendations: slices.Clone(s.recommendations),
		SelectedCareer:  s.selected,
		AnalysisStatus:  s.analysisStatus,
		AnalysisLoading: s.analysisStatus == AnalysisLoading,
		Resume: ResumeSnapshot{
			Text: s.resumeText,
			Mode: s.resumeMode,
		},
		Chat: slices.Clone(s.chat),
	}

	if s.result == nil {
		for i := range snap.Questions {
			snap.Questions[i].ReferenceAnswer = ""
			snap.Questions[i].Explanation = ""
		}
	} else {
		result := *s.result
		snap.AssessmentResult = &result
		snap.SubmittedAnswers = s.submitted.Clone()
	}
	if s.analysis != nil {
		analysis := *s.analysis
		snap.Analysis = &analysis
		snap.SalaryProjection = analysis.Growth.Projection()
	}
	if s.resumeAnalysis != nil {
		ra := *s.resumeAnalysis
		snap.Resume.Analysis = &ra
	}
	if s.optimization != nil {
		opt := *s.optimization
		snap.Resume.Optimization = &opt
	}
	if s.notification != nil {
		n := *s.notification
		snap.Notification = &n
	}
	if snap.Questions == nil {
		snap.Questions = []types.Question{}
	}
	if snap.Recommendations == nil {
		snap.Recommendations = []types.CareerRecommendation{}
	}
	if snap.Chat == nil {
		snap.Chat = []types.ChatMessage{}
	}
	return snap
}
