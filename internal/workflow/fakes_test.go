package workflow

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/23bam037-tech/HITHESH-P-H/internal/events"
	"github.com/23bam037-tech/HITHESH-P-H/internal/types"
)

// fakeEngines implements every engine interface with overridable funcs and call records
type fakeEngines struct {
	mu sync.Mutex

	GenerateFunc  func(ctx context.Context, profile types.Profile) ([]types.Question, error)
	EvaluateFunc  func(ctx context.Context, profile types.Profile, questions []types.Question, answers types.AnswerSet) (*types.AssessmentResult, error)
	RecommendFunc func(ctx context.Context, profile types.Profile) ([]types.CareerRecommendation, error)
	AnalyzeFunc   func(ctx context.Context, career string, profile types.Profile) (*types.FullCareerAnalysis, error)
	AuditFunc     func(ctx context.Context, text string) (*types.ResumeAnalysis, error)
	OptimizeFunc  func(ctx context.Context, text, target string) (*types.ResumeOptimization, error)
	ReplyFunc     func(ctx context.Context, conversationID, message, contextLine string) (string, error)
	ExtractFunc   func(data []byte, name string) (string, error)

	generateCalls  int
	evaluateCalls  int
	recommendCalls int
	analyzed       []string
	audited        []string
	optimized      [][2]string
	replies        []string
	forgotten      []string
}

func (f *fakeEngines) GenerateQuestions(ctx context.Context, profile types.Profile) ([]types.Question, error) {
	f.mu.Lock()
	f.generateCalls++
	fn := f.GenerateFunc
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, profile)
	}
	return sampleQuestions(), nil
}

func (f *fakeEngines) Evaluate(ctx context.Context, profile types.Profile, questions []types.Question, answers types.AnswerSet) (*types.AssessmentResult, error) {
	f.mu.Lock()
	f.evaluateCalls++
	fn := f.EvaluateFunc
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, profile, questions, answers)
	}
	return &types.AssessmentResult{Score: 72, WeakAreas: []string{"Statistics"}, Summary: "Solid fundamentals"}, nil
}

func (f *fakeEngines) Recommend(ctx context.Context, profile types.Profile) ([]types.CareerRecommendation, error) {
	f.mu.Lock()
	f.recommendCalls++
	fn := f.RecommendFunc
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, profile)
	}
	return sampleRecommendations(), nil
}

func (f *fakeEngines) Analyze(ctx context.Context, career string, profile types.Profile) (*types.FullCareerAnalysis, error) {
	f.mu.Lock()
	f.analyzed = append(f.analyzed, career)
	fn := f.AnalyzeFunc
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, career, profile)
	}
	return sampleAnalysis(career), nil
}

func (f *fakeEngines) AnalyzeResume(ctx context.Context, text string) (*types.ResumeAnalysis, error) {
	f.mu.Lock()
	f.audited = append(f.audited, text)
	fn := f.AuditFunc
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, text)
	}
	return &types.ResumeAnalysis{Score: 64, MissingKeywords: []string{"Docker"}}, nil
}

func (f *fakeEngines) OptimizeResume(ctx context.Context, text, target string) (*types.ResumeOptimization, error) {
	f.mu.Lock()
	f.optimized = append(f.optimized, [2]string{text, target})
	fn := f.OptimizeFunc
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, text, target)
	}
	return &types.ResumeOptimization{OptimizedText: "OPTIMIZED: " + text, ATSStrategy: "keywords first"}, nil
}

func (f *fakeEngines) Reply(ctx context.Context, conversationID, message, contextLine string) (string, error) {
	f.mu.Lock()
	f.replies = append(f.replies, contextLine)
	fn := f.ReplyFunc
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, conversationID, message, contextLine)
	}
	return "Focus on SQL window functions.", nil
}

func (f *fakeEngines) Forget(_ context.Context, conversationID string) error {
	f.mu.Lock()
	f.forgotten = append(f.forgotten, conversationID)
	f.mu.Unlock()
	return nil
}

func (f *fakeEngines) Extract(data []byte, name string) (string, error) {
	if f.ExtractFunc != nil {
		return f.ExtractFunc(data, name)
	}
	return string(data), nil
}

func (f *fakeEngines) analyzedCareers() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.analyzed...)
}

func (f *fakeEngines) engines() Engines {
	return Engines{
		Assessor:    f,
		Recommender: f,
		Analyst:     f,
		Resume:      f,
		Assistant:   f,
		Extractor:   f,
	}
}

// recorder collects published events
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(ev events.Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *recorder) types() []events.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Type, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}

func (r *recorder) count(t events.Type) int {
	n := 0
	for _, got := range r.types() {
		if got == t {
			n++
		}
	}
	return n
}

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestController(t *testing.T, f *fakeEngines) (*Controller, *recorder) {
	t.Helper()
	rec := &recorder{}
	c := New(f.engines(), Config{
		SessionID: "sess-1",
		Publisher: rec,
		Clock:     func() time.Time { return fixedNow },
	})
	t.Cleanup(func() { _ = c.Close() })
	return c, rec
}

func testProfile() types.Profile {
	return types.Profile{
		Education:  "B.Sc Computer Science",
		CareerGoal: "Data Scientist",
		Skills:     "Python, SQL",
	}
}

func sampleQuestions() []types.Question {
	return []types.Question{
		{ID: 1, Kind: types.KindTechnicalChoice, Prompt: "Which join keeps unmatched left rows?", Options: []string{"INNER", "LEFT", "CROSS"}, ReferenceAnswer: "LEFT", Explanation: "LEFT JOIN keeps them."},
		{ID: 2, Kind: types.KindTechnicalChoice, Prompt: "Which structure gives O(1) lookup?", Options: []string{"list", "dict"}, ReferenceAnswer: "dict"},
		{ID: 3, Kind: types.KindLogicalChoice, Prompt: "Next in 2, 4, 8?", Options: []string{"10", "16"}, ReferenceAnswer: "16"},
		{ID: 4, Kind: types.KindCodingChallenge, Prompt: "Write a function that reverses a string."},
		{ID: 5, Kind: types.KindSituational, Prompt: "A stakeholder disputes your model. What do you do?"},
	}
}

func sampleAnswers() map[int]string {
	return map[int]string{
		1: "LEFT",
		2: "dict",
		3: "16",
		4: "def rev(s): return s[::-1]",
		5: "Walk them through the validation metrics.",
	}
}

func sampleRecommendations() []types.CareerRecommendation {
	return []types.CareerRecommendation{
		{Name: "Data Scientist", FitScore: 91, DemandLevel: types.LevelHigh},
		{Name: "ML Engineer", FitScore: 84, DemandLevel: types.LevelHigh},
		{Name: "Data Analyst", FitScore: 77, DemandLevel: types.LevelMedium},
	}
}

func sampleAnalysis(career string) *types.FullCareerAnalysis {
	return &types.FullCareerAnalysis{
		Career: career,
		Growth: types.SalaryGrowth{Year1: "$95,000", Year3: "$120,000", Year5: "$150,000"},
	}
}

// reachDashboard runs the journey up to the dashboard
func reachDashboard(t *testing.T, c *Controller) {
	t.Helper()
	ctx := context.Background()
	if err := c.UpdateProfile(testProfile()); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if err := c.StartAssessment(ctx); err != nil {
		t.Fatalf("start assessment: %v", err)
	}
	for id, answer := range sampleAnswers() {
		if err := c.RecordAnswer(id, answer); err != nil {
			t.Fatalf("record answer %d: %v", id, err)
		}
	}
	if err := c.SubmitAssessment(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := c.ProceedToDashboard(ctx); err != nil {
		t.Fatalf("dashboard: %v", err)
	}
}

// gate lets a test decide when each analysis call returns
type gate struct {
	mu    sync.Mutex
	chans map[string]chan error
}

func newGate(careers ...string) *gate {
	g := &gate{chans: make(map[string]chan error)}
	for _, c := range careers {
		g.chans[c] = make(chan error)
	}
	return g
}

func (g *gate) analyze(ctx context.Context, career string, _ types.Profile) (*types.FullCareerAnalysis, error) {
	g.mu.Lock()
	ch, ok := g.chans[career]
	g.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("unexpected career %q", career)
	}
	select {
	case err := <-ch:
		if err != nil {
			return nil, err
		}
		return sampleAnalysis(career), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *gate) release(career string, err error) {
	g.mu.Lock()
	ch := g.chans[career]
	g.mu.Unlock()
	ch <- err
}
