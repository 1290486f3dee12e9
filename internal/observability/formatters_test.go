package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/23bam037-tech/HITHESH-P-H/internal/types"
)

func TestPrintQuestion(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintQuestion(1, 5, types.Question{
		ID:      1,
		Kind:    types.KindTechnicalChoice,
		Prompt:  "Which SQL join keeps rows without a match?",
		Options: []string{"INNER JOIN", "LEFT JOIN"},
	})
	output := buf.String()

	assert.Contains(t, output, "QUESTION 1/5  [technical choice]")
	assert.Contains(t, output, "1) INNER JOIN")
	assert.Contains(t, output, "2) LEFT JOIN")
}

func TestPrintAssessmentResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAssessmentResult(&types.AssessmentResult{
		Score:            80,
		WeakAreas:        []string{"Window functions"},
		StudySuggestions: []types.StudySuggestion{{Topic: "SQL", Resource: "Mode SQL tutorial"}},
		Summary:          "Solid fundamentals.",
	})
	output := buf.String()

	assert.Contains(t, output, "ASSESSMENT RESULT")
	assert.Contains(t, output, "Score:  80/100")
	assert.Contains(t, output, "Window functions")
	assert.Contains(t, output, "SQL: Mode SQL tutorial")
}

func TestPrintAssessmentResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintAssessmentResult(nil)
	assert.Empty(t, buf.String())
}

func TestPrintRecommendations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRecommendations([]types.CareerRecommendation{
		{Name: "Data Scientist", FitScore: 91, DemandLevel: types.LevelHigh, SalaryRange: "$95k-$150k"},
		{Name: "ML Engineer", FitScore: 84, DemandLevel: types.LevelMedium},
	}, "ML Engineer")
	output := buf.String()

	assert.Contains(t, output, "CAREER MATCHES")
	assert.Contains(t, output, "#1  Data Scientist  (91% fit, High demand)")
	assert.Contains(t, output, "▶ #2  ML Engineer")
	assert.Contains(t, output, "Salary: $95k-$150k")
}

func TestPrintRecommendations_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRecommendations(nil, "")
	assert.Empty(t, buf.String())
}

func TestPrintCareerAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCareerAnalysis(&types.FullCareerAnalysis{
		Career: "Data Scientist",
		SkillGap: types.SkillGap{
			ExistingSkills: []string{"Python"},
			MissingSkills:  []types.MissingSkill{{Name: "MLOps", Priority: types.LevelHigh}},
		},
		Roadmap: []types.RoadmapMonth{{Month: 1, Topics: []string{"Statistics", "Pandas"}}},
		Growth:  types.SalaryGrowth{Year1: "$95,000", Year3: "$120,000", Year5: "unknown"},
	})
	output := buf.String()

	assert.Contains(t, output, "CAREER ANALYSIS: DATA SCIENTIST")
	assert.Contains(t, output, "MLOps (High)")
	assert.Contains(t, output, "Month 1: Statistics, Pandas")
	assert.Contains(t, output, "$120,000")
	assert.Contains(t, output, "n/a")
}

func TestPrintResumeAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResumeAnalysis(&types.ResumeAnalysis{
		Score:           72,
		ExtractedSkills: []string{"Go", "SQL"},
		MissingKeywords: []string{"Kubernetes"},
	})
	output := buf.String()

	assert.Contains(t, output, "RESUME AUDIT")
	assert.Contains(t, output, "ATS score:  72/100")
	assert.Contains(t, output, "Kubernetes")
}

func TestPrintResumeOptimization(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResumeOptimization(&types.ResumeOptimization{
		OptimizedText: "Jane Doe",
		KeywordBoost:  []string{"Airflow"},
		ATSStrategy:   "Lead with quantified impact.",
		Target:        "Data Scientist",
	})
	output := buf.String()

	assert.Contains(t, output, "Target:  Data Scientist")
	assert.Contains(t, output, "Airflow")
	assert.Contains(t, output, "Lead with quantified impact.")
	assert.NotContains(t, output, "Jane Doe")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 200))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestWrap(t *testing.T) {
	lines := wrap("one two three four", 9)
	assert.Equal(t, []string{"one two", "three", "four"}, lines)
	assert.Equal(t, []string{""}, wrap("   ", 10))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$95,000", formatAmount(95000))
	assert.Equal(t, "$1,200,000", formatAmount(1200000))
	assert.Equal(t, "$950", formatAmount(950))
	assert.Equal(t, "n/a", formatAmount(0))
}

func TestPrintNotice(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintNotice("success", "Resume optimized for Data Scientist.")
	p.PrintChat(types.ChatMessage{Role: types.RoleAssistant, Text: "Start with SQL."})

	assert.Equal(t, "✅ Resume optimized for Data Scientist.\nStrategist: Start with SQL.\n", buf.String())
}
