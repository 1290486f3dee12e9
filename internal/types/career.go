package types

import (
	"strconv"
	"strings"
	"unicode"
)

// Level is a categorical Low/Medium/High rating used for demand and priority
type Level string

// Rating levels
const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// JobItem is a real job opening surfaced for a career path
type JobItem struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Link     string `json:"link"`
}

// CourseItem is a course recommended for a career path
type CourseItem struct {
	Title    string `json:"title"`
	Platform string `json:"platform"`
	Link     string `json:"link"`
}

// CareerRecommendation is one ranked career option
type CareerRecommendation struct {
	Name          string       `json:"name" validate:"required"`
	FitScore      float64      `json:"fitScore" validate:"gte=0,lte=100"`
	Reason        string       `json:"reason"`
	SalaryRange   string       `json:"salaryRange"`
	DemandLevel   Level        `json:"demandLevel" validate:"oneof=Low Medium High"`
	RealWorldJobs []JobItem    `json:"realWorldJobs"`
	TopCourses    []CourseItem `json:"topCourses"`
}

// Validate checks the fit score range and demand level
func (c *CareerRecommendation) Validate() error {
	return validate.Struct(c)
}

// VideoItem is a video or playlist resource
type VideoItem struct {
	Title   string `json:"title"`
	Channel string `json:"channel"`
	URL     string `json:"url"`
}

// CertificationItem is a professional certification worth pursuing
type CertificationItem struct {
	Name       string `json:"name"`
	Provider   string `json:"provider"`
	Duration   string `json:"duration"`
	Difficulty string `json:"difficulty"`
	Link       string `json:"link"`
}

// MissingSkill is a skill the user lacks for the selected career
type MissingSkill struct {
	Name     string `json:"name"`
	Priority Level  `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High"`
}

// SkillGap compares the user's skills with the selected career
type SkillGap struct {
	ExistingSkills []string       `json:"existingSkills"`
	MissingSkills  []MissingSkill `json:"missingSkills" validate:"dive"`
}

// SkillDemandItem rates market demand for one skill
type SkillDemandItem struct {
	Skill  string `json:"skill"`
	Demand Level  `json:"demand" validate:"oneof=Low Medium High"`
	Reason string `json:"reason"`
}

// RoadmapMonth is one month of the learning roadmap
type RoadmapMonth struct {
	Month             int         `json:"month"`
	Topics            []string    `json:"topics"`
	MiniProject       string      `json:"miniProject"`
	RecommendedVideos []VideoItem `json:"recommendedVideos"`
}

// SalaryGrowth projects compensation over the first five years
type SalaryGrowth struct {
	Year1            string   `json:"year1"`
	Year3            string   `json:"year3"`
	Year5            string   `json:"year5"`
	GrowthPercentage string   `json:"growthPercentage"`
	FutureRoles      []string `json:"futureRoles"`
	StabilityLevel   string   `json:"stabilityLevel"`
}

// SalaryPoint is a numeric salary value for charting
type SalaryPoint struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// Projection converts the year 1/3/5 salary strings into chart points.
// Every non-digit is dropped, so "$120,000" becomes 120000; text without digits yields 0.
func (g SalaryGrowth) Projection() []SalaryPoint {
	return []SalaryPoint{
		{Label: "Year 1", Amount: parseCurrency(g.Year1)},
		{Label: "Year 3", Amount: parseCurrency(g.Year3)},
		{Label: "Year 5", Amount: parseCurrency(g.Year5)},
	}
}

func parseCurrency(s string) int64 {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return 0
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// SimulationStep is one year of the simulated career trajectory
type SimulationStep struct {
	Year        int    `json:"year"`
	Progress    string `json:"progress"`
	SkillGrowth string `json:"skillGrowth"`
}

// Simulation weighs the advantages and risks of the career over time
type Simulation struct {
	Timeline   []SimulationStep `json:"timeline"`
	Advantages []string         `json:"advantages"`
	Risks      []string         `json:"risks"`
}

// FullCareerAnalysis is the multi-section report for the selected career
type FullCareerAnalysis struct {
	Career         string              `json:"career,omitempty"`
	SkillGap       SkillGap            `json:"skillGap"`
	SkillDemand    []SkillDemandItem   `json:"skillDemand" validate:"dive"`
	Roadmap        []RoadmapMonth      `json:"roadmap" validate:"dive"`
	Growth         SalaryGrowth        `json:"growth"`
	Certifications []CertificationItem `json:"certifications"`
	Masterclasses  []VideoItem         `json:"masterclasses"`
	Simulation     Simulation          `json:"simulation"`
}

// Validate checks every enumerated field in the analysis
func (a *FullCareerAnalysis) Validate() error {
	return validate.Struct(a)
}
