// Package types provides type definitions for the profile, assessment, career and resume data
// exchanged between the workflow controller and the generative engines.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// ExperienceLevel is the self-reported seniority of the user
type ExperienceLevel string

// Experience levels offered by the profile form
const (
	LevelEntry      ExperienceLevel = "Entry Level"
	LevelSpecialist ExperienceLevel = "Specialist"
	LevelManagerial ExperienceLevel = "Managerial"
	LevelExecutive  ExperienceLevel = "Executive/C-Suite"
)

// ExperienceLevels lists every accepted experience level in form order
var ExperienceLevels = []ExperienceLevel{LevelEntry, LevelSpecialist, LevelManagerial, LevelExecutive}

// DefaultLocation is the location used until the user picks another one
const DefaultLocation = "United States"

// Profile is the user's self-reported career profile
type Profile struct {
	Education       string          `json:"education"`
	Skills          string          `json:"skills"`
	Interests       string          `json:"interests"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel" validate:"omitempty,oneof='Entry Level' Specialist Managerial Executive/C-Suite"`
	CareerGoal      string          `json:"careerGoal"`
	Location        string          `json:"location"`
}

// NewProfile returns an empty profile with the form defaults applied
func NewProfile() Profile {
	return Profile{
		ExperienceLevel: LevelEntry,
		Location:        DefaultLocation,
	}
}

// Normalize trims every field and restores defaults for blank level/location
func (p Profile) Normalize() Profile {
	p.Education = strings.TrimSpace(p.Education)
	p.Skills = strings.TrimSpace(p.Skills)
	p.Interests = strings.TrimSpace(p.Interests)
	p.CareerGoal = strings.TrimSpace(p.CareerGoal)
	p.Location = strings.TrimSpace(p.Location)
	p.ExperienceLevel = ExperienceLevel(strings.TrimSpace(string(p.ExperienceLevel)))
	if p.ExperienceLevel == "" {
		p.ExperienceLevel = LevelEntry
	}
	if p.Location == "" {
		p.Location = DefaultLocation
	}
	return p
}

// ReadyForAssessment reports whether the fields the assessment depends on are present
func (p Profile) ReadyForAssessment() bool {
	return strings.TrimSpace(p.Education) != "" && strings.TrimSpace(p.CareerGoal) != ""
}

// Validate checks the enumerated fields of the profile
func (p *Profile) Validate() error {
	return validate.Struct(p)
}

// EducationSuggestions are quick picks shown next to the education field
var EducationSuggestions = []string{
	"B.Sc Computer Science",
	"B.Sc IT",
	"B.Sc Data Science",
	"B.Tech CS",
	"M.Sc Artificial Intelligence",
	"B.Sc Business Analytics",
}

// CareerGoalSuggestions are quick picks shown next to the career goal field
var CareerGoalSuggestions = []string{
	"AI Architect",
	"Data Scientist",
	"Cloud Engineer",
	"Product Manager",
	"Full Stack Dev",
	"Cybersecurity Lead",
}
