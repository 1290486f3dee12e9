package engines

import (
	"github.com/23bam037-tech/HITHESH-P-H/internal/llm"
	"github.com/23bam037-tech/HITHESH-P-H/internal/types"
)

var levels = []string{string(types.LevelHigh), string(types.LevelMedium), string(types.LevelLow)}

func questionKinds() []string {
	kinds := make([]string, 0, len(types.QuestionKinds))
	for _, k := range types.QuestionKinds {
		kinds = append(kinds, string(k))
	}
	return kinds
}

// QuestionsShape is the declared output of assessment generation
func QuestionsShape() *llm.Schema {
	return llm.ArrayOf(llm.Object(map[string]*llm.Schema{
		"id":            llm.Integer("question number starting at 1"),
		"type":          llm.Enum("question kind", questionKinds()...),
		"question":      llm.String("the question text"),
		"options":       llm.ArrayOf(llm.String("")).OrNull(),
		"correctAnswer": llm.String("reference answer").OrNull(),
		"explanation":   llm.String("why the reference answer is right"),
	}, "id", "type", "question", "explanation"))
}

// EvaluationShape is the declared output of assessment evaluation
func EvaluationShape() *llm.Schema {
	return llm.Object(map[string]*llm.Schema{
		"score":             llm.Number("overall score from 0 to 100"),
		"weakAreas":         llm.ArrayOf(llm.String("")),
		"technicalFeedback": llm.String("feedback on the coding challenge"),
		"studySuggestions": llm.ArrayOf(llm.Object(map[string]*llm.Schema{
			"topic":    llm.String(""),
			"resource": llm.String(""),
		})),
		"summary": llm.String("overall verdict"),
	}, "score", "weakAreas", "technicalFeedback", "studySuggestions", "summary")
}

// RecommendationsShape is the declared output of career recommendations
func RecommendationsShape() *llm.Schema {
	return llm.ArrayOf(llm.Object(map[string]*llm.Schema{
		"name":        llm.String("career title"),
		"fitScore":    llm.Number("fit from 0 to 100"),
		"reason":      llm.String(""),
		"salaryRange": llm.String(""),
		"demandLevel": llm.Enum("", levels...),
		"realWorldJobs": llm.ArrayOf(llm.Object(map[string]*llm.Schema{
			"title":    llm.String(""),
			"company":  llm.String(""),
			"location": llm.String(""),
			"link":     llm.String(""),
		})),
		"topCourses": llm.ArrayOf(llm.Object(map[string]*llm.Schema{
			"title":    llm.String(""),
			"platform": llm.String(""),
			"link":     llm.String(""),
		})),
	}, "name", "fitScore", "reason", "salaryRange", "demandLevel", "realWorldJobs", "topCourses"))
}

func videoShape() *llm.Schema {
	return llm.Object(map[string]*llm.Schema{
		"title":   llm.String(""),
		"channel": llm.String(""),
		"url":     llm.String(""),
	}, "title", "channel", "url")
}

// AnalysisShape is the declared output of the full career analysis
func AnalysisShape() *llm.Schema {
	return llm.Object(map[string]*llm.Schema{
		"skillGap": llm.Object(map[string]*llm.Schema{
			"existingSkills": llm.ArrayOf(llm.String("")),
			"missingSkills": llm.ArrayOf(llm.Object(map[string]*llm.Schema{
				"name":     llm.String(""),
				"priority": llm.Enum("", levels...),
			})),
		}, "existingSkills", "missingSkills"),
		"skillDemand": llm.ArrayOf(llm.Object(map[string]*llm.Schema{
			"skill":  llm.String(""),
			"demand": llm.Enum("", levels...),
			"reason": llm.String(""),
		}, "skill", "demand", "reason")),
		"roadmap": llm.ArrayOf(llm.Object(map[string]*llm.Schema{
			"month":             llm.Integer("month number"),
			"topics":            llm.ArrayOf(llm.String("")),
			"miniProject":       llm.String(""),
			"recommendedVideos": llm.ArrayOf(videoShape()),
		}, "month", "topics", "miniProject", "recommendedVideos")),
		"growth": llm.Object(map[string]*llm.Schema{
			"year1":            llm.String("salary in year 1"),
			"year3":            llm.String("salary in year 3"),
			"year5":            llm.String("salary in year 5"),
			"growthPercentage": llm.String(""),
			"futureRoles":      llm.ArrayOf(llm.String("")),
			"stabilityLevel":   llm.String(""),
		}, "year1", "year3", "year5", "growthPercentage", "futureRoles", "stabilityLevel"),
		"certifications": llm.ArrayOf(llm.Object(map[string]*llm.Schema{
			"name":       llm.String(""),
			"provider":   llm.String(""),
			"duration":   llm.String(""),
			"difficulty": llm.String(""),
			"link":       llm.String(""),
		}, "name", "provider", "duration", "difficulty", "link")),
		"masterclasses": llm.ArrayOf(videoShape()),
		"simulation": llm.Object(map[string]*llm.Schema{
			"timeline": llm.ArrayOf(llm.Object(map[string]*llm.Schema{
				"year":        llm.Integer(""),
				"progress":    llm.String(""),
				"skillGrowth": llm.String(""),
			})),
			"advantages": llm.ArrayOf(llm.String("")),
			"risks":      llm.ArrayOf(llm.String("")),
		}, "timeline", "advantages", "risks"),
	}, "skillGap", "skillDemand", "roadmap", "growth", "simulation", "certifications", "masterclasses")
}

// ResumeAnalysisShape is the declared output of the ATS audit
func ResumeAnalysisShape() *llm.Schema {
	return llm.Object(map[string]*llm.Schema{
		"extractedSkills": llm.ArrayOf(llm.String("")),
		"missingKeywords": llm.ArrayOf(llm.String("")),
		"score":           llm.Number("ATS score from 0 to 100"),
		"suggestions":     llm.ArrayOf(llm.String("")),
	}, "score")
}

// ResumeOptimizationShape is the declared output of the resume rewrite
func ResumeOptimizationShape() *llm.Schema {
	return llm.Object(map[string]*llm.Schema{
		"optimizedText":  llm.String("the full rewritten resume"),
		"keywordBoost":   llm.ArrayOf(llm.String("")),
		"formattingTips": llm.ArrayOf(llm.String("")),
		"atsStrategy":    llm.String(""),
	}, "optimizedText", "keywordBoost", "formattingTips", "atsStrategy")
}
