package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/23bam037-tech/HITHESH-P-H/internal/types"
)

// StartAssessment generates a new question set for the profile and enters the assessment.
// Any previous questions, answers and result are replaced.
func (c *Controller) StartAssessment(ctx context.Context) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()

	c.mu.Lock()
	profile := c.st.profile
	if !profile.ReadyForAssessment() {
		c.mu.Unlock()
		return c.reject(&ValidationError{Field: "profile", Message: "education and career goal are required to start the assessment"})
	}
	busy := c.markBusyLocked(LabelGenerateAssessment)
	c.mu.Unlock()
	c.emit(busy)

	questions, err := c.engines.Assessor.GenerateQuestions(ctx, profile)
	if err != nil {
		return c.fail("generate assessment", "Could not generate the assessment. Please try again.", err)
	}

	c.mu.Lock()
	c.st.questions = questions
	c.st.answers = types.AnswerSet{}
	c.st.submitted = nil
	c.st.result = nil
	evs := c.changeViewLocked(ViewAssessment)
	c.mu.Unlock()

	c.log.Info("assessment generated", "questions", len(questions))
	c.emit(evs...)
	return nil
}

// RecordAnswer sets the answer for a question. A blank answer removes it.
func (c *Controller) RecordAnswer(questionID int, answer string) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()

	c.mu.Lock()
	var rejection error
	if c.st.view != ViewAssessment {
		rejection = &ValidationError{Field: "view", Message: "answers can only be recorded during the assessment"}
	} else if q, ok := c.st.question(questionID); !ok {
		rejection = &ValidationError{Field: "question_id", Message: fmt.Sprintf("question %d does not exist", questionID)}
	} else if strings.TrimSpace(answer) == "" {
		delete(c.st.answers, questionID)
	} else if err := q.AcceptsAnswer(answer); err != nil {
		rejection = &ValidationError{Field: "answer", Message: err.Error()}
	} else {
		c.st.answers[questionID] = answer
	}
	c.mu.Unlock()

	if rejection != nil {
		return c.reject(rejection)
	}
	return nil
}

// SubmitAssessment evaluates the complete answer set and shows the result
func (c *Controller) SubmitAssessment(ctx context.Context) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()

	c.mu.Lock()
	if c.st.view != ViewAssessment || len(c.st.questions) == 0 {
		c.mu.Unlock()
		return c.reject(&ValidationError{Field: "view", Message: "there is no assessment in progress"})
	}
	if missing := c.st.answers.Missing(c.st.questions); len(missing) > 0 {
		c.mu.Unlock()
		return c.reject(&ValidationError{
			Field:   "answers",
			Message: fmt.Sprintf("please answer every question before submitting (%d unanswered)", len(missing)),
		})
	}
	profile := c.st.profile
	questions := c.st.questions
	answers := c.st.answers.Clone()
	busy := c.markBusyLocked(LabelEvaluate)
	c.mu.Unlock()
	c.emit(busy)

	result, err := c.engines.Assessor.Evaluate(ctx, profile, questions, answers)
	if err != nil {
		return c.fail("evaluate assessment", "Could not evaluate the assessment. Please try again.", err)
	}

	c.mu.Lock()
	c.st.result = result
	c.st.submitted = answers
	evs := c.changeViewLocked(ViewAssessmentResult)
	c.mu.Unlock()

	c.log.Info("assessment evaluated", "score", result.Score, "weak_areas", len(result.WeakAreas))
	c.emit(evs...)
	return nil
}
