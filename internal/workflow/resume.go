package workflow

import (
	"context"
	"errors"
	"strings"

	"github.com/23bam037-tech/HITHESH-P-H/internal/document"
	"github.com/23bam037-tech/HITHESH-P-H/internal/types"
)

// SetResumeText replaces the resume text from manual entry and returns to edit mode.
// An empty text clears the resume.
func (c *Controller) SetResumeText(text string) {
	c.mu.Lock()
	c.st.resumeText = text
	c.st.resumeMode = ResumeEdit
	c.mu.Unlock()
}

// SetResumeMode switches between editing and the audit result
func (c *Controller) SetResumeMode(mode ResumeMode) error {
	c.mu.Lock()
	if mode == ResumeResult && c.st.resumeAnalysis == nil {
		c.mu.Unlock()
		return c.reject(&ValidationError{Field: "mode", Message: "audit the resume before viewing results"})
	}
	c.st.resumeMode = mode
	c.mu.Unlock()
	return nil
}

// AnalyzeResume audits the current resume text and shows the result
func (c *Controller) AnalyzeResume(ctx context.Context) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()

	c.mu.Lock()
	text := c.st.resumeText
	if strings.TrimSpace(text) == "" {
		c.mu.Unlock()
		return c.reject(&ValidationError{Field: "resume", Message: "paste or upload a resume first"})
	}
	busy := c.markBusyLocked(LabelAnalyzeResume)
	c.mu.Unlock()
	c.emit(busy)

	analysis, err := c.engines.Resume.AnalyzeResume(ctx, text)
	if err != nil {
		return c.fail("analyze resume", "Could not audit the resume. Please try again.", err)
	}

	c.mu.Lock()
	c.st.resumeAnalysis = analysis
	c.st.resumeMode = ResumeResult
	c.mu.Unlock()

	c.log.Info("resume audited", "score", analysis.Score)
	return nil
}

// optimizationTargetLocked picks the selected career, then the career goal, then the default label
func (c *Controller) optimizationTargetLocked() string {
	if c.st.selected != "" {
		return c.st.selected
	}
	if goal := strings.TrimSpace(c.st.profile.CareerGoal); goal != "" {
		return goal
	}
	return types.DefaultOptimizationTarget
}

// OptimizeResume rewrites the current resume for the optimization target
func (c *Controller) OptimizeResume(ctx context.Context) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()

	c.mu.Lock()
	text := c.st.resumeText
	if strings.TrimSpace(text) == "" {
		c.mu.Unlock()
		return c.reject(&ValidationError{Field: "resume", Message: "paste or upload a resume first"})
	}
	target := c.optimizationTargetLocked()
	busy := c.markBusyLocked(LabelOptimizeResume)
	c.mu.Unlock()
	c.emit(busy)

	opt, err := c.engines.Resume.OptimizeResume(ctx, text, target)
	if err != nil {
		return c.fail("optimize resume", "Could not optimize the resume. Please try again.", err)
	}
	if opt.Target == "" {
		opt.Target = target
	}

	c.mu.Lock()
	c.st.optimization = opt
	c.mu.Unlock()

	c.log.Info("resume optimized", "target", target)
	c.notify(LevelSuccess, "Resume optimized for "+target+".")
	return nil
}

// UploadResume extracts text from an uploaded document and opens it in the resume editor
func (c *Controller) UploadResume(ctx context.Context, data []byte, name string) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()

	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	busy := c.markBusyLocked(LabelExtract)
	c.mu.Unlock()
	c.emit(busy)

	text, err := c.engines.Extractor.Extract(data, name)
	if err != nil {
		c.log.Warn("document extraction failed", "name", name, "error", err)
		c.notify(LevelError, extractionMessage(err))
		return err
	}

	c.mu.Lock()
	c.st.resumeText = text
	c.st.resumeMode = ResumeEdit
	evs := c.changeViewLocked(ViewResume)
	c.mu.Unlock()

	c.emit(evs...)
	return nil
}

func extractionMessage(err error) string {
	var unsupported *document.UnsupportedDocumentError
	switch {
	case errors.As(err, &unsupported):
		return "Only PDF documents can be uploaded."
	case errors.Is(err, document.ErrEmptyDocument):
		return "No text could be found in the document. Try pasting the resume instead."
	default:
		return "The document could not be read. It may be corrupt."
	}
}

// CopyOptimizedResume returns the optimized text for the clipboard and confirms it
func (c *Controller) CopyOptimizedResume() (string, error) {
	c.mu.Lock()
	opt := c.st.optimization
	c.mu.Unlock()

	if opt == nil {
		return "", c.reject(&ValidationError{Field: "optimization", Message: "optimize the resume before copying it"})
	}
	c.notify(LevelSuccess, "Optimized resume copied to clipboard.")
	return opt.OptimizedText, nil
}

// PrintableResume returns the optimized text, or the raw resume text when no
// optimization exists.
func (c *Controller) PrintableResume() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.st.optimization != nil && c.st.optimization.OptimizedText != "" {
		return c.st.optimization.OptimizedText, nil
	}
	if strings.TrimSpace(c.st.resumeText) != "" {
		return c.st.resumeText, nil
	}
	return "", &ValidationError{Field: "resume", Message: "there is no resume to print"}
}
