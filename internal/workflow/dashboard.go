package workflow

import (
	"context"
	"fmt"

	"github.com/23bam037-tech/HITHESH-P-H/internal/events"
	"github.com/23bam037-tech/HITHESH-P-H/internal/types"
)

// ProceedToDashboard fetches career recommendations, selects the top one and starts
// its analysis in the background. An empty result keeps the current view.
func (c *Controller) ProceedToDashboard(ctx context.Context) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()

	c.mu.Lock()
	if c.st.result == nil {
		c.mu.Unlock()
		return c.reject(&ValidationError{Field: "assessment", Message: "complete the assessment before viewing career matches"})
	}
	profile := c.st.profile
	busy := c.markBusyLocked(LabelRecommend)
	c.mu.Unlock()
	c.emit(busy)

	recs, err := c.engines.Recommender.Recommend(ctx, profile)
	if err != nil {
		return c.fail("recommend careers", "Could not fetch career recommendations. Please try again.", err)
	}
	if len(recs) == 0 {
		c.log.Warn("recommendation engine returned no careers")
		c.notify(LevelWarning, "No career matches were found for your profile. Please try again.")
		return nil
	}

	c.mu.Lock()
	c.st.recommendations = recs
	c.st.selected = recs[0].Name
	evs := c.changeViewLocked(ViewDashboard)
	if ev, ok := c.startAnalysisLocked(); ok {
		evs = append(evs, ev)
	}
	c.mu.Unlock()

	c.log.Info("recommendations ready", "count", len(recs), "selected", recs[0].Name)
	c.emit(evs...)
	return nil
}

// SelectCareer switches the selected career and reloads its analysis.
// Reselecting the current career only reloads when its analysis failed.
func (c *Controller) SelectCareer(name string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.st.view != ViewDashboard {
		c.mu.Unlock()
		return c.reject(&ValidationError{Field: "view", Message: "careers can only be selected from the dashboard"})
	}
	if !c.st.recommended(name) {
		c.mu.Unlock()
		return c.reject(&ValidationError{Field: "career", Message: fmt.Sprintf("%q is not one of the recommended careers", name)})
	}
	if name == c.st.selected && (c.st.analysisStatus == AnalysisLoading || c.st.analysisStatus == AnalysisReady) {
		c.mu.Unlock()
		return nil
	}
	c.st.selected = name
	ev, ok := c.startAnalysisLocked()
	c.mu.Unlock()

	if !ok {
		return ErrClosed
	}
	c.emit(ev)
	return nil
}

// RetryAnalysis re-issues the analysis for the selected career
func (c *Controller) RetryAnalysis() error {
	c.mu.Lock()
	if c.st.selected == "" {
		c.mu.Unlock()
		return c.reject(&ValidationError{Field: "career", Message: "no career is selected"})
	}
	ev, ok := c.startAnalysisLocked()
	c.mu.Unlock()

	if !ok {
		return ErrClosed
	}
	c.emit(ev)
	return nil
}

// startAnalysisLocked discards the current analysis and starts a new request for
// the selected career. It reports false when the controller is closed.
func (c *Controller) startAnalysisLocked() (events.Event, bool) {
	if c.closed {
		return events.Event{}, false
	}
	c.st.analysisGen++
	gen := c.st.analysisGen
	career := c.st.selected
	profile := c.st.profile

	c.st.analysis = nil
	c.st.analysisStatus = AnalysisLoading

	c.bg.Add(1)
	go c.runAnalysis(gen, career, profile)

	return events.Event{Type: events.AnalysisLoading, View: string(c.st.view), Message: career}, true
}

// runAnalysis commits the result only if gen is still the latest request and
// career is still selected. Failures are logged, not notified.
func (c *Controller) runAnalysis(gen uint64, career string, profile types.Profile) {
	defer c.bg.Done()

	analysis, err := c.engines.Analyst.Analyze(c.ctx, career, profile)

	c.mu.Lock()
	if gen != c.st.analysisGen || career != c.st.selected {
		latest := c.st.analysisGen
		c.mu.Unlock()
		c.log.Debug("discarding stale analysis", "career", career, "generation", gen, "latest", latest, "failed", err != nil)
		return
	}
	if err != nil {
		c.st.analysisStatus = AnalysisFailed
		view := c.st.view
		c.mu.Unlock()
		c.log.Warn("background analysis failed", "career", career, "error", err)
		c.emit(events.Event{Type: events.AnalysisFailed, View: string(view), Message: career})
		return
	}
	c.st.analysis = analysis
	c.st.analysisStatus = AnalysisReady
	view := c.st.view
	c.mu.Unlock()

	c.log.Info("analysis ready", "career", career)
	c.emit(events.Event{Type: events.AnalysisReady, View: string(view), Message: career})
}
