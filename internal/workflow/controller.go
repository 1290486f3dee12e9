// Package workflow implements the career-guidance journey as a state machine.
//
// A Controller owns the render state of one session and exposes typed operations.
// Primary operations (assessment generation and evaluation, recommendations,
// resume audit and rewrite, document extraction) are single-flight: a second one
// while another is outstanding fails with ErrBusy. The career analysis runs in
// the background and commits only if it still matches the latest request.
package workflow

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/23bam037-tech/HITHESH-P-H/internal/events"
	"github.com/23bam037-tech/HITHESH-P-H/internal/types"
)

// Config holds optional controller settings
type Config struct {
	SessionID string
	Publisher events.Publisher
	Logger    *slog.Logger
	Clock     func() time.Time
}

// Controller drives one session through the journey
type Controller struct {
	id      string
	engines Engines
	pub     events.Publisher
	log     *slog.Logger
	now     func() time.Time

	// flight is the primary operation token
	flight *semaphore.Weighted

	ctx    context.Context
	cancel context.CancelFunc
	bg     sync.WaitGroup

	mu     sync.Mutex
	st     state
	closed bool
}

// New creates a controller in the form view
func New(engines Engines, cfg Config) *Controller {
	if cfg.Publisher == nil {
		cfg.Publisher = events.Discard{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		id:      cfg.SessionID,
		engines: engines,
		pub:     cfg.Publisher,
		log:     cfg.Logger.With("session_id", cfg.SessionID),
		now:     cfg.Clock,
		flight:  semaphore.NewWeighted(1),
		ctx:     ctx,
		cancel:  cancel,
		st:      newState(),
	}
}

// ID returns the session id
func (c *Controller) ID() string { return c.id }

// acquire takes the primary token without blocking
func (c *Controller) acquire() error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return ErrClosed
	}
	if !c.flight.TryAcquire(1) {
		return ErrBusy
	}
	return nil
}

// release clears the busy label and returns the primary token
func (c *Controller) release() {
	c.mu.Lock()
	wasBusy := c.st.busy != ""
	c.st.busy = ""
	view := c.st.view
	c.mu.Unlock()

	c.flight.Release(1)
	if wasBusy {
		c.emit(events.Event{Type: events.Idle, View: string(view)})
	}
}

// markBusyLocked sets the busy label and returns the event announcing it
func (c *Controller) markBusyLocked(label string) events.Event {
	c.st.busy = label
	return events.Event{Type: events.Busy, View: string(c.st.view), Message: label}
}

func (c *Controller) emit(evs ...events.Event) {
	for _, ev := range evs {
		ev.SessionID = c.id
		if ev.At.IsZero() {
			ev.At = c.now()
		}
		c.pub.Publish(ev)
	}
}

func (c *Controller) notifyLocked(level Level, message string) events.Event {
	n := &Notification{Level: level, Message: message, At: c.now()}
	c.st.notification = n
	return events.Event{Type: events.Notification, View: string(c.st.view), Message: message, Data: n, At: n.At}
}

func (c *Controller) notify(level Level, message string) {
	c.mu.Lock()
	ev := c.notifyLocked(level, message)
	c.mu.Unlock()
	c.emit(ev)
}

// reject records a warning for a failed guard and returns err
func (c *Controller) reject(err error) error {
	c.log.Debug("operation rejected", "error", err)
	c.notify(LevelWarning, userMessage(err))
	return err
}

// fail records a blocking error notification for a failed engine call
func (c *Controller) fail(operation, message string, err error) error {
	c.log.Error("engine call failed", "operation", operation, "error", err)
	c.notify(LevelError, message)
	return &EngineError{Operation: operation, Err: err}
}

func userMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var te *TransitionError
	if errors.As(err, &te) {
		return te.Reason
	}
	return err.Error()
}

// changeViewLocked moves to view and returns the event for it, if any
func (c *Controller) changeViewLocked(view View) []events.Event {
	if c.st.view == view {
		return nil
	}
	c.st.view = view
	return []events.Event{{Type: events.ViewChanged, View: string(view)}}
}

// Navigate moves to another view when its data is available
func (c *Controller) Navigate(to View) error {
	c.mu.Lock()
	from := c.st.view
	var reason string
	switch to {
	case ViewForm, ViewResume, ViewChat:
	case ViewAssessment:
		if len(c.st.questions) == 0 {
			reason = "no assessment has been generated yet"
		}
	case ViewAssessmentResult:
		if c.st.result == nil {
			reason = "the assessment has not been evaluated yet"
		}
	case ViewDashboard:
		if len(c.st.recommendations) == 0 {
			reason = "no career recommendations are available yet"
		}
	default:
		reason = "unknown view"
	}
	if reason != "" {
		c.mu.Unlock()
		return c.reject(&TransitionError{From: from, To: to, Reason: reason})
	}
	evs := c.changeViewLocked(to)
	c.mu.Unlock()

	c.emit(evs...)
	return nil
}

// UpdateProfile replaces the profile while the form is shown
func (c *Controller) UpdateProfile(p types.Profile) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()

	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return c.reject(&ValidationError{Field: "experienceLevel", Message: "experience level must be one of the offered options"})
	}

	c.mu.Lock()
	if c.st.view != ViewForm {
		c.mu.Unlock()
		return c.reject(&ValidationError{Field: "profile", Message: "the profile can only be edited on the profile form"})
	}
	c.st.profile = p
	c.mu.Unlock()
	return nil
}

// WaitBackground blocks until background analysis work has finished
func (c *Controller) WaitBackground() {
	c.bg.Wait()
}

// Close cancels background work, waits for it and forgets the chat session
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.bg.Wait()

	if c.engines.Assistant != nil {
		if err := c.engines.Assistant.Forget(context.Background(), c.id); err != nil {
			c.log.Warn("failed to forget assistant session", "error", err)
			return err
		}
	}
	return nil
}
