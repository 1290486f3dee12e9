package workflow

import (
	"errors"
	"fmt"
)

// ErrBusy is returned when a primary operation is already in flight
var ErrBusy = errors.New("another operation is in progress")

// ErrClosed is returned by operations on a closed controller
var ErrClosed = errors.New("workflow session is closed")

// ValidationError is a failed guard. No engine call was made and state is unchanged.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// TransitionError is a view change whose guard failed
type TransitionError struct {
	From   View
	To     View
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move from %s to %s: %s", e.From, e.To, e.Reason)
}

// EngineError wraps a failed engine call of a workflow operation
type EngineError struct {
	Operation string
	Err       error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}
