package engines

import (
	"fmt"
	"strings"
)

// APICallError represents a failure of the model provider call itself
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents a response that is empty or not valid JSON
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ShapeError represents well-formed JSON that does not match the declared shape
type ShapeError struct {
	Message string
	Fields  []string
	Cause   error
}

func (e *ShapeError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("shape error: %s (%s)", e.Message, strings.Join(e.Fields, ", "))
	}
	return fmt.Sprintf("shape error: %s", e.Message)
}

func (e *ShapeError) Unwrap() error {
	return e.Cause
}
