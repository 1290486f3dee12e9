// Package server provides the HTTP API that drives career-guidance sessions.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/23bam037-tech/HITHESH-P-H/internal/document"
	"github.com/23bam037-tech/HITHESH-P-H/internal/export"
	"github.com/23bam037-tech/HITHESH-P-H/internal/session"
	"github.com/23bam037-tech/HITHESH-P-H/internal/workflow"
)

// ErrBadRequest indicates a request body or parameter that could not be read
type ErrBadRequest struct {
	Field   string
	Message string
}

func (e *ErrBadRequest) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("bad request: %s", e.Message)
	}
	return fmt.Sprintf("bad request: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		badRequest  *ErrBadRequest
		notFound    *session.NotFoundError
		validation  *workflow.ValidationError
		transition  *workflow.TransitionError
		engine      *workflow.EngineError
		unsupported *document.UnsupportedDocumentError
		extraction  *document.ExtractionError
		tooLarge    *http.MaxBytesError
		tmpl        *export.TemplateError
		render      *export.RenderError
	)

	switch {
	case errors.As(err, &badRequest):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, workflow.ErrBusy), errors.As(err, &transition):
		return http.StatusConflict
	case errors.Is(err, workflow.ErrClosed), errors.Is(err, session.ErrStoreClosed):
		return http.StatusGone
	case errors.As(err, &engine):
		return http.StatusBadGateway
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &unsupported), errors.As(err, &extraction), errors.Is(err, document.ErrEmptyDocument):
		return http.StatusUnprocessableEntity
	case errors.As(err, &tmpl):
		return http.StatusUnprocessableEntity
	case errors.As(err, &render):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
