// Package engines implements the generative engines: assessment authoring and evaluation,
// career recommendations, career analysis and resume review. Each engine declares its
// output shape, builds its prompt from the embedded catalog and turns the raw model
// response into typed, validated results.
package engines

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/23bam037-tech/HITHESH-P-H/internal/llm"
	"github.com/23bam037-tech/HITHESH-P-H/internal/schemas"
)

// call runs one request and decodes the response into T.
// Provider failures become APICallError, empty or malformed text ParseError,
// and output that does not match req.Schema ShapeError.
func call[T any](ctx context.Context, client llm.Client, operation string, req llm.Request) (T, error) {
	var out T

	raw, err := client.Generate(ctx, req)
	if err != nil {
		return out, &APICallError{Message: operation + " request failed", Cause: err}
	}

	text := llm.CleanJSONBlock(raw)
	if strings.TrimSpace(text) == "" {
		return out, &ParseError{Message: operation + ": empty response"}
	}

	if req.Schema != nil {
		if err := schemas.Validate(req.Schema.JSONSchema(), text); err != nil {
			var ve *schemas.ValidationError
			if errors.As(err, &ve) {
				return out, &ShapeError{Message: operation + " response does not match declared shape", Fields: ve.Fields(), Cause: err}
			}
			return out, &ParseError{Message: operation + ": response is not valid JSON", Cause: err}
		}
	}

	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return out, &ParseError{Message: operation + ": failed to parse JSON response", Cause: err}
	}
	return out, nil
}

// shapeError converts a struct validation failure into a ShapeError
func shapeError(operation string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ShapeError{Message: operation + ": " + err.Error(), Cause: err}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Namespace())
	}
	return &ShapeError{Message: operation + " response failed validation", Fields: fields, Cause: err}
}
