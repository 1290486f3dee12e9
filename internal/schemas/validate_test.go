package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var careerSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":        map[string]any{"type": "string"},
			"fitScore":    map[string]any{"type": "number"},
			"demandLevel": map[string]any{"type": "string", "enum": []any{"Low", "Medium", "High"}},
		},
		"required": []string{"name", "fitScore"},
	},
}

func TestValidate_Valid(t *testing.T) {
	err := Validate(careerSchema, `[{"name": "Data Scientist", "fitScore": 91, "demandLevel": "High"}]`)
	assert.NoError(t, err)
}

func TestValidate_MissingField(t *testing.T) {
	err := Validate(careerSchema, `[{"name": "Data Scientist"}]`)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
	assert.Len(t, validationErr.Errors, 1)
	assert.Contains(t, validationErr.Error(), "fitScore")
}

func TestValidate_WrongType(t *testing.T) {
	err := Validate(careerSchema, `{"name": "Data Scientist"}`)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, []string{"(root)"}, validationErr.Fields())
}

func TestValidate_EnumViolation(t *testing.T) {
	err := Validate(careerSchema, `[{"name": "x", "fitScore": 1, "demandLevel": "Extreme"}]`)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, []string{"0.demandLevel"}, validationErr.Fields())
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(careerSchema, `[{"name": `)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.NotNil(t, errors.Unwrap(loadErr))
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type": "object", "required": ["score"], "properties": {"score": {"type": "number"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"score": 80}`))
	assert.Error(t, ValidateJSONString(schema, `{"score": "high"}`))
	assert.Error(t, ValidateJSONString(schema, `{}`))
}

func TestValidationError_Format(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "score", Message: "Invalid type"},
		{Field: "(root)", Message: "summary is required"},
	}}

	assert.Equal(t, "validation failed:\n  1. score: Invalid type\n  2. (root): summary is required\n", err.Error())
}
