package llm

import (
	"encoding/json"
	"fmt"
)

// Type is a schema value type
type Type string

// Schema value types
const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

// Schema declares the shape of a structured response.
// It converts to each provider's schema type and to JSON Schema for local validation.
type Schema struct {
	Type        Type
	Description string
	Enum        []string
	Nullable    bool
	Items       *Schema
	Properties  map[string]*Schema
	Required    []string
}

// String returns a string schema
func String(description string) *Schema {
	return &Schema{Type: TypeString, Description: description}
}

// Number returns a number schema
func Number(description string) *Schema {
	return &Schema{Type: TypeNumber, Description: description}
}

// Integer returns an integer schema
func Integer(description string) *Schema {
	return &Schema{Type: TypeInteger, Description: description}
}

// Enum returns a string schema restricted to values
func Enum(description string, values ...string) *Schema {
	return &Schema{Type: TypeString, Description: description, Enum: values}
}

// ArrayOf returns an array schema of items
func ArrayOf(items *Schema) *Schema {
	return &Schema{Type: TypeArray, Items: items}
}

// Object returns an object schema. Every property listed in required must exist.
func Object(properties map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: TypeObject, Properties: properties, Required: required}
}

// OrNull returns a copy of the schema that also accepts null
func (s *Schema) OrNull() *Schema {
	c := *s
	c.Nullable = true
	return &c
}

// JSONSchema renders the schema as a JSON Schema (draft 4 compatible) document
func (s *Schema) JSONSchema() map[string]any {
	if s == nil {
		return map[string]any{}
	}
	out := map[string]any{}
	if s.Nullable {
		out["type"] = []string{string(s.Type), "null"}
	} else {
		out["type"] = string(s.Type)
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		enum := make([]any, 0, len(s.Enum)+1)
		for _, v := range s.Enum {
			enum = append(enum, v)
		}
		if s.Nullable {
			enum = append(enum, nil)
		}
		out["enum"] = enum
	}
	if s.Items != nil {
		out["items"] = s.Items.JSONSchema()
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, p := range s.Properties {
			props[name] = p.JSONSchema()
		}
		out["properties"] = props
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
	}
	return out
}

// JSON returns the JSON Schema document as indented text
func (s *Schema) JSON() (string, error) {
	data, err := json.MarshalIndent(s.JSONSchema(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema: %w", err)
	}
	return string(data), nil
}

// WithShapeInstruction appends the declared shape to a prompt.
// Used when the provider cannot enforce a response schema in the same call.
func WithShapeInstruction(prompt string, schema *Schema) string {
	if schema == nil {
		return prompt
	}
	doc, err := schema.JSON()
	if err != nil {
		return prompt
	}
	return prompt + "\n\nReturn ONLY valid JSON matching this JSON Schema:\n" + doc +
		"\n\nIMPORTANT:\n- Return ONLY the JSON value, no markdown, no explanation, no code blocks.\n"
}
