package types

import "github.com/go-playground/validator/v10"

// validate is shared by every Validate method; validator caches struct metadata internally
var validate = validator.New()

// Validator exposes the shared validator for packages that validate decoded engine output
func Validator() *validator.Validate {
	return validate
}
