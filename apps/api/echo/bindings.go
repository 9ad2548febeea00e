package echoapi

import (
	"github.com/trezcool/investigacion/core"
)

const requiredText = "this field is required"

// errMissingIdentity reports a body-addressed request lacking the identity field.
func errMissingIdentity(field string) error {
	return core.NewValidationError(nil, core.FieldError{Field: field, Error: requiredText})
}
