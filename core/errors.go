package core

import "github.com/pkg/errors"

var (
	// ErrNotFound is returned when no record holds the requested identity value.
	ErrNotFound = errors.New("record not found")

	// ErrBackendUnavailable wraps every transport or credential failure of the spreadsheet.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrConflict is returned when a row changed between the lookup scan and the write.
	ErrConflict = errors.New("record was modified concurrently")

	// ErrNonUniqueIdentity flags identity values held by more than one row.
	ErrNonUniqueIdentity = errors.New("identity value is not unique")

	// ErrIdentityTaken is returned when a create or a rename targets an identity value already held.
	ErrIdentityTaken = errors.New("identity value already in use")
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}

// IsNotFound reports whether err was caused by ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrNotFound
}

// IsIdentityTaken reports whether err was caused by ErrIdentityTaken.
func IsIdentityTaken(err error) bool {
	return errors.Cause(err) == ErrIdentityTaken
}

// IsBackendUnavailable reports whether err was caused by ErrBackendUnavailable.
func IsBackendUnavailable(err error) bool {
	return errors.Cause(err) == ErrBackendUnavailable
}
