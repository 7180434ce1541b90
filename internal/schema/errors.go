package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Common sentinel errors
var (
	// ErrUnknownKind is returned when a kind is not declared in the registry
	ErrUnknownKind = errors.New("unknown entity kind")

	// ErrInvalid is returned when a payload fails validation
	ErrInvalid = errors.New("invalid document")
)

// UnknownKindError reports a request against a kind the registry does not define.
type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown entity kind %q", e.Kind)
}

func (e *UnknownKindError) Is(target error) bool {
	return target == ErrUnknownKind
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field that failed, not just the first,
// so callers can report all problems at once.
type ValidationError struct {
	Kind   string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("validation failed for kind %q: %s", e.Kind, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

// IsUnknownKind checks if an error is an unknown kind error
func IsUnknownKind(err error) bool {
	return errors.Is(err, ErrUnknownKind)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalid)
}
