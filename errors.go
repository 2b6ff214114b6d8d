package apitour

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingParameter is returned when a required parameter has no value and no default
	ErrMissingParameter = errors.New("missing parameter")
	// ErrConstraintViolation is returned when a value breaks a declared constraint
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrSchemaValidation is returned when a value cannot be coerced to its declared shape
	ErrSchemaValidation = errors.New("schema validation failed")
	// ErrForbidden is returned when the supplied API token is missing or wrong
	ErrForbidden = errors.New("forbidden")
	// ErrMismatch is returned when two values that must be equal are not
	ErrMismatch = errors.New("mismatch")
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned when input validation fails outside of parameter resolution
	ErrInvalidInput = errors.New("invalid input")
)

// FieldError describes a single failed parameter. Kind is one of
// ErrMissingParameter, ErrConstraintViolation or ErrSchemaValidation.
type FieldError struct {
	Kind    error
	Source  Source
	Field   string // qualified path, e.g. "query.size" or "body.age"
	Rule    string // "required", "type", "gt", "pattern", ...
	Value   string // supplied raw value, empty when absent
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}

// ValidationError aggregates every failed parameter of a single resolution.
type ValidationError struct {
	Errors []*FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Unwrap exposes every field error so errors.Is matches any of their kinds.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, fe := range e.Errors {
		errs[i] = fe
	}
	return errs
}

func missing(src Source, name string) *FieldError {
	return &FieldError{
		Kind:    ErrMissingParameter,
		Source:  src,
		Field:   qualify(src, name),
		Rule:    "required",
		Message: "field required",
	}
}

func schemaError(field string, src Source, rule, value, msg string) *FieldError {
	return &FieldError{
		Kind:    ErrSchemaValidation,
		Source:  src,
		Field:   field,
		Rule:    rule,
		Value:   value,
		Message: msg,
	}
}

func qualify(src Source, name string) string {
	return src.String() + "." + name
}
