package simengine

import (
	"fmt"
	"strings"
)

// ValidationError collects every field-level problem found while
// validating a SimulationRequest, so a caller sees all of them at once
// instead of stopping at the first.
type ValidationError struct {
	Fields []FieldError
}

// FieldError names one invalid field and why.
type FieldError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Reason)
	}
	return "simengine: invalid request (" + strings.Join(parts, "; ") + ")"
}

// Unwrap exposes each field error as its own error value, in the
// multi-error Unwrap() []error form that errors.Is/As walk.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Fields))
	for i, f := range e.Fields {
		errs[i] = fmt.Errorf("%s: %s", f.Field, f.Reason)
	}
	return errs
}

func (e *ValidationError) add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

func (e *ValidationError) nilIfEmpty() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
