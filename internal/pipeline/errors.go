package pipeline

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures. Every error surfaced to callers is
// exactly one of these kinds; nothing internal propagates un-translated.
type ErrorKind string

const (
	// KindValidation - required input missing; no external call attempted
	KindValidation ErrorKind = "validation_error"

	// KindPersistence - the audit log could not be written when it blocks the
	// primary flow
	KindPersistence ErrorKind = "persistence_error"

	// KindUpstream - the external model call itself failed
	KindUpstream ErrorKind = "upstream_error"

	// KindExtraction - the model responded but its output was not
	// recoverable as valid JSON
	KindExtraction ErrorKind = "extraction_failure"

	// KindSectionNotFound - the model JSON did not contain the requested
	// section under any recognized wrapper
	KindSectionNotFound ErrorKind = "section_not_found"

	// KindRender - the templating/printing engine failed
	KindRender ErrorKind = "render_error"
)

// Error is the single error type returned from pipeline entry points
type Error struct {
	Kind    ErrorKind
	Message string
	Section string // set for section_not_found
	Raw     string // raw model text, set for extraction failures
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// KindOf returns the pipeline error kind of err, or an empty kind if err is
// not a pipeline error
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
