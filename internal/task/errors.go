package task

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedDocument means the bytes could not be parsed at all.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrSchemaViolation means the document parsed but has the wrong shape.
	ErrSchemaViolation = errors.New("schema violation")
	// ErrInvalidDate means a date string is not a valid calendar date.
	ErrInvalidDate = errors.New("invalid date")
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // dotted path to the offending field
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// DateError is returned for strings that are not YYYY-MM-DD calendar dates.
type DateError struct {
	Value string
	Err   error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date %q (use YYYY-MM-DD)", e.Value)
}

// Is matches ErrInvalidDate.
func (e *DateError) Is(target error) bool {
	return target == ErrInvalidDate
}

// Unwrap returns the parse error.
func (e *DateError) Unwrap() error {
	return e.Err
}

// DocumentError reports why a document could not be turned into a Task.
// Kind is one of ErrMalformedDocument, ErrSchemaViolation or ErrInvalidDate.
type DocumentError struct {
	Kind error
	Errs []error
}

func (e *DocumentError) Error() string {
	if len(e.Errs) == 0 {
		return e.Kind.Error()
	}
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%s: %s", e.Kind, strings.Join(msgs, "; "))
}

// Unwrap exposes Kind and the individual errors to errors.Is and errors.As.
func (e *DocumentError) Unwrap() []error {
	return append([]error{e.Kind}, e.Errs...)
}

func malformed(err error) *DocumentError {
	return &DocumentError{Kind: ErrMalformedDocument, Errs: []error{err}}
}

func violation(errs ...error) *DocumentError {
	return &DocumentError{Kind: ErrSchemaViolation, Errs: errs}
}
