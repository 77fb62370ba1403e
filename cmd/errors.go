package cmd

import (
	"errors"
	"fmt"

	"github.com/nibzard/tickler/internal/store"
	"github.com/nibzard/tickler/internal/task"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitUsage      = 2
	ExitValidation = 10
	ExitIO         = 20
)

// ErrCheckFailed is returned by check when at least one task file is invalid.
var ErrCheckFailed = errors.New("task files failed validation")

// UsageError is a mistake in how the command was invoked.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error.
func (e *UsageError) Unwrap() error { return e.Err }

func usageErrorf(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// FlagError is a flag value that parsed but is not acceptable.
type FlagError struct {
	Flag string
	Msg  string
	Err  error
}

func (e *FlagError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("--%s %s: %v", e.Flag, e.Msg, e.Err)
	}
	return fmt.Sprintf("--%s %s", e.Flag, e.Msg)
}

// Unwrap returns the underlying error.
func (e *FlagError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by Run to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var usage *UsageError
	var flagErr *FlagError
	var validation *task.ValidationError
	switch {
	case errors.As(err, &usage):
		return ExitUsage
	case errors.Is(err, store.ErrIO):
		return ExitIO
	case errors.As(err, &flagErr),
		errors.As(err, &validation),
		errors.Is(err, task.ErrMalformedDocument),
		errors.Is(err, task.ErrSchemaViolation),
		errors.Is(err, task.ErrInvalidDate),
		errors.Is(err, ErrCheckFailed):
		return ExitValidation
	}
	return ExitFailure
}
