package store

import (
	"errors"
	"fmt"
)

// ErrIO marks failures of the filesystem itself, as opposed to documents
// that were read fine but could not be decoded.
var ErrIO = errors.New("i/o failure")

// PathError records a failed filesystem operation on a task file.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Is matches ErrIO.
func (e *PathError) Is(target error) bool {
	return target == ErrIO
}

// Unwrap returns the underlying error.
func (e *PathError) Unwrap() error {
	return e.Err
}

func ioError(op, path string, err error) error {
	return &PathError{Op: op, Path: path, Err: err}
}
