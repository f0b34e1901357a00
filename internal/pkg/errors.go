package pkg

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound             = errors.New("record not found")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrStorage              = errors.New("storage failure")
)

// ValidationError rejected client input. Field may be empty for
// whole-request problems.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}

func NewValidationError(field, format string, args ...any) error {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// StorageError blob backend failure for op ("put", "delete").
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }
