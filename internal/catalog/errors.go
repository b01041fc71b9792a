package catalog

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package unwraps to exactly one of them.
var (
	ErrValidation    = errors.New("validation error")
	ErrState         = errors.New("invalid state")
	ErrType          = errors.New("type error")
	ErrNotFound      = errors.New("not found")
	ErrLimitExceeded = errors.New("limit exceeded")
	ErrDuplicate     = errors.New("duplicate")
)

// Error is a catalog failure with a human readable message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
