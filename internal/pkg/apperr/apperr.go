package apperr

import (
	"errors"
	"fmt"
)

// Sentinel categories. Concrete errors wrap one of these so callers can
// classify with errors.Is without depending on message text.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidState       = errors.New("invalid state")
	ErrValidation         = errors.New("validation error")
	ErrExternalCapability = errors.New("external capability error")
)

type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Unwrap() error {
	return e.kind
}

// NotFound reports a missing entity, e.g. NotFound("poem").
func NotFound(entity string) error {
	return &Error{kind: ErrNotFound, message: entity + " not found"}
}

// InvalidState reports an operation attempted outside its required lifecycle
// state. The message names the state the operation needed.
func InvalidState(format string, args ...interface{}) error {
	return &Error{kind: ErrInvalidState, message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) error {
	return &Error{kind: ErrValidation, message: fmt.Sprintf(format, args...)}
}

// ExternalCapability wraps a collaborator failure (generation, transcription,
// storage) so the state machine can distinguish it from its own violations.
func ExternalCapability(op string, cause error) error {
	return &Error{kind: ErrExternalCapability, message: fmt.Sprintf("%s: %v", op, cause)}
}
