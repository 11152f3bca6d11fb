package models

import "errors"

// Error kinds for failures the operator can correct.
var (
	ErrInvalidFormat         = errors.New("invalid format")
	ErrNotFound              = errors.New("not found")
	ErrInsufficientArguments = errors.New("insufficient arguments")
)

// UserError is a failure whose Message is meant to be shown to the operator.
// It unwraps to its Kind, one of the Err* sentinels above.
type UserError struct {
	Kind    error
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Kind
}

// NewInvalidFormatError returns a UserError of kind ErrInvalidFormat.
func NewInvalidFormatError(message string) error {
	return &UserError{Kind: ErrInvalidFormat, Message: message}
}

// NewNotFoundError returns a UserError of kind ErrNotFound.
func NewNotFoundError(message string) error {
	return &UserError{Kind: ErrNotFound, Message: message}
}

// NewInsufficientArgumentsError returns a UserError of kind ErrInsufficientArguments.
func NewInsufficientArgumentsError(message string) error {
	return &UserError{Kind: ErrInsufficientArguments, Message: message}
}
