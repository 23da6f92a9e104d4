package errors

import (
	goerrors "errors"
	"fmt"
)

// New returns an error with the given message.
func New(msg string) error {
	return goerrors.New(msg)
}

// ContextError wraps an error with a short description of the operation that
// failed. The description should make sense when read as "failed to <context>".
type ContextError struct {
	Context string
	Err     error
}

func (err ContextError) Error() string {
	return err.Context + ": " + err.Err.Error()
}

func (err ContextError) Unwrap() error {
	return err.Err
}

// WithContext annotates err with the operation that produced it.
func WithContext(err error, context string) error {
	return ContextError{Context: context, Err: err}
}

// friendlyError is an error that can be printed directly to the user without
// any additional context.
type friendlyError interface {
	FriendlyMessage() string
}

// FriendlyError is the most basic implementation of friendlyError.
type FriendlyError struct {
	Message string
}

func (err FriendlyError) Error() string {
	return err.Message
}

func (err FriendlyError) FriendlyMessage() string {
	return err.Message
}

// NewFriendlyError creates a new FriendlyError with the given message.
func NewFriendlyError(format string, args ...interface{}) error {
	return FriendlyError{Message: fmt.Sprintf(format, args...)}
}

// GetPrintableMessage returns the message that should be shown to the user
// for the given error.
func GetPrintableMessage(err error) string {
	if friendly, ok := err.(friendlyError); ok {
		return friendly.FriendlyMessage()
	}
	return err.Error()
}
