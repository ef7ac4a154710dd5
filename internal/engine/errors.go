package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/muurk/impromptu/internal/field"
)

// Error types for a form run

// ErrorType represents the category of error that ended a run
type ErrorType int

const (
	// ErrTypeTerminalInit indicates the terminal could not enter raw mode
	ErrTypeTerminalInit ErrorType = iota
	// ErrTypeEventStream indicates the terminal reported a read error
	ErrTypeEventStream
	// ErrTypeInterrupted indicates Ctrl-C, a closed surface or a cancelled
	// context
	ErrTypeInterrupted
	// ErrTypeHook indicates a mount, unmount or update hook returned an
	// error, including registrar misuse
	ErrTypeHook
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeTerminalInit:
		return "Terminal Init Error"
	case ErrTypeEventStream:
		return "Event Stream Error"
	case ErrTypeInterrupted:
		return "Interrupted"
	case ErrTypeHook:
		return "Hook Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error is a fatal run error. The terminal has already been restored when
// Start returns one.
type Error struct {
	Type    ErrorType // Category of error
	Message string    // Human-readable error message
	Field   string    // Field being served, if any
	Err     error     // Underlying error (if any)
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s (field %q)", msg, e.Field)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, msg)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// classify turns an error from a field into a run error
func classify(err error, name string) *Error {
	if err == nil {
		return nil
	}

	switch {
	case field.IsHookError(err):
		return &Error{Type: ErrTypeHook, Message: "hook failed", Field: name, Err: err}
	case errors.Is(err, field.ErrEventStream):
		return &Error{Type: ErrTypeEventStream, Message: "terminal read failed", Field: name, Err: err}
	case errors.Is(err, field.ErrInterrupted),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return &Error{Type: ErrTypeInterrupted, Message: "form interrupted", Field: name, Err: err}
	default:
		return &Error{Type: ErrTypeHook, Message: "field failed", Field: name, Err: err}
	}
}

// IsInterrupted checks if a run ended because the user interrupted it
func IsInterrupted(err error) bool {
	return hasType(err, ErrTypeInterrupted)
}

// IsHookError checks if a run ended because a hook failed
func IsHookError(err error) bool {
	return hasType(err, ErrTypeHook)
}

// IsTerminalError checks if a run ended because of the terminal itself
func IsTerminalError(err error) bool {
	return hasType(err, ErrTypeTerminalInit) || hasType(err, ErrTypeEventStream)
}

func hasType(err error, t ErrorType) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == t
	}
	return false
}
