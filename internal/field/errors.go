package field

import (
	"errors"
	"fmt"
)

var (
	// ErrInterrupted is returned by Interact when the user presses Ctrl-C or
	// the surface is closed underneath the loop
	ErrInterrupted = errors.New("interrupted")

	// ErrEventStream wraps errors reported by the terminal surface
	ErrEventStream = errors.New("terminal event stream failed")

	// ErrNotGated is returned by Update.Next once the handler no longer
	// holds the gate
	ErrNotGated = errors.New("update handler does not hold the gate")
)

// HookError reports a mount, unmount or update hook that returned an error.
// It is fatal to the run.
type HookError struct {
	Field string
	Phase string
	Err   error
}

// Error implements the error interface
func (e *HookError) Error() string {
	return fmt.Sprintf("%s hook of field %q: %v", e.Phase, e.Field, e.Err)
}

// Unwrap returns the underlying error
func (e *HookError) Unwrap() error {
	return e.Err
}

// IsHookError checks if an error came from a field hook
func IsHookError(err error) bool {
	var he *HookError
	return errors.As(err, &he)
}
