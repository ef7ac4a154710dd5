package registrar

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of a flow-control error
type ErrorType int

const (
	// ErrTypeNotRunning indicates an operation that needs a running node was
	// called before the first Get
	ErrTypeNotRunning ErrorType = iota
	// ErrTypeNoActiveBranch indicates Merge outside of a branch
	ErrTypeNoActiveBranch
	// ErrTypeInvalidMergeTarget indicates a merge key that is not in the
	// branch snapshot
	ErrTypeInvalidMergeTarget
	// ErrTypeInvalidSkipTarget indicates a skip key that is not pending
	ErrTypeInvalidSkipTarget
	// ErrTypeNothingToSkip indicates Skip with no pending node
	ErrTypeNothingToSkip
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNotRunning:
		return "Not Running"
	case ErrTypeNoActiveBranch:
		return "No Active Branch"
	case ErrTypeInvalidMergeTarget:
		return "Invalid Merge Target"
	case ErrTypeInvalidSkipTarget:
		return "Invalid Skip Target"
	case ErrTypeNothingToSkip:
		return "Nothing To Skip"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// FlowError is returned by registrar operations that cannot be applied to
// the current position. It is a programming error in the calling hook and is
// never retried.
type FlowError struct {
	Type    ErrorType
	Message string
	Running Key
	Target  Key
}

// Error implements the error interface
func (e *FlowError) Error() string {
	if e.Target != None {
		return fmt.Sprintf("%s: %s (running %d, target %d)", e.Type, e.Message, e.Running, e.Target)
	}
	return fmt.Sprintf("%s: %s (running %d)", e.Type, e.Message, e.Running)
}

func newFlowError(t ErrorType, running, target Key, format string, args ...any) *FlowError {
	return &FlowError{
		Type:    t,
		Message: fmt.Sprintf(format, args...),
		Running: running,
		Target:  target,
	}
}

// IsFlowError checks if an error is any registrar error
func IsFlowError(err error) bool {
	var fe *FlowError
	return errors.As(err, &fe)
}

// IsNoActiveBranch checks if an error reports a merge outside a branch
func IsNoActiveBranch(err error) bool {
	return hasType(err, ErrTypeNoActiveBranch)
}

// IsInvalidTarget checks if an error reports a bad merge or skip key
func IsInvalidTarget(err error) bool {
	return hasType(err, ErrTypeInvalidMergeTarget) || hasType(err, ErrTypeInvalidSkipTarget)
}

func hasType(err error, t ErrorType) bool {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe.Type == t
	}
	return false
}
