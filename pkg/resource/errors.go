package resource

import (
	"errors"
	"fmt"
)

// Kind classifies why a resource could not be loaded.
type Kind string

const (
	// KindNotFound means the resource does not exist in storage.
	KindNotFound Kind = "not_found"

	// KindInvalidID means the identifier cannot be turned into a storage key.
	KindInvalidID Kind = "invalid_identifier"

	// KindReadFailure is any other storage-level failure.
	KindReadFailure Kind = "read_failure"

	// KindExecutionFailure means the unit of work loading the resource did
	// not run to completion (panic or goroutine exit).
	KindExecutionFailure Kind = "execution_failure"
)

// Sentinels for errors.Is. A *Error matches the sentinel of its kind.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidID        = errors.New("invalid resource identifier")
	ErrReadFailure      = errors.New("resource read failed")
	ErrExecutionFailure = errors.New("resource load did not complete")
)

// Error is a classified load failure for a single resource.
type Error struct {
	Kind    Kind
	ID      ID
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("resource %q: %s: %s: %v", e.ID, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("resource %q: %s: %s", e.ID, e.Kind, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error of the same kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (k Kind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindInvalidID:
		return ErrInvalidID
	case KindReadFailure:
		return ErrReadFailure
	case KindExecutionFailure:
		return ErrExecutionFailure
	default:
		return nil
	}
}

// KindOf returns the kind of a classified error. Unclassified non-nil errors
// report KindReadFailure.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Kind
	}
	return KindReadFailure
}

// Reason returns the human-readable part of a failure, without the id.
func Reason(err error) string {
	var rerr *Error
	if errors.As(err, &rerr) {
		if rerr.Err != nil && rerr.Err.Error() != rerr.Message {
			return fmt.Sprintf("%s: %v", rerr.Message, rerr.Err)
		}
		return rerr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
